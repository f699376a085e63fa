package sqlutil

import (
	"fmt"
	"strings"
)

// DocumentQuery describes where person documents live in MySQL.
type DocumentQuery struct {
	Table  string // may be schema-qualified
	Column string // column holding one JSON document per row
	Key    string // optional ordering column, also used to name rows in errors
	Where  string // optional raw filter, taken from trusted configuration
	Limit  int    // 0 means no limit
}

// Build returns the SELECT statement for q. The statement always yields two
// columns: the row key (NULL without a Key column) and the document.
func (q DocumentQuery) Build() (string, error) {
	table, err := QuoteQualified(q.Table)
	if err != nil {
		return "", fmt.Errorf("table: %w", err)
	}
	column, err := QuoteIdentifierSafe(q.Column)
	if err != nil {
		return "", fmt.Errorf("column: %w", err)
	}

	keyExpr := "NULL"
	var key string
	if q.Key != "" {
		key, err = QuoteIdentifierSafe(q.Key)
		if err != nil {
			return "", fmt.Errorf("key: %w", err)
		}
		keyExpr = key
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "SELECT %s, %s FROM %s", keyExpr, column, table)
	if where := strings.TrimSpace(q.Where); where != "" {
		fmt.Fprintf(&sb, " WHERE (%s)", where)
	}
	if key != "" {
		fmt.Fprintf(&sb, " ORDER BY %s", key)
	}
	if q.Limit > 0 {
		fmt.Fprintf(&sb, " LIMIT %d", q.Limit)
	}
	return sb.String(), nil
}
