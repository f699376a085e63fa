package loader

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/dbsmedya/personpad/internal/config"
	"github.com/dbsmedya/personpad/internal/record"
	"github.com/dbsmedya/personpad/internal/sqlutil"
)

// MySQLSource reads one JSON document per row and assembles them into a
// single array document, in query order. Rows with a NULL document are
// skipped.
type MySQLSource struct {
	db    DocumentFetcher
	query sqlutil.DocumentQuery
	desc  string
}

// NewMySQLSource creates a MySQLSource for the table described by data.
func NewMySQLSource(db DocumentFetcher, data config.DataConfig, conn *config.DatabaseConfig) *MySQLSource {
	desc := fmt.Sprintf("mysql:%s.%s", data.Table, data.Column)
	if conn != nil && conn.Host != "" {
		desc = fmt.Sprintf("mysql://%s:%d/%s/%s.%s", conn.Host, conn.Port, conn.Database, data.Table, data.Column)
	}
	return &MySQLSource{
		db: db,
		query: sqlutil.DocumentQuery{
			Table:  data.Table,
			Column: data.Column,
			Key:    data.Key,
			Where:  data.Where,
			Limit:  data.Limit,
		},
		desc: desc,
	}
}

func (s *MySQLSource) Read(ctx context.Context) ([]byte, error) {
	docs, err := s.db.FetchDocuments(ctx, s.query)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteByte('[')
	n := 0
	for i, doc := range docs {
		if doc.Body == nil {
			continue
		}
		if _, err := record.Decode(doc.Body); err != nil {
			return nil, rowError(err, i, doc.Key)
		}
		if n > 0 {
			buf.WriteByte(',')
		}
		buf.Write(bytes.TrimSpace(doc.Body))
		n++
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

func (s *MySQLSource) Describe() string {
	return s.desc
}

// rowError names the offending row in a document parse error.
func rowError(err error, index int, key string) error {
	name := fmt.Sprintf("row %d", index)
	if key != "" {
		name = fmt.Sprintf("row %d (key %s)", index, key)
	}

	var parseErr *record.ParseError
	if errors.As(err, &parseErr) {
		named := *parseErr
		named.Message = name + ": " + parseErr.Message
		return &named
	}
	return fmt.Errorf("%s: %w", name, err)
}
