// Package sqlutil quotes MySQL identifiers and builds the query that reads
// person documents out of a table.
package sqlutil

import (
	"regexp"
	"strings"
)

// QuoteIdentifier wraps a MySQL identifier in backticks, doubling any
// backtick inside it.
// Example: "persons" -> "`persons`"
func QuoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

// Identifiers taken from configuration are restricted to alphanumerics and
// underscores.
var validIdentifierRegex = regexp.MustCompile("^[a-zA-Z0-9_]+$")

// IsValidIdentifier reports whether name is safe to use as a table or column
// name.
func IsValidIdentifier(name string) bool {
	return validIdentifierRegex.MatchString(name)
}

// QuoteIdentifierSafe validates and quotes an identifier.
func QuoteIdentifierSafe(name string) (string, error) {
	if !IsValidIdentifier(name) {
		return "", &InvalidIdentifierError{Name: name}
	}
	return QuoteIdentifier(name), nil
}

// QuoteQualified validates and quotes a possibly schema-qualified name such
// as "hr.persons".
func QuoteQualified(name string) (string, error) {
	parts := strings.Split(name, ".")
	if len(parts) > 2 {
		return "", &InvalidIdentifierError{Name: name}
	}
	quoted := make([]string, len(parts))
	for i, part := range parts {
		q, err := QuoteIdentifierSafe(part)
		if err != nil {
			return "", &InvalidIdentifierError{Name: name}
		}
		quoted[i] = q
	}
	return strings.Join(quoted, "."), nil
}

// InvalidIdentifierError is returned when an identifier contains invalid characters.
type InvalidIdentifierError struct {
	Name string
}

func (e *InvalidIdentifierError) Error() string {
	return "invalid identifier: " + e.Name + " (must contain only alphanumeric characters and underscores)"
}
