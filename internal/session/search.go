package session

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/dbsmedya/personpad/internal/graph"
	"github.com/dbsmedya/personpad/internal/record"
)

// Match is one record found by Search.
type Match struct {
	Index int
	Label string
	Path  string // first string leaf that matched; empty when the label matched
	Value string
}

// labelPaths are tried in order to name a record in listings.
var labelPaths = [][]string{
	{"DisplayName"},
	{"FullName"},
	{"Name"},
	{"Name.First", "Name.Last"},
	{"FirstName", "LastName"},
	{"First", "Last"},
	{"name"},
	{"Email"},
}

// Label returns a display name for a record, built from common name fields.
func Label(rec any, index int) string {
	for _, paths := range labelPaths {
		var parts []string
		for _, p := range paths {
			if v, ok := record.Lookup(rec, p); ok {
				if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
					parts = append(parts, strings.TrimSpace(s))
				}
			}
		}
		if len(parts) > 0 {
			return strings.Join(parts, " ")
		}
	}
	return fmt.Sprintf("record #%d", index)
}

// Search returns the records whose label or any string value contains query,
// ignoring case and accents. An empty query matches every record.
func (s *Session) Search(query string) []Match {
	records := s.Records()
	needle := fold(strings.TrimSpace(query))

	var matches []Match
	for i, rec := range records {
		label := Label(rec, i)
		if needle == "" || strings.Contains(fold(label), needle) {
			matches = append(matches, Match{Index: i, Label: label})
			continue
		}
		if path, value, ok := searchLeaves(rec, needle); ok {
			matches = append(matches, Match{Index: i, Label: label, Path: path, Value: value})
		}
	}
	return matches
}

func searchLeaves(rec any, needle string) (string, string, bool) {
	for _, e := range graph.Enumerate(rec, 0) {
		if e.Type != record.TypeString {
			continue
		}
		v, ok := record.Lookup(rec, e.Path)
		if !ok {
			continue
		}
		str, _ := v.(string)
		if strings.Contains(fold(str), needle) {
			return e.Path, str, true
		}
	}
	return "", "", false
}

// fold strips combining marks and case-folds s, so "José" and "JOSE" compare
// equal.
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}
	return cases.Fold().String(stripped)
}
