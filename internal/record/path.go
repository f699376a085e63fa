package record

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// IsIdentifier reports whether s can be used as a JavaScript identifier or
// dotted member name. Reserved words are not rejected.
func IsIdentifier(s string) bool {
	return identifierPattern.MatchString(s)
}

// JoinKey appends an object key to a property path. Keys that are not
// identifiers are written in bracket form: Contact["Home Phone"].
func JoinKey(parent, key string) string {
	if IsIdentifier(key) {
		if parent == "" {
			return key
		}
		return parent + "." + key
	}
	return parent + "[" + strconv.Quote(key) + "]"
}

// JoinIndex appends an array index to a property path.
func JoinIndex(parent string, index int) string {
	return parent + "[" + strconv.Itoa(index) + "]"
}

// Segment is one step of a property path.
type Segment struct {
	Key     string
	Index   int
	IsIndex bool
}

// ParsePath splits a property path such as Contact.Phones[0]["Home Phone"]
// into segments. The empty path has no segments and denotes the root.
func ParsePath(path string) ([]Segment, error) {
	var segments []Segment
	i := 0
	for i < len(path) {
		switch path[i] {
		case '.':
			if i == 0 || i == len(path)-1 || path[i+1] == '.' || path[i+1] == '[' {
				return nil, fmt.Errorf("invalid path %q: misplaced '.' at %d", path, i)
			}
			i++
		case '[':
			seg, next, err := parseBracket(path, i)
			if err != nil {
				return nil, err
			}
			segments = append(segments, seg)
			i = next
		default:
			end := i
			for end < len(path) && path[end] != '.' && path[end] != '[' {
				end++
			}
			segments = append(segments, Segment{Key: path[i:end], Index: -1})
			i = end
		}
	}
	return segments, nil
}

func parseBracket(path string, start int) (Segment, int, error) {
	i := start + 1
	if i < len(path) && path[i] == '"' {
		// Quoted key: scan to the closing quote, honoring escapes
		j := i + 1
		for j < len(path) && path[j] != '"' {
			if path[j] == '\\' {
				j++
			}
			j++
		}
		if j+1 >= len(path) || path[j+1] != ']' {
			return Segment{}, 0, fmt.Errorf("invalid path %q: unterminated key at %d", path, start)
		}
		key, err := strconv.Unquote(path[i : j+1])
		if err != nil {
			return Segment{}, 0, fmt.Errorf("invalid path %q: %w", path, err)
		}
		return Segment{Key: key, Index: -1}, j + 2, nil
	}

	end := strings.IndexByte(path[i:], ']')
	if end < 0 {
		return Segment{}, 0, fmt.Errorf("invalid path %q: missing ']' at %d", path, start)
	}
	n, err := strconv.Atoi(path[i : i+end])
	if err != nil || n < 0 {
		return Segment{}, 0, fmt.Errorf("invalid path %q: bad index %q", path, path[i:i+end])
	}
	return Segment{Index: n, IsIndex: true}, i + end + 1, nil
}

// Lookup resolves a property path against v.
func Lookup(v any, path string) (any, bool) {
	segments, err := ParsePath(path)
	if err != nil {
		return nil, false
	}

	cur := v
	for _, seg := range segments {
		if seg.IsIndex {
			arr, ok := cur.([]any)
			if !ok || seg.Index >= len(arr) {
				return nil, false
			}
			cur = arr[seg.Index]
			continue
		}
		next, ok := Get(cur, seg.Key)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}
