// Package completion turns the property paths of the active record into
// completion candidates for the member expression under the cursor.
package completion

import (
	"strings"

	"github.com/dbsmedya/personpad/internal/config"
	"github.com/dbsmedya/personpad/internal/graph"
	"github.com/dbsmedya/personpad/internal/record"
)

// Suggestion is one completion candidate.
type Suggestion struct {
	Label string // key or [index] as shown in a completion list
	Path  string // full property path below the binding
	Kind  graph.Kind
	Type  record.ValueType

	// InsertText replaces the last Replace bytes before the cursor.
	InsertText string
	Replace    int

	Detail string
}

// Provider computes suggestions for one binding name.
type Provider struct {
	Binding  string
	MaxDepth int
	Limit    int
}

// NewProvider creates a Provider from the completion section of the config.
func NewProvider(cfg config.CompletionConfig) *Provider {
	return &Provider{
		Binding:  cfg.Binding,
		MaxDepth: cfg.MaxDepth,
		Limit:    cfg.MaxSuggestions,
	}
}

// Suggest returns candidates for the member expression ending at cursor, a
// byte offset into text. Typing a prefix of the binding name suggests the
// binding; typing "Person.Contact.Bu" suggests the members of Contact whose
// key starts with "Bu", ignoring case, in enumeration order.
func (p *Provider) Suggest(root any, text string, cursor int) []Suggestion {
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(text) {
		cursor = len(text)
	}

	expr := expressionAt(text, cursor)
	if expr == "" {
		return nil
	}

	dot := strings.LastIndexByte(expr, '.')
	if dot < 0 {
		if strings.ContainsRune(expr, '[') {
			return nil
		}
		return p.suggestBinding(expr)
	}

	parent, ok := p.parentPath(expr[:dot])
	if !ok {
		return nil
	}
	partial := expr[dot+1:]

	var out []Suggestion
	for _, e := range p.children(root, parent) {
		s, ok := suggestion(e, partial)
		if !ok {
			continue
		}
		out = append(out, s)
		if p.Limit > 0 && len(out) >= p.Limit {
			break
		}
	}
	return out
}

func (p *Provider) suggestBinding(partial string) []Suggestion {
	if !hasPrefixFold(p.Binding, partial) {
		return nil
	}
	return []Suggestion{{
		Label:      p.Binding,
		Kind:       graph.KindBranch,
		Type:       record.TypeObject,
		InsertText: p.Binding,
		Replace:    len(partial),
		Detail:     "binding",
	}}
}

// parentPath maps "Person.Contact" to the canonical property path "Contact".
func (p *Provider) parentPath(base string) (string, bool) {
	if base == p.Binding {
		return "", true
	}

	var rest string
	switch {
	case strings.HasPrefix(base, p.Binding+"."):
		rest = base[len(p.Binding)+1:]
	case strings.HasPrefix(base, p.Binding+"["):
		rest = base[len(p.Binding):]
	default:
		return "", false
	}
	if rest == "" {
		return "", false
	}

	segments, err := record.ParsePath(rest)
	if err != nil {
		return "", false
	}
	path := ""
	for _, seg := range segments {
		if seg.IsIndex {
			path = record.JoinIndex(path, seg.Index)
		} else {
			path = record.JoinKey(path, seg.Key)
		}
	}
	return path, true
}

// children lists the members of parent. Parents the bounded enumeration did
// not expand (reached through a cycle) are resolved directly, as long as
// their members stay within the depth bound.
func (p *Provider) children(root any, parent string) []graph.PathEntry {
	entries := graph.Enumerate(root, p.MaxDepth)
	if parent == "" {
		return graph.Children(entries, "")
	}

	if e, ok := graph.Find(entries, parent); ok && e.Expandable {
		return graph.Children(entries, parent)
	}

	segments, _ := record.ParsePath(parent)
	if p.MaxDepth > 0 && len(segments) >= p.MaxDepth {
		return nil
	}
	value, ok := record.Lookup(root, parent)
	if !ok {
		return nil
	}

	direct := graph.Enumerate(value, 1)
	for i := range direct {
		direct[i].Parent = parent
		direct[i].Depth = len(segments) + 1
		if direct[i].Index >= 0 {
			direct[i].Path = record.JoinIndex(parent, direct[i].Index)
		} else {
			direct[i].Path = record.JoinKey(parent, direct[i].Key)
		}
	}
	return direct
}

func suggestion(e graph.PathEntry, partial string) (Suggestion, bool) {
	s := Suggestion{
		Label:  e.Label(),
		Path:   e.Path,
		Kind:   e.Kind,
		Type:   e.Type,
		Detail: detail(e),
	}

	switch {
	case e.Index >= 0:
		// Elements are offered only right after the dot, which they replace
		if partial != "" {
			return s, false
		}
		s.InsertText = s.Label
		s.Replace = 1
	case record.IsIdentifier(e.Key):
		if !hasPrefixFold(e.Key, partial) {
			return s, false
		}
		s.InsertText = e.Key
		s.Replace = len(partial)
	default:
		if !hasPrefixFold(e.Key, partial) {
			return s, false
		}
		s.InsertText = record.JoinKey("", e.Key)
		s.Replace = len(partial) + 1
	}
	return s, true
}

func detail(e graph.PathEntry) string {
	d := string(e.Type)
	if e.Cycle {
		d += ", cycle"
	}
	return d
}

// expressionAt returns the member expression that ends at cursor.
func expressionAt(text string, cursor int) string {
	i := cursor
	for i > 0 {
		c := text[i-1]
		switch {
		case isIdentByte(c) || c == '.':
			i--
		case c == ']':
			open := strings.LastIndexByte(text[:i-1], '[')
			if open < 0 {
				return text[i:cursor]
			}
			i = open
		default:
			return text[i:cursor]
		}
	}
	return text[i:cursor]
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '$' ||
		('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
