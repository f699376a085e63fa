// Package graph enumerates the property paths reachable in a record's object
// graph. Enumeration is identity-based: every container reference is expanded
// at most once per pass, so self-referencing and mutually-referencing values
// terminate.
package graph

import (
	"github.com/dbsmedya/personpad/internal/record"
)

// Kind separates scalar entries from containers.
type Kind int

const (
	KindLeaf Kind = iota
	KindBranch
)

func (k Kind) String() string {
	if k == KindBranch {
		return "branch"
	}
	return "leaf"
}

// PathEntry is one property path found during enumeration.
type PathEntry struct {
	Path   string // full property path, e.g. Contact.Business.Email
	Parent string // path of the containing value, "" for the root
	Key    string // object key; empty for array elements
	Index  int    // array index; -1 for object members
	Depth  int    // 1 for members of the root
	Kind   Kind
	Type   record.ValueType

	// Expandable is true for branches whose members follow in the output.
	Expandable bool

	// Cycle marks a container reference that was already expanded earlier
	// in the same pass. It is emitted as a non-expandable leaf.
	Cycle bool
}

// Label returns the key or bracketed index that names the entry under its parent.
func (e PathEntry) Label() string {
	if e.Index >= 0 {
		return record.JoinIndex("", e.Index)
	}
	return e.Key
}

// Enumerate walks root depth-first and returns its property paths. Parents
// precede their children, object members follow their own key order and
// array elements follow index order. No entry deeper than maxDepth is
// returned; maxDepth <= 0 disables the bound. Values with no JSON
// representation are skipped. Enumerate never fails.
func Enumerate(root any, maxDepth int) []PathEntry {
	w := &walker{
		maxDepth: maxDepth,
		visited:  make(map[record.ID]bool),
	}
	if id, ok := record.Identity(root); ok {
		w.visited[id] = true
	}
	w.walk(root, "", 1)
	return w.entries
}

type walker struct {
	maxDepth int
	visited  map[record.ID]bool
	entries  []PathEntry
}

func (w *walker) walk(v any, parent string, depth int) {
	members, ok := record.Members(v)
	if !ok {
		return
	}

	for _, m := range members {
		typ := record.TypeOf(m.Value)
		if typ == record.TypeUnknown {
			continue
		}

		entry := PathEntry{
			Parent: parent,
			Key:    m.Key,
			Index:  m.Index,
			Depth:  depth,
			Type:   typ,
		}
		if m.Index >= 0 {
			entry.Path = record.JoinIndex(parent, m.Index)
		} else {
			entry.Path = record.JoinKey(parent, m.Key)
		}

		if !typ.IsContainer() {
			entry.Kind = KindLeaf
			w.entries = append(w.entries, entry)
			continue
		}

		id, tracked := record.Identity(m.Value)
		if tracked && w.visited[id] {
			entry.Kind = KindLeaf
			entry.Cycle = true
			w.entries = append(w.entries, entry)
			continue
		}

		entry.Kind = KindBranch
		if w.maxDepth > 0 && depth >= w.maxDepth {
			w.entries = append(w.entries, entry)
			continue
		}

		// Only expanded containers are marked, so a value cut off by the
		// depth bound can still be expanded where it appears higher up.
		if tracked {
			w.visited[id] = true
		}
		children, _ := record.Members(m.Value)
		entry.Expandable = len(children) > 0
		w.entries = append(w.entries, entry)
		w.walk(m.Value, entry.Path, depth+1)
	}
}
