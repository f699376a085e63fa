package graph

import (
	"fmt"
	"strings"
)

// Summary counts what an enumeration pass produced.
type Summary struct {
	Entries  int
	Leaves   int
	Branches int
	Cycles   int
	MaxDepth int
}

// Summarize returns counts over entries.
func Summarize(entries []PathEntry) Summary {
	var s Summary
	for _, e := range entries {
		s.Entries++
		if e.Kind == KindBranch {
			s.Branches++
		} else {
			s.Leaves++
		}
		if e.Cycle {
			s.Cycles++
		}
		if e.Depth > s.MaxDepth {
			s.MaxDepth = e.Depth
		}
	}
	return s
}

// Children returns the entries directly below parent, in enumeration order.
// An empty parent selects the root's members.
func Children(entries []PathEntry, parent string) []PathEntry {
	var out []PathEntry
	for _, e := range entries {
		if e.Parent == parent {
			out = append(out, e)
		}
	}
	return out
}

// Find returns the entry with the given path.
func Find(entries []PathEntry, path string) (PathEntry, bool) {
	for _, e := range entries {
		if e.Path == path {
			return e, true
		}
	}
	return PathEntry{}, false
}

// Tree renders entries as an indented tree, one entry per line:
//
//	Name (object)
//	  First (string)
//	  Last (string)
//	Self (object, cycle)
func Tree(entries []PathEntry) string {
	var sb strings.Builder
	for _, e := range entries {
		sb.WriteString(strings.Repeat("  ", e.Depth-1))
		sb.WriteString(e.Label())

		var notes []string
		notes = append(notes, string(e.Type))
		if e.Cycle {
			notes = append(notes, "cycle")
		} else if e.Kind == KindBranch && !e.Expandable {
			notes = append(notes, "collapsed")
		}
		fmt.Fprintf(&sb, " (%s)\n", strings.Join(notes, ", "))
	}
	return sb.String()
}
