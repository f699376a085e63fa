package record

import "github.com/dbsmedya/personpad/internal/types"

// Equal reports whether a and b are the same JSON value. Object members must
// appear in the same order. Numbers compare by value regardless of Go type.
func Equal(a, b any) bool {
	return equal(a, b, make(map[[2]ID]bool))
}

func equal(a, b any, seen map[[2]ID]bool) bool {
	ta, tb := TypeOf(a), TypeOf(b)
	if ta != tb || ta == TypeUnknown {
		return false
	}

	switch ta {
	case TypeNull:
		return true
	case TypeBoolean:
		return a.(bool) == b.(bool)
	case TypeString:
		return a.(string) == b.(string)
	case TypeNumber:
		fa, _ := types.ToFloat64(a)
		fb, _ := types.ToFloat64(b)
		return fa == fb
	}

	// Containers: a pair already under comparison is assumed equal so that
	// cyclic values terminate.
	ida, oka := Identity(a)
	idb, okb := Identity(b)
	if oka && okb {
		pair := [2]ID{ida, idb}
		if seen[pair] {
			return true
		}
		seen[pair] = true
	}

	ma, _ := Members(a)
	mb, _ := Members(b)
	if len(ma) != len(mb) {
		return false
	}
	for i := range ma {
		if ma[i].Key != mb[i].Key || ma[i].Index != mb[i].Index {
			return false
		}
		if !equal(ma[i].Value, mb[i].Value, seen) {
			return false
		}
	}
	return true
}
