// Package record models person records as ordered JSON values.
//
// A record is any JSON value, but in practice it is an *Object: a string-keyed
// mapping that remembers the order its keys appeared in the source document.
// Arrays are []any, numbers are float64. Plain map[string]any values and Go
// integer types are accepted wherever a value is read, so records built in Go
// code can be used without conversion.
package record

import (
	"reflect"
	"sort"

	"github.com/elliotchance/orderedmap/v2"

	"github.com/dbsmedya/personpad/internal/types"
)

// Object is an insertion-ordered JSON object.
type Object = orderedmap.OrderedMap[string, any]

// NewObject returns an empty Object.
func NewObject() *Object {
	return orderedmap.NewOrderedMap[string, any]()
}

// ValueType names the JSON type of a value.
type ValueType string

const (
	TypeUnknown ValueType = ""
	TypeNull    ValueType = "null"
	TypeBoolean ValueType = "boolean"
	TypeNumber  ValueType = "number"
	TypeString  ValueType = "string"
	TypeArray   ValueType = "array"
	TypeObject  ValueType = "object"
)

// IsContainer reports whether values of this type have members.
func (t ValueType) IsContainer() bool {
	return t == TypeArray || t == TypeObject
}

// TypeOf returns the JSON type of v, or TypeUnknown for values that have no
// JSON representation (funcs, channels, structs).
func TypeOf(v any) ValueType {
	switch x := v.(type) {
	case nil:
		return TypeNull
	case bool:
		return TypeBoolean
	case string:
		return TypeString
	case *Object:
		if x == nil {
			return TypeNull
		}
		return TypeObject
	case map[string]any:
		return TypeObject
	case []any:
		return TypeArray
	}
	if types.IsNumber(v) {
		return TypeNumber
	}
	return TypeUnknown
}

// Member is one key/value or index/value pair of a container.
// Index is -1 for object members.
type Member struct {
	Key   string
	Index int
	Value any
}

// Members lists the members of an object or array in their own order.
// Objects keep insertion order, Go maps are sorted by key, arrays are in
// index order. The second result is false when v is not a container.
func Members(v any) ([]Member, bool) {
	switch x := v.(type) {
	case *Object:
		if x == nil {
			return nil, false
		}
		members := make([]Member, 0, x.Len())
		for el := x.Front(); el != nil; el = el.Next() {
			members = append(members, Member{Key: el.Key, Index: -1, Value: el.Value})
		}
		return members, true
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		members := make([]Member, 0, len(keys))
		for _, k := range keys {
			members = append(members, Member{Key: k, Index: -1, Value: x[k]})
		}
		return members, true
	case []any:
		members := make([]Member, len(x))
		for i, item := range x {
			members[i] = Member{Index: i, Value: item}
		}
		return members, true
	}
	return nil, false
}

// Get returns the member of an object by key.
func Get(v any, key string) (any, bool) {
	switch x := v.(type) {
	case *Object:
		if x == nil {
			return nil, false
		}
		return x.Get(key)
	case map[string]any:
		val, ok := x[key]
		return val, ok
	}
	return nil, false
}

// ID identifies a container by reference rather than by value.
type ID struct {
	ptr uintptr
	n   int
}

// Identity returns the reference identity of an object, map or non-empty
// slice. Scalars and empty slices have no identity. Two slices share an
// identity only when they share both backing array start and length.
func Identity(v any) (ID, bool) {
	switch x := v.(type) {
	case *Object:
		if x == nil {
			return ID{}, false
		}
		return ID{ptr: reflect.ValueOf(x).Pointer()}, true
	case map[string]any:
		if x == nil {
			return ID{}, false
		}
		return ID{ptr: reflect.ValueOf(x).Pointer()}, true
	case []any:
		if len(x) == 0 {
			return ID{}, false
		}
		return ID{ptr: reflect.ValueOf(x).Pointer(), n: len(x)}, true
	}
	return ID{}, false
}
