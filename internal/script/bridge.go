package script

import (
	"strconv"

	"github.com/dop251/goja"

	"github.com/dbsmedya/personpad/internal/record"
	"github.com/dbsmedya/personpad/internal/types"
)

// bridge converts record values into JS values for one runtime. Containers
// that share a Go reference share one JS object, so cyclic records stay
// cyclic inside the script.
type bridge struct {
	vm   *goja.Runtime
	seen map[record.ID]*goja.Object
}

func newBridge(vm *goja.Runtime) *bridge {
	return &bridge{vm: vm, seen: make(map[record.ID]*goja.Object)}
}

func (b *bridge) toJS(v any) goja.Value {
	if _, ok := v.(undefined); ok {
		return goja.Undefined()
	}
	switch record.TypeOf(v) {
	case record.TypeNull:
		return goja.Null()
	case record.TypeBoolean, record.TypeString:
		return b.vm.ToValue(v)
	case record.TypeNumber:
		f, _ := types.ToFloat64(v)
		return b.vm.ToValue(f)
	case record.TypeObject:
		return b.container(v, b.vm.NewObject(), func(obj *goja.Object, m record.Member, val goja.Value) {
			_ = obj.Set(m.Key, val)
		})
	case record.TypeArray:
		return b.container(v, b.vm.NewArray(), func(arr *goja.Object, m record.Member, val goja.Value) {
			_ = arr.Set(strconv.Itoa(m.Index), val)
		})
	default:
		return goja.Undefined()
	}
}

func (b *bridge) container(v any, target *goja.Object, set func(*goja.Object, record.Member, goja.Value)) goja.Value {
	id, tracked := record.Identity(v)
	if tracked {
		if existing, ok := b.seen[id]; ok {
			return existing
		}
		// Registered before the members so back-references resolve to target
		b.seen[id] = target
	}

	members, _ := record.Members(v)
	for _, m := range members {
		if record.TypeOf(m.Value) == record.TypeUnknown {
			continue
		}
		set(target, m, b.toJS(m.Value))
	}
	return target
}
