// Package meta implements C5's lookup half: per-instance and per-type
// metatable slots, metafield lookup, and the protected-metatable guard.
// Invoking a found metamethod (which may itself tail-call, §4.8) is ops's
// job — see ops's callMetamethod — so this package never calls into a
// Callable; it only finds one.
//
// Grounded on state/lk_value.go's getMetatable/setMetatable/getMetafield,
// generalized per spec.md §9's redesign note: "process-wide per-type
// metatable slots -> place on the runtime/context object, NOT true
// globals, so multiple contexts do not interfere." The teacher keeps
// these in a process-wide `ls.registry` lua table keyed by "_MT<tag>";
// here they are fields on an explicit Runtime value instead.
package meta

import (
	"github.com/lollipopkit-lk/luacore/api"
	"github.com/lollipopkit-lk/luacore/lkerr"
	"github.com/lollipopkit-lk/luacore/table"
	"github.com/lollipopkit-lk/luacore/value"
)

// Runtime holds the per-type metatable slots for one execution context
// (§5: "A 'Globals' object and all values reachable from it form one
// context"). Table and Userdata values carry their own per-instance
// metatable instead (table.Table.Metatable/value.Userdata.Metatable); a
// Runtime only ever stores the six per-type slots.
type Runtime struct {
	nilMT, boolMT, numberMT, stringMT, functionMT, threadMT *table.Table
}

// New creates a context with every per-type slot nil, matching §5's
// "initialized to null at startup" lifecycle.
func New() *Runtime { return &Runtime{} }

func (rt *Runtime) perTypeSlot(t api.Type) **table.Table {
	switch t {
	case api.TNIL:
		return &rt.nilMT
	case api.TBOOLEAN:
		return &rt.boolMT
	case api.TNUMBER:
		return &rt.numberMT
	case api.TSTRING:
		return &rt.stringMT
	case api.TFUNCTION:
		return &rt.functionMT
	case api.TTHREAD:
		return &rt.threadMT
	default:
		return nil
	}
}

// TypeMetatable returns (and SetTypeMetatable installs) the process-wide
// slot for values of tag t. Table and Userdata have per-instance
// metatables instead, not per-type ones: TypeMetatable returns nil for
// them and SetTypeMetatable panics.
func (rt *Runtime) TypeMetatable(t api.Type) *table.Table {
	slot := rt.perTypeSlot(t)
	if slot == nil {
		return nil
	}
	return *slot
}

func (rt *Runtime) SetTypeMetatable(t api.Type, mt *table.Table) {
	slot := rt.perTypeSlot(t)
	if slot == nil {
		panic("meta: SetTypeMetatable called on a type with per-instance metatables")
	}
	*slot = mt
}

// Reset clears every per-type slot back to nil, the teardown half of §5's
// lifecycle (tests restore global state in a try/finally-equivalent).
func (rt *Runtime) Reset() {
	rt.nilMT, rt.boolMT, rt.numberMT, rt.stringMT, rt.functionMT, rt.threadMT = nil, nil, nil, nil, nil, nil
}

// isProtected reports whether mt's __metatable field is non-nil (§3).
func isProtected(mt *table.Table) bool {
	return mt != nil && mt.Get(string(api.MetaMetatable)) != nil
}

// GetMetatable returns v's metatable: the table/userdata's own instance
// metatable if it has one, else the per-type slot for v's tag.
func GetMetatable(rt *Runtime, v any) *table.Table {
	switch x := v.(type) {
	case *table.Table:
		if mt := x.Metatable(); mt != nil {
			return mt
		}
		return rt.TypeMetatable(api.TTABLE)
	case *value.Userdata:
		if mt := x.Metatable(); mt != nil {
			return mt
		}
		return rt.TypeMetatable(api.TUSERDATA)
	default:
		return rt.TypeMetatable(value.TypeOf(v))
	}
}

// GetMetafield returns v's metatable's fieldName entry, or nil.
func GetMetafield(rt *Runtime, v any, fieldName api.Metatag) any {
	mt := GetMetatable(rt, v)
	if mt == nil {
		return nil
	}
	return mt.Get(string(fieldName))
}

// SetMetatable installs mt on v (a *table.Table or *value.Userdata),
// enforcing §3/§7's protected-metatable invariant, and — for tables —
// wiring up or tearing down the weak-mode backing store per §4.4's
// `__mode` contract. v's current metatable (if any) is what must not be
// protected; mt itself becomes the new metatable regardless of whether mt
// is itself protected.
func SetMetatable(rt *Runtime, v any, mt *table.Table) error {
	switch x := v.(type) {
	case *table.Table:
		if isProtected(x.Metatable()) {
			return lkerr.ProtectedMetatable()
		}
		x.SetMetatable(mt)
		x.SetWeakMode(weakMode(mt))
		return nil
	case *value.Userdata:
		if isProtected(x.Metatable()) {
			return lkerr.ProtectedMetatable()
		}
		x.SetMetatable(mt)
		return nil
	default:
		t := value.TypeOf(v)
		if isProtected(rt.TypeMetatable(t)) {
			return lkerr.ProtectedMetatable()
		}
		rt.SetTypeMetatable(t, mt)
		return nil
	}
}

func weakMode(mt *table.Table) string {
	if mt == nil {
		return ""
	}
	s, _ := mt.Get(string(api.MetaMode)).(string)
	return s
}
