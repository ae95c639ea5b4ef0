package ops

import (
	"github.com/lollipopkit-lk/luacore/api"
	"github.com/lollipopkit-lk/luacore/lkerr"
	"github.com/lollipopkit-lk/luacore/logger"
	"github.com/lollipopkit-lk/luacore/meta"
	"github.com/lollipopkit-lk/luacore/table"
	"github.com/lollipopkit-lk/luacore/value"
)

// maxIndexChain bounds the __index/__newindex chain walk of §4.4 at 100
// hops, the same constant the teacher's gettable/settable loops use to
// turn a metatable cycle into a raised error instead of a hang.
const maxIndexChain = 100

// Get implements §4.4's indexing protocol: a raw table hit wins outright;
// otherwise __index is consulted, walking up to maxIndexChain times
// through a chain of tables, or invoked as a function the moment it is
// one.
func Get(rt *meta.Runtime, v, key any) (any, error) {
	for i := 0; i < maxIndexChain; i++ {
		if t, ok := v.(*table.Table); ok {
			if raw := t.Get(key); raw != nil {
				return raw, nil
			}
		}

		mf := meta.GetMetafield(rt, v, api.MetaIndex)
		if mf == nil {
			if _, ok := v.(*table.Table); ok {
				return nil, nil
			}
			return nil, lkerr.Index(value.TypeName(v), value.ToGoString(key))
		}

		switch h := mf.(type) {
		case value.Callable:
			results, err := Call(rt, h, value.NewVarargs(v, key))
			if err != nil {
				return nil, err
			}
			return results.Arg1(), nil
		default:
			v = h
		}
	}
	logger.W("index chain exceeded %d hops", maxIndexChain)
	return nil, lkerr.LoopInGet()
}

// Set implements §4.4's newindex protocol: a table with the raw key
// already present, or with no __newindex, writes directly. Otherwise
// __newindex is consulted the same way __index is for Get.
func Set(rt *meta.Runtime, v, key, val any) error {
	for i := 0; i < maxIndexChain; i++ {
		t, isTable := v.(*table.Table)
		if isTable && t.Get(key) != nil {
			t.Put(key, val)
			return nil
		}

		mf := meta.GetMetafield(rt, v, api.MetaNewIndex)
		if mf == nil {
			if isTable {
				t.Put(key, val)
				return nil
			}
			return lkerr.Index(value.TypeName(v), value.ToGoString(key))
		}

		switch h := mf.(type) {
		case value.Callable:
			_, err := Call(rt, h, value.NewVarargs(v, key, val))
			return err
		default:
			v = h
		}
	}
	logger.W("newindex chain exceeded %d hops", maxIndexChain)
	return lkerr.LoopInSet()
}

// resolveCallable follows §4.6's __call protocol: a value.Callable is
// returned as-is; anything else is checked for a __call metamethod, in
// which case the callee itself is prepended to args (Lua passes the
// original callee as __call's first argument) and the metamethod becomes
// the thing actually invoked. No chain walking here — §4.6 is a single
// hop, unlike __index/__newindex.
func resolveCallable(rt *meta.Runtime, fn any, args *value.Varargs) (value.Callable, *value.Varargs, error) {
	if c, ok := fn.(value.Callable); ok {
		return c, args, nil
	}
	mf := meta.GetMetafield(rt, fn, api.MetaCall)
	if c, ok := mf.(value.Callable); ok {
		return c, value.NewVarargs(fn).Append(args.Slice()...), nil
	}
	return nil, nil, lkerr.Call(value.TypeName(fn))
}

// Call resolves __call if needed and drives the result through Eval
// (C8), so a call that immediately tail-calls elsewhere never grows the
// Go stack for it.
func Call(rt *meta.Runtime, fn any, args *value.Varargs) (*value.Varargs, error) {
	c, args, err := resolveCallable(rt, fn, args)
	if err != nil {
		return nil, err
	}
	return Eval(c, args)
}

// Invoke is §4.6/§6's other call-family operator: unlike Call, it never
// consults __call — it is the direct on_invoke entry point §4.8 says "the
// trampoline calls", for when the caller already holds a concrete
// value.Callable (a closure, a GoFunc) rather than an arbitrary value that
// might only be callable via a metamethod. Call is Invoke plus §4.5's
// __call resolution step in front of it.
func Invoke(fn value.Callable, args *value.Varargs) (*value.Varargs, error) {
	return Eval(fn, args)
}
