package ops

import (
	"github.com/lollipopkit-lk/luacore/api"
	"github.com/lollipopkit-lk/luacore/lkerr"
	"github.com/lollipopkit-lk/luacore/meta"
	"github.com/lollipopkit-lk/luacore/value"
)

// callMetamethod is §4.5's shared metamethod-lookup-with-fallthrough: try
// a's metatable first, then b's; if found, invoke it with (a, b) and
// return its first result. found is false when neither side defines tag,
// letting the caller decide what "no metamethod" means for its operator.
//
// Grounded on state/lk_value.go's callMetamethod, generalized off the
// teacher's stack-push-then-Call convention into a direct Callable
// invocation through the trampoline (Eval).
func callMetamethod(rt *meta.Runtime, a, b any, tag api.Metatag) (result any, found bool, err error) {
	mf := meta.GetMetafield(rt, a, tag)
	if mf == nil {
		mf = meta.GetMetafield(rt, b, tag)
	}
	if mf == nil {
		return nil, false, nil
	}

	fn, ok := mf.(value.Callable)
	if !ok {
		return nil, false, lkerr.New(lkerr.KindType, "metamethod %q is not callable", string(tag))
	}

	results, err := Call(rt, fn, value.NewVarargs(a, b))
	if err != nil {
		return nil, false, err
	}
	return results.Arg1(), true, nil
}
