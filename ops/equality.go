package ops

import (
	"github.com/lollipopkit-lk/luacore/api"
	"github.com/lollipopkit-lk/luacore/meta"
	"github.com/lollipopkit-lk/luacore/table"
	"github.com/lollipopkit-lk/luacore/value"
)

// Eq implements §4.1/§4.5's `==`: raw equality settles most cases outright
// (including "different types are never equal" except the int/float
// cross-compare RawEquals already handles); only two raw-unequal tables or
// two raw-unequal userdata ever consult __eq, and only when both sides
// define the *same* function (§4.5's "both operands must share the
// metamethod" rule — Lua does not let table A's __eq unilaterally decide
// table B's equality).
func Eq(rt *meta.Runtime, a, b any) (bool, error) {
	if value.RawEquals(a, b) {
		return true, nil
	}

	_, aIsTable := a.(*table.Table)
	_, bIsTable := b.(*table.Table)
	aIsUserdata, bIsUserdata := isUserdata(a), isUserdata(b)

	if !(aIsTable && bIsTable) && !(aIsUserdata && bIsUserdata) {
		return false, nil
	}

	mfA := meta.GetMetafield(rt, a, api.MetaEq)
	mfB := meta.GetMetafield(rt, b, api.MetaEq)
	if mfA == nil || mfB == nil {
		return false, nil
	}
	if !sameFunction(mfA, mfB) {
		return false, nil
	}

	fn, ok := mfA.(value.Callable)
	if !ok {
		return false, nil
	}
	results, err := Call(rt, fn, value.NewVarargs(a, b))
	if err != nil {
		return false, err
	}
	return value.ToBoolean(results.Arg1()), nil
}

// Neq implements §4.6's `neq`, the negation of Eq — Lua has no separate
// __ne metamethod (5.2 only ever consults __eq), so `~=` is simply `not
// (a == b)`.
func Neq(rt *meta.Runtime, a, b any) (bool, error) {
	eq, err := Eq(rt, a, b)
	if err != nil {
		return false, err
	}
	return !eq, nil
}

func isUserdata(v any) bool {
	_, ok := v.(*value.Userdata)
	return ok
}

// sameFunction reports whether two metamethod values are the identical
// callable, per §4.5's "uses __eq only if both operands have the same
// handler" requirement. Guarded with recover: an external interpreter's
// Callable may be backed by a concrete type Go's == can't compare (a
// closure struct holding a slice, say), which would otherwise panic
// instead of just reporting "not the same function".
func sameFunction(a, b any) (same bool) {
	fa, aok := a.(value.Callable)
	fb, bok := b.(value.Callable)
	if !aok || !bok {
		return false
	}
	defer func() {
		if recover() != nil {
			same = false
		}
	}()
	return fa == fb
}
