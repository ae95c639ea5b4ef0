package ops

import (
	"github.com/lollipopkit-lk/luacore/api"
	"github.com/lollipopkit-lk/luacore/lkerr"
	"github.com/lollipopkit-lk/luacore/meta"
	"github.com/lollipopkit-lk/luacore/value"
)

// isRawNumber reports whether v is int64 or float64 (comparison never
// coerces strings the way arithmetic does, §4.5).
func isRawNumber(v any) bool {
	switch v.(type) {
	case int64, float64:
		return true
	default:
		return false
	}
}

func numLess(a, b any) bool {
	ai, aIsInt := a.(int64)
	bi, bIsInt := b.(int64)
	if aIsInt && bIsInt {
		return ai < bi
	}
	return value.ToGoFloat(a) < value.ToGoFloat(b)
}

func numLessEq(a, b any) bool {
	ai, aIsInt := a.(int64)
	bi, bIsInt := b.(int64)
	if aIsInt && bIsInt {
		return ai <= bi
	}
	return value.ToGoFloat(a) <= value.ToGoFloat(b)
}

// Lt implements §4.5's `<`: numbers compare by value (mixed int/float
// promotes, matching C2's own promotion rule), strings compare by the
// same unsigned-byte order C3's CompareStrings documents, and anything
// else falls to __lt with no fallback — Lua 5.2 never derives `<` from
// `<=`.
func Lt(rt *meta.Runtime, a, b any) (bool, error) {
	if isRawNumber(a) && isRawNumber(b) {
		return numLess(a, b), nil
	}
	if as, ok := a.(string); ok {
		if bs, ok := b.(string); ok {
			return as < bs, nil
		}
	}
	if res, found, err := callMetamethod(rt, a, b, api.MetaLt); err != nil {
		return false, err
	} else if found {
		return value.ToBoolean(res), nil
	}
	return false, lkerr.Compare(value.TypeName(a), value.TypeName(b))
}

// Le implements §4.5's `<=`. Lua 5.2 dispatches directly to __le when
// present (the "derive <= from not (b < a)" fallback was a 5.1-ism
// removed in 5.2, and spec.md targets 5.2 semantics) and only falls back
// to the not-(b<a) identity when neither operand defines __le.
func Le(rt *meta.Runtime, a, b any) (bool, error) {
	if isRawNumber(a) && isRawNumber(b) {
		return numLessEq(a, b), nil
	}
	if as, ok := a.(string); ok {
		if bs, ok := b.(string); ok {
			return as <= bs, nil
		}
	}
	if res, found, err := callMetamethod(rt, a, b, api.MetaLe); err != nil {
		return false, err
	} else if found {
		return value.ToBoolean(res), nil
	}
	if res, found, err := callMetamethod(rt, b, a, api.MetaLt); err != nil {
		return false, err
	} else if found {
		return !value.ToBoolean(res), nil
	}
	return false, lkerr.Compare(value.TypeName(a), value.TypeName(b))
}

// Gt and Ge are §4.5's synthesized operators: `a > b` is `b < a` and
// `a >= b` is `b <= a`, operand order swapped before any metamethod
// lookup so a right-side-only __lt/__le still fires correctly.
func Gt(rt *meta.Runtime, a, b any) (bool, error) { return Lt(rt, b, a) }
func Ge(rt *meta.Runtime, a, b any) (bool, error) { return Le(rt, b, a) }
