package ops

import (
	"github.com/lollipopkit-lk/luacore/api"
	"github.com/lollipopkit-lk/luacore/lkerr"
	"github.com/lollipopkit-lk/luacore/meta"
	"github.com/lollipopkit-lk/luacore/table"
	"github.com/lollipopkit-lk/luacore/value"
)

// Len implements §4.3/§4.4's `#`: strings report their byte length
// directly; anything else consults __len first (so a table can override
// its own border rule) and only falls back to the raw array-part length
// when no __len is defined.
func Len(rt *meta.Runtime, v any) (any, error) {
	if s, ok := v.(string); ok {
		return value.StringLen(s), nil
	}

	if mf := meta.GetMetafield(rt, v, api.MetaLen); mf != nil {
		fn, ok := mf.(value.Callable)
		if !ok {
			return nil, lkerr.New(lkerr.KindType, "__len is not callable")
		}
		results, err := Call(rt, fn, value.NewVarargs(v))
		if err != nil {
			return nil, err
		}
		return results.Arg1(), nil
	}

	if t, ok := v.(*table.Table); ok {
		return t.Len(), nil
	}

	return nil, lkerr.New(lkerr.KindType, "attempt to get length of a %s value", value.TypeName(v))
}

// Concat implements §4.3's binary `..`: two concatable (string/number)
// operands join directly through ConcatFragment with no metamethod
// lookup; otherwise __concat is consulted on either side.
func Concat(rt *meta.Runtime, a, b any) (any, error) {
	if value.IsConcatable(a) && value.IsConcatable(b) {
		return value.ConcatFragment(a) + value.ConcatFragment(b), nil
	}
	if res, found, err := callMetamethod(rt, a, b, api.MetaConcat); err != nil {
		return nil, err
	} else if found {
		return res, nil
	}
	return nil, concatError(a, b)
}

func concatError(a, b any) error {
	switch {
	case !value.IsConcatable(a) && !value.IsConcatable(b):
		return lkerr.Concat(value.TypeName(a), value.TypeName(b))
	case !value.IsConcatable(a):
		return lkerr.Concat(value.TypeName(a))
	default:
		return lkerr.Concat(value.TypeName(b))
	}
}

// ConcatMany folds a chain of values the way a multi-operand `a .. b .. c`
// expression does. Lua's `..` is right-associative (`a .. b .. c` means
// `a .. (b .. c)`), which only matters once a non-concatable operand with
// a __concat metamethod sits mid-chain — a left-to-right fold would hand
// that metamethod the wrong operand grouping. So this walks vals from the
// right: consecutive concatable runs feed a single value.ConcatBuffer
// (§4.3's amortized-O(n) requirement, built via Prepend since the fold
// grows leftward), and the moment a non-concatable value is reached going
// left, the buffer's accumulated string becomes the *right* operand of a
// full metamethod-aware Concat against it, then buffering resumes from
// the result.
func ConcatMany(rt *meta.Runtime, vals []any) (any, error) {
	if len(vals) == 0 {
		return "", nil
	}

	n := len(vals)
	acc := vals[n-1]
	var buf value.ConcatBuffer
	buffering := value.IsConcatable(acc)
	if buffering {
		buf.SetValue(acc)
	}

	for i := n - 2; i >= 0; i-- {
		v := vals[i]
		if buffering && value.IsConcatable(v) {
			buf.Prepend(v)
			continue
		}
		if buffering {
			acc = buf.Value()
			buffering = false
		}
		res, err := Concat(rt, v, acc)
		if err != nil {
			return nil, err
		}
		acc = res
		if value.IsConcatable(acc) {
			buf.SetValue(acc)
			buffering = true
		}
	}

	if buffering {
		return buf.Value(), nil
	}
	return acc, nil
}
