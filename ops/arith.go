// Package ops implements C6 (the public operator surface) and C8 (the
// tail-call trampoline), composing C2–C5 exactly as §2's data-flow
// description lays out: "all library code and interpreter bytecode reach
// C6, which consults C5 (for metamethods) and dispatches to C2/C3/C4."
//
// Grounded on state/api_arith.go (Arith/operator table/opSymbol),
// state/lk_value.go (callMetamethod), state/api_get.go/api_set.go
// (gettable/settable chain walking), state/api_call.go (Call/PCall),
// state/api_misc.go (Len), state/auxlib.go (ToString2's __tostring/__name
// handling).
package ops

import (
	"github.com/lollipopkit-lk/luacore/api"
	"github.com/lollipopkit-lk/luacore/lkerr"
	"github.com/lollipopkit-lk/luacore/meta"
	"github.com/lollipopkit-lk/luacore/table"
	"github.com/lollipopkit-lk/luacore/value"
)

type arithSpec struct {
	tag    api.Metatag
	symbol string
}

var arithSpecs = map[api.ArithOp]arithSpec{
	api.OpAdd: {api.MetaAdd, "+"},
	api.OpSub: {api.MetaSub, "-"},
	api.OpMul: {api.MetaMul, "*"},
	api.OpDiv: {api.MetaDiv, "/"},
	api.OpMod: {api.MetaMod, "%"},
	api.OpPow: {api.MetaPow, "^"},
	api.OpUnm: {api.MetaUnm, "-"},
}

func isArithOperand(v any) bool {
	_, ok := value.ToGoFloatOK(v)
	return ok
}

func arithError(symbol string, a, b any) error {
	aOK, bOK := isArithOperand(a), isArithOperand(b)
	switch {
	case !aOK && !bOK:
		return lkerr.Arithmetic(symbol, value.TypeName(a), value.TypeName(b))
	case !aOK:
		return lkerr.Arithmetic(symbol, value.TypeName(a))
	default:
		return lkerr.Arithmetic(symbol, value.TypeName(b))
	}
}

func binArith(rt *meta.Runtime, op api.ArithOp, a, b any) (any, error) {
	if res, ok := value.Arith(op, a, b); ok {
		return res, nil
	}

	spec := arithSpecs[op]
	if mm, found, err := callMetamethod(rt, a, b, spec.tag); err != nil {
		return nil, err
	} else if found {
		return mm, nil
	}

	// Supplemented extension (SPEC_FULL §C.3): `table + table` with no
	// __add on either side merges them, grounded on the teacher's own
	// arithmetic dispatch (state/api_arith.go's trailing table-combine
	// case) but non-mutating here — neither operand is modified, a fresh
	// table is returned, matching every other arithmetic op's by-value
	// feel.
	if op == api.OpAdd {
		if ta, ok := a.(*table.Table); ok {
			if tb, ok2 := b.(*table.Table); ok2 {
				merged := table.New(0, 0)
				merged.Combine(ta)
				merged.Combine(tb)
				return merged, nil
			}
		}
	}

	return nil, arithError(spec.symbol, a, b)
}

func Add(rt *meta.Runtime, a, b any) (any, error) { return binArith(rt, api.OpAdd, a, b) }
func Sub(rt *meta.Runtime, a, b any) (any, error) { return binArith(rt, api.OpSub, a, b) }
func Mul(rt *meta.Runtime, a, b any) (any, error) { return binArith(rt, api.OpMul, a, b) }
func Div(rt *meta.Runtime, a, b any) (any, error) { return binArith(rt, api.OpDiv, a, b) }
func Mod(rt *meta.Runtime, a, b any) (any, error) { return binArith(rt, api.OpMod, a, b) }
func Pow(rt *meta.Runtime, a, b any) (any, error) { return binArith(rt, api.OpPow, a, b) }

// Unm is unary minus: §4.5's metamethod lookup for a unary op consults
// both "sides" of the same operand, matching state/lk_value.go's
// callMetamethod(a, a, ...) convention for unary ops.
func Unm(rt *meta.Runtime, a any) (any, error) {
	if res, ok := value.Arith(api.OpUnm, a, a); ok {
		return res, nil
	}
	if mm, found, err := callMetamethod(rt, a, a, api.MetaUnm); err != nil {
		return nil, err
	} else if found {
		return mm, nil
	}
	// Unary, so only one operand to report — unlike binArith's arithError,
	// which reports a two-operand "... on <type> and <type>" message when
	// a binary op's metamethod lookup also fails.
	return nil, lkerr.Arithmetic("-", value.TypeName(a))
}
