// C2: the number arithmetic kernel. Each function here computes directly
// when both operands are numeric (or string-coercible to numeric) and
// returns ok=false otherwise, so meta/ops can fall through to metamethod
// dispatch (§4.2/§4.5's two-step contract). No metamethod lookup happens
// in this file — that is meta's job (C5).
//
// Grounded on state/api_arith.go's operator table (iadd/fadd/isub/...)
// and _arith's int-first-else-float promotion, adapted from the teacher's
// bitwise-inclusive Lua 5.3 operator set down to spec.md §4.2's Lua 5.2
// arithmetic-only set (+ - * / % ^ unary-).
package value

import (
	"math"

	"github.com/lollipopkit-lk/luacore/api"
	"github.com/lollipopkit-lk/luacore/internal/numconv"
)

// Arith computes op(a, b) directly when possible. ok is false when at
// least one operand is neither numeric nor a number-coercible string, in
// which case the caller must consult §4.5's metamethod protocol.
func Arith(op api.ArithOp, a, b any) (result any, ok bool) {
	ai, aIsInt := a.(int64)
	bi, bIsInt := b.(int64)
	if aIsInt && bIsInt && op != api.OpDiv && op != api.OpPow {
		if v, done := intArith(op, ai, bi); done {
			return v, true
		}
	}

	af, aOK := ToGoFloatOK(a)
	bf, bOK := ToGoFloatOK(b)
	if !aOK || !bOK {
		return nil, false
	}
	return floatArith(op, af, bf), true
}

// intArith computes the integer-preferred path; done is false when the
// result must come from the float path instead: Mod with a zero divisor,
// Unm of math.MinInt64, and any op without an integer case here (Div and
// Pow, for which Arith never calls intArith).
func intArith(op api.ArithOp, a, b int64) (int64, bool) {
	switch op {
	case api.OpAdd:
		return a + b, true
	case api.OpSub:
		return a - b, true
	case api.OpMul:
		return a * b, true
	case api.OpMod:
		if b == 0 {
			return 0, false // fall to float path -> NaN, matching §8 scenario 6
		}
		return numconv.IMod(a, b), true
	case api.OpUnm:
		if a == math.MinInt64 {
			return 0, false // promotes to double, matching §4.2's INT_MIN rule
		}
		return -a, true
	default:
		return 0, false
	}
}

func floatArith(op api.ArithOp, x, y float64) float64 {
	switch op {
	case api.OpAdd:
		return x + y
	case api.OpSub:
		return x - y
	case api.OpMul:
		return x * y
	case api.OpDiv:
		return x / y // IEEE 754 already gives ±Inf/NaN per §4.2's table
	case api.OpMod:
		return numconv.FMod(x, y)
	case api.OpPow:
		return math.Pow(x, y)
	case api.OpUnm:
		return -x
	default:
		panic("value: unknown arith op")
	}
}
