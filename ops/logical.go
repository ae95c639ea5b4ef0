package ops

import "github.com/lollipopkit-lk/luacore/value"

// And and Or implement §4.6's short-circuit logical operators, returning
// one of the original operands unchanged (never a coerced boolean) the
// way Lua's `and`/`or` do: `a and b` yields a if a is falsy, else b;
// `a or b` yields a if a is truthy, else b. The caller is responsible for
// the actual short-circuiting (not evaluating b unless needed); these
// just pick the result once both values are in hand.
func And(a, b any) any {
	if !value.ToBoolean(a) {
		return a
	}
	return b
}

func Or(a, b any) any {
	if value.ToBoolean(a) {
		return a
	}
	return b
}

// Not implements unary `not`, always yielding a real boolean (unlike And
// /Or, which pass through operands).
func Not(a any) bool {
	return !value.ToBoolean(a)
}
