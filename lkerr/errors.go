// Package lkerr is the single error channel of §7: every failure raised by
// value/table/meta/ops surfaces as an *Error carrying either a formatted
// message or an arbitrary Lua value (lua's `error(v)` with non-string v).
//
// Grounded on state/auxlib.go's Error2/ArgError/typeError/tagError, which in
// the teacher panic with a formatted string; here they return a typed,
// inspectable error instead (spec.md §9's redesign note: "exceptions for
// control flow -> a result/error enum").
package lkerr

import "fmt"

// Kind classifies an Error without pinning exact wording, so callers (e.g. a
// protected-call implementation) can branch on the failure family.
type Kind int

const (
	KindType Kind = iota
	KindArgument
	KindArithmetic
	KindComparison
	KindConcat
	KindIndex
	KindCall
	KindProtectedMetatable
	KindLoop
	KindRuntime // lua error(v) with an arbitrary value
)

// Error is the core's one error type.
type Error struct {
	Kind    Kind
	Message string
	// Value holds the arbitrary payload of a Runtime(KindRuntime) error,
	// i.e. whatever was passed to Lua's `error(v)`. For every other kind
	// Value is nil and Message carries the full text.
	Value any
}

func (e *Error) Error() string {
	if e.Kind == KindRuntime && e.Message == "" {
		return fmt.Sprintf("%v", e.Value)
	}
	return e.Message
}

// New builds a message-only error of the given kind.
func New(kind Kind, format string, a ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, a...)}
}

// Value wraps an arbitrary Lua value raised via `error(v)` (§7 "runtime
// error with value"); the value is carried as-is, not stringified.
func Value(v any) *Error {
	if e, ok := v.(*Error); ok {
		return e
	}
	return &Error{Kind: KindRuntime, Value: v}
}

// Arithmetic builds the "attempt to perform arithmetic" family of §6.
func Arithmetic(opSymbol, typeA string, typeB ...string) *Error {
	if len(typeB) == 0 {
		return New(KindArithmetic, "attempt to perform arithmetic %s on %s", opSymbol, typeA)
	}
	return New(KindArithmetic, "attempt to perform arithmetic %s on %s and %s", opSymbol, typeA, typeB[0])
}

// Compare builds the "attempt to compare" family of §6.
func Compare(typeA, typeB string) *Error {
	if typeA == typeB {
		return New(KindComparison, "attempt to compare two %s values", typeA)
	}
	return New(KindComparison, "attempt to compare %s with %s", typeA, typeB)
}

// Concat builds the "attempt to concatenate" family of §6.
func Concat(typeA string, typeB ...string) *Error {
	if len(typeB) == 0 {
		return New(KindConcat, "attempt to concatenate %s", typeA)
	}
	return New(KindConcat, "attempt to concatenate %s and %s", typeA, typeB[0])
}

// Index builds the "attempt to index" family of §6.
func Index(typeName, key string) *Error {
	return New(KindIndex, "attempt to index ? (a %s value) with key '%s'", typeName, key)
}

// Call builds the "attempt to call" family of §6.
func Call(typeName string) *Error {
	return New(KindCall, "attempt to call a %s value", typeName)
}

// Argument builds the "bad argument #i (...)" family of §6/§4.7/§4.9.
func Argument(idx int, expected, got string) *Error {
	return New(KindArgument, "bad argument #%d (%s expected, got %s)", idx, expected, got)
}

// ArgumentExtra is the extraMsg-carrying variant used when the failure is
// not a plain type mismatch (e.g. "number has no integer representation").
func ArgumentExtra(idx int, extraMsg string) *Error {
	return New(KindArgument, "bad argument #%d (%s)", idx, extraMsg)
}

// ProtectedMetatable is the fixed-wording error of §6/§7.
func ProtectedMetatable() *Error {
	return New(KindProtectedMetatable, "cannot change a protected metatable")
}

// LoopInGet / LoopInSet are the fixed-wording errors of §4.4/§6.
func LoopInGet() *Error { return New(KindLoop, "loop in gettable") }
func LoopInSet() *Error { return New(KindLoop, "loop in settable") }
