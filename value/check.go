// C9: the check_<T>/optional_<T> family library authors use to pull
// typed arguments out of a Varargs, plus the is_<T> queries. Grounded on
// state/auxlib.go's CheckInteger/CheckNumber/CheckString/CheckBool/
// OptInteger/OptNumber/OptString/OptBool and their tagError/intError
// helpers, reshaped from the teacher's panic-on-mismatch style into
// (value, error) returns per spec.md §9.
package value

import (
	"github.com/lollipopkit-lk/luacore/lkerr"
	"github.com/lollipopkit-lk/luacore/table"
)

// argType names the actual type of v the way §6's error messages expect,
// honoring a table/userdata's __name metafield when meta supplies one via
// nameHint; nameHint is empty when the caller has none to offer.
func argType(v any, nameHint string) string {
	if nameHint != "" {
		return nameHint
	}
	return TypeName(v)
}

// CheckInteger requires arg i to be an integer or an integer-valued
// number/numeric string; fatal (returns an error) otherwise. Mirrors
// luaL_checkinteger's "number has no integer representation" special case.
func CheckInteger(args *Varargs, i int) (int64, error) {
	v := args.Arg(i)
	n, ok := ToGoIntOK(v)
	if ok {
		return n, nil
	}
	if _, isNum := ToGoFloatOK(v); isNum {
		return 0, lkerr.ArgumentExtra(i, "number has no integer representation")
	}
	return 0, lkerr.Argument(i, "number", argType(v, ""))
}

// OptionalInteger returns def if arg i is nil/absent, else CheckInteger.
func OptionalInteger(args *Varargs, i int, def int64) (int64, error) {
	if args.Narg() < i || args.Arg(i) == nil {
		return def, nil
	}
	return CheckInteger(args, i)
}

// CheckNumber requires arg i to be a number or a numeric string.
func CheckNumber(args *Varargs, i int) (float64, error) {
	v := args.Arg(i)
	f, ok := ToGoFloatOK(v)
	if !ok {
		return 0, lkerr.Argument(i, "number", argType(v, ""))
	}
	return f, nil
}

// OptionalNumber returns def if arg i is nil/absent, else CheckNumber.
func OptionalNumber(args *Varargs, i int, def float64) (float64, error) {
	if args.Narg() < i || args.Arg(i) == nil {
		return def, nil
	}
	return CheckNumber(args, i)
}

// CheckString requires arg i to be a string, or a number (which converts
// the way §4.1 says numeric-to-string conversions always can).
func CheckString(args *Varargs, i int) (string, error) {
	v := args.Arg(i)
	switch x := v.(type) {
	case string:
		return x, nil
	case int64, float64:
		return ToGoString(x), nil
	default:
		return "", lkerr.Argument(i, "string", argType(v, ""))
	}
}

// OptionalString returns def if arg i is nil/absent, else CheckString.
func OptionalString(args *Varargs, i int, def string) (string, error) {
	if args.Narg() < i || args.Arg(i) == nil {
		return def, nil
	}
	return CheckString(args, i)
}

// CheckBool requires arg i to be exactly a boolean (unlike ToBoolean,
// which coerces every non-nil/false value to true, a check_bool must
// reject e.g. a table argument).
func CheckBool(args *Varargs, i int) (bool, error) {
	v := args.Arg(i)
	b, ok := v.(bool)
	if !ok {
		return false, lkerr.Argument(i, "boolean", argType(v, ""))
	}
	return b, nil
}

// OptionalBool returns def if arg i is nil/absent, else CheckBool.
func OptionalBool(args *Varargs, i int, def bool) (bool, error) {
	if args.Narg() < i || args.Arg(i) == nil {
		return def, nil
	}
	return CheckBool(args, i)
}

// CheckTable requires arg i to be a table.
func CheckTable(args *Varargs, i int) (*table.Table, error) {
	v := args.Arg(i)
	t, ok := v.(*table.Table)
	if !ok {
		return nil, lkerr.Argument(i, "table", argType(v, ""))
	}
	return t, nil
}

// OptionalTable returns def if arg i is nil/absent, else CheckTable.
func OptionalTable(args *Varargs, i int, def *table.Table) (*table.Table, error) {
	if args.Narg() < i || args.Arg(i) == nil {
		return def, nil
	}
	return CheckTable(args, i)
}

// CheckAny requires only that arg i is present (not none) — §4.9's
// luaL_checkany equivalent.
func CheckAny(args *Varargs, i int) (any, error) {
	if args.Narg() < i {
		return nil, lkerr.ArgumentExtra(i, "value expected")
	}
	return args.Arg(i), nil
}

// CheckFunction requires arg i to be a Callable.
func CheckFunction(args *Varargs, i int) (Callable, error) {
	v := args.Arg(i)
	f, ok := v.(Callable)
	if !ok {
		return nil, lkerr.Argument(i, "function", argType(v, ""))
	}
	return f, nil
}

// Is<T> queries, total over the value universe, never erroring.

func IsInteger(v any) bool { _, ok := v.(int64); return ok }
func IsNumber(v any) bool  { _, ok := ToGoFloatOK(v); return ok }
func IsString(v any) bool {
	switch v.(type) {
	case string, int64, float64:
		return true
	default:
		return false
	}
}
func IsTable(v any) bool {
	_, ok := v.(*table.Table)
	return ok
}
func IsFunction(v any) bool {
	_, ok := v.(Callable)
	return ok
}
func IsThread(v any) bool {
	_, ok := v.(Thread)
	return ok
}
func IsBoolean(v any) bool {
	_, ok := v.(bool)
	return ok
}
