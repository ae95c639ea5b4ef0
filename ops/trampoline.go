package ops

import "github.com/lollipopkit-lk/luacore/value"

// Eval is C8's trampoline: it drives a Callable to completion, absorbing
// any chain of tail calls into a flat loop instead of growing the Go call
// stack one frame per Lua tail call. A Callable that returns a *TailCall
// is asking to be replaced, not nested inside, the current call; Eval is
// the only place that distinction is observed.
//
// Grounded on state/api_call.go's Call, which the teacher drives through
// its own VM loop; here the loop is explicit because there is no bytecode
// interpreter in this package to host it.
func Eval(fn value.Callable, args *value.Varargs) (*value.Varargs, error) {
	for {
		results, tc, err := fn.Invoke(args)
		if err != nil {
			return nil, err
		}
		if tc == nil {
			return results, nil
		}
		fn, args = tc.Func, tc.Args
	}
}
