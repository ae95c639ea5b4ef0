package value

import "github.com/lollipopkit-lk/luacore/api"

// GoFunc adapts a host-provided api.GoFunction into a Callable, the
// boundary §6 describes for host-registered builtins: anything reachable
// from Lua code must present the same call(self, args) surface as an
// ordinary Lua function, builtins included. api.GoFunction's signature has
// no tail-call slot (it returns (api.Varargs, error), not a *TailCall), so
// GoFunc can never hand the trampoline a tail call — a builtin that wants
// to delegate to another Callable in tail position must be written as a
// value.Callable directly, not as a plain api.GoFunction.
type GoFunc struct {
	Fn api.GoFunction
}

func (g GoFunc) Invoke(args *Varargs) (*Varargs, *TailCall, error) {
	results, err := g.Fn(args)
	if err != nil {
		return nil, nil, err
	}
	out, _ := results.(*Varargs)
	return out, nil, nil
}
