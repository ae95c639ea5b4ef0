package ops_test

import "github.com/lollipopkit-lk/luacore/value"

// funcCallable adapts a plain Go func into a value.Callable for tests,
// standing in for the real closures an interpreter would supply.
type funcCallable struct {
	fn func(args *value.Varargs) (*value.Varargs, error)
}

func (f *funcCallable) Invoke(args *value.Varargs) (*value.Varargs, *value.TailCall, error) {
	res, err := f.fn(args)
	return res, nil, err
}
