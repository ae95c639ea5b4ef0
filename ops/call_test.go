package ops_test

import (
	"testing"

	"github.com/lollipopkit-lk/luacore/meta"
	"github.com/lollipopkit-lk/luacore/ops"
	"github.com/lollipopkit-lk/luacore/table"
	"github.com/lollipopkit-lk/luacore/value"
)

func TestGetRawHit(t *testing.T) {
	rt := meta.New()
	tb := table.New(0, 0)
	tb.Put("k", "v")
	got, err := ops.Get(rt, tb, "k")
	if err != nil || got != "v" {
		t.Errorf("Get(tb, k) = %v, %v, want v, nil", got, err)
	}
}

func TestGetIndexChainsThroughTables(t *testing.T) {
	rt := meta.New()
	base := table.New(0, 0)
	base.Put("k", "base-value")

	mid := table.New(0, 0)
	midMT := table.New(0, 0)
	midMT.Put("__index", base)
	mid.SetMetatable(midMT)

	got, err := ops.Get(rt, mid, "k")
	if err != nil || got != "base-value" {
		t.Errorf("Get(mid, k) = %v, %v, want base-value, nil", got, err)
	}
}

func TestGetIndexFunctionMetamethod(t *testing.T) {
	rt := meta.New()
	tb := table.New(0, 0)
	mt := table.New(0, 0)
	mt.Put("__index", &funcCallable{fn: func(args *value.Varargs) (*value.Varargs, error) {
		return value.NewVarargs("computed"), nil
	}})
	tb.SetMetatable(mt)

	got, err := ops.Get(rt, tb, "missing")
	if err != nil || got != "computed" {
		t.Errorf("Get via __index function = %v, %v, want computed, nil", got, err)
	}
}

func TestGetIndexLoopErrors(t *testing.T) {
	rt := meta.New()
	a := table.New(0, 0)
	b := table.New(0, 0)
	mtA := table.New(0, 0)
	mtA.Put("__index", b)
	a.SetMetatable(mtA)
	mtB := table.New(0, 0)
	mtB.Put("__index", a)
	b.SetMetatable(mtB)

	_, err := ops.Get(rt, a, "nope")
	if err == nil {
		t.Fatal("Get should error on a cyclic __index chain")
	}
}

func TestSetRawWrite(t *testing.T) {
	rt := meta.New()
	tb := table.New(0, 0)
	if err := ops.Set(rt, tb, "k", "v"); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if got := tb.Get("k"); got != "v" {
		t.Errorf("Get(k) after Set = %v, want v", got)
	}
}

func TestSetNewIndexMetamethod(t *testing.T) {
	rt := meta.New()
	var captured []any
	tb := table.New(0, 0)
	mt := table.New(0, 0)
	mt.Put("__newindex", &funcCallable{fn: func(args *value.Varargs) (*value.Varargs, error) {
		captured = args.Slice()
		return nil, nil
	}})
	tb.SetMetatable(mt)

	if err := ops.Set(rt, tb, "k", "v"); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if tb.Get("k") != nil {
		t.Error("__newindex should intercept the write; the raw table must stay empty")
	}
	if len(captured) != 3 || captured[1] != "k" || captured[2] != "v" {
		t.Errorf("__newindex captured %v, want (self, k, v)", captured)
	}
}

func TestCallPlainFunction(t *testing.T) {
	rt := meta.New()
	fn := &funcCallable{fn: func(args *value.Varargs) (*value.Varargs, error) {
		return value.NewVarargs(args.Arg1()), nil
	}}
	res, err := ops.Call(rt, fn, value.NewVarargs("hi"))
	if err != nil {
		t.Fatalf("Call error: %v", err)
	}
	if res.Arg1() != "hi" {
		t.Errorf("Call result = %v, want hi", res.Arg1())
	}
}

func TestCallViaMetamethodPrependsSelf(t *testing.T) {
	rt := meta.New()
	var captured []any
	mt := table.New(0, 0)
	mt.Put("__call", &funcCallable{fn: func(args *value.Varargs) (*value.Varargs, error) {
		captured = args.Slice()
		return value.NewVarargs("called"), nil
	}})
	callee := table.New(0, 0)
	callee.SetMetatable(mt)

	res, err := ops.Call(rt, callee, value.NewVarargs("arg1"))
	if err != nil {
		t.Fatalf("Call error: %v", err)
	}
	if res.Arg1() != "called" {
		t.Errorf("Call via __call = %v, want called", res.Arg1())
	}
	if len(captured) != 2 || captured[0] != callee || captured[1] != "arg1" {
		t.Errorf("__call should receive (self, arg1), got %v", captured)
	}
}

func TestCallNonCallableErrors(t *testing.T) {
	rt := meta.New()
	if _, err := ops.Call(rt, "not callable", value.NewVarargs()); err == nil {
		t.Error("Call on a plain string should error")
	}
}

// Invoke skips __call resolution entirely, unlike Call: a table with a
// __call metamethod is not itself a value.Callable, so Invoke can't be
// handed one directly — this exercises Invoke straight on a Callable,
// which is the only shape it accepts.
func TestInvokeSkipsCallMetamethodResolution(t *testing.T) {
	fn := &funcCallable{fn: func(args *value.Varargs) (*value.Varargs, error) {
		return value.NewVarargs(args.Arg1()), nil
	}}
	res, err := ops.Invoke(fn, value.NewVarargs("hi"))
	if err != nil {
		t.Fatalf("Invoke error: %v", err)
	}
	if res.Arg1() != "hi" {
		t.Errorf("Invoke result = %v, want hi", res.Arg1())
	}
}

// Invoke still drives a tail call through the same trampoline Call uses.
func TestInvokeFollowsTailCall(t *testing.T) {
	var second value.Callable
	first := &tailCallable{
		next: func(args *value.Varargs) *value.TailCall {
			return &value.TailCall{Func: second, Args: args}
		},
	}
	second = &funcCallable{fn: func(args *value.Varargs) (*value.Varargs, error) {
		return value.NewVarargs("final"), nil
	}}

	res, err := ops.Invoke(first, value.NewVarargs())
	if err != nil {
		t.Fatalf("Invoke error: %v", err)
	}
	if res.Arg1() != "final" {
		t.Errorf("Invoke result = %v, want final", res.Arg1())
	}
}

func TestEvalFollowsTailCall(t *testing.T) {
	var second value.Callable
	first := &tailCallable{
		next: func(args *value.Varargs) *value.TailCall {
			return &value.TailCall{Func: second, Args: args}
		},
	}
	second = &funcCallable{fn: func(args *value.Varargs) (*value.Varargs, error) {
		return value.NewVarargs("final"), nil
	}}

	res, err := ops.Eval(first, value.NewVarargs())
	if err != nil {
		t.Fatalf("Eval error: %v", err)
	}
	if res.Arg1() != "final" {
		t.Errorf("Eval result = %v, want final", res.Arg1())
	}
}

// tailCallable always hands off to another Callable via a TailCall,
// exercising Eval's trampoline loop (C8) instead of returning directly.
type tailCallable struct {
	next func(args *value.Varargs) *value.TailCall
}

func (c *tailCallable) Invoke(args *value.Varargs) (*value.Varargs, *value.TailCall, error) {
	return nil, c.next(args), nil
}
