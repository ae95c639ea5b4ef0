package ops_test

import (
	"testing"

	"github.com/lollipopkit-lk/luacore/meta"
	"github.com/lollipopkit-lk/luacore/ops"
	"github.com/lollipopkit-lk/luacore/table"
	"github.com/lollipopkit-lk/luacore/value"
)

func TestLenString(t *testing.T) {
	rt := meta.New()
	got, err := ops.Len(rt, "hello")
	if err != nil || got != int64(5) {
		t.Errorf("Len(\"hello\") = %v, %v, want 5, nil", got, err)
	}
}

func TestLenTableRawLength(t *testing.T) {
	rt := meta.New()
	tb := table.New(0, 0)
	tb.Put(int64(1), "a")
	tb.Put(int64(2), "b")
	got, err := ops.Len(rt, tb)
	if err != nil || got != int64(2) {
		t.Errorf("Len(tb) = %v, %v, want 2, nil", got, err)
	}
}

func TestLenMetamethod(t *testing.T) {
	rt := meta.New()
	tb := table.New(0, 0)
	mt := table.New(0, 0)
	mt.Put("__len", &funcCallable{fn: func(args *value.Varargs) (*value.Varargs, error) {
		return value.NewVarargs(int64(42)), nil
	}})
	tb.SetMetatable(mt)

	got, err := ops.Len(rt, tb)
	if err != nil || got != int64(42) {
		t.Errorf("Len via __len = %v, %v, want 42, nil", got, err)
	}
}

func TestConcatStrings(t *testing.T) {
	rt := meta.New()
	got, err := ops.Concat(rt, "a", "b")
	if err != nil || got != "ab" {
		t.Errorf("Concat(a, b) = %v, %v, want ab, nil", got, err)
	}
}

func TestConcatNumberCoerces(t *testing.T) {
	rt := meta.New()
	got, err := ops.Concat(rt, "x", int64(1))
	if err != nil || got != "x1" {
		t.Errorf("Concat(x, 1) = %v, %v, want x1, nil", got, err)
	}
}

func TestConcatNonConcatableErrors(t *testing.T) {
	rt := meta.New()
	tb := table.New(0, 0)
	if _, err := ops.Concat(rt, "x", tb); err == nil {
		t.Error("Concat(x, table) should error with no __concat")
	}
}

func TestConcatManyFoldsRun(t *testing.T) {
	rt := meta.New()
	got, err := ops.ConcatMany(rt, []any{"a", int64(1), "b"})
	if err != nil || got != "a1b" {
		t.Errorf("ConcatMany = %v, %v, want a1b, nil", got, err)
	}
}

// Lua's `..` is right-associative: `a .. tb .. b` means `a .. (tb .. b)`,
// so the metamethod fires on (tb, "b") first, and its result is then the
// right operand of the outer `a .. _`.
func TestConcatManyMixesMetamethod(t *testing.T) {
	rt := meta.New()
	var captured []any
	tb := table.New(0, 0)
	mt := table.New(0, 0)
	mt.Put("__concat", &funcCallable{fn: func(args *value.Varargs) (*value.Varargs, error) {
		captured = args.Slice()
		return value.NewVarargs("X"), nil
	}})
	tb.SetMetatable(mt)

	got, err := ops.ConcatMany(rt, []any{"a", tb, "b"})
	if err != nil {
		t.Fatalf("ConcatMany error: %v", err)
	}
	if got != "aX" {
		t.Errorf("ConcatMany with metamethod = %v, want aX", got)
	}
	if len(captured) != 2 || captured[0] != any(tb) || captured[1] != "b" {
		t.Errorf("__concat should be called as (tb, \"b\"), got %v", captured)
	}
}

// Confirms the fold is genuinely right-associative across a longer chain:
// the metamethod's right operand must be the accumulated right-hand fold
// ("cd"), not just the immediate next element ("c").
func TestConcatManyRightAssociativeOrder(t *testing.T) {
	rt := meta.New()
	var gotArgs []any
	tb := table.New(0, 0)
	mt := table.New(0, 0)
	mt.Put("__concat", &funcCallable{fn: func(args *value.Varargs) (*value.Varargs, error) {
		gotArgs = args.Slice()
		return value.NewVarargs("Y"), nil
	}})
	tb.SetMetatable(mt)

	got, err := ops.ConcatMany(rt, []any{"a", "b", tb, "c", "d"})
	if err != nil {
		t.Fatalf("ConcatMany error: %v", err)
	}
	if got != "abY" {
		t.Errorf("ConcatMany = %v, want abY", got)
	}
	if len(gotArgs) != 2 || gotArgs[0] != any(tb) || gotArgs[1] != "cd" {
		t.Errorf("__concat should be called as (tb, \"cd\"), got %v", gotArgs)
	}
}
