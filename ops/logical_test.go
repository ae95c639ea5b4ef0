package ops_test

import (
	"testing"

	"github.com/lollipopkit-lk/luacore/ops"
	"github.com/lollipopkit-lk/luacore/table"
)

// §8's identities: a.and_(b) = if a.to_boolean() then b else a; a.or_(b) =
// if a.to_boolean() then a else b. Both return an operand unchanged, never
// a coerced boolean.
func TestAndReturnsSecondWhenFirstTruthy(t *testing.T) {
	if got := ops.And(int64(1), "b"); got != "b" {
		t.Errorf("And(1, b) = %v, want b", got)
	}
}

func TestAndReturnsFirstWhenFalsy(t *testing.T) {
	if got := ops.And(nil, "b"); got != nil {
		t.Errorf("And(nil, b) = %v, want nil", got)
	}
	if got := ops.And(false, "b"); got != false {
		t.Errorf("And(false, b) = %v, want false", got)
	}
}

func TestOrReturnsFirstWhenTruthy(t *testing.T) {
	tb := table.New(0, 0)
	if got := ops.Or(tb, "b"); got != any(tb) {
		t.Errorf("Or(tb, b) = %v, want tb", got)
	}
}

func TestOrReturnsSecondWhenFalsy(t *testing.T) {
	if got := ops.Or(nil, "fallback"); got != "fallback" {
		t.Errorf("Or(nil, fallback) = %v, want fallback", got)
	}
	if got := ops.Or(false, "fallback"); got != "fallback" {
		t.Errorf("Or(false, fallback) = %v, want fallback", got)
	}
}

// §8: Lua truthiness is false only for nil and boolean false; 0 and "" are
// both truthy, unlike many host languages.
func TestNotTruthinessEdgeCases(t *testing.T) {
	cases := []struct {
		v    any
		want bool
	}{
		{nil, true},
		{false, true},
		{true, false},
		{int64(0), false},
		{"", false},
	}
	for _, c := range cases {
		if got := ops.Not(c.v); got != c.want {
			t.Errorf("Not(%#v) = %v, want %v", c.v, got, c.want)
		}
	}
}
