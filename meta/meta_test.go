package meta_test

import (
	"testing"

	"github.com/lollipopkit-lk/luacore/api"
	"github.com/lollipopkit-lk/luacore/meta"
	"github.com/lollipopkit-lk/luacore/table"
)

func TestTypeMetatableRoundTrip(t *testing.T) {
	rt := meta.New()
	if got := rt.TypeMetatable(api.TNUMBER); got != nil {
		t.Fatalf("fresh Runtime should have no number metatable, got %v", got)
	}

	mt := table.New(0, 0)
	rt.SetTypeMetatable(api.TNUMBER, mt)
	if got := rt.TypeMetatable(api.TNUMBER); got != mt {
		t.Errorf("TypeMetatable(TNUMBER) = %v, want %v", got, mt)
	}
}

func TestSetTypeMetatablePanicsForTable(t *testing.T) {
	rt := meta.New()
	defer func() {
		if recover() == nil {
			t.Error("SetTypeMetatable(TTABLE, ...) should panic; tables use per-instance metatables")
		}
	}()
	rt.SetTypeMetatable(api.TTABLE, table.New(0, 0))
}

// Tables have no per-type slot (SetTypeMetatable panics for TTABLE), so
// GetMetatable reports the table's own per-instance metatable.
func TestGetMetatableReturnsTableInstanceMetatable(t *testing.T) {
	rt := meta.New()
	tb := table.New(0, 0)
	instanceMT := table.New(0, 0)
	instanceMT.Put(string(api.MetaIndex), "instance")
	tb.SetMetatable(instanceMT)

	if got := meta.GetMetatable(rt, tb); got != instanceMT {
		t.Errorf("GetMetatable should return the table's own metatable")
	}
}

// Protected metatable: once __metatable is set, SetMetatable on that table
// must fail.
func TestProtectedMetatable(t *testing.T) {
	rt := meta.New()
	tb := table.New(0, 0)
	protected := table.New(0, 0)
	protected.Put(string(api.MetaMetatable), "locked")
	tb.SetMetatable(protected)

	err := meta.SetMetatable(rt, tb, table.New(0, 0))
	if err == nil {
		t.Fatal("SetMetatable on a table with __metatable set should error")
	}
}

func TestReset(t *testing.T) {
	rt := meta.New()
	rt.SetTypeMetatable(api.TSTRING, table.New(0, 0))
	rt.Reset()
	if got := rt.TypeMetatable(api.TSTRING); got != nil {
		t.Errorf("Reset should clear every per-type slot, got %v", got)
	}
}
