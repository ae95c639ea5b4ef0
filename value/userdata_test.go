package value_test

import (
	"testing"

	"github.com/lollipopkit-lk/luacore/table"
	"github.com/lollipopkit-lk/luacore/value"
)

func TestUserdataMetatable(t *testing.T) {
	u := value.NewUserdata(42)
	if u.Payload != 42 {
		t.Errorf("Payload = %v, want 42", u.Payload)
	}
	if u.Metatable() != nil {
		t.Error("fresh Userdata should have no metatable")
	}
	mt := table.New(0, 0)
	u.SetMetatable(mt)
	if u.Metatable() != mt {
		t.Error("SetMetatable should install the metatable")
	}
}
