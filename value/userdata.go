package value

import "github.com/lollipopkit-lk/luacore/table"

// Userdata wraps an opaque host payload as a first-class Lua value with its
// own per-instance metatable (§3's Metatable contract: "per-instance
// metatables exist for Table and Userdata"). The teacher never
// implemented a userdata type (lk has no host-object boundary use case),
// so this is new code grounded directly on spec.md's contract rather than
// on a teacher file, following the same shape table.Table already uses for
// its own per-instance metatable slot.
type Userdata struct {
	Payload any
	mt      *table.Table
}

// NewUserdata wraps payload as a userdata value with no metatable.
func NewUserdata(payload any) *Userdata {
	return &Userdata{Payload: payload}
}

func (u *Userdata) Metatable() *table.Table      { return u.mt }
func (u *Userdata) SetMetatable(mt *table.Table) { u.mt = mt }
