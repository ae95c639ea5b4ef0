package ops

import (
	"github.com/lollipopkit-lk/luacore/api"
	"github.com/lollipopkit-lk/luacore/meta"
	"github.com/lollipopkit-lk/luacore/table"
	"github.com/lollipopkit-lk/luacore/value"
)

// ToString implements §4.3/§6's tostring: __tostring wins outright if
// present; otherwise a table/userdata with a __name metafield reports
// "name: 0xaddr" instead of the bare type name, matching lauxlib's
// luaL_tolstring; everything else falls back to value.ToGoString, with
// tables rendered through DebugJSON (grounded on state/auxlib.go's
// ToString2).
func ToString(rt *meta.Runtime, v any) (string, error) {
	if mf := meta.GetMetafield(rt, v, api.MetaToString); mf != nil {
		fn, ok := mf.(value.Callable)
		if ok {
			results, err := Call(rt, fn, value.NewVarargs(v))
			if err != nil {
				return "", err
			}
			return value.ToGoString(results.Arg1()), nil
		}
	}

	if name, ok := meta.GetMetafield(rt, v, api.MetaName).(string); ok {
		return name + value.ToGoString(v)[len(value.TypeName(v)):], nil
	}

	if t, ok := v.(*table.Table); ok {
		return t.DebugJSON(func(elem any) any {
			s, err := ToString(rt, elem)
			if err != nil {
				return value.ToGoString(elem)
			}
			return s
		}), nil
	}

	return value.ToGoString(v), nil
}
