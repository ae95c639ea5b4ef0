// Package table implements C4: the hybrid array/hash Lua table, its raw
// operations (no metamethod consultation — that is meta/ops's job), and
// next-based iteration.
//
// Grounded on state/lk_table.go (the array/hash split, the array
// grow/shrink dance in put, the snapshot-of-keys next()) with the
// duplicate, half-migrated state/lua_table.go and the list/map split of
// state/lk_list.go+state/lk_map.go folded back into the single
// representation lk_table.go settled on.
package table

import (
	"math"
	"strconv"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Table is Lua's one aggregate type: a dense array prefix (1-based keys
// 1..n) plus a hash part for everything else. nil is never a stored value;
// writing nil deletes. NaN is never a key (Put panics, matching reference
// Lua's hard error rather than a recoverable one, since it indicates a
// host bug rather than a user-level Lua error).
type Table struct {
	arr  []any
	hash map[any]any

	metatable *Table

	keys    map[any]any // next() snapshot, keyed by "key before this one"
	lastKey any
	changed bool

	weak *weakStore
}

// New creates a table sized for nArr array slots and nRec hash entries, the
// same two-argument shape as lua_createtable/state/api_get.go's
// CreateTable.
func New(nArr, nRec int) *Table {
	t := &Table{}
	if nArr > 0 {
		t.arr = make([]any, 0, nArr)
	}
	if nRec > 0 {
		t.hash = make(map[any]any, nRec)
	}
	return t
}

// Metatable returns the table's own (per-instance) metatable, or nil.
func (t *Table) Metatable() *Table { return t.metatable }

// SetMetatable installs t's per-instance metatable. Protected-metatable
// checking is meta's job (it knows about __metatable); Table.SetMetatable
// is the raw, unconditional setter meta.SetMetatable calls after that
// check passes.
func (t *Table) SetMetatable(mt *Table) { t.metatable = mt }

// HasMetafield reports whether t's metatable defines fieldName, without
// walking an __index chain (a one-hop raw lookup, matching
// state/lk_table.go's hasMetafield).
func (t *Table) HasMetafield(fieldName string) bool {
	if t.metatable == nil {
		return false
	}
	return t.metatable.Get(fieldName) != nil
}

// Combine merges other's array and hash entries into t, overwriting on key
// collision. Grounded on state/lk_table.go's combine, which the teacher
// uses to implement its own `table + table` arithmetic extension (kept
// here, non-mutating at the call site — see ops.Add — as a documented
// extension beyond reference Lua; see DESIGN.md).
func (t *Table) Combine(other *Table) {
	if other == nil {
		return
	}
	for i, v := range other.arr {
		t.Put(int64(i+1), v)
	}
	for k, v := range other.hash {
		t.Put(k, v)
	}
	if other.weak != nil {
		other.weak.forEach(func(k, v any) {
			t.Put(k, v)
		})
	}
}

// Len implements §3's border rule over the dense array prefix: since Put
// keeps arr free of trailing nils (see shrinkArray), len(arr) is always a
// valid border for a table with no holes, and remains /a/ valid border
// (per spec.md's "implementation may choose any") when holes exist.
func (t *Table) Len() int64 { return int64(len(t.arr)) }

func normalizeKey(key any) any {
	if f, ok := key.(float64); ok {
		if i, ok := floatToInt(f); ok {
			return i
		}
	}
	return key
}

func floatToInt(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

// Get is rawget: no metamethod consultation, matching §4.4.
func (t *Table) Get(key any) any {
	key = normalizeKey(key)
	if idx, ok := key.(int64); ok && idx >= 1 && idx <= int64(len(t.arr)) {
		return t.arr[idx-1]
	}
	if t.hash == nil {
		if t.weak != nil {
			v, _ := t.weak.get(key)
			return v
		}
		return nil
	}
	v := t.hash[key]
	if v == nil && t.weak != nil {
		v, _ = t.weak.get(key)
	}
	return v
}

// Put is rawset: writing nil deletes; nil/NaN keys panic (a host-level
// invariant violation, not a recoverable Lua error — see §3).
func (t *Table) Put(key, val any) {
	if key == nil {
		panic("table index is nil")
	}
	if f, ok := key.(float64); ok && math.IsNaN(f) {
		panic("table index is NaN")
	}

	t.changed = true
	key = normalizeKey(key)

	if idx, ok := key.(int64); ok && idx >= 1 {
		arrLen := int64(len(t.arr))
		if idx <= arrLen {
			t.arr[idx-1] = val
			if idx == arrLen && val == nil {
				t.shrinkArray()
			}
			return
		}
		if idx == arrLen+1 && val != nil {
			delete(t.hash, key)
			if t.weak != nil {
				t.weak.delete(key)
			}
			t.arr = append(t.arr, val)
			t.expandArray()
			return
		}
	}

	if val == nil {
		delete(t.hash, key)
		if t.weak != nil {
			t.weak.delete(key)
		}
		return
	}
	if t.weak != nil && t.weak.storesValues() {
		t.weak.set(key, val)
		return
	}
	if t.hash == nil {
		t.hash = make(map[any]any, 8)
	}
	t.hash[key] = val
}

func (t *Table) shrinkArray() {
	for i := len(t.arr) - 1; i >= 0; i-- {
		if t.arr[i] != nil {
			break
		}
		t.arr = t.arr[:i]
	}
}

func (t *Table) expandArray() {
	for idx := int64(len(t.arr)) + 1; ; idx++ {
		val, found := t.hash[idx]
		if !found {
			break
		}
		delete(t.hash, idx)
		t.arr = append(t.arr, val)
	}
}

// Next implements the iteration protocol of §3: stable for the duration of
// an unmutated table, snapshotting key order into `keys` the first time
// it's called (or the first time after a mutation) and walking that
// snapshot thereafter, matching state/lk_table.go's nextKey/initKeys.
func (t *Table) Next(key any) (nextKey, nextVal any, ok bool) {
	if t.keys == nil || (key == nil && t.changed) {
		t.initKeys()
		t.changed = false
	}

	nk := t.keys[key]
	if nk == nil && key != nil && key != t.lastKey {
		// A caller may pass the string form of an integer array key back
		// in (e.g. after a round-trip through tostring); tolerate it the
		// way the teacher's nextKey does.
		if s, isStr := key.(string); isStr {
			if i, err := strconv.ParseInt(s, 10, 64); err == nil {
				nk = t.keys[i]
			}
		}
	}
	if nk == nil {
		return nil, nil, false
	}
	return nk, t.Get(nk), true
}

func (t *Table) initKeys() {
	t.keys = make(map[any]any)
	var key any
	for i := range t.arr {
		if t.arr[i] != nil {
			t.keys[key] = int64(i + 1)
			key = int64(i + 1)
		}
	}
	for k, v := range t.hash {
		if v != nil {
			t.keys[key] = k
			key = k
		}
	}
	if t.weak != nil {
		t.weak.forEach(func(k, v any) {
			if v != nil {
				t.keys[key] = k
				key = k
			}
		})
	}
	t.lastKey = key
}

// Insert/Remove/Sort/Range below implement the remaining table.*
// operations, all in terms of the raw array part.

// Insert shifts arr[pos-1:] right by one and stores val at pos (1-based),
// mirroring table.insert(t, pos, val); pos == Len()+1 appends.
func (t *Table) Insert(pos int64, val any) {
	n := int64(len(t.arr))
	if pos < 1 || pos > n+1 {
		panic("bad position to table.insert")
	}
	t.arr = append(t.arr, nil)
	copy(t.arr[pos:], t.arr[pos-1:n])
	t.arr[pos-1] = val
	t.changed = true
}

// Remove deletes and returns arr[pos-1] (1-based), shifting the remainder
// left, mirroring table.remove(t, pos).
func (t *Table) Remove(pos int64) any {
	n := int64(len(t.arr))
	if n == 0 {
		return nil
	}
	if pos < 1 || pos > n {
		panic("bad position to table.remove")
	}
	val := t.arr[pos-1]
	copy(t.arr[pos-1:], t.arr[pos:])
	t.arr = t.arr[:n-1]
	t.changed = true
	return val
}

// Sort orders the array part in place using less, a strict-weak-order
// "less than" comparator. Sort has no default comparator of its own: the
// caller always supplies an already-resolved one.
func (t *Table) Sort(less func(a, b any) bool) {
	arr := t.arr
	// insertion sort avoids importing sort.Slice's reflection path and
	// keeps the comparator's strict-weak-order contract explicit: an
	// inconsistent comparator degrades to a merely-unsorted result instead
	// of a reflect-package panic.
	for i := 1; i < len(arr); i++ {
		for j := i; j > 0 && less(arr[j], arr[j-1]); j-- {
			arr[j], arr[j-1] = arr[j-1], arr[j]
		}
	}
}

// Range returns a copy of arr[i-1:j] (1-based, inclusive) for table.concat's
// range argument handling.
func (t *Table) Range(i, j int64) []any {
	if i < 1 {
		i = 1
	}
	if j > int64(len(t.arr)) {
		j = int64(len(t.arr))
	}
	if i > j {
		return nil
	}
	out := make([]any, j-i+1)
	copy(out, t.arr[i-1:j])
	return out
}

// SetWeakMode configures (or clears, when mode is "") the bounded weak
// store backing this table's hash part, per §4.4's `__mode` contract.
// Called by meta.SetMetatable after it reads `__mode` off the new
// metatable; Table itself never inspects its own metatable.
func (t *Table) SetWeakMode(mode string) {
	if mode == "" {
		t.weak = nil
		return
	}
	t.weak = newWeakStore(mode)
	// Any hash entries already present move into the weak store so the
	// reclamation contract applies to them too.
	for k, v := range t.hash {
		t.weak.set(k, v)
	}
	t.hash = nil
}

// DebugJSON renders the table's array/hash shape as a JSON-ish value for
// diagnostics (ops.ToString's fallback path when no __tostring/__name
// metafield applies to a table). Grounded on state/lk_table.go's
// String()/Json(), which used a package-level `json` encoder for the same
// purpose; here it's github.com/json-iterator/go directly.
func (t *Table) DebugJSON(render func(any) any) string {
	if len(t.hash) == 0 && (t.weak == nil || t.weak.empty()) {
		arr := make([]any, len(t.arr))
		for i, v := range t.arr {
			arr[i] = render(v)
		}
		s, _ := json.MarshalToString(arr)
		return s
	}
	m := make(map[string]any, len(t.arr)+len(t.hash))
	for i, v := range t.arr {
		if v != nil {
			m[strconv.Itoa(i+1)] = render(v)
		}
	}
	for k, v := range t.hash {
		m[keyString(k)] = render(v)
	}
	if t.weak != nil {
		t.weak.forEach(func(k, v any) {
			m[keyString(k)] = render(v)
		})
	}
	s, _ := json.MarshalToString(m)
	return s
}

func keyString(k any) string {
	switch v := k.(type) {
	case string:
		return v
	default:
		s, _ := json.MarshalToString(v)
		return s
	}
}
