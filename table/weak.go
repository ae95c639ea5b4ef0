package table

import (
	glc "git.lolli.tech/lollipopkit/go_lru_cacher"
)

// weakCapacity bounds how many hash entries a weak-mode table retains
// before the oldest become eligible for reclamation. §4.4 leaves "precise
// timing" implementation-defined; a bounded LRU is the concrete contract
// this repo picks, reusing the teacher's own go_lru_cacher rather than
// introducing a from-scratch GC-aware weak map.
const weakCapacity = 4096

// weakStore backs the hash part of a table whose metatable sets __mode.
// It is not a byte-for-byte reimplementation of GC weak references (Go's
// GC gives no such hook without finalizers, which the teacher's own
// dependency set has no library for either); instead it bounds retention
// so that sufficiently old/unused entries are observably absent from
// Get/Next, satisfying the eventual-absence half of §4.4's contract.
//
// Both observed call sites of glc.Cacher in the pack (stdlib/lib_re.go's
// reCacher, stdlib/lib_json.go's gjsonCacher) key it by a plain string
// (a regex pattern, a JSON source string); a Lua table key can be any of
// int64/float64/string/bool/*Table/Callable, so keys are normalized to
// a string (via normalizeKey+keyString, matching DebugJSON's own
// non-string-key rendering) before ever reaching the cacher, and the
// original key is kept alongside the value so iteration can still report
// it.
type weakStore struct {
	mode   string
	cacher *glc.Cacher
	// order preserves insertion order for forEach/DebugJSON determinism
	// within a single unmutated snapshot; glc.Cacher itself does not
	// expose iteration.
	order []string
	set_  map[string]bool
}

type weakEntry struct {
	key any
	val any
}

func newWeakStore(mode string) *weakStore {
	return &weakStore{
		mode:   mode,
		cacher: glc.NewCacher(weakCapacity),
		set_:   make(map[string]bool),
	}
}

func (w *weakStore) storesValues() bool {
	return true
}

func (w *weakStore) get(key any) (any, bool) {
	raw, ok := w.cacher.Get(keyString(normalizeKey(key)))
	if !ok || raw == nil {
		return nil, false
	}
	e := raw.(weakEntry)
	if e.val == nil {
		return nil, false
	}
	return e.val, true
}

func (w *weakStore) set(key, val any) {
	sk := keyString(normalizeKey(key))
	if !w.set_[sk] {
		w.order = append(w.order, sk)
		w.set_[sk] = true
	}
	w.cacher.Set(sk, weakEntry{key: key, val: val})
}

func (w *weakStore) delete(key any) {
	// go_lru_cacher exposes no Delete; overwriting with a nil-valued entry
	// and filtering on read/iterate is the cache's own eviction idiom
	// elsewhere in the teacher (stdlib/lib_re.go never deletes either —
	// entries just age out under capacity pressure).
	w.cacher.Set(keyString(normalizeKey(key)), weakEntry{key: key, val: nil})
}

func (w *weakStore) empty() bool {
	found := false
	w.forEach(func(any, any) { found = true })
	return !found
}

func (w *weakStore) forEach(fn func(k, v any)) {
	for _, sk := range w.order {
		raw, ok := w.cacher.Get(sk)
		if !ok || raw == nil {
			continue
		}
		e := raw.(weakEntry)
		if e.val != nil {
			fn(e.key, e.val)
		}
	}
}
