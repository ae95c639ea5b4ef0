// C3: the string kernel. Lua strings are represented as plain Go strings
// (an immutable byte sequence already, which is exactly what §3 asks for);
// no separate wrapper type is introduced, matching the `any`-based value
// representation the rest of this package uses.
package value

// IsConcatable reports whether v can take part in `..` or numeric-to-string
// coercion without a metamethod: only strings and numbers qualify (§4.3).
func IsConcatable(v any) bool {
	switch v.(type) {
	case string, int64, float64:
		return true
	default:
		return false
	}
}

// StringLen returns a string's byte length (#s, §4.3).
func StringLen(s string) int64 { return int64(len(s)) }

// CompareStrings implements §4.3's unsigned-byte lexicographic ordering.
// Go's native string comparison already compares byte-by-byte as unsigned
// bytes (Go strings are byte sequences, not code points), so this is a
// direct pass-through kept as a named function for callers that want to
// avoid spelling out `<`/`<=` inline and to document the grounding: §8
// scenario 5 ("Aaa" < "aaa" true, uppercase ASCII sorts lower) holds
// exactly because Go compares the raw bytes, same as reference Lua's
// strcoll-free byte compare.
func CompareStrings(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Substring returns s[i-1:j] (1-based, inclusive), clamped to s's bounds, a
// zero-copy slice as §4.3 permits.
func Substring(s string, i, j int64) string {
	n := int64(len(s))
	if i < 1 {
		i = 1
	}
	if j > n {
		j = n
	}
	if i > j {
		return ""
	}
	return s[i-1 : j]
}

// ConcatFragment renders a string-or-number value the way `..` formats its
// operands (§4.3): strings pass through, numbers use the same %.14g/%d
// rule as ToGoString. Callers must check IsConcatable first; ops.Concat is
// responsible for the metamethod fallback on anything else.
func ConcatFragment(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case int64, float64:
		return ToGoString(x)
	default:
		panic("value: ConcatFragment called on a non-string/number value")
	}
}
