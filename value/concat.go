package value

import "strings"

// ConcatBuffer is the scratch buffer §4.3 requires to make `..` amortized
// O(n) rather than O(n²): a sequence of Append/Prepend calls accumulates
// fragments without materializing an intermediate string after every call,
// and Value() does the one final join.
//
// The buffer only ever holds already-resolved string-or-number fragments;
// it has no awareness of __concat. ops.Concat is the layer that decides,
// per spec.md §4.3's note ("the buffer machinery must defer to the
// operator surface when either operand is not string-or-number"), whether
// a given `..` can feed the buffer directly or must first go through full
// metamethod-aware dispatch and only then push the resulting string in.
type ConcatBuffer struct {
	// back holds appended fragments in chronological order.
	back []string
	// frontRev holds prepended fragments in chronological (i.e. reverse
	// display) order: the most recently prepended fragment is last, so a
	// Prepend is an O(1)-amortized append here rather than an O(n)
	// slice-unshift, and Value() reverses this slice once at join time.
	frontRev []string
}

// Append adds a fragment after everything currently buffered. v must be a
// string or number (IsConcatable(v) == true); see the type doc for why.
func (b *ConcatBuffer) Append(v any) {
	b.back = append(b.back, ConcatFragment(v))
}

// Prepend adds a fragment before everything currently buffered.
func (b *ConcatBuffer) Prepend(v any) {
	b.frontRev = append(b.frontRev, ConcatFragment(v))
}

// SetValue discards any buffered fragments and starts over with v as the
// sole content.
func (b *ConcatBuffer) SetValue(v any) {
	b.back = b.back[:0]
	b.frontRev = b.frontRev[:0]
	b.back = append(b.back, ConcatFragment(v))
}

// Value joins every buffered fragment into one string, front-to-back.
func (b *ConcatBuffer) Value() string {
	var sb strings.Builder
	n := 0
	for _, s := range b.frontRev {
		n += len(s)
	}
	for _, s := range b.back {
		n += len(s)
	}
	sb.Grow(n)
	for i := len(b.frontRev) - 1; i >= 0; i-- {
		sb.WriteString(b.frontRev[i])
	}
	for _, s := range b.back {
		sb.WriteString(s)
	}
	return sb.String()
}
