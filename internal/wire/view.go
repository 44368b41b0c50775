// Package wire provides the bounded, read-only byte views and bit-level
// cursor used to walk ASTERIX records without copying the caller's buffer.
package wire

// View is an immutable, bounded read window over a caller-owned buffer.
// It never allocates and never reads past its own length; it is the
// decoder's only way of looking at bytes it does not own.
type View struct {
	data []byte
}

// NewView wraps buf without copying it. The caller must not mutate buf
// for the lifetime of the View.
func NewView(buf []byte) View {
	return View{data: buf}
}

// Len returns the number of bytes remaining in the view.
func (v View) Len() int {
	return len(v.data)
}

// Bytes returns the underlying slice. Callers must treat it as read-only.
func (v View) Bytes() []byte {
	return v.data
}

// At returns the byte at i and whether i was in bounds.
func (v View) At(i int) (byte, bool) {
	if i < 0 || i >= len(v.data) {
		return 0, false
	}
	return v.data[i], true
}

// Slice returns the sub-view [start:end), or false if the range is out
// of bounds.
func (v View) Slice(start, end int) (View, bool) {
	if start < 0 || end < start || end > len(v.data) {
		return View{}, false
	}
	return View{data: v.data[start:end]}, true
}

// Advance drops the first n bytes, returning the remainder. n must not
// exceed Len().
func (v View) Advance(n int) View {
	if n >= len(v.data) {
		return View{}
	}
	return View{data: v.data[n:]}
}

// BitWalker is a single-byte cursor used by field handlers to pull
// sub-byte subfields whose widths are known at decode time. It never
// advances past the byte it was constructed with.
type BitWalker struct {
	b byte
}

// NewBitWalker constructs a walker over a single octet.
func NewBitWalker(b byte) BitWalker {
	return BitWalker{b: b}
}

// Bit reports whether bit index pos (0 = LSB, 7 = MSB) is set.
func (w BitWalker) Bit(pos uint) bool {
	return w.b&(1<<pos) != 0
}

// Field extracts width bits starting at the low bit lo (inclusive),
// e.g. Field(4, 2) on 0b00110000 returns 0b11.
func (w BitWalker) Field(lo, width uint) byte {
	mask := byte((1 << width) - 1)
	return (w.b >> lo) & mask
}
