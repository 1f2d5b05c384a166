package buffer

// Index is a view (backing Buffer, offset, length) into a Buffer of int64
// values — the typed currency every index kernel (nextcarry, offsets,
// starts/stops, tags) computes in. Invariant: 0 <= offset <=
// offset+length <= buffer.Len().
type Index struct {
	buf    *Buffer[int64]
	offset int
	length int
}

// NewIndex constructs an Index view over buf, panicking if the bounds
// invariant is violated — the invariant is established by the caller when
// an Index is first carved out of a freshly built Buffer, not something a
// caller recovers from.
func NewIndex(buf *Buffer[int64], offset, length int) Index {
	if offset < 0 || length < 0 || offset+length > buf.Len() {
		panic("buffer: index out of buffer bounds")
	}
	return Index{buf: buf, offset: offset, length: length}
}

// Len returns the number of integers the Index spans.
func (x Index) Len() int {
	return x.length
}

// Get returns the i-th integer.
func (x Index) Get(i int) int64 {
	return x.buf.At(x.offset + i)
}

// Slice returns the contiguous sub-view [start, stop) of the index.
func (x Index) Slice(start, stop int) Index {
	if start < 0 || stop < start || stop > x.length {
		panic("buffer: index slice out of range")
	}
	return Index{buf: x.buf, offset: x.offset + start, length: stop - start}
}

// Buffer returns the backing buffer (shared, not copied).
func (x Index) Buffer() *Buffer[int64] {
	return x.buf
}

// Offset returns the view's element offset into its backing buffer.
func (x Index) Offset() int {
	return x.offset
}

// ToInt64 widens the whole view into a freshly allocated []int64, the
// common currency the index kernels and carry operations compute in.
func (x Index) ToInt64() []int64 {
	out := make([]int64, x.length)
	for i := range out {
		out[i] = x.Get(i)
	}
	return out
}

// CarryInt64 gathers elements of x at the positions named by carry,
// producing a new []int64 — the typed-index analogue of Content.carry.
func (x Index) CarryInt64(carry []int64) []int64 {
	out := make([]int64, len(carry))
	for i, c := range carry {
		out[i] = x.Get(int(c))
	}
	return out
}

// FromInt64 builds a fresh Index from plain values, used pervasively by
// the kernels to materialize nextcarry/nextadvanced vectors.
func FromInt64(values []int64) Index {
	return NewIndex(New(values), 0, len(values))
}
