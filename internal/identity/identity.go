// Package identity implements the per-node synthetic row label (spec §3):
// a 2-D integer table (rows x width) plus an ordered field-path, propagated
// alongside a Content through every indexing transform.
//
// The spec models the backing buffer as a tagged (int32 | int64) pair,
// widened on demand by to64(). This implementation keeps a single int64
// backing store and a "narrow" flag recording whether every value so far
// fits in int32 range, which reproduces to64()'s externally observable
// behavior (widen once a downstream length would overflow int32) without
// two physically distinct generic buffer types.
package identity

import (
	"fmt"
	"math"

	"github.com/nestarr/nestarr/internal/buffer"
)

// FieldPathEntry names one record-field descent: (depth, field name).
type FieldPathEntry struct {
	Depth int
	Field string
}

// Identity is a 2-D table of integers, logically shape (length, width),
// plus the field-path accumulated by descending through record fields.
type Identity struct {
	buf       *buffer.Buffer[int64]
	length    int
	width     int
	narrow    bool
	fieldPath []FieldPathEntry
}

// New builds a fresh root identity of the given length and width 1,
// row i = [i] (spec §4.2 setid(): "fresh root identity of correct width").
func New(length int) *Identity {
	data := make([]int64, length)
	for i := range data {
		data[i] = int64(i)
	}
	return &Identity{
		buf:    buffer.New(data),
		length: length,
		width:  1,
		narrow: length <= math.MaxInt32,
	}
}

// FromRows builds an Identity from explicit row-major data of the given
// width, used by descent operations below and by tests asserting exact id
// tables (spec scenario S4).
func FromRows(flat []int64, length, width int, fieldPath []FieldPathEntry) *Identity {
	narrow := true
	for _, v := range flat {
		if v > math.MaxInt32 || v < math.MinInt32 {
			narrow = false
			break
		}
	}
	fp := append([]FieldPathEntry(nil), fieldPath...)
	return &Identity{buf: buffer.New(flat), length: length, width: width, narrow: narrow, fieldPath: fp}
}

// Length returns the identity's row count.
func (id *Identity) Length() int { return id.length }

// Width returns the identity's column count.
func (id *Identity) Width() int { return id.width }

// Narrow reports whether the identity's values currently all fit in
// int32, i.e. whether it has not yet been widened by To64.
func (id *Identity) Narrow() bool { return id.narrow }

// FieldPath returns the ordered (depth, field name) pairs this identity has
// descended through.
func (id *Identity) FieldPath() []FieldPathEntry {
	return append([]FieldPathEntry(nil), id.fieldPath...)
}

// Row returns the i-th row as a fresh slice of width values.
func (id *Identity) Row(i int) []int64 {
	out := make([]int64, id.width)
	copy(out, id.buf.Raw()[i*id.width:(i+1)*id.width])
	return out
}

// Flat exposes the row-major backing values read-only.
func (id *Identity) Flat() []int64 {
	return id.buf.Raw()
}

// To64 widens the identity so downstream arithmetic is safe even once a
// descendant's length would exceed int32 range. Since the backing store is
// already int64, this only flips the narrow flag; it is idempotent.
func (id *Identity) To64() *Identity {
	if !id.narrow {
		return id
	}
	return &Identity{buf: id.buf, length: id.length, width: id.width, narrow: false, fieldPath: id.fieldPath}
}

// Carry gathers rows at the positions named by carry, the identity-side
// counterpart of Content.carry: the i-th row of the result is the
// carry[i]-th row of id.
func (id *Identity) Carry(carry []int64) *Identity {
	out := make([]int64, len(carry)*id.width)
	for i, c := range carry {
		copy(out[i*id.width:(i+1)*id.width], id.Row(int(c)))
	}
	narrow := id.narrow
	if int64(len(carry)) > math.MaxInt32 {
		narrow = false
	}
	return &Identity{buf: buffer.New(out), length: len(carry), width: id.width, narrow: narrow, fieldPath: id.fieldPath}
}

// Range returns the contiguous sub-identity [a, b).
func (id *Identity) Range(a, b int) *Identity {
	out := make([]int64, (b-a)*id.width)
	copy(out, id.buf.Raw()[a*id.width:b*id.width])
	return &Identity{buf: buffer.New(out), length: b - a, width: id.width, narrow: id.narrow, fieldPath: id.fieldPath}
}

// DescendList widens width by one: every outer row's sub-position j in
// [0, size) gets its own row appending j, producing length*size rows of
// width+1 (spec §3: "width grows by 1 at every list-level descent";
// scenario S4). It is the identity-side twin of
// kernels.IdentityFromRegularArray, used for regular list descents; ragged
// lists, whose size varies per row, use DescendRagged instead.
func (id *Identity) DescendList(size int) *Identity {
	out := make([]int64, 0, id.length*size*(id.width+1))
	for row := 0; row < id.length; row++ {
		base := id.Row(row)
		for j := 0; j < size; j++ {
			out = append(out, base...)
			out = append(out, int64(j))
		}
	}
	return &Identity{
		buf:       buffer.New(out),
		length:    id.length * size,
		width:     id.width + 1,
		narrow:    id.narrow && int64(id.length*size) <= math.MaxInt32,
		fieldPath: id.fieldPath,
	}
}

// DescendRagged is DescendList for variable per-row sizes (ListArray /
// ListOffsetArray), where sizes[i] is the i-th row's sublist length.
func (id *Identity) DescendRagged(sizes []int64) *Identity {
	total := int64(0)
	for _, s := range sizes {
		total += s
	}
	out := make([]int64, 0, total*int64(id.width+1))
	for row := 0; row < id.length; row++ {
		base := id.Row(row)
		for j := int64(0); j < sizes[row]; j++ {
			out = append(out, base...)
			out = append(out, j)
		}
	}
	return &Identity{
		buf:       buffer.New(out),
		length:    int(total),
		width:     id.width + 1,
		narrow:    id.narrow && total <= math.MaxInt32,
		fieldPath: id.fieldPath,
	}
}

// DescendField records a record-field descent: appends (depth, name) to the
// field path without changing the row table itself (spec §3: "field_path
// grows by one entry at every record-field descent").
func (id *Identity) DescendField(depth int, name string) *Identity {
	return &Identity{
		buf:       id.buf,
		length:    id.length,
		width:     id.width,
		narrow:    id.narrow,
		fieldPath: append(append([]FieldPathEntry(nil), id.fieldPath...), FieldPathEntry{Depth: depth, Field: name}),
	}
}

func (id *Identity) String() string {
	return fmt.Sprintf("Identity(length=%d, width=%d, narrow=%t, fieldPath=%v)", id.length, id.width, id.narrow, id.fieldPath)
}
