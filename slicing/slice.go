// Package slicing implements the parsed N-dimensional indexer (spec §4.3):
// an ordered sequence of SliceItem variants, plus the advanced-index
// bookkeeping used while compiling a Slice into getitem_next calls.
package slicing

// ItemKind discriminates the closed SliceItem variant family.
type ItemKind int

const (
	KindAt ItemKind = iota
	KindRange
	KindEllipsis
	KindNewaxis
	KindArray
	KindField
	KindFields
	KindMissing
)

// Item is one dimension of a Slice: At(i), Range(start,stop,step), an
// ellipsis/newaxis stand-in, a fancy Array, a record Field/Fields
// selector, or a Missing mask.
type Item struct {
	kind ItemKind

	at int64

	// Range
	start, stop, step         int64
	hasStart, hasStop         bool

	// Array: flattened values plus their original nd shape
	values []int64
	shape  []int

	// Field/Fields
	fieldNames []string

	// Missing
	mask []bool
}

func At(i int64) Item { return Item{kind: KindAt, at: i} }

// Range builds a Range item. hasStart/hasStop record whether start/stop
// were given explicitly (spec §4.3's "none" bound, modelled as an
// optional integer rather than a magic value).
func Range(start, stop, step int64, hasStart, hasStop bool) Item {
	return Item{kind: KindRange, start: start, stop: stop, step: step, hasStart: hasStart, hasStop: hasStop}
}

func Ellipsis() Item { return Item{kind: KindEllipsis} }

func Newaxis() Item { return Item{kind: KindNewaxis} }

// ArrayItem builds a fancy-index item from flattened values and their
// original nd shape (used to re-wrap the result, spec §4.3).
func ArrayItem(values []int64, shape []int) Item {
	return Item{kind: KindArray, values: append([]int64(nil), values...), shape: append([]int(nil), shape...)}
}

func Field(name string) Item { return Item{kind: KindField, fieldNames: []string{name}} }

func Fields(names ...string) Item { return Item{kind: KindFields, fieldNames: append([]string(nil), names...)} }

func Missing(mask []bool) Item { return Item{kind: KindMissing, mask: append([]bool(nil), mask...)} }

func (it Item) Kind() ItemKind { return it.kind }
func (it Item) At() int64      { return it.at }

func (it Item) Range() (start, stop, step int64, hasStart, hasStop bool) {
	return it.start, it.stop, it.step, it.hasStart, it.hasStop
}

func (it Item) ArrayValues() (values []int64, shape []int) {
	return append([]int64(nil), it.values...), append([]int(nil), it.shape...)
}

func (it Item) FieldNames() []string { return append([]string(nil), it.fieldNames...) }

func (it Item) MissingMask() []bool { return append([]bool(nil), it.mask...) }

// Slice is a parsed ordered sequence of SliceItem variants.
type Slice struct {
	items []Item
}

// New builds a Slice from items in outer-to-inner order.
func New(items ...Item) Slice {
	return Slice{items: append([]Item(nil), items...)}
}

// Empty reports whether the slice has no remaining dimensions.
func (s Slice) Empty() bool { return len(s.items) == 0 }

// Head returns the first item; callers must check Empty first.
func (s Slice) Head() Item { return s.items[0] }

// Tail returns the slice with the first item removed.
func (s Slice) Tail() Slice {
	if len(s.items) == 0 {
		return s
	}
	return Slice{items: s.items[1:]}
}

// Concat appends other's items after s's, backing the slice composition
// law of spec §8 invariant 6.
func (s Slice) Concat(other Slice) Slice {
	out := make([]Item, 0, len(s.items)+len(other.items))
	out = append(out, s.items...)
	out = append(out, other.items...)
	return Slice{items: out}
}

// Len reports the number of items remaining in the slice.
func (s Slice) Len() int { return len(s.items) }

// Advanced threads broadcast state across dimensions during fancy
// indexing (spec glossary: "length == 0 when no such broadcast is in
// progress"). It is represented as a plain []int64, by convention nil/empty
// meaning "not advanced".
type Advanced []int64

// Empty reports whether no broadcast is in progress.
func (a Advanced) Empty() bool { return len(a) == 0 }

// CheckLength reports whether the invariant "advanced.length == 0 ||
// advanced.length == current_outer_length" (spec §4.3) holds.
func (a Advanced) CheckLength(outerLength int) bool {
	return a.Empty() || len(a) == outerLength
}
