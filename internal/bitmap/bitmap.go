// Package bitmap adapts github.com/bits-and-blooms/bitset — the teacher's
// own domain dependency, there used for popcount-compressed presence of
// routing-table prefixes/children — to array-row presence: partitioning a
// carry by UnionArray tag, and representing an OptionArray validity mask
// compactly when it is built from booleans rather than an index.
package bitmap

import "github.com/bits-and-blooms/bitset"

// TagPartition splits row indices [0, len(tags)) into one membership
// bitset per alternative, so a UnionArray can recurse into each
// alternative's content with only the rows that belong to it (spec §4.3:
// "Union nodes partition the carry by tag, recurse per alternative, and
// reassemble.").
type TagPartition struct {
	members []*bitset.BitSet
	order   [][]int64 // tag -> that alternative's row list, in carry order
}

// NewTagPartition partitions carry (row indices into a UnionArray) by the
// tag of each selected row.
func NewTagPartition(tags []int64, carry []int64, numAlternatives int) *TagPartition {
	tp := &TagPartition{
		members: make([]*bitset.BitSet, numAlternatives),
		order:   make([][]int64, numAlternatives),
	}
	for t := range tp.members {
		tp.members[t] = bitset.New(uint(len(carry)))
	}
	for pos, row := range carry {
		tag := tags[row]
		tp.members[tag].Set(uint(pos))
		tp.order[tag] = append(tp.order[tag], row)
	}
	return tp
}

// Rows returns the original-content row indices routed to alternative tag,
// in carry order.
func (tp *TagPartition) Rows(tag int) []int64 {
	return tp.order[tag]
}

// Positions returns, for alternative tag, the positions within the
// original carry (hence within the result) that this alternative fills —
// used to scatter each alternative's sliced-back results into the
// reassembled output in the caller's original order.
func (tp *TagPartition) Positions(tag int) []int {
	out := make([]int, 0, tp.members[tag].Count())
	for i, e := tp.members[tag].NextSet(0); e; i, e = tp.members[tag].NextSet(i + 1) {
		out = append(out, int(i))
	}
	return out
}

// ValidityMask is a compact bitset recording which rows of an OptionArray
// are present (Test(i) == true) vs missing.
type ValidityMask struct {
	set    *bitset.BitSet
	length int
}

// NewValidityMaskFromBools builds a ValidityMask from a plain []bool,
// the representation an OptionArray constructor accepts from callers that
// don't already have a negative-index mask.
func NewValidityMaskFromBools(valid []bool) *ValidityMask {
	set := bitset.New(uint(len(valid)))
	for i, v := range valid {
		if v {
			set.Set(uint(i))
		}
	}
	return &ValidityMask{set: set, length: len(valid)}
}

// Test reports whether row i is present.
func (m *ValidityMask) Test(i int) bool {
	return m.set.Test(uint(i))
}

// Len returns the number of rows the mask covers.
func (m *ValidityMask) Len() int {
	return m.length
}

// Count returns the number of present (non-missing) rows.
func (m *ValidityMask) Count() int {
	return int(m.set.Count())
}
