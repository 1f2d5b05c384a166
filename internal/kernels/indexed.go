package kernels

// IndexedCompose composes an IndexedArray's own index with an incoming
// carry: element i of the carried view is content[index[carry[i]]]. This is
// the "indexed and option nodes compose their index/mask with the incoming
// nextcarry before delegating" rule (spec §4.3).
func IndexedCompose(index []int64, carry []int64) []int64 {
	out := make([]int64, len(carry))
	for i, c := range carry {
		out[i] = index[c]
	}
	return out
}

// OptionCompose composes an OptionArray's mask-or-index with an incoming
// carry, reporting which positions are missing (negative index) so the
// caller can build the paired validity mask for the result.
func OptionCompose(maskOrIndex []int64, carry []int64) (composed []int64, valid []bool) {
	composed = make([]int64, len(carry))
	valid = make([]bool, len(carry))
	for i, c := range carry {
		v := maskOrIndex[c]
		composed[i] = v
		valid[i] = v >= 0
	}
	return composed, valid
}

