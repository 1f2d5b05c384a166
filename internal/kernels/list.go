package kernels

// ListSublistLengths returns, for each outer row i, stops[i]-starts[i] —
// the per-outer sublist length that drives every variable-length list
// transform below.
func ListSublistLengths(starts, stops []int64) []int64 {
	out := make([]int64, len(starts))
	for i := range starts {
		out[i] = stops[i] - starts[i]
	}
	return out
}

// ListGetitemNextAt selects element `at` (already meaningful per-row, since
// negative indices canonicalise against each row's own length) from every
// row, producing a length-len(starts) nextcarry into content.
func ListGetitemNextAt(starts, stops []int64, at int64) ([]int64, *Error) {
	out := make([]int64, len(starts))
	for i := range starts {
		length := stops[i] - starts[i]
		idx, err := Canonicalize(at, length)
		if err != nil {
			return nil, err
		}
		out[i] = starts[i] + idx
	}
	return out, nil
}

// ListGetitemNextRange builds, for every row, a contiguous run of the
// normalized range over that row's own [starts[i], stops[i]) sublist, and
// returns the per-row size (nextsize[i]) alongside the flattened nextcarry
// — unlike RegularArray, list rows may have differing nextsize, so the
// result is ragged and callers must track row boundaries via nextsize.
func ListGetitemNextRange(starts, stops []int64, start, stop, step int64) (nextcarry []int64, nextsize []int64) {
	nextsize = make([]int64, len(starts))
	for i := range starts {
		length := stops[i] - starts[i]
		a, b := start, stop
		hasStart, hasStop := true, true
		posStep := step > 0
		RegularizeRangeSlice(&a, &b, posStep, hasStart, hasStop, length)
		nextsize[i] = RangeNextSize(a, b, step)
	}

	total := int64(0)
	for _, n := range nextsize {
		total += n
	}
	nextcarry = make([]int64, 0, total)
	for i := range starts {
		length := stops[i] - starts[i]
		a, b := start, stop
		posStep := step > 0
		RegularizeRangeSlice(&a, &b, posStep, true, true, length)
		for j := int64(0); j < nextsize[i]; j++ {
			nextcarry = append(nextcarry, starts[i]+a+j*step)
		}
	}
	return nextcarry, nextsize
}

// ListGetitemNextArrayRegularize canonicalises a per-row fancy-index head
// (one flattened index list shared by every row, e.g. values that apply
// uniformly) against each row's own length.
func ListGetitemNextArrayRegularize(starts, stops []int64, flathead []int64) ([][]int64, *Error) {
	out := make([][]int64, len(starts))
	for i := range starts {
		length := stops[i] - starts[i]
		row := make([]int64, len(flathead))
		for j, v := range flathead {
			c, err := Canonicalize(v, length)
			if err != nil {
				return nil, err
			}
			row[j] = c
		}
		out[i] = row
	}
	return out, nil
}

// ListGetitemNextArray implements the unadvanced cartesian form for
// variable-length lists: every row is crossed with its own regularized
// flathead (from ListGetitemNextArrayRegularize).
func ListGetitemNextArray(starts []int64, regularized [][]int64) (nextcarry, nextadvanced []int64) {
	h := 0
	if len(regularized) > 0 {
		h = len(regularized[0])
	}
	nextcarry = make([]int64, 0, len(starts)*h)
	nextadvanced = make([]int64, 0, len(starts)*h)
	for i := range starts {
		for j, v := range regularized[i] {
			nextcarry = append(nextcarry, starts[i]+v)
			nextadvanced = append(nextadvanced, int64(j))
		}
	}
	return nextcarry, nextadvanced
}

// ListGetitemNextArrayAdvanced implements the zipped form: a prior advanced
// index selects one row each, and the per-row regularized head (already
// canonicalised against that one row's length) picks one element each.
func ListGetitemNextArrayAdvanced(starts []int64, inAdvanced []int64, perRowIndex []int64) []int64 {
	out := make([]int64, len(inAdvanced))
	for k, row := range inAdvanced {
		out[k] = starts[row] + perRowIndex[k]
	}
	return out
}
