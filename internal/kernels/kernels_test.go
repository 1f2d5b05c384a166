package kernels

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCanonicalize(t *testing.T) {
	v, err := Canonicalize(1, 5)
	require.Nil(t, err)
	require.Equal(t, int64(1), v)

	v, err = Canonicalize(-1, 5)
	require.Nil(t, err)
	require.Equal(t, int64(4), v)

	_, err = Canonicalize(5, 5)
	require.NotNil(t, err)
	require.Equal(t, IndexError, err.Kind)

	_, err = Canonicalize(-6, 5)
	require.NotNil(t, err)
}

func TestNewIdentity(t *testing.T) {
	require.Equal(t, []int64{0, 1, 2, 3}, NewIdentity(4))
	require.Empty(t, NewIdentity(0))
}

func TestIdentityFromRegularArray(t *testing.T) {
	// outer id width 1, length 2: rows [0],[1]; size 3
	out := IdentityFromRegularArray([]int64{0, 1}, 1, 3, 2)
	require.Equal(t, []int64{
		0, 0,
		0, 1,
		0, 2,
		1, 0,
		1, 1,
		1, 2,
	}, out)
}

func TestRegularArrayGetitemCarry(t *testing.T) {
	out := RegularArrayGetitemCarry([]int64{1, 0}, 3)
	require.Equal(t, []int64{3, 4, 5, 0, 1, 2}, out)
}

func TestRegularArrayGetitemNextAt(t *testing.T) {
	out, err := RegularArrayGetitemNextAt(1, 3, 2)
	require.Nil(t, err)
	require.Equal(t, []int64{1, 3, 5}, out)

	_, err = RegularArrayGetitemNextAt(5, 3, 2)
	require.NotNil(t, err)

	_, err = RegularArrayGetitemNextAt(0, 3, 0)
	require.NotNil(t, err)
}

func TestRegularArrayGetitemNextRange(t *testing.T) {
	out := RegularArrayGetitemNextRange(0, 1, 2, 3, 1)
	require.Equal(t, []int64{0, 2, 4}, out)
}

func TestRegularArrayGetitemNextRangeSpreadAdvanced(t *testing.T) {
	out := RegularArrayGetitemNextRangeSpreadAdvanced([]int64{10, 20}, 2)
	require.Equal(t, []int64{10, 10, 20, 20}, out)
}

func TestRegularArrayGetitemNextArrayRegularize(t *testing.T) {
	out, err := RegularArrayGetitemNextArrayRegularize([]int64{1, -1}, 2)
	require.Nil(t, err)
	require.Equal(t, []int64{1, 1}, out)

	_, err = RegularArrayGetitemNextArrayRegularize([]int64{2}, 2)
	require.NotNil(t, err)
}

func TestRegularArrayGetitemNextArrayCartesian(t *testing.T) {
	nextcarry, nextadvanced := RegularArrayGetitemNextArray([]int64{1, 0}, 2, 3)
	require.Equal(t, []int64{1, 0, 3, 2, 5, 4}, nextcarry)
	require.Equal(t, []int64{0, 1, 0, 1, 0, 1}, nextadvanced)
}

func TestRegularArrayGetitemNextArrayAdvancedZipped(t *testing.T) {
	nextcarry, nextadvanced, err := RegularArrayGetitemNextArrayAdvanced([]int64{0, 1, 2}, []int64{1, 0, 1}, 2)
	require.Nil(t, err)
	require.Equal(t, []int64{1, 2, 5}, nextcarry)
	require.Equal(t, []int64{0, 1, 2}, nextadvanced)

	_, _, err = RegularArrayGetitemNextArrayAdvanced([]int64{0, 1}, []int64{1}, 2)
	require.NotNil(t, err)
	require.Equal(t, InternalAssert, err.Kind)
}

func TestRegularizeRangeSlicePositiveStep(t *testing.T) {
	start, stop := int64(-2), int64(100)
	RegularizeRangeSlice(&start, &stop, true, true, true, 5)
	require.Equal(t, int64(3), start)
	require.Equal(t, int64(5), stop)
}

func TestRegularizeRangeSliceNegativeStep(t *testing.T) {
	start, stop := int64(10), int64(-10)
	RegularizeRangeSlice(&start, &stop, false, true, true, 5)
	require.Equal(t, int64(4), start)
	require.Equal(t, int64(-1), stop)
}

func TestRegularizeRangeSliceDefaults(t *testing.T) {
	var start, stop int64
	RegularizeRangeSlice(&start, &stop, true, false, false, 7)
	require.Equal(t, int64(0), start)
	require.Equal(t, int64(7), stop)

	RegularizeRangeSlice(&start, &stop, false, false, false, 7)
	require.Equal(t, int64(6), start)
	require.Equal(t, int64(-1), stop)
}

func TestRangeNextSize(t *testing.T) {
	require.Equal(t, int64(3), RangeNextSize(0, 3, 1))
	require.Equal(t, int64(2), RangeNextSize(0, 3, 2))
	require.Equal(t, int64(0), RangeNextSize(3, 3, 1))
	require.Equal(t, int64(3), RangeNextSize(4, -1, -1))
	require.Equal(t, int64(0), RangeNextSize(-1, 4, -1))
}

func TestRangeNextSizePanicsOnZeroStep(t *testing.T) {
	require.Panics(t, func() {
		RangeNextSize(0, 3, 0)
	})
}

func TestListSublistLengths(t *testing.T) {
	out := ListSublistLengths([]int64{0, 3, 4}, []int64{3, 4, 6})
	require.Equal(t, []int64{3, 1, 2}, out)
}

func TestListGetitemNextAt(t *testing.T) {
	starts := []int64{0, 3, 4}
	stops := []int64{3, 4, 6}
	out, err := ListGetitemNextAt(starts, stops, 0)
	require.Nil(t, err)
	require.Equal(t, []int64{0, 3, 4}, out)

	out, err = ListGetitemNextAt(starts, stops, -1)
	require.Nil(t, err)
	require.Equal(t, []int64{2, 3, 5}, out)

	_, err = ListGetitemNextAt(starts, stops, 5)
	require.NotNil(t, err)
}

func TestListGetitemNextRange(t *testing.T) {
	starts := []int64{0, 3, 4}
	stops := []int64{3, 4, 6}
	// every row (lengths 3, 1, 2) has at least one element, so Range(0,1)
	// selects exactly its first element from each row.
	nextcarry, nextsize := ListGetitemNextRange(starts, stops, 0, 1, 1)
	require.Equal(t, []int64{1, 1, 1}, nextsize)
	require.Equal(t, []int64{0, 3, 4}, nextcarry)
}

func TestListGetitemNextArrayRegularizeAndArray(t *testing.T) {
	starts := []int64{0, 3, 4}
	stops := []int64{3, 4, 6}
	regularized, err := ListGetitemNextArrayRegularize(starts, stops, []int64{-1})
	require.Nil(t, err)
	require.Equal(t, [][]int64{{2}, {0}, {1}}, regularized)

	nextcarry, nextadvanced := ListGetitemNextArray(starts, regularized)
	require.Equal(t, []int64{2, 3, 5}, nextcarry)
	require.Equal(t, []int64{0, 0, 0}, nextadvanced)

	_, err = ListGetitemNextArrayRegularize(starts, stops, []int64{5})
	require.NotNil(t, err, "no row is longer than 3, so index 5 is out of range (row 0 fails first)")
}

func TestListGetitemNextArrayAdvancedZipped(t *testing.T) {
	starts := []int64{0, 3, 4}
	out := ListGetitemNextArrayAdvanced(starts, []int64{2, 0, 1}, []int64{0, 0, 1})
	require.Equal(t, []int64{4, 0, 4}, out)
}

func TestIndexedCompose(t *testing.T) {
	index := []int64{3, 1, 1, 0}
	out := IndexedCompose(index, []int64{2, 0})
	require.Equal(t, []int64{1, 3}, out)
}

func TestOptionCompose(t *testing.T) {
	maskOrIndex := []int64{0, -1, 1}
	composed, valid := OptionCompose(maskOrIndex, []int64{2, 1, 0})
	require.Equal(t, []int64{1, -1, 0}, composed)
	require.Equal(t, []bool{true, false, true}, valid)
}

func TestErrorKindString(t *testing.T) {
	require.Equal(t, "IndexError", IndexError.String())
	require.Equal(t, "UnknownErrorKind", ErrorKind(99).String())
}

func TestErrorConstructors(t *testing.T) {
	e := NewIndexError("out of range", 7)
	require.Equal(t, IndexError, e.Kind)
	require.Equal(t, int64(7), e.LogicalIndex)
	require.Contains(t, e.Error(), "out of range")

	require.Equal(t, InternalAssert, NewInternalAssert("bug").Kind)
	require.Equal(t, TypeMismatch, NewTypeMismatch("diff").Kind)
	require.Equal(t, IdentityLength, NewIdentityLength("mismatch").Kind)
	require.Equal(t, UnknownRecords, NewUnknownRecords().Kind)
}

func TestNilErrorMessage(t *testing.T) {
	var e *Error
	require.Equal(t, "<nil kernel error>", e.Error())
}
