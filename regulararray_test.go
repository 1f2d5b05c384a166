package nestarr

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nestarr/nestarr/slicing"
)

func newRegular3x2(t *testing.T) *RegularArray {
	t.Helper()
	// [[0,1],[2,3],[4,5]]
	leaf := NewNumpyArray(NewInt64Storage([]int64{0, 1, 2, 3, 4, 5}))
	return NewRegularArray(leaf, 2)
}

func TestRegularArrayLength(t *testing.T) {
	r := newRegular3x2(t)
	require.Equal(t, int64(3), r.Length())
}

func TestRegularArrayGetItemAt(t *testing.T) {
	r := newRegular3x2(t)
	row, err := r.GetItemAt(1)
	require.NoError(t, err)
	require.Equal(t, int64(2), row.Length())
	require.Equal(t, int64(2), row.(*NumpyArray).AtInt64(0))
	require.Equal(t, int64(3), row.(*NumpyArray).AtInt64(1))
}

func TestRegularArrayGetitemAtSlice(t *testing.T) {
	r := newRegular3x2(t)
	// getitem_next's At case selects one inner position per outer row
	// first (spec §4.3): head=At(1) picks column 1 across all 3 rows,
	// giving [1,3,5]; the tail head=At(0) then indexes that result.
	out, err := Getitem(r, slicing.New(slicing.At(1), slicing.At(0)))
	require.NoError(t, err)
	require.Equal(t, int64(1), out.(*NumpyArray).AtInt64(0))
}

func TestRegularArrayGetitemRangePreservesDimension(t *testing.T) {
	r := newRegular3x2(t)
	// Range(0,1) on a RegularArray's regular axis selects column 0 from
	// every outer row (spec §4.3: the range is normalized against size,
	// not outerLength), staying a RegularArray with the new (smaller) size.
	out, err := Getitem(r, slicing.New(slicing.Range(0, 1, 1, true, true)))
	require.NoError(t, err)
	outer, ok := out.(*RegularArray)
	require.True(t, ok, "range over RegularArray's regular axis should stay a RegularArray")
	require.Equal(t, int64(3), outer.Length())
	require.Equal(t, int64(1), outer.Size())
	row1, err := outer.GetItemAtNowrap(1)
	require.NoError(t, err)
	require.Equal(t, int64(2), row1.(*NumpyArray).AtInt64(0))
}

func TestRegularArrayArrayFancyIndexPreservesShape(t *testing.T) {
	r := newRegular3x2(t)
	// An Array head on a RegularArray indexes the regular (size) axis,
	// broadcasting across every outer row (spec §4.3); [1,0] reverses
	// each row's two columns while the cartesian wrap restores the
	// original outer length (3) as the leading dimension.
	out, err := Getitem(r, slicing.New(slicing.ArrayItem([]int64{1, 0}, []int{2})))
	require.NoError(t, err)
	outer, ok := out.(*RegularArray)
	require.True(t, ok)
	require.Equal(t, int64(3), outer.Length())
	require.Equal(t, int64(2), outer.Size())
	first, err := outer.GetItemAtNowrap(0)
	require.NoError(t, err)
	require.Equal(t, int64(1), first.(*NumpyArray).AtInt64(0))
	require.Equal(t, int64(0), first.(*NumpyArray).AtInt64(1))
}
