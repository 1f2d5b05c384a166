package nestarr

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nestarr/nestarr/internal/buffer"
	"github.com/nestarr/nestarr/slicing"
)

func newListOffset3Rows(t *testing.T) *ListOffsetArray {
	t.Helper()
	// [[10,20,30],[40],[50,60]]
	leaf := NewNumpyArray(NewInt64Storage([]int64{10, 20, 30, 40, 50, 60}))
	offsets := buffer.FromInt64([]int64{0, 3, 4, 6})
	return NewListOffsetArray(leaf, offsets)
}

func TestListOffsetArrayLength(t *testing.T) {
	l := newListOffset3Rows(t)
	require.Equal(t, int64(3), l.Length())
}

func TestListOffsetArrayGetItemAt(t *testing.T) {
	l := newListOffset3Rows(t)
	row, err := l.GetItemAt(1)
	require.NoError(t, err)
	require.Equal(t, int64(1), row.Length())
	require.Equal(t, int64(40), row.(*NumpyArray).AtInt64(0))
}

func TestListOffsetArrayGetitemAtBroadcastsPerRow(t *testing.T) {
	l := newListOffset3Rows(t)
	// At(0) on a list node selects element 0 from every row (spec §4.3),
	// broadcasting across the ragged outer dimension just like RegularArray
	// does for its regular axis.
	out, err := Getitem(l, slicing.New(slicing.At(0)))
	require.NoError(t, err)
	got := out.(*NumpyArray)
	require.Equal(t, int64(3), got.Length())
	require.Equal(t, int64(10), got.AtInt64(0))
	require.Equal(t, int64(40), got.AtInt64(1))
	require.Equal(t, int64(50), got.AtInt64(2))
}

func TestListOffsetArrayGetitemRangeStaysRagged(t *testing.T) {
	l := newListOffset3Rows(t)
	out, err := Getitem(l, slicing.New(slicing.Range(0, 1, 1, true, true)))
	require.NoError(t, err)
	got := out.(*ListOffsetArray)
	require.Equal(t, int64(3), got.Length())
	row0, err := got.GetItemAtNowrap(0)
	require.NoError(t, err)
	require.Equal(t, int64(1), row0.Length())
	require.Equal(t, int64(10), row0.(*NumpyArray).AtInt64(0))
	row2, err := got.GetItemAtNowrap(2)
	require.NoError(t, err)
	require.Equal(t, int64(50), row2.(*NumpyArray).AtInt64(0))
}

func TestListOffsetArrayGetitemArrayNegativeIndexPerRow(t *testing.T) {
	l := newListOffset3Rows(t)
	out, err := Getitem(l, slicing.New(slicing.ArrayItem([]int64{-1}, []int{1})))
	require.NoError(t, err)
	got := out.(*ListOffsetArray)
	require.Equal(t, int64(3), got.Length())
	row0, err := got.GetItemAtNowrap(0)
	require.NoError(t, err)
	require.Equal(t, int64(30), row0.(*NumpyArray).AtInt64(0))
	row2, err := got.GetItemAtNowrap(2)
	require.NoError(t, err)
	require.Equal(t, int64(60), row2.(*NumpyArray).AtInt64(0))
}

func TestListOffsetArrayCarryCompacts(t *testing.T) {
	l := newListOffset3Rows(t)
	out, err := l.Carry([]int64{2, 0})
	require.NoError(t, err)
	require.Equal(t, int64(2), out.Length())
	row0, err := out.GetItemAtNowrap(0)
	require.NoError(t, err)
	require.Equal(t, int64(50), row0.(*NumpyArray).AtInt64(0))
	require.Equal(t, int64(60), row0.(*NumpyArray).AtInt64(1))
}
