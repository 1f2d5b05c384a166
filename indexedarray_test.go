package nestarr

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nestarr/nestarr/internal/buffer"
	"github.com/nestarr/nestarr/slicing"
)

func newIndexed4(t *testing.T) *IndexedArray {
	t.Helper()
	leaf := NewNumpyArray(NewInt64Storage([]int64{10, 20, 30, 40}))
	index := buffer.FromInt64([]int64{3, 1, 1, 0})
	return NewIndexedArray(leaf, index)
}

func TestIndexedArrayLength(t *testing.T) {
	n := newIndexed4(t)
	require.Equal(t, int64(4), n.Length())
}

func TestIndexedArrayGetItemAt(t *testing.T) {
	n := newIndexed4(t)
	v, err := n.GetItemAt(0)
	require.NoError(t, err)
	require.Equal(t, int64(40), v.(*NumpyArray).AtInt64(0))

	v, err = n.GetItemAtNowrap(2)
	require.NoError(t, err)
	require.Equal(t, int64(20), v.(*NumpyArray).AtInt64(0))
}

func TestIndexedArrayGetitemProjectsThenDelegates(t *testing.T) {
	n := newIndexed4(t)
	out, err := Getitem(n, slicing.New(slicing.At(1)))
	require.NoError(t, err)
	require.Equal(t, int64(20), out.(*NumpyArray).AtInt64(0))
}

func TestIndexedArrayCarryComposesIndex(t *testing.T) {
	n := newIndexed4(t)
	out, err := n.Carry([]int64{2, 0})
	require.NoError(t, err)
	carried := out.(*IndexedArray)
	require.Equal(t, int64(2), carried.Length())
	v0, err := carried.GetItemAtNowrap(0)
	require.NoError(t, err)
	require.Equal(t, int64(20), v0.(*NumpyArray).AtInt64(0))
	v1, err := carried.GetItemAtNowrap(1)
	require.NoError(t, err)
	require.Equal(t, int64(40), v1.(*NumpyArray).AtInt64(0))
}
