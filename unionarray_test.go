package nestarr

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nestarr/nestarr/internal/buffer"
	"github.com/nestarr/nestarr/slicing"
)

func newUnionOfLists(t *testing.T) *UnionArray {
	t.Helper()
	// alt0 (tag 0): [[1,2],[3,4]]; alt1 (tag 1): [[10,20],[30,40]]
	alt0 := NewListOffsetArray(
		NewNumpyArray(NewInt64Storage([]int64{1, 2, 3, 4})),
		buffer.FromInt64([]int64{0, 2, 4}),
	)
	alt1 := NewListOffsetArray(
		NewNumpyArray(NewInt64Storage([]int64{10, 20, 30, 40})),
		buffer.FromInt64([]int64{0, 2, 4}),
	)
	// row0=alt0[0], row1=alt1[0], row2=alt0[1], row3=alt1[1]
	tags := buffer.FromInt64([]int64{0, 1, 0, 1})
	index := buffer.FromInt64([]int64{0, 0, 1, 1})
	return NewUnionArray([]Content{alt0, alt1}, tags, index)
}

func TestUnionArrayLength(t *testing.T) {
	u := newUnionOfLists(t)
	require.Equal(t, int64(4), u.Length())
}

func TestUnionArrayGetItemAt(t *testing.T) {
	u := newUnionOfLists(t)
	row0, err := u.GetItemAt(0)
	require.NoError(t, err)
	require.Equal(t, int64(1), row0.(*NumpyArray).AtInt64(0))
	require.Equal(t, int64(2), row0.(*NumpyArray).AtInt64(1))

	row1, err := u.GetItemAt(1)
	require.NoError(t, err)
	require.Equal(t, int64(10), row1.(*NumpyArray).AtInt64(0))
}

func TestUnionArrayGetitemNextPartitionsByTag(t *testing.T) {
	u := newUnionOfLists(t)
	out, err := Getitem(u, slicing.New(slicing.At(0)))
	require.NoError(t, err)
	got := out.(*UnionArray)
	require.Equal(t, int64(4), got.Length())

	v0, err := got.GetItemAtNowrap(0)
	require.NoError(t, err)
	require.Equal(t, int64(1), v0.(*NumpyArray).AtInt64(0))

	v1, err := got.GetItemAtNowrap(1)
	require.NoError(t, err)
	require.Equal(t, int64(10), v1.(*NumpyArray).AtInt64(0))

	v2, err := got.GetItemAtNowrap(2)
	require.NoError(t, err)
	require.Equal(t, int64(3), v2.(*NumpyArray).AtInt64(0))

	v3, err := got.GetItemAtNowrap(3)
	require.NoError(t, err)
	require.Equal(t, int64(30), v3.(*NumpyArray).AtInt64(0))
}
