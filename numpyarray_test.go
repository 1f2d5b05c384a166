package nestarr

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nestarr/nestarr/slicing"
	"github.com/nestarr/nestarr/types"
)

func TestNumpyArrayGetItemAt(t *testing.T) {
	n := NewNumpyArray(NewFloat64Storage([]float64{1, 2, 3, 4}))

	v, err := n.GetItemAt(-1)
	require.NoError(t, err)
	require.Equal(t, int64(1), v.Length())
	require.InDelta(t, 4.0, v.(*NumpyArray).AtFloat64(0), 0)

	_, err = n.GetItemAt(4)
	require.Error(t, err)
	kerr, ok := AsKernelError(err)
	require.True(t, ok)
	require.Equal(t, "IndexError", kerr.Kind.String())
}

func TestNumpyArrayGetItemRangeClamps(t *testing.T) {
	n := NewNumpyArray(NewInt64Storage([]int64{0, 1, 2, 3, 4}))
	v, err := n.GetItemRange(-100, 100)
	require.NoError(t, err)
	require.Equal(t, n.Length(), v.Length())
}

func TestNumpyArrayGetitemSlice(t *testing.T) {
	n := NewNumpyArray(NewInt64Storage([]int64{10, 20, 30, 40, 50}))
	out, err := Getitem(n, slicing.New(slicing.Range(1, 4, 1, true, true)))
	require.NoError(t, err)
	got := out.(*NumpyArray)
	require.Equal(t, int64(3), got.Length())
	require.Equal(t, int64(20), got.AtInt64(0))
	require.Equal(t, int64(40), got.AtInt64(2))
}

func TestNumpyArrayAccepts(t *testing.T) {
	n := NewNumpyArray(NewFloat64Storage(nil))
	require.True(t, n.Accepts(types.Primitive(types.DTypeFloat64)))
	require.False(t, n.Accepts(types.Primitive(types.DTypeInt64)))
}

func TestNumpyArrayNoRecordFields(t *testing.T) {
	n := NewNumpyArray(NewFloat64Storage([]float64{1}))
	_, err := n.NumFields()
	require.Error(t, err)
	_, ok := AsKernelError(err)
	require.True(t, ok)
}
