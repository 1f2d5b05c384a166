package nestarr

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nestarr/nestarr/slicing"
	"github.com/nestarr/nestarr/types"
)

func TestEmptyArrayBasics(t *testing.T) {
	n := NewEmptyArray()
	require.Equal(t, int64(0), n.Length())
	require.True(t, n.Accepts(types.Primitive(types.DTypeFloat64)))

	_, err := n.GetItemAt(0)
	require.Error(t, err)
	kerr, ok := AsKernelError(err)
	require.True(t, ok)
	require.Equal(t, "IndexError", kerr.Kind.String())

	rng, err := n.GetItemRange(0, 5)
	require.NoError(t, err)
	require.Equal(t, int64(0), rng.Length())
}

func TestEmptyArrayCarryRequiresEmptySelection(t *testing.T) {
	n := NewEmptyArray()
	out, err := n.Carry(nil)
	require.NoError(t, err)
	require.Equal(t, int64(0), out.Length())

	_, err = n.Carry([]int64{0})
	require.Error(t, err)
}

func TestEmptyArrayGetitemRangeAndArrayStayEmpty(t *testing.T) {
	n := NewEmptyArray()
	out, err := Getitem(n, slicing.New(slicing.Range(0, 10, 1, true, true)))
	require.NoError(t, err)
	require.Equal(t, int64(0), out.Length())

	out, err = Getitem(n, slicing.New(slicing.ArrayItem([]int64{}, []int{0})))
	require.NoError(t, err)
	require.Equal(t, int64(0), out.Length())
}
