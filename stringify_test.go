package nestarr

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nestarr/nestarr/internal/buffer"
)

func TestNumpyArrayStringIncludesDtypeAndValues(t *testing.T) {
	n := NewNumpyArray(NewFloat64Storage([]float64{1.5, 2.5}))
	s := n.String()
	require.True(t, strings.Contains(s, "NumpyArray"))
	require.True(t, strings.Contains(s, "len=2"))
}

func TestListOffsetArrayStringNestsContent(t *testing.T) {
	leaf := NewNumpyArray(NewInt64Storage([]int64{1, 2, 3}))
	offsets := buffer.FromInt64([]int64{0, 2, 3})
	l := NewListOffsetArray(leaf, offsets)
	s := l.String()
	require.True(t, strings.Contains(s, "ListOffsetArray"))
	require.True(t, strings.Contains(s, "NumpyArray"))
}

func TestFprintRejectsNilArgs(t *testing.T) {
	n := NewNumpyArray(NewInt64Storage([]int64{1}))
	require.Error(t, Fprint(nil, n))
	require.Error(t, Fprint(new(strings.Builder), nil))
}
