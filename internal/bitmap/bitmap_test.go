package bitmap

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTagPartitionRowsAndPositions(t *testing.T) {
	// tags: [0,1,0,1,0]; carry visits rows in order [4,3,2,1,0]
	tags := []int64{0, 1, 0, 1, 0}
	carry := []int64{4, 3, 2, 1, 0}
	tp := NewTagPartition(tags, carry, 2)

	require.Equal(t, []int64{4, 2, 0}, tp.Rows(0))
	require.Equal(t, []int64{3, 1}, tp.Rows(1))

	// positions within carry: tag 0 rows land at carry positions 0,2,4;
	// tag 1 rows land at carry positions 1,3.
	require.Equal(t, []int{0, 2, 4}, tp.Positions(0))
	require.Equal(t, []int{1, 3}, tp.Positions(1))
}

func TestTagPartitionEmptyAlternative(t *testing.T) {
	tags := []int64{0, 0, 0}
	carry := []int64{0, 1, 2}
	tp := NewTagPartition(tags, carry, 2)

	require.Equal(t, []int64{0, 1, 2}, tp.Rows(0))
	require.Empty(t, tp.Rows(1))
	require.Empty(t, tp.Positions(1))
}

func TestValidityMaskFromBools(t *testing.T) {
	m := NewValidityMaskFromBools([]bool{true, false, true, true})
	require.Equal(t, 4, m.Len())
	require.Equal(t, 3, m.Count())
	require.True(t, m.Test(0))
	require.False(t, m.Test(1))
	require.True(t, m.Test(2))
	require.True(t, m.Test(3))
}

func TestValidityMaskAllMissing(t *testing.T) {
	m := NewValidityMaskFromBools([]bool{false, false})
	require.Equal(t, 0, m.Count())
	require.False(t, m.Test(0))
	require.False(t, m.Test(1))
}
