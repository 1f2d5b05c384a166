package nestarr

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nestarr/nestarr/slicing"
)

func newRecordXY(t *testing.T) *RecordArray {
	t.Helper()
	x := NewNumpyArray(NewInt64Storage([]int64{1, 2, 3}))
	y := NewNumpyArray(NewInt64Storage([]int64{10, 20, 30}))
	return NewRecordArray([]string{"x", "y"}, []Content{x, y}, 3)
}

func TestRecordArrayLengthAndKeys(t *testing.T) {
	r := newRecordXY(t)
	require.Equal(t, int64(3), r.Length())
	n, err := r.NumFields()
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Equal(t, []string{"x", "y"}, r.Keys())
	require.True(t, r.HasKey("y"))
	require.False(t, r.HasKey("z"))
	idx, err := r.FieldIndexOf("y")
	require.NoError(t, err)
	require.Equal(t, 1, idx)
}

func TestRecordArrayGetItemAt(t *testing.T) {
	r := newRecordXY(t)
	row, err := r.GetItemAt(1)
	require.NoError(t, err)
	require.Equal(t, int64(1), row.Length())
	names, fields := row.(*RecordArray).Fields()
	require.Equal(t, []string{"x", "y"}, names)
	require.Equal(t, int64(2), fields[0].(*NumpyArray).AtInt64(0))
	require.Equal(t, int64(20), fields[1].(*NumpyArray).AtInt64(0))
}

func TestRecordArrayGetItemField(t *testing.T) {
	r := newRecordXY(t)
	y, err := r.GetItemField("y")
	require.NoError(t, err)
	require.Equal(t, int64(10), y.(*NumpyArray).AtInt64(0))

	_, err = r.GetItemField("z")
	require.Error(t, err)
}

func TestRecordArrayLengthCanBeShorterThanFields(t *testing.T) {
	// spec.md:69: fields may be longer than the record's own length; the
	// extra rows are simply unreachable through the record's own
	// getitem_at/getitem_range, not forbidden to exist.
	x := NewNumpyArray(NewInt64Storage([]int64{1, 2, 3, 4}))
	y := NewNumpyArray(NewInt64Storage([]int64{10, 20, 30, 40}))
	r := NewRecordArray([]string{"x", "y"}, []Content{x, y}, 2)
	require.Equal(t, int64(2), r.Length())

	row, err := r.GetItemAt(1)
	require.NoError(t, err)
	_, fields := row.(*RecordArray).Fields()
	require.Equal(t, int64(2), fields[0].(*NumpyArray).AtInt64(0))

	_, err = r.GetItemAt(3)
	require.Error(t, err, "row 3 is beyond the record's own length even though both fields have it")
}

func TestRecordArrayPanicsOnFieldShorterThanLength(t *testing.T) {
	x := NewNumpyArray(NewInt64Storage([]int64{1, 2}))
	y := NewNumpyArray(NewInt64Storage([]int64{10, 20}))
	require.Panics(t, func() {
		NewRecordArray([]string{"x", "y"}, []Content{x, y}, 3)
	})
}

func TestRecordArrayGetitemNextDistributesAcrossFields(t *testing.T) {
	r := newRecordXY(t)
	out, err := Getitem(r, slicing.New(slicing.At(1)))
	require.NoError(t, err)
	names, fields := out.(*RecordArray).Fields()
	require.Equal(t, []string{"x", "y"}, names)
	require.Equal(t, int64(1), fields[0].Length())
	require.Equal(t, int64(2), fields[0].(*NumpyArray).AtInt64(0))
	require.Equal(t, int64(20), fields[1].(*NumpyArray).AtInt64(0))
}
