package nestarr

// Iterator is a forward, non-thread-safe cursor over a Content's own
// elements: (content, where=0), advancing one row at a time via
// GetItemAtNowrap. It does not recurse into nested structure itself —
// each Next() result is whatever Content that row's element is (another
// list/record/etc for nested data), mirroring a single level of Python's
// iter(array).
type Iterator struct {
	content Content
	where   int64
	length  int64
}

// NewIterator builds an Iterator starting at row 0 of c.
func NewIterator(c Content) *Iterator {
	return &Iterator{content: c, length: c.Length()}
}

// IsDone reports whether the cursor has exhausted the content.
func (it *Iterator) IsDone() bool {
	return it.where >= it.length
}

// Next returns the element at the current position and advances the
// cursor, or ok=false once IsDone().
func (it *Iterator) Next() (Content, error, bool) {
	if it.IsDone() {
		return nil, nil, false
	}
	v, err := it.content.GetItemAtNowrap(it.where)
	it.where++
	if err != nil {
		return nil, err, true
	}
	return v, nil, true
}

// Reset rewinds the cursor to the beginning.
func (it *Iterator) Reset() {
	it.where = 0
}

// All returns a range-over-func iterator over (index, element) pairs,
// stopping early if a GetItemAtNowrap call fails or the consumer returns
// false from yield.
func All(c Content) func(yield func(int64, Content) bool) {
	return func(yield func(int64, Content) bool) {
		it := NewIterator(c)
		for !it.IsDone() {
			i := it.where
			v, err, ok := it.Next()
			if !ok || err != nil {
				return
			}
			if !yield(i, v) {
				return
			}
		}
	}
}
