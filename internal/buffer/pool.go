package buffer

import (
	"sync"
	"sync/atomic"
)

// Int64Pool is a type-safe wrapper around sync.Pool specialized for
// reusing []int64 scratch slices of the kind Carry/nextcarry/nextadvanced
// build; the slicing code in this module allocates its own slices and does
// not draw from it. It tracks allocation/live-use
// statistics for diagnostics and performance tuning, the way the
// teacher's node pool does for its own recycled allocations.
type Int64Pool struct {
	sync.Pool

	totalAllocated atomic.Int64 // total number of scratch slices ever allocated
	currentLive    atomic.Int64 // number of slices currently checked out
}

// NewInt64Pool creates a pool whose Get returns slices of at least
// capacity cap (zero-length, ready to be appended to).
func NewInt64Pool(cap int) *Int64Pool {
	p := &Int64Pool{}
	p.New = func() any {
		p.totalAllocated.Add(1)
		s := make([]int64, 0, cap)
		return &s
	}
	return p
}

// Get retrieves a zero-length []int64 with spare capacity from the pool,
// allocating a fresh one if none is available. If p is nil, Get returns nil
// without tracking.
func (p *Int64Pool) Get() []int64 {
	if p == nil {
		return nil
	}
	p.currentLive.Add(1)
	s := p.Pool.Get().(*[]int64)
	return (*s)[:0]
}

// Put returns a scratch slice to the pool for reuse. If p is nil, the
// slice is discarded.
func (p *Int64Pool) Put(s []int64) {
	if p == nil {
		return
	}
	p.currentLive.Add(-1)
	s = s[:0]
	p.Pool.Put(&s)
}

// Stats returns the number of currently checked-out slices and the total
// ever allocated by this pool.
func (p *Int64Pool) Stats() (live int64, total int64) {
	if p == nil {
		return 0, 0
	}
	return p.currentLive.Load(), p.totalAllocated.Load()
}
