// Package buffer provides owned, reference-counted contiguous storage for
// primitive array elements, and typed views (Index) over buffers of
// integers.
//
// A Buffer is immutable once constructed by public API; it may be cheaply
// shared by many Index/Content views via Clone, which bumps a refcount
// rather than copying the backing slice.
package buffer

import "sync/atomic"

// Buffer is owned storage for a contiguous run of T. Many Index (or
// other) views may share one Buffer; Clone/Release track how many views
// are live.
type Buffer[T any] struct {
	data     []T
	refcount *atomic.Int64
}

// New wraps data in a fresh Buffer with a refcount of one. The Buffer takes
// ownership of data; callers must not mutate it afterwards.
func New[T any](data []T) *Buffer[T] {
	rc := new(atomic.Int64)
	rc.Store(1)
	return &Buffer[T]{data: data, refcount: rc}
}

// Clone returns a new handle to the same backing storage, incrementing the
// refcount. It does not copy data.
func (b *Buffer[T]) Clone() *Buffer[T] {
	if b == nil {
		return nil
	}
	b.refcount.Add(1)
	return &Buffer[T]{data: b.data, refcount: b.refcount}
}

// Release drops one reference. It returns true when this was the last live
// reference.
func (b *Buffer[T]) Release() bool {
	if b == nil {
		return false
	}
	return b.refcount.Add(-1) == 0
}

// RefCount reports the number of live handles sharing this buffer's storage.
// Intended for diagnostics and tests, not for control flow.
func (b *Buffer[T]) RefCount() int64 {
	if b == nil {
		return 0
	}
	return b.refcount.Load()
}

// Len returns the number of elements owned by the buffer.
func (b *Buffer[T]) Len() int {
	if b == nil {
		return 0
	}
	return len(b.data)
}

// At returns the element at i without bounds-checking beyond what the Go
// runtime provides.
func (b *Buffer[T]) At(i int) T {
	return b.data[i]
}

// Raw exposes the backing slice read-only; callers must not retain a
// mutable alias or write through it.
func (b *Buffer[T]) Raw() []T {
	if b == nil {
		return nil
	}
	return b.data
}
