package nestarr

import (
	"github.com/nestarr/nestarr/internal/buffer"
	"github.com/nestarr/nestarr/types"
)

// numpyStorage is the dtype-erased view NumpyArray holds over its backing
// buffer.Buffer[T]: a contiguous run of one primitive type, addressed by
// logical position regardless of T (spec §3's leaf payload; the
// indexing algebra above never needs to know T, only Len/Slice/Carry).
type numpyStorage interface {
	Len() int
	DType() types.DType
	Slice(a, b int) numpyStorage
	Carry(positions []int64) numpyStorage
	// AtFloat64/AtInt64/AtBool give the diagnostic layer (stringify/jsonify)
	// a uniform read path without a type switch per caller.
	AtFloat64(i int) float64
	AtInt64(i int) int64
	AtBool(i int) bool
}

type typedStorage[T any] struct {
	buf    *buffer.Buffer[T]
	offset int
	length int
	dtype  types.DType
	toF64  func(T) float64
	toI64  func(T) int64
	toBool func(T) bool
}

func (s *typedStorage[T]) Len() int           { return s.length }
func (s *typedStorage[T]) DType() types.DType { return s.dtype }

func (s *typedStorage[T]) get(i int) T {
	return s.buf.At(s.offset + i)
}

func (s *typedStorage[T]) Slice(a, b int) numpyStorage {
	return &typedStorage[T]{buf: s.buf, offset: s.offset + a, length: b - a, dtype: s.dtype, toF64: s.toF64, toI64: s.toI64, toBool: s.toBool}
}

func (s *typedStorage[T]) Carry(positions []int64) numpyStorage {
	out := make([]T, len(positions))
	for i, p := range positions {
		out[i] = s.get(int(p))
	}
	return &typedStorage[T]{buf: buffer.New(out), offset: 0, length: len(out), dtype: s.dtype, toF64: s.toF64, toI64: s.toI64, toBool: s.toBool}
}

func (s *typedStorage[T]) AtFloat64(i int) float64 { return s.toF64(s.get(i)) }
func (s *typedStorage[T]) AtInt64(i int) int64     { return s.toI64(s.get(i)) }
func (s *typedStorage[T]) AtBool(i int) bool       { return s.toBool(s.get(i)) }

// NewFloat64Storage wraps a []float64 slice as numpyStorage of dtype
// float64. The NewXStorage family below are the constructors callers use
// to build a NumpyArray leaf from concrete Go data.
func NewFloat64Storage(data []float64) numpyStorage {
	return &typedStorage[float64]{
		buf: buffer.New(data), length: len(data), dtype: types.DTypeFloat64,
		toF64: func(v float64) float64 { return v },
		toI64: func(v float64) int64 { return int64(v) },
		toBool: func(v float64) bool { return v != 0 },
	}
}

// NewInt64Storage wraps a []int64 slice as numpyStorage of dtype int64.
func NewInt64Storage(data []int64) numpyStorage {
	return &typedStorage[int64]{
		buf: buffer.New(data), length: len(data), dtype: types.DTypeInt64,
		toF64: func(v int64) float64 { return float64(v) },
		toI64: func(v int64) int64 { return v },
		toBool: func(v int64) bool { return v != 0 },
	}
}

// NewInt32Storage wraps a []int32 slice as numpyStorage of dtype int32.
func NewInt32Storage(data []int32) numpyStorage {
	return &typedStorage[int32]{
		buf: buffer.New(data), length: len(data), dtype: types.DTypeInt32,
		toF64: func(v int32) float64 { return float64(v) },
		toI64: func(v int32) int64 { return int64(v) },
		toBool: func(v int32) bool { return v != 0 },
	}
}

// NewUint32Storage wraps a []uint32 slice as numpyStorage of dtype uint32.
func NewUint32Storage(data []uint32) numpyStorage {
	return &typedStorage[uint32]{
		buf: buffer.New(data), length: len(data), dtype: types.DTypeUint32,
		toF64: func(v uint32) float64 { return float64(v) },
		toI64: func(v uint32) int64 { return int64(v) },
		toBool: func(v uint32) bool { return v != 0 },
	}
}

// NewBoolStorage wraps a []bool slice as numpyStorage of dtype bool.
func NewBoolStorage(data []bool) numpyStorage {
	return &typedStorage[bool]{
		buf: buffer.New(data), length: len(data), dtype: types.DTypeBool,
		toF64: func(v bool) float64 {
			if v {
				return 1
			}
			return 0
		},
		toI64: func(v bool) int64 {
			if v {
				return 1
			}
			return 0
		},
		toBool: func(v bool) bool { return v },
	}
}
