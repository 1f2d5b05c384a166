// Package kernels implements the pure index-array transforms the indexing
// algebra compiles down to (spec §4.1): per-node carry/advanced rewrites,
// expressed as straightforward index arithmetic with no hidden state.
//
// Each kernel has the shape (outputs..., inputs..., scalars...) -> Error,
// mirroring the spec's kernel contract. Kernels never allocate more than
// the output buffers they declare, and never touch payload (NumpyArray)
// buffers — only integer index buffers.
package kernels

import "fmt"

// ErrorKind classifies a kernel failure (spec §7).
type ErrorKind int

const (
	// NoError is the zero value: no failure occurred.
	NoError ErrorKind = iota
	IndexError
	TypeMismatch
	IdentityLength
	UnknownRecords
	InternalAssert
)

func (k ErrorKind) String() string {
	switch k {
	case NoError:
		return "NoError"
	case IndexError:
		return "IndexError"
	case TypeMismatch:
		return "TypeMismatch"
	case IdentityLength:
		return "IdentityLength"
	case UnknownRecords:
		return "UnknownRecords"
	case InternalAssert:
		return "InternalAssert"
	default:
		return "UnknownErrorKind"
	}
}

// Error is the uniform failure record returned by index-kernel routines
// (spec §4.1/§7): {message, slice_index, logical_index}.
type Error struct {
	Kind         ErrorKind
	Message      string
	SliceIndex   int64
	LogicalIndex int64
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil kernel error>"
	}
	return fmt.Sprintf("%s: %s (slice_index=%d, logical_index=%d)", e.Kind, e.Message, e.SliceIndex, e.LogicalIndex)
}

// NewIndexError builds an IndexError at the given logical index.
func NewIndexError(message string, logicalIndex int64) *Error {
	return &Error{Kind: IndexError, Message: message, LogicalIndex: logicalIndex, SliceIndex: -1}
}

// NewInternalAssert builds an InternalAssert failure. Node-level callers
// must panic with the result rather than return it as an ordinary error
// (spec §7: "Fatal; not recoverable" — the original C++ these invariants
// are grounded on uses a hard assert(), not a catchable exception).
func NewInternalAssert(message string) *Error {
	return &Error{Kind: InternalAssert, Message: message, SliceIndex: -1, LogicalIndex: -1}
}

// NewTypeMismatch builds a TypeMismatch failure carrying a structural diff
// string (spec §7).
func NewTypeMismatch(diff string) *Error {
	return &Error{Kind: TypeMismatch, Message: diff, SliceIndex: -1, LogicalIndex: -1}
}

// NewIdentityLength builds an IdentityLength failure for a setid() call
// whose id.length didn't match the node's length.
func NewIdentityLength(message string) *Error {
	return &Error{Kind: IdentityLength, Message: message, SliceIndex: -1, LogicalIndex: -1}
}

// NewUnknownRecords builds the UnknownRecords failure record
// introspection returns on a type with no reachable Record.
func NewUnknownRecords() *Error {
	return &Error{Kind: UnknownRecords, Message: "type contains no Records", SliceIndex: -1, LogicalIndex: -1}
}
