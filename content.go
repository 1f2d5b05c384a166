// Package nestarr implements a columnar engine for ragged, nested,
// heterogeneous array data: a closed family of array-node variants sharing
// one polymorphic contract (Content), a multi-dimensional indexing algebra
// (getitem/getitem_next) compiled into per-node carry/advanced rewrites,
// per-node identity-tag propagation, and a structural type algebra (see
// package types).
package nestarr

import (
	"github.com/nestarr/nestarr/internal/buffer"
	"github.com/nestarr/nestarr/internal/identity"
	"github.com/nestarr/nestarr/internal/kernels"
	"github.com/nestarr/nestarr/slicing"
	"github.com/nestarr/nestarr/types"
)

// Content is the shared contract every array-node variant implements
// (spec §4.2). The variant family — NumpyArray, EmptyArray, RegularArray,
// ListArray, ListOffsetArray, IndexedArray, OptionArray, UnionArray,
// RecordArray — is closed: sealed() restricts implementations to this
// package, and every polymorphic call site below switches exhaustively on
// the concrete variant rather than opening the hierarchy to outside types.
type Content interface {
	sealed()

	// Length is the node's nominal logical length.
	Length() int64

	// ShallowCopy returns a new node sharing all children.
	ShallowCopy() Content

	// SetID attaches a fresh identity of the correct width to this node
	// and recurses into children per the variant's descent rule.
	SetID() Content

	// SetIDGiven attaches the given identity (recomputing per-variant
	// identities for children), failing with IdentityLength if
	// id.Length() != Length().
	SetIDGiven(id *identity.Identity) (Content, error)

	// ID returns the attached identity, if any.
	ID() (*identity.Identity, bool)

	// InnerType reports this node's structural type. If bare is false and
	// children are typed, child types are preserved (minus their outer
	// length); if bare is true, a fresh canonical type is derived from the
	// node's own shape.
	InnerType(bare bool) types.Type

	// AttachedType returns the type most recently assigned by
	// SetTypePart, if any.
	AttachedType() (types.Type, bool)

	// SetTypePart stores t (after Accepts(t) holds) and recurses
	// SetTypePart(t.Inner()) into the child.
	SetTypePart(t types.Type) (Content, error)

	// Accepts reports whether t.Level() shallow-equals this node's
	// canonical outer model.
	Accepts(t types.Type) bool

	// GetItemNothing returns a zero-length slice of the node's element
	// type, for boundary handling.
	GetItemNothing() Content

	// GetItemAt returns the element at index i, wrapping negative indices
	// against Length() and bounds-checking.
	GetItemAt(i int64) (Content, error)

	// GetItemAtNowrap assumes i is already normalized (0 <= i < Length()).
	GetItemAtNowrap(i int64) (Content, error)

	// GetItemRange returns the contiguous sub-view [a, b), clamping a/b
	// into [0, Length()] after wrapping negative bounds.
	GetItemRange(a, b int64) (Content, error)

	// GetItemRangeNowrap assumes a, b are already normalized.
	GetItemRangeNowrap(a, b int64) (Content, error)

	// GetItemField descends into a single record field.
	GetItemField(key string) (Content, error)

	// GetItemFields descends into several record fields at once,
	// producing an equivalent container wrapping the narrowed record.
	GetItemFields(keys []string) (Content, error)

	// Carry gathers: the i-th element of the result equals the
	// carry[i]-th element of self. The universal reordering primitive.
	Carry(carry []int64) (Content, error)

	// GetItemNext dispatches one dimension of slicing: head is the
	// current SliceItem, tail the remaining dimensions, advanced the
	// in-flight broadcast index (spec §4.3).
	GetItemNext(head slicing.Item, tail slicing.Slice, advanced slicing.Advanced) (Content, error)

	// MinMaxDepth returns the inclusive (min, max) dimensional depth
	// across unions.
	MinMaxDepth() (int, int)

	// NumFields, FieldIndexOf, KeyOf mirror types.Type's record
	// introspection, erroring with UnknownRecords on types with no
	// reachable Record (leaves "throw"; list-like containers delegate to
	// their child, per spec §4.2).
	NumFields() (int, error)
	FieldIndexOf(key string) (int, error)
	KeyOf(idx int) (string, error)
	HasKey(key string) bool
	KeyAliases(canonical string) []string
	Keys() []string

	// classname names the concrete variant, for diagnostics/errors.
	classname() string
}

// Getitem is the outer entry point (spec §4.3): it wraps the slice's head
// into (head, tail, advanced=empty) and dispatches. Field/Fields reduce
// directly via GetItemField(s) before numeric slicing begins.
func Getitem(c Content, s slicing.Slice) (Content, error) {
	return dispatch(c, s, nil)
}

// dispatch is Getitem's recursive engine, parameterised by the in-flight
// advanced index. Every variant's GetItemNext ends by recursing back into
// dispatch (not directly into another GetItemNext) so that a Field,
// Ellipsis or Newaxis appearing partway through a slice is still handled
// uniformly.
func dispatch(c Content, s slicing.Slice, advanced slicing.Advanced) (Content, error) {
	if s.Empty() {
		return c, nil
	}
	head := s.Head()
	tail := s.Tail()

	switch head.Kind() {
	case slicing.KindField:
		next, err := c.GetItemField(head.FieldNames()[0])
		if err != nil {
			return nil, err
		}
		return dispatch(next, tail, advanced)
	case slicing.KindFields:
		next, err := c.GetItemFields(head.FieldNames())
		if err != nil {
			return nil, err
		}
		return dispatch(next, tail, advanced)
	case slicing.KindEllipsis:
		// An ellipsis with nothing left to expand across is a no-op;
		// richer multi-axis ellipsis expansion is out of scope (the
		// closed SliceItem family here only names the stand-in, per
		// spec §4.3).
		return dispatch(c, tail, advanced)
	case slicing.KindNewaxis:
		// Newaxis inserts a new length-1 dimension without consuming any
		// of c's own dimensions: the remaining slice items still apply to
		// c itself, and the whole result is wrapped one level deeper.
		rest, err := dispatch(c, tail, advanced)
		if err != nil {
			return nil, err
		}
		return NewRegularArray(rest, 1), nil
	default:
		return c.GetItemNext(head, tail, advanced)
	}
}

// wrapIndex canonicalises a possibly-negative index i against length,
// reporting ok=false if the (wrapped) result is still out of bounds. This
// is GetItemAt's "wrapping form handles negative indices and bounds
// check" (spec §4.2).
func wrapIndex(i, length int64) (int64, bool) {
	out := i
	if out < 0 {
		out += length
	}
	return out, out >= 0 && out < length
}

// clampRange normalises a possibly-negative, possibly-out-of-bounds range
// [a, b) against length under positive-step semantics (spec §8 invariant
// 3: "clamp(b,0,N.length()) - clamp(a,0,N.length())").
func clampRange(a, b, length int64) (int64, int64) {
	if a < 0 {
		a += length
	}
	if a < 0 {
		a = 0
	}
	if a > length {
		a = length
	}
	if b < 0 {
		b += length
	}
	if b < 0 {
		b = 0
	}
	if b > length {
		b = length
	}
	if b < a {
		b = a
	}
	return a, b
}

// getitemNextMissing implements the shared Missing-mask handling every
// variant delegates to (spec §4.3): a Missing item behaves like an Array
// item over the valid positions, with masked-out rows carried through as
// an OptionArray so the result keeps a "could be absent" marker instead of
// erroring.
func getitemNextMissing(c Content, head slicing.Item, tail slicing.Slice, advanced slicing.Advanced) (Content, error) {
	mask := head.MissingMask()
	values := make([]int64, 0, len(mask))
	index := make([]int64, len(mask))
	for i, ok := range mask {
		if ok {
			index[i] = int64(len(values))
			values = append(values, int64(i))
		} else {
			index[i] = -1
		}
	}
	inner, err := c.GetItemNext(slicing.ArrayItem(values, []int{len(values)}), tail, advanced)
	if err != nil {
		return nil, err
	}
	// inner holds only the valid positions, packed; index maps each mask
	// position to its row in inner, or -1 where the mask is false.
	return NewIndexedOptionArray(inner, buffer.FromInt64(index)), nil
}

// diffTypes renders a short human-readable structural diff for
// TypeMismatch errors (spec §7: "a structural diff string").
func diffTypes(got, want types.Type) string {
	return "expected type " + want.Kind().String() + ", got " + got.Kind().String()
}

// typeHolder is the small piece of mutable state every variant embeds:
// the optional attached identity and type (spec §3: "id and type fields
// are optional owned handles; re-assigning them is the only mutation on an
// otherwise immutable node"). Embedding it lets each variant share the
// ID()/AttachedType() accessors instead of repeating them.
type typeHolder struct {
	id  *identity.Identity
	typ *types.Type
}

func (h typeHolder) ID() (*identity.Identity, bool) {
	return h.id, h.id != nil
}

func (h typeHolder) AttachedType() (types.Type, bool) {
	if h.typ == nil {
		return types.Type{}, false
	}
	return *h.typ, true
}

// recordIntrospection implements the Content record-introspection methods
// in terms of InnerType(true), shared by every variant: leaves have no
// record, list-likes delegate through their element type, RecordArray
// overrides NumFields/FieldIndexOf/KeyOf/Keys directly on its own type
// rather than going through this helper.
func recordIntrospection(c Content) recordOps {
	return recordOps{c: c}
}

type recordOps struct{ c Content }

func (r recordOps) NumFields() (int, error) {
	t := r.c.InnerType(true)
	if _, ok := t.Record(); !ok {
		return 0, &NodeError{Classname: r.c.classname(), cause: kernels.NewUnknownRecords()}
	}
	return t.NumFields(), nil
}

func (r recordOps) FieldIndexOf(key string) (int, error) {
	t := r.c.InnerType(true)
	idx, ok := t.FieldIndex(key)
	if !ok {
		return 0, &NodeError{Classname: r.c.classname(), cause: kernels.NewUnknownRecords()}
	}
	return idx, nil
}

func (r recordOps) KeyOf(idx int) (string, error) {
	t := r.c.InnerType(true)
	if _, ok := t.Record(); !ok {
		return "", &NodeError{Classname: r.c.classname(), cause: kernels.NewUnknownRecords()}
	}
	keys := t.Keys()
	if idx < 0 || idx >= len(keys) {
		return "", &NodeError{Classname: r.c.classname(), cause: kernels.NewIndexError("record field index out of range", int64(idx))}
	}
	return keys[idx], nil
}

func (r recordOps) HasKey(key string) bool {
	return r.c.InnerType(true).HasKey(key)
}

func (r recordOps) KeyAliases(canonical string) []string {
	return r.c.InnerType(true).KeyAliases(canonical)
}

func (r recordOps) Keys() []string {
	return r.c.InnerType(true).Keys()
}
