package nestarr

import (
	"fmt"

	"github.com/nestarr/nestarr/internal/identity"
	"github.com/nestarr/nestarr/internal/kernels"
	"github.com/nestarr/nestarr/slicing"
	"github.com/nestarr/nestarr/types"
)

// NumpyArray is the dense rectangular leaf (spec §3): a contiguous run of
// one primitive dtype, with no further Content nesting. It is the base
// case every recursive descent through the variant family eventually
// bottoms out at.
type NumpyArray struct {
	typeHolder
	storage numpyStorage
}

// NewNumpyArray wraps storage (built via one of the NewXStorage
// constructors) as a NumpyArray leaf.
func NewNumpyArray(storage numpyStorage) *NumpyArray {
	return &NumpyArray{storage: storage}
}

func (n *NumpyArray) sealed()          {}
func (n *NumpyArray) classname() string { return "NumpyArray" }

func (n *NumpyArray) Length() int64 { return int64(n.storage.Len()) }

func (n *NumpyArray) ShallowCopy() Content {
	cp := *n
	return &cp
}

func (n *NumpyArray) SetID() Content {
	root := identity.New(int(n.Length()))
	out, _ := n.SetIDGiven(root)
	return out
}

func (n *NumpyArray) SetIDGiven(id *identity.Identity) (Content, error) {
	if int64(id.Length()) != n.Length() {
		return nil, wrapErr(n.classname(), id, kernels.NewIdentityLength(
			fmt.Sprintf("identity length %d does not match node length %d", id.Length(), n.Length())))
	}
	cp := *n
	cp.id = id
	return &cp, nil
}

func (n *NumpyArray) ID() (*identity.Identity, bool) { return n.typeHolder.ID() }

func (n *NumpyArray) InnerType(bare bool) types.Type {
	return types.Primitive(n.storage.DType())
}

func (n *NumpyArray) AttachedType() (types.Type, bool) { return n.typeHolder.AttachedType() }

func (n *NumpyArray) SetTypePart(t types.Type) (Content, error) {
	if !n.Accepts(t) {
		return nil, wrapErr(n.classname(), n.id, kernels.NewTypeMismatch(diffTypes(n.InnerType(true), t)))
	}
	cp := *n
	tt := t
	cp.typ = &tt
	return &cp, nil
}

func (n *NumpyArray) Accepts(t types.Type) bool {
	return t.Kind() == types.KindPrimitive && t.DType() == n.storage.DType()
}

func (n *NumpyArray) GetItemNothing() Content {
	return NewNumpyArray(n.storage.Slice(0, 0))
}

func (n *NumpyArray) GetItemAt(i int64) (Content, error) {
	idx, ok := wrapIndex(i, n.Length())
	if !ok {
		return nil, wrapErr(n.classname(), n.id, kernels.NewIndexError("NumpyArray getitem_at out of range", i))
	}
	return n.GetItemAtNowrap(idx)
}

func (n *NumpyArray) GetItemAtNowrap(i int64) (Content, error) {
	return NewNumpyArray(n.storage.Slice(int(i), int(i)+1)), nil
}

func (n *NumpyArray) GetItemRange(a, b int64) (Content, error) {
	lo, hi := clampRange(a, b, n.Length())
	return n.GetItemRangeNowrap(lo, hi)
}

func (n *NumpyArray) GetItemRangeNowrap(a, b int64) (Content, error) {
	return NewNumpyArray(n.storage.Slice(int(a), int(b))), nil
}

func (n *NumpyArray) GetItemField(key string) (Content, error) {
	return nil, wrapErr(n.classname(), n.id, kernels.NewUnknownRecords())
}

func (n *NumpyArray) GetItemFields(keys []string) (Content, error) {
	return nil, wrapErr(n.classname(), n.id, kernels.NewUnknownRecords())
}

func (n *NumpyArray) Carry(carry []int64) (Content, error) {
	out := NewNumpyArray(n.storage.Carry(carry))
	if n.id != nil {
		out.id = n.id.Carry(carry)
	}
	return out, nil
}

// GetItemNext is the recursion's base case transform: a leaf only ever
// sees At/Range/Array heads with an empty tail (spec §4.3 — a leaf has no
// further dimension to delegate to).
func (n *NumpyArray) GetItemNext(head slicing.Item, tail slicing.Slice, advanced slicing.Advanced) (Content, error) {
	switch head.Kind() {
	case slicing.KindAt:
		if !advanced.Empty() {
			panic(wrapErr(n.classname(), n.id, kernels.NewInternalAssert("At head with a non-empty advanced index at a leaf")))
		}
		idx, kerr := kernels.Canonicalize(head.At(), n.Length())
		if kerr != nil {
			return nil, wrapErr(n.classname(), n.id, kerr)
		}
		return n.GetItemAtNowrap(idx)

	case slicing.KindRange:
		start, stop, step, hasStart, hasStop := head.Range()
		if step == 0 {
			panic(wrapErr(n.classname(), n.id, kernels.NewInternalAssert("range step must not be zero")))
		}
		posStep := step > 0
		kernels.RegularizeRangeSlice(&start, &stop, posStep, hasStart, hasStop, n.Length())
		nextsize := kernels.RangeNextSize(start, stop, step)
		positions := make([]int64, nextsize)
		for i := range positions {
			positions[i] = start + int64(i)*step
		}
		return n.Carry(positions)

	case slicing.KindArray:
		values, shape := head.ArrayValues()
		positions := make([]int64, len(values))
		for i, v := range values {
			c, kerr := kernels.Canonicalize(v, n.Length())
			if kerr != nil {
				return nil, wrapErr(n.classname(), n.id, kerr)
			}
			positions[i] = c
		}
		carried, err := n.Carry(positions)
		if err != nil {
			return nil, err
		}
		return wrapArrayShape(carried, shape), nil

	case slicing.KindMissing:
		return getitemNextMissing(n, head, tail, advanced)

	default:
		panic(wrapErr(n.classname(), n.id, kernels.NewInternalAssert("unsupported SliceItem kind for NumpyArray.GetItemNext")))
	}
}

func (n *NumpyArray) MinMaxDepth() (int, int) { return 1, 1 }

func (n *NumpyArray) NumFields() (int, error) {
	return 0, &NodeError{Classname: n.classname(), cause: kernels.NewUnknownRecords()}
}
func (n *NumpyArray) FieldIndexOf(key string) (int, error) {
	return 0, &NodeError{Classname: n.classname(), cause: kernels.NewUnknownRecords()}
}
func (n *NumpyArray) KeyOf(idx int) (string, error) {
	return "", &NodeError{Classname: n.classname(), cause: kernels.NewUnknownRecords()}
}
func (n *NumpyArray) HasKey(key string) bool               { return false }
func (n *NumpyArray) KeyAliases(canonical string) []string { return nil }
func (n *NumpyArray) Keys() []string                       { return nil }

// AtFloat64/AtInt64/AtBool expose element reads for diagnostics
// (stringify/jsonify) without callers needing to know the concrete Go type.
func (n *NumpyArray) AtFloat64(i int) float64 { return n.storage.AtFloat64(i) }
func (n *NumpyArray) AtInt64(i int) int64     { return n.storage.AtInt64(i) }
func (n *NumpyArray) AtBool(i int) bool       { return n.storage.AtBool(i) }

// DType reports the leaf's primitive element kind.
func (n *NumpyArray) DType() types.DType { return n.storage.DType() }
