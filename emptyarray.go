package nestarr

import (
	"fmt"

	"github.com/nestarr/nestarr/internal/identity"
	"github.com/nestarr/nestarr/internal/kernels"
	"github.com/nestarr/nestarr/slicing"
	"github.com/nestarr/nestarr/types"
)

// EmptyArray is the always-zero-length, Unknown-typed leaf (spec §3): the
// canonical "nothing here yet" node every GetItemNothing eventually
// bottoms out at when no concrete dtype has been chosen.
type EmptyArray struct {
	typeHolder
}

// NewEmptyArray builds the (stateless) EmptyArray leaf.
func NewEmptyArray() *EmptyArray { return &EmptyArray{} }

func (n *EmptyArray) sealed()          {}
func (n *EmptyArray) classname() string { return "EmptyArray" }

func (n *EmptyArray) Length() int64 { return 0 }

func (n *EmptyArray) ShallowCopy() Content {
	cp := *n
	return &cp
}

func (n *EmptyArray) SetID() Content {
	cp := *n
	cp.id = identity.New(0)
	return &cp
}

func (n *EmptyArray) SetIDGiven(id *identity.Identity) (Content, error) {
	if id.Length() != 0 {
		return nil, wrapErr(n.classname(), id, kernels.NewIdentityLength(
			fmt.Sprintf("identity length %d does not match node length 0", id.Length())))
	}
	cp := *n
	cp.id = id
	return &cp, nil
}

func (n *EmptyArray) ID() (*identity.Identity, bool) { return n.typeHolder.ID() }

func (n *EmptyArray) InnerType(bare bool) types.Type { return types.Unknown() }

func (n *EmptyArray) AttachedType() (types.Type, bool) { return n.typeHolder.AttachedType() }

func (n *EmptyArray) SetTypePart(t types.Type) (Content, error) {
	if !n.Accepts(t) {
		return nil, wrapErr(n.classname(), n.id, kernels.NewTypeMismatch(diffTypes(n.InnerType(true), t)))
	}
	cp := *n
	tt := t
	cp.typ = &tt
	return &cp, nil
}

func (n *EmptyArray) Accepts(t types.Type) bool { return true }

func (n *EmptyArray) GetItemNothing() Content { return n }

func (n *EmptyArray) GetItemAt(i int64) (Content, error) {
	return nil, wrapErr(n.classname(), n.id, kernels.NewIndexError("EmptyArray has no elements", i))
}

func (n *EmptyArray) GetItemAtNowrap(i int64) (Content, error) {
	return nil, wrapErr(n.classname(), n.id, kernels.NewIndexError("EmptyArray has no elements", i))
}

func (n *EmptyArray) GetItemRange(a, b int64) (Content, error) {
	return n, nil
}

func (n *EmptyArray) GetItemRangeNowrap(a, b int64) (Content, error) {
	return n, nil
}

func (n *EmptyArray) GetItemField(key string) (Content, error) {
	return nil, wrapErr(n.classname(), n.id, kernels.NewUnknownRecords())
}

func (n *EmptyArray) GetItemFields(keys []string) (Content, error) {
	return nil, wrapErr(n.classname(), n.id, kernels.NewUnknownRecords())
}

func (n *EmptyArray) Carry(carry []int64) (Content, error) {
	if len(carry) != 0 {
		return nil, wrapErr(n.classname(), n.id, kernels.NewIndexError("cannot carry non-empty selection from EmptyArray", int64(len(carry))))
	}
	return n, nil
}

func (n *EmptyArray) GetItemNext(head slicing.Item, tail slicing.Slice, advanced slicing.Advanced) (Content, error) {
	switch head.Kind() {
	case slicing.KindAt:
		return nil, wrapErr(n.classname(), n.id, kernels.NewIndexError("EmptyArray has no elements", head.At()))
	case slicing.KindRange, slicing.KindArray:
		return n, nil
	case slicing.KindMissing:
		return getitemNextMissing(n, head, tail, advanced)
	default:
		panic(wrapErr(n.classname(), n.id, kernels.NewInternalAssert("unsupported SliceItem kind for EmptyArray.GetItemNext")))
	}
}

func (n *EmptyArray) MinMaxDepth() (int, int) { return 1, 1 }

func (n *EmptyArray) NumFields() (int, error) {
	return 0, &NodeError{Classname: n.classname(), cause: kernels.NewUnknownRecords()}
}
func (n *EmptyArray) FieldIndexOf(key string) (int, error) {
	return 0, &NodeError{Classname: n.classname(), cause: kernels.NewUnknownRecords()}
}
func (n *EmptyArray) KeyOf(idx int) (string, error) {
	return "", &NodeError{Classname: n.classname(), cause: kernels.NewUnknownRecords()}
}
func (n *EmptyArray) HasKey(key string) bool               { return false }
func (n *EmptyArray) KeyAliases(canonical string) []string { return nil }
func (n *EmptyArray) Keys() []string                       { return nil }
