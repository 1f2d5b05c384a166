package nestarr

import (
	"fmt"

	"github.com/nestarr/nestarr/internal/buffer"
	"github.com/nestarr/nestarr/internal/identity"
	"github.com/nestarr/nestarr/internal/kernels"
	"github.com/nestarr/nestarr/slicing"
	"github.com/nestarr/nestarr/types"
)

// IndexedArray is an indirection node (spec §3): element i is
// content[index[i]]. Every non-negative index is valid (unlike
// OptionArray, where a negative entry marks a missing value).
type IndexedArray struct {
	typeHolder
	content Content
	index   buffer.Index
}

// NewIndexedArray builds an IndexedArray.
func NewIndexedArray(content Content, index buffer.Index) *IndexedArray {
	return &IndexedArray{content: content, index: index}
}

func (n *IndexedArray) sealed()          {}
func (n *IndexedArray) classname() string { return "IndexedArray" }

func (n *IndexedArray) Length() int64 { return int64(n.index.Len()) }

func (n *IndexedArray) ShallowCopy() Content {
	cp := *n
	return &cp
}

func (n *IndexedArray) project() (Content, error) {
	return n.content.Carry(n.index.ToInt64())
}

func (n *IndexedArray) SetID() Content {
	root := identity.New(int(n.Length()))
	out, _ := n.SetIDGiven(root)
	return out
}

func (n *IndexedArray) SetIDGiven(id *identity.Identity) (Content, error) {
	if int64(id.Length()) != n.Length() {
		return nil, wrapErr(n.classname(), id, kernels.NewIdentityLength(
			fmt.Sprintf("identity length %d does not match node length %d", id.Length(), n.Length())))
	}
	projected, err := n.project()
	if err != nil {
		return nil, err
	}
	newContent, err := projected.SetIDGiven(id)
	if err != nil {
		return nil, err
	}
	cp := *n
	cp.id = id
	cp.content = newContent
	cp.index = buffer.FromInt64(kernels.NewIdentity(int(n.Length())))
	return &cp, nil
}

func (n *IndexedArray) ID() (*identity.Identity, bool) { return n.typeHolder.ID() }

func (n *IndexedArray) InnerType(bare bool) types.Type { return n.content.InnerType(bare) }

func (n *IndexedArray) AttachedType() (types.Type, bool) { return n.typeHolder.AttachedType() }

func (n *IndexedArray) SetTypePart(t types.Type) (Content, error) {
	if !n.Accepts(t) {
		return nil, wrapErr(n.classname(), n.id, kernels.NewTypeMismatch(diffTypes(n.InnerType(true), t)))
	}
	newContent, err := n.content.SetTypePart(t)
	if err != nil {
		return nil, err
	}
	cp := *n
	tt := t
	cp.typ = &tt
	cp.content = newContent
	return &cp, nil
}

// Accepts delegates to content's own shape, since IndexedArray is
// transparent indirection rather than a distinct structural layer.
func (n *IndexedArray) Accepts(t types.Type) bool { return n.content.Accepts(t) }

func (n *IndexedArray) GetItemNothing() Content {
	return n.content.GetItemNothing()
}

func (n *IndexedArray) GetItemAt(i int64) (Content, error) {
	idx, ok := wrapIndex(i, n.Length())
	if !ok {
		return nil, wrapErr(n.classname(), n.id, kernels.NewIndexError("IndexedArray getitem_at out of range", i))
	}
	return n.GetItemAtNowrap(idx)
}

func (n *IndexedArray) GetItemAtNowrap(i int64) (Content, error) {
	return n.content.GetItemAtNowrap(n.index.Get(int(i)))
}

func (n *IndexedArray) GetItemRange(a, b int64) (Content, error) {
	lo, hi := clampRange(a, b, n.Length())
	return n.GetItemRangeNowrap(lo, hi)
}

func (n *IndexedArray) GetItemRangeNowrap(a, b int64) (Content, error) {
	return NewIndexedArray(n.content, n.index.Slice(int(a), int(b))), nil
}

func (n *IndexedArray) GetItemField(key string) (Content, error) {
	sub, err := n.content.GetItemField(key)
	if err != nil {
		return nil, err
	}
	return NewIndexedArray(sub, n.index), nil
}

func (n *IndexedArray) GetItemFields(keys []string) (Content, error) {
	sub, err := n.content.GetItemFields(keys)
	if err != nil {
		return nil, err
	}
	return NewIndexedArray(sub, n.index), nil
}

func (n *IndexedArray) Carry(carry []int64) (Content, error) {
	composed := kernels.IndexedCompose(n.index.ToInt64(), carry)
	out := NewIndexedArray(n.content, buffer.FromInt64(composed))
	if n.id != nil {
		out.id = n.id.Carry(carry)
	}
	return out, nil
}

// GetItemNext projects through the index first, then delegates to the
// projected content's own GetItemNext (spec §4.3: "indexed and option
// nodes compose their index/mask with the incoming nextcarry before
// delegating").
func (n *IndexedArray) GetItemNext(head slicing.Item, tail slicing.Slice, advanced slicing.Advanced) (Content, error) {
	projected, err := n.project()
	if err != nil {
		return nil, err
	}
	return projected.GetItemNext(head, tail, advanced)
}

func (n *IndexedArray) MinMaxDepth() (int, int) { return n.content.MinMaxDepth() }

func (n *IndexedArray) NumFields() (int, error)              { return n.content.NumFields() }
func (n *IndexedArray) FieldIndexOf(key string) (int, error) { return n.content.FieldIndexOf(key) }
func (n *IndexedArray) KeyOf(idx int) (string, error)        { return n.content.KeyOf(idx) }
func (n *IndexedArray) HasKey(key string) bool               { return n.content.HasKey(key) }
func (n *IndexedArray) KeyAliases(canonical string) []string { return n.content.KeyAliases(canonical) }
func (n *IndexedArray) Keys() []string                       { return n.content.Keys() }

// Content exposes the wrapped child node.
func (n *IndexedArray) Content() Content { return n.content }

// Index exposes the backing index.
func (n *IndexedArray) Index() buffer.Index { return n.index }
