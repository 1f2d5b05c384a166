package nestarr

import (
	"fmt"

	"github.com/nestarr/nestarr/internal/bitmap"
	"github.com/nestarr/nestarr/internal/buffer"
	"github.com/nestarr/nestarr/internal/identity"
	"github.com/nestarr/nestarr/internal/kernels"
	"github.com/nestarr/nestarr/slicing"
	"github.com/nestarr/nestarr/types"
)

// UnionArray holds row i in contents[tags[i]] at that alternative's own
// index[i] (spec §3): a tagged union of heterogeneous Content alternatives.
type UnionArray struct {
	typeHolder
	contents []Content
	tags     buffer.Index
	index    buffer.Index
}

// NewUnionArray builds a UnionArray. tags and index must share the same
// length (= Length()); tags[i] selects the alternative, index[i] the row
// within it.
func NewUnionArray(contents []Content, tags, index buffer.Index) *UnionArray {
	if tags.Len() != index.Len() {
		panic("nestarr: UnionArray tags/index length mismatch")
	}
	return &UnionArray{contents: append([]Content(nil), contents...), tags: tags, index: index}
}

func (n *UnionArray) sealed()          {}
func (n *UnionArray) classname() string { return "UnionArray" }

func (n *UnionArray) Length() int64 { return int64(n.tags.Len()) }

func (n *UnionArray) ShallowCopy() Content {
	cp := *n
	cp.contents = append([]Content(nil), n.contents...)
	return &cp
}

func (n *UnionArray) SetID() Content {
	root := identity.New(int(n.Length()))
	out, _ := n.SetIDGiven(root)
	return out
}

func (n *UnionArray) SetIDGiven(id *identity.Identity) (Content, error) {
	if int64(id.Length()) != n.Length() {
		return nil, wrapErr(n.classname(), id, kernels.NewIdentityLength(
			fmt.Sprintf("identity length %d does not match node length %d", id.Length(), n.Length())))
	}
	cp := *n
	cp.id = id
	return &cp, nil
}

func (n *UnionArray) ID() (*identity.Identity, bool) { return n.typeHolder.ID() }

func (n *UnionArray) InnerType(bare bool) types.Type {
	alts := make([]types.Type, len(n.contents))
	for i, c := range n.contents {
		if !bare {
			if t, ok := c.AttachedType(); ok {
				alts[i] = t
				continue
			}
		}
		alts[i] = c.InnerType(bare)
	}
	return types.Union(alts...)
}

func (n *UnionArray) AttachedType() (types.Type, bool) { return n.typeHolder.AttachedType() }

func (n *UnionArray) SetTypePart(t types.Type) (Content, error) {
	if !n.Accepts(t) {
		return nil, wrapErr(n.classname(), n.id, kernels.NewTypeMismatch(diffTypes(n.InnerType(true), t)))
	}
	alts := t.Alternatives()
	if len(alts) != len(n.contents) {
		return nil, wrapErr(n.classname(), n.id, kernels.NewTypeMismatch("union alternative count mismatch"))
	}
	newContents := make([]Content, len(n.contents))
	for i, c := range n.contents {
		nc, err := c.SetTypePart(alts[i])
		if err != nil {
			return nil, err
		}
		newContents[i] = nc
	}
	cp := *n
	tt := t
	cp.typ = &tt
	cp.contents = newContents
	return &cp, nil
}

func (n *UnionArray) Accepts(t types.Type) bool {
	model := make([]types.Type, len(n.contents))
	for i := range model {
		model[i] = types.Unknown()
	}
	return t.Level().ShallowEqual(types.Union(model...))
}

func (n *UnionArray) GetItemNothing() Content {
	if len(n.contents) == 0 {
		return NewUnionArray(nil, buffer.FromInt64(nil), buffer.FromInt64(nil))
	}
	return n.contents[0].GetItemNothing()
}

func (n *UnionArray) GetItemAt(i int64) (Content, error) {
	idx, ok := wrapIndex(i, n.Length())
	if !ok {
		return nil, wrapErr(n.classname(), n.id, kernels.NewIndexError("UnionArray getitem_at out of range", i))
	}
	return n.GetItemAtNowrap(idx)
}

func (n *UnionArray) GetItemAtNowrap(i int64) (Content, error) {
	tag := n.tags.Get(int(i))
	row := n.index.Get(int(i))
	return n.contents[tag].GetItemAtNowrap(row)
}

func (n *UnionArray) GetItemRange(a, b int64) (Content, error) {
	lo, hi := clampRange(a, b, n.Length())
	return n.GetItemRangeNowrap(lo, hi)
}

func (n *UnionArray) GetItemRangeNowrap(a, b int64) (Content, error) {
	return NewUnionArray(n.contents, n.tags.Slice(int(a), int(b)), n.index.Slice(int(a), int(b))), nil
}

func (n *UnionArray) GetItemField(key string) (Content, error) {
	newContents := make([]Content, len(n.contents))
	for i, c := range n.contents {
		nc, err := c.GetItemField(key)
		if err != nil {
			return nil, err
		}
		newContents[i] = nc
	}
	return NewUnionArray(newContents, n.tags, n.index), nil
}

func (n *UnionArray) GetItemFields(keys []string) (Content, error) {
	newContents := make([]Content, len(n.contents))
	for i, c := range n.contents {
		nc, err := c.GetItemFields(keys)
		if err != nil {
			return nil, err
		}
		newContents[i] = nc
	}
	return NewUnionArray(newContents, n.tags, n.index), nil
}

func (n *UnionArray) Carry(carry []int64) (Content, error) {
	tags := n.tags.ToInt64()
	index := n.index.ToInt64()
	newTags := make([]int64, len(carry))
	newIndex := make([]int64, len(carry))
	for i, c := range carry {
		newTags[i] = tags[c]
		newIndex[i] = index[c]
	}
	out := NewUnionArray(n.contents, buffer.FromInt64(newTags), buffer.FromInt64(newIndex))
	if n.id != nil {
		out.id = n.id.Carry(carry)
	}
	return out, nil
}

// GetItemNext partitions the implicit carry-over-all-rows by tag, recurses
// each alternative independently against its own rows, then reassembles
// the results back into original order (spec §4.3: "Union nodes partition
// the carry by tag, recurse per alternative, and reassemble").
func (n *UnionArray) GetItemNext(head slicing.Item, tail slicing.Slice, advanced slicing.Advanced) (Content, error) {
	length := int(n.Length())
	allRows := make([]int64, length)
	for i := range allRows {
		allRows[i] = int64(i)
	}
	tags := n.tags.ToInt64()
	index := n.index.ToInt64()
	part := bitmap.NewTagPartition(tags, allRows, len(n.contents))

	resultTags := make([]int64, length)
	resultIndex := make([]int64, length)
	newContents := make([]Content, len(n.contents))

	for tag, c := range n.contents {
		rows := part.Rows(tag)
		if len(rows) == 0 {
			newContents[tag] = c
			continue
		}
		altCarry := make([]int64, len(rows))
		for i, row := range rows {
			altCarry[i] = index[row]
		}
		projected, err := c.Carry(altCarry)
		if err != nil {
			return nil, err
		}

		var altAdvanced slicing.Advanced
		if !advanced.Empty() {
			altAdvanced = make([]int64, len(rows))
			for i, pos := range part.Positions(tag) {
				altAdvanced[i] = advanced[pos]
			}
		}

		result, err := projected.GetItemNext(head, tail, altAdvanced)
		if err != nil {
			return nil, err
		}
		newContents[tag] = result

		for i, pos := range part.Positions(tag) {
			resultTags[pos] = int64(tag)
			resultIndex[pos] = int64(i)
		}
	}

	return NewUnionArray(newContents, buffer.FromInt64(resultTags), buffer.FromInt64(resultIndex)), nil
}

func (n *UnionArray) MinMaxDepth() (int, int) {
	lo, hi := -1, -1
	for _, c := range n.contents {
		clo, chi := c.MinMaxDepth()
		if lo == -1 || clo < lo {
			lo = clo
		}
		if chi > hi {
			hi = chi
		}
	}
	if lo == -1 {
		lo, hi = 0, 0
	}
	return lo, hi
}

func (n *UnionArray) NumFields() (int, error) {
	return recordIntrospection(n).NumFields()
}
func (n *UnionArray) FieldIndexOf(key string) (int, error) { return recordIntrospection(n).FieldIndexOf(key) }
func (n *UnionArray) KeyOf(idx int) (string, error)        { return recordIntrospection(n).KeyOf(idx) }
func (n *UnionArray) HasKey(key string) bool               { return recordIntrospection(n).HasKey(key) }
func (n *UnionArray) KeyAliases(canonical string) []string { return recordIntrospection(n).KeyAliases(canonical) }
func (n *UnionArray) Keys() []string                       { return recordIntrospection(n).Keys() }

// Contents exposes the wrapped alternative nodes.
func (n *UnionArray) Contents() []Content { return append([]Content(nil), n.contents...) }

// Tags and Index expose the backing tag/index vectors.
func (n *UnionArray) Tags() buffer.Index  { return n.tags }
func (n *UnionArray) IndexOf() buffer.Index { return n.index }
