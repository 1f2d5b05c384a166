package nestarr

import (
	"fmt"

	"github.com/nestarr/nestarr/internal/buffer"
	"github.com/nestarr/nestarr/internal/identity"
	"github.com/nestarr/nestarr/internal/kernels"
	"github.com/nestarr/nestarr/slicing"
	"github.com/nestarr/nestarr/types"
)

// ListOffsetArray is a variable-length-list node backed by a single
// monotonic offsets index of length Length()+1: row i spans
// content[offsets[i]:offsets[i+1]) (spec §3). Offsets are kept as a plain
// int64 index rather than a tagged 32/64-bit pair — the same simplification
// made for Identity — since every kernel here already widens to int64.
type ListOffsetArray struct {
	typeHolder
	content Content
	offsets buffer.Index
}

// NewListOffsetArray builds a ListOffsetArray. offsets must have length
// >= 1; Length() == offsets.Len()-1.
func NewListOffsetArray(content Content, offsets buffer.Index) *ListOffsetArray {
	if offsets.Len() < 1 {
		panic("nestarr: ListOffsetArray offsets must have length >= 1")
	}
	return &ListOffsetArray{content: content, offsets: offsets}
}

func (n *ListOffsetArray) sealed()          {}
func (n *ListOffsetArray) classname() string { return "ListOffsetArray" }

func (n *ListOffsetArray) Length() int64 { return int64(n.offsets.Len() - 1) }

func (n *ListOffsetArray) starts() []int64 {
	return n.offsets.Slice(0, n.offsets.Len()-1).ToInt64()
}

func (n *ListOffsetArray) stops() []int64 {
	return n.offsets.Slice(1, n.offsets.Len()).ToInt64()
}

func (n *ListOffsetArray) ShallowCopy() Content {
	cp := *n
	return &cp
}

func (n *ListOffsetArray) SetID() Content {
	root := identity.New(int(n.Length()))
	out, _ := n.SetIDGiven(root)
	return out
}

func (n *ListOffsetArray) SetIDGiven(id *identity.Identity) (Content, error) {
	if int64(id.Length()) != n.Length() {
		return nil, wrapErr(n.classname(), id, kernels.NewIdentityLength(
			fmt.Sprintf("identity length %d does not match node length %d", id.Length(), n.Length())))
	}
	sizes := kernels.ListSublistLengths(n.starts(), n.stops())
	childID := id.DescendRagged(sizes)

	lo := n.offsets.Get(0)
	hi := n.offsets.Get(n.offsets.Len() - 1)
	carriedContent, err := n.content.GetItemRangeNowrap(lo, hi)
	if err != nil {
		return nil, err
	}
	newContent, err := carriedContent.SetIDGiven(childID)
	if err != nil {
		return nil, err
	}
	cp := *n
	cp.id = id
	cp.content = newContent
	return &cp, nil
}

func (n *ListOffsetArray) ID() (*identity.Identity, bool) { return n.typeHolder.ID() }

func (n *ListOffsetArray) InnerType(bare bool) types.Type {
	var inner types.Type
	if !bare {
		if t, ok := n.content.AttachedType(); ok {
			inner = t
		} else {
			inner = n.content.InnerType(false)
		}
	} else {
		inner = n.content.InnerType(true)
	}
	return types.List(inner)
}

func (n *ListOffsetArray) AttachedType() (types.Type, bool) { return n.typeHolder.AttachedType() }

func (n *ListOffsetArray) SetTypePart(t types.Type) (Content, error) {
	if !n.Accepts(t) {
		return nil, wrapErr(n.classname(), n.id, kernels.NewTypeMismatch(diffTypes(n.InnerType(true), t)))
	}
	newContent, err := n.content.SetTypePart(t.Inner())
	if err != nil {
		return nil, err
	}
	cp := *n
	tt := t
	cp.typ = &tt
	cp.content = newContent
	return &cp, nil
}

func (n *ListOffsetArray) Accepts(t types.Type) bool {
	return t.Level().ShallowEqual(types.List(types.Unknown()))
}

func (n *ListOffsetArray) GetItemNothing() Content {
	return NewListOffsetArray(n.content.GetItemNothing(), buffer.FromInt64([]int64{0}))
}

func (n *ListOffsetArray) GetItemAt(i int64) (Content, error) {
	idx, ok := wrapIndex(i, n.Length())
	if !ok {
		return nil, wrapErr(n.classname(), n.id, kernels.NewIndexError("ListOffsetArray getitem_at out of range", i))
	}
	return n.GetItemAtNowrap(idx)
}

func (n *ListOffsetArray) GetItemAtNowrap(i int64) (Content, error) {
	return n.content.GetItemRangeNowrap(n.offsets.Get(int(i)), n.offsets.Get(int(i)+1))
}

func (n *ListOffsetArray) GetItemRange(a, b int64) (Content, error) {
	lo, hi := clampRange(a, b, n.Length())
	return n.GetItemRangeNowrap(lo, hi)
}

func (n *ListOffsetArray) GetItemRangeNowrap(a, b int64) (Content, error) {
	sub := n.offsets.Slice(int(a), int(b)+1)
	return NewListOffsetArray(n.content, sub), nil
}

func (n *ListOffsetArray) GetItemField(key string) (Content, error) {
	sub, err := n.content.GetItemField(key)
	if err != nil {
		return nil, err
	}
	return NewListOffsetArray(sub, n.offsets), nil
}

func (n *ListOffsetArray) GetItemFields(keys []string) (Content, error) {
	sub, err := n.content.GetItemFields(keys)
	if err != nil {
		return nil, err
	}
	return NewListOffsetArray(sub, n.offsets), nil
}

func (n *ListOffsetArray) Carry(carry []int64) (Content, error) {
	starts, stops := n.starts(), n.stops()
	newOffsets := make([]int64, len(carry)+1)
	newOffsets[0] = 0
	for i, c := range carry {
		newOffsets[i+1] = newOffsets[i] + (stops[c] - starts[c])
	}
	// Materialize a fresh content view so the carried rows are contiguous
	// under the new offsets, mirroring how a real compacting carry would
	// gather the selected sublists end to end.
	total := newOffsets[len(newOffsets)-1]
	gather := make([]int64, 0, total)
	for _, c := range carry {
		for j := starts[c]; j < stops[c]; j++ {
			gather = append(gather, j)
		}
	}
	newContent, err := n.content.Carry(gather)
	if err != nil {
		return nil, err
	}
	out := NewListOffsetArray(newContent, buffer.FromInt64(newOffsets))
	if n.id != nil {
		out.id = n.id.Carry(carry)
	}
	return out, nil
}

// GetItemNext implements the ListOffsetArray transforms of spec §4.3: At,
// Range, and Array, each operating per-row over the ragged [starts,stops)
// sublists instead of a uniform stride.
func (n *ListOffsetArray) GetItemNext(head slicing.Item, tail slicing.Slice, advanced slicing.Advanced) (Content, error) {
	starts, stops := n.starts(), n.stops()

	switch head.Kind() {
	case slicing.KindAt:
		if !advanced.Empty() {
			panic(wrapErr(n.classname(), n.id, kernels.NewInternalAssert("At head with a non-empty advanced index")))
		}
		nextcarry, kerr := kernels.ListGetitemNextAt(starts, stops, head.At())
		if kerr != nil {
			return nil, wrapErr(n.classname(), n.id, kerr)
		}
		carried, err := n.content.Carry(nextcarry)
		if err != nil {
			return nil, err
		}
		return dispatch(carried, tail, advanced)

	case slicing.KindRange:
		start, stop, step, _, _ := head.Range()
		if step == 0 {
			panic(wrapErr(n.classname(), n.id, kernels.NewInternalAssert("range step must not be zero")))
		}
		nextcarry, nextsize := kernels.ListGetitemNextRange(starts, stops, start, stop, step)
		carried, err := n.content.Carry(nextcarry)
		if err != nil {
			return nil, err
		}

		newOffsets := make([]int64, len(nextsize)+1)
		for i, s := range nextsize {
			newOffsets[i+1] = newOffsets[i] + s
		}

		var nextadvanced slicing.Advanced
		if !advanced.Empty() {
			nextadvanced = make([]int64, 0, len(nextcarry))
			for i, a := range advanced {
				for j := int64(0); j < nextsize[i]; j++ {
					nextadvanced = append(nextadvanced, a)
				}
			}
		}
		inner, err := dispatch(carried, tail, nextadvanced)
		if err != nil {
			return nil, err
		}
		return NewListOffsetArray(inner, buffer.FromInt64(newOffsets)), nil

	case slicing.KindArray:
		values, _ := head.ArrayValues()

		if advanced.Empty() {
			regularized, kerr := kernels.ListGetitemNextArrayRegularize(starts, stops, values)
			if kerr != nil {
				return nil, wrapErr(n.classname(), n.id, kerr)
			}
			nextcarry, nextadvanced := kernels.ListGetitemNextArray(starts, regularized)
			carried, err := n.content.Carry(nextcarry)
			if err != nil {
				return nil, err
			}
			inner, err := dispatch(carried, tail, slicing.Advanced(nextadvanced))
			if err != nil {
				return nil, err
			}
			width := len(values)
			newOffsets := make([]int64, len(starts)+1)
			for i := range starts {
				newOffsets[i+1] = newOffsets[i] + int64(width)
			}
			return NewListOffsetArray(inner, buffer.FromInt64(newOffsets)), nil
		}

		// Zipped form: one head value per broadcast position, canonicalised
		// against that position's own row length.
		if len(values) != len(advanced) {
			panic(wrapErr(n.classname(), n.id, kernels.NewInternalAssert("advanced and array-head length mismatch in zipped list indexing")))
		}
		perRow := make([]int64, len(advanced))
		for k, row := range advanced {
			length := stops[row] - starts[row]
			c, kerr := kernels.Canonicalize(values[k], length)
			if kerr != nil {
				return nil, wrapErr(n.classname(), n.id, kerr)
			}
			perRow[k] = c
		}
		nextcarry := kernels.ListGetitemNextArrayAdvanced(starts, advanced, perRow)
		carried, err := n.content.Carry(nextcarry)
		if err != nil {
			return nil, err
		}
		nextadvanced := make([]int64, len(advanced))
		for i := range nextadvanced {
			nextadvanced[i] = int64(i)
		}
		return dispatch(carried, tail, slicing.Advanced(nextadvanced))

	case slicing.KindMissing:
		return getitemNextMissing(n, head, tail, advanced)

	default:
		panic(wrapErr(n.classname(), n.id, kernels.NewInternalAssert("unsupported SliceItem kind for ListOffsetArray.GetItemNext")))
	}
}

func (n *ListOffsetArray) MinMaxDepth() (int, int) {
	lo, hi := n.content.MinMaxDepth()
	return lo + 1, hi + 1
}

func (n *ListOffsetArray) NumFields() (int, error)              { return recordIntrospection(n).NumFields() }
func (n *ListOffsetArray) FieldIndexOf(key string) (int, error) { return recordIntrospection(n).FieldIndexOf(key) }
func (n *ListOffsetArray) KeyOf(idx int) (string, error)        { return recordIntrospection(n).KeyOf(idx) }
func (n *ListOffsetArray) HasKey(key string) bool               { return recordIntrospection(n).HasKey(key) }
func (n *ListOffsetArray) KeyAliases(canonical string) []string { return recordIntrospection(n).KeyAliases(canonical) }
func (n *ListOffsetArray) Keys() []string                       { return recordIntrospection(n).Keys() }

// Content exposes the wrapped child node.
func (n *ListOffsetArray) Content() Content { return n.content }

// Offsets exposes the backing offsets index.
func (n *ListOffsetArray) Offsets() buffer.Index { return n.offsets }
