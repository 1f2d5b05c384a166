package nestarr

import (
	"fmt"

	"github.com/nestarr/nestarr/internal/buffer"
	"github.com/nestarr/nestarr/internal/identity"
	"github.com/nestarr/nestarr/internal/kernels"
	"github.com/nestarr/nestarr/slicing"
	"github.com/nestarr/nestarr/types"
)

// ListArray is a variable-length-list node backed by independent starts and
// stops indices (spec §3): row i spans content[starts[i]:stops[i]), which
// unlike ListOffsetArray need not be contiguous or sorted across rows. It
// shares every kernel with ListOffsetArray; the two variants differ only in
// how the sublist bounds are stored.
type ListArray struct {
	typeHolder
	content      Content
	startsIdx    buffer.Index
	stopsIdx     buffer.Index
}

// NewListArray builds a ListArray over content with independent starts and
// stops of equal length.
func NewListArray(content Content, startsIdx, stopsIdx buffer.Index) *ListArray {
	if startsIdx.Len() != stopsIdx.Len() {
		panic("nestarr: ListArray starts/stops length mismatch")
	}
	return &ListArray{content: content, startsIdx: startsIdx, stopsIdx: stopsIdx}
}

func (n *ListArray) sealed()          {}
func (n *ListArray) classname() string { return "ListArray" }

func (n *ListArray) Length() int64 { return int64(n.startsIdx.Len()) }

func (n *ListArray) starts() []int64 { return n.startsIdx.ToInt64() }
func (n *ListArray) stops() []int64  { return n.stopsIdx.ToInt64() }

func (n *ListArray) ShallowCopy() Content {
	cp := *n
	return &cp
}

func (n *ListArray) SetID() Content {
	root := identity.New(int(n.Length()))
	out, _ := n.SetIDGiven(root)
	return out
}

func (n *ListArray) SetIDGiven(id *identity.Identity) (Content, error) {
	if int64(id.Length()) != n.Length() {
		return nil, wrapErr(n.classname(), id, kernels.NewIdentityLength(
			fmt.Sprintf("identity length %d does not match node length %d", id.Length(), n.Length())))
	}
	starts, stops := n.starts(), n.stops()
	sizes := kernels.ListSublistLengths(starts, stops)
	childID := id.DescendRagged(sizes)

	gather := make([]int64, 0)
	for i := range starts {
		for j := starts[i]; j < stops[i]; j++ {
			gather = append(gather, j)
		}
	}
	carriedContent, err := n.content.Carry(gather)
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

func (n *ListArray) ID() (*identity.Identity, bool) { return n.typeHolder.ID() }

func (n *ListArray) InnerType(bare bool) types.Type {
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

func (n *ListArray) AttachedType() (types.Type, bool) { return n.typeHolder.AttachedType() }

func (n *ListArray) SetTypePart(t types.Type) (Content, error) {
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

func (n *ListArray) Accepts(t types.Type) bool {
	return t.Level().ShallowEqual(types.List(types.Unknown()))
}

func (n *ListArray) GetItemNothing() Content {
	empty := buffer.FromInt64(nil)
	return NewListArray(n.content.GetItemNothing(), empty, empty)
}

func (n *ListArray) GetItemAt(i int64) (Content, error) {
	idx, ok := wrapIndex(i, n.Length())
	if !ok {
		return nil, wrapErr(n.classname(), n.id, kernels.NewIndexError("ListArray getitem_at out of range", i))
	}
	return n.GetItemAtNowrap(idx)
}

func (n *ListArray) GetItemAtNowrap(i int64) (Content, error) {
	return n.content.GetItemRangeNowrap(n.startsIdx.Get(int(i)), n.stopsIdx.Get(int(i)))
}

func (n *ListArray) GetItemRange(a, b int64) (Content, error) {
	lo, hi := clampRange(a, b, n.Length())
	return n.GetItemRangeNowrap(lo, hi)
}

func (n *ListArray) GetItemRangeNowrap(a, b int64) (Content, error) {
	return NewListArray(n.content, n.startsIdx.Slice(int(a), int(b)), n.stopsIdx.Slice(int(a), int(b))), nil
}

func (n *ListArray) GetItemField(key string) (Content, error) {
	sub, err := n.content.GetItemField(key)
	if err != nil {
		return nil, err
	}
	return NewListArray(sub, n.startsIdx, n.stopsIdx), nil
}

func (n *ListArray) GetItemFields(keys []string) (Content, error) {
	sub, err := n.content.GetItemFields(keys)
	if err != nil {
		return nil, err
	}
	return NewListArray(sub, n.startsIdx, n.stopsIdx), nil
}

func (n *ListArray) Carry(carry []int64) (Content, error) {
	starts, stops := n.starts(), n.stops()
	newStarts := make([]int64, len(carry))
	newStops := make([]int64, len(carry))
	for i, c := range carry {
		newStarts[i] = starts[c]
		newStops[i] = stops[c]
	}
	out := NewListArray(n.content, buffer.FromInt64(newStarts), buffer.FromInt64(newStops))
	if n.id != nil {
		out.id = n.id.Carry(carry)
	}
	return out, nil
}

// GetItemNext mirrors ListOffsetArray.GetItemNext exactly (both share the
// internal/kernels/list.go transforms); see that file for the detailed
// per-case commentary (spec §4.3).
func (n *ListArray) GetItemNext(head slicing.Item, tail slicing.Slice, advanced slicing.Advanced) (Content, error) {
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

		newStarts := make([]int64, len(nextsize))
		newStops := make([]int64, len(nextsize))
		pos := int64(0)
		for i, s := range nextsize {
			newStarts[i] = pos
			pos += s
			newStops[i] = pos
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
		return NewListArray(inner, buffer.FromInt64(newStarts), buffer.FromInt64(newStops)), nil

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
			width := int64(len(values))
			newStarts := make([]int64, len(starts))
			newStops := make([]int64, len(starts))
			pos := int64(0)
			for i := range starts {
				newStarts[i] = pos
				pos += width
				newStops[i] = pos
			}
			return NewListArray(inner, buffer.FromInt64(newStarts), buffer.FromInt64(newStops)), nil
		}

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
		panic(wrapErr(n.classname(), n.id, kernels.NewInternalAssert("unsupported SliceItem kind for ListArray.GetItemNext")))
	}
}

func (n *ListArray) MinMaxDepth() (int, int) {
	lo, hi := n.content.MinMaxDepth()
	return lo + 1, hi + 1
}

func (n *ListArray) NumFields() (int, error)              { return recordIntrospection(n).NumFields() }
func (n *ListArray) FieldIndexOf(key string) (int, error) { return recordIntrospection(n).FieldIndexOf(key) }
func (n *ListArray) KeyOf(idx int) (string, error)        { return recordIntrospection(n).KeyOf(idx) }
func (n *ListArray) HasKey(key string) bool               { return recordIntrospection(n).HasKey(key) }
func (n *ListArray) KeyAliases(canonical string) []string { return recordIntrospection(n).KeyAliases(canonical) }
func (n *ListArray) Keys() []string                       { return recordIntrospection(n).Keys() }

// Content exposes the wrapped child node.
func (n *ListArray) Content() Content { return n.content }

// Starts and Stops expose the backing bound indices.
func (n *ListArray) Starts() buffer.Index { return n.startsIdx }
func (n *ListArray) Stops() buffer.Index  { return n.stopsIdx }
