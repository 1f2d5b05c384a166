package nestarr

import (
	"fmt"

	"github.com/nestarr/nestarr/internal/identity"
	"github.com/nestarr/nestarr/internal/kernels"
	"github.com/nestarr/nestarr/slicing"
	"github.com/nestarr/nestarr/types"
)

// RegularArray groups content into fixed-size sublists of `size`; length =
// content.Length()/size (floored) when size > 0, else 0 (spec §3/§4.3).
type RegularArray struct {
	typeHolder
	content Content
	size    int64
}

// NewRegularArray builds a RegularArray over content with the given
// sublist size. Per spec §4.3/§9, a size of 0 is legal and yields an
// always-empty node; content longer than length()*size is tolerated and
// simply unreachable through this node's own getitem_at/getitem_range.
func NewRegularArray(content Content, size int64) *RegularArray {
	if size < 0 {
		panic("nestarr: RegularArray size must be >= 0")
	}
	return &RegularArray{content: content, size: size}
}

func (n *RegularArray) sealed()          {}
func (n *RegularArray) classname() string { return "RegularArray" }

func (n *RegularArray) Length() int64 {
	if n.size == 0 {
		return 0
	}
	return n.content.Length() / n.size
}

func (n *RegularArray) ShallowCopy() Content {
	cp := *n
	return &cp
}

func (n *RegularArray) SetID() Content {
	root := identity.New(int(n.Length()))
	out, _ := n.SetIDGiven(root)
	return out
}

func (n *RegularArray) SetIDGiven(id *identity.Identity) (Content, error) {
	if int64(id.Length()) != n.Length() {
		return nil, wrapErr(n.classname(), id, kernels.NewIdentityLength(
			fmt.Sprintf("identity length %d does not match node length %d", id.Length(), n.Length())))
	}
	childID := id.DescendList(int(n.size))
	carriedContent, err := n.content.GetItemRangeNowrap(0, n.Length()*n.size)
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

func (n *RegularArray) ID() (*identity.Identity, bool) { return n.typeHolder.ID() }

func (n *RegularArray) InnerType(bare bool) types.Type {
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
	return types.Regular(inner, int(n.size))
}

func (n *RegularArray) AttachedType() (types.Type, bool) { return n.typeHolder.AttachedType() }

func (n *RegularArray) SetTypePart(t types.Type) (Content, error) {
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

func (n *RegularArray) Accepts(t types.Type) bool {
	return t.Level().ShallowEqual(types.Regular(types.Unknown(), int(n.size)))
}

func (n *RegularArray) GetItemNothing() Content {
	return NewRegularArray(n.content.GetItemNothing(), n.size)
}

func (n *RegularArray) GetItemAt(i int64) (Content, error) {
	idx, ok := wrapIndex(i, n.Length())
	if !ok {
		return nil, wrapErr(n.classname(), n.id, kernels.NewIndexError("RegularArray getitem_at out of range", i))
	}
	return n.GetItemAtNowrap(idx)
}

func (n *RegularArray) GetItemAtNowrap(i int64) (Content, error) {
	return n.content.GetItemRangeNowrap(i*n.size, (i+1)*n.size)
}

func (n *RegularArray) GetItemRange(a, b int64) (Content, error) {
	lo, hi := clampRange(a, b, n.Length())
	return n.GetItemRangeNowrap(lo, hi)
}

func (n *RegularArray) GetItemRangeNowrap(a, b int64) (Content, error) {
	sub, err := n.content.GetItemRangeNowrap(a*n.size, b*n.size)
	if err != nil {
		return nil, err
	}
	return NewRegularArray(sub, n.size), nil
}

func (n *RegularArray) GetItemField(key string) (Content, error) {
	sub, err := n.content.GetItemField(key)
	if err != nil {
		return nil, err
	}
	return NewRegularArray(sub, n.size), nil
}

func (n *RegularArray) GetItemFields(keys []string) (Content, error) {
	sub, err := n.content.GetItemFields(keys)
	if err != nil {
		return nil, err
	}
	return NewRegularArray(sub, n.size), nil
}

func (n *RegularArray) Carry(carry []int64) (Content, error) {
	nextcarry := kernels.RegularArrayGetitemCarry(carry, n.size)
	newContent, err := n.content.Carry(nextcarry)
	if err != nil {
		return nil, err
	}
	out := NewRegularArray(newContent, n.size)
	if n.id != nil {
		out.id = n.id.Carry(carry)
	}
	return out, nil
}

// GetItemNext implements the RegularArray transforms of spec §4.3: At,
// Range, and Array (both the unadvanced cartesian form and the advanced
// zipped form).
func (n *RegularArray) GetItemNext(head slicing.Item, tail slicing.Slice, advanced slicing.Advanced) (Content, error) {
	outerLength := n.Length()

	switch head.Kind() {
	case slicing.KindAt:
		if !advanced.Empty() {
			panic(wrapErr(n.classname(), n.id, kernels.NewInternalAssert("At head with a non-empty advanced index")))
		}
		nextcarry, kerr := kernels.RegularArrayGetitemNextAt(head.At(), outerLength, n.size)
		if kerr != nil {
			return nil, wrapErr(n.classname(), n.id, kerr)
		}
		carried, err := n.content.Carry(nextcarry)
		if err != nil {
			return nil, err
		}
		return dispatch(carried, tail, advanced)

	case slicing.KindRange:
		start, stop, step, hasStart, hasStop := head.Range()
		if step == 0 {
			panic(wrapErr(n.classname(), n.id, kernels.NewInternalAssert("range step must not be zero")))
		}
		posStep := step > 0
		kernels.RegularizeRangeSlice(&start, &stop, posStep, hasStart, hasStop, n.size)
		nextsize := kernels.RangeNextSize(start, stop, step)

		nextcarry := kernels.RegularArrayGetitemNextRange(start, step, n.size, outerLength, nextsize)
		carried, err := n.content.Carry(nextcarry)
		if err != nil {
			return nil, err
		}

		var nextadvanced slicing.Advanced
		if !advanced.Empty() {
			nextadvanced = kernels.RegularArrayGetitemNextRangeSpreadAdvanced(advanced, nextsize)
		}
		inner, err := dispatch(carried, tail, nextadvanced)
		if err != nil {
			return nil, err
		}
		// Wrap in RegularArray(nextsize) regardless of advanced state, so
		// the new dimension is preserved (spec §4.3).
		return NewRegularArray(inner, nextsize), nil

	case slicing.KindArray:
		values, shape := head.ArrayValues()
		flathead, kerr := kernels.RegularArrayGetitemNextArrayRegularize(values, n.size)
		if kerr != nil {
			return nil, wrapErr(n.classname(), n.id, kerr)
		}

		if advanced.Empty() {
			nextcarry, nextadvanced := kernels.RegularArrayGetitemNextArray(flathead, n.size, outerLength)
			carried, err := n.content.Carry(nextcarry)
			if err != nil {
				return nil, err
			}
			inner, err := dispatch(carried, tail, slicing.Advanced(nextadvanced))
			if err != nil {
				return nil, err
			}
			// Re-nest shape[1:] first, then restore outerLength as the
			// true leading dimension by wrapping once more with shape[0]
			// (the per-row size the cartesian product left outerLength
			// copies of).
			nested := wrapArrayShape(inner, shape)
			return NewRegularArray(nested, int64(shape[0])), nil
		}

		nextcarry, nextadvanced, kerr2 := kernels.RegularArrayGetitemNextArrayAdvanced(advanced, flathead, n.size)
		if kerr2 != nil {
			// kerr2 is always InternalAssert here (the only failure
			// RegularArrayGetitemNextArrayAdvanced can report): fatal, not
			// recoverable (spec §7).
			panic(wrapErr(n.classname(), n.id, kerr2))
		}
		carried, err := n.content.Carry(nextcarry)
		if err != nil {
			return nil, err
		}
		return dispatch(carried, tail, slicing.Advanced(nextadvanced))

	case slicing.KindMissing:
		return getitemNextMissing(n, head, tail, advanced)

	default:
		panic(wrapErr(n.classname(), n.id, kernels.NewInternalAssert("unsupported SliceItem kind for RegularArray.GetItemNext")))
	}
}

// wrapArrayShape re-introduces the original nd fancy-index shape as nested
// RegularArrays around inner (spec §4.3's getitem_next_array_wrap), after
// the cartesian-product carry has been applied and recursed through.
func wrapArrayShape(inner Content, shape []int) Content {
	result := inner
	for i := len(shape) - 1; i >= 1; i-- {
		result = NewRegularArray(result, int64(shape[i]))
	}
	return result
}

func (n *RegularArray) MinMaxDepth() (int, int) {
	lo, hi := n.content.MinMaxDepth()
	return lo + 1, hi + 1
}

func (n *RegularArray) NumFields() (int, error)               { return recordIntrospection(n).NumFields() }
func (n *RegularArray) FieldIndexOf(key string) (int, error)  { return recordIntrospection(n).FieldIndexOf(key) }
func (n *RegularArray) KeyOf(idx int) (string, error)         { return recordIntrospection(n).KeyOf(idx) }
func (n *RegularArray) HasKey(key string) bool                { return recordIntrospection(n).HasKey(key) }
func (n *RegularArray) KeyAliases(canonical string) []string  { return recordIntrospection(n).KeyAliases(canonical) }
func (n *RegularArray) Keys() []string                        { return recordIntrospection(n).Keys() }

// Content exposes the wrapped child node.
func (n *RegularArray) Content() Content { return n.content }

// Size exposes the fixed sublist size.
func (n *RegularArray) Size() int64 { return n.size }
