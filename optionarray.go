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

// OptionArray marks each row present or missing (spec §3): present rows
// carry an index into content, missing rows carry no payload. The
// negative-index-as-mask convention from the index-kernel layer
// (kernels.OptionCompose) is kept internally as index[i] = content row or
// -1, with the exported bitmap.ValidityMask view derived on demand so
// NewOptionArray can be built directly from a []bool by callers (e.g.
// getitemNextMissing) that never had index semantics to begin with.
type OptionArray struct {
	typeHolder
	content Content
	index   buffer.Index // index[i] >= 0 (row into content) or -1 (missing)
}

// NewOptionArray builds an OptionArray from content and a validity mask:
// valid[i] selects content row i when true, else row i is missing. This is
// the common case (every present row corresponds 1:1 to its own content
// row); NewIndexedOptionArray below is the general form.
func NewOptionArray(content Content, valid []bool) *OptionArray {
	idx := make([]int64, len(valid))
	for i, v := range valid {
		if v {
			idx[i] = int64(i)
		} else {
			idx[i] = -1
		}
	}
	return &OptionArray{content: content, index: buffer.FromInt64(idx)}
}

// NewIndexedOptionArray builds an OptionArray from an explicit
// index-or-missing vector, the general form a carry/compose operation
// produces.
func NewIndexedOptionArray(content Content, index buffer.Index) *OptionArray {
	return &OptionArray{content: content, index: index}
}

func (n *OptionArray) sealed()          {}
func (n *OptionArray) classname() string { return "OptionArray" }

func (n *OptionArray) Length() int64 { return int64(n.index.Len()) }

func (n *OptionArray) mask() *bitmap.ValidityMask {
	flat := n.index.ToInt64()
	valid := make([]bool, len(flat))
	for i, v := range flat {
		valid[i] = v >= 0
	}
	return bitmap.NewValidityMaskFromBools(valid)
}

func (n *OptionArray) ShallowCopy() Content {
	cp := *n
	return &cp
}

func (n *OptionArray) SetID() Content {
	root := identity.New(int(n.Length()))
	out, _ := n.SetIDGiven(root)
	return out
}

func (n *OptionArray) SetIDGiven(id *identity.Identity) (Content, error) {
	if int64(id.Length()) != n.Length() {
		return nil, wrapErr(n.classname(), id, kernels.NewIdentityLength(
			fmt.Sprintf("identity length %d does not match node length %d", id.Length(), n.Length())))
	}
	cp := *n
	cp.id = id
	return &cp, nil
}

func (n *OptionArray) ID() (*identity.Identity, bool) { return n.typeHolder.ID() }

func (n *OptionArray) InnerType(bare bool) types.Type {
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
	return types.Option(inner)
}

func (n *OptionArray) AttachedType() (types.Type, bool) { return n.typeHolder.AttachedType() }

func (n *OptionArray) SetTypePart(t types.Type) (Content, error) {
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

func (n *OptionArray) Accepts(t types.Type) bool {
	// Can't route through Level() here: Level() now delegates transparently
	// through Option (matching the original's OptionType::level()), so it no
	// longer reports KindOption for an Option-wrapped leaf/list/etc.
	return t.Kind() == types.KindOption
}

func (n *OptionArray) GetItemNothing() Content {
	return NewOptionArray(n.content.GetItemNothing(), nil)
}

func (n *OptionArray) GetItemAt(i int64) (Content, error) {
	idx, ok := wrapIndex(i, n.Length())
	if !ok {
		return nil, wrapErr(n.classname(), n.id, kernels.NewIndexError("OptionArray getitem_at out of range", i))
	}
	return n.GetItemAtNowrap(idx)
}

// GetItemAtNowrap returns the element, or a zero-length slice of the
// content's own type when i is missing — options surface absence this way
// rather than erroring, mirroring a scalar null.
func (n *OptionArray) GetItemAtNowrap(i int64) (Content, error) {
	row := n.index.Get(int(i))
	if row < 0 {
		return n.content.GetItemNothing(), nil
	}
	return n.content.GetItemAtNowrap(row)
}

func (n *OptionArray) GetItemRange(a, b int64) (Content, error) {
	lo, hi := clampRange(a, b, n.Length())
	return n.GetItemRangeNowrap(lo, hi)
}

func (n *OptionArray) GetItemRangeNowrap(a, b int64) (Content, error) {
	return NewIndexedOptionArray(n.content, n.index.Slice(int(a), int(b))), nil
}

func (n *OptionArray) GetItemField(key string) (Content, error) {
	sub, err := n.content.GetItemField(key)
	if err != nil {
		return nil, err
	}
	return NewIndexedOptionArray(sub, n.index), nil
}

func (n *OptionArray) GetItemFields(keys []string) (Content, error) {
	sub, err := n.content.GetItemFields(keys)
	if err != nil {
		return nil, err
	}
	return NewIndexedOptionArray(sub, n.index), nil
}

func (n *OptionArray) Carry(carry []int64) (Content, error) {
	composed, _ := kernels.OptionCompose(n.index.ToInt64(), carry)
	out := NewIndexedOptionArray(n.content, buffer.FromInt64(composed))
	if n.id != nil {
		out.id = n.id.Carry(carry)
	}
	return out, nil
}

// GetItemNext composes the option index/mask with the incoming carry
// first (spec §4.3), then recurses into the present rows only, scattering
// the result back into an option-shaped output so missing rows survive
// the slice as missing.
func (n *OptionArray) GetItemNext(head slicing.Item, tail slicing.Slice, advanced slicing.Advanced) (Content, error) {
	flat := n.index.ToInt64()
	presentRows := make([]int64, 0, len(flat))
	presentPositions := make([]int, 0, len(flat))
	for pos, row := range flat {
		if row >= 0 {
			presentRows = append(presentRows, row)
			presentPositions = append(presentPositions, pos)
		}
	}
	projected, err := n.content.Carry(presentRows)
	if err != nil {
		return nil, err
	}

	var innerAdvanced slicing.Advanced
	if !advanced.Empty() {
		innerAdvanced = make([]int64, len(presentPositions))
		for i, pos := range presentPositions {
			innerAdvanced[i] = advanced[pos]
		}
	}

	result, err := projected.GetItemNext(head, tail, innerAdvanced)
	if err != nil {
		return nil, err
	}

	// result has len(presentRows) rows; scatter back into an
	// option-shaped view of length len(flat) using an index that maps
	// present output positions to their row in result, -1 elsewhere.
	outIndex := make([]int64, len(flat))
	cursor := 0
	for pos, row := range flat {
		if row >= 0 {
			outIndex[pos] = int64(cursor)
			cursor++
		} else {
			outIndex[pos] = -1
		}
	}
	return NewIndexedOptionArray(result, buffer.FromInt64(outIndex)), nil
}

func (n *OptionArray) MinMaxDepth() (int, int) { return n.content.MinMaxDepth() }

func (n *OptionArray) NumFields() (int, error)              { return recordIntrospection(n).NumFields() }
func (n *OptionArray) FieldIndexOf(key string) (int, error) { return recordIntrospection(n).FieldIndexOf(key) }
func (n *OptionArray) KeyOf(idx int) (string, error)        { return recordIntrospection(n).KeyOf(idx) }
func (n *OptionArray) HasKey(key string) bool               { return recordIntrospection(n).HasKey(key) }
func (n *OptionArray) KeyAliases(canonical string) []string { return recordIntrospection(n).KeyAliases(canonical) }
func (n *OptionArray) Keys() []string                       { return recordIntrospection(n).Keys() }

// Content exposes the wrapped child node.
func (n *OptionArray) Content() Content { return n.content }

// Index exposes the backing index-or-missing vector.
func (n *OptionArray) Index() buffer.Index { return n.index }

// Mask exposes a derived presence bitmap view.
func (n *OptionArray) Mask() *bitmap.ValidityMask { return n.mask() }
