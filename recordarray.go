package nestarr

import (
	"fmt"

	"github.com/nestarr/nestarr/internal/identity"
	"github.com/nestarr/nestarr/internal/kernels"
	"github.com/nestarr/nestarr/slicing"
	"github.com/nestarr/nestarr/types"
)

// RecordArray is an ordered name -> Content mapping, every field at least
// Length() long (spec §3): row i of the record is the tuple of row i
// across all fields. RecordArray overrides the record-introspection
// methods directly on its own field table rather than delegating through
// recordIntrospection, since it IS the record rather than a container
// wrapping one.
type RecordArray struct {
	typeHolder
	names  []string
	fields []Content
	length int64
}

// NewRecordArray builds a RecordArray from parallel names/fields slices and
// an explicit length (spec.md:62, data model: "RecordArray(fields: ordered
// mapping name->Content, length)"). A field is allowed to be longer than
// length — spec.md:69's "fields[*].length >= self.length; addressing
// beyond self.length is forbidden" — so only a too-short field is illegal.
func NewRecordArray(names []string, fields []Content, length int64) *RecordArray {
	if len(names) != len(fields) {
		panic("nestarr: RecordArray names/fields length mismatch")
	}
	for _, f := range fields {
		if f.Length() < length {
			panic("nestarr: RecordArray field shorter than the record's declared length")
		}
	}
	return &RecordArray{names: append([]string(nil), names...), fields: append([]Content(nil), fields...), length: length}
}

func (n *RecordArray) sealed()          {}
func (n *RecordArray) classname() string { return "RecordArray" }

func (n *RecordArray) Length() int64 { return n.length }

func (n *RecordArray) fieldIndex(key string) (int, bool) {
	for i, name := range n.names {
		if name == key {
			return i, true
		}
	}
	return 0, false
}

func (n *RecordArray) ShallowCopy() Content {
	cp := *n
	cp.names = append([]string(nil), n.names...)
	cp.fields = append([]Content(nil), n.fields...)
	return &cp
}

func (n *RecordArray) SetID() Content {
	root := identity.New(int(n.length))
	out, _ := n.SetIDGiven(root)
	return out
}

func (n *RecordArray) SetIDGiven(id *identity.Identity) (Content, error) {
	if int64(id.Length()) != n.length {
		return nil, wrapErr(n.classname(), id, kernels.NewIdentityLength(
			fmt.Sprintf("identity length %d does not match node length %d", id.Length(), n.length)))
	}
	newFields := make([]Content, len(n.fields))
	for i, f := range n.fields {
		childID := id.DescendField(0, n.names[i])
		nf, err := f.SetIDGiven(childID)
		if err != nil {
			return nil, err
		}
		newFields[i] = nf
	}
	cp := *n
	cp.id = id
	cp.fields = newFields
	return &cp, nil
}

func (n *RecordArray) ID() (*identity.Identity, bool) { return n.typeHolder.ID() }

func (n *RecordArray) InnerType(bare bool) types.Type {
	fieldTypes := make([]types.Type, len(n.fields))
	for i, f := range n.fields {
		if !bare {
			if t, ok := f.AttachedType(); ok {
				fieldTypes[i] = t
				continue
			}
		}
		fieldTypes[i] = f.InnerType(bare)
	}
	return types.RecordT(types.NewRecord(n.names, fieldTypes))
}

func (n *RecordArray) AttachedType() (types.Type, bool) { return n.typeHolder.AttachedType() }

func (n *RecordArray) SetTypePart(t types.Type) (Content, error) {
	if !n.Accepts(t) {
		return nil, wrapErr(n.classname(), n.id, kernels.NewTypeMismatch(diffTypes(n.InnerType(true), t)))
	}
	record, _ := t.Record()
	newFields := make([]Content, len(n.fields))
	for i, f := range n.fields {
		ft, ok := record.Lookup(n.names[i])
		if !ok {
			return nil, wrapErr(n.classname(), n.id, kernels.NewUnknownRecords())
		}
		nf, err := f.SetTypePart(ft)
		if err != nil {
			return nil, err
		}
		newFields[i] = nf
	}
	cp := *n
	tt := t
	cp.typ = &tt
	cp.fields = newFields
	return &cp, nil
}

func (n *RecordArray) Accepts(t types.Type) bool {
	return t.Kind() == types.KindRecord
}

func (n *RecordArray) GetItemNothing() Content {
	newFields := make([]Content, len(n.fields))
	for i, f := range n.fields {
		newFields[i] = f.GetItemNothing()
	}
	return NewRecordArray(n.names, newFields, 0)
}

func (n *RecordArray) GetItemAt(i int64) (Content, error) {
	idx, ok := wrapIndex(i, n.length)
	if !ok {
		return nil, wrapErr(n.classname(), n.id, kernels.NewIndexError("RecordArray getitem_at out of range", i))
	}
	return n.GetItemAtNowrap(idx)
}

func (n *RecordArray) GetItemAtNowrap(i int64) (Content, error) {
	newFields := make([]Content, len(n.fields))
	for fi, f := range n.fields {
		v, err := f.GetItemAtNowrap(i)
		if err != nil {
			return nil, err
		}
		newFields[fi] = v
	}
	return NewRecordArray(n.names, newFields, 1), nil
}

func (n *RecordArray) GetItemRange(a, b int64) (Content, error) {
	lo, hi := clampRange(a, b, n.length)
	return n.GetItemRangeNowrap(lo, hi)
}

func (n *RecordArray) GetItemRangeNowrap(a, b int64) (Content, error) {
	newFields := make([]Content, len(n.fields))
	for i, f := range n.fields {
		nf, err := f.GetItemRangeNowrap(a, b)
		if err != nil {
			return nil, err
		}
		newFields[i] = nf
	}
	return NewRecordArray(n.names, newFields, b-a), nil
}

func (n *RecordArray) GetItemField(key string) (Content, error) {
	idx, ok := n.fieldIndex(key)
	if !ok {
		return nil, wrapErr(n.classname(), n.id, kernels.NewUnknownRecords())
	}
	return n.fields[idx], nil
}

func (n *RecordArray) GetItemFields(keys []string) (Content, error) {
	newNames := make([]string, 0, len(keys))
	newFields := make([]Content, 0, len(keys))
	for _, key := range keys {
		idx, ok := n.fieldIndex(key)
		if !ok {
			return nil, wrapErr(n.classname(), n.id, kernels.NewUnknownRecords())
		}
		newNames = append(newNames, key)
		newFields = append(newFields, n.fields[idx])
	}
	return NewRecordArray(newNames, newFields, n.length), nil
}

func (n *RecordArray) Carry(carry []int64) (Content, error) {
	newFields := make([]Content, len(n.fields))
	for i, f := range n.fields {
		nf, err := f.Carry(carry)
		if err != nil {
			return nil, err
		}
		newFields[i] = nf
	}
	out := NewRecordArray(n.names, newFields, int64(len(carry)))
	if n.id != nil {
		out.id = n.id.Carry(carry)
	}
	return out, nil
}

// GetItemNext applies the same (head, tail, advanced) transform
// independently to every field, reassembling a RecordArray of the
// per-field results (spec §4.3: record-like containers distribute
// getitem_next across their fields).
func (n *RecordArray) GetItemNext(head slicing.Item, tail slicing.Slice, advanced slicing.Advanced) (Content, error) {
	newFields := make([]Content, len(n.fields))
	for i, f := range n.fields {
		nf, err := f.GetItemNext(head, tail, advanced)
		if err != nil {
			return nil, err
		}
		newFields[i] = nf
	}
	length := int64(0)
	if len(newFields) > 0 {
		length = newFields[0].Length()
	}
	return NewRecordArray(n.names, newFields, length), nil
}

func (n *RecordArray) MinMaxDepth() (int, int) {
	lo, hi := -1, -1
	for _, f := range n.fields {
		flo, fhi := f.MinMaxDepth()
		if lo == -1 || flo < lo {
			lo = flo
		}
		if fhi > hi {
			hi = fhi
		}
	}
	if lo == -1 {
		lo, hi = 0, 0
	}
	return lo, hi
}

func (n *RecordArray) NumFields() (int, error) { return len(n.fields), nil }

func (n *RecordArray) FieldIndexOf(key string) (int, error) {
	idx, ok := n.fieldIndex(key)
	if !ok {
		return 0, &NodeError{Classname: n.classname(), cause: kernels.NewUnknownRecords()}
	}
	return idx, nil
}

func (n *RecordArray) KeyOf(idx int) (string, error) {
	if idx < 0 || idx >= len(n.names) {
		return "", &NodeError{Classname: n.classname(), cause: kernels.NewIndexError("record field index out of range", int64(idx))}
	}
	return n.names[idx], nil
}

func (n *RecordArray) HasKey(key string) bool {
	_, ok := n.fieldIndex(key)
	return ok
}

func (n *RecordArray) KeyAliases(canonical string) []string { return nil }

func (n *RecordArray) Keys() []string { return append([]string(nil), n.names...) }

// Fields exposes the field table (name -> Content) in declaration order.
func (n *RecordArray) Fields() ([]string, []Content) {
	return append([]string(nil), n.names...), append([]Content(nil), n.fields...)
}
