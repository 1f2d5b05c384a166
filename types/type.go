// Package types implements the structural type algebra (spec §3/§4.5): a
// closed variant family mirroring the Content node family, supporting
// shallow/deep equality, level/inner projections, and record-field
// introspection.
package types

import "github.com/google/go-cmp/cmp"

// DType enumerates the primitive leaf element kinds a Primitive type may
// name.
type DType int

const (
	DTypeUnknown DType = iota
	DTypeBool
	DTypeInt32
	DTypeUint32
	DTypeInt64
	DTypeFloat64
)

func (d DType) String() string {
	switch d {
	case DTypeBool:
		return "bool"
	case DTypeInt32:
		return "int32"
	case DTypeUint32:
		return "uint32"
	case DTypeInt64:
		return "int64"
	case DTypeFloat64:
		return "float64"
	default:
		return "unknown"
	}
}

// Kind discriminates the closed Type variant family.
type Kind int

const (
	KindUnknown Kind = iota
	KindPrimitive
	KindRegular
	KindList
	KindOption
	KindUnion
	KindRecord
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindUnknown:
		return "Unknown"
	case KindPrimitive:
		return "Primitive"
	case KindRegular:
		return "Regular"
	case KindList:
		return "List"
	case KindOption:
		return "Option"
	case KindUnion:
		return "Union"
	case KindRecord:
		return "Record"
	case KindArray:
		return "Array"
	default:
		return "??"
	}
}

// Type is the structural descriptor mirroring Content node variants.
// It is an immutable value; all "mutating" operations return a new Type.
type Type struct {
	kind Kind

	// Primitive
	dtype DType

	// RegularType / ListType / OptionType: inner element type
	inner *Type

	// RegularType
	size int

	// UnionType
	alternatives []Type

	// RecordType
	record *Record

	// ArrayType: pairs a length with an element type at the outer level only
	length int
}

// Record is an ordered mapping name -> Type plus an alias table
// (name -> set of alias names), backing RecordType.
type Record struct {
	names   []string
	byName  map[string]Type
	aliases map[string]map[string]struct{}
}

// NewRecord builds a Record from the given fields, in declaration order.
func NewRecord(names []string, fieldTypes []Type) *Record {
	if len(names) != len(fieldTypes) {
		panic("types: NewRecord name/type length mismatch")
	}
	r := &Record{
		names:   append([]string(nil), names...),
		byName:  make(map[string]Type, len(names)),
		aliases: make(map[string]map[string]struct{}),
	}
	for i, n := range names {
		r.byName[n] = fieldTypes[i]
	}
	return r
}

// AddAlias returns a Record identical to r but with alias also naming
// field canonical. Like Type, Record is treated as immutable: this clones
// rather than mutates r so a Record already embedded in a published Type
// never changes under its owner.
func (r *Record) AddAlias(canonical, alias string) *Record {
	if _, ok := r.byName[canonical]; !ok {
		panic("types: alias for unknown field " + canonical)
	}
	out := r.clone()
	if out.aliases[canonical] == nil {
		out.aliases[canonical] = make(map[string]struct{})
	}
	out.aliases[canonical][alias] = struct{}{}
	return out
}

// resolve maps a field-or-alias name to its canonical name, ok=false if
// unknown under either form.
func (r *Record) resolve(name string) (string, bool) {
	if _, ok := r.byName[name]; ok {
		return name, true
	}
	for canonical, aliasSet := range r.aliases {
		if _, ok := aliasSet[name]; ok {
			return canonical, true
		}
	}
	return "", false
}

// Lookup returns the type of field name (or whatever it aliases).
func (r *Record) Lookup(name string) (Type, bool) {
	canon, ok := r.resolve(name)
	if !ok {
		return Type{}, false
	}
	return r.byName[canon], true
}

func (r *Record) clone() *Record {
	names := append([]string(nil), r.names...)
	byName := make(map[string]Type, len(r.byName))
	for k, v := range r.byName {
		byName[k] = v
	}
	aliases := make(map[string]map[string]struct{}, len(r.aliases))
	for k, set := range r.aliases {
		s2 := make(map[string]struct{}, len(set))
		for a := range set {
			s2[a] = struct{}{}
		}
		aliases[k] = s2
	}
	return &Record{names: names, byName: byName, aliases: aliases}
}

// Unknown returns the leaf placeholder type.
func Unknown() Type { return Type{kind: KindUnknown} }

// Primitive returns a numeric-leaf type of the given dtype.
func Primitive(d DType) Type { return Type{kind: KindPrimitive, dtype: d} }

// Regular returns a fixed-size-lists-of-`size` type wrapping inner.
func Regular(inner Type, size int) Type {
	i := inner
	return Type{kind: KindRegular, inner: &i, size: size}
}

// List returns a variable-length-lists type wrapping inner.
func List(inner Type) Type {
	i := inner
	return Type{kind: KindList, inner: &i}
}

// Option returns a may-be-missing type wrapping inner.
func Option(inner Type) Type {
	i := inner
	return Type{kind: KindOption, inner: &i}
}

// Union returns an is-one-of type over the given alternatives.
func Union(alternatives ...Type) Type {
	return Type{kind: KindUnion, alternatives: append([]Type(nil), alternatives...)}
}

// RecordT returns a named-tuple type backed by r.
func RecordT(r *Record) Type {
	return Type{kind: KindRecord, record: r}
}

// Array pairs a length with an element type at the outer level only.
func Array(inner Type, length int) Type {
	i := inner
	return Type{kind: KindArray, inner: &i, length: length}
}

// Kind reports the variant tag.
func (t Type) Kind() Kind { return t.kind }

// DType reports the primitive leaf kind; only meaningful for KindPrimitive.
func (t Type) DType() DType { return t.dtype }

// Size reports the RegularType size; only meaningful for KindRegular.
func (t Type) Size() int { return t.size }

// Length reports the ArrayType length; only meaningful for KindArray.
func (t Type) Length() int { return t.length }

// Alternatives reports the UnionType alternatives; only meaningful for
// KindUnion.
func (t Type) Alternatives() []Type {
	return append([]Type(nil), t.alternatives...)
}

// ShallowEqual reports whether t and other share the same variant,
// ignoring inner types — the comparison accepts() uses (spec §4.2/§4.5).
func (t Type) ShallowEqual(other Type) bool {
	if t.kind != other.kind {
		return false
	}
	switch t.kind {
	case KindPrimitive:
		return t.dtype == other.dtype
	case KindRegular:
		return t.size == other.size
	case KindUnion:
		return len(t.alternatives) == len(other.alternatives)
	case KindArray:
		return t.length == other.length
	default:
		return true
	}
}

// Equal reports full structural equality, recursing into inner types,
// union alternatives and record fields. Deep comparison is delegated to
// google/go-cmp for clarity and to avoid a hand-rolled recursive-equality
// bug class.
func (t Type) Equal(other Type) bool {
	return cmp.Equal(t.normalize(), other.normalize())
}

// normalize produces a comparable plain-value tree so cmp.Equal doesn't
// need to see unexported struct internals directly.
func (t Type) normalize() any {
	switch t.kind {
	case KindUnknown:
		return "Unknown"
	case KindPrimitive:
		return [2]any{"Primitive", t.dtype}
	case KindRegular:
		return [3]any{"Regular", t.size, t.inner.normalize()}
	case KindList:
		return [2]any{"List", t.inner.normalize()}
	case KindOption:
		return [2]any{"Option", t.inner.normalize()}
	case KindUnion:
		alts := make([]any, len(t.alternatives))
		for i, a := range t.alternatives {
			alts[i] = a.normalize()
		}
		return [2]any{"Union", alts}
	case KindRecord:
		fields := make(map[string]any, len(t.record.names))
		for _, n := range t.record.names {
			f := t.record.byName[n]
			fields[n] = f.normalize()
		}
		return [2]any{"Record", fields}
	case KindArray:
		return [3]any{"Array", t.length, t.inner.normalize()}
	default:
		return "??"
	}
}

// Level strips the outer layer to its canonical model: a type with the
// same variant tag (and, for parameterised variants, the same scalar
// parameters) but Unknown inner types, used by accepts()'s
// shallow_equal(type.level(), model) check.
func (t Type) Level() Type {
	switch t.kind {
	case KindRegular:
		return Regular(Unknown(), t.size)
	case KindList:
		return List(Unknown())
	case KindOption:
		// OptionType::level() in the original delegates fully and
		// transparently to the inner type's own level() rather than
		// stopping at one Option layer (original_source/OptionType.cpp:39-41).
		return t.inner.Level()
	case KindUnion:
		alts := make([]Type, len(t.alternatives))
		for i := range alts {
			alts[i] = Unknown()
		}
		return Union(alts...)
	case KindArray:
		return Array(Unknown(), t.length)
	default:
		return t
	}
}

// Inner returns the inner type of one list/option layer, or self for
// leaves and records.
func (t Type) Inner() Type {
	switch t.kind {
	case KindRegular, KindList, KindOption, KindArray:
		return *t.inner
	default:
		return t
	}
}

// InnerKey descends through records: the inner type named by key, delegated
// through Options/Lists that wrap a RecordType (spec: "delegate through
// Options and Lists to a wrapped Record").
func (t Type) InnerKey(key string) (Type, bool) {
	switch t.kind {
	case KindRecord:
		return t.record.byName[t.key(key)], t.haskey(key)
	case KindList, KindRegular, KindArray:
		return t.Inner().InnerKey(key)
	case KindOption:
		// Open question in spec.md §9: OptionType::inner(key) is left
		// unimplemented upstream. Decided (DESIGN.md) to delegate
		// transparently like List/Regular, collapsing nested Options
		// first via Type() so keys() reaches the Record the same way
		// scenario S6 requires for plain keys().
		return t.Type().InnerKey(key)
	default:
		return Type{}, false
	}
}

// Type collapses chains of nested Options in one call: OptionType(OptionType(T)).Type() == T.
func (t Type) Type() Type {
	cur := t
	for cur.kind == KindOption {
		cur = *cur.inner
	}
	return cur
}

func (t Type) resolveRecord() *Record {
	switch t.kind {
	case KindRecord:
		return t.record
	case KindList, KindRegular, KindArray:
		return t.Inner().resolveRecord()
	case KindOption:
		return t.Type().resolveRecord()
	default:
		return nil
	}
}

// NumFields reports the number of record fields reachable through this
// type (delegating through List/Option/Regular/Array), or 0 if the type
// contains no Records.
func (t Type) NumFields() int {
	r := t.resolveRecord()
	if r == nil {
		return 0
	}
	return len(r.names)
}

// FieldIndex returns the positional index of field key.
func (t Type) FieldIndex(key string) (int, bool) {
	r := t.resolveRecord()
	if r == nil {
		return 0, false
	}
	canon, ok := r.resolve(key)
	if !ok {
		return 0, false
	}
	for i, n := range r.names {
		if n == canon {
			return i, true
		}
	}
	return 0, false
}

// key returns the canonical field name for key (itself or whatever it
// aliases).
func (t Type) key(key string) string {
	r := t.resolveRecord()
	if r == nil {
		return key
	}
	canon, ok := r.resolve(key)
	if !ok {
		return key
	}
	return canon
}

// haskey reports whether key names (or aliases) a field of the record
// reached by delegation, false (not an error) for non-record types per
// the record-introspection delegation rule.
func (t Type) haskey(key string) bool {
	r := t.resolveRecord()
	if r == nil {
		return false
	}
	_, ok := r.resolve(key)
	return ok
}

// HasKey is the exported form of haskey.
func (t Type) HasKey(key string) bool { return t.haskey(key) }

// KeyAliases returns the alias set recorded for a canonical field name.
func (t Type) KeyAliases(canonical string) []string {
	r := t.resolveRecord()
	if r == nil {
		return nil
	}
	set := r.aliases[canonical]
	out := make([]string, 0, len(set))
	for a := range set {
		out = append(out, a)
	}
	return out
}

// Keys returns the record's field names in declaration order, or nil if
// this type contains no Records (scenario S6: OptionType(ListType(Primitive))
// returns []).
func (t Type) Keys() []string {
	r := t.resolveRecord()
	if r == nil {
		return nil
	}
	return append([]string(nil), r.names...)
}

// Record exposes the underlying Record when this type (after delegation)
// is a RecordType, for callers that need direct field access.
func (t Type) Record() (*Record, bool) {
	r := t.resolveRecord()
	return r, r != nil
}
