package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDTypeAndKindString(t *testing.T) {
	require.Equal(t, "int64", DTypeInt64.String())
	require.Equal(t, "unknown", DType(99).String())
	require.Equal(t, "List", KindList.String())
	require.Equal(t, "??", Kind(99).String())
}

func TestPrimitiveEqualAndShallowEqual(t *testing.T) {
	a := Primitive(DTypeInt64)
	b := Primitive(DTypeInt64)
	c := Primitive(DTypeFloat64)

	require.True(t, a.Equal(b))
	require.False(t, a.Equal(c))
	require.False(t, a.ShallowEqual(c), "ShallowEqual still compares dtype for Primitive")
}

func TestRegularListOptionEqual(t *testing.T) {
	a := Regular(Primitive(DTypeInt64), 3)
	b := Regular(Primitive(DTypeInt64), 3)
	c := Regular(Primitive(DTypeInt64), 4)

	require.True(t, a.Equal(b))
	require.False(t, a.Equal(c))
	require.False(t, a.ShallowEqual(c), "ShallowEqual still compares size for Regular")

	// ShallowEqual does ignore the inner type though.
	d := Regular(Primitive(DTypeFloat64), 3)
	require.True(t, a.ShallowEqual(d))
}

func TestUnionAlternatives(t *testing.T) {
	u := Union(Primitive(DTypeInt64), Primitive(DTypeFloat64))
	alts := u.Alternatives()
	require.Len(t, alts, 2)
	require.True(t, alts[0].Equal(Primitive(DTypeInt64)))
	require.True(t, alts[1].Equal(Primitive(DTypeFloat64)))

	// Alternatives returns a defensive copy.
	alts[0] = Primitive(DTypeBool)
	require.True(t, u.Alternatives()[0].Equal(Primitive(DTypeInt64)))
}

func TestLevelStripsInnerType(t *testing.T) {
	inner := Primitive(DTypeInt64)
	l := List(inner)
	require.True(t, l.Level().Equal(List(Unknown())))

	r := Regular(inner, 5)
	require.True(t, r.Level().Equal(Regular(Unknown(), 5)))
	require.Equal(t, 5, r.Level().Size())
}

func TestLevelDelegatesTransparentlyThroughOption(t *testing.T) {
	// OptionType::level() in the original delegates fully to the inner
	// type's own level() rather than reintroducing an Option wrapper
	// (original_source/OptionType.cpp:39-41).
	o := Option(List(Primitive(DTypeInt64)))
	require.True(t, o.Level().Equal(List(Unknown())))

	nested := Option(Option(Primitive(DTypeInt64)))
	require.True(t, nested.Level().Equal(Primitive(DTypeInt64)))
}

func TestInnerAndTypeCollapseOptions(t *testing.T) {
	base := Primitive(DTypeInt64)
	nested := Option(Option(base))
	require.True(t, nested.Type().Equal(base))
	require.True(t, nested.Inner().Equal(Option(base)))

	arr := Array(base, 4)
	require.True(t, arr.Inner().Equal(base))
	require.Equal(t, 4, arr.Length())
}

func TestRecordLookupAndAlias(t *testing.T) {
	rec := NewRecord([]string{"x", "y"}, []Type{Primitive(DTypeInt64), Primitive(DTypeFloat64)})
	withAlias := rec.AddAlias("x", "X")

	_, ok := rec.Lookup("X")
	require.False(t, ok, "AddAlias must not mutate the receiver")

	ty, ok := withAlias.Lookup("X")
	require.True(t, ok)
	require.True(t, ty.Equal(Primitive(DTypeInt64)))

	_, ok = withAlias.Lookup("z")
	require.False(t, ok)
}

func TestAddAliasPanicsOnUnknownField(t *testing.T) {
	rec := NewRecord([]string{"x"}, []Type{Primitive(DTypeInt64)})
	require.Panics(t, func() {
		rec.AddAlias("z", "Z")
	})
}

func TestRecordTypeDelegation(t *testing.T) {
	rec := NewRecord([]string{"x", "y"}, []Type{Primitive(DTypeInt64), Primitive(DTypeFloat64)})
	rt := RecordT(rec)

	// Option(List(Record)) delegates NumFields/Keys/HasKey through both layers.
	wrapped := Option(List(rt))
	require.Equal(t, 2, wrapped.NumFields())
	require.Equal(t, []string{"x", "y"}, wrapped.Keys())
	require.True(t, wrapped.HasKey("x"))
	require.False(t, wrapped.HasKey("z"))

	idx, ok := wrapped.FieldIndex("y")
	require.True(t, ok)
	require.Equal(t, 1, idx)

	got, ok := wrapped.Record()
	require.True(t, ok)
	require.Same(t, rec, got)
}

func TestNonRecordTypeHasNoKeys(t *testing.T) {
	// scenario: Option(List(Primitive)) has no Record anywhere, so
	// record-introspection delegation returns the empty/false forms,
	// not an error.
	ty := Option(List(Primitive(DTypeInt64)))
	require.Nil(t, ty.Keys())
	require.Equal(t, 0, ty.NumFields())
	require.False(t, ty.HasKey("x"))
	_, ok := ty.FieldIndex("x")
	require.False(t, ok)
	_, ok = ty.Record()
	require.False(t, ok)
}

func TestInnerKeyDelegatesThroughOption(t *testing.T) {
	rec := NewRecord([]string{"x"}, []Type{Primitive(DTypeInt64)})
	ty := Option(RecordT(rec))

	got, ok := ty.InnerKey("x")
	require.True(t, ok)
	require.True(t, got.Equal(Primitive(DTypeInt64)))

	_, ok = ty.InnerKey("z")
	require.False(t, ok)
}
