package wire_test

import (
	"testing"

	"github.com/go-test/deep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cboragen/cboragen/pkg/ast"
	"github.com/cboragen/cboragen/pkg/util"
	"github.com/cboragen/cboragen/pkg/wire"
)

func u32Type() ast.TypeExpr { return ast.IntType{Kind: ast.U32} }

// 1. Scalar roundtrip: X = u32, value 1 -> 1A 00 00 00 01.
func TestScalarRoundtrip(t *testing.T) {
	bytes, err := wire.Encode(u32Type(), uint64(1), nil)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x1A, 0x00, 0x00, 0x00, 0x01}, bytes)

	v, err := wire.Decode(u32Type(), bytes, nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), v)
}

// 2. Struct with a gap and trailing omission:
// S = struct { 0 x: u32, 2 y: bool }.
func structSchema() ast.StructType {
	return ast.StructType{Fields: []ast.Field{
		{Rank: 0, Name: "x", Type: ast.IntType{Kind: ast.U32}},
		{Rank: 2, Name: "y", Type: ast.BoolType{}},
	}}
}

func TestStructGapAndTrailingOmission(t *testing.T) {
	ty := structSchema()

	full := wire.Struct{Fields: map[uint64]wire.Value{0: uint64(1), 2: true}}
	bytes, err := wire.Encode(ty, full, nil)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x83, 0x1A, 0x00, 0x00, 0x00, 0x01, 0xF6, 0xF5}, bytes)

	decodedFull, err := wire.Decode(ty, bytes, nil)
	require.NoError(t, err)
	if diff := deep.Equal(full, decodedFull.(wire.Struct)); diff != nil {
		t.Errorf("roundtrip mismatch: %v", diff)
	}

	partial := wire.Struct{Fields: map[uint64]wire.Value{0: uint64(1)}}
	bytes, err = wire.Encode(ty, partial, nil)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x81, 0x1A, 0x00, 0x00, 0x00, 0x01}, bytes)

	decodedPartial, err := wire.Decode(ty, bytes, nil)
	require.NoError(t, err)

	got := decodedPartial.(wire.Struct)
	_, hasY := got.Get(2)
	assert.False(t, hasY)
}

// 3. Optional string: X = ?string.
func TestOptionalString(t *testing.T) {
	ty := ast.OptionType{Child: ast.StringType{}}

	noneBytes, err := wire.Encode(ty, util.None[wire.Value](), nil)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00}, noneBytes)

	someBytes, err := wire.Encode(ty, util.Some[wire.Value]("hi"), nil)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xC1, 0x62, 0x68, 0x69}, someBytes)

	decodedNone, err := wire.Decode(ty, noneBytes, nil)
	require.NoError(t, err)
	assert.True(t, decodedNone.(util.Option[wire.Value]).IsEmpty())

	decodedSome, err := wire.Decode(ty, someBytes, nil)
	require.NoError(t, err)

	opt := decodedSome.(util.Option[wire.Value])
	require.True(t, opt.HasValue())
	assert.Equal(t, "hi", opt.Unwrap())
}

// 4. Union variants: R = union { 0 none, 1 ok: string, 2 err: u32 }.
func unionSchema() ast.UnionType {
	return ast.UnionType{Variants: []ast.UnionVariant{
		{Tag: 0, Name: "none"},
		{Tag: 1, Name: "ok", Payload: ast.StringType{}},
		{Tag: 2, Name: "err", Payload: ast.IntType{Kind: ast.U32}},
	}}
}

func TestUnionVariants(t *testing.T) {
	ty := unionSchema()

	cases := []struct {
		name string
		v    wire.Union
		want []byte
	}{
		{"none", wire.Union{Tag: 0}, []byte{0x00}},
		{"ok", wire.Union{Tag: 1, Payload: "hi"}, []byte{0xC1, 0x62, 0x68, 0x69}},
		{"err", wire.Union{Tag: 2, Payload: uint64(42)}, []byte{0xC2, 0x1A, 0x00, 0x00, 0x00, 0x2A}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := wire.Encode(ty, tc.v, nil)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)

			decoded, err := wire.Decode(ty, got, nil)
			require.NoError(t, err)
			assert.Equal(t, tc.v, decoded.(wire.Union))
		})
	}
}

// 5. External-length array: T = struct { 0 count: u8, 1 items: [.count]u32 }.
func TestExternalLengthArray(t *testing.T) {
	ty := ast.StructType{Fields: []ast.Field{
		{Rank: 0, Name: "count", Type: ast.IntType{Kind: ast.U8}},
		{Rank: 1, Name: "items", Type: ast.ArrayType{Kind: ast.ArrayExternalLength, Field: "count", Element: ast.IntType{Kind: ast.U32}}},
	}}

	v := wire.Struct{Fields: map[uint64]wire.Value{
		0: uint64(2),
		1: []wire.Value{uint64(1), uint64(2)},
	}}

	got, err := wire.Encode(ty, v, nil)
	require.NoError(t, err)

	want := []byte{
		0x82,
		0x18, 0x02,
		0x9F, 0x1A, 0x00, 0x00, 0x00, 0x01, 0x1A, 0x00, 0x00, 0x00, 0x02, 0xFF,
	}
	assert.Equal(t, want, got)

	decoded, err := wire.Decode(ty, got, nil)
	require.NoError(t, err)

	if diff := deep.Equal(v, decoded.(wire.Struct)); diff != nil {
		t.Errorf("roundtrip mismatch: %v", diff)
	}
}

func TestExternalLengthArrayEncodeRejectsCountMismatch(t *testing.T) {
	ty := ast.StructType{Fields: []ast.Field{
		{Rank: 0, Name: "count", Type: ast.IntType{Kind: ast.U8}},
		{Rank: 1, Name: "items", Type: ast.ArrayType{Kind: ast.ArrayExternalLength, Field: "count", Element: ast.IntType{Kind: ast.U32}}},
	}}

	v := wire.Struct{Fields: map[uint64]wire.Value{
		0: uint64(2),
		1: []wire.Value{uint64(1)},
	}}

	_, err := wire.Encode(ty, v, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "declares 2")
}

func TestExternalLengthArrayDecodeRejectsWireBodyLongerThanCount(t *testing.T) {
	ty := ast.StructType{Fields: []ast.Field{
		{Rank: 0, Name: "count", Type: ast.IntType{Kind: ast.U8}},
		{Rank: 1, Name: "items", Type: ast.ArrayType{Kind: ast.ArrayExternalLength, Field: "count", Element: ast.IntType{Kind: ast.U32}}},
	}}

	// count field declares 1, but the wire body actually carries 2 elements
	// before the break byte: the decoder must stop after 1 and reject the
	// next byte (the second element's header) as a malformed break.
	raw := []byte{
		0x82,
		0x18, 0x01,
		0x9F, 0x1A, 0x00, 0x00, 0x00, 0x01, 0x1A, 0x00, 0x00, 0x00, 0x02, 0xFF,
	}

	_, err := wire.Decode(ty, raw, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected break byte")
}

func TestExternalLengthArrayDecodeRejectsWireBodyShorterThanCount(t *testing.T) {
	ty := ast.StructType{Fields: []ast.Field{
		{Rank: 0, Name: "count", Type: ast.IntType{Kind: ast.U8}},
		{Rank: 1, Name: "items", Type: ast.ArrayType{Kind: ast.ArrayExternalLength, Field: "count", Element: ast.IntType{Kind: ast.U32}}},
	}}

	// count field declares 3, but the wire body breaks after only 2 elements:
	// the decoder must try to read a third element and fail, since it trusts
	// the sibling count rather than the break byte.
	raw := []byte{
		0x82,
		0x18, 0x03,
		0x9F, 0x1A, 0x00, 0x00, 0x00, 0x01, 0x1A, 0x00, 0x00, 0x00, 0x02, 0xFF,
	}

	_, err := wire.Decode(ty, raw, nil)
	require.Error(t, err)
}

// 6. `[]u8` byte-string special case: B = []u8.
func TestByteArraySpecialCase(t *testing.T) {
	ty := ast.ArrayType{Kind: ast.ArrayVariable, Element: ast.IntType{Kind: ast.U8}}

	v := []wire.Value{uint64(0xDE), uint64(0xAD)}

	got, err := wire.Encode(ty, v, nil)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x42, 0xDE, 0xAD}, got)

	decoded, err := wire.Decode(ty, got, nil)
	require.NoError(t, err)
	assert.Equal(t, v, decoded.([]wire.Value))
}

// Forward compatibility: an unknown trailing rank is skipped, not an error.
func TestStructForwardCompatibilitySkipsUnknownRank(t *testing.T) {
	olderSchema := ast.StructType{Fields: []ast.Field{
		{Rank: 0, Name: "x", Type: ast.IntType{Kind: ast.U32}},
	}}

	newerSchema := ast.StructType{Fields: []ast.Field{
		{Rank: 0, Name: "x", Type: ast.IntType{Kind: ast.U32}},
		{Rank: 1, Name: "y", Type: ast.StringType{}},
	}}

	encoded, err := wire.Encode(newerSchema, wire.Struct{Fields: map[uint64]wire.Value{
		0: uint64(7),
		1: "extra",
	}}, nil)
	require.NoError(t, err)

	decoded, err := wire.Decode(olderSchema, encoded, nil)
	require.NoError(t, err)

	got := decoded.(wire.Struct)
	x, ok := got.Get(0)
	require.True(t, ok)
	assert.Equal(t, uint64(7), x)

	_, hasY := got.Get(1)
	assert.False(t, hasY)
}

// Backward compatibility: a struct encoded by an older schema decodes
// successfully against a newer one, with trailing fields absent.
func TestStructBackwardCompatibilityMissingTrailingFields(t *testing.T) {
	olderSchema := ast.StructType{Fields: []ast.Field{
		{Rank: 0, Name: "x", Type: ast.IntType{Kind: ast.U32}},
	}}

	newerSchema := ast.StructType{Fields: []ast.Field{
		{Rank: 0, Name: "x", Type: ast.IntType{Kind: ast.U32}},
		{Rank: 1, Name: "y", Type: ast.OptionType{Child: ast.StringType{}}},
	}}

	encoded, err := wire.Encode(olderSchema, wire.Struct{Fields: map[uint64]wire.Value{0: uint64(9)}}, nil)
	require.NoError(t, err)

	decoded, err := wire.Decode(newerSchema, encoded, nil)
	require.NoError(t, err)

	got := decoded.(wire.Struct)
	_, hasY := got.Get(1)
	assert.False(t, hasY)
}

// Null at a non-optional rank is a decode error.
func TestStructNullAtNonOptionalRankIsError(t *testing.T) {
	ty := ast.StructType{Fields: []ast.Field{
		{Rank: 0, Name: "x", Type: ast.IntType{Kind: ast.U32}},
		{Rank: 1, Name: "y", Type: ast.BoolType{}},
	}}

	// Array of length 2: rank 0 = u32(1), rank 1 = null (illegal: y is
	// required).
	raw := []byte{0x82, 0x1A, 0x00, 0x00, 0x00, 0x01, 0xF6}

	_, err := wire.Decode(ty, raw, nil)
	require.Error(t, err)
}

func TestFixedArrayLengthMismatchIsError(t *testing.T) {
	ty := ast.ArrayType{Kind: ast.ArrayFixed, Length: 3, Element: ast.BoolType{}}

	_, err := wire.Encode(ty, []wire.Value{true, false}, nil)
	assert.Error(t, err)
}

func TestEnumUnknownTagSurfacedNotDefaulted(t *testing.T) {
	ty := ast.EnumType{Variants: []ast.EnumVariant{{Tag: 0, Name: "a"}, {Tag: 1, Name: "b"}}}

	encoded, err := wire.Encode(ty, uint64(99), nil)
	require.NoError(t, err)

	decoded, err := wire.Decode(ty, encoded, nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(99), decoded)
}

func TestFloatWidthsNeverDowncast(t *testing.T) {
	ty := ast.FloatType{Kind: ast.F32}

	got, err := wire.Encode(ty, float64(1.0), nil)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xFA, 0x3F, 0x80, 0x00, 0x00}, got)

	decoded, err := wire.Decode(ty, got, nil)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, decoded.(float64), 1e-9)
}
