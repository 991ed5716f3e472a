package wire

import (
	"fmt"

	"github.com/cboragen/cboragen/pkg/ast"
	"github.com/cboragen/cboragen/pkg/util"
)

// Encode renders v as the CBOR encoding of ty. resolver may be nil if ty
// (transitively) contains no NamedType/QualifiedType reference.
func Encode(ty ast.TypeExpr, v Value, resolver Resolver) ([]byte, error) {
	w := NewWriter()
	if err := encodeValue(w, ty, v, resolver); err != nil {
		return nil, err
	}

	return w.Bytes(), nil
}

// Decode parses data as the CBOR encoding of ty, returning the decoded
// Value. resolver may be nil under the same condition as Encode.
func Decode(ty ast.TypeExpr, data []byte, resolver Resolver) (Value, error) {
	r := NewReader(data)

	return decodeValue(r, ty, resolver)
}

func encodeValue(w *Writer, ty ast.TypeExpr, v Value, resolver Resolver) error {
	switch t := ty.(type) {
	case ast.BoolType:
		encodeBool(w, v.(bool))

		return nil
	case ast.StringType:
		encodeString(w, v.(string))

		return nil
	case ast.BytesType:
		encodeBytes(w, v.([]byte))

		return nil
	case ast.IntType:
		if t.Kind.Signed() {
			encodeInt(w, t.Kind, v.(int64))
		} else {
			encodeUint(w, t.Kind, v.(uint64))
		}

		return nil
	case ast.FloatType:
		encodeFloat(w, t.Kind, v.(float64))

		return nil
	case ast.OptionType:
		return encodeOption(w, t, v.(util.Option[Value]), resolver)
	case ast.ArrayType:
		if t.Kind == ast.ArrayExternalLength {
			return fmt.Errorf("wire: external-length array type %q cannot be encoded outside its declaring struct (sibling count required)", t.Field)
		}

		return encodeArray(w, t, v.([]Value), resolver)
	case ast.StructType:
		return encodeStruct(w, t, v.(Struct), resolver)
	case ast.EnumType:
		encodeEnum(w, v.(uint64))

		return nil
	case ast.UnionType:
		return encodeUnion(w, t, v.(Union), resolver)
	case ast.NamedType:
		resolved, ok := mustResolve(resolver, "", t.Name)
		if !ok {
			return fmt.Errorf("wire: unresolved named type %q", t.Name)
		}

		return encodeValue(w, resolved, v, resolver)
	case ast.QualifiedType:
		resolved, ok := mustResolve(resolver, t.Namespace, t.Name)
		if !ok {
			return fmt.Errorf("wire: unresolved qualified type %s.%s", t.Namespace, t.Name)
		}

		return encodeValue(w, resolved, v, resolver)
	default:
		return fmt.Errorf("wire: unsupported type expression %T", ty)
	}
}

func decodeValue(r *Reader, ty ast.TypeExpr, resolver Resolver) (Value, error) {
	switch t := ty.(type) {
	case ast.BoolType:
		return decodeBool(r)
	case ast.StringType:
		return decodeString(r)
	case ast.BytesType:
		return decodeBytes(r)
	case ast.IntType:
		if t.Kind.Signed() {
			return decodeInt(r, t.Kind)
		}

		return decodeUint(r, t.Kind)
	case ast.FloatType:
		return decodeFloat(r, t.Kind)
	case ast.OptionType:
		return decodeOption(r, t, resolver)
	case ast.ArrayType:
		if t.Kind == ast.ArrayExternalLength {
			return nil, fmt.Errorf("wire: external-length array type %q cannot be decoded outside its declaring struct (sibling count required)", t.Field)
		}

		return decodeArray(r, t, resolver)
	case ast.StructType:
		return decodeStruct(r, t, resolver)
	case ast.EnumType:
		return decodeEnum(r)
	case ast.UnionType:
		return decodeUnion(r, t, resolver)
	case ast.NamedType:
		resolved, ok := mustResolve(resolver, "", t.Name)
		if !ok {
			return nil, fmt.Errorf("wire: unresolved named type %q", t.Name)
		}

		return decodeValue(r, resolved, resolver)
	case ast.QualifiedType:
		resolved, ok := mustResolve(resolver, t.Namespace, t.Name)
		if !ok {
			return nil, fmt.Errorf("wire: unresolved qualified type %s.%s", t.Namespace, t.Name)
		}

		return decodeValue(r, resolved, resolver)
	default:
		return nil, fmt.Errorf("wire: unsupported type expression %T", ty)
	}
}

func mustResolve(resolver Resolver, namespace, name string) (ast.TypeExpr, bool) {
	if resolver == nil {
		return nil, false
	}

	return resolver.Resolve(namespace, name)
}

// isByteArray reports whether t is the `[]u8` special case (§4.5): a
// variable-length array of u8, encoded as a CBOR byte string rather than an
// array of single-byte integers.
func isByteArray(t ast.ArrayType) bool {
	if t.Kind != ast.ArrayVariable {
		return false
	}

	it, ok := t.Element.(ast.IntType)

	return ok && it.Kind == ast.U8
}

// encodeArray handles the ArrayFixed and ArrayVariable forms only;
// ArrayExternalLength is encoded by encodeStruct via encodeExternalLengthArray
// once it has validated the array against its sibling count field.
func encodeArray(w *Writer, t ast.ArrayType, elems []Value, resolver Resolver) error {
	if isByteArray(t) {
		buf := make([]byte, len(elems))
		for i, e := range elems {
			buf[i] = byte(e.(uint64))
		}

		encodeBytes(w, buf)

		return nil
	}

	if t.Kind == ast.ArrayFixed && uint64(len(elems)) != t.Length {
		return fmt.Errorf("wire: fixed array length mismatch: schema declares %d, value has %d", t.Length, len(elems))
	}

	w.writeMinimal(majorArray, uint64(len(elems)))

	for _, e := range elems {
		if err := encodeValue(w, t.Element, e, resolver); err != nil {
			return err
		}
	}

	return nil
}

// encodeExternalLengthArray writes the `[.field]T` indefinite-length form.
// count is the already-validated value of the sibling length field.
func encodeExternalLengthArray(w *Writer, t ast.ArrayType, elems []Value, count uint64, resolver Resolver) error {
	if uint64(len(elems)) != count {
		return fmt.Errorf("wire: external-length array %q has %d elements but sibling field %q declares %d", t.Field, len(elems), t.Field, count)
	}

	w.writeIndefiniteArrayStart()

	for _, e := range elems {
		if err := encodeValue(w, t.Element, e, resolver); err != nil {
			return err
		}
	}

	w.writeBreak()

	return nil
}

// decodeArray handles the ArrayFixed and ArrayVariable forms only;
// ArrayExternalLength is decoded by decodeStruct via
// decodeExternalLengthArray, which has the sibling count in scope.
func decodeArray(r *Reader, t ast.ArrayType, resolver Resolver) ([]Value, error) {
	if isByteArray(t) {
		b, err := decodeBytes(r)
		if err != nil {
			return nil, err
		}

		out := make([]Value, len(b))
		for i, c := range b {
			out[i] = uint64(c)
		}

		return out, nil
	}

	start := r.Pos()

	major, _, n, err := r.readHeader()
	if err != nil {
		return nil, err
	}

	if major != majorArray {
		return nil, newMismatchError(start, "initial byte mismatch", "major 4 (array)", fmt.Sprintf("major %d", major))
	}

	if t.Kind == ast.ArrayFixed && n != t.Length {
		return nil, newDecodeError(start, fmt.Sprintf("fixed array length mismatch: schema declares %d, wire has %d", t.Length, n))
	}

	out := make([]Value, 0, n)

	for i := uint64(0); i < n; i++ {
		v, err := decodeValue(r, t.Element, resolver)
		if err != nil {
			return nil, err
		}

		out = append(out, v)
	}

	return out, nil
}

func fieldsByRank(t ast.StructType) map[uint64]ast.Field {
	m := make(map[uint64]ast.Field, len(t.Fields))
	for _, f := range t.Fields {
		m[f.Rank] = f
	}

	return m
}

// siblingCount resolves the integer value of the struct field named
// fieldName, as already present in fields (either encoded-from or
// decoded-into, depending on caller), for an `[.fieldName]T` external-length
// array's count (spec.md §4.5: "the count is taken from the previously
// decoded sibling field value").
func siblingCount(t ast.StructType, fields map[uint64]Value, fieldName string) (uint64, error) {
	for _, f := range t.Fields {
		if f.Name != fieldName {
			continue
		}

		v, ok := fields[f.Rank]
		if !ok {
			return 0, fmt.Errorf("wire: external-length array references field %q which has no value", fieldName)
		}

		switch n := v.(type) {
		case uint64:
			return n, nil
		case int64:
			if n < 0 {
				return 0, fmt.Errorf("wire: external-length array sibling field %q is negative", fieldName)
			}

			return uint64(n), nil
		default:
			return 0, fmt.Errorf("wire: external-length array sibling field %q is not an integer (got %T)", fieldName, v)
		}
	}

	return 0, fmt.Errorf("wire: external-length array references unknown sibling field %q", fieldName)
}

func encodeStruct(w *Writer, t ast.StructType, sv Struct, resolver Resolver) error {
	byRank := fieldsByRank(t)

	maxRank := int64(-1)

	for rank := range sv.Fields {
		if int64(rank) > maxRank {
			maxRank = int64(rank)
		}
	}

	if maxRank < 0 {
		w.writeMinimal(majorArray, 0)

		return nil
	}

	w.writeMinimal(majorArray, uint64(maxRank+1))

	for r := uint64(0); r <= uint64(maxRank); r++ {
		v, present := sv.Fields[r]
		if !present {
			w.writeByte(majorSimple<<5 | simpleNull)

			continue
		}

		f, ok := byRank[r]
		if !ok {
			return fmt.Errorf("wire: struct value has a field at rank %d not declared in the schema", r)
		}

		if arrType, ok := f.Type.(ast.ArrayType); ok && arrType.Kind == ast.ArrayExternalLength {
			count, err := siblingCount(t, sv.Fields, arrType.Field)
			if err != nil {
				return err
			}

			elems, ok := v.([]Value)
			if !ok {
				return fmt.Errorf("wire: field %q expected []Value for an array, got %T", f.Name, v)
			}

			if err := encodeExternalLengthArray(w, arrType, elems, count, resolver); err != nil {
				return err
			}

			continue
		}

		if err := encodeValue(w, f.Type, v, resolver); err != nil {
			return err
		}
	}

	return nil
}

func decodeStruct(r *Reader, t ast.StructType, resolver Resolver) (Struct, error) {
	byRank := fieldsByRank(t)

	start := r.Pos()

	major, _, n, err := r.readHeader()
	if err != nil {
		return Struct{}, err
	}

	if major != majorArray {
		return Struct{}, newMismatchError(start, "initial byte mismatch", "major 4 (array)", fmt.Sprintf("major %d", major))
	}

	fields := make(map[uint64]Value)

	for rank := uint64(0); rank < n; rank++ {
		f, known := byRank[rank]

		if !known {
			if err := Skip(r); err != nil {
				return Struct{}, err
			}

			continue
		}

		nullStart := r.Pos()

		peeked, err := r.peekByte()
		if err != nil {
			return Struct{}, err
		}

		if peeked == majorSimple<<5|simpleNull {
			if _, isOpt := f.Type.(ast.OptionType); !isOpt {
				return Struct{}, newDecodeError(nullStart, fmt.Sprintf("null at non-optional field %q (rank %d)", f.Name, rank))
			}

			r.readByte() //nolint:errcheck // just validated via peek

			continue
		}

		if arrType, ok := f.Type.(ast.ArrayType); ok && arrType.Kind == ast.ArrayExternalLength {
			count, err := siblingCount(t, fields, arrType.Field)
			if err != nil {
				return Struct{}, err
			}

			v, err := decodeExternalLengthArray(r, arrType, resolver, count)
			if err != nil {
				return Struct{}, err
			}

			fields[rank] = v

			continue
		}

		v, err := decodeValue(r, f.Type, resolver)
		if err != nil {
			return Struct{}, err
		}

		fields[rank] = v
	}

	return Struct{Fields: fields}, nil
}

// decodeExternalLengthArray reads the `[.field]T` indefinite-length form,
// bounding the read by count (the sibling field's already-decoded value per
// spec.md §4.5) and asserting the break byte falls exactly after that many
// elements.
func decodeExternalLengthArray(r *Reader, t ast.ArrayType, resolver Resolver, count uint64) ([]Value, error) {
	start := r.Pos()

	major, ai, _, err := r.readHeader()
	if err != nil {
		return nil, err
	}

	if major != majorArray || ai != aiIndefinite {
		return nil, newMismatchError(start, "initial byte mismatch", "major 4, indefinite (0x9F)", majorAIString(major, ai))
	}

	out := make([]Value, 0, count)

	for i := uint64(0); i < count; i++ {
		v, err := decodeValue(r, t.Element, resolver)
		if err != nil {
			return nil, err
		}

		out = append(out, v)
	}

	breakStart := r.Pos()

	b, err := r.readByte()
	if err != nil {
		return nil, err
	}

	if b != breakByte {
		return nil, newDecodeError(breakStart, fmt.Sprintf("external-length array: expected break byte (0xFF) after %d sibling-declared elements, found 0x%02X", count, b))
	}

	return out, nil
}

func encodeEnum(w *Writer, tag uint64) {
	w.writeMinimal(majorUnsigned, tag)
}

func decodeEnum(r *Reader) (uint64, error) {
	start := r.Pos()

	major, _, arg, err := r.readHeader()
	if err != nil {
		return 0, err
	}

	if major != majorUnsigned {
		return 0, newMismatchError(start, "initial byte mismatch", "major 0 (enum tag)", fmt.Sprintf("major %d", major))
	}

	return arg, nil
}

func findUnionVariant(t ast.UnionType, tag uint64) (ast.UnionVariant, bool) {
	for _, v := range t.Variants {
		if v.Tag == tag {
			return v, true
		}
	}

	return ast.UnionVariant{}, false
}

func encodeUnion(w *Writer, t ast.UnionType, uv Union, resolver Resolver) error {
	variant, ok := findUnionVariant(t, uv.Tag)
	if !ok {
		return fmt.Errorf("wire: union value has unknown tag %d for this schema", uv.Tag)
	}

	if !variant.HasPayload() {
		w.writeMinimal(majorUnsigned, uv.Tag)

		return nil
	}

	w.writeMinimal(majorTag, uv.Tag)

	return encodeValue(w, variant.Payload, uv.Payload, resolver)
}

func decodeUnion(r *Reader, t ast.UnionType, resolver Resolver) (Union, error) {
	start := r.Pos()

	major, _, arg, err := r.readHeader()
	if err != nil {
		return Union{}, err
	}

	switch major {
	case majorUnsigned:
		return Union{Tag: arg}, nil
	case majorTag:
		variant, ok := findUnionVariant(t, arg)
		if !ok || !variant.HasPayload() {
			// Unknown or payload-less-in-schema tag: preserve the tag but
			// skip the wrapped item, since its shape is unknown.
			if err := Skip(r); err != nil {
				return Union{}, err
			}

			return Union{Tag: arg}, nil
		}

		payload, err := decodeValue(r, variant.Payload, resolver)
		if err != nil {
			return Union{}, err
		}

		return Union{Tag: arg, Payload: payload}, nil
	default:
		return Union{}, newMismatchError(start, "initial byte mismatch", "major 0 or 6 (union)", fmt.Sprintf("major %d", major))
	}
}

func encodeOption(w *Writer, t ast.OptionType, opt util.Option[Value], resolver Resolver) error {
	if opt.IsEmpty() {
		w.writeMinimal(majorUnsigned, 0)

		return nil
	}

	w.writeMinimal(majorTag, 1)

	return encodeValue(w, t.Child, opt.Unwrap(), resolver)
}

func decodeOption(r *Reader, t ast.OptionType, resolver Resolver) (util.Option[Value], error) {
	start := r.Pos()

	major, ai, arg, err := r.readHeader()
	if err != nil {
		return util.None[Value](), err
	}

	switch {
	case major == majorUnsigned && arg == 0:
		return util.None[Value](), nil
	case major == majorTag && arg == 1:
		v, err := decodeValue(r, t.Child, resolver)
		if err != nil {
			return util.None[Value](), err
		}

		return util.Some(v), nil
	default:
		return util.None[Value](), newMismatchError(start, "initial byte mismatch", "0x00 (none) or 0xC1 (some)", majorAIString(major, ai))
	}
}
