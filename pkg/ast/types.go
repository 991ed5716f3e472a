package ast

import "github.com/cboragen/cboragen/pkg/source"

// IntKind distinguishes the ten admissible integer widths/encodings.
type IntKind int

// The ten admissible integer kinds, matching the keyword spelling.
const (
	U8 IntKind = iota
	U16
	U32
	U64
	I8
	I16
	I32
	I64
	Uvarint
	Ivarint
)

// String renders the schema keyword spelling of this kind.
func (k IntKind) String() string {
	switch k {
	case U8:
		return "u8"
	case U16:
		return "u16"
	case U32:
		return "u32"
	case U64:
		return "u64"
	case I8:
		return "i8"
	case I16:
		return "i16"
	case I32:
		return "i32"
	case I64:
		return "i64"
	case Uvarint:
		return "uvarint"
	case Ivarint:
		return "ivarint"
	default:
		return "?"
	}
}

// Signed reports whether this kind admits negative values.
func (k IntKind) Signed() bool {
	switch k {
	case I8, I16, I32, I64, Ivarint:
		return true
	default:
		return false
	}
}

// FloatKind distinguishes the three admissible float widths.
type FloatKind int

// The three admissible float kinds.
const (
	F16 FloatKind = iota
	F32
	F64
)

// String renders the schema keyword spelling of this kind.
func (k FloatKind) String() string {
	switch k {
	case F16:
		return "f16"
	case F32:
		return "f32"
	case F64:
		return "f64"
	default:
		return "?"
	}
}

// TypeExpr is the closed sum type over every type-expression form in §3.
// Implementations are unexported-sealed via typeExprNode so that adding a new
// form is a compile-time error at every switch over TypeExpr in this module.
type TypeExpr interface {
	Node
	typeExprNode()
}

// BoolType is the `bool` primitive.
type BoolType struct {
	Span source.Span
}

// NodeSpan implements Node.
func (t BoolType) NodeSpan() source.Span { return t.Span }
func (BoolType) typeExprNode()           {}

// StringType is the `string` primitive.
type StringType struct {
	Span source.Span
}

// NodeSpan implements Node.
func (t StringType) NodeSpan() source.Span { return t.Span }
func (StringType) typeExprNode()           {}

// BytesType is the `bytes` primitive, produced by the `bytes` keyword. `[]u8`
// parses as an ArrayType instead; pkg/wire encodes both as a byte string.
type BytesType struct {
	Span source.Span
}

// NodeSpan implements Node.
func (t BytesType) NodeSpan() source.Span { return t.Span }
func (BytesType) typeExprNode()           {}

// IntType is a fixed-width or varint integer.
type IntType struct {
	Kind IntKind
	Span source.Span
}

// NodeSpan implements Node.
func (t IntType) NodeSpan() source.Span { return t.Span }
func (IntType) typeExprNode()           {}

// FloatType is a fixed-width float.
type FloatType struct {
	Kind FloatKind
	Span source.Span
}

// NodeSpan implements Node.
func (t FloatType) NodeSpan() source.Span { return t.Span }
func (FloatType) typeExprNode()           {}

// OptionType is `?T`, sugar for `union { 0 none, 1 some: T }`.
type OptionType struct {
	Child TypeExpr
	Span  source.Span
}

// NodeSpan implements Node.
func (t OptionType) NodeSpan() source.Span { return t.Span }
func (OptionType) typeExprNode()           {}

// ArrayKind distinguishes the three array forms.
type ArrayKind int

// The three array forms.
const (
	ArrayVariable ArrayKind = iota
	ArrayFixed
	ArrayExternalLength
)

// ArrayType is `[]T`, `[N]T`, or `[.field]T`, distinguished by Kind.
type ArrayType struct {
	Kind    ArrayKind
	Length  uint64 // valid only when Kind == ArrayFixed
	Field   string // valid only when Kind == ArrayExternalLength
	Element TypeExpr
	Span    source.Span
}

// NodeSpan implements Node.
func (t ArrayType) NodeSpan() source.Span { return t.Span }
func (ArrayType) typeExprNode()           {}

// StructType is `struct { ... }`, an ordered list of ranked fields.
type StructType struct {
	Fields []Field
	Span   source.Span
}

// NodeSpan implements Node.
func (t StructType) NodeSpan() source.Span { return t.Span }
func (StructType) typeExprNode()           {}

// EnumType is `enum { ... }`, an ordered list of tagged variants.
type EnumType struct {
	Variants []EnumVariant
	Span     source.Span
}

// NodeSpan implements Node.
func (t EnumType) NodeSpan() source.Span { return t.Span }
func (EnumType) typeExprNode()           {}

// UnionType is `union { ... }`, an ordered list of tagged, optionally-payload
// variants.
type UnionType struct {
	Variants []UnionVariant
	Span     source.Span
}

// NodeSpan implements Node.
func (t UnionType) NodeSpan() source.Span { return t.Span }
func (UnionType) typeExprNode()           {}

// NamedType is a reference to a local definition by name.
type NamedType struct {
	Name string
	Span source.Span
}

// NodeSpan implements Node.
func (t NamedType) NodeSpan() source.Span { return t.Span }
func (NamedType) typeExprNode()           {}

// QualifiedType is a reference to a definition imported under a namespace.
type QualifiedType struct {
	Namespace string
	Name      string
	Span      source.Span
}

// NodeSpan implements Node.
func (t QualifiedType) NodeSpan() source.Span { return t.Span }
func (QualifiedType) typeExprNode()           {}
