package ast

import (
	"github.com/cboragen/cboragen/pkg/source"
)

// Field is one ranked member of a StructType. Rank is the stable wire
// identifier used as the index into the encoded CBOR array; uniqueness
// within a definition is not enforced here (see spec's open questions).
type Field struct {
	Doc      Doc
	Rank     uint64
	Name     string
	Type     TypeExpr
	Span     source.Span
	NameSpan source.Span
}

// NodeSpan implements Node.
func (f Field) NodeSpan() source.Span { return f.Span }

// EnumVariant is one tagged member of an EnumType.
type EnumVariant struct {
	Doc  Doc
	Tag  uint64
	Name string
	Span source.Span
}

// NodeSpan implements Node.
func (v EnumVariant) NodeSpan() source.Span { return v.Span }

// UnionVariant is one tagged, optionally-payload member of a UnionType.
// Payload is nil for a unit variant.
type UnionVariant struct {
	Doc     Doc
	Tag     uint64
	Name    string
	Payload TypeExpr
	Span    source.Span
}

// NodeSpan implements Node.
func (v UnionVariant) NodeSpan() source.Span { return v.Span }

// HasPayload reports whether this variant carries a payload type.
func (v UnionVariant) HasPayload() bool {
	return v.Payload != nil
}
