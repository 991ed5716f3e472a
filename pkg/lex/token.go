// Package lex provides a hand-written, allocation-free tokenizer over a
// schema source buffer. The lexer is a stateful iterator with no suspension:
// Next is synchronous and total, never modelled with goroutines or channels.
package lex

import "github.com/cboragen/cboragen/pkg/source"

// Tag identifies the kind of a Token. Tags form a closed alphabet; adding a
// new one is expected to require touching every switch over Tag in this
// module (the lexer, the parser, and any pretty-printer).
type Tag int

const (
	// Invalid marks a byte the lexer could not classify.
	Invalid Tag = iota
	// EOF marks the end of the token stream.
	EOF
	// Newline marks one or more collapsed line breaks.
	Newline
	// DocComment marks a `///`-prefixed line.
	DocComment
	// IntLiteral marks a run of decimal digits.
	IntLiteral
	// StringLiteral marks a double-quoted string, possibly unterminated.
	StringLiteral
	// Identifier marks a lowercase-or-underscore-led name.
	Identifier
	// TypeIdentifier marks an uppercase-led name.
	TypeIdentifier

	// keyword tags begin here.

	KwBool
	KwString
	KwBytes
	KwU8
	KwU16
	KwU32
	KwU64
	KwI8
	KwI16
	KwI32
	KwI64
	KwUvarint
	KwIvarint
	KwF16
	KwF32
	KwF64
	KwStruct
	KwEnum
	KwUnion
	KwImport

	// symbol tags begin here.

	Equals
	Colon
	At
	Dot
	Question
	LBracket
	RBracket
	LBrace
	RBrace
	LParen
	RParen
	Comma
)

// keywords maps reserved identifier spellings to their keyword tag. There are
// nineteen type/compound keywords plus the `@import` marker `import`.
var keywords = map[string]Tag{
	"bool":    KwBool,
	"string":  KwString,
	"bytes":   KwBytes,
	"u8":      KwU8,
	"u16":     KwU16,
	"u32":     KwU32,
	"u64":     KwU64,
	"i8":      KwI8,
	"i16":     KwI16,
	"i32":     KwI32,
	"i64":     KwI64,
	"uvarint": KwUvarint,
	"ivarint": KwIvarint,
	"f16":     KwF16,
	"f32":     KwF32,
	"f64":     KwF64,
	"struct":  KwStruct,
	"enum":    KwEnum,
	"union":   KwUnion,
	"import":  KwImport,
}

// String renders a tag for diagnostics and the --tokens CLI mode.
func (t Tag) String() string {
	switch t {
	case Invalid:
		return "invalid"
	case EOF:
		return "eof"
	case Newline:
		return "newline"
	case DocComment:
		return "doc_comment"
	case IntLiteral:
		return "int_literal"
	case StringLiteral:
		return "string_literal"
	case Identifier:
		return "identifier"
	case TypeIdentifier:
		return "type_identifier"
	case Equals:
		return "'='"
	case Colon:
		return "':'"
	case At:
		return "'@'"
	case Dot:
		return "'.'"
	case Question:
		return "'?'"
	case LBracket:
		return "'['"
	case RBracket:
		return "']'"
	case LBrace:
		return "'{'"
	case RBrace:
		return "'}'"
	case LParen:
		return "'('"
	case RParen:
		return "')'"
	case Comma:
		return "','"
	default:
		for spelling, tag := range keywords {
			if tag == t {
				return spelling
			}
		}

		return "?"
	}
}

// Token pairs a Tag with the span of source it covers.
type Token struct {
	Tag  Tag
	Span source.Span
}
