package ast

import "github.com/cboragen/cboragen/pkg/util"

// Doc is the `///`-comment text attached to a Definition, Field, EnumVariant,
// or UnionVariant. The wrapped text is a string copied out of the source
// buffer; several `///` lines are newline-joined into one string (see
// parser.tryParseDocComment). Len reports its byte count.
type Doc struct {
	text util.Option[string]
}

// NoDoc is the absent Doc value, for definitions/fields with no `///` lines.
func NoDoc() Doc {
	return Doc{util.None[string]()}
}

// NewDoc wraps a joined doc-comment string (see parser.tryParseDocComment).
func NewDoc(text string) Doc {
	return Doc{util.Some(text)}
}

// HasValue reports whether a doc comment is present.
func (d Doc) HasValue() bool {
	return d.text.HasValue()
}

// IsEmpty reports whether no doc comment is present.
func (d Doc) IsEmpty() bool {
	return d.text.IsEmpty()
}

// Unwrap returns the doc comment text, or panics if none is present.
func (d Doc) Unwrap() string {
	return d.text.Unwrap()
}

// Text returns the doc comment text, or "" if none is present.
func (d Doc) Text() string {
	return d.text.UnwrapOr("")
}

// Len returns the doc comment's byte length, or 0 if none is present —
// the per-definition contribution to a schema's doc-comment arena size
// (SPEC_FULL.md §4.8).
func (d Doc) Len() int {
	return len(d.Text())
}

// DocArenaSize sums the byte length of every doc comment attached anywhere
// in schema: top-level definitions, struct fields, enum variants, and union
// variants. Reported alongside the parsed source's own size in cboragen's
// default-mode summary (SPEC_FULL.md §4.8).
func DocArenaSize(schema Schema) int {
	total := 0

	for _, def := range schema.Definitions {
		total += def.Doc.Len()
		total += typeDocSize(def.Type)
	}

	return total
}

func typeDocSize(ty TypeExpr) int {
	switch t := ty.(type) {
	case StructType:
		total := 0
		for _, f := range t.Fields {
			total += f.Doc.Len()
			total += typeDocSize(f.Type)
		}

		return total
	case EnumType:
		total := 0
		for _, v := range t.Variants {
			total += v.Doc.Len()
		}

		return total
	case UnionType:
		total := 0

		for _, v := range t.Variants {
			total += v.Doc.Len()
			if v.Payload != nil {
				total += typeDocSize(v.Payload)
			}
		}

		return total
	case ArrayType:
		return typeDocSize(t.Element)
	case OptionType:
		return typeDocSize(t.Child)
	default:
		return 0
	}
}
