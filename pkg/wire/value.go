// Package wire is the reference implementation of the cboragen CBOR wire
// contract (spec §4.5): a schema-typed encoder/decoder pair that makes the
// roundtrip and compatibility laws of §8 executable as tests. It is a
// contract checker, not a code generator — it interprets an ast.TypeExpr
// against a dynamic Value rather than emitting target-language codecs.
package wire

// Value is the dynamic representation of a decoded (or to-be-encoded) schema
// value. Encode and Decode walk an ast.TypeExpr in lockstep with a Value,
// so the concrete Go type backing Value depends on the TypeExpr it pairs
// with:
//
//	bool                -> bool
//	string               -> string
//	bytes                -> []byte
//	[]u8                 -> []Value of uint64 (a byte string on the wire)
//	u8/16/32/64          -> uint64
//	i8/16/32/64          -> int64
//	uvarint              -> uint64
//	ivarint              -> int64
//	f16/32/64            -> float64
//	?T                   -> util.Option[Value]
//	[]T, [N]T, [.f]T     -> []Value
//	struct{...}          -> Struct
//	enum{...}            -> uint64 (the matched or raw tag)
//	union{...}           -> Union
type Value = any

// Struct is the decoded form of a struct value: present fields keyed by
// rank. A rank absent from Fields was either never written or decoded as
// CBOR null.
type Struct struct {
	Fields map[uint64]Value
}

// Get returns the value at rank and whether it was present.
func (s Struct) Get(rank uint64) (Value, bool) {
	v, ok := s.Fields[rank]

	return v, ok
}

// Union is the decoded form of a union value: the matched variant tag plus
// its payload, if any. An option (`?T`) value is a util.Option[Value], not a
// Union.
type Union struct {
	Tag     uint64
	Payload Value // nil for a unit variant
}
