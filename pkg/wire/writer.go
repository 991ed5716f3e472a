package wire

import (
	"bytes"
	"encoding/binary"
)

// Major CBOR types used by this format (major 5, maps, is never emitted).
const (
	majorUnsigned = 0
	majorNegative = 1
	majorBytes    = 2
	majorText     = 3
	majorArray    = 4
	majorTag      = 6
	majorSimple   = 7
)

// Additional-info constants from the §4.5 primer.
const (
	ai1Byte      = 24
	ai2Byte      = 25
	ai4Byte      = 26
	ai8Byte      = 27
	aiIndefinite = 31

	simpleFalse = 20
	simpleTrue  = 21
	simpleNull  = 22
)

const breakByte = 0xFF

// Writer accumulates CBOR bytes. It never fails: the only failure mode in
// this format is a value outside its declared type's admissible set, which
// callers must reject before calling into Writer.
type Writer struct {
	buf bytes.Buffer
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Bytes returns the accumulated CBOR byte sequence.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

func (w *Writer) writeByte(b byte) {
	w.buf.WriteByte(b)
}

func (w *Writer) writeRaw(b []byte) {
	w.buf.Write(b)
}

// writeFixedHeader writes an initial byte with a mandated (non-minimal) AI
// for widthBytes, used by the fixed-width scalar table in §4.5.
func (w *Writer) writeFixedHeader(major byte, widthBytes int) {
	ai := aiForWidth(widthBytes)
	w.writeByte(major<<5 | ai)
}

func aiForWidth(widthBytes int) byte {
	switch widthBytes {
	case 1:
		return ai1Byte
	case 2:
		return ai2Byte
	case 4:
		return ai4Byte
	case 8:
		return ai8Byte
	default:
		panic("unsupported fixed width")
	}
}

// writeFixedArg writes the big-endian argument bytes for a fixed-width
// scalar, zero-padded to widthBytes.
func (w *Writer) writeFixedArg(value uint64, widthBytes int) {
	switch widthBytes {
	case 1:
		w.writeByte(byte(value))
	case 2:
		var b [2]byte
		binary.BigEndian.PutUint16(b[:], uint16(value))
		w.writeRaw(b[:])
	case 4:
		var b [4]byte
		binary.BigEndian.PutUint32(b[:], uint32(value))
		w.writeRaw(b[:])
	case 8:
		var b [8]byte
		binary.BigEndian.PutUint64(b[:], value)
		w.writeRaw(b[:])
	default:
		panic("unsupported fixed width")
	}
}

// writeMinimal writes an initial byte plus argument using the smallest AI
// that represents n, per the uvarint/length-header encoding used throughout
// §4.5 (minimal unsigned-int, string/bytes/array headers, enum/union tags).
func (w *Writer) writeMinimal(major byte, n uint64) {
	switch {
	case n < ai1Byte:
		w.writeByte(major<<5 | byte(n))
	case n <= 0xFF:
		w.writeByte(major<<5 | ai1Byte)
		w.writeByte(byte(n))
	case n <= 0xFFFF:
		w.writeByte(major<<5 | ai2Byte)

		var b [2]byte
		binary.BigEndian.PutUint16(b[:], uint16(n))
		w.writeRaw(b[:])
	case n <= 0xFFFFFFFF:
		w.writeByte(major<<5 | ai4Byte)

		var b [4]byte
		binary.BigEndian.PutUint32(b[:], uint32(n))
		w.writeRaw(b[:])
	default:
		w.writeByte(major<<5 | ai8Byte)

		var b [8]byte
		binary.BigEndian.PutUint64(b[:], n)
		w.writeRaw(b[:])
	}
}

// writeIndefiniteArrayStart writes the 0x9F opener for an external-length
// array.
func (w *Writer) writeIndefiniteArrayStart() {
	w.writeByte(majorArray<<5 | aiIndefinite)
}

// writeBreak writes the 0xFF break symbol closing an indefinite-length item.
func (w *Writer) writeBreak() {
	w.writeByte(breakByte)
}
