package wire

import (
	"fmt"
	"math"

	"github.com/cboragen/cboragen/pkg/ast"
)

func encodeBool(w *Writer, v bool) {
	if v {
		w.writeByte(majorSimple<<5 | simpleTrue)
	} else {
		w.writeByte(majorSimple<<5 | simpleFalse)
	}
}

func decodeBool(r *Reader) (bool, error) {
	start := r.Pos()

	b, err := r.readByte()
	if err != nil {
		return false, err
	}

	switch b {
	case majorSimple<<5 | simpleTrue:
		return true, nil
	case majorSimple<<5 | simpleFalse:
		return false, nil
	default:
		return false, newMismatchError(start, "initial byte mismatch", "bool (0xF4 or 0xF5)", fmt.Sprintf("0x%02X", b))
	}
}

// intWidthBytes returns the wire width of a fixed-width integer kind, or 0
// for the varint kinds (which use minimal encoding instead).
func intWidthBytes(kind ast.IntKind) int {
	switch kind {
	case ast.U8, ast.I8:
		return 1
	case ast.U16, ast.I16:
		return 2
	case ast.U32, ast.I32:
		return 4
	case ast.U64, ast.I64:
		return 8
	default:
		return 0
	}
}

func encodeUint(w *Writer, kind ast.IntKind, v uint64) {
	if width := intWidthBytes(kind); width > 0 {
		w.writeFixedHeader(majorUnsigned, width)
		w.writeFixedArg(v, width)

		return
	}

	// uvarint
	w.writeMinimal(majorUnsigned, v)
}

func decodeUint(r *Reader, kind ast.IntKind) (uint64, error) {
	if width := intWidthBytes(kind); width > 0 {
		return r.expectFixedHeader(majorUnsigned, width)
	}

	start := r.Pos()

	major, _, arg, err := r.readHeader()
	if err != nil {
		return 0, err
	}

	if major != majorUnsigned {
		return 0, newMismatchError(start, "initial byte mismatch", "major 0 (unsigned)", fmt.Sprintf("major %d", major))
	}

	return arg, nil
}

func encodeInt(w *Writer, kind ast.IntKind, v int64) {
	width := intWidthBytes(kind)

	if v >= 0 {
		if width > 0 {
			w.writeFixedHeader(majorUnsigned, width)
			w.writeFixedArg(uint64(v), width)
		} else {
			w.writeMinimal(majorUnsigned, uint64(v))
		}

		return
	}

	arg := uint64(-1 - v)

	if width > 0 {
		w.writeFixedHeader(majorNegative, width)
		w.writeFixedArg(arg, width)
	} else {
		w.writeMinimal(majorNegative, arg)
	}
}

func decodeInt(r *Reader, kind ast.IntKind) (int64, error) {
	width := intWidthBytes(kind)

	if width > 0 {
		start := r.Pos()

		major, ai, arg, err := r.readHeader()
		if err != nil {
			return 0, err
		}

		wantAI := aiForWidth(width)
		if ai != wantAI || (major != majorUnsigned && major != majorNegative) {
			return 0, newMismatchError(start, "initial byte mismatch",
				fmt.Sprintf("major 0 or 1, ai %d", wantAI), majorAIString(major, ai))
		}

		if major == majorUnsigned {
			return int64(arg), nil
		}

		return -1 - int64(arg), nil
	}

	start := r.Pos()

	major, _, arg, err := r.readHeader()
	if err != nil {
		return 0, err
	}

	switch major {
	case majorUnsigned:
		return int64(arg), nil
	case majorNegative:
		return -1 - int64(arg), nil
	default:
		return 0, newMismatchError(start, "initial byte mismatch", "major 0 or 1 (varint)", fmt.Sprintf("major %d", major))
	}
}

func encodeFloat(w *Writer, kind ast.FloatKind, v float64) {
	switch kind {
	case ast.F16:
		w.writeFixedHeader(majorSimple, 2)
		w.writeFixedArg(uint64(float64ToFloat16Bits(v)), 2)
	case ast.F32:
		w.writeFixedHeader(majorSimple, 4)
		w.writeFixedArg(uint64(math.Float32bits(float32(v))), 4)
	default:
		w.writeFixedHeader(majorSimple, 8)
		w.writeFixedArg(math.Float64bits(v), 8)
	}
}

func decodeFloat(r *Reader, kind ast.FloatKind) (float64, error) {
	switch kind {
	case ast.F16:
		arg, err := r.expectFixedHeader(majorSimple, 2)
		if err != nil {
			return 0, err
		}

		return float16BitsToFloat64(uint16(arg)), nil
	case ast.F32:
		arg, err := r.expectFixedHeader(majorSimple, 4)
		if err != nil {
			return 0, err
		}

		return float64(math.Float32frombits(uint32(arg))), nil
	default:
		arg, err := r.expectFixedHeader(majorSimple, 8)
		if err != nil {
			return 0, err
		}

		return math.Float64frombits(arg), nil
	}
}

func encodeString(w *Writer, v string) {
	w.writeMinimal(majorText, uint64(len(v)))
	w.writeRaw([]byte(v))
}

func decodeString(r *Reader) (string, error) {
	start := r.Pos()

	major, _, n, err := r.readHeader()
	if err != nil {
		return "", err
	}

	if major != majorText {
		return "", newMismatchError(start, "initial byte mismatch", "major 3 (text string)", fmt.Sprintf("major %d", major))
	}

	b, err := r.readN(int(n))
	if err != nil {
		return "", err
	}

	return string(b), nil
}

func encodeBytes(w *Writer, v []byte) {
	w.writeMinimal(majorBytes, uint64(len(v)))
	w.writeRaw(v)
}

func decodeBytes(r *Reader) ([]byte, error) {
	start := r.Pos()

	major, _, n, err := r.readHeader()
	if err != nil {
		return nil, err
	}

	if major != majorBytes {
		return nil, newMismatchError(start, "initial byte mismatch", "major 2 (byte string)", fmt.Sprintf("major %d", major))
	}

	b, err := r.readN(int(n))
	if err != nil {
		return nil, err
	}

	out := make([]byte, len(b))
	copy(out, b)

	return out, nil
}
