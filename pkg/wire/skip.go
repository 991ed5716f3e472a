package wire

import "fmt"

const majorMap = 5

// Skip advances r past exactly one CBOR item, regardless of its shape:
// recursive for arrays/maps, length-prefixed for strings/bytes,
// inner-recursive for tags, and indefinite-length-aware (consuming items
// until the break symbol). Used for struct forward-compatibility (an
// unknown rank) and for an unknown union-variant body.
func Skip(r *Reader) error {
	start := r.Pos()

	major, ai, arg, err := r.readHeader()
	if err != nil {
		return err
	}

	switch major {
	case majorUnsigned, majorNegative, majorSimple:
		// The argument (including a float's bits) was already consumed by
		// readHeader; nothing more to skip.
		return nil
	case majorBytes, majorText:
		if ai == aiIndefinite {
			return newDecodeError(start, "indefinite-length byte/text strings are not supported by this wire format")
		}

		_, err := r.readN(int(arg))

		return err
	case majorArray:
		return skipItems(r, ai, arg, 1)
	case majorMap:
		return skipItems(r, ai, arg, 2)
	case majorTag:
		return Skip(r)
	default:
		return newDecodeError(start, fmt.Sprintf("cannot skip unknown major type %d", major))
	}
}

// skipItems skips count*perEntry items, where perEntry is 1 for an array and
// 2 for a map (key, value). When ai denotes indefinite length, items are
// skipped until the break symbol instead of a known count.
func skipItems(r *Reader, ai byte, count uint64, perEntry int) error {
	if ai == aiIndefinite {
		for {
			b, err := r.peekByte()
			if err != nil {
				return err
			}

			if b == breakByte {
				_, err := r.readByte()

				return err
			}

			if err := Skip(r); err != nil {
				return err
			}
		}
	}

	for i := uint64(0); i < count*uint64(perEntry); i++ {
		if err := Skip(r); err != nil {
			return err
		}
	}

	return nil
}
