package wire

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFloat16SubnormalRoundtrip(t *testing.T) {
	// bits 0x0200: sign 0, exp 0, mantissa 0x200 -> 512/1024 * 2^-14 = 2^-15,
	// a value in the f16 subnormal range (2^-24 .. 2^-14).
	const subnormalBits = uint16(0x0200)

	v := float16BitsToFloat64(subnormalBits)
	assert.InDelta(t, math.Pow(2, -15), v, 1e-12)

	got := float64ToFloat16Bits(v)
	assert.Equal(t, subnormalBits, got, "gradual underflow must roundtrip, not flush to zero")
}

func TestFloat16SmallestSubnormalRoundtrips(t *testing.T) {
	const smallestSubnormalBits = uint16(0x0001)

	v := float16BitsToFloat64(smallestSubnormalBits)
	got := float64ToFloat16Bits(v)
	assert.Equal(t, smallestSubnormalBits, got)
}

func TestFloat16BelowSubnormalRangeFlushesToZero(t *testing.T) {
	got := float64ToFloat16Bits(math.Pow(2, -30))
	assert.Equal(t, uint16(0), got)
}

func TestFloat16ZeroRoundtrips(t *testing.T) {
	assert.Equal(t, uint16(0), float64ToFloat16Bits(0))
	assert.Equal(t, uint16(0x8000), float64ToFloat16Bits(math.Copysign(0, -1)))
}
