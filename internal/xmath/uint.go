package xmath

import (
	"encoding/binary"
	"errors"
	"math/big"

	"lukechampine.com/uint128"
)

// UInt is the wide unsigned integer backing every fixed-point type. 128 bits
// covers every width this implementation targets; hosts that need 192 or
// 256 bits would swap this alias for a wider word, the logical layer above
// it is width-agnostic.
type UInt = uint128.Uint128

var (
	ErrNaN               = errors.New("xmath: NaN")
	ErrNegativeToUnsigned = errors.New("xmath: negative value cannot convert to unsigned")
	ErrOverflow          = errors.New("xmath: overflow")
	ErrPrecisionLoss     = errors.New("xmath: precision loss")
)

func UIntZero() UInt { return uint128.Zero }

// UIntToFloat converts u (an exact integer) to the nearest Float, rounding
// ties away from zero, by routing through big.Float at the pinned
// precision rather than the native (round-to-nearest-even) float64
// conversion.
func UIntToFloat(u UInt) Float {
	bi := uintToBigInt(u)
	r := new(big.Float).SetPrec(floatPrec).SetMode(big.ToNearestAway).SetInt(bi)
	return bigResult(r)
}

// floatToUIntScaled converts f to the UInt representing f*2^fracBits,
// truncating any fractional remainder (i.e. floor for non-negative f).
// Fails on NaN, negative input, or a result that does not fit in 128 bits.
func floatToUIntScaled(f Float, fracBits uint) (UInt, error) {
	if f.IsNaN() {
		return UInt{}, ErrNaN
	}
	if f.Sign() < 0 {
		return UInt{}, ErrNegativeToUnsigned
	}
	if f.IsZero() {
		return UInt{}, nil
	}
	mant, exp := f.Decompose()
	bi := new(big.Int).SetUint64(mant)
	shift := exp + int(fracBits)
	if shift >= 0 {
		bi.Lsh(bi, uint(shift))
	} else {
		bi.Rsh(bi, uint(-shift))
	}
	if bi.Sign() == 0 {
		return UInt{}, nil
	}
	if bi.BitLen() > 128 {
		return UInt{}, ErrOverflow
	}
	return bigIntToUint(bi), nil
}

// FloatToInteger converts an integral, non-negative Float to an exact
// *big.Int (no width cap), for canonical on-chain amount conversions. The
// caller is expected to have already rounded f to an integer (floor or
// ceiling) via math.Floor/math.Ceil, both exact operations on a binary64
// value within normal range.
func FloatToInteger(f Float) (*big.Int, error) {
	return floatToBigIntScaled(f, 0)
}

// FloatFromInteger converts an exact *big.Int (e.g. an on-chain Amount) to
// the nearest Float, ties-to-away, mirroring FloatToInteger's counterpart
// direction.
func FloatFromInteger(bi *big.Int) Float {
	return floatFromBigIntScaled(bi, 0)
}

// floatToBigIntScaled is floatToUIntScaled without the 128-bit width cap,
// for fixed-point types backed by an arbitrary-precision integer.
func floatToBigIntScaled(f Float, fracBits uint) (*big.Int, error) {
	if f.IsNaN() {
		return nil, ErrNaN
	}
	if f.Sign() < 0 {
		return nil, ErrNegativeToUnsigned
	}
	if f.IsZero() {
		return big.NewInt(0), nil
	}
	mant, exp := f.Decompose()
	bi := new(big.Int).SetUint64(mant)
	shift := exp + int(fracBits)
	if shift >= 0 {
		bi.Lsh(bi, uint(shift))
	} else {
		bi.Rsh(bi, uint(-shift))
	}
	return bi, nil
}

// uintScaledToFloat interprets u as a value times 2^-fracBits and returns
// the corresponding Float.
func uintScaledToFloat(u UInt, fracBits uint) Float {
	bi := uintToBigInt(u)
	r := new(big.Float).SetPrec(floatPrec).SetMode(big.ToNearestAway)
	r.SetInt(bi)
	scale := new(big.Float).SetPrec(floatPrec).SetMode(big.ToNearestAway)
	two := new(big.Float).SetPrec(floatPrec).SetInt64(2)
	scale.SetInt64(1)
	// scale = 2^-fracBits, built by repeated halving to stay within the
	// pinned precision/rounding mode rather than relying on big.Float's
	// own exponent tricks.
	half := new(big.Float).SetPrec(floatPrec).SetMode(big.ToNearestAway).Quo(
		new(big.Float).SetPrec(floatPrec).SetInt64(1), two)
	for i := uint(0); i < fracBits; i++ {
		scale.Mul(scale, half)
	}
	r.Mul(r, scale)
	return bigResult(r)
}

// floatFromBigIntScaled interprets bi (which may be negative) as a value
// times 2^-fracBits and returns the corresponding Float, rounding
// ties-to-away at the pinned precision.
func floatFromBigIntScaled(bi *big.Int, fracBits uint) Float {
	r := new(big.Float).SetPrec(floatPrec).SetMode(big.ToNearestAway).SetInt(bi)
	half := new(big.Float).SetPrec(floatPrec).SetMode(big.ToNearestAway).Quo(
		new(big.Float).SetPrec(floatPrec).SetInt64(1),
		new(big.Float).SetPrec(floatPrec).SetInt64(2))
	scale := new(big.Float).SetPrec(floatPrec).SetMode(big.ToNearestAway).SetInt64(1)
	for i := uint(0); i < fracBits; i++ {
		scale.Mul(scale, half)
	}
	r.Mul(r, scale)
	return bigResult(r)
}

func uintToBigInt(u UInt) *big.Int {
	var buf [16]byte
	binary.BigEndian.PutUint64(buf[:8], u.Hi)
	binary.BigEndian.PutUint64(buf[8:], u.Lo)
	return new(big.Int).SetBytes(buf[:])
}

func bigIntToUint(bi *big.Int) UInt {
	var buf [16]byte
	bi.FillBytes(buf[:])
	return uint128.New(binary.BigEndian.Uint64(buf[8:]), binary.BigEndian.Uint64(buf[:8]))
}
