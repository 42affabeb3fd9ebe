// Package xmath implements the deterministic numeric layer: a soft-float
// binary64 type with a fixed rounding mode, and the wide fixed-point
// unsigned/signed types built on top of it.
package xmath

import (
	"math"
	"math/big"
)

// Float is a binary64 value produced only through operations that pin the
// rounding mode to ties-to-away, so that the same sequence of operations
// yields the same bit pattern on every host regardless of the native FPU's
// default rounding behavior.
type Float struct {
	v float64
}

// floatPrec is fixed at the binary64 mantissa width; mode is pinned so every
// intermediate big.Float computation rounds identically everywhere.
const floatPrec = 53

func bigFrom(f float64) *big.Float {
	return new(big.Float).SetPrec(floatPrec).SetMode(big.ToNearestAway).SetFloat64(f)
}

func bigResult(r *big.Float) Float {
	f, _ := r.Float64()
	return Float{f}
}

// FromFloat64 wraps a raw float64 without any rounding pass. Used only for
// literal constants (e.g. zero, one) where no computation occurred.
func FromFloat64(f float64) Float { return Float{f} }

func Zero() Float { return Float{0} }
func One() Float   { return Float{1} }
func NaN() Float   { return Float{math.NaN()} }

// MaxFloat is the sentinel used when a required price shift would place the
// next price effectively unreachable (liquidity infinitely far away).
func MaxFloat() Float { return Float{math.MaxFloat64} }

func (f Float) Float64() float64 { return f.v }
func (f Float) IsNaN() bool      { return math.IsNaN(f.v) }
func (f Float) IsZero() bool     { return f.v == 0 }
func (f Float) IsNormal() bool   { return !math.IsNaN(f.v) && !math.IsInf(f.v, 0) }
func (f Float) Sign() int {
	switch {
	case f.v > 0:
		return 1
	case f.v < 0:
		return -1
	default:
		return 0
	}
}

func (f Float) Add(o Float) Float {
	r := new(big.Float).SetPrec(floatPrec).SetMode(big.ToNearestAway)
	r.Add(bigFrom(f.v), bigFrom(o.v))
	return bigResult(r)
}

func (f Float) Sub(o Float) Float {
	r := new(big.Float).SetPrec(floatPrec).SetMode(big.ToNearestAway)
	r.Sub(bigFrom(f.v), bigFrom(o.v))
	return bigResult(r)
}

func (f Float) Mul(o Float) Float {
	r := new(big.Float).SetPrec(floatPrec).SetMode(big.ToNearestAway)
	r.Mul(bigFrom(f.v), bigFrom(o.v))
	return bigResult(r)
}

func (f Float) Quo(o Float) Float {
	r := new(big.Float).SetPrec(floatPrec).SetMode(big.ToNearestAway)
	r.Quo(bigFrom(f.v), bigFrom(o.v))
	return bigResult(r)
}

func (f Float) Sqrt() Float {
	r := new(big.Float).SetPrec(floatPrec).SetMode(big.ToNearestAway)
	r.Sqrt(bigFrom(f.v))
	return bigResult(r)
}

func (f Float) Neg() Float { return Float{-f.v} }

func (f Float) Cmp(o Float) int {
	switch {
	case f.v < o.v:
		return -1
	case f.v > o.v:
		return 1
	default:
		return 0
	}
}

func (f Float) Lt(o Float) bool { return f.v < o.v }
func (f Float) Le(o Float) bool { return f.v <= o.v }
func (f Float) Gt(o Float) bool { return f.v > o.v }
func (f Float) Ge(o Float) bool { return f.v >= o.v }
func (f Float) Eq(o Float) bool { return f.v == o.v }

// NextUp returns the smallest Float strictly greater than f.
func (f Float) NextUp() Float { return Float{math.Nextafter(f.v, math.Inf(1))} }

// NextDown returns the largest Float strictly smaller than f.
func (f Float) NextDown() Float { return Float{math.Nextafter(f.v, math.Inf(-1))} }

// Decompose splits f into mantissa (53-bit, implicit leading one included)
// and a base-2 exponent such that f = mantissa * 2^exp, mantissa in
// [2^52, 2^53) for any normal non-zero f.
func (f Float) Decompose() (mantissa uint64, exp int) {
	if f.v == 0 || math.IsNaN(f.v) || math.IsInf(f.v, 0) {
		return 0, 0
	}
	frac, e := math.Frexp(f.v)
	// Frexp returns frac in [0.5, 1); shift into a 53-bit integer mantissa.
	m := uint64(math.Abs(frac) * (1 << 53))
	return m, e - 53
}
