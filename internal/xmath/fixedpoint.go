package xmath

import (
	"math/big"

	"cosmossdk.io/math"
)

// ufpFracBits is the number of fractional bits carried by every 128-bit
// unsigned fixed-point type (AmountUFP, NetLiquidityUFP, GrossLiquidityUFP,
// FeeLiquidityUFP): each represents value*2^-64 in a 128-bit word.
const ufpFracBits = 64

// AmountUFP is a token amount carried at full fixed-point precision,
// before it is rounded into a canonical on-chain Amount.
type AmountUFP struct{ v UInt }

// NetLiquidityUFP is an LP's accounted contribution to a fee level.
type NetLiquidityUFP struct{ v UInt }

// GrossLiquidityUFP couples input amount to effective-sqrtprice shift:
// net_liquidity / sqrt(1-fee_rate).
type GrossLiquidityUFP struct{ v UInt }

// FeeLiquidityUFP couples LP fee to effective-sqrtprice shift:
// net_liquidity * fee_rate/(1-fee_rate).
type FeeLiquidityUFP struct{ v UInt }

func AmountUFPFromFloat(f Float) (AmountUFP, error) {
	v, err := floatToUIntScaled(f, ufpFracBits)
	return AmountUFP{v}, err
}
func (a AmountUFP) Float() Float { return uintScaledToFloat(a.v, ufpFracBits) }
func (a AmountUFP) Add(b AmountUFP) AmountUFP {
	return AmountUFP{a.v.Add(b.v)}
}
func (a AmountUFP) Sub(b AmountUFP) (AmountUFP, error) {
	if a.v.Cmp(b.v) < 0 {
		return AmountUFP{}, ErrOverflow
	}
	return AmountUFP{a.v.Sub(b.v)}, nil
}
func (a AmountUFP) IsZero() bool     { return a.v.IsZero() }
func (a AmountUFP) Cmp(b AmountUFP) int { return a.v.Cmp(b.v) }
func AmountUFPZero() AmountUFP       { return AmountUFP{} }

func NetLiquidityUFPFromFloat(f Float) (NetLiquidityUFP, error) {
	v, err := floatToUIntScaled(f, ufpFracBits)
	return NetLiquidityUFP{v}, err
}
func (a NetLiquidityUFP) Float() Float { return uintScaledToFloat(a.v, ufpFracBits) }
func (a NetLiquidityUFP) Add(b NetLiquidityUFP) NetLiquidityUFP {
	return NetLiquidityUFP{a.v.Add(b.v)}
}
func (a NetLiquidityUFP) Sub(b NetLiquidityUFP) (NetLiquidityUFP, error) {
	if a.v.Cmp(b.v) < 0 {
		return NetLiquidityUFP{}, ErrOverflow
	}
	return NetLiquidityUFP{a.v.Sub(b.v)}, nil
}
func (a NetLiquidityUFP) IsZero() bool        { return a.v.IsZero() }
func (a NetLiquidityUFP) Cmp(b NetLiquidityUFP) int { return a.v.Cmp(b.v) }
func NetLiquidityUFPZero() NetLiquidityUFP    { return NetLiquidityUFP{} }

func GrossLiquidityUFPFromFloat(f Float) (GrossLiquidityUFP, error) {
	v, err := floatToUIntScaled(f, ufpFracBits)
	return GrossLiquidityUFP{v}, err
}
func (a GrossLiquidityUFP) Float() Float { return uintScaledToFloat(a.v, ufpFracBits) }
func (a GrossLiquidityUFP) Add(b GrossLiquidityUFP) GrossLiquidityUFP {
	return GrossLiquidityUFP{a.v.Add(b.v)}
}

func FeeLiquidityUFPFromFloat(f Float) (FeeLiquidityUFP, error) {
	v, err := floatToUIntScaled(f, ufpFracBits)
	return FeeLiquidityUFP{v}, err
}
func (a FeeLiquidityUFP) Float() Float { return uintScaledToFloat(a.v, ufpFracBits) }

// AmountSFP, LiquiditySFP and LPFeePerFeeLiquidity are signed fixed-point
// values represented as a magnitude/sign pair rather than two's complement,
// matching the numeric layer's contract.
type AmountSFP struct {
	Mag AmountUFP
	Neg bool
}

func (s AmountSFP) Add(o AmountSFP) AmountSFP {
	if s.Neg == o.Neg {
		return AmountSFP{s.Mag.Add(o.Mag), s.Neg}
	}
	if s.Mag.Cmp(o.Mag) >= 0 {
		m, _ := s.Mag.Sub(o.Mag)
		return AmountSFP{m, s.Neg}
	}
	m, _ := o.Mag.Sub(s.Mag)
	return AmountSFP{m, o.Neg}
}

func (s AmountSFP) Negate() AmountSFP {
	if s.Mag.IsZero() {
		return s
	}
	return AmountSFP{s.Mag, !s.Neg}
}

type LiquiditySFP struct {
	Mag NetLiquidityUFP
	Neg bool
}

func (s LiquiditySFP) Negate() LiquiditySFP {
	if s.Mag.IsZero() {
		return s
	}
	return LiquiditySFP{s.Mag, !s.Neg}
}

func (s LiquiditySFP) Add(o LiquiditySFP) LiquiditySFP {
	if s.Neg == o.Neg {
		return LiquiditySFP{s.Mag.Add(o.Mag), s.Neg}
	}
	if s.Mag.Cmp(o.Mag) >= 0 {
		m, _ := s.Mag.Sub(o.Mag)
		return LiquiditySFP{m, s.Neg}
	}
	m, _ := o.Mag.Sub(s.Mag)
	return LiquiditySFP{m, o.Neg}
}

// LPFeePerFeeLiquidity is the fee-growth accumulator unit: fee collected
// per unit of fee liquidity, signed so that per-tick "outside" accounting
// can represent growth that has not yet crossed a boundary.
type LPFeePerFeeLiquidity struct {
	Mag FeeLiquidityGrowthUFP
	Neg bool
}

// FeeLiquidityGrowthUFP is the unsigned magnitude backing
// LPFeePerFeeLiquidity; kept distinct from FeeLiquidityUFP because it
// accumulates across the whole lifetime of a pool rather than describing a
// single position's liquidity.
type FeeLiquidityGrowthUFP struct{ v UInt }

func FeeLiquidityGrowthUFPFromFloat(f Float) (FeeLiquidityGrowthUFP, error) {
	v, err := floatToUIntScaled(f, ufpFracBits)
	return FeeLiquidityGrowthUFP{v}, err
}
func (a FeeLiquidityGrowthUFP) Float() Float { return uintScaledToFloat(a.v, ufpFracBits) }
func (a FeeLiquidityGrowthUFP) Add(b FeeLiquidityGrowthUFP) FeeLiquidityGrowthUFP {
	return FeeLiquidityGrowthUFP{a.v.Add(b.v)}
}
func (a FeeLiquidityGrowthUFP) Sub(b FeeLiquidityGrowthUFP) (FeeLiquidityGrowthUFP, error) {
	if a.v.Cmp(b.v) < 0 {
		return FeeLiquidityGrowthUFP{}, ErrOverflow
	}
	return FeeLiquidityGrowthUFP{a.v.Sub(b.v)}, nil
}
func (a FeeLiquidityGrowthUFP) Cmp(b FeeLiquidityGrowthUFP) int { return a.v.Cmp(b.v) }
func (a FeeLiquidityGrowthUFP) IsZero() bool                    { return a.v.IsZero() }

func (s LPFeePerFeeLiquidity) Add(o LPFeePerFeeLiquidity) LPFeePerFeeLiquidity {
	if s.Neg == o.Neg {
		return LPFeePerFeeLiquidity{s.Mag.Add(o.Mag), s.Neg}
	}
	if s.Mag.Cmp(o.Mag) >= 0 {
		m, _ := s.Mag.Sub(o.Mag)
		return LPFeePerFeeLiquidity{m, s.Neg}
	}
	m, _ := o.Mag.Sub(s.Mag)
	return LPFeePerFeeLiquidity{m, o.Neg}
}

func (s LPFeePerFeeLiquidity) Sub(o LPFeePerFeeLiquidity) LPFeePerFeeLiquidity {
	return s.Add(o.Negate())
}

func (s LPFeePerFeeLiquidity) Negate() LPFeePerFeeLiquidity {
	if s.Mag.IsZero() {
		return s
	}
	return LPFeePerFeeLiquidity{s.Mag, !s.Neg}
}

// LongestUFP is the widest unsigned fixed-point type (128 fractional
// bits), used only as an intermediate in the opening-price quadratic
// solve where products of UFP values would otherwise overflow.
// cosmossdk.io/math.Int supplies arbitrary-precision backing, the same
// library the rest of the module uses for canonical on-chain amounts.
type LongestUFP struct{ v math.Int }

const longestFracBits = 128

func LongestUFPFromFloat(f Float) (LongestUFP, error) {
	bi, err := floatToBigIntScaled(f, longestFracBits)
	if err != nil {
		return LongestUFP{}, err
	}
	return LongestUFP{math.NewIntFromBigInt(bi)}, nil
}

func (l LongestUFP) Float() Float {
	return floatFromBigIntScaled(l.v.BigInt(), longestFracBits)
}

func (l LongestUFP) Add(o LongestUFP) LongestUFP { return LongestUFP{l.v.Add(o.v)} }
func (l LongestUFP) Sub(o LongestUFP) LongestUFP { return LongestUFP{l.v.Sub(o.v)} }

// Mul multiplies two 128-fractional-bit values; the raw product carries 256
// fractional bits, so the result is rescaled back down to 128 before
// wrapping it back into a LongestUFP.
func (l LongestUFP) Mul(o LongestUFP) LongestUFP {
	product := new(big.Int).Mul(l.v.BigInt(), o.v.BigInt())
	product.Rsh(product, longestFracBits)
	return LongestUFP{math.NewIntFromBigInt(product)}
}
func (l LongestUFP) Cmp(o LongestUFP) int { return l.v.BigInt().Cmp(o.v.BigInt()) }
func (l LongestUFP) IsZero() bool         { return l.v.IsNil() || l.v.IsZero() }

// Sqrt returns the fixed-point square root, computed via big.Int.Sqrt on
// the value pre-shifted left by the fractional width so the result still
// carries 128 fractional bits.
func (l LongestUFP) Sqrt() LongestUFP {
	shifted := new(big.Int).Lsh(l.v.BigInt(), longestFracBits)
	root := new(big.Int).Sqrt(shifted)
	return LongestUFP{math.NewIntFromBigInt(root)}
}

// LongestSFP pairs a LongestUFP magnitude with a sign, used for the
// discriminant term in the opening-price quadratic solve.
type LongestSFP struct {
	Mag LongestUFP
	Neg bool
}

func (s LongestSFP) Add(o LongestSFP) LongestSFP {
	if s.Neg == o.Neg {
		return LongestSFP{s.Mag.Add(o.Mag), s.Neg}
	}
	if s.Mag.Cmp(o.Mag) >= 0 {
		return LongestSFP{s.Mag.Sub(o.Mag), s.Neg}
	}
	return LongestSFP{o.Mag.Sub(s.Mag), o.Neg}
}

func (s LongestSFP) Negate() LongestSFP {
	if s.Mag.IsZero() {
		return s
	}
	return LongestSFP{s.Mag, !s.Neg}
}
