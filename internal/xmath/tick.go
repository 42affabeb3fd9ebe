package xmath

import (
	"math"

	"cosmossdk.io/errors"
)

// MinTick and MaxTick bound the valid range of a Tick. The range is
// symmetric and limited by the width of the precomputed sqrtprice table:
// with 21 entries (k=0..20) the largest representable |T| by summing set
// bits is 2^21-1.
const (
	MinTick = -(1<<21 - 1)
	MaxTick = 1<<21 - 1
)

// NumPrecalculatedTicks is the width of the precomputed base^(2^k) table.
const NumPrecalculatedTicks = 21

// precalculatedTicks holds base^(2^k) for k = 0..20, base = sqrt(1.0001),
// as raw binary64 bit patterns so every host loads the identical value
// regardless of the host's decimal-to-float parsing.
var precalculatedTicks = [NumPrecalculatedTicks]uint64{
	4607182643974369558,
	4607182869159980145,
	4607183319564978878,
	4607184220510102349,
	4607186022940979433,
	4607189629966263589,
	4607196852679033204,
	4607211332818125533,
	4607240432470062669,
	4607299193450302128,
	4607418995971640537,
	4607668000704051496,
	4608205938457857923,
	4609462070376259803,
	4612290832146940624,
	4617480469329378893,
	4628148512120721768,
	4649381992504848318,
	4692198734602598674,
	4777248888797670312,
	4947442543280771895,
}

func precalculatedTick(k int) Float { return Float{math.Float64frombits(precalculatedTicks[k])} }

// Base is sqrt(1.0001), the geometric step between adjacent ticks.
func Base() Float { return precalculatedTick(0) }

var ErrPriceTickOutOfBounds = errors.Register("xmath", 1, "price tick out of bounds")

// Tick is a validated integer index into the geometric grid of spot
// sqrtprices.
type Tick struct{ index int32 }

func NewTick(value int32) (Tick, error) {
	if value < MinTick || value > MaxTick {
		return Tick{}, ErrPriceTickOutOfBounds
	}
	return Tick{value}, nil
}

// NewTickUnchecked is used only where the value is already known valid
// (e.g. derived from a previously-validated EffTick).
func NewTickUnchecked(value int32) Tick { return Tick{value} }

func (t Tick) Index() int32 { return t.index }

func (t Tick) Opposite() Tick { return Tick{-t.index} }

// SpotSqrtprice returns base^T by multiplying the precomputed table
// entries selected by the set bits of |T|, reciprocating for negative T.
func (t Tick) SpotSqrtprice() Float {
	abs := t.index
	if abs < 0 {
		abs = -abs
	}
	result := One()
	any := false
	for k := 0; k < NumPrecalculatedTicks; k++ {
		if abs&(1<<uint(k)) != 0 {
			if !any {
				result = precalculatedTick(k)
				any = true
			} else {
				result = result.Mul(precalculatedTick(k))
			}
		}
	}
	// Bits above the table's top entry, reachable only by an effective tick
	// beyond MaxTick, each contribute that entry squared.
	top := precalculatedTick(NumPrecalculatedTicks - 1)
	for n := abs >> NumPrecalculatedTicks; n > 0; n-- {
		if !any {
			result = top.Mul(top)
			any = true
		} else {
			result = result.Mul(top).Mul(top)
		}
	}
	if !any {
		return One()
	}
	if t.index < 0 {
		return One().Quo(result)
	}
	return result
}

// EffSqrtprice delegates to EffTick for the given fee level and side.
func (t Tick) EffSqrtprice(level FeeLevel, side Side) Float {
	return EffTickFromTick(t, level, side).EffSqrtprice()
}
