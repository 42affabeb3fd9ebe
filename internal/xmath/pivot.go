package xmath

import (
	"math"

	"cosmossdk.io/errors"
)

var ErrInternalLogicError = errors.Register("xmath", 2, "internal logic error")

// distMin and distMax bound the acceptable "distance" (expressed as a
// ratio) between a pivot's spot sqrtprice and the target effective
// sqrtprice: +/- 0.625 ticks, tight enough for bounded-error inversion.
var (
	distMin = Float{math.Float64frombits(0x3FEF_FFBE_77E2_8A1D)}
	distMax = Float{math.Float64frombits(0x3FF0_0020_C451_D518)}
)

const maxApproximateLogIndex = 12

var (
	maxApproximateLog = precalculatedTick(maxApproximateLogIndex)
	minApproximateLog = Float{math.Float64frombits(0x3FEA_12FE_77BF_A405)}
)

// EffSqrtpriceOppositeSide computes the opposite-side effective sqrtprice
// as (pivot.EffSqrtprice / eff_sqrtprice) * pivot.Opposite(level).EffSqrtprice.
// The identity relies on pivot being at most one tick away from
// eff_sqrtprice.
func EffSqrtpriceOppositeSide(effSqrtprice Float, level FeeLevel, pivot EffTick) Float {
	ratio := pivot.EffSqrtprice().Quo(effSqrtprice)
	return ratio.Mul(pivot.Opposite(level).EffSqrtprice())
}

// FindPivot slides pivot by powers of two (drawn from the precomputed
// table) until its spot sqrtprice is within ~5/8 tick of target, using a
// first-order approximation for small residual distances. Always
// converges; ErrInternalLogicError signals numeric corruption (a required
// zero step).
func FindPivot(initPivot EffTick, target Float) (EffTick, error) {
	pivot := initPivot
	for {
		distanceFactor := target.Quo(pivot.EffSqrtprice())

		if distMin.Lt(distanceFactor) && distanceFactor.Lt(distMax) {
			return pivot, nil
		}

		var stepTicks int32
		switch {
		case distanceFactor.Gt(maxApproximateLog):
			k := rposition(distanceFactor)
			stepTicks = 1 << uint(k)
		case distanceFactor.Lt(minApproximateLog):
			k := rposition(One().Quo(distanceFactor))
			stepTicks = -(1 << uint(k))
		default:
			ratio := distanceFactor.Sub(One()).Quo(Base().Sub(One()))
			stepTicks = int32(math.Round(ratio.Float64()))
			if stepTicks > (1 << maxApproximateLogIndex) {
				stepTicks = 1 << maxApproximateLogIndex
			}
			if stepTicks < -(1 << maxApproximateLogIndex) {
				stepTicks = -(1 << maxApproximateLogIndex)
			}
			if lo := MinEffTick - pivot.Index(); stepTicks < lo {
				stepTicks = lo
			}
			if hi := MaxEffTick - pivot.Index(); stepTicks > hi {
				stepTicks = hi
			}
		}

		if stepTicks == 0 {
			return EffTick{}, ErrInternalLogicError
		}

		next, err := pivot.Shifted(stepTicks)
		if err != nil {
			return EffTick{}, err
		}
		pivot = next
	}
}

// rposition returns the largest table index k such that value is at least
// the k-th precomputed entry; always succeeds for the callers here because
// value already exceeds the table's last approximation boundary.
func rposition(value Float) int {
	best := 0
	for k := 0; k < NumPrecalculatedTicks; k++ {
		if value.Ge(precalculatedTick(k)) {
			best = k
		}
	}
	return best
}
