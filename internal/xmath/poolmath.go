package xmath

import "cosmossdk.io/errors"

var (
	ErrOverflowConv = errors.Register("xmath", 3, "conversion overflow")
)

// FeeRate returns the fee-level's fraction as a Float, derived from
// OneOverOneMinusFeeRate the same way the tier's half-spread is derived
// from a tick lookup.
func FeeRate(level FeeLevel) Float {
	inv := OneOverOneMinusFeeRate(level)
	return inv.Sub(One()).Quo(inv)
}

// OneOverSqrtOneMinusFeeRate is 1/sqrt(1-fee_rate) for a fee level; this is
// the quantity the tier's half-spread tick distance actually encodes.
func OneOverSqrtOneMinusFeeRate(level FeeLevel) Float {
	return Tick{FeeRateTicks(level)}.SpotSqrtprice()
}

// OneOverOneMinusFeeRate is 1/(1-fee_rate) for a fee level.
func OneOverOneMinusFeeRate(level FeeLevel) Float {
	return Tick{2 * FeeRateTicks(level)}.SpotSqrtprice()
}

// GrossLiquidityFromNetLiquidity converts net liquidity to gross liquidity
// for a fee level: net_liquidity / sqrt(1-fee_rate).
func GrossLiquidityFromNetLiquidity(net NetLiquidityUFP, level FeeLevel) GrossLiquidityUFP {
	v, _ := GrossLiquidityUFPFromFloat(net.Float().Mul(OneOverSqrtOneMinusFeeRate(level)))
	return v
}

// FeeLiquidityFromNetLiquidity converts net liquidity to fee liquidity for
// a fee level: net_liquidity * fee_rate/(1-fee_rate).
func FeeLiquidityFromNetLiquidity(net NetLiquidityUFP, level FeeLevel) FeeLiquidityUFP {
	feeOverOneMinusFeeRate := OneOverOneMinusFeeRate(level).Sub(One())
	v, _ := FeeLiquidityUFPFromFloat(net.Float().Mul(feeOverOneMinusFeeRate))
	return v
}

// EvalInitialEffSqrtprice solves for the opening effective sqrtprice when a
// position is opened into an empty pool and both amounts are positive: the
// quadratic a*p^2+b*p-c=0 derived from equating the liquidity implied by
// each token, picking whichever of the two algebraically equivalent forms
// keeps the b term negative for numerical stability.
func EvalInitialEffSqrtprice(amountLeft, amountRight Float, tickLow, tickHigh Tick, level FeeLevel) (Float, Side, error) {
	effSqrtpriceLowLeft := tickLow.EffSqrtprice(level, Left)
	effSqrtpriceLowRight := tickHigh.EffSqrtprice(level, Right)

	isEvalLeft := amountLeft.Mul(effSqrtpriceLowRight).Le(amountRight.Mul(effSqrtpriceLowLeft))

	var amountRatio Float
	if isEvalLeft {
		amountRatio = amountLeft.Quo(amountRight)
	} else {
		amountRatio = amountRight.Quo(amountLeft)
	}

	var minusBTerm LongestSFP
	var oneOverOneMinusFeeRateTerm Float
	if isEvalLeft {
		left, err := LongestUFPFromFloat(effSqrtpriceLowLeft)
		if err != nil {
			return Float{}, 0, ErrInternalLogicError
		}
		prod := amountRatio.Mul(effSqrtpriceLowRight)
		right, err := LongestUFPFromFloat(prod)
		if err != nil {
			right = LongestUFP{}
		}
		minusBTerm = LongestSFP{Mag: left, Neg: false}.Add(LongestSFP{Mag: right, Neg: true})
		oneOverOneMinusFeeRateTerm = effSqrtpriceLowLeft.Mul(tickLow.EffSqrtprice(level, Right))
	} else {
		right, err := LongestUFPFromFloat(effSqrtpriceLowRight)
		if err != nil {
			return Float{}, 0, ErrInternalLogicError
		}
		prod := amountRatio.Mul(effSqrtpriceLowLeft)
		left, err := LongestUFPFromFloat(prod)
		if err != nil {
			left = LongestUFP{}
		}
		minusBTerm = LongestSFP{Mag: right, Neg: false}.Add(LongestSFP{Mag: left, Neg: true})
		oneOverOneMinusFeeRateTerm = effSqrtpriceLowRight.Mul(tickHigh.EffSqrtprice(level, Left))
	}

	minusB := minusBTerm.Mag
	if minusBTerm.Neg {
		minusB = LongestUFP{}
	}

	minusFourAC, err := LongestUFPFromFloat(FromFloat64(4).Mul(amountRatio).Mul(oneOverOneMinusFeeRateTerm))
	if err != nil {
		return Float{}, 0, ErrInternalLogicError
	}

	discriminant := minusB.Mul(minusB).Add(minusFourAC)
	root := discriminant.Sqrt().Add(minusB)
	effSqrtprice := root.Float().NextUp().Mul(FromFloat64(0.5))

	var side Side
	if isEvalLeft {
		if effSqrtprice.Lt(effSqrtpriceLowLeft) {
			return Float{}, 0, ErrInternalLogicError
		}
		side = Left
	} else {
		if effSqrtprice.Lt(effSqrtpriceLowRight) {
			return Float{}, 0, ErrInternalLogicError
		}
		side = Right
	}
	return effSqrtprice, side, nil
}

// EvalRequiredNewEffSqrtpriceExactIn evaluates the new effective sqrtprice
// assuming constant active liquidity (no tick crossings, no level
// activations) for an exact-in swap step.
func EvalRequiredNewEffSqrtpriceExactIn(currentEffSqrtprice, amountIn, sumGrossLiquidities Float) Float {
	if sumGrossLiquidities.IsZero() {
		return MaxFloat()
	}
	shift := amountIn.Quo(sumGrossLiquidities)
	var next Float
	if currentEffSqrtprice.Gt(shift) {
		next = currentEffSqrtprice.NextDown().Add(shift)
	} else {
		next = currentEffSqrtprice.Add(shift.NextDown())
	}
	if next.Lt(currentEffSqrtprice) {
		return currentEffSqrtprice
	}
	return next
}

// EvalRequiredNewEffSqrtpriceExactOut is the exact-out counterpart,
// working in inverse-sqrtprice space: the inverse moves strictly downward,
// so the returned effective sqrtprice is strictly greater than the input.
func EvalRequiredNewEffSqrtpriceExactOut(effSqrtprice, amountOut, sumGrossLiquidities Float) (Float, error) {
	if sumGrossLiquidities.IsZero() {
		return MaxFloat(), nil
	}

	inverse := One().Quo(effSqrtprice)
	requiredShift := amountOut.Quo(sumGrossLiquidities)

	if requiredShift.Ge(inverse.NextDown()) {
		return MaxFloat(), nil
	}

	newInverse := inverse.NextDown().Sub(requiredShift)
	if !newInverse.IsNormal() {
		return Float{}, ErrInternalLogicError
	}

	check := inverse.Sub(newInverse).Mul(sumGrossLiquidities)
	if check.Lt(amountOut) {
		return Float{}, ErrInternalLogicError
	}

	newEffSqrtprice := One().Quo(newInverse).NextUp()
	if up := effSqrtprice.NextUp(); newEffSqrtprice.Lt(up) {
		newEffSqrtprice = up
	}
	if !newEffSqrtprice.Gt(effSqrtprice) {
		return Float{}, ErrInternalLogicError
	}
	return newEffSqrtprice, nil
}
