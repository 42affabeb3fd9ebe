package clamm

import (
	"github.com/dx25labs/clamm-core/internal/xmath"
	"github.com/dx25labs/clamm-core/types"
)

// maxSwapSteps bounds the tick-crossing loop; a real book never has enough
// initialized ticks within one swap to approach this, it exists only to
// keep a malformed tick map from looping forever.
const maxSwapSteps = 4096

// currentEffSqrtprice reads the swap side's effective price at the pool's
// top active fee level, the level every step's price shift is measured
// against.
func (p *Pool) currentEffSqrtprice(side types.Side) xmath.Float {
	eff := p.State.EffSqrtpricesByLevel[p.State.TopActiveLevel]
	if side == types.Left {
		return eff.Left
	}
	return eff.Right
}

func (p *Pool) setCurrentEffSqrtprice(side types.Side, v xmath.Float) {
	level := p.State.TopActiveLevel
	eff := p.State.EffSqrtpricesByLevel[level]
	if side == types.Left {
		eff.Left = v
	} else {
		eff.Right = v
	}
	p.State.EffSqrtpricesByLevel[level] = eff
	// The pool's shared spot price is the level's price with its fixed
	// fee-spread offset removed; Left and Right are reciprocal views of it.
	if side == types.Left {
		p.State.SpotSqrtprice = v.Quo(xmath.Tick{}.EffSqrtprice(level, xmath.Left))
	} else {
		p.State.SpotSqrtprice = xmath.One().Quo(v.Quo(xmath.Tick{}.EffSqrtprice(level, xmath.Right)))
	}
}

// outputForShift returns the amount realized on the opposite side of the
// swap for a price move from cur to next, both measured in the swap side's
// effective-sqrtprice units, at constant gross liquidity.
func outputForShift(cur, next, sumGross xmath.Float) xmath.Float {
	return sumGross.Mul(xmath.One().Quo(cur).Sub(xmath.One().Quo(next)))
}

// recordFeeGrowth applies the protocol-fee cut to a step's raw price
// movement, credits the top active level's per-liquidity shift accumulator
// with the LP's share, and adds the corresponding Amount to acc_lp_fee.
func (p *Pool) recordFeeGrowth(side types.Side, shift xmath.Float) {
	if shift.IsZero() || shift.Sign() < 0 {
		return
	}
	lpShare := xmath.One().Sub(p.Params.GetProtocolFeeFraction())
	lpShift := shift.Mul(lpShare)

	growth, err := xmath.FeeLiquidityGrowthUFPFromFloat(lpShift)
	if err != nil {
		return
	}
	p.incAccLPFeePerFeeLiquidity(side, p.State.TopActiveLevel, xmath.LPFeePerFeeLiquidity{Mag: growth})

	feeAmount, err := xmath.AmountUFPFromFloat(lpShift.Mul(p.activeFeeLiquidity()))
	if err != nil {
		return
	}
	p.accumulateLPFee(side, feeAmount)
}

// stepBoundary is what caps a single swap step short of its unconstrained
// target: a fee-level activation, a tick crossing, or neither (the step
// reaches target unobstructed).
type stepBoundary struct {
	price           xmath.Float
	levelActivation bool
	tick            xmath.Tick
	hasTick         bool
}

func (b stepBoundary) capped() bool { return b.levelActivation || b.hasTick }

// resolveStepBoundary finds whichever of a level-activation threshold or a
// tick-crossing threshold the step's unconstrained target would overshoot,
// checking level activation first per the control loop's check order.
func (p *Pool) resolveStepBoundary(side types.Side, target xmath.Float) stepBoundary {
	level := p.State.TopActiveLevel
	if level+1 < xmath.NumFeeLevels {
		cur := p.currentEffSqrtprice(side)
		nextLevel := level + 1
		levelPrice := cur.Mul(xmath.Tick{}.EffSqrtprice(nextLevel, side)).Quo(xmath.Tick{}.EffSqrtprice(level, side))
		if levelPrice.Le(target) {
			return stepBoundary{price: levelPrice, levelActivation: true}
		}
	}
	if tick, ok := p.nextActiveTick(level, side); ok {
		tickPrice := tick.EffSqrtprice(level, side)
		if tickPrice.Le(target) {
			return stepBoundary{price: tickPrice, tick: tick, hasTick: true}
		}
	}
	return stepBoundary{}
}

// runExactIn drives the pool forward by exactly amountIn on the given side,
// stepping across tick boundaries as needed, and returns the realized
// output.
func (p *Pool) runExactIn(side types.Side, amountIn xmath.Float) (xmath.Float, error) {
	remaining := amountIn
	totalOut := xmath.Zero()

	for step := 0; step < maxSwapSteps && remaining.Sign() > 0; step++ {
		sumGross := p.activeGrossLiquidity()
		if sumGross.IsZero() {
			return totalOut, types.ErrInsufficientLiquidity
		}
		cur := p.currentEffSqrtprice(side)
		target := xmath.EvalRequiredNewEffSqrtpriceExactIn(cur, remaining, sumGross)
		boundary := p.resolveStepBoundary(side, target)

		if !boundary.capped() {
			totalOut = totalOut.Add(outputForShift(cur, target, sumGross))
			p.recordFeeGrowth(side, target.Sub(cur))
			p.setCurrentEffSqrtprice(side, target)
			remaining = xmath.Zero()
			break
		}

		consumed := boundary.price.Sub(cur).Mul(sumGross)
		totalOut = totalOut.Add(outputForShift(cur, boundary.price, sumGross))
		p.recordFeeGrowth(side, boundary.price.Sub(cur))
		p.setCurrentEffSqrtprice(side, boundary.price)
		remaining = remaining.Sub(consumed)
		if remaining.Sign() < 0 {
			remaining = xmath.Zero()
		}
		if boundary.levelActivation {
			p.activateNextLevel()
		} else {
			p.crossTick(boundary.tick, side)
		}
	}
	return totalOut, nil
}

// runExactOut drives the pool to realize exactly amountOut on the opposite
// side of the swap, returning the amount actually taken in.
func (p *Pool) runExactOut(side types.Side, amountOut xmath.Float) (xmath.Float, error) {
	remaining := amountOut
	totalIn := xmath.Zero()

	for step := 0; step < maxSwapSteps && remaining.Sign() > 0; step++ {
		sumGross := p.activeGrossLiquidity()
		if sumGross.IsZero() {
			return totalIn, types.ErrInsufficientLiquidity
		}
		cur := p.currentEffSqrtprice(side)
		target, err := xmath.EvalRequiredNewEffSqrtpriceExactOut(cur, remaining, sumGross)
		if err != nil {
			return totalIn, err
		}
		boundary := p.resolveStepBoundary(side, target)

		if !boundary.capped() {
			totalIn = totalIn.Add(target.Sub(cur).Mul(sumGross))
			p.recordFeeGrowth(side, target.Sub(cur))
			p.setCurrentEffSqrtprice(side, target)
			remaining = xmath.Zero()
			break
		}

		outAtBoundary := outputForShift(cur, boundary.price, sumGross)
		totalIn = totalIn.Add(boundary.price.Sub(cur).Mul(sumGross))
		p.recordFeeGrowth(side, boundary.price.Sub(cur))
		p.setCurrentEffSqrtprice(side, boundary.price)
		remaining = remaining.Sub(outAtBoundary)
		if remaining.Sign() < 0 {
			remaining = xmath.Zero()
		}
		if boundary.levelActivation {
			p.activateNextLevel()
		} else {
			p.crossTick(boundary.tick, side)
		}
	}
	return totalIn, nil
}

// SwapExactIn consumes exactly amountIn, enforcing a minimum output.
func (p *Pool) SwapExactIn(side types.Side, amountIn, minOut types.Amount) (types.Amount, error) {
	if p.State.IsEmpty() {
		return types.Amount{}, types.ErrInsufficientLiquidity
	}
	p.applyDirectionFlip(side)
	out, err := p.runExactIn(side, amountToFloat(amountIn))
	if err != nil {
		return types.Amount{}, err
	}
	outAmt, err := types.AmountFromFloatFloor(out)
	if err != nil {
		return types.Amount{}, err
	}
	if outAmt.Cmp(minOut) < 0 {
		return types.Amount{}, types.ErrSlippage
	}
	p.settleSwapReserves(side, amountIn, outAmt)
	return outAmt, nil
}

// SwapExactOut realizes exactly amountOut, enforcing a maximum input.
func (p *Pool) SwapExactOut(side types.Side, amountOut, maxIn types.Amount) (types.Amount, error) {
	if p.State.IsEmpty() {
		return types.Amount{}, types.ErrInsufficientLiquidity
	}
	p.applyDirectionFlip(side)
	in, err := p.runExactOut(side, amountToFloat(amountOut))
	if err != nil {
		return types.Amount{}, err
	}
	inAmt, err := types.AmountFromFloatCeil(in)
	if err != nil {
		return types.Amount{}, err
	}
	if inAmt.Cmp(maxIn) > 0 {
		return types.Amount{}, types.ErrSlippage
	}
	p.settleSwapReserves(side, inAmt, amountOut)
	return inAmt, nil
}

// SwapToPrice drives the pool to effPriceLimit on the given side, capped by
// maxIn, and returns the amount actually taken in and realized out.
func (p *Pool) SwapToPrice(side types.Side, effPriceLimit xmath.Float, maxIn types.Amount) (types.Amount, types.Amount, error) {
	if p.State.IsEmpty() {
		return types.Amount{}, types.Amount{}, types.ErrInsufficientLiquidity
	}
	p.applyDirectionFlip(side)
	cur := p.currentEffSqrtprice(side)
	if effPriceLimit.Le(cur) {
		return types.ZeroAmount(), types.ZeroAmount(), nil
	}
	capIn := amountToFloat(maxIn)

	remainingShift := effPriceLimit.Sub(cur)
	sumGross := p.activeGrossLiquidity()
	if sumGross.IsZero() {
		return types.Amount{}, types.Amount{}, types.ErrInsufficientLiquidity
	}
	neededIn := remainingShift.Mul(sumGross)
	if neededIn.Gt(capIn) {
		neededIn = capIn
	}

	out, err := p.runExactIn(side, neededIn)
	if err != nil {
		return types.Amount{}, types.Amount{}, err
	}
	inAmt, err := types.AmountFromFloatCeil(neededIn)
	if err != nil {
		return types.Amount{}, types.Amount{}, err
	}
	outAmt, err := types.AmountFromFloatFloor(out)
	if err != nil {
		return types.Amount{}, types.Amount{}, err
	}
	p.settleSwapReserves(side, inAmt, outAmt)
	return inAmt, outAmt, nil
}

func (p *Pool) settleSwapReserves(side types.Side, in, out types.Amount) {
	if side == types.Left {
		p.State.TotalReserves.Left = p.State.TotalReserves.Left.Add(in)
		p.State.TotalReserves.Right = p.State.TotalReserves.Right.Sub(out)
	} else {
		p.State.TotalReserves.Right = p.State.TotalReserves.Right.Add(in)
		p.State.TotalReserves.Left = p.State.TotalReserves.Left.Sub(out)
	}
}
