package clamm

import (
	"github.com/dx25labs/clamm-core/internal/xmath"
	"github.com/dx25labs/clamm-core/types"
)

// feeGrowthInside computes the fee-per-fee-liquidity accrued strictly
// inside [tickLow, tickHigh) at a fee level, via the same
// below/above-subtracted-from-global construction Uniswap-v3-style engines
// use, generalized to this engine's signed LPFeePerFeeLiquidity type.
func (p *Pool) feeGrowthInside(level types.FeeLevel, tickLow, tickHigh xmath.Tick) types.FeeGrowthSnapshot {
	global := types.FeeGrowthSnapshot{
		Left:  p.accLPFeePerFeeLiquidityAt(level, types.Left),
		Right: p.accLPFeePerFeeLiquidityAt(level, types.Right),
	}
	currentEff := p.State.Pivot
	if !p.State.SpotSqrtprice.IsZero() {
		if found, err := xmath.FindPivot(currentEff, p.State.SpotSqrtprice); err == nil {
			currentEff = found
		}
	}
	current := xmath.NewTickUnchecked(currentEff.Index())
	m := p.tickMap(level)

	lowOutside, _ := m.Inspect(tickLow)
	highOutside, _ := m.Inspect(tickHigh)

	var belowLeft, belowRight xmath.LPFeePerFeeLiquidity
	if current.Index() >= tickLow.Index() {
		belowLeft, belowRight = lowOutside.AccLPFeesPerFeeLiquidityOutside.Left, lowOutside.AccLPFeesPerFeeLiquidityOutside.Right
	} else {
		belowLeft = global.Left.Sub(lowOutside.AccLPFeesPerFeeLiquidityOutside.Left)
		belowRight = global.Right.Sub(lowOutside.AccLPFeesPerFeeLiquidityOutside.Right)
	}

	var aboveLeft, aboveRight xmath.LPFeePerFeeLiquidity
	if current.Index() < tickHigh.Index() {
		aboveLeft, aboveRight = highOutside.AccLPFeesPerFeeLiquidityOutside.Left, highOutside.AccLPFeesPerFeeLiquidityOutside.Right
	} else {
		aboveLeft = global.Left.Sub(highOutside.AccLPFeesPerFeeLiquidityOutside.Left)
		aboveRight = global.Right.Sub(highOutside.AccLPFeesPerFeeLiquidityOutside.Right)
	}

	return types.FeeGrowthSnapshot{
		Left:  global.Left.Sub(belowLeft).Sub(aboveLeft),
		Right: global.Right.Sub(belowRight).Sub(aboveRight),
	}
}

// signedGrowthToFloat reads a fee-growth delta as a non-negative Float,
// clamping an apparently-negative delta to zero: that can only happen from
// float rounding noise across many accumulated crossings, never from a
// real fee going backwards.
func signedGrowthToFloat(s xmath.LPFeePerFeeLiquidity) xmath.Float {
	if s.Neg {
		return xmath.Zero()
	}
	return s.Mag.Float()
}

// settleFee computes the fee owed to a position since its last snapshot,
// without mutating pool or position state; callers decide whether to fold
// the result into a withdrawal or a close.
func (p *Pool) settleFee(pos types.Position) (types.Amount, types.Amount) {
	inside := p.feeGrowthInside(pos.FeeLevel, pos.TickBounds.Low, pos.TickBounds.High)
	deltaLeft := inside.Left.Sub(pos.UnwithdrawnAccLPFeesPerFeeLiquidity.Left)
	deltaRight := inside.Right.Sub(pos.UnwithdrawnAccLPFeesPerFeeLiquidity.Right)

	feeLiquidity := xmath.FeeLiquidityFromNetLiquidity(pos.NetLiquidity, pos.FeeLevel).Float()
	owedLeftF := feeLiquidity.Mul(signedGrowthToFloat(deltaLeft))
	owedRightF := feeLiquidity.Mul(signedGrowthToFloat(deltaRight))

	owedLeft, err := types.AmountFromFloatFloor(owedLeftF)
	if err != nil {
		owedLeft = types.ZeroAmount()
	}
	owedRight, err := types.AmountFromFloatFloor(owedRightF)
	if err != nil {
		owedRight = types.ZeroAmount()
	}
	return owedLeft, owedRight
}

// WithdrawFee harvests a position's accrued fee without touching its
// principal, advancing the position's fee-growth snapshot to the current
// inside value so the same fee is never paid out twice.
func (p *Pool) WithdrawFee(id types.PositionID) (types.Amount, types.Amount, error) {
	pos, ok := p.State.Positions[id]
	if !ok {
		return types.Amount{}, types.Amount{}, types.PositionNotFoundError{PositionID: uint64(id)}
	}
	left, right := p.settleFee(pos)
	pos.UnwithdrawnAccLPFeesPerFeeLiquidity = p.feeGrowthInside(pos.FeeLevel, pos.TickBounds.Low, pos.TickBounds.High)
	p.State.Positions[id] = pos

	p.State.TotalReserves.Left = p.State.TotalReserves.Left.Sub(left)
	p.State.TotalReserves.Right = p.State.TotalReserves.Right.Sub(right)
	p.State.AccLPFee.Left = p.State.AccLPFee.Left.Sub(left)
	p.State.AccLPFee.Right = p.State.AccLPFee.Right.Sub(right)
	return left, right, nil
}
