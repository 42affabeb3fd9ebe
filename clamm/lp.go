package clamm

import (
	"github.com/dx25labs/clamm-core/internal/xmath"
	"github.com/dx25labs/clamm-core/types"
)

// liquidityForAmounts derives the net liquidity a deposit supports, picking
// the regime by where the pool's current spot sqrtprice sits relative to
// the position's tick range: below range only the left amount binds, above
// range only the right, inside range both bind and the tighter one wins.
// This is the same three-regime shape Uniswap-v3-style engines use, adapted
// to this engine's per-side effective sqrtprice convention.
func liquidityForAmounts(spot xmath.Float, tickLow, tickHigh xmath.Tick, level types.FeeLevel, amountLeft, amountRight xmath.Float) xmath.NetLiquidityUFP {
	pa := tickLow.EffSqrtprice(level, xmath.Left)
	pb := tickHigh.EffSqrtprice(level, xmath.Left)
	if pa.Gt(pb) {
		pa, pb = pb, pa
	}

	var liqF xmath.Float
	switch {
	case spot.Le(pa):
		// Entirely left of the range: only the left token binds.
		liqF = amountLeft.Mul(pa).Mul(pb).Quo(pb.Sub(pa))
	case spot.Ge(pb):
		// Entirely right of the range: only the right token binds.
		liqF = amountRight.Quo(pb.Sub(pa))
	default:
		fromLeft := amountLeft.Mul(spot).Mul(pb).Quo(pb.Sub(spot))
		fromRight := amountRight.Quo(spot.Sub(pa))
		if fromLeft.Lt(fromRight) {
			liqF = fromLeft
		} else {
			liqF = fromRight
		}
	}
	liq, err := xmath.NetLiquidityUFPFromFloat(liqF)
	if err != nil {
		return xmath.NetLiquidityUFPZero()
	}
	return liq
}

// amountsForLiquidity is the inverse of liquidityForAmounts: given the
// liquidity actually accounted, what each side owes to realize it.
func amountsForLiquidity(spot xmath.Float, tickLow, tickHigh xmath.Tick, level types.FeeLevel, liq xmath.NetLiquidityUFP) (left, right xmath.Float) {
	pa := tickLow.EffSqrtprice(level, xmath.Left)
	pb := tickHigh.EffSqrtprice(level, xmath.Left)
	if pa.Gt(pb) {
		pa, pb = pb, pa
	}
	l := liq.Float()
	switch {
	case spot.Le(pa):
		left = l.Mul(pb.Sub(pa)).Quo(pa.Mul(pb))
		right = xmath.Zero()
	case spot.Ge(pb):
		left = xmath.Zero()
		right = l.Mul(pb.Sub(pa))
	default:
		left = l.Mul(pb.Sub(spot)).Quo(spot.Mul(pb))
		right = l.Mul(spot.Sub(pa))
	}
	return left, right
}

// OpenPosition validates the requested range, establishes the pool's
// opening price the first time liquidity is ever added, computes the
// accounted net liquidity for the deposit, and updates every piece of
// bookkeeping a new position touches: reserves, tick states (inserting or
// bumping the reference count at each endpoint), and the position's fee
// snapshot.
func (p *Pool) OpenPosition(id types.PositionID, level types.FeeLevel, tickLow, tickHigh xmath.Tick, ranges [2]types.Range) (types.Position, types.EightPoolAmount, error) {
	if tickLow.Index() >= tickHigh.Index() {
		return types.Position{}, types.EightPoolAmount{}, types.ErrInvalidParams
	}
	if int(level) >= p.Params.NumFeeLevels {
		return types.Position{}, types.EightPoolAmount{}, types.ErrIllegalFee
	}

	amountLeftF := amountToFloat(ranges[0].Max)
	amountRightF := amountToFloat(ranges[1].Max)

	wasEmpty := p.State.IsEmpty()
	if wasEmpty {
		eff, side, err := xmath.EvalInitialEffSqrtprice(amountLeftF, amountRightF, tickLow, tickHigh, level)
		if err != nil {
			return types.Position{}, types.EightPoolAmount{}, err
		}
		// eff is the opening effective sqrtprice at this level/side; the
		// pool-wide spot sqrtprice is the same value with the level's
		// fee-spread offset removed.
		spotTickGuess := eff.Quo(xmath.Tick{}.EffSqrtprice(level, xmath.Left))
		if side == xmath.Right {
			spotTickGuess = xmath.One().Quo(eff.Quo(xmath.Tick{}.EffSqrtprice(level, xmath.Right)))
		}
		p.State.SpotSqrtprice = spotTickGuess
		p.State.TopActiveLevel = level
		p.State.ActiveSide = side
		for l := types.FeeLevel(0); l <= level; l++ {
			p.initLevelEffSqrtprice(l)
		}
	} else if int(level) > int(p.State.TopActiveLevel) {
		for l := p.State.TopActiveLevel + 1; l <= level; l++ {
			p.initLevelEffSqrtprice(l)
		}
		p.State.TopActiveLevel = level
	}

	liq := liquidityForAmounts(p.State.SpotSqrtprice, tickLow, tickHigh, level, amountLeftF, amountRightF)
	if liq.Cmp(p.Params.MinNetLiquidity) < 0 {
		return types.Position{}, types.EightPoolAmount{}, types.ErrLiquidityTooSmall
	}
	if liq.Cmp(p.Params.MaxNetLiquidity) > 0 {
		return types.Position{}, types.EightPoolAmount{}, types.ErrLiquidityTooBig
	}

	leftF, rightF := amountsForLiquidity(p.State.SpotSqrtprice, tickLow, tickHigh, level, liq)
	leftAmt, err := types.AmountFromFloatCeil(leftF)
	if err != nil {
		return types.Position{}, types.EightPoolAmount{}, err
	}
	rightAmt, err := types.AmountFromFloatCeil(rightF)
	if err != nil {
		return types.Position{}, types.EightPoolAmount{}, err
	}
	if leftAmt.Cmp(ranges[0].Max) > 0 || rightAmt.Cmp(ranges[1].Max) > 0 {
		return types.Position{}, types.EightPoolAmount{}, types.ErrSlippage
	}
	if leftAmt.Cmp(ranges[0].Min) < 0 || rightAmt.Cmp(ranges[1].Min) < 0 {
		return types.Position{}, types.EightPoolAmount{}, types.ErrSlippage
	}

	snapshot := types.FeeGrowthSnapshot{
		Left:  p.accLPFeePerFeeLiquidityAt(0, types.Left),
		Right: p.accLPFeePerFeeLiquidityAt(0, types.Right),
	}

	p.bumpTick(level, tickLow, liq, false)
	p.bumpTick(level, tickHigh, liq, true)
	p.refreshActiveTickPointers(level)

	p.State.NetLiquidities[level] = p.State.NetLiquidities[level].Add(liq)
	p.State.TotalReserves.Left = p.State.TotalReserves.Left.Add(leftAmt)
	p.State.TotalReserves.Right = p.State.TotalReserves.Right.Add(rightAmt)

	pos := types.Position{
		FeeLevel:                            level,
		NetLiquidity:                        liq,
		InitAccLPFeesPerFeeLiquidity:        snapshot,
		UnwithdrawnAccLPFeesPerFeeLiquidity: snapshot,
		InitSqrtprice:                       p.State.SpotSqrtprice,
		TickBounds:                          types.TickBounds{Low: tickLow, High: tickHigh},
	}
	p.State.Positions[id] = pos

	return pos, types.EightPoolAmount{Left: leftAmt, Right: rightAmt}, nil
}

// bumpTick inserts or updates the tick-state row at tick, adding liq to the
// net-liquidity-change delta (negated at the upper endpoint, since crossing
// it left-to-right removes the position's liquidity) and incrementing the
// reference count.
func (p *Pool) bumpTick(level types.FeeLevel, tick xmath.Tick, liq xmath.NetLiquidityUFP, upper bool) {
	m := p.tickMap(level)
	row, found := m.Inspect(tick)
	if !found {
		row = types.NewTickState()
		row.AccLPFeesPerFeeLiquidityOutside = types.FeeGrowthSnapshot{
			Left:  p.accLPFeePerFeeLiquidityAt(0, types.Left),
			Right: p.accLPFeePerFeeLiquidityAt(0, types.Right),
		}
	}
	delta := xmath.LiquiditySFP{Mag: liq, Neg: upper}
	row.NetLiquidityChange = row.NetLiquidityChange.Add(delta)
	row.ReferenceCounter++
	m.Insert(tick, row)
}

// refreshActiveTickPointers recomputes the next-active-tick pointers for a
// level from scratch around the pool's current spot price. Simpler than
// incrementally patching pointers on every insert, at the cost of an
// O(log n) lookup per open; acceptable since opens are far rarer than
// swap steps.
func (p *Pool) refreshActiveTickPointers(level types.FeeLevel) {
	m := p.tickMap(level)
	// The current tick is found by searching outward from the pool pivot for
	// the tick whose sqrtprice matches the pool's spot sqrtprice; the pivot's
	// own index is used when there is no price yet or the search fails.
	current := p.State.Pivot
	if !p.State.SpotSqrtprice.IsZero() {
		if found, err := xmath.FindPivot(current, p.State.SpotSqrtprice); err == nil {
			current = found
		}
	}
	spot := xmath.NewTickUnchecked(current.Index())
	if k, _, ok := m.InspectAbove(spot); ok {
		p.setNextActiveTick(level, types.Left, k, true)
	} else {
		p.setNextActiveTick(level, types.Left, xmath.Tick{}, false)
	}
	if k, _, ok := m.InspectBelow(spot); ok {
		p.setNextActiveTick(level, types.Right, k, true)
	} else {
		p.setNextActiveTick(level, types.Right, xmath.Tick{}, false)
	}
}

// ClosePosition removes a position's liquidity from its fee level's tick
// endpoints, settles its outstanding fee share, and returns the amounts
// returned to the owner (principal plus any unwithdrawn fee).
func (p *Pool) ClosePosition(id types.PositionID) (types.EightPoolAmount, error) {
	pos, ok := p.State.Positions[id]
	if !ok {
		return types.EightPoolAmount{}, types.PositionNotFoundError{PositionID: uint64(id)}
	}

	feeLeft, feeRight := p.settleFee(pos)

	leftF, rightF := amountsForLiquidity(p.State.SpotSqrtprice, pos.TickBounds.Low, pos.TickBounds.High, pos.FeeLevel, pos.NetLiquidity)
	leftAmt, err := types.AmountFromFloatFloor(leftF)
	if err != nil {
		return types.EightPoolAmount{}, err
	}
	rightAmt, err := types.AmountFromFloatFloor(rightF)
	if err != nil {
		return types.EightPoolAmount{}, err
	}

	p.unbumpTick(pos.FeeLevel, pos.TickBounds.Low, pos.NetLiquidity, false)
	p.unbumpTick(pos.FeeLevel, pos.TickBounds.High, pos.NetLiquidity, true)
	p.refreshActiveTickPointers(pos.FeeLevel)

	sub, err := p.State.NetLiquidities[pos.FeeLevel].Sub(pos.NetLiquidity)
	if err == nil {
		p.State.NetLiquidities[pos.FeeLevel] = sub
	}

	total := types.EightPoolAmount{Left: leftAmt.Add(feeLeft), Right: rightAmt.Add(feeRight)}
	p.State.TotalReserves.Left = p.State.TotalReserves.Left.Sub(total.Left)
	p.State.TotalReserves.Right = p.State.TotalReserves.Right.Sub(total.Right)
	p.State.AccLPFee.Left = p.State.AccLPFee.Left.Sub(feeLeft)
	p.State.AccLPFee.Right = p.State.AccLPFee.Right.Sub(feeRight)

	delete(p.State.Positions, id)
	return total, nil
}

func (p *Pool) unbumpTick(level types.FeeLevel, tick xmath.Tick, liq xmath.NetLiquidityUFP, upper bool) {
	m := p.tickMap(level)
	row, found := m.Inspect(tick)
	if !found {
		return
	}
	delta := xmath.LiquiditySFP{Mag: liq, Neg: upper}
	row.NetLiquidityChange = row.NetLiquidityChange.Add(delta.Negate())
	if row.ReferenceCounter > 0 {
		row.ReferenceCounter--
	}
	if row.ReferenceCounter == 0 {
		m.Remove(tick)
		return
	}
	m.Insert(tick, row)
}

func amountToFloat(a types.Amount) xmath.Float {
	return xmath.FloatFromInteger(a.Int().BigInt())
}
