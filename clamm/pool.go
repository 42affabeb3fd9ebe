// Package clamm implements the pool state machine: opening and closing
// positions, swapping against the shared bonding curve, and distributing
// fees across the eight parallel fee tiers.
package clamm

import (
	"cosmossdk.io/log"

	"github.com/dx25labs/clamm-core/internal/ordmap"
	"github.com/dx25labs/clamm-core/internal/xmath"
	"github.com/dx25labs/clamm-core/types"
)

// Pool wraps a PoolState with the parameters and logger its operations
// need, the way a keeper method wraps store access with ctx and params.
type Pool struct {
	State  *types.PoolState
	Params types.Params
	Logger log.Logger
}

func NewPool(params types.Params, logger log.Logger) *Pool {
	return &Pool{
		State:  types.NewPoolState(),
		Params: params,
		Logger: logger.With("module", "clamm"),
	}
}

func tickLess(a, b xmath.Tick) bool { return a.Index() < b.Index() }

// nextActiveTick returns the pool's recorded next-active-tick pointer for
// level/side, if any.
func (p *Pool) nextActiveTick(level types.FeeLevel, side types.Side) (xmath.Tick, bool) {
	var ptr *xmath.Tick
	if side == types.Left {
		ptr = p.State.NextActiveTickLeft[level]
	} else {
		ptr = p.State.NextActiveTickRight[level]
	}
	if ptr == nil {
		return xmath.Tick{}, false
	}
	return *ptr, true
}

func (p *Pool) setNextActiveTick(level types.FeeLevel, side types.Side, tick xmath.Tick, ok bool) {
	var val *xmath.Tick
	if ok {
		t := tick
		val = &t
	}
	if side == types.Left {
		p.State.NextActiveTickLeft[level] = val
	} else {
		p.State.NextActiveTickRight[level] = val
	}
}

// tickMap returns the ordered tick-state store for a fee level.
func (p *Pool) tickMap(level types.FeeLevel) types.TickMap {
	return p.State.TickStates[level]
}

// accLPFeePerFeeLiquidityAt sums the per-level shift accumulators from
// level upward: the global fee-per-liquidity across all levels >= L.
func (p *Pool) accLPFeePerFeeLiquidityAt(level types.FeeLevel, side types.Side) xmath.LPFeePerFeeLiquidity {
	var total xmath.LPFeePerFeeLiquidity
	for l := level; l < xmath.NumFeeLevels; l++ {
		g := p.State.AccLPFeesPerFeeLiquidity[l]
		if side == types.Left {
			total = total.Add(g.Left)
		} else {
			total = total.Add(g.Right)
		}
	}
	return total
}

func (p *Pool) incAccLPFeePerFeeLiquidity(side types.Side, topActiveLevel types.FeeLevel, delta xmath.LPFeePerFeeLiquidity) {
	g := p.State.AccLPFeesPerFeeLiquidity[topActiveLevel]
	if side == types.Left {
		g.Left = g.Left.Add(delta)
	} else {
		g.Right = g.Right.Add(delta)
	}
	p.State.AccLPFeesPerFeeLiquidity[topActiveLevel] = g
}

func (p *Pool) accumulateLPFee(side types.Side, amount xmath.AmountUFP) {
	if side == types.Left {
		p.State.AccLPFee.Left = amountAdd(p.State.AccLPFee.Left, amount)
	} else {
		p.State.AccLPFee.Right = amountAdd(p.State.AccLPFee.Right, amount)
	}
}

func amountAdd(a types.Amount, ufp xmath.AmountUFP) types.Amount {
	rounded, err := types.AmountFromFloatCeil(ufp.Float())
	if err != nil {
		return a
	}
	return a.Add(rounded)
}

// activeGrossLiquidity sums gross_liquidity(L) for L = 0..top_active_level
// inclusive.
func (p *Pool) activeGrossLiquidity() xmath.Float {
	sum := xmath.Zero()
	for l := types.FeeLevel(0); l <= p.State.TopActiveLevel; l++ {
		gross := xmath.GrossLiquidityFromNetLiquidity(p.State.NetLiquidities[l], l)
		sum = sum.Add(gross.Float())
	}
	return sum
}

// activeFeeLiquidity sums fee_liquidity(L) for L = 0..top_active_level
// inclusive, the quantity a step's lp_fee_per_fee_liquidity is multiplied
// by to get the Amount credited to acc_lp_fee.
func (p *Pool) activeFeeLiquidity() xmath.Float {
	sum := xmath.Zero()
	for l := types.FeeLevel(0); l <= p.State.TopActiveLevel; l++ {
		feeLiq := xmath.FeeLiquidityFromNetLiquidity(p.State.NetLiquidities[l], l)
		sum = sum.Add(feeLiq.Float())
	}
	return sum
}

// initLevelEffSqrtprice seeds level's eff_sqrtprices from the pool's
// current spot price, the same derivation OpenPosition uses the first time
// a level is touched and activateNextLevel uses when a swap promotes a new
// top active level.
func (p *Pool) initLevelEffSqrtprice(level types.FeeLevel) {
	p.State.EffSqrtpricesByLevel[level] = types.EffSqrtprices{
		Left:  p.State.SpotSqrtprice.Mul(xmath.Tick{}.EffSqrtprice(level, xmath.Left)),
		Right: xmath.Tick{}.EffSqrtprice(level, xmath.Right).Quo(p.State.SpotSqrtprice),
	}
}

// activateNextLevel advances top_active_level by one, seeding the newly
// active level's eff_sqrtprices from the pool's current spot price.
func (p *Pool) activateNextLevel() {
	p.State.TopActiveLevel++
	p.initLevelEffSqrtprice(p.State.TopActiveLevel)
}

// applyDirectionFlip resets top_active_level to 0 and flips the pivot when
// a swap's side differs from the pool's last active side, restoring the
// property that eff_sqrtprices are aligned on the new side only at level 0.
func (p *Pool) applyDirectionFlip(side types.Side) {
	if p.State.IsEmpty() || side == p.State.ActiveSide {
		return
	}
	p.State.TopActiveLevel = 0
	p.State.Pivot = p.State.Pivot.Opposite(0)
	p.State.ActiveSide = side
}

// crossTick applies the tick-crossing flip for every level <= top active
// whose next-active-tick pointer on swapSide matches crossedTick, then
// advances the pointers on that level.
func (p *Pool) crossTick(crossedTick xmath.Tick, swapSide types.Side) {
	for level := types.FeeLevel(0); level <= p.State.TopActiveLevel; level++ {
		ptrTick, ok := p.nextActiveTick(level, swapSide)
		if !ok || ptrTick.Index() != crossedTick.Index() {
			continue
		}

		m := p.tickMap(level)
		row, found := m.Inspect(crossedTick)
		if !found {
			continue
		}

		global := types.FeeGrowthSnapshot{
			Left:  p.accLPFeePerFeeLiquidityAt(0, types.Left),
			Right: p.accLPFeePerFeeLiquidityAt(0, types.Right),
		}
		row.AccLPFeesPerFeeLiquidityOutside = types.FeeGrowthSnapshot{
			Left:  global.Left.Sub(row.AccLPFeesPerFeeLiquidityOutside.Left),
			Right: global.Right.Sub(row.AccLPFeesPerFeeLiquidityOutside.Right),
		}
		m.Insert(crossedTick, row)

		if swapSide == types.Left {
			p.State.NetLiquidities[level] = applySigned(p.State.NetLiquidities[level], row.NetLiquidityChange, false)
		} else {
			p.State.NetLiquidities[level] = applySigned(p.State.NetLiquidities[level], row.NetLiquidityChange, true)
		}

		p.setNextActiveTick(level, swapSide, crossedTick, true)
		p.advanceTickPointer(level, swapSide, crossedTick)
	}
}

func applySigned(base xmath.NetLiquidityUFP, delta xmath.LiquiditySFP, negate bool) xmath.NetLiquidityUFP {
	neg := delta.Neg
	if negate {
		neg = !neg
	}
	if neg {
		r, err := base.Sub(delta.Mag)
		if err != nil {
			return xmath.NetLiquidityUFPZero()
		}
		return r
	}
	return base.Add(delta.Mag)
}

// advanceTickPointer moves the *departing* side's pointer to the next tick
// beyond crossedTick; the arriving side's pointer is set by the caller.
func (p *Pool) advanceTickPointer(level types.FeeLevel, arrivingSide types.Side, crossedTick xmath.Tick) {
	departing := arrivingSide.Opposite()
	m := p.tickMap(level)
	if departing == types.Left {
		if k, _, ok := m.InspectAbove(crossedTick); ok {
			p.setNextActiveTick(level, departing, k, true)
		} else {
			p.setNextActiveTick(level, departing, xmath.Tick{}, false)
		}
	} else {
		if k, _, ok := m.InspectBelow(crossedTick); ok {
			p.setNextActiveTick(level, departing, k, true)
		} else {
			p.setNextActiveTick(level, departing, xmath.Tick{}, false)
		}
	}
}

var _ = ordmap.Map[xmath.Tick, types.TickState](nil)
