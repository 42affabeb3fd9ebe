package types

import (
	"github.com/dx25labs/clamm-core/internal/ordmap"
	"github.com/dx25labs/clamm-core/internal/xmath"
)

// TickMap is the ordered per-fee-level store of TickState rows, keyed by
// spot Tick. Both the persistent pool and the estimation overlay satisfy
// this through ordmap.Map.
type TickMap = ordmap.Map[xmath.Tick, TickState]

func tickLess(a, b xmath.Tick) bool { return a.Index() < b.Index() }

// NewTickMap returns the concrete B-tree-backed map a live pool uses.
func NewTickMap() TickMap {
	return ordmap.NewBTreeMap[xmath.Tick, TickState](tickLess)
}

// EffSqrtprices is a fee level's (left, right) effective sqrtprice pair.
type EffSqrtprices struct {
	Left, Right xmath.Float
}

// PoolState is the per-token-pair record: eight-level liquidity, price,
// reserves and accumulators, plus the position and tick-state stores that
// hang off it.
type PoolState struct {
	Positions map[PositionID]Position

	TickStates [xmath.NumFeeLevels]TickMap

	TotalReserves EightPoolAmount

	PositionReserves [xmath.NumFeeLevels]SidePair

	AccLPFee EightPoolAmount

	// AccLPFeesPerFeeLiquidity[k] holds the shift performed while level k
	// was the topmost active level; the fee-per-liquidity across all
	// levels >= L is the sum of entries L..7.
	AccLPFeesPerFeeLiquidity [xmath.NumFeeLevels]FeeGrowthSnapshot

	EffSqrtpricesByLevel [xmath.NumFeeLevels]EffSqrtprices

	NextActiveTickLeft  [xmath.NumFeeLevels]*xmath.Tick
	NextActiveTickRight [xmath.NumFeeLevels]*xmath.Tick

	NetLiquidities [xmath.NumFeeLevels]xmath.NetLiquidityUFP

	// SpotSqrtprice is the pool's single shared reference sqrtprice; every
	// level's EffSqrtprices are this value offset by that level's
	// fixed fee-spread, so the pool carries exactly one of these rather
	// than one per level.
	SpotSqrtprice xmath.Float

	TopActiveLevel FeeLevel
	ActiveSide     Side
	Pivot          xmath.EffTick
}

// SidePair is the fixed-point pair of amounts on the left/right side of a
// pool, used for position reserves accumulated at fixed-point precision.
type SidePair struct {
	Left, Right xmath.AmountUFP
}

// EightPoolAmount is the canonical-Amount pair for pool-wide reserves.
type EightPoolAmount struct {
	Left, Right Amount
}

// NewPoolState returns an empty pool with no live positions: every
// eff_sqrtprice is zero and no next-active-tick entries exist, matching
// invariant 5.
func NewPoolState() *PoolState {
	ps := &PoolState{
		Positions:     make(map[PositionID]Position),
		TotalReserves: EightPoolAmount{ZeroAmount(), ZeroAmount()},
		AccLPFee:      EightPoolAmount{ZeroAmount(), ZeroAmount()},
	}
	for i := range ps.TickStates {
		ps.TickStates[i] = NewTickMap()
	}
	return ps
}

// IsEmpty reports whether the pool has never been initialized (no
// positions, no price): the shared spot sqrtprice is zero.
func (p *PoolState) IsEmpty() bool {
	return p.SpotSqrtprice.IsZero()
}
