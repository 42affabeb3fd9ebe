package clamm

import (
	"math"

	"github.com/dx25labs/clamm-core/internal/ordmap"
	"github.com/dx25labs/clamm-core/internal/xmath"
	"github.com/dx25labs/clamm-core/types"
)

// EstimateResult reports a what-if outcome plus a cost hint that grows with
// the log2 of the number of tick-state rows in the pool's tick maps after
// the estimated operation, so a caller batching many estimates can budget
// without re-running them for real.
type EstimateResult struct {
	Amounts     types.EightPoolAmount
	TickCount   int
	TxCostHint  float64
}

// Estimate runs fn against a throwaway copy-on-write view of the pool: the
// scalar fields (reserves, liquidities, prices) are a plain Go value copy,
// and every fee level's tick-state store is wrapped in an ordmap.Overlay so
// lookups fall through to the live B-tree while any insert/update/remove
// lands only in the overlay's transient delta. Nothing fn does is visible
// to the real pool once Estimate returns.
func (p *Pool) Estimate(fn func(*Pool) (types.EightPoolAmount, error)) (EstimateResult, error) {
	clone := *p.State
	for i := range clone.TickStates {
		clone.TickStates[i] = ordmap.NewOverlay[xmath.Tick, types.TickState](p.State.TickStates[i], tickLess)
	}
	clone.Positions = make(map[types.PositionID]types.Position, len(p.State.Positions))
	for k, v := range p.State.Positions {
		clone.Positions[k] = v
	}

	shadow := &Pool{State: &clone, Params: p.Params, Logger: p.Logger}
	amounts, err := fn(shadow)
	if err != nil {
		return EstimateResult{}, err
	}

	tickCount := 0
	for i := range clone.TickStates {
		if ov, ok := clone.TickStates[i].(*ordmap.Overlay[xmath.Tick, types.TickState]); ok {
			tickCount += ov.Len()
		}
	}

	// tx_cost is affine in log2(tick_count): a small constant base plus a
	// per-doubling increment, matching the component table's hint that cost
	// scales with the tick map's depth rather than its raw size.
	const baseCost = 1.0
	const perLog2 = 0.15
	hint := baseCost
	if tickCount > 0 {
		hint += perLog2 * math.Log2(float64(tickCount)+1)
	}

	return EstimateResult{Amounts: amounts, TickCount: tickCount, TxCostHint: hint}, nil
}
