package types

import "github.com/dx25labs/clamm-core/internal/xmath"

// TickState is the per-fee-level, per-tick row tracked in the ordered tick
// map: the signed liquidity delta crossed left-to-right, a reference count
// of positions bounded by this tick, and the fee-growth-outside pair used
// by the Uniswap-v3-style flip-on-crossing accounting.
type TickState struct {
	NetLiquidityChange               xmath.LiquiditySFP
	ReferenceCounter                 uint32
	AccLPFeesPerFeeLiquidityOutside  FeeGrowthSnapshot
}

// NewTickState returns the default-constructed row inserted the first time
// a tick becomes a position boundary.
func NewTickState() TickState {
	return TickState{}
}
