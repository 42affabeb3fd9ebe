package types

import "github.com/dx25labs/clamm-core/internal/xmath"

type (
	Side     = xmath.Side
	FeeLevel = xmath.FeeLevel
)

const (
	Left  = xmath.Left
	Right = xmath.Right
)

// PositionID is minted by the Contract, monotonically increasing.
type PositionID uint64

// TickBounds is the half-open tick interval a position provides liquidity
// across.
type TickBounds struct {
	Low  xmath.Tick
	High xmath.Tick
}

// FeeGrowthSnapshot is the pair of per-side fee-per-fee-liquidity
// accumulators a position snapshots, one reading at open and one at the
// last withdrawal (the "high-water mark" for future payouts).
type FeeGrowthSnapshot struct {
	Left  xmath.LPFeePerFeeLiquidity
	Right xmath.LPFeePerFeeLiquidity
}

// Position is an immutable opening snapshot plus mutable fee-withdrawal
// bookkeeping.
type Position struct {
	FeeLevel                            FeeLevel
	NetLiquidity                        xmath.NetLiquidityUFP
	InitAccLPFeesPerFeeLiquidity        FeeGrowthSnapshot
	UnwithdrawnAccLPFeesPerFeeLiquidity FeeGrowthSnapshot
	InitSqrtprice                       xmath.Float
	TickBounds                          TickBounds
}
