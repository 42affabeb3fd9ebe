package types

import "github.com/dx25labs/clamm-core/internal/xmath"

// SwapKind distinguishes the three ways a swap's stopping condition can be
// specified.
type SwapKind int

const (
	SwapExactIn SwapKind = iota
	SwapExactOut
	SwapToPrice
)

// Range is a user-supplied amount bound, both ends Amount-like.
type Range struct {
	Min, Max Amount
}

// PositionInit is the caller-supplied shape of a new position: two amount
// ranges (one per side) and an optional tick range (nil bound means
// MIN_TICK/MAX_TICK).
type PositionInit struct {
	AmountRanges [2]Range
	TickLow      *int32
	TickHigh     *int32
}

// ActionKind tags the variant stored in an Action.
type ActionKind int

const (
	ActionRegisterAccount ActionKind = iota
	ActionRegisterTokens
	ActionDeposit
	ActionWithdraw
	ActionSwapExactIn
	ActionSwapExactOut
	ActionSwapToPrice
	ActionOpenPosition
	ActionClosePosition
	ActionWithdrawFee
)

// Action is the tagged union batched through ExecuteActions; only the
// fields relevant to Kind are populated.
type Action struct {
	Kind ActionKind

	// RegisterTokens / Withdraw
	Tokens []string
	Token  string
	Amount Amount
	Extra  string

	// SwapExactIn / SwapExactOut / SwapToPrice
	TokenIn       string
	TokenOut      string
	SwapAmount    *Amount
	AmountLimit   Amount
	EffPriceLimit xmath.Float

	// OpenPosition
	PositionTokens [2]string
	FeeLevel       FeeLevel
	Position       PositionInit

	// ClosePosition / WithdrawFee
	PositionID PositionID
}

// PoolInfo is the read-only query surface over a pool.
type PoolInfo struct {
	TotalReserves     EightPoolAmount
	PositionReserves  [xmath.NumFeeLevels]SidePair
	SpotSqrtprices    [xmath.NumFeeLevels]xmath.Float
	EffSqrtprices     [xmath.NumFeeLevels]EffSqrtprices
	Liquidities       [xmath.NumFeeLevels]xmath.NetLiquidityUFP
	FeeRatesBP        [xmath.NumFeeLevels]int32
	BasisPointDivisor int64
}

// PositionInfo is the read-only query surface over a position.
type PositionInfo struct {
	Tokens            [2]string
	FeeLevel          FeeLevel
	Balance           SidePair
	InitSqrtprice     xmath.Float
	TickBounds        TickBounds
	LifetimeReward    SidePair
	SinceLastWithdraw SidePair
	NetLiquidity      xmath.NetLiquidityUFP
}
