package clamm

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dx25labs/clamm-core/internal/xmath"
	"github.com/dx25labs/clamm-core/types"
)

func poolWithLiquidity(t *testing.T) *Pool {
	t.Helper()
	p := newTestPool()
	low, err := xmath.NewTick(-100_000)
	require.NoError(t, err)
	high, err := xmath.NewTick(100_000)
	require.NoError(t, err)
	_, _, err = p.OpenPosition(1, 0, low, high, balancedRanges(1_000_000_000))
	require.NoError(t, err)
	return p
}

func TestSwapExactInOnEmptyPoolFails(t *testing.T) {
	p := newTestPool()
	_, err := p.SwapExactIn(types.Left, types.NewAmount(100), types.ZeroAmount())
	require.ErrorIs(t, err, types.ErrInsufficientLiquidity)
}

func TestSwapExactInProducesOutputAndMovesReserves(t *testing.T) {
	p := poolWithLiquidity(t)
	before := p.State.TotalReserves

	out, err := p.SwapExactIn(types.Left, types.NewAmount(1_000), types.ZeroAmount())
	require.NoError(t, err)
	require.True(t, out.Cmp(types.ZeroAmount()) > 0)

	after := p.State.TotalReserves
	require.True(t, after.Left.Cmp(before.Left) > 0, "left reserve grows by the amount swapped in")
	require.True(t, after.Right.Cmp(before.Right) < 0, "right reserve shrinks by the amount swapped out")
}

func TestSwapExactInRespectsMinOutSlippageGuard(t *testing.T) {
	p := poolWithLiquidity(t)
	huge := types.NewAmount(1_000_000_000_000)

	_, err := p.SwapExactIn(types.Left, types.NewAmount(1_000), huge)
	require.ErrorIs(t, err, types.ErrSlippage)
}

func TestSwapExactOutRespectsMaxInSlippageGuard(t *testing.T) {
	p := poolWithLiquidity(t)

	_, err := p.SwapExactOut(types.Left, types.NewAmount(1_000), types.ZeroAmount())
	require.ErrorIs(t, err, types.ErrSlippage)
}

func TestSwapExactInLeftRaisesLeftEffSqrtprice(t *testing.T) {
	p := poolWithLiquidity(t)
	beforeLeft := p.currentEffSqrtprice(types.Left)

	_, err := p.SwapExactIn(types.Left, types.NewAmount(10_000), types.ZeroAmount())
	require.NoError(t, err)
	afterLeft := p.currentEffSqrtprice(types.Left)

	require.True(t, afterLeft.Gt(beforeLeft), "paying in on the left side must push the left effective sqrtprice up")
}

func TestSwapToPriceNoopWhenLimitAlreadyPassed(t *testing.T) {
	p := poolWithLiquidity(t)
	cur := p.currentEffSqrtprice(types.Left)

	in, out, err := p.SwapToPrice(types.Left, cur, types.NewAmount(1_000))
	require.NoError(t, err)
	require.True(t, in.IsZero())
	require.True(t, out.IsZero())
}

func TestSwapToPriceCappedByMaxIn(t *testing.T) {
	p := poolWithLiquidity(t)
	cur := p.currentEffSqrtprice(types.Left)
	farLimit := cur.Mul(xmath.FromFloat64(2))
	maxIn := types.NewAmount(100)

	in, _, err := p.SwapToPrice(types.Left, farLimit, maxIn)
	require.NoError(t, err)
	require.True(t, in.Cmp(maxIn) <= 0)
}

// TestSwapAccruesLPFeeOnInputSideOnly exercises the fee-direction property: a
// swap paid in on one side must leave a claimable fee on that side and none
// on the other.
func TestSwapAccruesLPFeeOnInputSideOnly(t *testing.T) {
	p := poolWithLiquidity(t)
	require.True(t, p.State.AccLPFee.Left.IsZero())
	require.True(t, p.State.AccLPFee.Right.IsZero())

	_, err := p.SwapExactIn(types.Left, types.NewAmount(10_000_000), types.ZeroAmount())
	require.NoError(t, err)

	require.True(t, p.State.AccLPFee.Left.Cmp(types.ZeroAmount()) > 0, "fee must accrue on the side paid in")
	require.True(t, p.State.AccLPFee.Right.IsZero(), "no fee accrues on the side paid out")
}

// TestSwapAccruesMoreLPFeeWithProtocolFeeFractionLowered checks that
// recordFeeGrowth actually applies the protocol-fee cut rather than
// crediting the full price-shift to LPs: with less skimmed for the
// protocol, the same swap leaves a strictly larger claimable fee.
func TestSwapAccruesMoreLPFeeWithProtocolFeeFractionLowered(t *testing.T) {
	highProtocolCut := newTestPool()
	highProtocolCut.Params.ProtocolFeeBP = 9000
	low, err := xmath.NewTick(-100_000)
	require.NoError(t, err)
	high, err := xmath.NewTick(100_000)
	require.NoError(t, err)
	_, _, err = highProtocolCut.OpenPosition(1, 0, low, high, balancedRanges(1_000_000_000))
	require.NoError(t, err)

	lowProtocolCut := newTestPool()
	lowProtocolCut.Params.ProtocolFeeBP = 0
	_, _, err = lowProtocolCut.OpenPosition(1, 0, low, high, balancedRanges(1_000_000_000))
	require.NoError(t, err)

	_, err = highProtocolCut.SwapExactIn(types.Left, types.NewAmount(10_000_000), types.ZeroAmount())
	require.NoError(t, err)
	_, err = lowProtocolCut.SwapExactIn(types.Left, types.NewAmount(10_000_000), types.ZeroAmount())
	require.NoError(t, err)

	require.True(t, lowProtocolCut.State.AccLPFee.Left.Cmp(highProtocolCut.State.AccLPFee.Left) > 0,
		"a smaller protocol-fee cut must leave a larger LP-claimable fee for the same swap")
}

// TestSwapPromotesTopActiveLevelPastWhatOpenPositionSet exercises the
// level-activation branch of the stepping loop: with liquidity posted only
// at fee level 0, a swap large enough to overshoot level 0's eff-sqrtprice
// threshold must step through and activate higher levels on its own,
// seeding each newly activated level's eff_sqrtprices as it goes.
func TestSwapPromotesTopActiveLevelPastWhatOpenPositionSet(t *testing.T) {
	p := newTestPool()
	low, err := xmath.NewTick(-100_000)
	require.NoError(t, err)
	high, err := xmath.NewTick(100_000)
	require.NoError(t, err)

	_, _, err = p.OpenPosition(1, 0, low, high, balancedRanges(1_000_000_000))
	require.NoError(t, err)
	require.Equal(t, types.FeeLevel(0), p.State.TopActiveLevel)

	_, err = p.SwapExactIn(types.Left, types.NewAmount(5_000_000_000), types.ZeroAmount())
	require.NoError(t, err)

	require.True(t, p.State.TopActiveLevel > types.FeeLevel(0), "a large enough swap must activate fee levels beyond what OpenPosition seeded")
	top := p.State.TopActiveLevel
	require.False(t, p.State.EffSqrtpricesByLevel[top].Left.IsZero(), "activating a level must seed its eff_sqrtprices")
}

// TestApplyDirectionFlipResetsTopActiveLevelAndFlipsPivot exercises the
// pivot/side flip in isolation: once top_active_level has been promoted
// above 0 on one side, a swap on the opposite side must reset it to 0 and
// flip the pivot so eff_sqrtprices realign on the new side at level 0.
func TestApplyDirectionFlipResetsTopActiveLevelAndFlipsPivot(t *testing.T) {
	p := poolWithLiquidity(t)
	p.State.ActiveSide = types.Left
	p.State.TopActiveLevel = 3
	beforePivot := p.State.Pivot

	p.applyDirectionFlip(types.Right)

	require.Equal(t, types.Right, p.State.ActiveSide)
	require.Equal(t, types.FeeLevel(0), p.State.TopActiveLevel)
	require.Equal(t, beforePivot.Opposite(0).Index(), p.State.Pivot.Index())
}

// TestApplyDirectionFlipNoopWhenSideUnchanged confirms a swap continuing on
// the pool's current side leaves top_active_level and the pivot untouched.
func TestApplyDirectionFlipNoopWhenSideUnchanged(t *testing.T) {
	p := poolWithLiquidity(t)
	p.State.ActiveSide = types.Left
	p.State.TopActiveLevel = 3
	beforePivot := p.State.Pivot

	p.applyDirectionFlip(types.Left)

	require.Equal(t, types.FeeLevel(3), p.State.TopActiveLevel)
	require.Equal(t, beforePivot.Index(), p.State.Pivot.Index())
}

// TestSwapDirectionFlipIntegratesIntoSwapExactIn confirms SwapExactIn itself
// invokes the flip when the swap side differs from the pool's active side.
func TestSwapDirectionFlipIntegratesIntoSwapExactIn(t *testing.T) {
	p := poolWithLiquidity(t)

	_, err := p.SwapExactIn(types.Left, types.NewAmount(1_000), types.ZeroAmount())
	require.NoError(t, err)
	require.Equal(t, types.Left, p.State.ActiveSide)

	_, err = p.SwapExactIn(types.Right, types.NewAmount(1_000), types.ZeroAmount())
	require.NoError(t, err)
	require.Equal(t, types.Right, p.State.ActiveSide)
}

// TestCrossTickFlipsOutsideAccumulatorAndAdvancesPointer exercises the
// tick-crossing mechanism in isolation: the shared boundary tick must be the
// left-side next active tick before crossing, crossing it must flip its
// recorded outside fee-growth snapshot against the pool's current global
// growth, and the arriving side's pointer must stay on the crossed tick.
func TestCrossTickFlipsOutsideAccumulatorAndAdvancesPointer(t *testing.T) {
	p := newTestPool()
	low, err := xmath.NewTick(-1000)
	require.NoError(t, err)
	boundary, err := xmath.NewTick(0)
	require.NoError(t, err)
	high, err := xmath.NewTick(1000)
	require.NoError(t, err)

	_, _, err = p.OpenPosition(1, 0, low, boundary, balancedRanges(1_000_000))
	require.NoError(t, err)
	_, _, err = p.OpenPosition(2, 0, boundary, high, balancedRanges(1_000_000))
	require.NoError(t, err)

	ptr, ok := p.nextActiveTick(0, types.Left)
	require.True(t, ok)
	require.Equal(t, boundary.Index(), ptr.Index(), "the shared boundary tick must be the next active tick before crossing")

	// Simulate fee accrual since the tick's outside snapshot was seeded at 0.
	p.incAccLPFeePerFeeLiquidity(types.Left, 0, xmath.LPFeePerFeeLiquidity{Mag: mustFeeLiquidityGrowth(t, xmath.FromFloat64(0.01))})
	globalBefore := p.accLPFeePerFeeLiquidityAt(0, types.Left)
	require.False(t, globalBefore.Mag.Float().IsZero())

	p.crossTick(boundary, types.Left)

	row, found := p.tickMap(0).Inspect(boundary)
	require.True(t, found)
	require.Equal(t, globalBefore.Mag.Float().Float64(), row.AccLPFeesPerFeeLiquidityOutside.Left.Mag.Float().Float64(), "crossing must flip the outside snapshot to global minus its old value (old value was 0)")
	require.Equal(t, globalBefore.Neg, row.AccLPFeesPerFeeLiquidityOutside.Left.Neg)

	afterPtr, ok := p.nextActiveTick(0, types.Left)
	require.True(t, ok)
	require.Equal(t, boundary.Index(), afterPtr.Index(), "the arriving side's pointer is pinned to the crossed tick")
}

func mustFeeLiquidityGrowth(t *testing.T, v xmath.Float) xmath.FeeLiquidityGrowthUFP {
	t.Helper()
	g, err := xmath.FeeLiquidityGrowthUFPFromFloat(v)
	require.NoError(t, err)
	return g
}
