package dex

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dx25labs/clamm-core/internal/xmath"
	"github.com/dx25labs/clamm-core/types"
)

func tickPtr(v int32) *int32 { return &v }

func TestExecuteActionsFullLifecycle(t *testing.T) {
	d := newTestDex()
	payments := map[string]types.Amount{
		"atom": types.NewAmount(1_000_000),
		"osmo": types.NewAmount(1_000_000),
	}

	actions := []types.Action{
		{Kind: types.ActionRegisterAccount},
		{Kind: types.ActionRegisterTokens, Tokens: []string{"atom", "osmo"}},
		{Kind: types.ActionDeposit},
		{
			Kind:           types.ActionOpenPosition,
			PositionTokens: [2]string{"atom", "osmo"},
			FeeLevel:       0,
			Position: types.PositionInit{
				AmountRanges: [2]types.Range{
					{Min: types.ZeroAmount(), Max: types.NewAmount(500_000)},
					{Min: types.ZeroAmount(), Max: types.NewAmount(500_000)},
				},
				TickLow:  tickPtr(-100_000),
				TickHigh: tickPtr(100_000),
			},
		},
	}

	results, err := d.ExecuteActions("alice", actions, payments)
	require.NoError(t, err)
	require.Len(t, results, len(actions))

	posID := results[3].PositionID
	require.NotZero(t, posID)

	acc := d.Accounts["alice"]
	require.Equal(t, posID, PairKeyOf(t, acc, posID))

	swapActions := []types.Action{
		{
			Kind:        types.ActionSwapExactIn,
			TokenIn:     "atom",
			TokenOut:    "osmo",
			SwapAmount:  amountPtr(types.NewAmount(10_000)),
			AmountLimit: types.ZeroAmount(),
		},
	}
	swapResults, err := d.ExecuteActions("alice", swapActions, nil)
	require.NoError(t, err)
	require.True(t, swapResults[0].AmountOut.Cmp(types.ZeroAmount()) > 0)

	closeActions := []types.Action{
		{Kind: types.ActionWithdrawFee, PositionID: posID},
		{Kind: types.ActionClosePosition, PositionID: posID},
		{Kind: types.ActionWithdraw, Token: "atom", Amount: types.ZeroAmount()},
		{Kind: types.ActionWithdraw, Token: "osmo", Amount: types.ZeroAmount()},
	}
	_, err = d.ExecuteActions("alice", closeActions, nil)
	require.NoError(t, err)

	_, stillOpen := acc.Positions[posID]
	require.False(t, stillOpen)
}

func amountPtr(a types.Amount) *types.Amount { return &a }

// PairKeyOf is a tiny test-only helper asserting a position id was recorded
// against some pair key, returning the same id back so the call composes
// with require.Equal above without introducing a second assertion style.
func PairKeyOf(t *testing.T, acc *Account, id types.PositionID) types.PositionID {
	t.Helper()
	_, ok := acc.Positions[id]
	require.True(t, ok)
	return id
}

func TestExecuteActionsRejectsRegisterAccountNotFirst(t *testing.T) {
	d := newTestDex()
	actions := []types.Action{
		{Kind: types.ActionRegisterTokens, Tokens: []string{"atom"}},
		{Kind: types.ActionRegisterAccount},
	}
	_, err := d.ExecuteActions("alice", actions, nil)
	require.ErrorIs(t, err, types.ErrUnexpectedRegisterAccount)
}

func TestExecuteActionsRejectsUnconsumedDeposit(t *testing.T) {
	d := newTestDex()
	d.RegisterAccount("alice")
	actions := []types.Action{
		{Kind: types.ActionRegisterTokens, Tokens: []string{"atom"}},
	}
	_, err := d.ExecuteActions("alice", actions, map[string]types.Amount{"atom": types.NewAmount(10)})
	require.ErrorIs(t, err, types.ErrDepositNotHandled)
}

func TestExecuteActionsSwapChainInheritsPreviousOutput(t *testing.T) {
	d := newTestDex()
	d.RegisterAccount("alice")
	require.NoError(t, d.RegisterTokens([]string{"atom", "osmo", "juno"}))
	acc := d.Accounts["alice"]
	acc.Credit("atom", types.NewAmount(1_000_000))
	acc.Credit("osmo", types.NewAmount(1_000_000))
	acc.Credit("juno", types.NewAmount(1_000_000))

	for _, pair := range [][2]string{{"atom", "osmo"}, {"osmo", "juno"}} {
		low, _ := xmath.NewTick(-100_000)
		high, _ := xmath.NewTick(100_000)
		pool, _, err := d.poolFor(pair[0], pair[1])
		require.NoError(t, err)
		_, _, err = pool.OpenPosition(d.mintPositionID(), 0, low, high, balancedRangesFor(500_000))
		require.NoError(t, err)
	}

	actions := []types.Action{
		{Kind: types.ActionSwapExactIn, TokenIn: "atom", TokenOut: "osmo", SwapAmount: amountPtr(types.NewAmount(1_000)), AmountLimit: types.ZeroAmount()},
		{Kind: types.ActionSwapExactIn, TokenIn: "osmo", TokenOut: "juno", AmountLimit: types.ZeroAmount()},
	}
	results, err := d.ExecuteActions("alice", actions, nil)
	require.NoError(t, err)
	require.Equal(t, results[0].AmountOut.String(), results[1].AmountIn.String())
}

func balancedRangesFor(amount int64) [2]types.Range {
	amt := types.NewAmount(amount)
	return [2]types.Range{
		{Min: types.ZeroAmount(), Max: amt},
		{Min: types.ZeroAmount(), Max: amt},
	}
}
