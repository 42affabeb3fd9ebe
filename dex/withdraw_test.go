package dex

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dx25labs/clamm-core/types"
)

func TestBeginWithdrawDebitsAndParksAmount(t *testing.T) {
	d := newTestDex()
	d.RegisterAccount("alice")
	acc := d.Accounts["alice"]
	acc.Credit("atom", types.NewAmount(100))

	got, err := d.BeginWithdraw("alice", "atom", types.NewAmount(40))
	require.NoError(t, err)
	require.Equal(t, types.NewAmount(40).String(), got.String())
	require.Equal(t, types.NewAmount(60).String(), acc.Balance("atom").String())
	require.Equal(t, types.NewAmount(40).String(), acc.WithdrawTracker["atom"].String())
}

func TestBeginWithdrawZeroResolvesToFullBalance(t *testing.T) {
	d := newTestDex()
	d.RegisterAccount("alice")
	acc := d.Accounts["alice"]
	acc.Credit("atom", types.NewAmount(100))

	got, err := d.BeginWithdraw("alice", "atom", types.ZeroAmount())
	require.NoError(t, err)
	require.Equal(t, types.NewAmount(100).String(), got.String())
	require.True(t, acc.Balance("atom").IsZero())
}

func TestBeginWithdrawRejectsSecondInFlight(t *testing.T) {
	d := newTestDex()
	d.RegisterAccount("alice")
	acc := d.Accounts["alice"]
	acc.Credit("atom", types.NewAmount(100))

	_, err := d.BeginWithdraw("alice", "atom", types.NewAmount(10))
	require.NoError(t, err)

	_, err = d.BeginWithdraw("alice", "atom", types.NewAmount(10))
	require.ErrorIs(t, err, types.ErrWithdrawInProgress)
}

func TestOnWithdrawSucceededClearsTracker(t *testing.T) {
	d := newTestDex()
	d.RegisterAccount("alice")
	d.Accounts["alice"].Credit("atom", types.NewAmount(100))
	_, err := d.BeginWithdraw("alice", "atom", types.NewAmount(10))
	require.NoError(t, err)

	require.NoError(t, d.OnWithdrawSucceeded("alice", "atom"))
	_, inFlight := d.Accounts["alice"].WithdrawTracker["atom"]
	require.False(t, inFlight)
}

func TestOnWithdrawSucceededWithoutBeginErrors(t *testing.T) {
	d := newTestDex()
	d.RegisterAccount("alice")
	require.ErrorIs(t, d.OnWithdrawSucceeded("alice", "atom"), types.ErrInternalLogicError)
}

func TestOnWithdrawFailedRecreditsBalance(t *testing.T) {
	d := newTestDex()
	d.RegisterAccount("alice")
	acc := d.Accounts["alice"]
	acc.Credit("atom", types.NewAmount(100))

	_, err := d.BeginWithdraw("alice", "atom", types.NewAmount(30))
	require.NoError(t, err)
	require.Equal(t, types.NewAmount(70).String(), acc.Balance("atom").String())

	require.NoError(t, d.OnWithdrawFailed("alice", "atom"))
	require.Equal(t, types.NewAmount(100).String(), acc.Balance("atom").String())
	_, inFlight := acc.WithdrawTracker["atom"]
	require.False(t, inFlight)
}
