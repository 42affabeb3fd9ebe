package dex

import (
	"testing"

	"cosmossdk.io/log"
	"github.com/stretchr/testify/require"

	"github.com/dx25labs/clamm-core/types"
)

func newTestDex() *Dex {
	return New("owner", types.DefaultParams(), log.NewNopLogger())
}

func TestRegisterAccountIsIdempotent(t *testing.T) {
	d := newTestDex()
	d.RegisterAccount("alice")
	first := d.Accounts["alice"]
	d.RegisterAccount("alice")
	require.Same(t, first, d.Accounts["alice"])
}

func TestRegisterTokensRejectsDuplicatesWithinCall(t *testing.T) {
	d := newTestDex()
	err := d.RegisterTokens([]string{"atom", "atom"})
	require.ErrorIs(t, err, types.ErrTokenDuplicates)
}

func TestPairKeyCanonicalOrdering(t *testing.T) {
	k1, ok1 := newPairKey("atom", "osmo")
	k2, ok2 := newPairKey("osmo", "atom")
	require.True(t, ok1)
	require.True(t, ok2)
	require.Equal(t, k1, k2)
}

func TestPairKeyRejectsSameToken(t *testing.T) {
	_, ok := newPairKey("atom", "atom")
	require.False(t, ok)
}

func TestPoolForCreatesOnFirstUseAndReusesAfter(t *testing.T) {
	d := newTestDex()
	require.NoError(t, d.RegisterTokens([]string{"atom", "osmo"}))

	p1, key1, err := d.poolFor("atom", "osmo")
	require.NoError(t, err)
	p2, key2, err := d.poolFor("osmo", "atom")
	require.NoError(t, err)

	require.Equal(t, key1, key2)
	require.Same(t, p1, p2)
}

func TestPoolForRejectsUnverifiedToken(t *testing.T) {
	d := newTestDex()
	require.NoError(t, d.RegisterTokens([]string{"atom"}))

	_, _, err := d.poolFor("atom", "osmo")
	require.ErrorIs(t, err, types.ErrTokenNotRegistered)
}

func TestAccountBalanceDefaultsToZeroForUnseenToken(t *testing.T) {
	d := newTestDex()
	d.RegisterAccount("alice")
	acc := d.Accounts["alice"]
	require.True(t, acc.Balance("nonexistent").IsZero())
}

func TestAccountCreditThenDebit(t *testing.T) {
	acc := newAccount()
	acc.Credit("atom", types.NewAmount(100))
	require.Equal(t, types.NewAmount(100).String(), acc.Balance("atom").String())

	err := acc.Debit("atom", types.NewAmount(40))
	require.NoError(t, err)
	require.Equal(t, types.NewAmount(60).String(), acc.Balance("atom").String())
}

func TestAccountDebitInsufficientBalanceErrors(t *testing.T) {
	acc := newAccount()
	err := acc.Debit("atom", types.NewAmount(1))
	require.ErrorIs(t, err, types.ErrNotEnoughTokens)
}

func TestGuardPermissions(t *testing.T) {
	d := newTestDex()
	require.ErrorIs(t, d.AddGuardAccounts("not-owner", []string{"g"}), types.ErrPermissionDenied)

	require.NoError(t, d.AddGuardAccounts("owner", []string{"guard1"}))
	require.True(t, d.isGuard("guard1"))

	require.NoError(t, d.SuspendPayableAPI("guard1"))
	require.True(t, d.PayableSuspended)
	require.ErrorIs(t, d.requirePayable(), types.ErrPayableAPISuspended)

	require.NoError(t, d.ResumePayableAPI("guard1"))
	require.NoError(t, d.requirePayable())
}

func TestGuardActionsDeniedForNonGuard(t *testing.T) {
	d := newTestDex()
	require.ErrorIs(t, d.SuspendPayableAPI("stranger"), types.ErrGuardChangeStateDenied)
}
