package dex

import "github.com/dx25labs/clamm-core/types"

// BeginWithdraw starts an asynchronous withdrawal: the amount is debited
// from the spendable balance immediately and parked in the account's
// withdraw tracker so it is not double-counted, matching the two-
// transaction send-intent pattern described for the host's callback-driven
// transfer completion.
func (d *Dex) BeginWithdraw(accountID, token string, amount types.Amount) (types.Amount, error) {
	acc, err := d.account(accountID)
	if err != nil {
		return types.Amount{}, err
	}
	if _, inFlight := acc.WithdrawTracker[token]; inFlight {
		return types.Amount{}, types.ErrWithdrawInProgress
	}

	bal := acc.Balance(token)
	if amount.IsZero() {
		if bal.IsZero() && !d.VerifiedTokens[token] {
			return types.ZeroAmount(), nil
		}
		amount = bal
	}
	if err := acc.Debit(token, amount); err != nil {
		return types.Amount{}, types.ErrIllegalWithdrawAmount
	}
	acc.WithdrawTracker[token] = amount
	return amount, nil
}

// OnWithdrawSucceeded clears the in-flight marker once the host confirms
// the transfer landed.
func (d *Dex) OnWithdrawSucceeded(accountID, token string) error {
	acc, err := d.account(accountID)
	if err != nil {
		return err
	}
	if _, ok := acc.WithdrawTracker[token]; !ok {
		return types.ErrInternalLogicError
	}
	delete(acc.WithdrawTracker, token)
	return nil
}

// OnWithdrawFailed re-credits the parked amount and clears the in-flight
// marker when the host reports the transfer could not complete.
func (d *Dex) OnWithdrawFailed(accountID, token string) error {
	acc, err := d.account(accountID)
	if err != nil {
		return err
	}
	amount, ok := acc.WithdrawTracker[token]
	if !ok {
		return types.ErrInternalLogicError
	}
	acc.Credit(token, amount)
	delete(acc.WithdrawTracker, token)
	return nil
}
