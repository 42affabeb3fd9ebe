package dex

import (
	"github.com/dx25labs/clamm-core/internal/xmath"
	"github.com/dx25labs/clamm-core/types"
)

// prevSwapOutput tracks the state an implicit swap chain carries forward:
// the token and amount the previous swap action produced, and which kind of
// swap produced it (a chain only continues across matching kinds).
type prevSwapOutput struct {
	token  string
	kind   types.SwapKind
	amount types.Amount
}

// ActionResult is the per-action output ExecuteActions reports back, only
// the fields relevant to that action's kind populated.
type ActionResult struct {
	AmountIn, AmountOut types.Amount
	PositionID          types.PositionID
	Deposited           types.EightPoolAmount
}

// ExecuteActions walks a batch exactly once, left to right, threading the
// small local state machine spec's Design Notes describe: at most one
// RegisterAccount (and only first), at most one Deposit consuming the
// payments supplied with the call, and an implicit swap chain where a swap
// missing its amount inherits the previous swap's output.
func (d *Dex) ExecuteActions(accountID string, actions []types.Action, payments map[string]types.Amount) ([]ActionResult, error) {
	if err := d.requirePayable(); err != nil {
		return nil, err
	}

	results := make([]ActionResult, len(actions))
	seenRegisterAccount := false
	depositConsumed := false
	var prevSwap *prevSwapOutput

	swapActionCount := 0
	for _, a := range actions {
		switch a.Kind {
		case types.ActionSwapExactIn, types.ActionSwapExactOut, types.ActionSwapToPrice:
			swapActionCount++
		}
	}

	for i, action := range actions {
		switch action.Kind {
		case types.ActionRegisterAccount:
			if i != 0 || seenRegisterAccount {
				return nil, types.ErrUnexpectedRegisterAccount
			}
			d.RegisterAccount(accountID)
			seenRegisterAccount = true

		case types.ActionRegisterTokens:
			if err := d.RegisterTokens(action.Tokens); err != nil {
				return nil, err
			}

		case types.ActionDeposit:
			if depositConsumed {
				return nil, types.ErrDepositAlreadyHandled
			}
			acc, err := d.account(accountID)
			if err != nil {
				return nil, err
			}
			for token, amt := range payments {
				acc.Credit(token, amt)
			}
			depositConsumed = true

		case types.ActionSwapExactIn, types.ActionSwapExactOut, types.ActionSwapToPrice:
			if action.Kind == types.ActionSwapToPrice && swapActionCount != 1 {
				return nil, types.ErrExactOneSwap
			}
			in, out, err := d.runSwapAction(accountID, action, prevSwap)
			if err != nil {
				return nil, err
			}
			results[i] = ActionResult{AmountIn: in, AmountOut: out}
			prevSwap = &prevSwapOutput{token: action.TokenOut, kind: action.Kind, amount: out}

		case types.ActionOpenPosition:
			id, _, deposited, err := d.runOpenPosition(accountID, action)
			if err != nil {
				return nil, err
			}
			results[i] = ActionResult{PositionID: id, Deposited: deposited}

		case types.ActionClosePosition:
			amounts, err := d.runClosePosition(accountID, action.PositionID)
			if err != nil {
				return nil, err
			}
			results[i] = ActionResult{Deposited: amounts}

		case types.ActionWithdrawFee:
			left, right, err := d.runWithdrawFee(accountID, action.PositionID)
			if err != nil {
				return nil, err
			}
			results[i] = ActionResult{AmountIn: left, AmountOut: right}

		case types.ActionWithdraw:
			amt, err := d.runWithdraw(accountID, action.Token, action.Amount)
			if err != nil {
				return nil, err
			}
			results[i] = ActionResult{AmountOut: amt}

		default:
			return nil, types.ErrWrongActionResult
		}
	}

	paymentsProvided := len(payments) > 0
	if depositConsumed != paymentsProvided {
		return nil, types.ErrDepositNotHandled
	}
	return results, nil
}

func (d *Dex) runSwapAction(accountID string, action types.Action, prev *prevSwapOutput) (types.Amount, types.Amount, error) {
	pool, key, err := d.poolFor(action.TokenIn, action.TokenOut)
	if err != nil {
		return types.Amount{}, types.Amount{}, err
	}
	acc, err := d.account(accountID)
	if err != nil {
		return types.Amount{}, types.Amount{}, err
	}

	amount := action.SwapAmount
	var resolved types.Amount
	if amount != nil {
		resolved = *amount
	} else if prev != nil && prev.kind == action.Kind && prev.token == action.TokenIn {
		resolved = prev.amount
	} else {
		return types.Amount{}, types.Amount{}, types.ErrWrongActionResult
	}

	side := key.sideOf(action.TokenIn)

	switch action.Kind {
	case types.ActionSwapExactIn:
		if acc.Balance(action.TokenIn).Cmp(resolved) < 0 {
			return types.Amount{}, types.Amount{}, types.ErrNotEnoughTokens
		}
		out, err := pool.SwapExactIn(side, resolved, action.AmountLimit)
		if err != nil {
			return types.Amount{}, types.Amount{}, err
		}
		_ = acc.Debit(action.TokenIn, resolved)
		acc.Credit(action.TokenOut, out)
		return resolved, out, nil

	case types.ActionSwapExactOut:
		in, err := pool.SwapExactOut(side, resolved, action.AmountLimit)
		if err != nil {
			return types.Amount{}, types.Amount{}, err
		}
		if err := acc.Debit(action.TokenIn, in); err != nil {
			return types.Amount{}, types.Amount{}, err
		}
		acc.Credit(action.TokenOut, resolved)
		return in, resolved, nil

	default: // ActionSwapToPrice
		in, out, err := pool.SwapToPrice(side, action.EffPriceLimit, acc.Balance(action.TokenIn))
		if err != nil {
			return types.Amount{}, types.Amount{}, err
		}
		_ = acc.Debit(action.TokenIn, in)
		acc.Credit(action.TokenOut, out)
		return in, out, nil
	}
}

func (d *Dex) runOpenPosition(accountID string, action types.Action) (types.PositionID, types.Position, types.EightPoolAmount, error) {
	if action.PositionTokens[0] == action.PositionTokens[1] {
		return 0, types.Position{}, types.EightPoolAmount{}, types.ErrTokenDuplicates
	}
	pool, key, err := d.poolFor(action.PositionTokens[0], action.PositionTokens[1])
	if err != nil {
		return 0, types.Position{}, types.EightPoolAmount{}, err
	}
	acc, err := d.account(accountID)
	if err != nil {
		return 0, types.Position{}, types.EightPoolAmount{}, err
	}

	tickLowIdx := xmath.MinTick
	if action.Position.TickLow != nil {
		tickLowIdx = int(*action.Position.TickLow)
	}
	tickHighIdx := xmath.MaxTick
	if action.Position.TickHigh != nil {
		tickHighIdx = int(*action.Position.TickHigh)
	}
	tickLow, err := xmath.NewTick(int32(tickLowIdx))
	if err != nil {
		return 0, types.Position{}, types.EightPoolAmount{}, err
	}
	tickHigh, err := xmath.NewTick(int32(tickHighIdx))
	if err != nil {
		return 0, types.Position{}, types.EightPoolAmount{}, err
	}

	var ranges [2]types.Range
	ranges[key.sideOf(action.PositionTokens[0])] = action.Position.AmountRanges[0]
	ranges[key.sideOf(action.PositionTokens[1])] = action.Position.AmountRanges[1]

	if ranges[0].Max.Cmp(acc.Balance(key.Left)) > 0 || ranges[1].Max.Cmp(acc.Balance(key.Right)) > 0 {
		return 0, types.Position{}, types.EightPoolAmount{}, types.ErrNotEnoughTokens
	}

	id := d.mintPositionID()
	pos, deposited, err := pool.OpenPosition(id, action.FeeLevel, tickLow, tickHigh, ranges)
	if err != nil {
		return 0, types.Position{}, types.EightPoolAmount{}, err
	}

	_ = acc.Debit(key.Left, deposited.Left)
	_ = acc.Debit(key.Right, deposited.Right)
	acc.Positions[id] = key
	return id, pos, deposited, nil
}

func (d *Dex) runClosePosition(accountID string, id types.PositionID) (types.EightPoolAmount, error) {
	acc, err := d.account(accountID)
	if err != nil {
		return types.EightPoolAmount{}, err
	}
	key, ok := acc.Positions[id]
	if !ok {
		return types.EightPoolAmount{}, types.ErrNotYourPosition
	}
	pool, err := d.pool(key)
	if err != nil {
		return types.EightPoolAmount{}, err
	}
	amounts, err := pool.ClosePosition(id)
	if err != nil {
		return types.EightPoolAmount{}, err
	}
	acc.Credit(key.Left, amounts.Left)
	acc.Credit(key.Right, amounts.Right)
	delete(acc.Positions, id)
	return amounts, nil
}

func (d *Dex) runWithdrawFee(accountID string, id types.PositionID) (types.Amount, types.Amount, error) {
	acc, err := d.account(accountID)
	if err != nil {
		return types.Amount{}, types.Amount{}, err
	}
	key, ok := acc.Positions[id]
	if !ok {
		return types.Amount{}, types.Amount{}, types.ErrNotYourPosition
	}
	pool, err := d.pool(key)
	if err != nil {
		return types.Amount{}, types.Amount{}, err
	}
	left, right, err := pool.WithdrawFee(id)
	if err != nil {
		return types.Amount{}, types.Amount{}, err
	}
	acc.Credit(key.Left, left)
	acc.Credit(key.Right, right)
	return left, right, nil
}

func (d *Dex) runWithdraw(accountID, token string, amount types.Amount) (types.Amount, error) {
	acc, err := d.account(accountID)
	if err != nil {
		return types.Amount{}, err
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
	return amount, nil
}
