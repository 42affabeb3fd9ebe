package types

import "cosmossdk.io/errors"

// Codespace groups every error this module registers, the way osmosis
// registers cltypes errors under its own module codespace.
const Codespace = "clamm"

// User-visible errors: invariants guarding inputs the caller controls.
// These propagate unchanged and carry enough information to be rendered.
var (
	ErrInvalidParams             = errors.Register(Codespace, 100, "invalid params")
	ErrIllegalFee                = errors.Register(Codespace, 101, "illegal fee")
	ErrIllegalWithdrawAmount     = errors.Register(Codespace, 102, "illegal withdraw amount")
	ErrSlippage                  = errors.Register(Codespace, 103, "slippage")
	ErrSwapAmountTooSmall        = errors.Register(Codespace, 104, "swap amount too small")
	ErrSwapAmountTooLarge        = errors.Register(Codespace, 105, "swap amount too large")
	ErrInsufficientLiquidity     = errors.Register(Codespace, 106, "insufficient liquidity")
	ErrLiquidityTooSmall         = errors.Register(Codespace, 107, "liquidity too small")
	ErrLiquidityTooBig           = errors.Register(Codespace, 108, "liquidity too big")
	ErrNotEnoughTokens           = errors.Register(Codespace, 109, "not enough tokens")
	ErrNotYourPosition           = errors.Register(Codespace, 110, "not your position")
	ErrPositionAlreadyExists     = errors.Register(Codespace, 111, "position already exists")
	ErrPositionDoesNotExist      = errors.Register(Codespace, 112, "position does not exist")
	ErrPoolNotRegistered         = errors.Register(Codespace, 113, "pool not registered")
	ErrAccountNotRegistered      = errors.Register(Codespace, 114, "account not registered")
	ErrTokenNotRegistered        = errors.Register(Codespace, 115, "token not registered")
	ErrTokenDuplicates           = errors.Register(Codespace, 116, "token duplicates")
	ErrTokensStorageNotEmpty     = errors.Register(Codespace, 117, "tokens storage not empty")
	ErrUserHasPositions          = errors.Register(Codespace, 118, "user has positions")
	ErrWithdrawInProgress        = errors.Register(Codespace, 119, "withdraw in progress")
	ErrDepositAlreadyHandled     = errors.Register(Codespace, 120, "deposit already handled")
	ErrDepositNotHandled         = errors.Register(Codespace, 121, "deposit not handled")
	ErrDepositNotAllowed         = errors.Register(Codespace, 122, "deposit not allowed")
	ErrUnexpectedRegisterAccount = errors.Register(Codespace, 123, "unexpected register account")
	ErrDepositSenderMustBeSigner = errors.Register(Codespace, 124, "deposit sender must be signer")
	ErrWrongActionResult         = errors.Register(Codespace, 125, "wrong action result")
	ErrAtLeastOneSwap            = errors.Register(Codespace, 126, "at least one swap required")
	ErrExactOneSwap              = errors.Register(Codespace, 127, "exactly one swap required")
	ErrPermissionDenied          = errors.Register(Codespace, 128, "permission denied")
	ErrGuardChangeStateDenied    = errors.Register(Codespace, 129, "guard change state denied")
	ErrPayableAPISuspended       = errors.Register(Codespace, 130, "payable api suspended")
	ErrDepositWouldOverflow      = errors.Register(Codespace, 131, "deposit would overflow")
	ErrPriceTickOutOfBounds      = errors.Register(Codespace, 132, "price tick out of bounds")
)

// Internal errors: arithmetic/bookkeeping corners the implementation
// believes unreachable. These surface as fatal and must never be
// swallowed, retried, or approximated around.
var (
	ErrConvOverflow             = errors.Register(Codespace, 200, "conversion overflow")
	ErrInternalLogicError       = errors.Register(Codespace, 201, "internal logic error")
	ErrInternalTickNotFound     = errors.Register(Codespace, 202, "internal: tick not found")
	ErrInternalDepositMoreThanMax = errors.Register(Codespace, 203, "internal: deposit more than max")
	ErrNaN                      = errors.Register(Codespace, 204, "NaN")
	ErrOverflow                 = errors.Register(Codespace, 205, "overflow")
	ErrNegativeToUnsigned       = errors.Register(Codespace, 206, "negative value cannot convert to unsigned")
	ErrPrecisionLoss            = errors.Register(Codespace, 207, "precision loss")
)

// PositionNotFoundError mirrors the teacher's typed-error convention
// (cltypes.PositionNotFoundError) for the one case callers commonly want to
// pattern-match on: reporting which position was missing.
type PositionNotFoundError struct {
	PositionID uint64
}

func (e PositionNotFoundError) Error() string {
	return errors.Wrapf(ErrPositionDoesNotExist, "position %d", e.PositionID).Error()
}

// PoolNotFoundError mirrors the teacher's typed pool-lookup error.
type PoolNotFoundError struct {
	PoolID uint64
}

func (e PoolNotFoundError) Error() string {
	return errors.Wrapf(ErrPoolNotRegistered, "pool %d", e.PoolID).Error()
}
