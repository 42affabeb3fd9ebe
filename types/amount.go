package types

import (
	"math"

	sdkmath "cosmossdk.io/math"

	"github.com/dx25labs/clamm-core/internal/xmath"
)

// Amount is the canonical on-chain integer token amount, wrapping
// cosmossdk.io/math.Int the way the teacher wraps every balance in
// sdk.Int rather than a raw machine integer.
type Amount struct {
	v sdkmath.Int
}

func NewAmount(i int64) Amount { return Amount{sdkmath.NewInt(i)} }
func ZeroAmount() Amount       { return Amount{sdkmath.ZeroInt()} }

func (a Amount) Int() sdkmath.Int { return a.v }
func (a Amount) IsZero() bool     { return a.v.IsNil() || a.v.IsZero() }
func (a Amount) IsNegative() bool {
	return !a.v.IsNil() && a.v.IsNegative()
}
func (a Amount) Add(o Amount) Amount { return Amount{a.v.Add(o.v)} }
func (a Amount) Sub(o Amount) Amount { return Amount{a.v.Sub(o.v)} }
func (a Amount) Cmp(o Amount) int    { return a.v.BigInt().Cmp(o.v.BigInt()) }
func (a Amount) String() string      { return a.v.String() }

// AmountFromFloatCeil converts f to an Amount, rounding any fractional
// remainder up (favoring the pool) — used for amounts owed to the pool.
func AmountFromFloatCeil(f xmath.Float) (Amount, error) {
	return amountFromFloat(f, true)
}

// AmountFromFloatFloor converts f to an Amount, rounding any fractional
// remainder down (favoring the pool) — used for amounts paid out.
func AmountFromFloatFloor(f xmath.Float) (Amount, error) {
	return amountFromFloat(f, false)
}

func amountFromFloat(f xmath.Float, ceil bool) (Amount, error) {
	if f.IsNaN() {
		return Amount{}, ErrNaN
	}
	if f.Sign() < 0 {
		return Amount{}, ErrNegativeToUnsigned
	}
	if f.IsZero() {
		return ZeroAmount(), nil
	}
	// Float -> Amount always quantizes to an integer first; ceil/floor here
	// are the two stdlib-exact operations the numeric layer reserves for
	// final quantization (every other op goes through ties-to-away).
	raw := f.Float64()
	var quantized float64
	if ceil {
		quantized = math.Ceil(raw)
	} else {
		quantized = math.Floor(raw)
	}
	bi, err := xmath.FloatToInteger(xmath.FromFloat64(quantized))
	if err != nil {
		return Amount{}, translateXmathErr(err)
	}
	if bi.BitLen() > 256 {
		return Amount{}, ErrOverflow
	}
	return Amount{sdkmath.NewIntFromBigInt(bi)}, nil
}

func translateXmathErr(err error) error {
	switch err {
	case xmath.ErrNaN:
		return ErrNaN
	case xmath.ErrNegativeToUnsigned:
		return ErrNegativeToUnsigned
	case xmath.ErrOverflow:
		return ErrOverflow
	default:
		return ErrInternalLogicError
	}
}
