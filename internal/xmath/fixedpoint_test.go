package xmath

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAmountUFPRoundTrip(t *testing.T) {
	a, err := AmountUFPFromFloat(FromFloat64(123.5))
	require.NoError(t, err)
	require.InDelta(t, 123.5, a.Float().Float64(), 1e-9)
}

func TestAmountUFPAddSub(t *testing.T) {
	a, err := AmountUFPFromFloat(FromFloat64(10))
	require.NoError(t, err)
	b, err := AmountUFPFromFloat(FromFloat64(4))
	require.NoError(t, err)

	sum := a.Add(b)
	require.InDelta(t, 14, sum.Float().Float64(), 1e-9)

	diff, err := a.Sub(b)
	require.NoError(t, err)
	require.InDelta(t, 6, diff.Float().Float64(), 1e-9)

	_, err = b.Sub(a)
	require.Error(t, err, "subtracting a larger unsigned amount must fail rather than wrap")
}

func TestAmountUFPZeroIsZero(t *testing.T) {
	require.True(t, AmountUFPZero().IsZero())
}

func TestLPFeePerFeeLiquidityAddSubNegate(t *testing.T) {
	five, err := FeeLiquidityGrowthUFPFromFloat(FromFloat64(5))
	require.NoError(t, err)
	three, err := FeeLiquidityGrowthUFPFromFloat(FromFloat64(3))
	require.NoError(t, err)

	a := LPFeePerFeeLiquidity{Mag: five, Neg: false}
	b := LPFeePerFeeLiquidity{Mag: three, Neg: false}

	sum := a.Add(b)
	require.False(t, sum.Neg)
	require.InDelta(t, 8, sum.Mag.Float().Float64(), 1e-9)

	diff := a.Sub(b)
	require.False(t, diff.Neg)
	require.InDelta(t, 2, diff.Mag.Float().Float64(), 1e-9)

	negated := diff.Negate()
	require.True(t, negated.Neg)
	require.InDelta(t, 2, negated.Mag.Float().Float64(), 1e-9)
}

func TestLongestUFPArithmetic(t *testing.T) {
	a, err := LongestUFPFromFloat(FromFloat64(2))
	require.NoError(t, err)
	b, err := LongestUFPFromFloat(FromFloat64(3))
	require.NoError(t, err)

	require.InDelta(t, 5, a.Add(b).Float().Float64(), 1e-6)
	require.InDelta(t, 6, a.Mul(b).Float().Float64(), 1e-6)
	require.InDelta(t, 2, a.Sqrt().Mul(a.Sqrt()).Float().Float64(), 1e-3)
}
