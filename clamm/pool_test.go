package clamm

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dx25labs/clamm-core/internal/xmath"
	"github.com/dx25labs/clamm-core/types"
)

func TestActiveGrossLiquidityZeroOnEmptyPool(t *testing.T) {
	p := newTestPool()
	require.True(t, p.activeGrossLiquidity().IsZero())
}

func TestActiveGrossLiquidityPositiveAfterOpen(t *testing.T) {
	p := poolWithLiquidity(t)
	require.True(t, p.activeGrossLiquidity().Sign() > 0)
}

func TestNextActiveTickPointersSeatAroundOpenedRange(t *testing.T) {
	p := poolWithLiquidity(t)

	_, hasLeft := p.nextActiveTick(0, types.Left)
	_, hasRight := p.nextActiveTick(0, types.Right)
	require.True(t, hasLeft)
	require.True(t, hasRight)
}

func TestTickLessOrdering(t *testing.T) {
	a := xmath.NewTickUnchecked(-5)
	b := xmath.NewTickUnchecked(5)
	require.True(t, tickLess(a, b))
	require.False(t, tickLess(b, a))
	require.False(t, tickLess(a, a))
}
