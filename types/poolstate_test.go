package types

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dx25labs/clamm-core/internal/xmath"
)

func TestNewPoolStateIsEmpty(t *testing.T) {
	ps := NewPoolState()
	require.True(t, ps.IsEmpty())
	require.Empty(t, ps.Positions)

	for i := range ps.TickStates {
		require.True(t, ps.TickStates[i].IsEmpty(), "fee level %d must start with no initialized ticks", i)
	}
}

func TestPoolStateBecomesNonEmptyOncePriceIsSet(t *testing.T) {
	ps := NewPoolState()
	ps.SpotSqrtprice = xmath.One()
	require.False(t, ps.IsEmpty())
}

func TestNewPoolStateHasOneTickMapPerFeeLevel(t *testing.T) {
	ps := NewPoolState()
	require.Len(t, ps.TickStates, xmath.NumFeeLevels)
}
