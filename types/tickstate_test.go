package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewTickStateZeroValue(t *testing.T) {
	ts := NewTickState()
	require.Equal(t, uint32(0), ts.ReferenceCounter)
	require.True(t, ts.NetLiquidityChange.Mag.IsZero())
}
