package types

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dx25labs/clamm-core/internal/xmath"
)

func TestDefaultParamsBounds(t *testing.T) {
	p := DefaultParams()

	require.Equal(t, xmath.NumFeeLevels, p.GetNumFeeLevels())
	require.Equal(t, int64(xmath.BasisPointDivisor), p.GetBasisPointDivisor())
	require.True(t, p.MinNetLiquidity.Cmp(p.MaxNetLiquidity) < 0)
}

func TestProtocolFeeFractionMatchesBasisPoints(t *testing.T) {
	p := DefaultParams()
	got := p.GetProtocolFeeFraction().Float64()
	require.InDelta(t, float64(p.ProtocolFeeBP)/float64(p.BasisPointDivisor), got, 1e-12)
}
