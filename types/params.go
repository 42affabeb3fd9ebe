package types

import (
	"github.com/dx25labs/clamm-core/internal/xmath"
)

// Params carries the global constants the hosting shell would otherwise
// hard-code, following the same params-struct-with-getters shape osmosis
// uses for its own module params, even though there is no on-chain
// param-change governance path in this core.
type Params struct {
	NumFeeLevels       int
	BasisPointDivisor  int64
	MinTick            int32
	MaxTick            int32
	MinNetLiquidity    xmath.NetLiquidityUFP
	MaxNetLiquidity    xmath.NetLiquidityUFP
	ProtocolFeeBP      int64
	SwapMaxUnderpay    xmath.Float
}

// DefaultParams mirrors the constants named in the component table: eight
// fee levels, a 10,000 basis-point divisor, and the tick range the
// precomputed sqrtprice table supports.
func DefaultParams() Params {
	minLiq, _ := xmath.NetLiquidityUFPFromFloat(xmath.FromFloat64(1))
	maxLiq, _ := xmath.NetLiquidityUFPFromFloat(xmath.FromFloat64(1e30))
	return Params{
		NumFeeLevels:      xmath.NumFeeLevels,
		BasisPointDivisor: xmath.BasisPointDivisor,
		MinTick:           xmath.MinTick,
		MaxTick:           xmath.MaxTick,
		MinNetLiquidity:   minLiq,
		MaxNetLiquidity:   maxLiq,
		ProtocolFeeBP:     1000,
		SwapMaxUnderpay:   xmath.FromFloat64(1e-9),
	}
}

func (p Params) GetNumFeeLevels() int                     { return p.NumFeeLevels }
func (p Params) GetBasisPointDivisor() int64              { return p.BasisPointDivisor }
func (p Params) GetProtocolFeeFraction() xmath.Float {
	return xmath.FromFloat64(float64(p.ProtocolFeeBP)).Quo(xmath.FromFloat64(float64(p.BasisPointDivisor)))
}
