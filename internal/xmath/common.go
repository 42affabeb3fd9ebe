package xmath

// Side is a swap direction: Left (token0 -> token1) or Right (token1 ->
// token0), also used to select which of a tick's two effective prices is
// meant.
type Side uint8

const (
	Left Side = iota
	Right
)

func (s Side) Opposite() Side {
	if s == Left {
		return Right
	}
	return Left
}

// FeeLevel indexes one of the eight parallel fee tiers sharing a pool.
type FeeLevel uint8

// NumFeeLevels is the fixed count of parallel fee tiers every pool carries.
const NumFeeLevels = 8

// BasisPointDivisor is the denominator basis-point fractions (protocol fee,
// fee rates) are expressed against.
const BasisPointDivisor = 10000

// FeeRateTicks returns the tick-width half-spread of fee level L, 2^L.
func FeeRateTicks(level FeeLevel) int32 { return 1 << uint(level) }
