package xmath

// MinEffTick and MaxEffTick bound an EffTick: a tick offset by at most the
// widest fee level's half-spread (2^7 = 128) still has to resolve to a
// valid spot sqrtprice, so the effective range is widened accordingly.
const (
	MinEffTick = MinTick - (1 << (NumFeeLevels - 1))
	MaxEffTick = MaxTick + (1 << (NumFeeLevels - 1))
)

// EffTick is a Tick shifted by a fee level's half-spread on a given side;
// it lets tick-crossing logic treat every fee tier's boundary as a phantom
// spot tick.
type EffTick struct{ index int32 }

func NewEffTick(index int32) (EffTick, error) {
	if index < MinEffTick || index > MaxEffTick {
		return EffTick{}, ErrPriceTickOutOfBounds
	}
	return EffTick{index}, nil
}

func (e EffTick) Index() int32 { return e.index }

// EffTickFromTick computes +tick+2^L on the left side, -tick+2^L on the
// right.
func EffTickFromTick(t Tick, level FeeLevel, side Side) EffTick {
	var idx int32
	if side == Left {
		idx = t.Index() + FeeRateTicks(level)
	} else {
		idx = -t.Index() + FeeRateTicks(level)
	}
	// idx is always in range because t is a valid Tick and the shift is
	// bounded by the widest fee level's half-spread.
	return EffTick{idx}
}

// ToTick inverts EffTickFromTick; fails if the unshifted index would fall
// outside the valid Tick range.
func (e EffTick) ToTick(level FeeLevel, side Side) (Tick, error) {
	var idx int32
	if side == Left {
		idx = e.index - FeeRateTicks(level)
	} else {
		idx = -e.index + FeeRateTicks(level)
	}
	return NewTick(idx)
}

// EffSqrtprice treats the effective tick as if it were itself a spot tick;
// valid as long as e.index stays within MinEffTick..MaxEffTick, which
// SpotSqrtprice's bit-iteration over |index| tolerates.
func (e EffTick) EffSqrtprice() Float {
	return Tick{e.index}.SpotSqrtprice()
}

// Opposite returns the effective tick with the same spot price on the
// opposite side of the same fee level: -index + 2^(L+1).
func (e EffTick) Opposite(level FeeLevel) EffTick {
	opp := -e.index + (1 << uint(level+1))
	return EffTick{opp}
}

// Shifted moves the effective tick by step, failing if the result leaves
// the valid range.
func (e EffTick) Shifted(step int32) (EffTick, error) {
	return NewEffTick(e.index + step)
}
