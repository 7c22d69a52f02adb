package sample

import (
	cryptorand "crypto/rand"
	"io"

	"github.com/cronokirby/saferith"
	"github.com/mr-shifu/paillier-lib/core/params"
	"github.com/pkg/errors"
)

var (
	ErrRandomSamplingExhausted = errors.New("sample: rejection sampling exceeded its iteration cap")
)

func mustReader(rand io.Reader) io.Reader {
	if rand == nil {
		return cryptorand.Reader
	}
	return rand
}

// below draws x uniformly from [0, bound) by masking the excess high bits of a
// random buffer and rejecting values ≥ bound. ok is false when the draw was rejected.
func below(rand io.Reader, bound *saferith.Modulus, buf []byte) (x *saferith.Nat, ok bool, err error) {
	if _, err := io.ReadFull(rand, buf); err != nil {
		return nil, false, errors.WithMessage(err, "sample: failed to read random bytes")
	}
	if excess := 8*len(buf) - bound.BitLen(); excess > 0 {
		buf[0] &= 0xff >> excess
	}
	x = new(saferith.Nat).SetBytes(buf)
	if _, _, lt := x.CmpMod(bound); lt != 1 {
		return nil, false, nil
	}
	return x.Resize(bound.BitLen()), true, nil
}

// UnitBelow samples x uniformly in [0, bound) such that gcd(x, modulus) = 1.
//
// At most params.MaxSamplingIterations values are drawn; after that
// ErrRandomSamplingExhausted is returned. A nil rand uses crypto/rand.
func UnitBelow(rand io.Reader, bound, modulus *saferith.Modulus) (*saferith.Nat, error) {
	rand = mustReader(rand)
	buf := make([]byte, (bound.BitLen()+7)/8)
	for i := 0; i < params.MaxSamplingIterations; i++ {
		x, ok, err := below(rand, bound, buf)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		if new(saferith.Nat).Mod(x, modulus).IsUnit(modulus) == 1 {
			return x, nil
		}
	}
	return nil, ErrRandomSamplingExhausted
}

// UnitModN samples x ∈ ℤₙˣ uniformly.
func UnitModN(rand io.Reader, n *saferith.Modulus) (*saferith.Nat, error) {
	return UnitBelow(rand, n, n)
}
