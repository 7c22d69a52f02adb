package arith

import (
	"math/big"

	"github.com/cronokirby/saferith"
	"github.com/pkg/errors"
)

var (
	ErrNoInverse       = errors.New("arith: no modular inverse exists")
	ErrInexactDivision = errors.New("arith: L(x) is not an exact division")
)

var oneNat = new(saferith.Nat).SetUint64(1)

// ModPow returns base^exponent (mod modulus).
//
// The running time depends only on the announced lengths of base and exponent,
// never on their bits, so it is safe to call with secret exponents such as λ.
func ModPow(base, exponent *saferith.Nat, modulus *saferith.Modulus) *saferith.Nat {
	b := new(saferith.Nat).Mod(base, modulus)
	return new(saferith.Nat).Exp(b, exponent, modulus)
}

// ModInverse returns a⁻¹ (mod modulus), or ErrNoInverse if gcd(a, modulus) ≠ 1.
// modulus must be odd.
func ModInverse(a *saferith.Nat, modulus *saferith.Modulus) (*saferith.Nat, error) {
	reduced := new(saferith.Nat).Mod(a, modulus)
	if reduced.IsUnit(modulus) != 1 {
		return nil, ErrNoInverse
	}
	return new(saferith.Nat).ModInverse(reduced, modulus), nil
}

// GCD returns gcd(a, b) for nonnegative a and b.
func GCD(a, b *big.Int) *big.Int {
	return new(big.Int).GCD(nil, nil, new(big.Int).Abs(a), new(big.Int).Abs(b))
}

// LCM returns lcm(a, b) = a⋅b / gcd(a, b) for nonnegative a and b.
// LCM(0, x) = 0.
func LCM(a, b *big.Int) *big.Int {
	if a.Sign() == 0 || b.Sign() == 0 {
		return new(big.Int)
	}
	gcd := GCD(a, b)
	lcm := new(big.Int).Div(new(big.Int).Abs(a), gcd)
	return lcm.Mul(lcm, new(big.Int).Abs(b))
}

// L computes L(x) = (x-1)/n.
//
// It returns ErrInexactDivision unless x ≡ 1 (mod n).
func L(x *saferith.Nat, n *saferith.Modulus) (*saferith.Nat, error) {
	if x.EqZero() == 1 {
		return nil, ErrInexactDivision
	}
	xMinus1 := new(saferith.Nat).Sub(x, oneNat, -1)
	if new(saferith.Nat).Mod(xMinus1, n).EqZero() != 1 {
		return nil, ErrInexactDivision
	}
	return new(saferith.Nat).Div(xMinus1, n, -1), nil
}
