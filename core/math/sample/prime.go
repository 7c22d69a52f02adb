package sample

import (
	"io"
	"math/big"

	"github.com/cronokirby/saferith"
	"github.com/mr-shifu/paillier-lib/core/params"
	"github.com/pkg/errors"
)

var (
	ErrPrimeTooSmall     = errors.New("sample: safe prime must have at least 3 bits")
	ErrNotPrime          = errors.New("sample: supposed prime is not prime")
	ErrNotSafePrime      = errors.New("sample: supposed prime is not a safe prime")
	ErrSafePrimeNotFound = errors.New("sample: no safe prime found within the candidate cap")
)

// primeRounds is the Miller-Rabin round count passed to ProbablyPrime,
// on top of the Baillie-PSW test it always runs.
const primeRounds = 20

var (
	one = big.NewInt(1)
	two = big.NewInt(2)

	smallPrimes = []uint64{
		3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47, 53, 59, 61, 67, 71,
		73, 79, 83, 89, 97, 101, 103, 107, 109, 113, 127, 131, 137, 139, 149, 151,
		157, 163, 167, 173, 179, 181, 191, 193, 197, 199, 211, 223, 227, 229, 233,
		239, 241, 251,
	}
)

// sieve reports whether p has no factor in smallPrimes other than itself.
func sieve(p *big.Int) bool {
	var m, d big.Int
	for _, s := range smallPrimes {
		if p.IsUint64() && p.Uint64() == s {
			return true
		}
		if m.Mod(p, d.SetUint64(s)).Sign() == 0 {
			return false
		}
	}
	return true
}

// SafePrime returns a prime p of exactly bits bits such that (p-1)/2 is also prime.
//
// Sophie Germain candidates q of bits-1 bits are read from rand with the two
// top bits and the low bit set, so p = 2q+1 always has exactly bits bits.
// Every byte comes from rand, so a deterministic reader gives a deterministic prime.
func SafePrime(rand io.Reader, bits int) (*saferith.Nat, error) {
	if bits < 3 {
		return nil, ErrPrimeTooSmall
	}
	rand = mustReader(rand)

	qBits := bits - 1
	buf := make([]byte, (qBits+7)/8)
	excess := 8*len(buf) - qBits
	q, p := new(big.Int), new(big.Int)
	for i := 0; i < params.MaxSafePrimeCandidates; i++ {
		if _, err := io.ReadFull(rand, buf); err != nil {
			return nil, errors.WithMessage(err, "sample: failed to read prime candidate")
		}
		buf[0] &= 0xff >> excess
		q.SetBytes(buf)
		q.SetBit(q, qBits-1, 1).SetBit(q, qBits-2, 1).SetBit(q, 0, 1)
		p.Lsh(q, 1).Add(p, one)
		if !sieve(q) || !sieve(p) {
			continue
		}
		if ValidateSafePrime(p) == nil {
			return new(saferith.Nat).SetBig(p, bits), nil
		}
	}
	return nil, ErrSafePrimeNotFound
}

// ValidateSafePrime checks that p is prime and that (p-1)/2 is prime.
func ValidateSafePrime(p *big.Int) error {
	if p == nil || p.Cmp(two) <= 0 || !p.ProbablyPrime(primeRounds) {
		return ErrNotPrime
	}
	q := new(big.Int).Rsh(p, 1)
	if !q.ProbablyPrime(primeRounds) {
		return ErrNotSafePrime
	}
	return nil
}
