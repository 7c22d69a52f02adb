package paillier

import (
	"io"
	"math/big"

	"github.com/cronokirby/saferith"
	"github.com/fxamacker/cbor/v2"
	"github.com/mr-shifu/paillier-lib/core/math/arith"
	"github.com/mr-shifu/paillier-lib/core/math/sample"
	"github.com/mr-shifu/paillier-lib/core/params"
	"github.com/pkg/errors"
)

var one = big.NewInt(1)

// SecretKey is the secret key (λ, μ) corresponding to a Paillier PublicKey.
//
// λ = lcm(p-1, q-1) and μ = L(g^λ mod N²)⁻¹ (mod N), where L(x) = (x-1)/N.
// A SecretKey is never mutated after construction and may be shared freely
// between goroutines.
type SecretKey struct {
	*PublicKey
	dk *DecryptionKey
}

// DecryptionKey is the part of a secret key that decryption needs: (λ, μ) and N.
// It can be rebuilt without g, but then μ cannot be checked against L(g^λ mod N²).
type DecryptionKey struct {
	// n = p⋅q, with n² cached
	n *arith.Modulus
	// lambda = λ
	lambda *saferith.Nat
	// mu = μ
	mu *saferith.Nat
}

type rawSecretKey struct {
	Public []byte
	Lambda []byte
	Mu     []byte
}

// GenerateKeypair generates two independent safe primes of bits bits each and
// derives the key pair from them. A nil rand uses crypto/rand.
func GenerateKeypair(rand io.Reader, bits int) (*PublicKey, *SecretKey, error) {
	if bits < params.MinBitsSafePrime {
		return nil, nil, ErrInvalidBitLength
	}

	p, err := sample.SafePrime(rand, bits)
	if err != nil {
		return nil, nil, errors.WithMessage(err, "paillier: failed to generate p")
	}
	var q *saferith.Nat
	for i := 0; ; i++ {
		if i == params.MaxDistinctPrimeAttempts {
			return nil, nil, errors.WithMessage(ErrKeyGenerationFailure, "p and q keep colliding")
		}
		if q, err = sample.SafePrime(rand, bits); err != nil {
			return nil, nil, errors.WithMessage(err, "paillier: failed to generate q")
		}
		if p.Eq(q) != 1 {
			break
		}
	}

	n := arith.ModulusFromFactors(p, q)
	lambda := lambdaFromPrimes(p.Big(), q.Big())

	// g ∈ ℤₙ₂ˣ, resampled while L(g^λ mod N²) is not invertible
	for i := 0; ; i++ {
		g, err := retrySampling(func() (*saferith.Nat, error) {
			return sample.UnitBelow(rand, n.NSquared(), n.NSquared())
		})
		if err != nil {
			return nil, nil, err
		}

		sk, err := newSecretKey(&PublicKey{n: n, g: g}, lambda)
		if err == nil {
			return sk.PublicKey, sk, nil
		}
		if !errors.Is(err, ErrKeyGenerationFailure) || i+1 == params.SamplingRetries {
			return nil, nil, err
		}
	}
}

// NewKeypairFromPrimes derives the key pair for N = p⋅q and the generator g.
//
// p and q must be distinct odd primes; they are not required to be safe primes,
// which allows small fixed test vectors.
func NewKeypairFromPrimes(p, q, g *big.Int) (*PublicKey, *SecretKey, error) {
	if p == nil || q == nil || p.Cmp(q) == 0 {
		return nil, nil, ErrInvalidPrimes
	}
	for _, f := range []*big.Int{p, q} {
		if f.Bit(0) != 1 || f.Cmp(one) <= 0 || !f.ProbablyPrime(20) {
			return nil, nil, ErrInvalidPrimes
		}
	}

	pk, err := NewPublicKey(new(big.Int).Mul(p, q), g)
	if err != nil {
		return nil, nil, err
	}
	sk, err := newSecretKey(pk, lambdaFromPrimes(p, q))
	if err != nil {
		return nil, nil, err
	}
	return pk, sk, nil
}

// NewSecretKey rebuilds a secret key from (λ, μ) and the public key it belongs to.
// It checks that μ⋅L(g^λ mod N²) ≡ 1 (mod N).
func NewSecretKey(pk *PublicKey, lambda, mu *big.Int) (*SecretKey, error) {
	if err := pk.Validate(); err != nil {
		return nil, err
	}
	dk, err := newDecryptionKey(pk.n, lambda, mu)
	if err != nil {
		return nil, err
	}
	sk := &SecretKey{PublicKey: pk, dk: dk}
	if err := sk.Validate(); err != nil {
		return nil, err
	}
	return sk, nil
}

// NewDecryptionKey rebuilds a decryption key from N, λ and μ alone.
//
// Only ranges are checked: N odd and greater than 1, λ and μ in (0, N).
// μ is not checked against g; use NewSecretKey when g is known.
func NewDecryptionKey(n, lambda, mu *big.Int) (*DecryptionKey, error) {
	nMod, err := arith.ModulusFromBig(n)
	if err != nil {
		return nil, errors.WithMessage(ErrInvalidSecretKey, err.Error())
	}
	return newDecryptionKey(nMod, lambda, mu)
}

func newDecryptionKey(n *arith.Modulus, lambda, mu *big.Int) (*DecryptionKey, error) {
	nBig := n.Big()
	if lambda == nil || lambda.Sign() <= 0 || lambda.Cmp(nBig) >= 0 {
		return nil, errors.WithMessage(ErrInvalidSecretKey, "λ must be in (0, N)")
	}
	if mu == nil || mu.Sign() <= 0 || mu.Cmp(nBig) >= 0 {
		return nil, errors.WithMessage(ErrInvalidSecretKey, "μ must be in (0, N)")
	}
	return &DecryptionKey{
		n:      n,
		lambda: new(saferith.Nat).SetBig(lambda, n.BitLen()),
		mu:     new(saferith.Nat).SetBig(mu, n.BitLen()),
	}, nil
}

func lambdaFromPrimes(p, q *big.Int) *big.Int {
	return arith.LCM(new(big.Int).Sub(p, one), new(big.Int).Sub(q, one))
}

// newSecretKey computes μ = L(g^λ mod N²)⁻¹ (mod N).
func newSecretKey(pk *PublicKey, lambda *big.Int) (*SecretKey, error) {
	lambdaNat := new(saferith.Nat).SetBig(lambda, pk.n.BitLen())
	l, err := lOfGLambda(pk, lambdaNat)
	if err != nil {
		return nil, errors.WithMessage(ErrKeyGenerationInvariant, err.Error())
	}
	mu, err := arith.ModInverse(l, pk.n.N())
	if err != nil {
		return nil, errors.WithMessage(ErrKeyGenerationFailure, err.Error())
	}
	return &SecretKey{
		PublicKey: pk,
		dk:        &DecryptionKey{n: pk.n, lambda: lambdaNat, mu: mu},
	}, nil
}

// lOfGLambda returns L(g^λ mod N²).
func lOfGLambda(pk *PublicKey, lambda *saferith.Nat) (*saferith.Nat, error) {
	x := arith.ModPow(pk.g, lambda, pk.n.NSquared())
	return arith.L(x, pk.n.N())
}

// DecryptionKey returns the (N, λ, μ) part of sk.
func (sk *SecretKey) DecryptionKey() *DecryptionKey {
	if sk == nil {
		return nil
	}
	return sk.dk
}

// Lambda returns λ = lcm(p-1, q-1).
func (sk *SecretKey) Lambda() *big.Int {
	return sk.dk.Lambda()
}

// Mu returns μ = L(g^λ mod N²)⁻¹ (mod N).
func (sk *SecretKey) Mu() *big.Int {
	return sk.dk.Mu()
}

// Validate checks that μ⋅L(g^λ mod N²) ≡ 1 (mod N).
func (sk *SecretKey) Validate() error {
	if sk == nil || sk.PublicKey == nil || sk.dk.validate() != nil {
		return ErrInvalidSecretKey
	}
	if err := sk.PublicKey.Validate(); err != nil {
		return err
	}
	if !sk.n.Equal(sk.dk.n) {
		return errors.WithMessage(ErrInvalidSecretKey, "modulus differs from the public key")
	}
	l, err := lOfGLambda(sk.PublicKey, sk.dk.lambda)
	if err != nil {
		return errors.WithMessage(ErrInvalidSecretKey, err.Error())
	}
	if new(saferith.Nat).ModMul(l, sk.dk.mu, sk.n.N()).Eq(new(saferith.Nat).SetUint64(1)) != 1 {
		return errors.WithMessage(ErrInvalidSecretKey, "μ is not the inverse of L(g^λ mod N²)")
	}
	return nil
}

// Decrypt returns the plaintext m ∈ [0, N) encrypted in ct.
func (sk *SecretKey) Decrypt(ct *Ciphertext) (*big.Int, error) {
	if sk == nil {
		return nil, ErrInvalidSecretKey
	}
	return sk.dk.Decrypt(ct)
}

func (dk *DecryptionKey) validate() error {
	if dk == nil || dk.n == nil || dk.lambda == nil || dk.mu == nil {
		return ErrInvalidSecretKey
	}
	return nil
}

// N returns the modulus N.
func (dk *DecryptionKey) N() *big.Int {
	return dk.n.Big()
}

// Lambda returns λ.
func (dk *DecryptionKey) Lambda() *big.Int {
	return dk.lambda.Big()
}

// Mu returns μ.
func (dk *DecryptionKey) Mu() *big.Int {
	return dk.mu.Big()
}

// CiphertextFromBig checks c ∈ [0, N²) and wraps it as a Ciphertext.
func (dk *DecryptionKey) CiphertextFromBig(c *big.Int) (*Ciphertext, error) {
	return ciphertextFromBig(dk.n, c)
}

// Decrypt returns the plaintext m ∈ [0, N) encrypted in ct.
//
// m = L(ct^λ mod N²)⋅μ (mod N)
func (dk *DecryptionKey) Decrypt(ct *Ciphertext) (*big.Int, error) {
	if err := dk.validate(); err != nil {
		return nil, err
	}
	if !validCiphertexts(dk.n, ct) {
		return nil, ErrCiphertextOutOfRange
	}
	n := dk.n.N()

	// x = ct^λ (mod N²)
	x := arith.ModPow(ct.c, dk.lambda, dk.n.NSquared())
	// l = (x-1)/N, exact for every unit ct
	l, err := arith.L(x, n)
	if err != nil {
		return nil, ErrMalformedCiphertext
	}
	// m = l⋅μ (mod N)
	return new(saferith.Nat).ModMul(l, dk.mu, n).Big(), nil
}

func (sk *SecretKey) MarshalBinary() ([]byte, error) {
	pb, err := sk.PublicKey.MarshalBinary()
	if err != nil {
		return nil, err
	}
	lb, err := sk.dk.lambda.MarshalBinary()
	if err != nil {
		return nil, err
	}
	mb, err := sk.dk.mu.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return cbor.Marshal(rawSecretKey{Public: pb, Lambda: lb, Mu: mb})
}

func (sk *SecretKey) UnmarshalBinary(data []byte) error {
	var raw rawSecretKey
	if err := cbor.Unmarshal(data, &raw); err != nil {
		return errors.WithMessage(err, "paillier: failed to decode secret key")
	}
	pk := new(PublicKey)
	if err := pk.UnmarshalBinary(raw.Public); err != nil {
		return err
	}
	lambda := new(saferith.Nat)
	if err := lambda.UnmarshalBinary(raw.Lambda); err != nil {
		return errors.WithMessage(err, "paillier: failed to decode secret key")
	}
	mu := new(saferith.Nat)
	if err := mu.UnmarshalBinary(raw.Mu); err != nil {
		return errors.WithMessage(err, "paillier: failed to decode secret key")
	}
	decoded, err := NewSecretKey(pk, lambda.Big(), mu.Big())
	if err != nil {
		return err
	}
	*sk = *decoded
	return nil
}
