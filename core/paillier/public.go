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

// PublicKey is a Paillier public key (N, g).
type PublicKey struct {
	// n = p⋅q, with n² cached
	n *arith.Modulus
	// g ∈ ℤₙ₂ˣ
	g *saferith.Nat
}

type rawPublicKey struct {
	N []byte
	G []byte
}

// NewPublicKey validates (n, g) and returns the corresponding public key.
// n must be odd and greater than 1, g must be a unit in [0, n²).
func NewPublicKey(n, g *big.Int) (*PublicKey, error) {
	nMod, err := arith.ModulusFromBig(n)
	if err != nil {
		return nil, errors.WithMessage(ErrInvalidPublicKey, err.Error())
	}
	if g == nil || g.Sign() < 0 || g.Cmp(nMod.NSquared().Big()) >= 0 {
		return nil, errors.WithMessage(ErrInvalidPublicKey, "g must be in [0, N²)")
	}
	gNat := new(saferith.Nat).SetBig(g, nMod.NSquared().BitLen())
	if gNat.IsUnit(nMod.NSquared()) != 1 {
		return nil, errors.WithMessage(ErrInvalidPublicKey, "g must be coprime to N²")
	}
	return &PublicKey{n: nMod, g: gNat}, nil
}

// N returns the modulus N.
func (pk *PublicKey) N() *big.Int {
	return pk.n.Big()
}

// G returns the generator g.
func (pk *PublicKey) G() *big.Int {
	return pk.g.Big()
}

// NSquared returns N².
func (pk *PublicKey) NSquared() *big.Int {
	return pk.n.NSquared().Big()
}

// Modulus returns N together with N².
func (pk *PublicKey) Modulus() *arith.Modulus {
	return pk.n
}

// Equal returns true if pk and other hold the same N and g.
func (pk *PublicKey) Equal(other *PublicKey) bool {
	if pk == nil || other == nil {
		return pk == other
	}
	return pk.n.Equal(other.n) && pk.g.Eq(other.g) == 1
}

// Validate checks that N is odd and greater than 1, and that gcd(g, N²) = 1.
func (pk *PublicKey) Validate() error {
	if pk == nil || pk.n == nil || pk.g == nil {
		return ErrInvalidPublicKey
	}
	_, err := NewPublicKey(pk.N(), pk.G())
	return err
}

// Nonce returns a blinding factor ρ ∈ ℤₙˣ.
//
// Sampling is retried params.SamplingRetries times before
// ErrRandomSamplingExhausted is returned.
func (pk *PublicKey) Nonce(rand io.Reader) (*saferith.Nat, error) {
	return retrySampling(func() (*saferith.Nat, error) {
		return sample.UnitModN(rand, pk.n.N())
	})
}

// Encrypt returns a fresh encryption of m under pk.
//
// ct = gᵐρᴺ (mod N²)
func (pk *PublicKey) Encrypt(rand io.Reader, m *big.Int) (*Ciphertext, error) {
	mNat, err := pk.plaintext(m)
	if err != nil {
		return nil, err
	}
	nonce, err := pk.Nonce(rand)
	if err != nil {
		return nil, err
	}
	return pk.encWithNonce(mNat, nonce), nil
}

// EncryptWithNonce returns the encryption of m under pk with the given nonce.
// The nonce must be a unit in [0, N).
func (pk *PublicKey) EncryptWithNonce(m *big.Int, nonce *saferith.Nat) (*Ciphertext, error) {
	mNat, err := pk.plaintext(m)
	if err != nil {
		return nil, err
	}
	if nonce == nil {
		return nil, ErrInvalidNonce
	}
	if _, _, lt := nonce.CmpMod(pk.n.N()); lt != 1 || nonce.IsUnit(pk.n.N()) != 1 {
		return nil, ErrInvalidNonce
	}
	return pk.encWithNonce(mNat, nonce), nil
}

func (pk *PublicKey) encWithNonce(m, nonce *saferith.Nat) *Ciphertext {
	nSquared := pk.n.NSquared()
	gm := arith.ModPow(pk.g, m, nSquared)
	return &Ciphertext{c: new(saferith.Nat).ModMul(gm, pk.blind(nonce), nSquared)}
}

// blind returns ρᴺ (mod N²).
func (pk *PublicKey) blind(nonce *saferith.Nat) *saferith.Nat {
	return arith.ModPow(nonce, pk.n.N().Nat(), pk.n.NSquared())
}

// plaintext checks m ∈ [0, N) and converts it with an announced length of N's bit length.
func (pk *PublicKey) plaintext(m *big.Int) (*saferith.Nat, error) {
	if m == nil || m.Sign() < 0 || m.Cmp(pk.N()) >= 0 {
		return nil, ErrPlaintextOutOfRange
	}
	return new(saferith.Nat).SetBig(m, pk.n.BitLen()), nil
}

// CiphertextFromBig checks c ∈ [0, N²) and wraps it as a Ciphertext.
func (pk *PublicKey) CiphertextFromBig(c *big.Int) (*Ciphertext, error) {
	return ciphertextFromBig(pk.n, c)
}

// ValidateCiphertexts returns true if every ciphertext lies in [0, N²).
func (pk *PublicKey) ValidateCiphertexts(cts ...*Ciphertext) bool {
	return validCiphertexts(pk.n, cts...)
}

func ciphertextFromBig(n *arith.Modulus, c *big.Int) (*Ciphertext, error) {
	if c == nil || c.Sign() < 0 || c.Cmp(n.NSquared().Big()) >= 0 {
		return nil, ErrCiphertextOutOfRange
	}
	return &Ciphertext{c: new(saferith.Nat).SetBig(c, n.NSquared().BitLen())}, nil
}

func validCiphertexts(n *arith.Modulus, cts ...*Ciphertext) bool {
	for _, ct := range cts {
		if ct == nil || ct.c == nil {
			return false
		}
		if _, _, lt := ct.c.CmpMod(n.NSquared()); lt != 1 {
			return false
		}
	}
	return true
}

func (pk *PublicKey) MarshalBinary() ([]byte, error) {
	nb, err := pk.n.Serialize()
	if err != nil {
		return nil, err
	}
	gb, err := pk.g.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return cbor.Marshal(rawPublicKey{N: nb, G: gb})
}

func (pk *PublicKey) UnmarshalBinary(data []byte) error {
	var raw rawPublicKey
	if err := cbor.Unmarshal(data, &raw); err != nil {
		return errors.WithMessage(err, "paillier: failed to decode public key")
	}
	n := arith.NewEmptyModulus()
	if err := n.Deserialize(raw.N); err != nil {
		return errors.WithMessage(err, "paillier: failed to decode public key")
	}
	g := new(saferith.Nat)
	if err := g.UnmarshalBinary(raw.G); err != nil {
		return errors.WithMessage(err, "paillier: failed to decode public key")
	}
	decoded, err := NewPublicKey(n.Big(), g.Big())
	if err != nil {
		return err
	}
	*pk = *decoded
	return nil
}

// WriteTo writes N and g as fixed width big-endian integers.
// It implements io.WriterTo and is used to derive key identifiers.
func (pk *PublicKey) WriteTo(w io.Writer) (int64, error) {
	size := (pk.n.BitLen() + 7) / 8
	buf := make([]byte, 3*size)
	pk.N().FillBytes(buf[:size])
	pk.G().FillBytes(buf[size:])
	n, err := w.Write(buf)
	return int64(n), err
}

// Domain implements hash.WriterToWithDomain.
func (*PublicKey) Domain() string {
	return "Paillier PublicKey"
}

func retrySampling(f func() (*saferith.Nat, error)) (*saferith.Nat, error) {
	var err error
	for i := 0; i < params.SamplingRetries; i++ {
		var x *saferith.Nat
		if x, err = f(); err == nil {
			return x, nil
		}
		if !errors.Is(err, sample.ErrRandomSamplingExhausted) {
			return nil, err
		}
	}
	return nil, err
}
