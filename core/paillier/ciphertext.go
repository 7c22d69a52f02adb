package paillier

import (
	"io"
	"math/big"

	"github.com/cronokirby/saferith"
	"github.com/mr-shifu/paillier-lib/core/math/arith"
)

// Ciphertext is an element of [0, N²) produced by PublicKey.Encrypt.
//
// The homomorphic operations below never modify their receiver.
type Ciphertext struct {
	c *saferith.Nat
}

// Big returns the ciphertext as an integer.
func (ct *Ciphertext) Big() *big.Int {
	return ct.c.Big()
}

// Add returns the homomorphic sum ct ⊕ other, which decrypts to m₁ + m₂ (mod N).
//
// ct₁•ct₂ (mod N²)
func (ct *Ciphertext) Add(pk *PublicKey, other *Ciphertext) *Ciphertext {
	return &Ciphertext{c: new(saferith.Nat).ModMul(ct.c, other.c, pk.n.NSquared())}
}

// AddPlain returns ct⋅gᵐ (mod N²), which decrypts to m₁ + m (mod N).
func (ct *Ciphertext) AddPlain(pk *PublicKey, m *big.Int) (*Ciphertext, error) {
	mNat, err := pk.plaintext(m)
	if err != nil {
		return nil, err
	}
	nSquared := pk.n.NSquared()
	c := new(saferith.Nat).Mod(ct.c, nSquared)
	gm := arith.ModPow(pk.g, mNat, nSquared)
	return &Ciphertext{c: c.ModMul(c, gm, nSquared)}, nil
}

// Mul returns the homomorphic scalar product k ⊙ ct, which decrypts to k⋅m (mod N).
// k must lie in the plaintext range [0, N).
//
// ctᵏ (mod N²)
func (ct *Ciphertext) Mul(pk *PublicKey, k *big.Int) (*Ciphertext, error) {
	kNat, err := pk.plaintext(k)
	if err != nil {
		return nil, err
	}
	return &Ciphertext{c: arith.ModPow(ct.c, kNat, pk.n.NSquared())}, nil
}

// Randomize returns ct⋅ρᴺ (mod N²) for a fresh nonce ρ. The result decrypts
// to the same plaintext but cannot be linked to ct.
func (ct *Ciphertext) Randomize(rand io.Reader, pk *PublicKey) (*Ciphertext, error) {
	nonce, err := pk.Nonce(rand)
	if err != nil {
		return nil, err
	}
	return &Ciphertext{c: new(saferith.Nat).ModMul(ct.c, pk.blind(nonce), pk.n.NSquared())}, nil
}

// Equal checks whether ct ≡ other (mod N²).
func (ct *Ciphertext) Equal(other *Ciphertext) bool {
	return ct.c.Eq(other.c) == 1
}

// Clone returns a deep copy of ct.
func (ct *Ciphertext) Clone() *Ciphertext {
	return &Ciphertext{c: ct.c.Clone()}
}

func (ct *Ciphertext) MarshalBinary() ([]byte, error) {
	return ct.c.MarshalBinary()
}

func (ct *Ciphertext) UnmarshalBinary(data []byte) error {
	c := new(saferith.Nat)
	if err := c.UnmarshalBinary(data); err != nil {
		return err
	}
	ct.c = c
	return nil
}

// WriteTo implements io.WriterTo.
func (ct *Ciphertext) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(ct.c.Bytes())
	return int64(n), err
}

// Domain implements hash.WriterToWithDomain.
func (*Ciphertext) Domain() string {
	return "Paillier Ciphertext"
}
