package arith

import (
	"math/big"

	"github.com/cronokirby/saferith"
	"github.com/fxamacker/cbor/v2"
	"github.com/pkg/errors"
)

var (
	ErrInvalidModulus = errors.New("arith: modulus must be odd and greater than 1")
)

// Modulus wraps a saferith.Modulus n together with n², the two moduli every
// Paillier operation works with.
type Modulus struct {
	// represents modulus n
	*saferith.Modulus
	// nSquared = n⋅n
	nSquared *saferith.Modulus
}

// NewEmptyModulus returns a Modulus ready to be filled by Deserialize.
func NewEmptyModulus() *Modulus {
	return &Modulus{
		Modulus:  new(saferith.Modulus),
		nSquared: new(saferith.Modulus),
	}
}

// ModulusFromN creates the cached n² for a given modulus n.
// The modulus is not copied.
func ModulusFromN(n *saferith.Modulus) *Modulus {
	nNat := n.Nat()
	nSquared := new(saferith.Nat).Mul(nNat, nNat, 2*n.BitLen())
	return &Modulus{
		Modulus:  n,
		nSquared: saferith.ModulusFromNat(nSquared),
	}
}

// ModulusFromBig validates n (odd, n > 1) and returns the corresponding Modulus.
func ModulusFromBig(n *big.Int) (*Modulus, error) {
	if n == nil || n.Cmp(big.NewInt(1)) <= 0 || n.Bit(0) != 1 {
		return nil, ErrInvalidModulus
	}
	nNat := new(saferith.Nat).SetBig(n, n.BitLen())
	return ModulusFromN(saferith.ModulusFromNat(nNat)), nil
}

// ModulusFromFactors computes n = p⋅q and caches n².
func ModulusFromFactors(p, q *saferith.Nat) *Modulus {
	nNat := new(saferith.Nat).Mul(p, q, -1)
	return ModulusFromN(saferith.ModulusFromNat(nNat))
}

// N returns the modulus n.
func (n *Modulus) N() *saferith.Modulus {
	return n.Modulus
}

// NSquared returns the modulus n².
func (n *Modulus) NSquared() *saferith.Modulus {
	return n.nSquared
}

// Equal returns true if both moduli represent the same n.
func (n *Modulus) Equal(other *Modulus) bool {
	if n == nil || other == nil {
		return n == other
	}
	return n.Modulus.Nat().Eq(other.Modulus.Nat()) == 1
}

type rawModulus struct {
	Modulus []byte
}

// Serialize encodes n; n² is recomputed on Deserialize.
func (n *Modulus) Serialize() ([]byte, error) {
	nb, err := n.Modulus.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return cbor.Marshal(rawModulus{Modulus: nb})
}

func (n *Modulus) Deserialize(data []byte) error {
	var raw rawModulus
	if err := cbor.Unmarshal(data, &raw); err != nil {
		return errors.WithMessage(err, "arith: failed to decode modulus")
	}
	m := new(saferith.Modulus)
	if err := m.UnmarshalBinary(raw.Modulus); err != nil {
		return errors.WithMessage(err, "arith: failed to decode modulus")
	}
	if m.BitLen() < 2 || m.Nat().Byte(0)&1 != 1 {
		return ErrInvalidModulus
	}
	*n = *ModulusFromN(m)
	return nil
}
