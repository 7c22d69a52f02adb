package paillier

import (
	"io"
	"math/big"

	"github.com/fxamacker/cbor/v2"
	"github.com/mr-shifu/paillier-lib/core/hash"
	pailliercore "github.com/mr-shifu/paillier-lib/core/paillier"
	cs_paillier "github.com/mr-shifu/paillier-lib/pkg/common/cryptosuite/paillier"
	"github.com/pkg/errors"
)

// SKILength is the size of a key identifier in bytes.
const SKILength = 32

var (
	ErrInvalidKey = errors.New("paillier: invalid key")
	ErrNotPrivate = errors.New("paillier: key has no secret part")
)

type PaillierKey struct {
	secretKey *pailliercore.SecretKey
	publicKey *pailliercore.PublicKey
	rand      io.Reader
}

var _ cs_paillier.PaillierKey = PaillierKey{}

type rawPaillierKey struct {
	N      []byte
	G      []byte
	Lambda []byte `cbor:",omitempty"`
	Mu     []byte `cbor:",omitempty"`
}

// NewPaillierKey wraps a key pair. sk may be nil for a public key. A nil rand
// uses crypto/rand for encryption.
func NewPaillierKey(sk *pailliercore.SecretKey, pk *pailliercore.PublicKey, rand io.Reader) PaillierKey {
	if sk != nil {
		pk = sk.PublicKey
	}
	return PaillierKey{secretKey: sk, publicKey: pk, rand: rand}
}

// Bytes returns the cbor encoding of N and g, followed by λ and μ for private keys.
func (k PaillierKey) Bytes() ([]byte, error) {
	if k.publicKey == nil {
		return nil, ErrInvalidKey
	}
	raw := rawPaillierKey{
		N: k.publicKey.N().Bytes(),
		G: k.publicKey.G().Bytes(),
	}
	if k.Private() {
		raw.Lambda = k.secretKey.Lambda().Bytes()
		raw.Mu = k.secretKey.Mu().Bytes()
	}
	return cbor.Marshal(raw)
}

// SKI returns the Subject Key Identifier of the key, derived from N and g.
func (k PaillierKey) SKI() []byte {
	if k.publicKey == nil {
		return nil
	}
	ski := make([]byte, SKILength)
	if _, err := io.ReadFull(hash.New(k.publicKey).Digest(), ski); err != nil {
		return nil
	}
	return ski
}

// Private returns true if the key contains secret key.
func (k PaillierKey) Private() bool {
	return k.secretKey != nil
}

// PublicKey returns the public key part of the key.
func (k PaillierKey) PublicKey() cs_paillier.PaillierKey {
	return PaillierKey{publicKey: k.publicKey, rand: k.rand}
}

func (k PaillierKey) PublicKeyRaw() *pailliercore.PublicKey {
	return k.publicKey
}

func (k PaillierKey) SecretKeyRaw() *pailliercore.SecretKey {
	return k.secretKey
}

// ParamN returns the N param of the key.
func (k PaillierKey) ParamN() *big.Int {
	return k.publicKey.N()
}

func (k PaillierKey) Encrypt(m *big.Int) (*pailliercore.Ciphertext, error) {
	return k.publicKey.Encrypt(k.rand, m)
}

func (k PaillierKey) Decrypt(ct *pailliercore.Ciphertext) (*big.Int, error) {
	if !k.Private() {
		return nil, ErrNotPrivate
	}
	return k.secretKey.Decrypt(ct)
}

func (k PaillierKey) VerifyHomomorphism(m1, m2 *big.Int) (*pailliercore.Report, error) {
	if !k.Private() {
		return nil, ErrNotPrivate
	}
	return pailliercore.VerifyHomomorphism(k.rand, m1, m2, k.publicKey, k.secretKey)
}

// fromBytes returns a Paillier key from its cbor encoding.
func fromBytes(data []byte, rand io.Reader) (PaillierKey, error) {
	var raw rawPaillierKey
	if err := cbor.Unmarshal(data, &raw); err != nil {
		return PaillierKey{}, errors.WithMessage(ErrInvalidKey, err.Error())
	}

	pk, err := pailliercore.NewPublicKey(new(big.Int).SetBytes(raw.N), new(big.Int).SetBytes(raw.G))
	if err != nil {
		return PaillierKey{}, err
	}
	if len(raw.Lambda) == 0 && len(raw.Mu) == 0 {
		return NewPaillierKey(nil, pk, rand), nil
	}

	sk, err := pailliercore.NewSecretKey(pk, new(big.Int).SetBytes(raw.Lambda), new(big.Int).SetBytes(raw.Mu))
	if err != nil {
		return PaillierKey{}, err
	}
	return NewPaillierKey(sk, pk, rand), nil
}
