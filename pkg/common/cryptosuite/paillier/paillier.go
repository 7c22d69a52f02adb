package paillier

import (
	"math/big"

	pailliercore "github.com/mr-shifu/paillier-lib/core/paillier"
	"github.com/mr-shifu/paillier-lib/pkg/common/keyopts"
)

type PaillierKey interface {
	// Bytes returns the byte representation of the key.
	Bytes() ([]byte, error)

	// SKI returns the serialized key identifier.
	SKI() []byte

	// Private returns true if the key is private.
	Private() bool

	// PublicKey returns the corresponding public key part of Paillier Key.
	PublicKey() PaillierKey

	PublicKeyRaw() *pailliercore.PublicKey

	// SecretKeyRaw returns the secret key, or nil for public keys.
	SecretKeyRaw() *pailliercore.SecretKey

	// ParamN returns the modulus N.
	ParamN() *big.Int

	// Encrypt returns a fresh encryption of m.
	Encrypt(m *big.Int) (*pailliercore.Ciphertext, error)

	// Decrypt returns the plaintext of ct. It fails for public keys.
	Decrypt(ct *pailliercore.Ciphertext) (*big.Int, error)

	// VerifyHomomorphism checks the homomorphic laws of the key pair on m1 and m2.
	VerifyHomomorphism(m1, m2 *big.Int) (*pailliercore.Report, error)
}

type PaillierKeyManager interface {
	// GenerateKey generates a new Paillier key pair.
	GenerateKey(opts keyopts.Options) (PaillierKey, error)

	// ImportKey imports a Paillier key from its byte representation or as a PaillierKey.
	ImportKey(data interface{}, opts keyopts.Options) (PaillierKey, error)

	// GetKey returns the Paillier key linked to the key ID in opts.
	GetKey(opts keyopts.Options) (PaillierKey, error)

	// DeleteKey removes the Paillier key linked to the key ID in opts.
	DeleteKey(opts keyopts.Options) error

	// Encrypt returns a fresh encryption of m.
	Encrypt(m *big.Int, opts keyopts.Options) (*pailliercore.Ciphertext, error)

	// Decrypt returns the plaintext of ct.
	Decrypt(ct *pailliercore.Ciphertext, opts keyopts.Options) (*big.Int, error)

	// EncryptBatch encrypts every plaintext concurrently, preserving order.
	EncryptBatch(ms []*big.Int, opts keyopts.Options) ([]*pailliercore.Ciphertext, error)

	// VerifyHomomorphism checks the homomorphic laws of the key pair on m1 and m2.
	VerifyHomomorphism(m1, m2 *big.Int, opts keyopts.Options) (*pailliercore.Report, error)
}
