package paillier

import (
	"github.com/mr-shifu/paillier-lib/core/math/sample"
	"github.com/pkg/errors"
)

var (
	ErrPlaintextOutOfRange  = errors.New("paillier: plaintext must be in [0, N)")
	ErrCiphertextOutOfRange = errors.New("paillier: ciphertext must be in [0, N²)")
	ErrMalformedCiphertext  = errors.New("paillier: ciphertext is not a unit mod N²")
	ErrModulusMismatch      = errors.New("paillier: modulus does not belong to the key")

	ErrInvalidBitLength       = errors.New("paillier: prime bit length is too small")
	ErrInvalidPrimes          = errors.New("paillier: p and q must be distinct odd primes")
	ErrInvalidPublicKey       = errors.New("paillier: invalid public key")
	ErrInvalidSecretKey       = errors.New("paillier: invalid secret key")
	ErrInvalidNonce           = errors.New("paillier: nonce must be a unit mod N")
	ErrKeyGenerationFailure   = errors.New("paillier: key generation failed")
	ErrKeyGenerationInvariant = errors.New("paillier: key generation invariant violated")

	ErrHomomorphismViolation = errors.New("paillier: homomorphism violation")

	// ErrRandomSamplingExhausted is returned once every sampling retry has been used up.
	// Unlike the other errors, the caller may retry the whole operation.
	ErrRandomSamplingExhausted = sample.ErrRandomSamplingExhausted
)
