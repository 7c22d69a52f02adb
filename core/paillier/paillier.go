// Package paillier implements the Paillier cryptosystem: key generation from
// safe primes, probabilistic encryption, decryption through the L-function, and
// the homomorphic laws of the scheme.
//
// All functions are synchronous and take their randomness from an injected
// io.Reader; a nil reader falls back to crypto/rand. Keys are immutable, so a
// single key pair may serve any number of concurrent Encrypt and Decrypt calls.
package paillier

import (
	"io"
	"math/big"
)

// Encrypt returns a fresh encryption of plaintext under pk as an integer in [0, N²).
func Encrypt(rand io.Reader, plaintext *big.Int, pk *PublicKey) (*big.Int, error) {
	ct, err := pk.Encrypt(rand, plaintext)
	if err != nil {
		return nil, err
	}
	return ct.Big(), nil
}

// Decrypt returns the plaintext of ciphertext under key.
// n must be the modulus key was derived with.
func Decrypt(ciphertext *big.Int, key *DecryptionKey, n *big.Int) (*big.Int, error) {
	if err := key.validate(); err != nil {
		return nil, err
	}
	if n == nil || n.Cmp(key.N()) != 0 {
		return nil, ErrModulusMismatch
	}
	ct, err := key.CiphertextFromBig(ciphertext)
	if err != nil {
		return nil, err
	}
	return key.Decrypt(ct)
}
