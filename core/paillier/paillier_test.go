package paillier

import (
	"crypto/rand"
	"math/big"
	"sync"
	"testing"

	"github.com/cronokirby/saferith"
	"github.com/mr-shifu/paillier-lib/core/math/sample"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

const testBits = 64

var (
	generatedOnce sync.Once
	generatedPK   *PublicKey
	generatedSK   *SecretKey
	generatedErr  error
)

// generatedKeypair returns a key pair built from two 64 bit safe primes,
// shared by every test of the package.
func generatedKeypair(t *testing.T) (*PublicKey, *SecretKey) {
	generatedOnce.Do(func() {
		generatedPK, generatedSK, generatedErr = GenerateKeypair(rand.Reader, testBits)
	})
	require.NoError(t, generatedErr)
	return generatedPK, generatedSK
}

// vectorKeypair is the insecure p = 11, q = 13, g = N+1 key pair.
func vectorKeypair(t *testing.T) (*PublicKey, *SecretKey) {
	pk, sk, err := NewKeypairFromPrimes(big.NewInt(11), big.NewInt(13), big.NewInt(144))
	require.NoError(t, err)
	return pk, sk
}

type zeroReader struct{}

func (zeroReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	return len(p), nil
}

func TestVectorKeypair(t *testing.T) {
	pk, sk := vectorKeypair(t)

	assert.Equal(t, int64(143), pk.N().Int64())
	assert.Equal(t, int64(20449), pk.NSquared().Int64())
	assert.Equal(t, int64(144), pk.G().Int64())
	// λ = lcm(10, 12)
	assert.Equal(t, int64(60), sk.Lambda().Int64())
	// μ = L((1+N)^λ mod N²)⁻¹ = 60⁻¹ (mod 143)
	assert.Equal(t, int64(31), sk.Mu().Int64())
	assert.NoError(t, sk.Validate())
}

func TestVectorRoundTrip(t *testing.T) {
	pk, sk := vectorKeypair(t)
	rand := sample.NewSeededReader([]byte("vector round trip"))

	for m := int64(0); m < 143; m++ {
		ct, err := pk.Encrypt(rand, big.NewInt(m))
		require.NoError(t, err)
		assert.True(t, pk.ValidateCiphertexts(ct))

		got, err := sk.Decrypt(ct)
		require.NoError(t, err)
		assert.Equal(t, m, got.Int64())
	}
}

func TestVectorScenario(t *testing.T) {
	pk, sk := vectorKeypair(t)

	c5, err := Encrypt(rand.Reader, big.NewInt(5), pk)
	require.NoError(t, err)
	m, err := Decrypt(c5, sk.DecryptionKey(), pk.N())
	require.NoError(t, err)
	assert.Equal(t, int64(5), m.Int64())

	c3, err := Encrypt(rand.Reader, big.NewInt(3), pk)
	require.NoError(t, err)
	sum := new(big.Int).Mul(c3, c5)
	sum.Mod(sum, pk.NSquared())
	m, err = Decrypt(sum, sk.DecryptionKey(), pk.N())
	require.NoError(t, err)
	assert.Equal(t, int64(8), m.Int64())
}

func TestGenerateKeypair(t *testing.T) {
	pk, sk := generatedKeypair(t)

	n := pk.N()
	nSquared := pk.NSquared()
	assert.Equal(t, 2*testBits, n.BitLen())
	assert.Equal(t, uint(1), n.Bit(0))
	assert.Zero(t, nSquared.Cmp(new(big.Int).Mul(n, n)))
	assert.True(t, pk.Equal(sk.PublicKey))

	// gcd(g, N²) = 1
	g := pk.G()
	assert.True(t, g.Cmp(nSquared) < 0)
	assert.Equal(t, int64(1), new(big.Int).GCD(nil, nil, g, nSquared).Int64())

	// μ⋅L(g^λ mod N²) ≡ 1 (mod N)
	x := new(big.Int).Exp(g, sk.Lambda(), nSquared)
	l := new(big.Int).Sub(x, big.NewInt(1))
	r := new(big.Int)
	l.QuoRem(l, n, r)
	assert.Zero(t, r.Sign())
	l.Mul(l, sk.Mu()).Mod(l, n)
	assert.Equal(t, int64(1), l.Int64())

	assert.NoError(t, pk.Validate())
	assert.NoError(t, sk.Validate())
}

func TestGenerateKeypairInvalidBitLength(t *testing.T) {
	_, _, err := GenerateKeypair(rand.Reader, 4)
	assert.True(t, errors.Is(err, ErrInvalidBitLength))
}

func TestRoundTrip(t *testing.T) {
	pk, sk := generatedKeypair(t)
	nMinus1 := new(big.Int).Sub(pk.N(), big.NewInt(1))

	for _, m := range []*big.Int{big.NewInt(0), big.NewInt(1), big.NewInt(123456789), nMinus1} {
		ct, err := pk.Encrypt(rand.Reader, m)
		require.NoError(t, err)
		got, err := sk.Decrypt(ct)
		require.NoError(t, err)
		assert.Zero(t, m.Cmp(got))
	}

	for i := 0; i < 10; i++ {
		m, err := rand.Int(rand.Reader, pk.N())
		require.NoError(t, err)
		c, err := Encrypt(nil, m, pk)
		require.NoError(t, err)
		got, err := Decrypt(c, sk.DecryptionKey(), pk.N())
		require.NoError(t, err)
		assert.Zero(t, m.Cmp(got))
	}
}

func TestProbabilisticEncryption(t *testing.T) {
	pk, sk := generatedKeypair(t)
	m := big.NewInt(42)

	ct1, err := pk.Encrypt(rand.Reader, m)
	require.NoError(t, err)
	ct2, err := pk.Encrypt(rand.Reader, m)
	require.NoError(t, err)
	assert.False(t, ct1.Equal(ct2))

	for _, ct := range []*Ciphertext{ct1, ct2} {
		got, err := sk.Decrypt(ct)
		require.NoError(t, err)
		assert.Equal(t, int64(42), got.Int64())
	}
}

func TestEncryptOutOfRange(t *testing.T) {
	pk, _ := generatedKeypair(t)

	for _, m := range []*big.Int{pk.N(), big.NewInt(-1), new(big.Int).Add(pk.N(), big.NewInt(5)), nil} {
		ct, err := pk.Encrypt(rand.Reader, m)
		assert.True(t, errors.Is(err, ErrPlaintextOutOfRange))
		assert.Nil(t, ct)

		c, err := Encrypt(rand.Reader, m, pk)
		assert.True(t, errors.Is(err, ErrPlaintextOutOfRange))
		assert.Nil(t, c)
	}
}

func TestDecryptErrors(t *testing.T) {
	pk, sk := generatedKeypair(t)

	_, err := Decrypt(pk.NSquared(), sk.DecryptionKey(), pk.N())
	assert.True(t, errors.Is(err, ErrCiphertextOutOfRange))

	_, err = Decrypt(big.NewInt(-1), sk.DecryptionKey(), pk.N())
	assert.True(t, errors.Is(err, ErrCiphertextOutOfRange))

	_, err = Decrypt(big.NewInt(0), sk.DecryptionKey(), pk.N())
	assert.True(t, errors.Is(err, ErrMalformedCiphertext))

	_, err = Decrypt(big.NewInt(1), sk.DecryptionKey(), big.NewInt(143))
	assert.True(t, errors.Is(err, ErrModulusMismatch))

	_, err = sk.Decrypt(nil)
	assert.True(t, errors.Is(err, ErrCiphertextOutOfRange))

	_, err = Decrypt(big.NewInt(1), nil, pk.N())
	assert.True(t, errors.Is(err, ErrInvalidSecretKey))

	var nilSK *SecretKey
	_, err = Decrypt(big.NewInt(1), nilSK.DecryptionKey(), pk.N())
	assert.True(t, errors.Is(err, ErrInvalidSecretKey))
	_, err = nilSK.Decrypt(nil)
	assert.True(t, errors.Is(err, ErrInvalidSecretKey))

	// 1 is the encryption of 0 with nonce 1
	m, err := Decrypt(big.NewInt(1), sk.DecryptionKey(), pk.N())
	require.NoError(t, err)
	assert.Zero(t, m.Sign())
}

func TestVectorMalformedCiphertext(t *testing.T) {
	pk, sk := vectorKeypair(t)

	// multiples of p and q are not units mod N²
	for _, c := range []int64{11, 13, 143, 20449 - 11} {
		_, err := Decrypt(big.NewInt(c), sk.DecryptionKey(), pk.N())
		assert.True(t, errors.Is(err, ErrMalformedCiphertext), "c = %d", c)
	}
}

func TestNewKeypairFromPrimesInvalid(t *testing.T) {
	g := big.NewInt(144)
	cases := []struct {
		name    string
		p, q, g *big.Int
		err     error
	}{
		{"equal primes", big.NewInt(11), big.NewInt(11), g, ErrInvalidPrimes},
		{"even prime", big.NewInt(2), big.NewInt(13), g, ErrInvalidPrimes},
		{"composite", big.NewInt(15), big.NewInt(13), g, ErrInvalidPrimes},
		{"nil prime", nil, big.NewInt(13), g, ErrInvalidPrimes},
		{"g not coprime", big.NewInt(11), big.NewInt(13), big.NewInt(11), ErrInvalidPublicKey},
		{"g too large", big.NewInt(11), big.NewInt(13), big.NewInt(20449), ErrInvalidPublicKey},
		{"g negative", big.NewInt(11), big.NewInt(13), big.NewInt(-1), ErrInvalidPublicKey},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, _, err := NewKeypairFromPrimes(c.p, c.q, c.g)
			assert.True(t, errors.Is(err, c.err), "got %v", err)
		})
	}
}

func TestNewSecretKey(t *testing.T) {
	pk, sk := generatedKeypair(t)

	rebuilt, err := NewSecretKey(pk, sk.Lambda(), sk.Mu())
	require.NoError(t, err)
	ct, err := pk.Encrypt(rand.Reader, big.NewInt(77))
	require.NoError(t, err)
	m, err := rebuilt.Decrypt(ct)
	require.NoError(t, err)
	assert.Equal(t, int64(77), m.Int64())

	wrongMu := new(big.Int).Add(sk.Mu(), big.NewInt(1))
	wrongMu.Mod(wrongMu, pk.N())
	_, err = NewSecretKey(pk, sk.Lambda(), wrongMu)
	assert.True(t, errors.Is(err, ErrInvalidSecretKey))

	_, err = NewSecretKey(pk, big.NewInt(0), sk.Mu())
	assert.True(t, errors.Is(err, ErrInvalidSecretKey))

	_, err = NewSecretKey(pk, sk.Lambda(), pk.N())
	assert.True(t, errors.Is(err, ErrInvalidSecretKey))
}

func TestGenerateKeypairSeeded(t *testing.T) {
	pk1, sk1, err := GenerateKeypair(sample.NewSeededReader([]byte("keygen")), 32)
	require.NoError(t, err)
	pk2, sk2, err := GenerateKeypair(sample.NewSeededReader([]byte("keygen")), 32)
	require.NoError(t, err)

	assert.True(t, pk1.Equal(pk2))
	assert.Zero(t, sk1.Lambda().Cmp(sk2.Lambda()))
	assert.Zero(t, sk1.Mu().Cmp(sk2.Mu()))

	pk3, _, err := GenerateKeypair(sample.NewSeededReader([]byte("other keygen")), 32)
	require.NoError(t, err)
	assert.False(t, pk1.Equal(pk3))
}

func TestNewDecryptionKey(t *testing.T) {
	pk, sk := vectorKeypair(t)

	dk, err := NewDecryptionKey(big.NewInt(143), big.NewInt(60), big.NewInt(31))
	require.NoError(t, err)
	assert.Equal(t, int64(143), dk.N().Int64())

	// ciphertext 716 = 144⁵⋅1¹⁴³ (mod 143²)
	m, err := Decrypt(big.NewInt(716), dk, big.NewInt(143))
	require.NoError(t, err)
	assert.Equal(t, int64(5), m.Int64())

	ct, err := pk.Encrypt(rand.Reader, big.NewInt(99))
	require.NoError(t, err)
	m, err = dk.Decrypt(ct)
	require.NoError(t, err)
	assert.Equal(t, int64(99), m.Int64())
	assert.Zero(t, sk.DecryptionKey().Mu().Cmp(dk.Mu()))

	_, err = Decrypt(big.NewInt(716), dk, big.NewInt(145))
	assert.True(t, errors.Is(err, ErrModulusMismatch))

	cases := []struct {
		name          string
		n, lambda, mu *big.Int
	}{
		{"even modulus", big.NewInt(144), big.NewInt(60), big.NewInt(31)},
		{"nil modulus", nil, big.NewInt(60), big.NewInt(31)},
		{"zero lambda", big.NewInt(143), big.NewInt(0), big.NewInt(31)},
		{"lambda too large", big.NewInt(143), big.NewInt(143), big.NewInt(31)},
		{"nil mu", big.NewInt(143), big.NewInt(60), nil},
		{"mu too large", big.NewInt(143), big.NewInt(60), big.NewInt(200)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := NewDecryptionKey(c.n, c.lambda, c.mu)
			assert.True(t, errors.Is(err, ErrInvalidSecretKey), "got %v", err)
		})
	}
}

func TestEncryptWithNonce(t *testing.T) {
	pk, sk := vectorKeypair(t)
	nonce := new(saferith.Nat).SetUint64(2)

	ct1, err := pk.EncryptWithNonce(big.NewInt(7), nonce)
	require.NoError(t, err)
	ct2, err := pk.EncryptWithNonce(big.NewInt(7), nonce)
	require.NoError(t, err)
	assert.True(t, ct1.Equal(ct2))

	// (1+N)⁷⋅2ᴺ (mod N²)
	expected := new(big.Int).Exp(big.NewInt(144), big.NewInt(7), pk.NSquared())
	expected.Mul(expected, new(big.Int).Exp(big.NewInt(2), pk.N(), pk.NSquared()))
	expected.Mod(expected, pk.NSquared())
	assert.Zero(t, expected.Cmp(ct1.Big()))

	m, err := sk.Decrypt(ct1)
	require.NoError(t, err)
	assert.Equal(t, int64(7), m.Int64())

	for _, bad := range []uint64{0, 11, 13, 143, 200} {
		_, err = pk.EncryptWithNonce(big.NewInt(7), new(saferith.Nat).SetUint64(bad))
		assert.True(t, errors.Is(err, ErrInvalidNonce), "nonce = %d", bad)
	}
}

func TestHomomorphicOperations(t *testing.T) {
	pk, sk := generatedKeypair(t)
	m1 := big.NewInt(1000)
	m2 := big.NewInt(234)

	c1, err := pk.Encrypt(rand.Reader, m1)
	require.NoError(t, err)
	c2, err := pk.Encrypt(rand.Reader, m2)
	require.NoError(t, err)
	c1Before := c1.Clone()

	got, err := sk.Decrypt(c1.Add(pk, c2))
	require.NoError(t, err)
	assert.Equal(t, int64(1234), got.Int64())

	plain, err := c1.AddPlain(pk, m2)
	require.NoError(t, err)
	got, err = sk.Decrypt(plain)
	require.NoError(t, err)
	assert.Equal(t, int64(1234), got.Int64())

	scaled, err := c1.Mul(pk, m2)
	require.NoError(t, err)
	got, err = sk.Decrypt(scaled)
	require.NoError(t, err)
	assert.Equal(t, int64(234000), got.Int64())

	randomized, err := c1.Randomize(rand.Reader, pk)
	require.NoError(t, err)
	assert.False(t, randomized.Equal(c1))
	got, err = sk.Decrypt(randomized)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), got.Int64())

	// operations leave their receiver untouched
	assert.True(t, c1.Equal(c1Before))

	_, err = c1.Mul(pk, big.NewInt(-3))
	assert.True(t, errors.Is(err, ErrPlaintextOutOfRange))
}

func TestAdditionWrapsModN(t *testing.T) {
	pk, sk := vectorKeypair(t)

	c1, err := pk.Encrypt(rand.Reader, big.NewInt(100))
	require.NoError(t, err)
	c2, err := pk.Encrypt(rand.Reader, big.NewInt(100))
	require.NoError(t, err)

	got, err := sk.Decrypt(c1.Add(pk, c2))
	require.NoError(t, err)
	assert.Equal(t, int64(57), got.Int64())
}

func TestEncryptSamplingExhausted(t *testing.T) {
	pk, _ := vectorKeypair(t)

	_, err := pk.Encrypt(zeroReader{}, big.NewInt(5))
	assert.True(t, errors.Is(err, ErrRandomSamplingExhausted))
}

func TestKeyMarshalBinary(t *testing.T) {
	pk, sk := generatedKeypair(t)

	data, err := sk.MarshalBinary()
	require.NoError(t, err)
	decodedSK := new(SecretKey)
	require.NoError(t, decodedSK.UnmarshalBinary(data))
	assert.True(t, pk.Equal(decodedSK.PublicKey))
	assert.Zero(t, sk.Lambda().Cmp(decodedSK.Lambda()))
	assert.Zero(t, sk.Mu().Cmp(decodedSK.Mu()))

	data, err = pk.MarshalBinary()
	require.NoError(t, err)
	decodedPK := new(PublicKey)
	require.NoError(t, decodedPK.UnmarshalBinary(data))
	assert.True(t, pk.Equal(decodedPK))

	ct, err := decodedPK.Encrypt(rand.Reader, big.NewInt(9))
	require.NoError(t, err)
	ctData, err := ct.MarshalBinary()
	require.NoError(t, err)
	decodedCT := new(Ciphertext)
	require.NoError(t, decodedCT.UnmarshalBinary(ctData))
	m, err := decodedSK.Decrypt(decodedCT)
	require.NoError(t, err)
	assert.Equal(t, int64(9), m.Int64())
}

func TestConcurrentEncryptDecrypt(t *testing.T) {
	pk, sk := generatedKeypair(t)

	var errGroup errgroup.Group
	for i := 0; i < 16; i++ {
		m := big.NewInt(int64(i))
		errGroup.Go(func() error {
			ct, err := pk.Encrypt(rand.Reader, m)
			if err != nil {
				return err
			}
			got, err := sk.Decrypt(ct)
			if err != nil {
				return err
			}
			if got.Cmp(m) != 0 {
				return errors.Errorf("decrypted %v, want %v", got, m)
			}
			return nil
		})
	}
	assert.NoError(t, errGroup.Wait())
}
