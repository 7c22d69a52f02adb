package sample

import (
	"bytes"
	"crypto/rand"
	"io"
	"math/big"
	"testing"

	"github.com/cronokirby/saferith"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type zeroReader struct{}

func (zeroReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	return len(p), nil
}

func TestUnitBelow(t *testing.T) {
	n := saferith.ModulusFromUint64(143)
	for i := 0; i < 100; i++ {
		x, err := UnitModN(rand.Reader, n)
		require.NoError(t, err)
		v := x.Big()
		assert.True(t, v.Cmp(big.NewInt(143)) < 0)
		assert.Equal(t, int64(1), new(big.Int).GCD(nil, nil, v, big.NewInt(143)).Int64())
	}
}

func TestUnitBelowDifferentBound(t *testing.T) {
	bound := saferith.ModulusFromUint64(20449)
	n := saferith.ModulusFromUint64(143)
	for i := 0; i < 100; i++ {
		x, err := UnitBelow(nil, bound, n)
		require.NoError(t, err)
		v := x.Big()
		assert.True(t, v.Cmp(big.NewInt(20449)) < 0)
		assert.Equal(t, int64(1), new(big.Int).GCD(nil, nil, v, big.NewInt(143)).Int64())
	}
}

func TestUnitBelowExhausted(t *testing.T) {
	// zero is never a unit, so a reader of zeros can never succeed
	_, err := UnitModN(zeroReader{}, saferith.ModulusFromUint64(143))
	assert.True(t, errors.Is(err, ErrRandomSamplingExhausted))
}

func TestUnitBelowShortRead(t *testing.T) {
	_, err := UnitModN(bytes.NewReader(nil), saferith.ModulusFromUint64(143))
	assert.Error(t, err)
	assert.True(t, errors.Is(err, io.EOF))
}

func TestSafePrime(t *testing.T) {
	for _, bits := range []int{3, 16, 64, 128} {
		p, err := SafePrime(rand.Reader, bits)
		require.NoError(t, err)
		assert.Equal(t, bits, p.Big().BitLen())
		assert.NoError(t, ValidateSafePrime(p.Big()))
	}

	_, err := SafePrime(rand.Reader, 2)
	assert.True(t, errors.Is(err, ErrPrimeTooSmall))
}

func TestSafePrimeSeeded(t *testing.T) {
	p1, err := SafePrime(NewSeededReader([]byte("safe prime")), 64)
	require.NoError(t, err)
	p2, err := SafePrime(NewSeededReader([]byte("safe prime")), 64)
	require.NoError(t, err)
	assert.Equal(t, 1, p1.Eq(p2))

	_, err = SafePrime(bytes.NewReader([]byte{1, 2}), 64)
	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))
}

func TestValidateSafePrime(t *testing.T) {
	assert.NoError(t, ValidateSafePrime(big.NewInt(11)))
	assert.NoError(t, ValidateSafePrime(big.NewInt(23)))
	assert.True(t, errors.Is(ValidateSafePrime(big.NewInt(13)), ErrNotSafePrime))
	assert.True(t, errors.Is(ValidateSafePrime(big.NewInt(15)), ErrNotPrime))
	assert.True(t, errors.Is(ValidateSafePrime(big.NewInt(2)), ErrNotPrime))
}

func TestSeededReader(t *testing.T) {
	a := make([]byte, 64)
	b := make([]byte, 64)
	_, err := io.ReadFull(NewSeededReader([]byte("seed")), a)
	require.NoError(t, err)
	_, err = io.ReadFull(NewSeededReader([]byte("seed")), b)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	_, err = io.ReadFull(NewSeededReader([]byte("other seed")), b)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)

	n := saferith.ModulusFromUint64(143)
	x, err := UnitModN(NewSeededReader([]byte("unit")), n)
	require.NoError(t, err)
	y, err := UnitModN(NewSeededReader([]byte("unit")), n)
	require.NoError(t, err)
	assert.Zero(t, x.Big().Cmp(y.Big()))
}
