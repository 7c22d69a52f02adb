package hash

import (
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/cronokirby/saferith"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHash_WriteAny(t *testing.T) {
	var err error

	testFunc := func(vs ...interface{}) error {
		h := New()
		for _, v := range vs {
			err = h.WriteAny(v)
			if err != nil {
				return err
			}
		}
		return nil
	}
	b := big.NewInt(35)
	n := new(saferith.Nat).SetBig(b, b.BitLen())
	m := saferith.ModulusFromBytes(b.Bytes())

	assert.NoError(t, testFunc(b, n, m))
	assert.NoError(t, testFunc([]byte{1, 4, 6}))
	assert.NoError(t, testFunc(BytesWithDomain{"test", []byte{1}}))

	assert.True(t, errors.Is(testFunc(42), ErrUnsupportedType))
	assert.True(t, errors.Is(testFunc([]byte(nil)), ErrNilInput))
	assert.True(t, errors.Is(testFunc((*big.Int)(nil)), ErrNilInput))
}

func TestHash_WriteAny_Collision(t *testing.T) {
	var err error

	testFunc := func(vs ...interface{}) ([]byte, error) {
		h := New()
		for _, v := range vs {
			err = h.WriteAny(v)
			if err != nil {
				return nil, err
			}
		}
		return h.Sum(), nil
	}
	b1 := []byte("1)(big.Int\x02*data_added*")
	b2 := []byte("3")
	n2 := new(big.Int)
	n2.SetString(hex.EncodeToString(b2), 16)
	h1, err := testFunc(b1, n2)
	assert.NoError(t, err)

	b1 = []byte("1")
	b2 = []byte("*data_added*)(big.Int\x023")
	n2 = new(big.Int)
	n2.SetString(hex.EncodeToString(b2), 16)
	h2, err := testFunc(b1, n2)
	assert.NoError(t, err)

	assert.NotEqual(t, h1, h2)
}

func TestHash_Domain(t *testing.T) {
	data := []byte("same bytes")

	h1 := New(BytesWithDomain{"a", data}).Sum()
	h2 := New(BytesWithDomain{"b", data}).Sum()
	assert.NotEqual(t, h1, h2)
	assert.Len(t, h1, DigestLengthBytes)

	again := New(BytesWithDomain{"a", data}).Sum()
	assert.Equal(t, h1, again)
}

func TestHash_Clone(t *testing.T) {
	h := New()

	h1 := h.Clone()
	h2 := h.Clone()

	require.NoError(t, h1.WriteAny([]byte("123")))
	require.NoError(t, h2.WriteAny([]byte("123")))
	assert.Equal(t, h1.Sum(), h2.Sum())

	// writing to a clone leaves the original untouched
	assert.NotEqual(t, h.Sum(), h1.Sum())

	forked := h.Fork([]byte("123"))
	assert.Equal(t, h1.Sum(), forked.Sum())
}
