// Package codec converts between text, integers and their transport form.
//
// Text travels as the big-endian integer of its UTF-8 bytes. Integers (moduli,
// key parameters and ciphertexts) travel as the base64 encoding of their
// decimal string.
package codec

import (
	"encoding/base64"
	"math/big"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
)

var (
	ErrInvalidText     = errors.New("codec: integer is not valid UTF-8 text")
	ErrInvalidEncoding = errors.New("codec: invalid integer encoding")
)

// TextToInt returns the big-endian integer of the UTF-8 bytes of s.
// Leading NUL characters do not survive the conversion.
func TextToInt(s string) *big.Int {
	return new(big.Int).SetBytes([]byte(s))
}

// IntToText is the inverse of TextToInt.
func IntToText(m *big.Int) (string, error) {
	if m == nil || m.Sign() < 0 {
		return "", ErrInvalidText
	}
	b := m.Bytes()
	if !utf8.Valid(b) {
		return "", ErrInvalidText
	}
	return string(b), nil
}

// EncodeInt returns the base64 encoding of the decimal string of x.
func EncodeInt(x *big.Int) string {
	return base64.StdEncoding.EncodeToString([]byte(x.String()))
}

// DecodeInt is the inverse of EncodeInt.
func DecodeInt(s string) (*big.Int, error) {
	decimal, err := base64.StdEncoding.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, errors.WithMessage(ErrInvalidEncoding, err.Error())
	}
	x, ok := new(big.Int).SetString(string(decimal), 10)
	if !ok {
		return nil, errors.WithMessagef(ErrInvalidEncoding, "%q is not a decimal integer", decimal)
	}
	return x, nil
}
