package hash

import (
	"bytes"
	"encoding"
	"encoding/binary"
	"fmt"
	"io"
	"math/big"
	"reflect"

	"github.com/cronokirby/saferith"
	"github.com/mr-shifu/paillier-lib/core/params"
	"github.com/pkg/errors"
	"github.com/zeebo/blake3"
)

const DigestLengthBytes = params.SecBytes * 2 // 64

var (
	ErrNilInput        = errors.New("hash: nil input")
	ErrUnsupportedType = errors.New("hash: invalid type provided as input")
)

// WriterToWithDomain is a value that writes itself to a hash under its own domain.
type WriterToWithDomain interface {
	io.WriterTo

	// Domain returns a string that separates this type from every other.
	Domain() string
}

// BytesWithDomain is raw data written under an explicit domain.
type BytesWithDomain struct {
	TheDomain string
	Bytes     []byte
}

func (b BytesWithDomain) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(b.Bytes)
	return int64(n), err
}

func (b BytesWithDomain) Domain() string {
	return b.TheDomain
}

// Hash is the hash function used to derive key identifiers.
//
// Every value is written with its domain and length, so that distinct
// sequences of values never produce the same input stream.
type Hash struct {
	h *blake3.Hasher
}

// New creates a Hash struct where the internal hash function is initialized with "PAILLIER-BLAKE".
func New(initialData ...WriterToWithDomain) *Hash {
	hash := &Hash{h: blake3.New()}
	_, _ = hash.h.WriteString("PAILLIER-BLAKE")
	for _, d := range initialData {
		_ = hash.WriteAny(d)
	}
	return hash
}

// Digest returns a reader for the current output of the function.
//
// This finalizes the current state of the hash, and returns what's
// essentially a stream of random bytes.
func (hash *Hash) Digest() io.Reader {
	return hash.h.Digest()
}

// Sum returns a slice of length DigestLengthBytes resulting from the current hash state.
// If a different length is required, use io.ReadFull(hash.Digest(), out) instead.
func (hash *Hash) Sum() []byte {
	out := make([]byte, DigestLengthBytes)
	if _, err := io.ReadFull(hash.Digest(), out); err != nil {
		panic(fmt.Sprintf("hash.Sum: internal hash failure: %v", err))
	}
	return out
}

// WriteAny takes many different data types and writes them to the hash state.
//
// Currently supported types:
//
//   - []byte
//   - *big.Int
//   - *saferith.Nat
//   - *saferith.Modulus
//   - hash.WriterToWithDomain
//   - encoding.BinaryMarshaler
//
// WriterToWithDomain values are written under their own domain; every other
// type is written under its type name.
func (hash *Hash) WriteAny(data ...interface{}) error {
	for _, d := range data {
		var toBeWritten BytesWithDomain
		switch t := d.(type) {
		case []byte:
			if t == nil {
				return errors.WithMessage(ErrNilInput, "[]byte")
			}
			toBeWritten = BytesWithDomain{"[]byte", t}
		case *big.Int:
			if t == nil {
				return errors.WithMessage(ErrNilInput, "*big.Int")
			}
			bytes, _ := t.GobEncode()
			toBeWritten = BytesWithDomain{"big.Int", bytes}
		case *saferith.Nat:
			if t == nil {
				return errors.WithMessage(ErrNilInput, "*saferith.Nat")
			}
			toBeWritten = BytesWithDomain{"saferith.Nat", t.Bytes()}
		case *saferith.Modulus:
			if t == nil {
				return errors.WithMessage(ErrNilInput, "*saferith.Modulus")
			}
			toBeWritten = BytesWithDomain{"saferith.Modulus", t.Bytes()}
		case WriterToWithDomain:
			var buf = new(bytes.Buffer)
			if _, err := t.WriteTo(buf); err != nil {
				return errors.WithMessagef(err, "hash.WriteAny: %s", reflect.TypeOf(t))
			}
			toBeWritten = BytesWithDomain{t.Domain(), buf.Bytes()}
		case encoding.BinaryMarshaler:
			name := reflect.TypeOf(t)
			bytes, err := t.MarshalBinary()
			if err != nil {
				return errors.WithMessagef(err, "hash.WriteAny: %s", name)
			}
			toBeWritten = BytesWithDomain{
				TheDomain: name.String(),
				Bytes:     bytes,
			}
		default:
			return errors.WithMessagef(ErrUnsupportedType, "%T", d)
		}

		hash.writeBytesWithDomain(toBeWritten)
	}
	return nil
}

func (hash *Hash) writeBytesWithDomain(toBeWritten BytesWithDomain) {
	var sizeBuf [8]byte

	// Write out `(<domain_size><domain><data_size><data>)`, so that each domain separated piece of data
	// is distinguished from others.

	_, _ = hash.h.WriteString("(")
	// <domain_size>
	binary.BigEndian.PutUint64(sizeBuf[:], uint64(len(toBeWritten.TheDomain)))
	_, _ = hash.h.Write(sizeBuf[:])
	// <domain>
	_, _ = hash.h.WriteString(toBeWritten.TheDomain)
	// <data_size>
	binary.BigEndian.PutUint64(sizeBuf[:], uint64(len(toBeWritten.Bytes)))
	_, _ = hash.h.Write(sizeBuf[:])
	// <data>
	_, _ = hash.h.Write(toBeWritten.Bytes)
	// )
	_, _ = hash.h.WriteString(")")
}

// Clone returns a copy of the Hash in its current state.
func (hash *Hash) Clone() *Hash {
	return &Hash{h: hash.h.Clone()}
}

// Fork clones this hash, and then writes some data.
func (hash *Hash) Fork(data ...interface{}) *Hash {
	newHash := hash.Clone()
	_ = newHash.WriteAny(data...)
	return newHash
}
