package keystore

import "github.com/mr-shifu/paillier-lib/pkg/common/keyopts"

// Keystore composes a vault of encoded keys with their key ID metadata.
type Keystore interface {
	Import(ski string, key []byte, opts keyopts.Options) error
	Get(opts keyopts.Options) ([]byte, error)
	Delete(opts keyopts.Options) error
	DeleteAll() error
	KeyAccessor(ski string, opts keyopts.Options) KeyAccessor
}

// KeyAccessor is a Keystore bound to a single key.
type KeyAccessor interface {
	Import(key []byte) error
	Get() ([]byte, error)
	Delete() error
}
