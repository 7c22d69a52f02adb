package keystore

import (
	"github.com/mr-shifu/paillier-lib/pkg/common/keyopts"
	"github.com/mr-shifu/paillier-lib/pkg/common/keystore"
	"github.com/mr-shifu/paillier-lib/pkg/common/vault"
	"github.com/pkg/errors"
)

var (
	ErrKeyNotFound = errors.New("keystore: key not found")
)

type InMemoryKeystore struct {
	v  vault.Vault
	kr keyopts.KeyOpts
}

var _ keystore.Keystore = (*InMemoryKeystore)(nil)

func NewInMemoryKeystore(v vault.Vault, kr keyopts.KeyOpts) *InMemoryKeystore {
	return &InMemoryKeystore{
		v:  v,
		kr: kr,
	}
}

func (ks *InMemoryKeystore) Import(ski string, key []byte, opts keyopts.Options) error {
	// store key to vault
	if err := ks.v.Import(ski, key); err != nil {
		return err
	}

	// link key ID to SKI
	if err := ks.kr.Import(ski, opts); err != nil {
		return err
	}

	return nil
}

// Update replaces the encoded key linked to the key ID found in opts.
func (ks *InMemoryKeystore) Update(key []byte, opts keyopts.Options) error {
	kd, err := ks.kr.Get(opts)
	if err != nil {
		return err
	}
	if kd.SKI == "" {
		return ErrKeyNotFound
	}
	return ks.v.Import(kd.SKI, key)
}

func (ks *InMemoryKeystore) Get(opts keyopts.Options) ([]byte, error) {
	kd, err := ks.kr.Get(opts)
	if err != nil {
		return nil, err
	}

	return ks.v.Get(kd.SKI)
}

// Delete removes the key ID found in opts. The encoded key is dropped from the
// vault once no other key ID links to its SKI.
func (ks *InMemoryKeystore) Delete(opts keyopts.Options) error {
	kd, err := ks.kr.Get(opts)
	if err != nil {
		return err
	}

	if err := ks.kr.Delete(opts); err != nil {
		return err
	}

	keys, err := ks.kr.GetAll()
	if err != nil {
		return err
	}
	for _, k := range keys {
		if k.SKI == kd.SKI {
			return nil
		}
	}
	return ks.v.Delete(kd.SKI)
}

func (ks *InMemoryKeystore) DeleteAll() error {
	keys, err := ks.kr.GetAll()
	if err != nil {
		return err
	}
	for _, key := range keys {
		if err := ks.v.Delete(key.SKI); err != nil {
			return err
		}
	}

	return ks.kr.DeleteAll()
}

func (ks *InMemoryKeystore) KeyAccessor(ski string, opts keyopts.Options) keystore.KeyAccessor {
	return NewInMemoryKeyAccessor(ski, opts, ks)
}
