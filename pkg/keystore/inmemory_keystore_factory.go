package keystore

import (
	"github.com/mr-shifu/paillier-lib/pkg/common/keyopts"
	"github.com/mr-shifu/paillier-lib/pkg/common/keystore"
	"github.com/mr-shifu/paillier-lib/pkg/common/vault"
)

// InMemoryKeystoreFactory builds every keystore over a fresh vault and a fresh
// key ID index taken from its two factories.
type InMemoryKeystoreFactory struct {
	Vaults  vault.VaultFactory
	KeyOpts keyopts.KeyOptsFactory
}

var _ keystore.KeystoreFactory = InMemoryKeystoreFactory{}

// NewKeystore creates an empty keystore.
func (f InMemoryKeystoreFactory) NewKeystore() keystore.Keystore {
	return NewInMemoryKeystore(f.Vaults.NewVault(), f.KeyOpts.NewKeyOpts())
}
