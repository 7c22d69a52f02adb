package vault

import "github.com/mr-shifu/paillier-lib/pkg/common/vault"

type InMemoryVaultFactory struct{}

var _ vault.VaultFactory = InMemoryVaultFactory{}

// NewVault returns an empty in-memory vault.
func (InMemoryVaultFactory) NewVault() vault.Vault {
	return NewInMemoryVault()
}
