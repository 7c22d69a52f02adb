package vault

// VaultFactory creates empty Vault instances.
type VaultFactory interface {
	NewVault() Vault
}
