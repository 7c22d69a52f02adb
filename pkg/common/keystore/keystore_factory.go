package keystore

// KeystoreFactory creates Keystore instances, each over its own storage.
type KeystoreFactory interface {
	NewKeystore() Keystore
}
