package keyopts

// KeyData is the metadata kept for a key ID.
type KeyData struct {
	ID  string
	SKI string
}

type Options interface {
	Set(kVs ...interface{}) (Options, error)
	Get(key string) (interface{}, bool)
}

// KeyOpts manages the storage of key metadata referred to by a key ID.
type KeyOpts interface {
	// Import links the SKI given as data to the key ID found in opts.
	Import(data interface{}, opts Options) error

	// Get returns the metadata of the key ID found in opts.
	Get(opts Options) (*KeyData, error)

	// GetAll returns the metadata of every key, by key ID.
	GetAll() (map[string]*KeyData, error)

	// Delete removes the key ID found in opts.
	Delete(opts Options) error

	// DeleteAll removes every key ID.
	DeleteAll() error
}
