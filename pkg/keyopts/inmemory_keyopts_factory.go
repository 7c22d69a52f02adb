package keyopts

import "github.com/mr-shifu/paillier-lib/pkg/common/keyopts"

type InMemoryKeyOptsFactory struct{}

var _ keyopts.KeyOptsFactory = InMemoryKeyOptsFactory{}

// NewKeyOpts returns an empty in-memory key ID index.
func (InMemoryKeyOptsFactory) NewKeyOpts() keyopts.KeyOpts {
	return NewInMemoryKeyOpts()
}
