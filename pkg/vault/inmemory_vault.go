package vault

import (
	"sync"

	"github.com/pkg/errors"
)

var (
	ErrKeyNotFound = errors.New("vault: key not found")
	ErrInvalidSKI  = errors.New("vault: invalid SKI")
)

type InMemoryVault struct {
	lock sync.RWMutex
	keys map[string][]byte
}

func NewInMemoryVault() *InMemoryVault {
	return &InMemoryVault{
		keys: make(map[string][]byte),
	}
}

func (store *InMemoryVault) Import(ski string, key []byte) error {
	if ski == "" {
		return ErrInvalidSKI
	}

	store.lock.Lock()
	defer store.lock.Unlock()

	store.keys[ski] = append([]byte(nil), key...)
	return nil
}

func (store *InMemoryVault) Get(ski string) ([]byte, error) {
	store.lock.RLock()
	defer store.lock.RUnlock()

	key, ok := store.keys[ski]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return append([]byte(nil), key...), nil
}

func (store *InMemoryVault) Delete(ski string) error {
	store.lock.Lock()
	defer store.lock.Unlock()

	delete(store.keys, ski)
	return nil
}
