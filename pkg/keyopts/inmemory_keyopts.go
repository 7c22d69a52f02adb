package keyopts

import (
	"sync"

	"github.com/mr-shifu/paillier-lib/pkg/common/keyopts"
	"github.com/pkg/errors"
)

var (
	ErrInvalidParamsKeyID = errors.New("keyopts: invalid keyID")
	ErrInvalidData        = errors.New("keyopts: invalid data")
	ErrKeyNotFound        = errors.New("keyopts: key not found")
)

type KeyOpts struct {
	lock sync.RWMutex

	// keys is a map of key ID to key metadata{SKI}.
	keys map[string]*keyopts.KeyData
}

func NewInMemoryKeyOpts() *KeyOpts {
	return &KeyOpts{
		keys: make(map[string]*keyopts.KeyData),
	}
}

func (kr *KeyOpts) Import(data interface{}, opts keyopts.Options) error {
	kid, err := keyID(opts)
	if err != nil {
		return err
	}

	ski, ok := data.(string)
	if !ok || ski == "" {
		return ErrInvalidData
	}

	kr.lock.Lock()
	defer kr.lock.Unlock()

	kr.keys[kid] = &keyopts.KeyData{
		ID:  kid,
		SKI: ski,
	}
	return nil
}

func (kr *KeyOpts) Get(opts keyopts.Options) (*keyopts.KeyData, error) {
	kid, err := keyID(opts)
	if err != nil {
		return nil, err
	}

	kr.lock.RLock()
	defer kr.lock.RUnlock()

	k, ok := kr.keys[kid]
	if !ok {
		return nil, ErrKeyNotFound
	}
	kd := *k
	return &kd, nil
}

func (kr *KeyOpts) GetAll() (map[string]*keyopts.KeyData, error) {
	kr.lock.RLock()
	defer kr.lock.RUnlock()

	result := make(map[string]*keyopts.KeyData, len(kr.keys))
	for kid, k := range kr.keys {
		kd := *k
		result[kid] = &kd
	}
	return result, nil
}

func (kr *KeyOpts) Delete(opts keyopts.Options) error {
	kid, err := keyID(opts)
	if err != nil {
		return err
	}

	kr.lock.Lock()
	defer kr.lock.Unlock()

	if _, ok := kr.keys[kid]; !ok {
		return ErrKeyNotFound
	}
	delete(kr.keys, kid)

	return nil
}

func (kr *KeyOpts) DeleteAll() error {
	kr.lock.Lock()
	defer kr.lock.Unlock()

	kr.keys = make(map[string]*keyopts.KeyData)
	return nil
}

// keyID reads the "id" option.
func keyID(opts keyopts.Options) (string, error) {
	if opts == nil {
		return "", ErrInvalidParamsKeyID
	}
	ID, ok := opts.Get("id")
	if !ok {
		return "", ErrInvalidParamsKeyID
	}
	kid, ok := ID.(string)
	if !ok || kid == "" {
		return "", ErrInvalidParamsKeyID
	}
	return kid, nil
}
