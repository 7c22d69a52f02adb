package paillier

import (
	"context"
	"encoding/hex"
	"io"
	"math/big"
	"runtime"

	pailliercore "github.com/mr-shifu/paillier-lib/core/paillier"
	"github.com/mr-shifu/paillier-lib/core/params"
	cs_paillier "github.com/mr-shifu/paillier-lib/pkg/common/cryptosuite/paillier"
	"github.com/mr-shifu/paillier-lib/pkg/common/keyopts"
	"github.com/mr-shifu/paillier-lib/pkg/common/keystore"
	"github.com/mr-shifu/paillier-lib/pkg/logging"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

type Config struct {
	// Bits is the bit length of each safe prime; zero means params.BitsSafePrime.
	Bits int
	// Rand is the randomness source; nil means crypto/rand.
	Rand io.Reader
	// Logger defaults to a logger that discards everything.
	Logger logging.Logger
}

type PaillierKeyManager struct {
	keystore keystore.Keystore
	cfg      *Config
	logger   logging.Logger
}

var _ cs_paillier.PaillierKeyManager = (*PaillierKeyManager)(nil)

func NewPaillierKeyManager(store keystore.Keystore, cfg *Config) *PaillierKeyManager {
	if cfg == nil {
		cfg = &Config{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	return &PaillierKeyManager{
		keystore: store,
		cfg:      cfg,
		logger:   logger.With("component", "paillier"),
	}
}

func (mgr *PaillierKeyManager) bits() int {
	if mgr.cfg.Bits == 0 {
		return params.BitsSafePrime
	}
	return mgr.cfg.Bits
}

// GenerateKey generates a new Paillier key pair and links it to the key ID in opts.
func (mgr *PaillierKeyManager) GenerateKey(opts keyopts.Options) (cs_paillier.PaillierKey, error) {
	ctx := context.Background()
	bits := mgr.bits()
	mgr.logger.Debug(ctx, "generating key pair", "bits", bits)

	pk, sk, err := pailliercore.GenerateKeypair(mgr.cfg.Rand, bits)
	if err != nil {
		mgr.logger.Error(ctx, "key generation failed", "bits", bits, "error", err)
		return nil, errors.WithMessage(err, "paillier: failed to generate key")
	}

	key := NewPaillierKey(sk, pk, mgr.cfg.Rand)
	if err := mgr.store(key, opts); err != nil {
		return nil, err
	}

	mgr.logger.Info(ctx, "key pair generated",
		"ski", hex.EncodeToString(key.SKI()),
		"bits", pk.N().BitLen(),
		logging.Redacted("lambda"),
		logging.Redacted("mu"),
	)
	return key, nil
}

// ImportKey imports a Paillier key given either as its Bytes encoding or as a PaillierKey.
func (mgr *PaillierKeyManager) ImportKey(data interface{}, opts keyopts.Options) (cs_paillier.PaillierKey, error) {
	var key cs_paillier.PaillierKey
	switch kt := data.(type) {
	case []byte:
		k, err := fromBytes(kt, mgr.cfg.Rand)
		if err != nil {
			return nil, errors.WithMessage(err, "paillier: failed to decode key")
		}
		key = k
	case cs_paillier.PaillierKey:
		key = kt
	default:
		return nil, errors.WithMessagef(ErrInvalidKey, "unsupported key type %T", data)
	}

	if err := mgr.store(key, opts); err != nil {
		return nil, err
	}

	mgr.logger.Info(context.Background(), "key imported",
		"ski", hex.EncodeToString(key.SKI()),
		"private", key.Private(),
	)
	return key, nil
}

func (mgr *PaillierKeyManager) store(key cs_paillier.PaillierKey, opts keyopts.Options) error {
	kb, err := key.Bytes()
	if err != nil {
		return err
	}

	// get key SKI and encode it to hex string as vault ID; the public part
	// of a key pair shares its SKI, so it is stored under its own ID
	ski := hex.EncodeToString(key.SKI())
	if !key.Private() {
		ski += ".pub"
	}
	if err := mgr.keystore.KeyAccessor(ski, opts).Import(kb); err != nil {
		return errors.WithMessage(err, "paillier: failed to store key")
	}
	return nil
}

// GetKey returns the key linked to the key ID in opts.
func (mgr *PaillierKeyManager) GetKey(opts keyopts.Options) (cs_paillier.PaillierKey, error) {
	kb, err := mgr.keystore.Get(opts)
	if err != nil {
		return nil, errors.WithMessage(err, "paillier: failed to get key")
	}

	k, err := fromBytes(kb, mgr.cfg.Rand)
	if err != nil {
		return nil, errors.WithMessage(err, "paillier: failed to decode key")
	}
	return k, nil
}

func (mgr *PaillierKeyManager) DeleteKey(opts keyopts.Options) error {
	return mgr.keystore.Delete(opts)
}

func (mgr *PaillierKeyManager) Encrypt(m *big.Int, opts keyopts.Options) (*pailliercore.Ciphertext, error) {
	k, err := mgr.GetKey(opts)
	if err != nil {
		return nil, err
	}
	return k.Encrypt(m)
}

func (mgr *PaillierKeyManager) Decrypt(ct *pailliercore.Ciphertext, opts keyopts.Options) (*big.Int, error) {
	k, err := mgr.GetKey(opts)
	if err != nil {
		return nil, err
	}
	return k.Decrypt(ct)
}

// EncryptBatch encrypts ms concurrently under the same key. The i-th
// ciphertext encrypts ms[i]; the first error cancels the remaining work.
func (mgr *PaillierKeyManager) EncryptBatch(ms []*big.Int, opts keyopts.Options) ([]*pailliercore.Ciphertext, error) {
	k, err := mgr.GetKey(opts)
	if err != nil {
		return nil, err
	}

	cts := make([]*pailliercore.Ciphertext, len(ms))
	errGroup, ctx := errgroup.WithContext(context.Background())
	errGroup.SetLimit(runtime.GOMAXPROCS(0))
	for i, m := range ms {
		i, m := i, m
		errGroup.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			ct, err := k.Encrypt(m)
			if err != nil {
				return errors.WithMessagef(err, "paillier: failed to encrypt plaintext %d", i)
			}
			cts[i] = ct
			return nil
		})
	}
	if err := errGroup.Wait(); err != nil {
		return nil, err
	}

	mgr.logger.Debug(context.Background(), "batch encrypted", "ski", hex.EncodeToString(k.SKI()), "count", len(ms))
	return cts, nil
}

// VerifyHomomorphism checks the homomorphic laws of the key linked to opts.
func (mgr *PaillierKeyManager) VerifyHomomorphism(m1, m2 *big.Int, opts keyopts.Options) (*pailliercore.Report, error) {
	k, err := mgr.GetKey(opts)
	if err != nil {
		return nil, err
	}

	report, err := k.VerifyHomomorphism(m1, m2)
	if errors.Is(err, pailliercore.ErrHomomorphismViolation) {
		mgr.logger.Error(context.Background(), "homomorphism violated",
			"ski", hex.EncodeToString(k.SKI()),
			"error", err,
		)
	}
	return report, err
}
