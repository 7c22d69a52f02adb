package sample

import (
	"io"
	"sync"

	"golang.org/x/crypto/sha3"
)

// seededReader is a deterministic byte stream expanded from a seed with SHAKE256.
type seededReader struct {
	mu  sync.Mutex
	xof sha3.ShakeHash
}

// NewSeededReader returns a reader producing the SHAKE256 output stream of
// "paillier-seed" ‖ seed. Equal seeds give equal streams.
//
// It is meant for reproducible tests and test vectors, never for real keys.
// The reader is safe for concurrent use.
func NewSeededReader(seed []byte) io.Reader {
	xof := sha3.NewShake256()
	_, _ = xof.Write([]byte("paillier-seed"))
	_, _ = xof.Write(seed)
	return &seededReader{xof: xof}
}

func (r *seededReader) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.xof.Read(p)
}
