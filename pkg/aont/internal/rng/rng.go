// Package rng provides the cryptographically secure random source for session keys.
//
// At startup, a STROBE protocol is initialized:
//
//     INIT('aont.rng', level=256)
//
// When a block of random data is required, a block B of equivalent size is read from the host
// machine's RNG, and the following operations performed:
//
//     AD(LE_U64(LEN(B)), meta=true)
//     KEY(B)
//     PRF(LEN(B)) -> B
//     RATCHET(32)
//
// This insulates session keys somewhat against a compromised host RNG.
package rng

import (
	"crypto/rand"
	"io"
	"sync"

	"github.com/codahale/aont/pkg/aont/internal/protocol"
)

// Read is a helper function that calls Reader.Read using io.ReadFull. On return, n == len(b) if and
// only if err == nil.
func Read(b []byte) (int, error) {
	return io.ReadFull(Reader, b)
}

// ReadFrom fills b from the given source, or from Reader if src is nil.
func ReadFrom(src io.Reader, b []byte) (int, error) {
	if src == nil {
		src = Reader
	}

	return io.ReadFull(src, b)
}

//nolint:gochecknoglobals // need a singleton
// Reader is a global, shared instance of a cryptographically secure random number generator. It is
// safe for concurrent use.
var Reader io.Reader = &reader{rng: protocol.New("aont.rng")}

type reader struct {
	mu  sync.Mutex
	rng *protocol.Transcript
}

func (r *reader) Read(p []byte) (n int, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Include length of PRF request as associated data.
	r.rng.Params(uint64(len(p)))

	// Read a new block of data from the underlying RNG.
	if _, err := rand.Read(p); err != nil {
		return 0, err
	}

	// Re-key the protocol with the block.
	r.rng.Key(p)

	// Return the results of the PRF.
	r.rng.Squeeze(p[:0], len(p))

	// Ratchet the state of the RNG to prevent rollback.
	r.rng.Forget()

	return len(p), nil
}
