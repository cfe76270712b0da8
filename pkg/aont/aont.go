// Package aont implements an All-Or-Nothing Transform.
//
// Transform splits a plaintext into blocks, masks each block with a keystream derived from a fresh,
// random session key, and folds the session key together with a keyed digest of every masked block
// into a final share key. The result is a share set of n masked blocks followed by the share key.
// Without every share, the session key cannot be recovered, and without the session key no block
// can be unmasked.
//
// The digests are keyed with a PackagingKey, a symmetric secret shared between the party which
// transforms data and the party which inverts it. It is not an asymmetric public key.
//
// There is no integrity check. Inverting a share set with a wrong packaging key, a tampered block,
// or shares in the wrong order does not fail; it returns garbage. Callers which need tamper
// detection must verify the reconstructed plaintext themselves.
package aont

import (
	"errors"
	"fmt"
	"io"

	"github.com/codahale/aont/pkg/aont/internal"
	"github.com/codahale/aont/pkg/aont/internal/codec"
	"github.com/codahale/aont/pkg/aont/internal/prf"
	"github.com/codahale/aont/pkg/aont/internal/rng"
	"github.com/codahale/aont/pkg/aont/internal/split"
)

// SessionKeySize is the length of a session key, and therefore of a share key, in bytes.
const SessionKeySize = prf.KeySize

var (
	// ErrEmptyInput is returned when Transform is given no data.
	ErrEmptyInput = errors.New("empty input")

	// ErrSizeMismatch is returned when explicit block sizes do not sum to the length of the data.
	ErrSizeMismatch = split.ErrSizeMismatch

	// ErrInvalidStrategy is returned when a block count or block size is not positive.
	ErrInvalidStrategy = split.ErrInvalidStrategy

	// ErrMalformedShareSet is returned when a share set has fewer than two shares or a share key of
	// the wrong length.
	ErrMalformedShareSet = errors.New("malformed share set")

	// ErrFormat is returned when a text form cannot be decoded.
	ErrFormat = codec.ErrFormat

	// ErrInvalidKey is returned when a packaging key is missing or the wrong length.
	ErrInvalidKey = prf.ErrInvalidKey
)

// Transform splits data into shares using a session key read from the package's secure random
// source.
func Transform(data []byte, key *PackagingKey, s Strategy) (ShareSet, error) {
	return TransformFrom(nil, data, key, s)
}

// TransformFrom splits data into shares using a session key read from rand. If rand is nil, the
// package's secure random source is used.
//
// The returned share set has one masked block per block produced by the strategy, followed by the
// share key.
func TransformFrom(rand io.Reader, data []byte, key *PackagingKey, s Strategy) (ShareSet, error) {
	if len(data) == 0 {
		return nil, ErrEmptyInput
	}

	if key == nil {
		return nil, ErrInvalidKey
	}

	if s == nil {
		s = EqualCount(1)
	}

	// Generate a random session key.
	var sk [SessionKeySize]byte
	if _, err := rng.ReadFrom(rand, sk[:]); err != nil {
		return nil, fmt.Errorf("session key: %w", err)
	}

	// The session key never leaves this call.
	defer wipe(sk[:])

	// Split the plaintext.
	blocks, err := s(data)
	if err != nil {
		return nil, err
	}

	shares := make(ShareSet, len(blocks)+1)
	shareKey := internal.Copy(sk[:])

	for i, block := range blocks {
		// Mask the block with the session key's keystream.
		masked, err := mask(sk[:], i, block)
		if err != nil {
			return nil, err
		}

		// Fold the digest of the masked block into the share key.
		h, err := digest(key[:], i, masked)
		if err != nil {
			return nil, err
		}

		internal.XORInto(shareKey, h)

		shares[i] = masked
	}

	shares[len(blocks)] = shareKey

	return shares, nil
}

// InverseTransform recombines a complete share set into the original data.
//
// The result is only correct if the share set is complete, unmodified, in its original order, and
// paired with the packaging key used to create it. Otherwise the result is garbage and no error is
// returned.
func InverseTransform(shares ShareSet, key *PackagingKey) ([]byte, error) {
	if len(shares) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 shares, got %d", ErrMalformedShareSet, len(shares))
	}

	if key == nil {
		return nil, ErrInvalidKey
	}

	blocks, shareKey := shares.Blocks(), shares.Key()
	if len(shareKey) != SessionKeySize {
		return nil, fmt.Errorf("%w: share key must be %d bytes, got %d",
			ErrMalformedShareSet, SessionKeySize, len(shareKey))
	}

	// Recover the session key by folding every block digest out of the share key.
	sk := internal.Copy(shareKey)
	defer wipe(sk)

	for i, masked := range blocks {
		h, err := digest(key[:], i, masked)
		if err != nil {
			return nil, err
		}

		internal.XORInto(sk, h)
	}

	// Unmask each block and concatenate them in index order.
	out := make([]byte, 0, shares.DataLen())

	for i, masked := range blocks {
		block, err := mask(sk, i, masked)
		if err != nil {
			return nil, err
		}

		out = append(out, block...)
	}

	return out, nil
}

// mask XORs a block with the first len(block) bytes of the session key's keystream for index i.
// Masking is its own inverse.
func mask(sk []byte, i int, block []byte) ([]byte, error) {
	ks, err := prf.Keystream(sk, codec.LittleEndianU32(i), len(block))
	if err != nil {
		return nil, err
	}

	return internal.XOR(block, ks), nil
}

// digest returns the packaging key's digest of a masked block bound to index i. The index bytes are
// XORed into the leading bytes of the block. Blocks shorter than the index are zero-extended to its
// length first, so empty blocks at different indexes have different digests.
func digest(key []byte, i int, masked []byte) ([]byte, error) {
	n := len(masked)
	if n < codec.IndexSize {
		n = codec.IndexSize
	}

	input := make([]byte, n)
	copy(input, masked)
	internal.XORInto(input, codec.LittleEndianU32(i))

	return prf.Digest(key, input)
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
