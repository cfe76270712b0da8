// Package sharing splits a share key among several parties with Shamir's Secret Sharing, so that
// any threshold of them can recombine it.
//
// Only the share key of a share set is ever split this way; masked blocks are distributed as-is.
package sharing

import (
	"errors"
	"fmt"

	"github.com/SSSaaS/sssa-golang"
	"github.com/codahale/aont/pkg/aont/internal/codec"
)

// MaxParts is the largest number of parts a secret can be split into.
const MaxParts = 255

var (
	// ErrInvalidThreshold is returned when the part count and threshold are out of range.
	ErrInvalidThreshold = errors.New("invalid threshold")

	// ErrEmptySecret is returned when asked to split an empty secret.
	ErrEmptySecret = errors.New("empty secret")

	// ErrInvalidPart is returned when a part cannot be combined.
	ErrInvalidPart = errors.New("invalid part")
)

// Shamir splits and combines secrets. The zero value is ready to use.
type Shamir struct{}

// Split divides secret into parts, any threshold of which reconstruct it.
func (Shamir) Split(secret []byte, parts, threshold int) ([][]byte, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}

	if threshold < 2 || parts < threshold || parts > MaxParts {
		return nil, fmt.Errorf("%w: %d of %d parts", ErrInvalidThreshold, threshold, parts)
	}

	// sssa operates on strings, so the secret is hex-encoded first.
	shares, err := sssa.Create(threshold, parts, codec.EncodeHex(secret))
	if err != nil {
		return nil, fmt.Errorf("split secret: %w", err)
	}

	out := make([][]byte, len(shares))
	for i, s := range shares {
		out[i] = []byte(s)
	}

	return out, nil
}

// Combine reconstructs a secret from at least threshold of its parts. Combining fewer parts than
// the threshold does not fail; it returns an unrelated value.
func (Shamir) Combine(parts [][]byte) ([]byte, error) {
	if len(parts) == 0 {
		return nil, fmt.Errorf("%w: no parts", ErrInvalidPart)
	}

	shares := make([]string, len(parts))

	for i, p := range parts {
		if !sssa.IsValidShare(string(p)) {
			return nil, fmt.Errorf("%w: part %d", ErrInvalidPart, i)
		}

		shares[i] = string(p)
	}

	secret, err := sssa.Combine(shares)
	if err != nil {
		return nil, fmt.Errorf("combine parts: %w", err)
	}

	b, err := codec.DecodeHex(secret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPart, err)
	}

	return b, nil
}
