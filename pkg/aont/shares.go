package aont

import (
	"encoding"
	"fmt"

	"github.com/codahale/aont/pkg/aont/internal/codec"
)

// ShareSet is the output of Transform: n masked blocks followed by the share key. Order is
// significant, and the set is only meaningful as a whole.
type ShareSet [][]byte

// Blocks returns the masked blocks.
func (s ShareSet) Blocks() [][]byte {
	if len(s) == 0 {
		return nil
	}

	return s[:len(s)-1]
}

// Key returns the share key, the final share of the set.
func (s ShareSet) Key() []byte {
	if len(s) == 0 {
		return nil
	}

	return s[len(s)-1]
}

// DataLen returns the combined length of the masked blocks, which is the length of the original
// data.
func (s ShareSet) DataLen() int {
	n := 0
	for _, b := range s.Blocks() {
		n += len(b)
	}

	return n
}

// NewShareSet assembles a share set from masked blocks and a share key.
func NewShareSet(blocks [][]byte, key []byte) ShareSet {
	s := make(ShareSet, 0, len(blocks)+1)
	s = append(s, blocks...)

	return append(s, key)
}

// MarshalBinary encodes the share set as a little-endian 32-bit share count followed by each share,
// prefixed with its little-endian 32-bit length.
func (s ShareSet) MarshalBinary() ([]byte, error) {
	n := codec.IndexSize
	for _, share := range s {
		n += codec.IndexSize + len(share)
	}

	out := make([]byte, 0, n)
	out = append(out, codec.LittleEndianU32(len(s))...)

	for _, share := range s {
		out = append(out, codec.LittleEndianU32(len(share))...)
		out = append(out, share...)
	}

	return out, nil
}

// UnmarshalBinary decodes the output of MarshalBinary.
func (s *ShareSet) UnmarshalBinary(data []byte) error {
	count, data, err := readIndex(data)
	if err != nil {
		return err
	}

	// Each share needs at least its length prefix.
	if count > len(data)/codec.IndexSize {
		return fmt.Errorf("%w: %d shares in %d bytes", ErrMalformedShareSet, count, len(data))
	}

	shares := make(ShareSet, count)

	for i := range shares {
		var n int

		n, data, err = readIndex(data)
		if err != nil {
			return err
		}

		if n > len(data) {
			return fmt.Errorf("%w: share %d is truncated", ErrMalformedShareSet, i)
		}

		shares[i], data = append([]byte(nil), data[:n]...), data[n:]
	}

	if len(data) != 0 {
		return fmt.Errorf("%w: %d trailing bytes", ErrMalformedShareSet, len(data))
	}

	*s = shares

	return nil
}

func readIndex(data []byte) (int, []byte, error) {
	if len(data) < codec.IndexSize {
		return 0, nil, fmt.Errorf("%w: truncated length", ErrMalformedShareSet)
	}

	n, err := codec.ParseLittleEndianU32(data[:codec.IndexSize])
	if err != nil {
		return 0, nil, err
	}

	return n, data[codec.IndexSize:], nil
}

var (
	_ encoding.BinaryMarshaler   = ShareSet{}
	_ encoding.BinaryUnmarshaler = &ShareSet{}
)
