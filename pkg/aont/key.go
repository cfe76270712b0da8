package aont

import (
	"encoding"
	"fmt"

	"github.com/codahale/aont/pkg/aont/internal/codec"
	"github.com/codahale/aont/pkg/aont/internal/prf"
	"github.com/codahale/aont/pkg/aont/internal/rng"
)

// PackagingKeySize is the length of a packaging key in bytes.
const PackagingKeySize = prf.KeySize

// PackagingKey is the symmetric secret which keys the per-block digests of a share set. The same
// key must be used to transform and to invert a share set. It provides no asymmetric guarantees.
//
// It can be marshalled and unmarshalled as upper-case hexadecimal text.
type PackagingKey [PackagingKeySize]byte

// NewPackagingKey returns a random packaging key.
func NewPackagingKey() (*PackagingKey, error) {
	var k PackagingKey

	if _, err := rng.Read(k[:]); err != nil {
		return nil, err
	}

	return &k, nil
}

// ParsePackagingKey decodes a packaging key from its hexadecimal text form.
func ParsePackagingKey(s string) (*PackagingKey, error) {
	var k PackagingKey

	if err := k.UnmarshalText([]byte(s)); err != nil {
		return nil, err
	}

	return &k, nil
}

// MarshalBinary returns the raw key bytes.
func (k *PackagingKey) MarshalBinary() ([]byte, error) {
	return k[:], nil
}

// UnmarshalBinary sets the key from exactly PackagingKeySize bytes.
func (k *PackagingKey) UnmarshalBinary(data []byte) error {
	if len(data) != PackagingKeySize {
		return fmt.Errorf("%w: want %d bytes, got %d", ErrInvalidKey, PackagingKeySize, len(data))
	}

	copy(k[:], data)

	return nil
}

// MarshalText encodes the key as upper-case hexadecimal text.
func (k *PackagingKey) MarshalText() ([]byte, error) {
	return []byte(codec.EncodeHex(k[:])), nil
}

// UnmarshalText decodes the results of MarshalText.
func (k *PackagingKey) UnmarshalText(text []byte) error {
	data, err := codec.DecodeHex(string(text))
	if err != nil {
		return fmt.Errorf("invalid packaging key: %w", err)
	}

	return k.UnmarshalBinary(data)
}

// String returns the key as hexadecimal text.
func (k *PackagingKey) String() string {
	return codec.EncodeHex(k[:])
}

var (
	_ encoding.BinaryMarshaler   = &PackagingKey{}
	_ encoding.BinaryUnmarshaler = &PackagingKey{}
	_ encoding.TextMarshaler     = &PackagingKey{}
	_ encoding.TextUnmarshaler   = &PackagingKey{}
	_ fmt.Stringer               = &PackagingKey{}
)
