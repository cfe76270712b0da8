// Package sign provides the signing keys used to authorize recombination of a share set.
//
// Keys are ristretto255 key pairs and signatures are Schnorr signatures over STROBE transcripts.
// Keys and signatures can be marshalled and unmarshalled as base58 text.
package sign

import (
	"encoding"
	"errors"
	"fmt"

	"github.com/codahale/aont/pkg/aont/internal/codec"
	"github.com/codahale/aont/pkg/aont/internal/protocol"
	"github.com/codahale/aont/pkg/aont/internal/rng"
	"github.com/codahale/aont/pkg/aont/internal/schnorr"
	"github.com/gtank/ristretto255"
)

// SignatureSize is the length of a signature in bytes.
const SignatureSize = schnorr.SignatureSize

var (
	// ErrInvalidSignature is returned when a signature, public key, and message do not match.
	ErrInvalidSignature = errors.New("invalid signature")

	// ErrInvalidKey is returned when a key cannot be decoded.
	ErrInvalidKey = errors.New("invalid key")
)

// SecretKey is a private key used to sign access tokens.
type SecretKey struct {
	d *ristretto255.Scalar
	q *ristretto255.Element
}

// NewSecretKey creates a new random secret key.
func NewSecretKey() (*SecretKey, error) {
	var r [protocol.UniformBytestringSize]byte

	if _, err := rng.Read(r[:]); err != nil {
		return nil, err
	}

	d := ristretto255.NewScalar().FromUniformBytes(r[:])

	return &SecretKey{d: d, q: ristretto255.NewElement().ScalarBaseMult(d)}, nil
}

// PublicKey returns the corresponding PublicKey for the receiver.
func (sk *SecretKey) PublicKey() *PublicKey {
	return &PublicKey{q: sk.q}
}

// Sign returns a signature of msg.
func (sk *SecretKey) Sign(msg []byte) ([]byte, error) {
	return schnorr.Sign(sk.d, sk.q, msg), nil
}

// MarshalBinary encodes the secret key into a 32-byte slice.
func (sk *SecretKey) MarshalBinary() ([]byte, error) {
	return sk.d.Encode(nil), nil
}

// UnmarshalBinary decodes the secret key from a 32-byte slice.
func (sk *SecretKey) UnmarshalBinary(data []byte) error {
	d := ristretto255.NewScalar()
	if err := d.Decode(data); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}

	sk.d = d
	sk.q = ristretto255.NewElement().ScalarBaseMult(d)

	return nil
}

// MarshalText encodes the secret key as base58 text.
func (sk *SecretKey) MarshalText() ([]byte, error) {
	return codec.ASCIIEncode(sk.d.Encode(nil)), nil
}

// UnmarshalText decodes the results of MarshalText.
func (sk *SecretKey) UnmarshalText(text []byte) error {
	data, err := codec.ASCIIDecode(text)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}

	return sk.UnmarshalBinary(data)
}

// String returns the public key, never the secret scalar.
func (sk *SecretKey) String() string {
	return sk.PublicKey().String()
}

// PublicKey is a key used to verify access tokens.
type PublicKey struct {
	q *ristretto255.Element
}

// Verify returns nil if sig is a valid signature of msg by the holder of the receiver, otherwise
// ErrInvalidSignature.
func (pk *PublicKey) Verify(msg, sig []byte) error {
	if !schnorr.Verify(pk.q, msg, sig) {
		return ErrInvalidSignature
	}

	return nil
}

// Equal returns true if the two keys are the same.
func (pk *PublicKey) Equal(other *PublicKey) bool {
	return pk.q.Equal(other.q) == 1
}

// MarshalBinary encodes the public key into a 32-byte slice.
func (pk *PublicKey) MarshalBinary() ([]byte, error) {
	return pk.q.Encode(nil), nil
}

// UnmarshalBinary decodes the public key from a 32-byte slice.
func (pk *PublicKey) UnmarshalBinary(data []byte) error {
	q := ristretto255.NewElement()
	if err := q.Decode(data); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}

	pk.q = q

	return nil
}

// MarshalText encodes the public key as base58 text.
func (pk *PublicKey) MarshalText() ([]byte, error) {
	return codec.ASCIIEncode(pk.q.Encode(nil)), nil
}

// UnmarshalText decodes the results of MarshalText.
func (pk *PublicKey) UnmarshalText(text []byte) error {
	data, err := codec.ASCIIDecode(text)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}

	return pk.UnmarshalBinary(data)
}

// String returns the public key as base58 text.
func (pk *PublicKey) String() string {
	text, err := pk.MarshalText()
	if err != nil {
		panic(err)
	}

	return string(text)
}

// ParsePublicKey decodes a public key from base58 text.
func ParsePublicKey(s string) (*PublicKey, error) {
	var pk PublicKey

	if err := pk.UnmarshalText([]byte(s)); err != nil {
		return nil, err
	}

	return &pk, nil
}

var (
	_ encoding.BinaryMarshaler   = &SecretKey{}
	_ encoding.BinaryUnmarshaler = &SecretKey{}
	_ encoding.TextMarshaler     = &SecretKey{}
	_ encoding.TextUnmarshaler   = &SecretKey{}
	_ fmt.Stringer               = &SecretKey{}
	_ encoding.BinaryMarshaler   = &PublicKey{}
	_ encoding.BinaryUnmarshaler = &PublicKey{}
	_ encoding.TextMarshaler     = &PublicKey{}
	_ encoding.TextUnmarshaler   = &PublicKey{}
	_ fmt.Stringer               = &PublicKey{}
)
