package sign

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/codahale/aont/pkg/aont/internal/pbenc"
	"github.com/codahale/aont/pkg/aont/internal/rng"
)

// ErrInvalidPassphrase is returned when an encrypted secret key cannot be decrypted with the given
// passphrase.
var ErrInvalidPassphrase = errors.New("invalid passphrase")

// PBEParams contains the parameters of the passphrase-based KDF.
type PBEParams struct {
	Space, Time uint32 // The space and time balloon hashing parameters.
}

// DefaultPBEParams is used when no parameters are given to EncryptSecretKey.
//
//nolint:gochecknoglobals // constant
var DefaultPBEParams = PBEParams{Space: 1024, Time: 16}

// EncryptSecretKey encrypts the given secret key with the given passphrase and optional balloon
// hashing parameters. Returns the encrypted key.
func EncryptSecretKey(sk *SecretKey, passphrase []byte, params *PBEParams) ([]byte, error) {
	var esk encryptedSecretKey

	if params == nil {
		params = &DefaultPBEParams
	}

	if err := params.validate(); err != nil {
		return nil, err
	}

	esk.Params = *params

	if _, err := rng.Read(esk.Salt[:]); err != nil {
		return nil, err
	}

	skb, _ := sk.MarshalBinary()
	copy(esk.Ciphertext[:], pbenc.Encrypt(passphrase, esk.Salt[:], skb,
		int(esk.Params.Space), int(esk.Params.Time)))

	buf := bytes.NewBuffer(nil)
	if err := binary.Write(buf, binary.BigEndian, &esk); err != nil {
		panic(err)
	}

	return buf.Bytes(), nil
}

// DecryptSecretKey decrypts the given secret key with the given passphrase.
func DecryptSecretKey(data, passphrase []byte) (*SecretKey, error) {
	var esk encryptedSecretKey
	if err := binary.Read(bytes.NewReader(data), binary.BigEndian, &esk); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}

	if err := esk.Params.validate(); err != nil {
		return nil, err
	}

	skb, err := pbenc.Decrypt(passphrase, esk.Salt[:], esk.Ciphertext[:],
		int(esk.Params.Space), int(esk.Params.Time))
	if err != nil {
		return nil, ErrInvalidPassphrase
	}

	var sk SecretKey
	if err := sk.UnmarshalBinary(skb); err != nil {
		return nil, err
	}

	return &sk, nil
}

// validate checks the parameters against the bounds shared by encryption and decryption.
func (p *PBEParams) validate() error {
	if p.Space < 1 || p.Space > maxSpace {
		return fmt.Errorf("%w: space parameter %d not in [1, %d]", ErrInvalidKey, p.Space, maxSpace)
	}

	if p.Time > maxTime {
		return fmt.Errorf("%w: time parameter %d exceeds %d", ErrInvalidKey, p.Time, maxTime)
	}

	return nil
}

// encryptedSecretKey is a fixed-size struct of the encoded values for an encrypted secret key.
type encryptedSecretKey struct {
	Params     PBEParams
	Salt       [saltSize]byte
	Ciphertext [secretKeySize + pbenc.Overhead]byte
}

const (
	saltSize      = 16
	secretKeySize = 32
	maxSpace      = 1 << 20
	maxTime       = 1 << 10
)
