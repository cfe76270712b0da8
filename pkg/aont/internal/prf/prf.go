// Package prf adapts AES-128 into a pseudorandom function.
//
// The cipher is only ever run in ECB mode over PKCS#7-padded input, so each 16-byte block of output
// depends on exactly one block of input. Keystream and Digest use that as a keyed PRF; Encrypt and
// Decrypt expose the same construction as a bulk cipher for callers which need one.
//
// Keystream(K, S, n) encrypts the counter blocks
//
//     C_j = PKCS7(S) ^ (0^12 || BE_U32(j))    for j in [0, ceil(n/16))
//
// and returns the first n bytes of the result. For n <= 16 this is the first n bytes of
// AES-128-ECB(K, PKCS7(S)).
//
// Digest(K, M) encrypts PKCS7(M) and XORs together the ciphertext blocks which cover M (at least
// one), discarding a trailing block of pure padding.
package prf

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	KeySize   = 16            // KeySize is the length of an AES-128 key in bytes.
	BlockSize = aes.BlockSize // BlockSize is the length of a cipher block in bytes.
)

var (
	// ErrInvalidKey is returned when a key is not KeySize bytes long.
	ErrInvalidKey = errors.New("invalid key")

	// ErrSeedTooLong is returned when a keystream seed does not fit in a single padded block.
	ErrSeedTooLong = errors.New("keystream seed too long")
)

// Keystream returns n bytes of keystream derived from the given key and seed.
func Keystream(key, seed []byte, n int) ([]byte, error) {
	if len(seed) >= BlockSize {
		return nil, ErrSeedTooLong
	}

	if n <= 0 {
		return []byte{}, nil
	}

	b, err := newBlock(key)
	if err != nil {
		return nil, err
	}

	// Lay out the counter blocks.
	base := pad(seed)
	blocks := (n + BlockSize - 1) / BlockSize
	buf := make([]byte, blocks*BlockSize)

	for j := 0; j < blocks; j++ {
		c := buf[j*BlockSize : (j+1)*BlockSize]
		copy(c, base)

		ctr := binary.BigEndian.Uint32(c[BlockSize-4:]) ^ uint32(j)
		binary.BigEndian.PutUint32(c[BlockSize-4:], ctr)
	}

	// Encrypt them all in a single pass.
	newECBEncrypter(b).CryptBlocks(buf, buf)

	return buf[:n], nil
}

// Digest returns a BlockSize-byte keyed digest of the given input.
func Digest(key, input []byte) ([]byte, error) {
	b, err := newBlock(key)
	if err != nil {
		return nil, err
	}

	buf := pad(input)
	newECBEncrypter(b).CryptBlocks(buf, buf)

	// Only fold the blocks which carry input.
	blocks := (len(input) + BlockSize - 1) / BlockSize
	if blocks == 0 {
		blocks = 1
	}

	out := make([]byte, BlockSize)

	for j := 0; j < blocks; j++ {
		for i, v := range buf[j*BlockSize : (j+1)*BlockSize] {
			out[i] ^= v
		}
	}

	return out, nil
}

// Encrypt pads the plaintext and encrypts it with AES-128 in ECB mode.
func Encrypt(key, plaintext []byte) ([]byte, error) {
	b, err := newBlock(key)
	if err != nil {
		return nil, err
	}

	out := pad(plaintext)
	newECBEncrypter(b).CryptBlocks(out, out)

	return out, nil
}

// Decrypt reverses Encrypt, returning ErrInvalidPadding if the padding is malformed.
func Decrypt(key, ciphertext []byte) ([]byte, error) {
	b, err := newBlock(key)
	if err != nil {
		return nil, err
	}

	if len(ciphertext) == 0 || len(ciphertext)%BlockSize != 0 {
		return nil, ErrInvalidPadding
	}

	out := make([]byte, len(ciphertext))
	newECBDecrypter(b).CryptBlocks(out, ciphertext)

	return unpad(out)
}

func newBlock(key []byte) (cipher.Block, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: want %d bytes, got %d", ErrInvalidKey, KeySize, len(key))
	}

	return aes.NewCipher(key)
}
