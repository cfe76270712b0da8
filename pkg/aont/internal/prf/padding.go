package prf

import (
	"bytes"
	"errors"
)

// ErrInvalidPadding is returned when a decrypted message does not end in valid PKCS#7 padding.
var ErrInvalidPadding = errors.New("invalid padding")

// pad appends PKCS#7 padding to b. A full block of padding is added when b is already
// block-aligned.
func pad(b []byte) []byte {
	n := BlockSize - len(b)%BlockSize
	out := make([]byte, len(b), len(b)+n)

	copy(out, b)

	return append(out, bytes.Repeat([]byte{byte(n)}, n)...)
}

// unpad removes PKCS#7 padding from b.
func unpad(b []byte) ([]byte, error) {
	if len(b) == 0 || len(b)%BlockSize != 0 {
		return nil, ErrInvalidPadding
	}

	n := int(b[len(b)-1])
	if n == 0 || n > BlockSize {
		return nil, ErrInvalidPadding
	}

	for _, v := range b[len(b)-n:] {
		if int(v) != n {
			return nil, ErrInvalidPadding
		}
	}

	return b[:len(b)-n], nil
}
