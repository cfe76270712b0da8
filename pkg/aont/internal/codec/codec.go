// Package codec converts between byte strings and the integer and text forms used by the AONT
// packages.
package codec

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/mr-tron/base58"
)

// ErrFormat is returned when a text form cannot be decoded.
var ErrFormat = errors.New("invalid format")

// IndexSize is the length of an encoded block index.
const IndexSize = 4

// LittleEndianU32 returns n as a 32-bit little endian bit string.
func LittleEndianU32(n int) []byte {
	var b [IndexSize]byte

	binary.LittleEndian.PutUint32(b[:], uint32(n))

	return b[:]
}

// ParseLittleEndianU32 returns the integer encoded by LittleEndianU32.
func ParseLittleEndianU32(b []byte) (int, error) {
	if len(b) != IndexSize {
		return 0, fmt.Errorf("%w: index must be %d bytes, got %d", ErrFormat, IndexSize, len(b))
	}

	return int(binary.LittleEndian.Uint32(b)), nil
}

// EncodeHex returns b as upper-case hexadecimal text.
func EncodeHex(b []byte) string {
	return strings.ToUpper(hex.EncodeToString(b))
}

// DecodeHex decodes hexadecimal text of either case.
func DecodeHex(s string) ([]byte, error) {
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("%w: odd length hex string", ErrFormat)
	}

	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}

	return b, nil
}

// Int returns b interpreted as a big-endian unsigned integer.
func Int(b []byte) *big.Int {
	return new(big.Int).SetBytes(b)
}

// Bytes returns the big-endian encoding of n, left-padded with zeros to size bytes. If n needs more
// than size bytes, its minimal encoding is returned.
func Bytes(n *big.Int, size int) []byte {
	b := n.Bytes()
	if len(b) >= size {
		return b
	}

	out := make([]byte, size)
	copy(out[size-len(b):], b)

	return out
}

// ASCIIEncode returns b as base58 text.
func ASCIIEncode(b []byte) []byte {
	return []byte(base58.Encode(b))
}

// ASCIIDecode decodes base58 text.
func ASCIIDecode(text []byte) ([]byte, error) {
	b, err := base58.Decode(string(text))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}

	return b, nil
}
