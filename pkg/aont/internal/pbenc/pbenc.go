// Package pbenc implements memory-hard passphrase-based encryption via STROBE using balloon hashing.
//
// The protocol is initialized as follows, given a passphrase P, salt S, space parameter X, and time
// parameter Y:
//
//     INIT('aont.pbenc', level=256)
//     AD(LE_U64(X), meta=true)
//     AD(LE_U64(Y), meta=true)
//     AD(LE_U64(N), meta=true)
//     KEY(P)
//     AD(S)
//
// Then, for each iteration of the balloon hashing algorithm, given a counter C, a left block L, and
// a right block R:
//
//     AD(LE_U64(C))
//     AD(L)
//     AD(R)
//     PRF(N)
//
// The final block B_n is then used to key the protocol:
//
//     KEY(B_n)
//
// A message M is encrypted with SEND_ENC(M) followed by SEND_MAC(T), and decrypted with RECV_ENC(C)
// followed by RECV_MAC(T).
//
// There is no standard balloon hashing construction, so this protocol is in the very tall grass of
// cryptography.
//
// See https://eprint.iacr.org/2016/027.pdf
package pbenc

import (
	"encoding/binary"
	"errors"

	"github.com/codahale/aont/pkg/aont/internal/protocol"
)

// Overhead is the difference in length between a plaintext and its ciphertext.
const Overhead = protocol.TagSize

// ErrInvalidCiphertext is returned when a ciphertext cannot be decrypted with the given passphrase,
// salt, and parameters.
var ErrInvalidCiphertext = errors.New("invalid ciphertext")

// Encrypt encrypts the plaintext with the passphrase and salt.
func Encrypt(passphrase, salt, plaintext []byte, space, time int) []byte {
	return initProtocol(passphrase, salt, space, time).Seal(plaintext)
}

// Decrypt decrypts the ciphertext with the passphrase and salt.
func Decrypt(passphrase, salt, ciphertext []byte, space, time int) ([]byte, error) {
	if len(ciphertext) < Overhead {
		return nil, ErrInvalidCiphertext
	}

	plaintext, err := initProtocol(passphrase, salt, space, time).Open(ciphertext)
	if err != nil {
		return nil, ErrInvalidCiphertext
	}

	return plaintext, nil
}

func initProtocol(passphrase, salt []byte, space, time int) *protocol.Transcript {
	p := protocol.New("aont.pbenc")

	p.Params(uint64(space), uint64(time), blockSize)
	p.Key(passphrase)
	p.Absorb(salt)

	var (
		ctr uint64
		idx [blockSize]byte
	)

	buf := make([]byte, space*blockSize)
	block := func(m int) []byte {
		return buf[m*blockSize : (m+1)*blockSize]
	}

	// Expand the passphrase into the buffer.
	hashCounter(p, &ctr, block(0), nil, nil)

	for m := 1; m < space; m++ {
		hashCounter(p, &ctr, block(m), block(m-1), nil)
	}

	// Mix the buffer.
	for t := 1; t < time; t++ {
		for m := 1; m < space; m++ {
			hashCounter(p, &ctr, block(m), block(m-1), block(m))

			for i := 0; i < delta; i++ {
				binary.LittleEndian.PutUint32(idx[0:], uint32(t))
				binary.LittleEndian.PutUint32(idx[4:], uint32(m))
				binary.LittleEndian.PutUint32(idx[8:], uint32(i))
				hashCounter(p, &ctr, idx[:], salt, idx[:])

				other := int(binary.LittleEndian.Uint64(idx[:]) % uint64(space))
				hashCounter(p, &ctr, block(m), block(other), nil)
			}
		}
	}

	p.Key(block(space - 1))

	return p
}

func hashCounter(p *protocol.Transcript, ctr *uint64, dst, left, right []byte) {
	var ctrBuf [8]byte

	*ctr++
	binary.LittleEndian.PutUint64(ctrBuf[:], *ctr)

	p.Absorb(ctrBuf[:], left, right)

	// dst may alias left or right, so copy out only after both are absorbed.
	copy(dst, p.Squeeze(nil, len(dst)))
}

const (
	blockSize = 32 // The size of each buffer block in bytes.
	delta     = 3  // The number of dependencies per block.
)
