// Package protocol provides the STROBE transcripts behind the package's randomness, passphrase
// encryption, and token signatures.
//
// A Transcript is a STROBE-256 instance with a narrow set of operations: absorbing parameters and
// data, keying, squeezing output, and sealing or opening a single message. Misuse of the underlying
// state machine is a programming error and panics.
package protocol

import (
	"encoding/binary"
	"errors"

	"github.com/codahale/aont/pkg/aont/internal"
	"github.com/gtank/ristretto255"
	"github.com/sammyne/strobe"
)

const (
	// UniformBytestringSize is the length of a uniform bytestring which can be mapped to a
	// ristretto255 scalar.
	UniformBytestringSize = 64

	// TagSize is the length of the authentication tag appended by Seal.
	TagSize = 16
)

// ErrUnauthenticated is returned by Open when a sealed message fails authentication.
var ErrUnauthenticated = errors.New("unauthenticated message")

// Transcript is a running STROBE transcript.
type Transcript struct {
	s *strobe.Strobe
}

// New starts a transcript under the given domain name.
func New(domain string) *Transcript {
	s, err := strobe.New(domain, strobe.Bit256)
	if err != nil {
		panic(err)
	}

	return &Transcript{s: s}
}

// Params absorbs each value as little-endian 64-bit metadata.
func (t *Transcript) Params(values ...uint64) {
	var buf [8]byte

	for _, v := range values {
		binary.LittleEndian.PutUint64(buf[:], v)
		t.op(t.s.AD(buf[:], metaOpts))
	}
}

// Absorb adds each piece of data to the transcript in order. A nil piece is absorbed as an empty
// one.
func (t *Transcript) Absorb(data ...[]byte) {
	for _, d := range data {
		t.op(t.s.AD(d, defaultOpts))
	}
}

// Key mixes a copy of key into the transcript state.
func (t *Transcript) Key(key []byte) {
	t.op(t.s.KEY(internal.Copy(key), false))
}

// Squeeze appends n bytes of transcript output to dst and returns the result.
func (t *Transcript) Squeeze(dst []byte, n int) []byte {
	ret, out := internal.SliceForAppend(dst, n)
	t.op(t.s.PRF(out, false))

	return ret
}

// SqueezeScalar derives a uniformly distributed ristretto255 scalar from the transcript.
func (t *Transcript) SqueezeScalar() *ristretto255.Scalar {
	var buf [UniformBytestringSize]byte

	return ristretto255.NewScalar().FromUniformBytes(t.Squeeze(buf[:0], UniformBytestringSize))
}

// Forget irreversibly erases enough of the transcript state that earlier output cannot be
// recomputed from it.
func (t *Transcript) Forget() {
	t.op(t.s.RATCHET(int(strobe.Bit256) / 8))
}

// Fork returns an independent copy of the transcript keyed with key. The receiver is unchanged.
func (t *Transcript) Fork(key []byte) *Transcript {
	f := &Transcript{s: t.s.Clone()}
	f.Key(key)

	return f
}

// Send records a cleartext message sent by this party.
func (t *Transcript) Send(msg []byte) {
	t.op(t.s.SendCLR(msg, defaultOpts))
}

// Receive records a cleartext message received from the other party. A transcript which receives
// msg ends in the same state as one which sent it.
func (t *Transcript) Receive(msg []byte) {
	t.op(t.s.RecvCLR(msg, defaultOpts))
}

// Seal encrypts plaintext and appends an authentication tag, returning a new slice.
func (t *Transcript) Seal(plaintext []byte) []byte {
	out := make([]byte, len(plaintext), len(plaintext)+TagSize)
	copy(out, plaintext)

	_, err := t.s.SendENC(out, defaultOpts)
	t.op(err)

	ret, tag := internal.SliceForAppend(out, TagSize)
	t.op(t.s.SendMAC(tag, defaultOpts))

	return ret
}

// Open decrypts and authenticates a message produced by Seal on a matching transcript.
func (t *Transcript) Open(sealed []byte) ([]byte, error) {
	if len(sealed) < TagSize {
		return nil, ErrUnauthenticated
	}

	plaintext := internal.Copy(sealed[:len(sealed)-TagSize])

	_, err := t.s.RecvENC(plaintext, defaultOpts)
	t.op(err)

	if err := t.s.RecvMAC(internal.Copy(sealed[len(sealed)-TagSize:]), defaultOpts); err != nil {
		return nil, ErrUnauthenticated
	}

	return plaintext, nil
}

func (t *Transcript) op(err error) {
	if err != nil {
		panic(err)
	}
}

//nolint:gochecknoglobals // constants
var (
	defaultOpts = &strobe.Options{}
	metaOpts    = &strobe.Options{Meta: true}
)
