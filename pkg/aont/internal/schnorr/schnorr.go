// Package schnorr provides Schnorr signatures over ristretto255 using STROBE transcripts.
//
// Signing is as follows, given a message M, a private scalar d, and a public element Q:
//
//     INIT('aont.schnorr', level=256)
//     AD(Q)
//     SEND_CLR(M)
//
// This protocol's context is cloned and the clone is used to derive a deterministic nonce r from
// the message and the signer's private scalar d:
//
//     KEY(d)
//     PRF(64) -> r
//
// Once r is generated, the clone's context is discarded and r is returned to the parent context:
//
//     R = rG
//     AD(R)
//     PRF(64) -> c
//     s = dc + r
//
// The resulting signature consists of the two scalars, c and s.
//
// To verify, aont.schnorr is run with the message M and the public element Q:
//
//     INIT('aont.schnorr', level=256)
//     AD(Q)
//     RECV_CLR(M)
//     R' = -cQ + sG
//     AD(R')
//     PRF(64) -> c'
//
// Finally, the verifier compares c' == c.
package schnorr

import (
	"github.com/codahale/aont/pkg/aont/internal/protocol"
	"github.com/gtank/ristretto255"
)

const (
	ElementSize = 32 // ElementSize is the length of an encoded ristretto255 element.
	ScalarSize  = 32 // ScalarSize is the length of an encoded ristretto255 scalar.

	// SignatureSize is the length of a signature in bytes.
	SignatureSize = ScalarSize + ScalarSize
)

// Sign returns a deterministic signature of msg by the given key pair.
func Sign(d *ristretto255.Scalar, q *ristretto255.Element, msg []byte) []byte {
	var buf [SignatureSize]byte

	// Initialize the protocol with the signer's public key and the message.
	schnorr := protocol.New("aont.schnorr")
	schnorr.Absorb(q.Encode(buf[:0]))
	schnorr.Send(msg)

	// Fork the transcript with the signer's private key and derive the nonce from it.
	r := schnorr.Fork(d.Encode(buf[:0])).SqueezeScalar()
	R := ristretto255.NewElement().ScalarBaseMult(r)

	// Hash the ephemeral public key.
	schnorr.Absorb(R.Encode(buf[:0]))

	// Extract a challenge scalar from the protocol state.
	c := schnorr.SqueezeScalar()

	// Calculate the signature scalar.
	s := ristretto255.NewScalar().Multiply(d, c)
	s = s.Add(s, r)

	// Return the challenge and signature scalars.
	return s.Encode(c.Encode(nil))
}

// Verify returns true if sig is a valid signature of msg by the holder of q.
func Verify(q *ristretto255.Element, msg, sig []byte) bool {
	var buf [ElementSize]byte

	if len(sig) != SignatureSize {
		return false
	}

	// Decode the challenge scalar.
	c := ristretto255.NewScalar()
	if err := c.Decode(sig[:ScalarSize]); err != nil {
		return false
	}

	// Decode the signature scalar.
	s := ristretto255.NewScalar()
	if err := s.Decode(sig[ScalarSize:]); err != nil {
		return false
	}

	// Re-run the protocol with the signer's public key and the message.
	schnorr := protocol.New("aont.schnorr")
	schnorr.Absorb(q.Encode(buf[:0]))
	schnorr.Receive(msg)

	// Re-calculate the ephemeral public key.
	S := ristretto255.NewElement().ScalarBaseMult(s)
	Qc := ristretto255.NewElement().ScalarMult(ristretto255.NewScalar().Negate(c), q)
	Rp := ristretto255.NewElement().Add(S, Qc)

	// Hash the ephemeral public key.
	schnorr.Absorb(Rp.Encode(buf[:0]))

	// Compare the extracted challenge scalar to the received challenge scalar.
	return c.Equal(schnorr.SqueezeScalar()) == 1
}
