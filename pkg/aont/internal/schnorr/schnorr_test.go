package schnorr

import (
	"testing"

	"github.com/codahale/gubbins/assert"
	"github.com/gtank/ristretto255"
)

func keyPair(seed byte) (*ristretto255.Scalar, *ristretto255.Element) {
	var buf [64]byte
	for i := range buf {
		buf[i] = seed
	}

	d := ristretto255.NewScalar().FromUniformBytes(buf[:])

	return d, ristretto255.NewElement().ScalarBaseMult(d)
}

func TestSignAndVerify(t *testing.T) {
	t.Parallel()

	d, q := keyPair(1)
	message := []byte("this is great")

	sig := Sign(d, q, message)

	assert.Equal(t, "signature size", SignatureSize, len(sig))
	assert.Equal(t, "valid", true, Verify(q, message, sig))
}

func TestSign_Deterministic(t *testing.T) {
	t.Parallel()

	d, q := keyPair(2)
	message := []byte("this is great")

	assert.Equal(t, "signature", Sign(d, q, message), Sign(d, q, message))
}

func TestVerify_BadMessage(t *testing.T) {
	t.Parallel()

	d, q := keyPair(3)
	sig := Sign(d, q, []byte("this is great"))

	assert.Equal(t, "valid", false, Verify(q, []byte("this is not great"), sig))
}

func TestVerify_BadKey(t *testing.T) {
	t.Parallel()

	d, q := keyPair(4)
	_, qP := keyPair(5)
	sig := Sign(d, q, []byte("this is great"))

	assert.Equal(t, "valid", false, Verify(qP, []byte("this is great"), sig))
}

func TestVerify_BadSignature(t *testing.T) {
	t.Parallel()

	d, q := keyPair(6)
	message := []byte("this is great")
	sig := Sign(d, q, message)
	sig[SignatureSize-1] ^= 1

	assert.Equal(t, "flipped bit", false, Verify(q, message, sig))
	assert.Equal(t, "truncated", false, Verify(q, message, sig[:10]))
}

func BenchmarkSign(b *testing.B) {
	d, q := keyPair(7)
	message := make([]byte, 1024)

	for i := 0; i < b.N; i++ {
		_ = Sign(d, q, message)
	}
}

func BenchmarkVerify(b *testing.B) {
	d, q := keyPair(8)
	message := make([]byte, 1024)
	sig := Sign(d, q, message)

	for i := 0; i < b.N; i++ {
		_ = Verify(q, message, sig)
	}
}
