package protocol

import (
	"bytes"
	"testing"

	"github.com/codahale/gubbins/assert"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestSqueeze_Deterministic(t *testing.T) {
	t.Parallel()

	a, b := New("aont.test"), New("aont.test")
	a.Key([]byte("ayellowsubmarine"))
	b.Key([]byte("ayellowsubmarine"))

	assert.Equal(t, "output", a.Squeeze(nil, 32), b.Squeeze(nil, 32))
}

func TestSqueeze_DomainSeparation(t *testing.T) {
	t.Parallel()

	a, b := New("aont.one"), New("aont.two")

	if bytes.Equal(a.Squeeze(nil, 32), b.Squeeze(nil, 32)) {
		t.Error("transcripts with different domains produced the same output")
	}
}

func TestParams_Bound(t *testing.T) {
	t.Parallel()

	a, b := New("aont.test"), New("aont.test")
	a.Params(64, 4)
	b.Params(4, 64)

	if bytes.Equal(a.Squeeze(nil, 32), b.Squeeze(nil, 32)) {
		t.Error("parameter order did not affect output")
	}
}

func TestAbsorb_Variadic(t *testing.T) {
	t.Parallel()

	a, b := New("aont.test"), New("aont.test")
	a.Absorb([]byte("one"), nil, []byte("two"))
	b.Absorb([]byte("one"))
	b.Absorb(nil)
	b.Absorb([]byte("two"))

	assert.Equal(t, "output", a.Squeeze(nil, 32), b.Squeeze(nil, 32))
}

func TestKey_DoesNotModifyKey(t *testing.T) {
	t.Parallel()

	key := []byte("ayellowsubmarine")
	p := New("aont.test")
	p.Key(key)

	assert.Equal(t, "key", []byte("ayellowsubmarine"), key)
}

func TestFork(t *testing.T) {
	t.Parallel()

	p, q := New("aont.test"), New("aont.test")
	p.Absorb([]byte("shared"))
	q.Absorb([]byte("shared"))

	f := p.Fork([]byte("secret"))
	parent, fork := p.Squeeze(nil, 16), f.Squeeze(nil, 16)

	assert.Equal(t, "parent unchanged", q.Squeeze(nil, 16), parent)

	if bytes.Equal(parent, fork) {
		t.Error("fork shares state with parent")
	}
}

func TestSendReceive(t *testing.T) {
	t.Parallel()

	s, r := New("aont.test"), New("aont.test")
	s.Send([]byte("message"))
	r.Receive([]byte("message"))

	assert.Equal(t, "transcripts agree", s.Squeeze(nil, 32), r.Squeeze(nil, 32))
}

func TestForget(t *testing.T) {
	t.Parallel()

	a, b := New("aont.test"), New("aont.test")
	a.Forget()

	if bytes.Equal(a.Squeeze(nil, 32), b.Squeeze(nil, 32)) {
		t.Error("forgetting did not change the transcript")
	}
}

func TestSealOpen(t *testing.T) {
	t.Parallel()

	s, r := New("aont.test"), New("aont.test")
	s.Key([]byte("ayellowsubmarine"))
	r.Key([]byte("ayellowsubmarine"))

	plaintext := []byte("message")
	sealed := s.Seal(plaintext)

	assert.Equal(t, "sealed length", len(plaintext)+TagSize, len(sealed))
	assert.Equal(t, "plaintext untouched", []byte("message"), plaintext)

	opened, err := r.Open(sealed)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, "plaintext", []byte("message"), opened)
}

func TestOpen_Invalid(t *testing.T) {
	t.Parallel()

	s := New("aont.test")
	s.Key([]byte("ayellowsubmarine"))
	sealed := s.Seal([]byte("message"))

	for name, tc := range map[string]struct {
		key    string
		sealed []byte
	}{
		"wrong key": {key: "anothersubmarine", sealed: sealed},
		"truncated": {key: "ayellowsubmarine", sealed: sealed[:TagSize-1]},
		"tampered":  {key: "ayellowsubmarine", sealed: append([]byte{sealed[0] ^ 1}, sealed[1:]...)},
	} {
		r := New("aont.test")
		r.Key([]byte(tc.key))

		_, err := r.Open(tc.sealed)
		assert.Equal(t, name, ErrUnauthenticated, err, cmpopts.EquateErrors())
	}
}
