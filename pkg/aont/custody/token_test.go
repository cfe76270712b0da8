package custody

import (
	"strings"
	"testing"
	"time"

	"github.com/codahale/aont/pkg/aont/sign"
	"github.com/codahale/gubbins/assert"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestSignedToken_Text(t *testing.T) {
	t.Parallel()

	sk, err := sign.NewSecretKey()
	if err != nil {
		t.Fatal(err)
	}

	token, err := IssueToken(sk, &Token{
		Holder:  sk.PublicKey().String(),
		Asset:   "asset",
		Expires: now.Add(time.Minute),
	})
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, "segments", 3, len(strings.Split(token.String(), ".")))

	parsed, err := ParseSignedToken(token.String())
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, "parsed token", token.String(), parsed.String())

	tok, err := parsed.Verify(PublicKeys, now)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, "token", &Token{
		Holder:  sk.PublicKey().String(),
		Asset:   "asset",
		Expires: now.Add(time.Minute),
	}, tok)
}

func TestSignedToken_Expiry(t *testing.T) {
	t.Parallel()

	sk, err := sign.NewSecretKey()
	if err != nil {
		t.Fatal(err)
	}

	token, err := IssueToken(sk, &Token{Holder: sk.PublicKey().String(), Asset: "asset", Expires: now})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := token.Verify(PublicKeys, now); err != nil {
		t.Errorf("token rejected at its expiry instant: %v", err)
	}

	_, err = token.Verify(PublicKeys, now.Add(time.Nanosecond))
	assert.Equal(t, "just after expiry", ErrTokenExpired, err, cmpopts.EquateErrors())
}

func TestParseSignedToken_Malformed(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"", "abc", "a.b", "a.b.c", "!!.!!.!!"} {
		_, err := ParseSignedToken(s)
		assert.Equal(t, s, ErrInvalidToken, err, cmpopts.EquateErrors())
	}
}

func TestParseSignedToken_OtherAlgorithm(t *testing.T) {
	t.Parallel()

	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims{
		Asset: "asset",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "holder",
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}).SignedString([]byte("shared secret"))
	if err != nil {
		t.Fatal(err)
	}

	_, err = ParseSignedToken(raw)
	assert.Equal(t, "parse", ErrInvalidToken, err, cmpopts.EquateErrors())

	// Bypassing the parse check still fails verification.
	st := &SignedToken{raw: raw}

	_, err = st.Verify(PublicKeys, now)
	assert.Equal(t, "verify", ErrInvalidToken, err, cmpopts.EquateErrors())
}

func TestSignedToken_VerifyUnknownHolder(t *testing.T) {
	t.Parallel()

	sk, err := sign.NewSecretKey()
	if err != nil {
		t.Fatal(err)
	}

	token, err := IssueToken(sk, &Token{Holder: "not a key", Asset: "asset", Expires: now.Add(time.Hour)})
	if err != nil {
		t.Fatal(err)
	}

	_, err = token.Verify(PublicKeys, now)
	assert.Equal(t, "error", ErrInvalidToken, err, cmpopts.EquateErrors())
}

func TestSignedToken_VerifyMissingExpiry(t *testing.T) {
	t.Parallel()

	sk, err := sign.NewSecretKey()
	if err != nil {
		t.Fatal(err)
	}

	raw, err := jwt.NewWithClaims(SigningMethodSchnorr, &claims{
		Asset:            "asset",
		RegisteredClaims: jwt.RegisteredClaims{Subject: sk.PublicKey().String()},
	}).SignedString(sk)
	if err != nil {
		t.Fatal(err)
	}

	token, err := ParseSignedToken(raw)
	if err != nil {
		t.Fatal(err)
	}

	_, err = token.Verify(PublicKeys, now)
	assert.Equal(t, "error", ErrInvalidToken, err, cmpopts.EquateErrors())
}

func TestSigningMethod_WrongKeyTypes(t *testing.T) {
	t.Parallel()

	_, err := SigningMethodSchnorr.Sign("header.payload", []byte("not a signer"))
	assert.Equal(t, "sign", jwt.ErrInvalidKeyType, err, cmpopts.EquateErrors())

	err = SigningMethodSchnorr.Verify("header.payload", nil, "not a verifier")
	assert.Equal(t, "verify", jwt.ErrInvalidKeyType, err, cmpopts.EquateErrors())
}
