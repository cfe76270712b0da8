package custody

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken is returned when a token is malformed, is signed by someone other than its
	// holder, or names a different asset.
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired is returned when a token is presented after its expiry.
	ErrTokenExpired = errors.New("token expired")
)

// Token is a holder's request for access to an asset, valid until Expires. Expiry has a precision of
// one second.
type Token struct {
	Holder  string
	Asset   string
	Expires time.Time
}

// claims is the JWT claim set of a Token. The holder is the subject.
type claims struct {
	Asset string `json:"asset"`
	jwt.RegisteredClaims
}

// SignedToken is a compact JWS of a Token, signed by its holder with SigningMethodSchnorr.
type SignedToken struct {
	raw string
}

// IssueToken encodes and signs t.
func IssueToken(s Signer, t *Token) (*SignedToken, error) {
	token := jwt.NewWithClaims(SigningMethodSchnorr, &claims{
		Asset: t.Asset,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   t.Holder,
			ExpiresAt: jwt.NewNumericDate(t.Expires),
		},
	})

	raw, err := token.SignedString(s)
	if err != nil {
		return nil, err
	}

	return &SignedToken{raw: raw}, nil
}

// ParseSignedToken parses the text form of a signed token. The signature is not checked.
func ParseSignedToken(s string) (*SignedToken, error) {
	var st SignedToken
	if err := st.UnmarshalText([]byte(s)); err != nil {
		return nil, err
	}

	return &st, nil
}

// Verify resolves the token holder's key, then checks the signature and the expiry as of now. A
// token is still valid at the instant it expires.
func (st *SignedToken) Verify(keys KeyResolver, now time.Time) (*Token, error) {
	var c claims

	_, err := jwt.ParseWithClaims(st.raw, &c,
		func(*jwt.Token) (interface{}, error) {
			return keys(c.Subject)
		},
		jwt.WithValidMethods([]string{SigningMethodSchnorr.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithLeeway(time.Nanosecond),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: at %s", ErrTokenExpired, c.ExpiresAt.UTC().Format(time.RFC3339))
		}

		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	return &Token{
		Holder:  c.Subject,
		Asset:   c.Asset,
		Expires: c.ExpiresAt.UTC(),
	}, nil
}

// MarshalText returns the compact JWS.
func (st *SignedToken) MarshalText() ([]byte, error) {
	return []byte(st.raw), nil
}

// UnmarshalText decodes a compact JWS, checking its structure and algorithm.
func (st *SignedToken) UnmarshalText(text []byte) error {
	token, _, err := jwt.NewParser().ParseUnverified(string(text), &claims{})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if token.Method != SigningMethodSchnorr {
		return fmt.Errorf("%w: algorithm %s", ErrInvalidToken, token.Method.Alg())
	}

	st.raw = string(text)

	return nil
}

// String returns the text form of the token.
func (st *SignedToken) String() string {
	return st.raw
}
