package custody

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// SigningMethodSchnorr signs tokens with a Signer and verifies them with a Verifier, e.g.
// sign.SecretKey and sign.PublicKey. It is registered with jwt under its Alg.
//
//nolint:gochecknoglobals // registered singleton
var SigningMethodSchnorr = &SigningMethodSigner{alg: "R255S"}

//nolint:gochecknoinits // registration must precede parsing
func init() {
	jwt.RegisterSigningMethod(SigningMethodSchnorr.Alg(), func() jwt.SigningMethod {
		return SigningMethodSchnorr
	})
}

// SigningMethodSigner implements jwt.SigningMethod over the Signer and Verifier capabilities.
type SigningMethodSigner struct {
	alg string
}

// Alg returns the JWS algorithm name.
func (sm *SigningMethodSigner) Alg() string {
	return sm.alg
}

// Sign signs the signing string. The key must be a Signer.
func (sm *SigningMethodSigner) Sign(signingString string, key interface{}) ([]byte, error) {
	signer, ok := key.(Signer)
	if !ok {
		return nil, fmt.Errorf("%w: %T is not a Signer", jwt.ErrInvalidKeyType, key)
	}

	return signer.Sign([]byte(signingString))
}

// Verify checks the signature of the signing string. The key must be a Verifier.
func (sm *SigningMethodSigner) Verify(signingString string, sig []byte, key interface{}) error {
	verifier, ok := key.(Verifier)
	if !ok {
		return fmt.Errorf("%w: %T is not a Verifier", jwt.ErrInvalidKeyType, key)
	}

	if err := verifier.Verify([]byte(signingString), sig); err != nil {
		return fmt.Errorf("%w: %v", jwt.ErrSignatureInvalid, err)
	}

	return nil
}

var _ jwt.SigningMethod = &SigningMethodSigner{}
