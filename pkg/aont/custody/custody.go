// Package custody gates recombination of a share set behind a signed, time-limited access token.
//
// A publisher transforms a plaintext with aont, distributes the masked blocks freely, and splits
// the share key among several parties so that any threshold of them can recombine it. To release
// the plaintext, a holder presents a token signed with their own key; the gate checks the
// signature, the expiry, and the holder's entitlement to the asset before recombining the share key
// and inverting the share set.
//
// The engine itself has no integrity check, so each Package carries a SHA-256 checksum of the
// plaintext which Release verifies after recombination.
package custody

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/codahale/aont/pkg/aont"
	"github.com/codahale/aont/pkg/aont/sharing"
	"github.com/codahale/aont/pkg/aont/sign"
)

var (
	// ErrNotEntitled is returned when the ledger does not entitle a token's holder to the asset.
	ErrNotEntitled = errors.New("holder not entitled to asset")

	// ErrInsufficientShares is returned when fewer key parts than the threshold are supplied, or
	// the recombined share key is malformed.
	ErrInsufficientShares = errors.New("insufficient key parts")

	// ErrChecksumMismatch is returned when the recombined plaintext does not match its checksum.
	ErrChecksumMismatch = errors.New("checksum mismatch")
)

// SecretSplitter splits a secret into parts, any threshold of which can recombine it.
type SecretSplitter interface {
	Split(secret []byte, parts, threshold int) ([][]byte, error)
}

// SecretCombiner recombines a secret from a threshold of its parts.
type SecretCombiner interface {
	Combine(parts [][]byte) ([]byte, error)
}

// Signer signs messages.
type Signer interface {
	Sign(msg []byte) ([]byte, error)
}

// Verifier verifies signatures, returning a non-nil error if a signature is invalid.
type Verifier interface {
	Verify(msg, sig []byte) error
}

// KeyResolver returns the Verifier for a token holder.
type KeyResolver func(holder string) (Verifier, error)

// PublicKeys resolves holders named by their base58 sign.PublicKey.
func PublicKeys(holder string) (Verifier, error) {
	pk, err := sign.ParsePublicKey(holder)
	if err != nil {
		return nil, err
	}

	return pk, nil
}

// Ledger reports whether a holder is entitled to an asset, e.g. by owning a token on a chain.
type Ledger interface {
	Entitled(ctx context.Context, holder, asset string) (bool, error)
}

// LedgerFunc adapts a function to a Ledger.
type LedgerFunc func(ctx context.Context, holder, asset string) (bool, error)

// Entitled calls f(ctx, holder, asset).
func (f LedgerFunc) Entitled(ctx context.Context, holder, asset string) (bool, error) {
	return f(ctx, holder, asset)
}

// Logger receives a line for each decision the gate makes. *github.com/google/logger.Logger
// satisfies it.
type Logger interface {
	Infof(format string, v ...interface{})
	Warningf(format string, v ...interface{})
}

// Package is a published asset: the masked blocks, the parts of the split share key, and a
// checksum of the plaintext.
type Package struct {
	Asset     string
	Blocks    [][]byte
	KeyParts  [][]byte
	Threshold int
	Checksum  []byte
}

// Gate publishes and releases packages. Only Key is required.
type Gate struct {
	// Key is the packaging key shared between publisher and gate.
	Key *aont.PackagingKey

	// Splitter and Combiner default to sharing.Shamir.
	Splitter SecretSplitter
	Combiner SecretCombiner

	// Keys defaults to PublicKeys.
	Keys KeyResolver

	// Ledger is consulted on every release. If nil, every holder of a valid token is entitled.
	Ledger Ledger

	// Logger defaults to discarding everything.
	Logger Logger

	// Now defaults to time.Now.
	Now func() time.Time

	// Rand is the session key source. If nil, aont's secure random source is used.
	Rand io.Reader
}

// Publish transforms data and splits its share key into parts, any threshold of which recombine it.
func (g *Gate) Publish(asset string, data []byte, s aont.Strategy, parts, threshold int) (*Package, error) {
	shares, err := aont.TransformFrom(g.Rand, data, g.Key, s)
	if err != nil {
		return nil, err
	}

	keyParts, err := g.splitter().Split(shares.Key(), parts, threshold)
	if err != nil {
		return nil, err
	}

	sum := sha256.Sum256(data)

	g.logger().Infof("published %q: %d blocks, key split %d of %d", asset, len(shares.Blocks()), threshold, parts)

	return &Package{
		Asset:     asset,
		Blocks:    shares.Blocks(),
		KeyParts:  keyParts,
		Threshold: threshold,
		Checksum:  sum[:],
	}, nil
}

// Release verifies the token, checks the holder's entitlement, recombines the share key from the
// given key parts, and returns the original plaintext.
func (g *Gate) Release(ctx context.Context, pkg *Package, parts [][]byte, token *SignedToken) ([]byte, error) {
	if pkg == nil {
		return nil, fmt.Errorf("%w: no package", aont.ErrMalformedShareSet)
	}

	if token == nil {
		return nil, fmt.Errorf("%w: no token", ErrInvalidToken)
	}

	t, err := g.authorize(ctx, pkg.Asset, token)
	if err != nil {
		g.logger().Warningf("refused release of %q: %v", pkg.Asset, err)
		return nil, err
	}

	shareKey, err := g.combine(pkg, parts)
	if err != nil {
		return nil, err
	}

	data, err := aont.InverseTransform(aont.NewShareSet(pkg.Blocks, shareKey), g.Key)
	if err != nil {
		return nil, err
	}

	// The engine cannot detect a wrong key or a tampered block, so check the result here.
	sum := sha256.Sum256(data)
	if subtle.ConstantTimeCompare(sum[:], pkg.Checksum) != 1 {
		g.logger().Warningf("checksum mismatch releasing %q to %s", pkg.Asset, t.Holder)
		return nil, ErrChecksumMismatch
	}

	g.logger().Infof("released %q to %s", pkg.Asset, t.Holder)

	return data, nil
}

// Reshare recombines the share key from the given parts and splits it anew, returning a copy of the
// package with the new key parts. The masked blocks are unchanged.
func (g *Gate) Reshare(pkg *Package, parts [][]byte, n, threshold int) (*Package, error) {
	if pkg == nil {
		return nil, fmt.Errorf("%w: no package", aont.ErrMalformedShareSet)
	}

	shareKey, err := g.combine(pkg, parts)
	if err != nil {
		return nil, err
	}

	keyParts, err := g.splitter().Split(shareKey, n, threshold)
	if err != nil {
		return nil, err
	}

	g.logger().Infof("reshared %q: key split %d of %d", pkg.Asset, threshold, n)

	out := *pkg
	out.KeyParts = keyParts
	out.Threshold = threshold

	return &out, nil
}

func (g *Gate) authorize(ctx context.Context, asset string, token *SignedToken) (*Token, error) {
	keys := g.Keys
	if keys == nil {
		keys = PublicKeys
	}

	t, err := token.Verify(keys, g.now())
	if err != nil {
		return nil, err
	}

	if t.Asset != asset {
		return nil, fmt.Errorf("%w: token is for %q, not %q", ErrInvalidToken, t.Asset, asset)
	}

	if g.Ledger == nil {
		return t, nil
	}

	ok, err := g.Ledger.Entitled(ctx, t.Holder, asset)
	if err != nil {
		return nil, fmt.Errorf("ledger: %w", err)
	}

	if !ok {
		return nil, ErrNotEntitled
	}

	return t, nil
}

func (g *Gate) combine(pkg *Package, parts [][]byte) ([]byte, error) {
	if len(parts) < pkg.Threshold {
		return nil, fmt.Errorf("%w: need %d, got %d", ErrInsufficientShares, pkg.Threshold, len(parts))
	}

	shareKey, err := g.combiner().Combine(parts)
	if err != nil {
		return nil, err
	}

	if len(shareKey) != aont.SessionKeySize {
		return nil, fmt.Errorf("%w: recombined key is %d bytes", ErrInsufficientShares, len(shareKey))
	}

	return shareKey, nil
}

func (g *Gate) splitter() SecretSplitter {
	if g.Splitter == nil {
		return sharing.Shamir{}
	}

	return g.Splitter
}

func (g *Gate) combiner() SecretCombiner {
	if g.Combiner == nil {
		return sharing.Shamir{}
	}

	return g.Combiner
}

func (g *Gate) logger() Logger {
	if g.Logger == nil {
		return nopLogger{}
	}

	return g.Logger
}

func (g *Gate) now() time.Time {
	if g.Now == nil {
		return time.Now()
	}

	return g.Now()
}

type nopLogger struct{}

func (nopLogger) Infof(string, ...interface{})    {}
func (nopLogger) Warningf(string, ...interface{}) {}

var (
	_ SecretSplitter = sharing.Shamir{}
	_ SecretCombiner = sharing.Shamir{}
	_ Signer         = &sign.SecretKey{}
	_ Verifier       = &sign.PublicKey{}
	_ Ledger         = LedgerFunc(nil)
)
