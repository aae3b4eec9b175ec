// Package owner implements the owner access check and the owner session.
//
// The gate is advisory: it keeps casual visitors out of the editing console,
// it is not a security boundary.
package owner

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/unicode/norm"
)

const (
	PathSecret = "secret"
	PathDigest = "digest"
)

// Options configures a Gate. Either acceptance path may be left empty.
type Options struct {
	// Secret is compared (trimmed) against the trimmed candidate.
	Secret string
	// Digest is a hex SHA-256 of the NFC-normalized password,
	// or a bcrypt hash ("$2a$...", "$2b$...").
	Digest string
	// Diagnostics fills Result.Diagnostic on failure. Development only.
	Diagnostics bool
}

// Result of a credential check.
type Result struct {
	Authorized bool
	// Path is the acceptance path that matched, empty on failure.
	Path string
	// Diagnostic describes a failed attempt. Only set with Options.Diagnostics;
	// it never contains characters of the secret and must not be shown to the caller.
	Diagnostic string
}

// Gate checks owner credentials.
type Gate struct {
	secret      string
	digest      string
	bcrypt      bool
	diagnostics bool
}

// NewGate validates opts and builds a Gate.
func NewGate(opts Options) (*Gate, error) {
	g := &Gate{
		secret:      strings.TrimSpace(opts.Secret),
		digest:      strings.TrimSpace(opts.Digest),
		diagnostics: opts.Diagnostics,
	}

	switch {
	case g.digest == "":
	case strings.HasPrefix(g.digest, "$2"):
		if _, err := bcrypt.Cost([]byte(g.digest)); err != nil {
			return nil, fmt.Errorf("invalid bcrypt owner digest: %w", err)
		}
		g.bcrypt = true
	default:
		g.digest = strings.ToLower(g.digest)
		if b, err := hex.DecodeString(g.digest); err != nil || len(b) != sha256.Size {
			return nil, fmt.Errorf("owner digest must be a hex sha256 or a bcrypt hash")
		}
	}

	return g, nil
}

// Enabled reports whether any acceptance path is configured.
func (g *Gate) Enabled() bool {
	return g.secret != "" || g.digest != ""
}

// Verify checks candidate against the configured secret, then the digest.
// It returns ctx.Err() if ctx is done before the check completes.
func (g *Gate) Verify(ctx context.Context, candidate string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	trimmed := strings.TrimSpace(candidate)
	if trimmed == "" {
		return g.reject(trimmed, false), nil
	}

	if g.secret != "" && subtle.ConstantTimeCompare([]byte(trimmed), []byte(g.secret)) == 1 {
		return Result{Authorized: true, Path: PathSecret}, nil
	}

	if g.digest == "" {
		return g.reject(trimmed, false), nil
	}

	ok, err := g.matchDigest(ctx, trimmed)
	if err != nil {
		return Result{}, err
	}
	if ok {
		return Result{Authorized: true, Path: PathDigest}, nil
	}
	return g.reject(trimmed, true), nil
}

// matchDigest hashes in a goroutine so a slow bcrypt cost can be abandoned on ctx.
func (g *Gate) matchDigest(ctx context.Context, trimmed string) (bool, error) {
	normalized := Normalize(trimmed)
	done := make(chan bool, 1)

	go func() {
		if g.bcrypt {
			done <- bcrypt.CompareHashAndPassword([]byte(g.digest), []byte(normalized)) == nil
			return
		}
		done <- subtle.ConstantTimeCompare([]byte(Digest(normalized)), []byte(g.digest)) == 1
	}()

	select {
	case ok := <-done:
		return ok, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

func (g *Gate) reject(trimmed string, digestTried bool) Result {
	r := Result{}
	if !g.diagnostics {
		return r
	}
	r.Diagnostic = strings.Join([]string{
		fmt.Sprintf("secret configured: %t", g.secret != ""),
		fmt.Sprintf("digest configured: %t", g.digest != ""),
		fmt.Sprintf("digest kind: %s", g.digestKind()),
		fmt.Sprintf("digest attempted: %t", digestTried),
		fmt.Sprintf("input length: %d", len([]rune(trimmed))),
	}, " | ")
	return r
}

func (g *Gate) digestKind() string {
	switch {
	case g.digest == "":
		return "none"
	case g.bcrypt:
		return "bcrypt"
	default:
		return "sha256"
	}
}

// Normalize trims and applies Unicode NFC so visually equal input hashes equally.
func Normalize(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// Digest returns the lowercase hex SHA-256 of s.
// Use it (on a Normalize'd password) to produce LEARNTUBE_OWNER_PASSWORD_HASH.
func Digest(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
