package owner

import (
	"context"
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

const (
	testSecret   = "open-sesame"
	testPassword = "Caf\u00e9 au lait"
)

func mustGate(t *testing.T, opts Options) *Gate {
	t.Helper()
	g, err := NewGate(opts)
	if err != nil {
		t.Fatalf("NewGate() error = %v", err)
	}
	return g
}

func TestVerify(t *testing.T) {
	gate := mustGate(t, Options{
		Secret: testSecret,
		Digest: Digest(Normalize(testPassword)),
	})

	tests := []struct {
		name       string
		candidate  string
		authorized bool
		path       string
	}{
		{name: "exact secret", candidate: testSecret, authorized: true, path: PathSecret},
		{name: "secret with whitespace", candidate: "  open-sesame\n", authorized: true, path: PathSecret},
		{name: "digest plaintext", candidate: testPassword, authorized: true, path: PathDigest},
		{name: "digest plaintext decomposed", candidate: "Cafe\u0301 au lait", authorized: true, path: PathDigest},
		{name: "wrong", candidate: "letmein", authorized: false},
		{name: "secret prefix", candidate: "open", authorized: false},
		{name: "empty", candidate: "   ", authorized: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := gate.Verify(context.Background(), tt.candidate)
			if err != nil {
				t.Fatalf("Verify() error = %v", err)
			}
			if res.Authorized != tt.authorized {
				t.Errorf("Authorized = %v, want %v", res.Authorized, tt.authorized)
			}
			if res.Path != tt.path {
				t.Errorf("Path = %q, want %q", res.Path, tt.path)
			}
			if res.Diagnostic != "" {
				t.Errorf("Diagnostic must be empty outside dev mode, got %q", res.Diagnostic)
			}
		})
	}
}

func TestVerifyBcryptDigest(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte(Normalize(testPassword)), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	gate := mustGate(t, Options{Digest: string(hash)})

	res, _ := gate.Verify(context.Background(), testPassword)
	if !res.Authorized || res.Path != PathDigest {
		t.Errorf("bcrypt digest should authorize, got %+v", res)
	}

	res, _ = gate.Verify(context.Background(), "nope")
	if res.Authorized {
		t.Error("bcrypt digest authorized a wrong password")
	}
}

func TestVerifyDiagnosticsNeverLeakSecret(t *testing.T) {
	gate := mustGate(t, Options{Secret: testSecret, Digest: Digest("x"), Diagnostics: true})

	res, err := gate.Verify(context.Background(), "wrong guess")
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if res.Authorized {
		t.Fatal("wrong guess authorized")
	}
	if res.Diagnostic == "" {
		t.Fatal("Diagnostic should be set in dev mode")
	}
	for _, fragment := range []string{"open", "sesame", "guess"} {
		if strings.Contains(res.Diagnostic, fragment) {
			t.Errorf("Diagnostic %q leaks %q", res.Diagnostic, fragment)
		}
	}
	if !strings.Contains(res.Diagnostic, "digest attempted: true") {
		t.Errorf("Diagnostic should say which paths ran, got %q", res.Diagnostic)
	}
}

func TestVerifyCancelled(t *testing.T) {
	gate := mustGate(t, Options{Secret: testSecret})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := gate.Verify(ctx, testSecret); !errors.Is(err, context.Canceled) {
		t.Errorf("Verify() error = %v, want context.Canceled", err)
	}
}

func TestNewGate(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		enabled bool
		wantErr bool
	}{
		{name: "nothing configured", opts: Options{}, enabled: false},
		{name: "secret only", opts: Options{Secret: " s "}, enabled: true},
		{name: "uppercase hex digest", opts: Options{Digest: strings.ToUpper(Digest("pw"))}, enabled: true},
		{name: "short hex", opts: Options{Digest: "abcd"}, wantErr: true},
		{name: "not hex", opts: Options{Digest: strings.Repeat("z", 64)}, wantErr: true},
		{name: "broken bcrypt", opts: Options{Digest: "$2a$xx"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewGate(tt.opts)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewGate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && g.Enabled() != tt.enabled {
				t.Errorf("Enabled() = %v, want %v", g.Enabled(), tt.enabled)
			}
		})
	}
}

func TestUnconfiguredGateRejectsEverything(t *testing.T) {
	gate := mustGate(t, Options{})
	res, _ := gate.Verify(context.Background(), "anything")
	if res.Authorized {
		t.Error("a gate without secret or digest must reject")
	}
}

func TestDigestMatchesShippedFormat(t *testing.T) {
	// sha256("password") as produced by `sha256sum`
	const want = "5e884898da28047151d0e56f8dc6292773603d0d6aabbdd62a11ef721d1542d8"
	if got := Digest("password"); got != want {
		t.Errorf("Digest() = %s, want %s", got, want)
	}
}
