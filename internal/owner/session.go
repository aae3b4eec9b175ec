package owner

import (
	"fmt"
	"net/http"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
)

const (
	// SessionName is the cookie carrying the owner flag.
	SessionName = "learntube-owner"

	authKey = "owner_auth"
)

// Mode is what the owner route shows for a given session.
type Mode string

const (
	// ModeViewer: not on the owner route, plain catalog.
	ModeViewer Mode = "viewer"
	// ModeLogin: on the owner route without a verified session.
	ModeLogin Mode = "login"
	// ModeOwner: on the owner route with a verified session.
	ModeOwner Mode = "owner"
)

// ModeFor combines the route signal with the session flag.
// Privileges require both.
func ModeFor(onOwnerRoute, authenticated bool) Mode {
	switch {
	case onOwnerRoute && authenticated:
		return ModeOwner
	case onOwnerRoute:
		return ModeLogin
	default:
		return ModeViewer
	}
}

// Sessions stores the owner flag in a signed cookie that lives for the
// browser session only.
type Sessions struct {
	store *sessions.CookieStore
}

// SessionOptions configures the cookie.
type SessionOptions struct {
	// Key signs the cookie. When empty a random key is generated, which
	// invalidates every owner session on restart.
	Key    []byte
	Secure bool
}

// NewSessions builds the cookie store.
func NewSessions(opts SessionOptions) (*Sessions, error) {
	key := opts.Key
	if len(key) == 0 {
		key = securecookie.GenerateRandomKey(32)
		if key == nil {
			return nil, fmt.Errorf("failed to generate session key")
		}
	}

	store := sessions.NewCookieStore(key)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   0, // browser-session cookie
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &Sessions{store: store}, nil
}

// Authenticated reports whether r carries a verified owner session.
func (s *Sessions) Authenticated(r *http.Request) bool {
	sess, err := s.store.Get(r, SessionName)
	if err != nil {
		return false
	}
	v, _ := sess.Values[authKey].(string)
	return v == "1"
}

// Grant records a successful verification.
func (s *Sessions) Grant(w http.ResponseWriter, r *http.Request) error {
	sess, _ := s.store.Get(r, SessionName) // a fresh session is returned on decode errors
	sess.Values[authKey] = "1"
	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("failed to save owner session: %w", err)
	}
	return nil
}

// Revoke clears the owner flag and expires the cookie.
func (s *Sessions) Revoke(w http.ResponseWriter, r *http.Request) error {
	sess, _ := s.store.Get(r, SessionName)
	delete(sess.Values, authKey)
	sess.Options.MaxAge = -1
	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("failed to clear owner session: %w", err)
	}
	return nil
}
