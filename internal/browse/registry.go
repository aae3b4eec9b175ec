package browse

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Registry holds browse sessions keyed by viewer id.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
	wait     time.Duration
	now      func() time.Time
}

// NewRegistry creates a registry whose sessions settle search input after wait.
func NewRegistry(wait time.Duration) *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		wait:     wait,
		now:      time.Now,
	}
}

// Get returns the session for id, creating it when unknown. An empty or
// malformed id gets a fresh uuid; callers should hand the returned
// session's ID back to the viewer.
func (r *Registry) Get(id string) *Session {
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.NewString()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if s, ok := r.sessions[id]; ok {
		s.touch(now)
		return s
	}
	s := NewSession(id, r.wait, now)
	r.sessions[id] = s
	return s
}

// Sweep removes sessions not seen for longer than idle and returns how
// many were removed.
func (r *Registry) Sweep(idle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-idle)
	removed := 0
	for id, s := range r.sessions {
		if s.LastSeen().Before(cutoff) {
			s.Close()
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.sessions)
}

// Close stops every session.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, s := range r.sessions {
		s.Close()
		delete(r.sessions, id)
	}
}
