// Package browse keeps per-viewer browsing state: the selected category or
// archive mode, the sort order and the debounced search query.
package browse

import (
	"context"
	"sync"
	"time"

	"github.com/MrSnakeDoc/learntube/internal/catalog"
	"github.com/MrSnakeDoc/learntube/internal/debounce"
	"github.com/MrSnakeDoc/learntube/internal/domain"
)

// Viewer derives catalog views. Implemented by *catalog.Catalog.
type Viewer interface {
	View(ctx context.Context, f catalog.Filter) []domain.Course
}

// Session is one viewer's browsing state.
//
// Category and archive mode are mutually exclusive: selecting one clears
// the other. Search input only affects views once it has settled.
type Session struct {
	ID string

	mu       sync.Mutex
	category string
	archive  bool
	input    string
	query    domain.Query
	sort     catalog.SortKey
	lastSeen time.Time
	settle   *debounce.Debouncer
}

// State is a snapshot of a Session.
type State struct {
	Category    string          `json:"category"`
	Archive     bool            `json:"archive"`
	SearchInput string          `json:"searchInput"`
	Query       string          `json:"query"`
	Sort        catalog.SortKey `json:"sort"`
	// Pending is true while the search input has not settled yet.
	Pending bool `json:"pending"`
}

// NewSession creates a session whose search input settles after wait.
func NewSession(id string, wait time.Duration, now time.Time) *Session {
	s := &Session{
		ID:       id,
		sort:     catalog.SortDate,
		lastSeen: now,
	}
	s.settle = debounce.New(wait, s.applyInput)
	return s
}

func (s *Session) applyInput() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.query = domain.ParseQuery(s.input)
}

// SetSearchInput records raw input. The query used for views follows once
// no further input arrives during the quiet period.
func (s *Session) SetSearchInput(input string) {
	s.mu.Lock()
	s.input = input
	s.mu.Unlock()

	s.settle.Trigger()
}

// SettleNow applies pending search input immediately.
func (s *Session) SettleNow() {
	s.settle.Flush()
}

// SetCategory selects a category and leaves archive mode.
func (s *Session) SetCategory(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.category = name
	s.archive = false
}

// ShowArchive switches to bookmarked courses and clears the category.
func (s *Session) ShowArchive() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.archive = true
	s.category = ""
}

// ShowAll clears both category and archive mode.
func (s *Session) ShowAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.archive = false
	s.category = ""
}

// SetSort changes the ordering.
func (s *Session) SetSort(key catalog.SortKey) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sort = catalog.ParseSortKey(string(key))
}

// Filter returns the filter for the settled state.
func (s *Session) Filter() catalog.Filter {
	s.mu.Lock()
	defer s.mu.Unlock()

	return catalog.Filter{
		Category: s.category,
		Archive:  s.archive,
		Query:    s.query,
		Sort:     s.sort,
	}
}

// View derives the session's current view.
func (s *Session) View(ctx context.Context, v Viewer) []domain.Course {
	return v.View(ctx, s.Filter())
}

// State returns a snapshot.
func (s *Session) State() State {
	pending := s.settle.Pending()

	s.mu.Lock()
	defer s.mu.Unlock()

	return State{
		Category:    s.category,
		Archive:     s.archive,
		SearchInput: s.input,
		Query:       s.query.Raw,
		Sort:        s.sort,
		Pending:     pending,
	}
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastSeen = now
}

// LastSeen returns the time of the last registry lookup.
func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.lastSeen
}

// Close cancels pending search input.
func (s *Session) Close() {
	s.settle.Stop()
}
