package domain

import "slices"

// BookmarkSet is the viewer's personal archive: an ordered list of course IDs
// without duplicates. The stored form is a plain JSON array of strings.
type BookmarkSet []string

// Has reports whether id is bookmarked.
func (b BookmarkSet) Has(id string) bool {
	return slices.Contains(b, id)
}

// Toggle adds id when absent and removes it when present.
// It returns the new set and whether id is now bookmarked.
// The receiver is never modified.
func (b BookmarkSet) Toggle(id string) (BookmarkSet, bool) {
	if b.Has(id) {
		return b.Without(id), false
	}
	out := make(BookmarkSet, 0, len(b)+1)
	out = append(out, b...)
	return append(out, id), true
}

// Without returns a copy of b with id removed.
func (b BookmarkSet) Without(id string) BookmarkSet {
	out := make(BookmarkSet, 0, len(b))
	for _, v := range b {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// Lookup builds a membership map for repeated checks.
func (b BookmarkSet) Lookup() map[string]struct{} {
	m := make(map[string]struct{}, len(b))
	for _, id := range b {
		m[id] = struct{}{}
	}
	return m
}
