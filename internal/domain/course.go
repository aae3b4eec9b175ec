package domain

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar date format of Course.DateAdded.
const DateLayout = "2006-01-02"

// Difficulty is the fixed skill level enumeration.
type Difficulty string

const (
	Beginner     Difficulty = "Beginner"
	Intermediate Difficulty = "Intermediate"
	Advanced     Difficulty = "Advanced"
)

// Difficulties lists every valid level in display order.
var Difficulties = []Difficulty{Beginner, Intermediate, Advanced}

// ParseDifficulty matches case-insensitively. Empty input yields Beginner.
func ParseDifficulty(s string) (Difficulty, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Beginner, nil
	}
	for _, d := range Difficulties {
		if strings.EqualFold(s, string(d)) {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown difficulty %q", s)
}

// Course is a single catalog entry describing one video-based learning resource.
//
// JSON field names are the storage layout; they must not change.
type Course struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is opaque and stable for the lifetime of the entry.
	ID string `json:"id"`

	// ─────────────────────────────
	// Description
	// ─────────────────────────────

	Title               string `json:"title"`
	ChannelName         string `json:"channelName"`
	ChannelURL          string `json:"channelUrl"`
	ChannelThumbnailURL string `json:"channelThumbnailUrl,omitempty"`
	Description         string `json:"description"`
	ThumbnailURL        string `json:"thumbnailUrl"`

	// VideoURL is whatever the owner pasted. It is not canonical,
	// see embed.Resolve for the playable form.
	VideoURL string `json:"videoUrl"`

	// ─────────────────────────────
	// Classification
	// ─────────────────────────────

	Skills []string `json:"skills"`

	// Category is a soft reference to Category.Name (not its ID).
	// Orphaned names are tolerated.
	Category   string     `json:"category"`
	Difficulty Difficulty `json:"difficulty"`

	// ─────────────────────────────
	// Metrics
	// ─────────────────────────────

	// Rating is intended to be 0-5 but is not enforced.
	Rating float64 `json:"rating"`

	// DateAdded is a calendar date string (DateLayout).
	DateAdded string `json:"dateAdded"`
}

// AddedAt parses DateAdded. Unparseable values yield the zero time.
func (c Course) AddedAt() time.Time {
	s := strings.TrimSpace(c.DateAdded)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	return time.Time{}
}

// Clone returns a copy that shares no slices with c.
func (c Course) Clone() Course {
	if c.Skills != nil {
		c.Skills = append([]string(nil), c.Skills...)
	}
	return c
}

// CloneCourses deep-copies a collection.
func CloneCourses(in []Course) []Course {
	if in == nil {
		return nil
	}
	out := make([]Course, len(in))
	for i, c := range in {
		out[i] = c.Clone()
	}
	return out
}
