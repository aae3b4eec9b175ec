package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/MrSnakeDoc/learntube/internal/domain"
	"github.com/MrSnakeDoc/learntube/internal/embed"
	"github.com/MrSnakeDoc/learntube/internal/sanitize"
)

// DefaultRating is given to new courses submitted without one.
const DefaultRating = 5.0

// DraftInput is the owner's course form as submitted.
type DraftInput struct {
	Title               string   `json:"title"`
	ChannelName         string   `json:"channelName"`
	ChannelURL          string   `json:"channelUrl"`
	ChannelThumbnailURL string   `json:"channelThumbnailUrl"`
	Description         string   `json:"description"`
	ThumbnailURL        string   `json:"thumbnailUrl"`
	VideoURL            string   `json:"videoUrl"`
	Skills              string   `json:"skills"` // comma separated
	Category            string   `json:"category"`
	Difficulty          string   `json:"difficulty"`
	Rating              *float64 `json:"rating"`
	DateAdded           string   `json:"dateAdded"`
}

// Draft is a validated course awaiting confirmation.
type Draft struct {
	Course domain.Course `json:"course"`
	// EmbedURL is empty when the video link is not recognised; the
	// preview should show a placeholder.
	EmbedURL string `json:"embedUrl"`
	// NewCategory reports that committing will create the category.
	NewCategory bool `json:"newCategory"`
}

// NewDraft validates in and fills defaults. When existing is non-nil the
// draft edits it: id is kept, as are rating and date when left blank.
//
// Missing title or video url yields ErrIncompleteDraft.
func NewDraft(in DraftInput, existing *domain.Course, newID func() string, now time.Time) (Draft, error) {
	title := sanitize.Text(in.Title)
	videoURL := sanitize.Text(in.VideoURL)
	if title == "" || videoURL == "" {
		return Draft{}, ErrIncompleteDraft
	}

	difficulty, err := domain.ParseDifficulty(in.Difficulty)
	if err != nil {
		return Draft{}, fmt.Errorf("%w: %v", ErrInvalidDraft, err)
	}

	course := domain.Course{
		Title:               title,
		ChannelName:         sanitize.Text(in.ChannelName),
		ChannelURL:          sanitize.URL(in.ChannelURL),
		ChannelThumbnailURL: sanitize.URL(in.ChannelThumbnailURL),
		Description:         sanitize.Text(in.Description),
		ThumbnailURL:        sanitize.URL(in.ThumbnailURL),
		VideoURL:            videoURL,
		Skills:              sanitize.Texts(strings.Split(in.Skills, ",")),
		Category:            sanitize.Text(in.Category),
		Difficulty:          difficulty,
		Rating:              DefaultRating,
		DateAdded:           now.Format(domain.DateLayout),
	}

	if existing != nil {
		course.ID = existing.ID
		course.Rating = existing.Rating
		course.DateAdded = existing.DateAdded
	} else {
		course.ID = newID()
	}

	if in.Rating != nil {
		course.Rating = *in.Rating
	}
	if d := strings.TrimSpace(in.DateAdded); d != "" {
		if _, err := time.Parse(domain.DateLayout, d); err != nil {
			return Draft{}, fmt.Errorf("%w: dateAdded must be YYYY-MM-DD", ErrInvalidDraft)
		}
		course.DateAdded = d
	}
	if course.ThumbnailURL == "" {
		course.ThumbnailURL = fmt.Sprintf("https://picsum.photos/seed/%s/800/450", course.ID)
	}

	return Draft{Course: course, EmbedURL: embed.Resolve(course.VideoURL)}, nil
}

// PrepareDraft builds a draft against the current catalog. A non-empty id
// edits that course and fails with ErrNotFound if it does not exist.
// An empty category defaults to the first known one.
func (c *Catalog) PrepareDraft(in DraftInput, id string) (Draft, error) {
	c.mu.RLock()
	var existing *domain.Course
	if id != "" {
		i := c.indexOf(id)
		if i < 0 {
			c.mu.RUnlock()
			return Draft{}, fmt.Errorf("course %q: %w", id, ErrNotFound)
		}
		cur := c.courses[i].Clone()
		existing = &cur
	}
	categories := c.categories
	c.mu.RUnlock()

	draft, err := NewDraft(in, existing, c.newID, c.now())
	if err != nil {
		return Draft{}, err
	}

	if draft.Course.Category == "" && len(categories) > 0 {
		draft.Course.Category = categories[0].Name
	}
	if draft.Course.Category != "" {
		_, known := domain.FindCategoryByName(categories, draft.Course.Category)
		draft.NewCategory = !known
	}
	return draft, nil
}
