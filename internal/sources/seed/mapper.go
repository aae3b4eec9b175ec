package seed

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrSnakeDoc/learntube/internal/catalog"
	"github.com/MrSnakeDoc/learntube/internal/domain"
	"github.com/MrSnakeDoc/learntube/internal/sanitize"
)

// namespace derives stable ids for entries that do not set one, so the
// same file always yields the same ids.
var namespace = uuid.MustParse("6f1c3c3e-9a55-4d57-8f3b-3d1b7a0c2e41")

// Mapper converts a seed File to a catalog.Seed
type Mapper struct {
	now func() time.Time
}

// NewMapper creates a new mapper instance
func NewMapper() *Mapper {
	return &Mapper{now: time.Now}
}

// Map converts the file. Courses without title or video url and categories
// without name are skipped. A file with no usable category is an error.
func (m *Mapper) Map(file File) (catalog.Seed, error) {
	seed := catalog.Seed{
		Courses:    []domain.Course{},
		Categories: []domain.Category{},
		Bookmarks:  domain.BookmarkSet{},
	}
	today := m.now().Format(domain.DateLayout)

	for _, entry := range file.Categories {
		name := sanitize.Text(entry.Name)
		if name == "" {
			continue
		}
		if domain.HasCategoryFold(seed.Categories, name) {
			return catalog.Seed{}, fmt.Errorf("duplicate category %q in seed", name)
		}

		seed.Categories = append(seed.Categories, domain.Category{
			ID:   stableID(entry.ID, "category", name),
			Name: name,
			Icon: iconOrDefault(entry.Icon),
		})

		for _, ce := range entry.Courses {
			course, ok, err := mapCourse(ce, name, today)
			if err != nil {
				return catalog.Seed{}, err
			}
			if ok {
				seed.Courses = append(seed.Courses, course)
			}
		}
	}

	if len(seed.Categories) == 0 {
		return catalog.Seed{}, fmt.Errorf("no valid categories found in seed file")
	}

	known := make(map[string]struct{}, len(seed.Courses))
	for _, c := range seed.Courses {
		known[c.ID] = struct{}{}
	}
	for _, id := range file.Bookmarks {
		if _, ok := known[id]; ok && !seed.Bookmarks.Has(id) {
			seed.Bookmarks = append(seed.Bookmarks, id)
		}
	}

	return seed, nil
}

func mapCourse(e CourseEntry, category, today string) (domain.Course, bool, error) {
	title := sanitize.Text(e.Title)
	videoURL := strings.TrimSpace(e.VideoURL)
	if title == "" || videoURL == "" {
		return domain.Course{}, false, nil
	}

	difficulty, err := domain.ParseDifficulty(e.Difficulty)
	if err != nil {
		return domain.Course{}, false, fmt.Errorf("course %q: %w", title, err)
	}

	c := domain.Course{
		ID:                  stableID(e.ID, "course", videoURL+"\x00"+title),
		Title:               title,
		ChannelName:         sanitize.Text(e.ChannelName),
		ChannelURL:          sanitize.URL(e.ChannelURL),
		ChannelThumbnailURL: sanitize.URL(e.ChannelThumbnailURL),
		Description:         sanitize.Text(e.Description),
		ThumbnailURL:        sanitize.URL(e.ThumbnailURL),
		VideoURL:            videoURL,
		Skills:              sanitize.Texts(e.Skills),
		Category:            category,
		Difficulty:          difficulty,
		Rating:              catalog.DefaultRating,
		DateAdded:           strings.TrimSpace(e.DateAdded),
	}
	if e.Rating != nil {
		c.Rating = *e.Rating
	}
	if c.DateAdded == "" {
		c.DateAdded = today
	}
	if c.ThumbnailURL == "" {
		c.ThumbnailURL = fmt.Sprintf("https://picsum.photos/seed/%s/800/450", c.ID)
	}
	return c, true, nil
}

func stableID(explicit, kind, key string) string {
	if id := strings.TrimSpace(explicit); id != "" {
		return id
	}
	return uuid.NewSHA1(namespace, []byte(kind+":"+key)).String()
}

func iconOrDefault(icon string) string {
	if icon = strings.TrimSpace(icon); icon != "" {
		return icon
	}
	return domain.DefaultCategoryIcon
}

// LoadFile is a convenience for Loader + Mapper.
func LoadFile(path string) (catalog.Seed, error) {
	file, err := NewLoader(path).Load()
	if err != nil {
		return catalog.Seed{}, err
	}
	return NewMapper().Map(file)
}
