package catalog

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/MrSnakeDoc/learntube/internal/domain"
)

// SortKey selects the ordering of a view.
type SortKey string

const (
	SortDate   SortKey = "date"   // dateAdded, newest first
	SortRating SortKey = "rating" // rating, highest first
	SortTitle  SortKey = "title"  // title, ascending
)

// ParseSortKey maps user input to a SortKey. Unknown values yield SortDate.
func ParseSortKey(s string) SortKey {
	switch SortKey(strings.ToLower(strings.TrimSpace(s))) {
	case SortTitle:
		return SortTitle
	case SortRating:
		return SortRating
	default:
		return SortDate
	}
}

// Filter describes one derived view of the catalog.
type Filter struct {
	// Category keeps only courses whose category equals it. Empty means all.
	Category string
	// Archive keeps only bookmarked courses.
	Archive bool
	Query   domain.Query
	Sort    SortKey
}

// Fingerprint identifies the filter for view caching.
func (f Filter) Fingerprint() string {
	var b strings.Builder
	b.WriteString(f.Category)
	b.WriteByte(0)
	b.WriteString(strconv.FormatBool(f.Archive))
	b.WriteByte(0)
	b.WriteString(strings.Join(f.Query.Tokens, " "))
	b.WriteByte(0)
	b.WriteString(string(ParseSortKey(string(f.Sort))))
	return strconv.FormatUint(xxhash.Sum64String(b.String()), 16)
}

// Apply derives the ordered view. The input slice is never modified and the
// returned courses share no memory with it.
//
// Sorting is stable: courses with equal keys keep their collection order.
func Apply(courses []domain.Course, bookmarks domain.BookmarkSet, f Filter) []domain.Course {
	var saved map[string]struct{}
	if f.Archive {
		saved = bookmarks.Lookup()
	}

	out := make([]domain.Course, 0, len(courses))
	for _, c := range courses {
		if f.Category != "" && c.Category != f.Category {
			continue
		}
		if f.Archive {
			if _, ok := saved[c.ID]; !ok {
				continue
			}
		}
		if !f.Query.Matches(c) {
			continue
		}
		out = append(out, c.Clone())
	}

	sortCourses(out, ParseSortKey(string(f.Sort)))
	return out
}

func sortCourses(courses []domain.Course, key SortKey) {
	switch key {
	case SortTitle:
		// Collators keep internal buffers and are not safe for concurrent use.
		col := collate.New(language.Und, collate.IgnoreCase)
		slices.SortStableFunc(courses, func(a, b domain.Course) int {
			return col.CompareString(a.Title, b.Title)
		})
	case SortRating:
		slices.SortStableFunc(courses, func(a, b domain.Course) int {
			return cmp.Compare(b.Rating, a.Rating)
		})
	default:
		slices.SortStableFunc(courses, func(a, b domain.Course) int {
			return b.AddedAt().Compare(a.AddedAt())
		})
	}
}
