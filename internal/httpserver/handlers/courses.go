package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/learntube/internal/catalog"
	"github.com/MrSnakeDoc/learntube/internal/domain"
	"github.com/MrSnakeDoc/learntube/internal/embed"
	"github.com/MrSnakeDoc/learntube/internal/httpserver/deps"
)

type coursesResponse struct {
	Courses []domain.Course `json:"courses"`
	Total   int             `json:"total"`
}

type courseResponse struct {
	Course     domain.Course `json:"course"`
	EmbedURL   string        `json:"embedUrl"`
	Bookmarked bool          `json:"bookmarked"`
}

// filterFromQuery reads ?category=&archive=&q=&sort=.
// Archive mode wins over a category.
func filterFromQuery(r *http.Request) catalog.Filter {
	q := r.URL.Query()
	archive, _ := strconv.ParseBool(q.Get("archive"))

	f := catalog.Filter{
		Category: q.Get("category"),
		Archive:  archive,
		Query:    domain.ParseQuery(q.Get("q")),
		Sort:     catalog.ParseSortKey(q.Get("sort")),
	}
	if f.Archive {
		f.Category = ""
	}
	return f
}

// ListCourses returns the filtered and sorted catalog.
func ListCourses(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view := d.Catalog.View(r.Context(), filterFromQuery(r))
		writeJSON(w, http.StatusOK, coursesResponse{Courses: view, Total: len(view)}, d.Logger)
	}
}

// GetCourse returns one course with its embed URL. An empty embedUrl means
// the video link was not recognised.
func GetCourse(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		course, ok := d.Catalog.Course(id)
		if !ok {
			writeError(w, http.StatusNotFound, "course not found", d.Logger)
			return
		}
		writeJSON(w, http.StatusOK, courseResponse{
			Course:     course,
			EmbedURL:   embed.Resolve(course.VideoURL),
			Bookmarked: d.Catalog.IsBookmarked(id),
		}, d.Logger)
	}
}

// ListCategories returns categories with their course counts.
func ListCategories(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, d.Catalog.CategoriesWithCounts(), d.Logger)
	}
}

// Overview returns collection sizes.
func Overview(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, d.Catalog.Overview(), d.Logger)
	}
}
