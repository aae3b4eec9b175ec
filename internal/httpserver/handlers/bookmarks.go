package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/learntube/internal/catalog"
	"github.com/MrSnakeDoc/learntube/internal/domain"
	"github.com/MrSnakeDoc/learntube/internal/httpserver/deps"
	"github.com/MrSnakeDoc/learntube/internal/logger"
)

type bookmarksResponse struct {
	IDs     domain.BookmarkSet `json:"ids"`
	Courses []domain.Course    `json:"courses"`
}

type toggleResponse struct {
	ID         string `json:"id"`
	Bookmarked bool   `json:"bookmarked"`
}

// ListBookmarks returns the bookmark set and the bookmarked courses.
func ListBookmarks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		courses := d.Catalog.View(r.Context(), catalog.Filter{Archive: true})
		writeJSON(w, http.StatusOK, bookmarksResponse{
			IDs:     d.Catalog.Bookmarks(),
			Courses: courses,
		}, d.Logger)
	}
}

// ToggleBookmark flips the bookmark of one course.
func ToggleBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		saved, err := d.Catalog.ToggleBookmark(r.Context(), id)
		if err != nil {
			writeCatalogError(w, err, d.Logger)
			return
		}
		d.Logger.Debug("bookmark toggled", logger.String("id", id), logger.Bool("bookmarked", saved))
		writeJSON(w, http.StatusOK, toggleResponse{ID: id, Bookmarked: saved}, d.Logger)
	}
}
