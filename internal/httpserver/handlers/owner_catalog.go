package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/learntube/internal/catalog"
	"github.com/MrSnakeDoc/learntube/internal/domain"
	"github.com/MrSnakeDoc/learntube/internal/httpserver/deps"
)

type saveCourseResponse struct {
	catalog.SaveResult
	EmbedURL string `json:"embedUrl"`
}

type categoryRequest struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

type renameResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	RenamedCourses int    `json:"renamedCourses"`
}

type replaceCategoriesResponse struct {
	Categories     []domain.Category `json:"categories"`
	RenamedCourses int               `json:"renamedCourses"`
}

type deleteResponse struct {
	Deleted bool `json:"deleted"`
}

// PreviewDraft validates a course form without committing it.
// ?id= previews an edit of an existing course.
func PreviewDraft(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in catalog.DraftInput
		if err := decodeJSON(w, r, &in); err != nil {
			writeError(w, http.StatusBadRequest, err.Error(), d.Logger)
			return
		}
		draft, err := d.Catalog.PrepareDraft(in, r.URL.Query().Get("id"))
		if err != nil {
			writeCatalogError(w, err, d.Logger)
			return
		}
		writeJSON(w, http.StatusOK, draft, d.Logger)
	}
}

// CreateCourse commits a new course.
func CreateCourse(d deps.Deps) http.HandlerFunc {
	return saveCourse(d, func(*http.Request) string { return "" }, http.StatusCreated)
}

// UpdateCourse commits an edit of the course in the path.
func UpdateCourse(d deps.Deps) http.HandlerFunc {
	return saveCourse(d, func(r *http.Request) string { return chi.URLParam(r, "id") }, http.StatusOK)
}

func saveCourse(d deps.Deps, idOf func(*http.Request) string, status int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in catalog.DraftInput
		if err := decodeJSON(w, r, &in); err != nil {
			writeError(w, http.StatusBadRequest, err.Error(), d.Logger)
			return
		}
		draft, err := d.Catalog.PrepareDraft(in, idOf(r))
		if err != nil {
			writeCatalogError(w, err, d.Logger)
			return
		}
		res, err := d.Catalog.SaveCourse(r.Context(), draft.Course)
		if err != nil {
			writeCatalogError(w, err, d.Logger)
			return
		}
		writeJSON(w, status, saveCourseResponse{SaveResult: res, EmbedURL: draft.EmbedURL}, d.Logger)
	}
}

// DeleteCourse removes a course and its bookmark. Unknown ids are a no-op.
func DeleteCourse(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deleted := d.Catalog.DeleteCourse(r.Context(), chi.URLParam(r, "id"))
		writeJSON(w, http.StatusOK, deleteResponse{Deleted: deleted}, d.Logger)
	}
}

// AddCategory creates a category.
func AddCategory(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req categoryRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error(), d.Logger)
			return
		}
		cat, err := d.Catalog.AddCategory(r.Context(), req.Name, req.Icon)
		if err != nil {
			writeCatalogError(w, err, d.Logger)
			return
		}
		writeJSON(w, http.StatusCreated, cat, d.Logger)
	}
}

// RenameCategory renames a category and every course filed under it.
func RenameCategory(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req categoryRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error(), d.Logger)
			return
		}
		id := chi.URLParam(r, "id")
		n, err := d.Catalog.RenameCategory(r.Context(), id, req.Name)
		if err != nil {
			writeCatalogError(w, err, d.Logger)
			return
		}
		writeJSON(w, http.StatusOK, renameResponse{ID: id, Name: strings.TrimSpace(req.Name), RenamedCourses: n}, d.Logger)
	}
}

// RemoveCategory deletes a category. A category still in use needs ?force=true.
func RemoveCategory(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		force, _ := strconv.ParseBool(r.URL.Query().Get("force"))
		cat, err := d.Catalog.RemoveCategory(r.Context(), chi.URLParam(r, "id"), force)
		if errors.Is(err, catalog.ErrCategoryInUse) {
			n := d.Catalog.CourseCountByCategory(categoryName(d, chi.URLParam(r, "id")))
			writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error(), Courses: &n}, d.Logger)
			return
		}
		if err != nil {
			writeCatalogError(w, err, d.Logger)
			return
		}
		writeJSON(w, http.StatusOK, cat, d.Logger)
	}
}

// ReplaceCategories saves an edited category list in one step.
func ReplaceCategories(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var list []domain.Category
		if err := decodeJSON(w, r, &list); err != nil {
			writeError(w, http.StatusBadRequest, err.Error(), d.Logger)
			return
		}
		cats, n, err := d.Catalog.ReplaceCategories(r.Context(), list)
		if err != nil {
			writeCatalogError(w, err, d.Logger)
			return
		}
		writeJSON(w, http.StatusOK, replaceCategoriesResponse{Categories: cats, RenamedCourses: n}, d.Logger)
	}
}

func categoryName(d deps.Deps, id string) string {
	for _, c := range d.Catalog.Categories() {
		if c.ID == id {
			return c.Name
		}
	}
	return ""
}
