package handlers

import (
	"net/http"
	"strconv"

	"github.com/MrSnakeDoc/learntube/internal/browse"
	"github.com/MrSnakeDoc/learntube/internal/catalog"
	"github.com/MrSnakeDoc/learntube/internal/domain"
	"github.com/MrSnakeDoc/learntube/internal/httpserver/deps"
	"github.com/MrSnakeDoc/learntube/internal/logger"
)

// ViewerCookie carries the signed browse session id.
const ViewerCookie = "learntube-viewer"

type searchRequest struct {
	Input string `json:"input"`
}

type filterRequest struct {
	Category string `json:"category"`
	Archive  bool   `json:"archive"`
	Sort     string `json:"sort"`
}

type sessionViewResponse struct {
	State   browse.State    `json:"state"`
	Courses []domain.Course `json:"courses"`
	Total   int             `json:"total"`
}

// viewerSession resolves the caller's browse session and (re)issues the
// cookie when a new one was created.
func viewerSession(d deps.Deps, w http.ResponseWriter, r *http.Request) *browse.Session {
	var id string
	if c, err := r.Cookie(ViewerCookie); err == nil {
		if err := d.ViewerCookie.Decode(ViewerCookie, c.Value, &id); err != nil {
			d.Logger.Debug("ignoring invalid viewer cookie", logger.Error(err))
			id = ""
		}
	}

	s := d.Browse.Get(id)
	if s.ID == id {
		return s
	}

	encoded, err := d.ViewerCookie.Encode(ViewerCookie, s.ID)
	if err != nil {
		d.Logger.Warn("failed to encode viewer cookie", logger.Error(err))
		return s
	}
	http.SetCookie(w, &http.Cookie{
		Name:     ViewerCookie,
		Value:    encoded,
		Path:     "/",
		HttpOnly: true,
		Secure:   d.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	return s
}

// SetSearch records raw search input. It settles after the debounce
// window, or at once with ?settle=true.
func SetSearch(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req searchRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error(), d.Logger)
			return
		}

		s := viewerSession(d, w, r)
		s.SetSearchInput(req.Input)
		if settle, _ := strconv.ParseBool(r.URL.Query().Get("settle")); settle {
			s.SettleNow()
		}

		writeJSON(w, http.StatusAccepted, s.State(), d.Logger)
	}
}

// SetFilter switches between all courses, one category and the archive,
// and optionally changes the sort.
func SetFilter(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req filterRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error(), d.Logger)
			return
		}

		s := viewerSession(d, w, r)
		switch {
		case req.Archive:
			s.ShowArchive()
		case req.Category != "":
			s.SetCategory(req.Category)
		default:
			s.ShowAll()
		}
		if req.Sort != "" {
			s.SetSort(catalog.ParseSortKey(req.Sort))
		}

		writeJSON(w, http.StatusOK, s.State(), d.Logger)
	}
}

// SessionView returns the caller's current view.
func SessionView(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := viewerSession(d, w, r)
		courses := s.View(r.Context(), d.Catalog)
		writeJSON(w, http.StatusOK, sessionViewResponse{
			State:   s.State(),
			Courses: courses,
			Total:   len(courses),
		}, d.Logger)
	}
}
