package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/MrSnakeDoc/learntube/internal/catalog"
	"github.com/MrSnakeDoc/learntube/internal/logger"
)

const maxBodyBytes = 64 << 10

type errorResponse struct {
	Error string `json:"error"`
	// Courses is set when a category is still referenced.
	Courses *int `json:"courses,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any, log logger.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Debug("failed to write response", logger.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string, log logger.Logger) {
	writeJSON(w, status, errorResponse{Error: msg}, log)
}

// decodeJSON reads a bounded JSON body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// writeCatalogError maps catalog sentinel errors to HTTP statuses.
func writeCatalogError(w http.ResponseWriter, err error, log logger.Logger) {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error(), log)
	case errors.Is(err, catalog.ErrIncompleteDraft):
		writeError(w, http.StatusUnprocessableEntity, err.Error(), log)
	case errors.Is(err, catalog.ErrInvalidDraft), errors.Is(err, catalog.ErrEmptyName):
		writeError(w, http.StatusBadRequest, err.Error(), log)
	case errors.Is(err, catalog.ErrCategoryExists), errors.Is(err, catalog.ErrCategoryInUse):
		writeError(w, http.StatusConflict, err.Error(), log)
	default:
		log.Error("unexpected catalog error", logger.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error", log)
	}
}
