package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/learntube/internal/httpserver/deps"
	"github.com/MrSnakeDoc/learntube/internal/logger"
)

type readyzResponse struct {
	Ready   bool   `json:"ready"`
	Storage string `json:"storage"`
	Error   string `json:"error,omitempty"`
}

// Readyz reports ready once the durable store answers a ping.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := d.Store.Ping(ctx); err != nil {
			d.Logger.Warn("readiness check failed", logger.Error(err))
			writeJSON(w, http.StatusServiceUnavailable, readyzResponse{
				Storage: d.Storage,
				Error:   "store unreachable",
			}, d.Logger)
			return
		}

		writeJSON(w, http.StatusOK, readyzResponse{Ready: true, Storage: d.Storage}, d.Logger)
	}
}
