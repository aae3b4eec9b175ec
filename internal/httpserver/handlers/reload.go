package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/learntube/internal/httpserver/deps"
	"github.com/MrSnakeDoc/learntube/internal/logger"
)

type reloadResponse struct {
	Triggered bool   `json:"triggered"`
	Message   string `json:"message"`
}

// Reload triggers a manual resync of the catalog from the store
func Reload(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		select {
		case d.ResyncTrigger <- struct{}{}:
			d.Logger.Info("manual catalog resync triggered via endpoint",
				logger.String("remote_ip", r.RemoteAddr))
			writeJSON(w, http.StatusAccepted, reloadResponse{
				Triggered: true,
				Message:   "✅ Resync triggered successfully",
			}, d.Logger)
		default:
			d.Logger.Warn("catalog resync already pending",
				logger.String("remote_ip", r.RemoteAddr))
			writeJSON(w, http.StatusTooManyRequests, reloadResponse{
				Message: "⏳ Resync already pending, please wait",
			}, d.Logger)
		}
	}
}
