package mw

import (
	"encoding/json"
	"net/http"

	"github.com/MrSnakeDoc/learntube/internal/logger"
	"github.com/MrSnakeDoc/learntube/internal/utils"
)

// OwnerChecker reports whether a request carries an authenticated owner session.
type OwnerChecker interface {
	Authenticated(r *http.Request) bool
}

// RequireOwner rejects requests without an owner session with 401.
func RequireOwner(sessions OwnerChecker, trustProxy bool, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !sessions.Authenticated(r) {
				log.Debug("RequireOwner: no owner session",
					logger.String("path", r.URL.Path),
					logger.String("remote_ip", utils.ClientIP(r, trustProxy)))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "owner access required"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
