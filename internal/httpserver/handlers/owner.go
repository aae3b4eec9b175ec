package handlers

import (
	"errors"
	"net/http"

	"github.com/MrSnakeDoc/learntube/internal/httpserver/deps"
	"github.com/MrSnakeDoc/learntube/internal/logger"
	"github.com/MrSnakeDoc/learntube/internal/owner"
	"github.com/MrSnakeDoc/learntube/internal/utils"
)

// InvalidCodeMessage is the only thing a failed login ever reveals.
const InvalidCodeMessage = "invalid access code"

type loginRequest struct {
	Code string `json:"code"`
}

type statusResponse struct {
	Mode          owner.Mode `json:"mode"`
	Authenticated bool       `json:"authenticated"`
	Configured    bool       `json:"configured"`
}

// Login verifies the access code and grants an owner session.
func Login(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error(), d.Logger)
			return
		}

		ip := utils.ClientIP(r, d.TrustProxy)
		res, err := d.Gate.Verify(r.Context(), req.Code)
		if err != nil {
			d.Logger.Warn("owner verification aborted",
				logger.String("remote_ip", ip),
				logger.Error(err))
			status := http.StatusServiceUnavailable
			if errors.Is(err, r.Context().Err()) {
				status = http.StatusRequestTimeout
			}
			writeError(w, status, "verification aborted", d.Logger)
			return
		}

		if !res.Authorized {
			fields := []logger.Field{logger.String("remote_ip", ip)}
			if d.DevMode && res.Diagnostic != "" {
				fields = append(fields, logger.String("diagnostic", res.Diagnostic))
			}
			d.Logger.Debug("owner login rejected", fields...)
			writeError(w, http.StatusUnauthorized, InvalidCodeMessage, d.Logger)
			return
		}

		if err := d.Sessions.Grant(w, r); err != nil {
			d.Logger.Error("failed to grant owner session", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "internal error", d.Logger)
			return
		}

		d.Logger.Info("owner logged in",
			logger.String("remote_ip", ip),
			logger.String("path", res.Path))
		writeJSON(w, http.StatusOK, statusResponse{
			Mode:          owner.ModeOwner,
			Authenticated: true,
			Configured:    true,
		}, d.Logger)
	}
}

// Logout clears the owner session.
func Logout(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := d.Sessions.Revoke(w, r); err != nil {
			d.Logger.Warn("failed to clear owner session", logger.Error(err))
		}
		writeJSON(w, http.StatusOK, statusResponse{
			Mode:       owner.ModeLogin,
			Configured: d.Gate.Enabled(),
		}, d.Logger)
	}
}

// OwnerStatus reports what the owner route should show for the caller.
func OwnerStatus(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authed := d.Sessions.Authenticated(r)
		writeJSON(w, http.StatusOK, statusResponse{
			Mode:          owner.ModeFor(true, authed),
			Authenticated: authed,
			Configured:    d.Gate.Enabled(),
		}, d.Logger)
	}
}
