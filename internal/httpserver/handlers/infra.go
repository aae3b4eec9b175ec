package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/learntube/internal/config"
	"github.com/MrSnakeDoc/learntube/internal/httpserver/deps"
)

type componentStatus struct {
	OK         bool   `json:"ok"`
	Loaded     *int   `json:"loaded,omitempty"`
	LastReload string `json:"last_reload,omitempty"`
	Mode       string `json:"mode,omitempty"`
	Impact     string `json:"impact,omitempty"`
	Error      string `json:"error,omitempty"`
}

type infraResponse struct {
	Status     string                     `json:"status"`
	Components map[string]componentStatus `json:"components"`
}

func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ov := d.Catalog.Overview()
		lastReload := "never"
		if !ov.LastReload.IsZero() {
			lastReload = ov.LastReload.Format("2006-01-02 15:04:05")
		}
		sessions := d.Browse.Len()

		components := map[string]componentStatus{
			"catalog": {
				OK:         ov.Courses > 0 || ov.Categories > 0,
				Loaded:     &ov.Courses,
				LastReload: lastReload,
			},
			"storage": checkStorage(r.Context(), d),
			"browse": {
				OK:     true,
				Loaded: &sessions,
			},
			"owner": ownerStatus(d),
		}

		writeJSON(w, http.StatusOK, infraResponse{
			Status:     determineStatus(components),
			Components: components,
		}, d.Logger)
	}
}

func determineStatus(components map[string]componentStatus) string {
	if c, ok := components["catalog"]; ok && !c.OK {
		return "critical" // nothing to browse
	}
	if s, ok := components["storage"]; ok && !s.OK {
		return "degraded" // changes are not persisted
	}
	return "optimal"
}

func checkStorage(ctx context.Context, d deps.Deps) componentStatus {
	if d.Storage == config.StorageMemory {
		return componentStatus{
			OK:     true,
			Mode:   config.StorageMemory,
			Impact: "changes-lost-on-restart",
		}
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := d.Store.Ping(ctx); err != nil {
		return componentStatus{
			OK:     false,
			Mode:   d.Storage,
			Impact: "persistence-disabled",
			Error:  "timeout",
		}
	}
	return componentStatus{
		OK:     true,
		Mode:   d.Storage,
		Impact: "durable",
	}
}

func ownerStatus(d deps.Deps) componentStatus {
	if !d.Gate.Enabled() {
		return componentStatus{OK: false, Impact: "editing-disabled", Error: "no owner credentials configured"}
	}
	return componentStatus{OK: true}
}
