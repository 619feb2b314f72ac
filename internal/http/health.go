package http

import (
	"net/http"
	"time"

	"github.com/viewinvoices/server/pkg/httpx"
)

type healthResponse struct {
	Status   string `json:"status"`
	Database bool   `json:"database"`
	Uptime   string `json:"uptime"`
	Version  string `json:"version"`
}

// HealthHandler reports basic liveness plus whether the invoice database is
// wired up. It always answers 200; a missing database is a configuration
// state, not an outage.
func HealthHandler(startTime time.Time, version string, databaseConfigured bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, healthResponse{
			Status:   "ok",
			Database: databaseConfigured,
			Uptime:   time.Since(startTime).String(),
			Version:  version,
		})
	}
}
