package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/cove/pkg/covesdk"
	"github.com/aussiebroadwan/cove/pkg/httpx"
)

// LivezHandler is the liveness probe. It returns 200 whenever the process is
// up, regardless of dependency health.
//
//	GET /livez
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := covesdk.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		}
		httpx.WriteJSON(w, http.StatusOK, response)
	}
}
