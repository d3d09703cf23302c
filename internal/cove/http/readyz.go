package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/cove/internal/cove/store"
	"github.com/aussiebroadwan/cove/pkg/covesdk"
	"github.com/aussiebroadwan/cove/pkg/httpx"
)

// ReadyzHandler is the readiness probe. It degrades to 503 when the database
// stops answering.
//
//	GET /readyz
func ReadyzHandler(
	startTime time.Time,
	version string,
	st store.Store,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &covesdk.HealthChecks{
			Database: "ok",
		}
		overallStatus := "ok"
		statusCode := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		response := covesdk.HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		}
		httpx.WriteJSON(w, statusCode, response)
	}
}
