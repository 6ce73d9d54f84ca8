package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/wolfeidau/gatehouse/internal/telemetry"
)

// PingResponse is the health check body.
type PingResponse struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Status    string    `json:"status"`
}

// PingHandler answers GET /api/v1/ping. now is injected for tests.
func PingHandler(now func() time.Time, metrics *telemetry.Metrics) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if metrics != nil {
			metrics.PingRequestsTotal.Add(r.Context(), 1)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)

		resp := PingResponse{Message: "pong", Timestamp: now().UTC(), Status: "ok"}
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			zerolog.Ctx(r.Context()).Error().Err(err).Msg("Failed to write ping response")
		}
	})
}
