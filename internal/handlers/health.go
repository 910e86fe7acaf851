package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/segmentio/encoding/json"

	"github.com/sbilibin2017/booktrack/internal/logger"
	"github.com/sbilibin2017/booktrack/internal/responses"
)

// HealthResponse is the liveness payload.
// swagger:model HealthResponse
type HealthResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// NewHealthHandler returns a liveness handler. It does not touch the database.
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} handlers.HealthResponse
// @Router /health [get]
func NewHealthHandler(now func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(HealthResponse{
			Success:   true,
			Message:   "BookTrack API is running",
			Timestamp: now().UTC().Format(time.RFC3339Nano),
		}); err != nil {
			logger.Log.Errorw("failed to encode response", "error", err)
		}
	}
}

// NewNotFoundHandler answers unknown routes with a NOT_FOUND envelope.
func NewNotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.Error(w, http.StatusNotFound, responses.CodeNotFound,
			fmt.Sprintf("Route %s %s not found", r.Method, r.URL.Path))
	}
}
