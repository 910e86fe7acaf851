package handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/booktrack/internal/models"
	"github.com/sbilibin2017/booktrack/internal/responses"
)

// StatisticsGetter computes a user's collection summary.
type StatisticsGetter interface {
	Statistics(ctx context.Context, userID int64) (*models.Statistics, error)
}

// NewStatisticsHandler returns an HTTP handler for the caller's collection statistics.
// @Summary Collection statistics
// @Description Totals by status, top genres, average rating and the most recent additions
// @Tags books
// @Produce json
// @Success 200 {object} responses.Envelope{data=models.Statistics} "Statistics"
// @Failure 401 {object} responses.Envelope "Unauthorized"
// @Failure 500 {object} responses.Envelope "Internal server error"
// @Router /books/statistics [get]
// @Security BearerAuth
func NewStatisticsHandler(svc StatisticsGetter, userIDGetter func(ctx context.Context) (int64, bool)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := userIDGetter(r.Context())
		if !ok {
			writeUnauthorized(w)
			return
		}

		stats, err := svc.Statistics(r.Context(), userID)
		if err != nil {
			writeInternalError(w, r, err)
			return
		}

		responses.Success(w, http.StatusOK, "", stats)
	}
}
