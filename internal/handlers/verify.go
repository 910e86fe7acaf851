package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/sbilibin2017/booktrack/internal/models"
	"github.com/sbilibin2017/booktrack/internal/responses"
	"github.com/sbilibin2017/booktrack/internal/services"
)

// UserGetter loads the user behind a verified token.
type UserGetter interface {
	GetUser(ctx context.Context, userID int64) (*models.UserDB, error)
}

// NewVerifyHandler returns an HTTP handler that reports who the bearer token belongs to.
// @Summary Verify token
// @Description Returns the user the bearer token was issued to
// @Tags auth
// @Produce json
// @Success 200 {object} responses.Envelope{data=handlers.AuthData} "Token owner"
// @Failure 401 {object} responses.Envelope "Unauthorized"
// @Failure 404 {object} responses.Envelope "User not found"
// @Router /auth/verify [get]
// @Security BearerAuth
func NewVerifyHandler(svc UserGetter, userIDGetter func(ctx context.Context) (int64, bool)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := userIDGetter(r.Context())
		if !ok {
			writeUnauthorized(w)
			return
		}

		user, err := svc.GetUser(r.Context(), userID)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUserNotFound):
				responses.Error(w, http.StatusNotFound, responses.CodeUserNotFound, "User not found")
			default:
				writeInternalError(w, r, err)
			}
			return
		}

		responses.Success(w, http.StatusOK, "", newAuthData(user, ""))
	}
}
