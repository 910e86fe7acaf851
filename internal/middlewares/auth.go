package middlewares

import (
	"context"
	"errors"
	"net/http"

	"github.com/sbilibin2017/booktrack/internal/jwt"
	"github.com/sbilibin2017/booktrack/internal/logger"
	"github.com/sbilibin2017/booktrack/internal/responses"
)

//go:generate mockgen -source=auth.go -destination=mock_auth.go -package=middlewares

// Tokener defines the minimal interface needed by the middleware
type Tokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetClaims(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

type userIDKey struct{}

// AuthMiddleware resolves the bearer token to a user id and stores it in the
// request context. Requests without a valid token never reach next.
func AuthMiddleware(tokener Tokener) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			tokenString, err := tokener.GetTokenFromRequest(ctx, r)
			if err != nil {
				logger.Log.Warnw("authorization failed", "err", err)
				writeAuthError(w, err)
				return
			}

			claims, err := tokener.GetClaims(ctx, tokenString)
			if err != nil {
				logger.Log.Warnw("authorization failed", "err", err)
				writeAuthError(w, err)
				return
			}

			ctx = context.WithValue(ctx, userIDKey{}, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext returns the authenticated user id stored by AuthMiddleware.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey{}).(int64)
	return userID, ok && userID > 0
}

func writeAuthError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, jwt.ErrNoToken):
		responses.Error(w, http.StatusUnauthorized, responses.CodeNoToken, "Authorization token is required")
	case errors.Is(err, jwt.ErrInvalidTokenFormat):
		responses.Error(w, http.StatusUnauthorized, responses.CodeInvalidFormat, `Authorization header must start with "Bearer "`)
	case errors.Is(err, jwt.ErrTokenExpired):
		responses.Error(w, http.StatusUnauthorized, responses.CodeTokenExpired, "Token has expired")
	default:
		responses.Error(w, http.StatusUnauthorized, responses.CodeInvalidToken, "Invalid or expired token")
	}
}
