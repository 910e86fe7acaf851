package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/sbilibin2017/booktrack/internal/models"
	"github.com/sbilibin2017/booktrack/internal/responses"
	"github.com/sbilibin2017/booktrack/internal/services"
)

// Loginer defines the interface that the login service must implement.
type Loginer interface {
	Login(ctx context.Context, email, password string) (*models.UserDB, string, error)
}

// LoginRequest represents the JSON body for user login
// swagger:model LoginRequest
type LoginRequest struct {
	// Email
	// required: true
	// default: john@example.com
	Email string `json:"email" validate:"required,email"`

	// Password
	// required: true
	// default: Secret123
	Password string `json:"password" validate:"required"`
}

// NewLoginHandler returns an HTTP handler for user login.
// @Summary User login
// @Description Authenticate user and return JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param loginRequest body handlers.LoginRequest true "Login Request"
// @Success 200 {object} responses.Envelope{data=handlers.AuthData} "JWT token returned"
// @Failure 400 {object} responses.Envelope "Invalid input data"
// @Failure 401 {object} responses.Envelope "Invalid email or password"
// @Router /auth/login [post]
func NewLoginHandler(svc Loginer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if !decodeBody(w, r, &req) {
			return
		}
		req.Email = strings.ToLower(strings.TrimSpace(req.Email))
		if !validateBody(w, &req) {
			return
		}

		user, token, err := svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidCredentials):
				responses.Error(w, http.StatusUnauthorized, responses.CodeInvalidCreds, "Invalid email or password")
			default:
				writeInternalError(w, r, err)
			}
			return
		}

		responses.Success(w, http.StatusOK, "Login successful", newAuthData(user, token))
	}
}
