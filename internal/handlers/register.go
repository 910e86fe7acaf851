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

// Registerer defines the interface that the service must implement.
type Registerer interface {
	Register(ctx context.Context, email, password, fullName string) (*models.UserDB, string, error)
}

// RegisterRequest represents the JSON body for user registration
// swagger:model RegisterRequest
type RegisterRequest struct {
	// Email, stored trimmed and lower-cased
	// required: true
	// default: john@example.com
	Email string `json:"email" validate:"required,email,max=255"`

	// Password, at least 8 characters with upper, lower case and a digit
	// required: true
	// default: Secret123
	Password string `json:"password" validate:"required,min=8,password"`

	// Full name, letters and spaces only
	// required: true
	// default: John Doe
	FullName string `json:"fullName" validate:"required,min=2,max=50,fullname"`
}

func (req *RegisterRequest) normalize() {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.FullName = strings.TrimSpace(req.FullName)
}

// AuthData is returned by register, login and verify.
// swagger:model AuthData
type AuthData struct {
	UserID   int64  `json:"userId"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Token    string `json:"token,omitempty"`
}

func newAuthData(user *models.UserDB, token string) AuthData {
	return AuthData{
		UserID:   user.UserID,
		Email:    user.Email,
		FullName: user.FullName,
		Token:    token,
	}
}

// NewRegisterHandler returns an HTTP handler for user registration.
// @Summary Register a new user
// @Description Creates a new user account with a unique email. Password is hashed before storing.
// @Tags auth
// @Accept json
// @Produce json
// @Param registerRequest body handlers.RegisterRequest true "User registration request"
// @Success 201 {object} responses.Envelope{data=handlers.AuthData} "User successfully registered"
// @Failure 400 {object} responses.Envelope "Invalid input data"
// @Failure 409 {object} responses.Envelope "Email already exists"
// @Router /auth/register [post]
func NewRegisterHandler(svc Registerer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if !decodeBody(w, r, &req) {
			return
		}
		req.normalize()
		if !validateBody(w, &req) {
			return
		}

		user, token, err := svc.Register(r.Context(), req.Email, req.Password, req.FullName)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUserAlreadyExists):
				responses.Error(w, http.StatusConflict, responses.CodeEmailExists, "Email already exists")
			default:
				writeInternalError(w, r, err)
			}
			return
		}

		responses.Success(w, http.StatusCreated, "User registered successfully", newAuthData(user, token))
	}
}
