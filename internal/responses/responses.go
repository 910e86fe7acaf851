// Package responses writes the JSON envelope shared by every endpoint:
//
//	{"success": bool, "message": "...", "data": ..., "error": {"code", "message", "details"}}
package responses

import (
	"net/http"

	"github.com/segmentio/encoding/json"

	"github.com/sbilibin2017/booktrack/internal/logger"
)

// Error codes returned in the envelope.
const (
	CodeValidation        = "VALIDATION_ERROR"
	CodeInvalidID         = "INVALID_ID"
	CodeEmailExists       = "EMAIL_EXISTS"
	CodeInvalidCreds      = "INVALID_CREDENTIALS"
	CodeUserNotFound      = "USER_NOT_FOUND"
	CodeBookNotFound      = "BOOK_NOT_FOUND"
	CodeForbidden         = "FORBIDDEN"
	CodeDuplicateEntry    = "DUPLICATE_ENTRY"
	CodeForeignKey        = "FOREIGN_KEY_VIOLATION"
	CodeInternal          = "INTERNAL_ERROR"
	CodeNoToken           = "NO_TOKEN"
	CodeInvalidFormat     = "INVALID_TOKEN_FORMAT"
	CodeTokenExpired      = "TOKEN_EXPIRED"
	CodeInvalidToken      = "INVALID_TOKEN"
	CodeRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
	CodeNotFound          = "NOT_FOUND"
)

// FieldError describes one invalid request field.
// swagger:model FieldError
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorBody is the error part of the envelope.
// swagger:model ErrorBody
type ErrorBody struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Details []FieldError `json:"details,omitempty"`
}

// Envelope is the top-level response wrapper.
// swagger:model Envelope
type Envelope struct {
	Success bool       `json:"success"`
	Message string     `json:"message,omitempty"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorBody `json:"error,omitempty"`
}

// WriteJSON writes env with the given status code.
func WriteJSON(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		logger.Log.Errorw("failed to encode response", "error", err)
	}
}

// Success writes a successful envelope carrying data and an optional message.
func Success(w http.ResponseWriter, status int, message string, data any) {
	WriteJSON(w, status, Envelope{Success: true, Message: message, Data: data})
}

// Error writes a failed envelope.
func Error(w http.ResponseWriter, status int, code, message string, details ...FieldError) {
	WriteJSON(w, status, Envelope{
		Success: false,
		Error: &ErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}
