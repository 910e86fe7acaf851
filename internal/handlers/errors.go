package handlers

import (
	"errors"
	"net/http"

	"github.com/sbilibin2017/booktrack/internal/logger"
	"github.com/sbilibin2017/booktrack/internal/middlewares"
	"github.com/sbilibin2017/booktrack/internal/repositories"
	"github.com/sbilibin2017/booktrack/internal/responses"
	"github.com/sbilibin2017/booktrack/internal/services"
)

// writeInternalError logs and maps errors no handler recognizes. Postgres
// constraint violations keep their own codes, everything else is a 500.
func writeInternalError(w http.ResponseWriter, r *http.Request, err error) {
	logger.Log.Errorw("internal server error",
		"request_id", middlewares.RequestIDFromContext(r.Context()),
		"method", r.Method,
		"path", r.URL.Path,
		"error", err,
	)

	switch {
	case errors.Is(err, repositories.ErrDuplicate), repositories.IsUniqueViolation(err):
		responses.Error(w, http.StatusConflict, responses.CodeDuplicateEntry, "Resource already exists")
	case repositories.IsForeignKeyViolation(err):
		responses.Error(w, http.StatusBadRequest, responses.CodeForeignKey, "Referenced resource does not exist")
	default:
		responses.Error(w, http.StatusInternalServerError, responses.CodeInternal, "Internal server error")
	}
}

func writeUnauthorized(w http.ResponseWriter) {
	responses.Error(w, http.StatusUnauthorized, responses.CodeInvalidToken, "Invalid or expired token")
}

// writeBookError writes the response for a failed book operation. action
// completes the forbidden message, e.g. "update".
func writeBookError(w http.ResponseWriter, r *http.Request, err error, action string) {
	switch {
	case errors.Is(err, services.ErrBookNotFound):
		responses.Error(w, http.StatusNotFound, responses.CodeBookNotFound, "Book not found")
	case errors.Is(err, services.ErrForbidden):
		responses.Error(w, http.StatusForbidden, responses.CodeForbidden, "You do not have permission to "+action+" this book")
	default:
		writeInternalError(w, r, err)
	}
}
