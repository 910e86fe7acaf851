package middlewares

import (
	"bytes"
	"context"
	"net/http"

	"github.com/jmoiron/sqlx"

	"github.com/sbilibin2017/booktrack/internal/logger"
	"github.com/sbilibin2017/booktrack/internal/responses"
)

// TxMiddleware wraps an HTTP handler with a database transaction.
// The response is buffered until the transaction outcome is known: a handler
// status of 400 or above rolls back, anything else commits, and a failed
// commit replaces the buffered response with a 500.
func TxMiddleware(db *sqlx.DB) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tx, err := db.BeginTxx(r.Context(), nil)
			if err != nil {
				logger.Log.Errorw("failed to begin transaction", "error", err)
				responses.Error(w, http.StatusInternalServerError, responses.CodeInternal, "Internal server error")
				return
			}

			defer func() {
				if rec := recover(); rec != nil {
					_ = tx.Rollback()
					panic(rec)
				}
			}()

			bw := &bufferedWriter{header: make(http.Header), statusCode: http.StatusOK}
			ctx := setTxToContext(r.Context(), tx)

			next.ServeHTTP(bw, r.WithContext(ctx))

			if bw.statusCode >= http.StatusBadRequest {
				if err := tx.Rollback(); err != nil {
					logger.Log.Errorw("failed to rollback transaction", "error", err)
				}
				bw.flush(w)
				return
			}

			if err := tx.Commit(); err != nil {
				logger.Log.Errorw("failed to commit transaction", "error", err)
				responses.Error(w, http.StatusInternalServerError, responses.CodeInternal, "Internal server error")
				return
			}
			bw.flush(w)
		})
	}
}

// bufferedWriter holds the downstream response until the transaction finishes.
type bufferedWriter struct {
	header      http.Header
	body        bytes.Buffer
	statusCode  int
	wroteHeader bool
}

func (bw *bufferedWriter) Header() http.Header {
	return bw.header
}

func (bw *bufferedWriter) WriteHeader(code int) {
	if bw.wroteHeader {
		return
	}
	bw.statusCode = code
	bw.wroteHeader = true
}

func (bw *bufferedWriter) Write(b []byte) (int, error) {
	bw.wroteHeader = true
	return bw.body.Write(b)
}

func (bw *bufferedWriter) flush(w http.ResponseWriter) {
	for key, values := range bw.header {
		w.Header()[key] = values
	}
	w.WriteHeader(bw.statusCode)
	_, _ = w.Write(bw.body.Bytes())
}

// contextKey is an unexported type for keys in context
type contextKey struct{}

var txKey = contextKey{}

// setTxToContext stores a transaction in the context
func setTxToContext(ctx context.Context, tx *sqlx.Tx) context.Context {
	return context.WithValue(ctx, txKey, tx)
}

// GetTxFromContext retrieves the transaction from the context. Returns nil if not present.
func GetTxFromContext(ctx context.Context) *sqlx.Tx {
	tx, _ := ctx.Value(txKey).(*sqlx.Tx)
	return tx
}
