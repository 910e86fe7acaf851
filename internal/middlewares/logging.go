package middlewares

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

const maxRequestIDLength = 64

type requestIDKey struct{}

// LoggingMiddleware tags every request with an id and writes one access log entry per request.
// A client supplied X-Request-ID is reused when it is short enough, otherwise a uuid is generated.
// Entries for 5xx responses are logged at error level and 4xx at warn level.
func LoggingMiddleware(log *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := r.Header.Get(RequestIDHeader)
			if reqID == "" || len(reqID) > maxRequestIDLength {
				reqID = uuid.New().String()
			}

			start := time.Now()
			rw := &responseWriter{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			r = r.WithContext(context.WithValue(r.Context(), requestIDKey{}, reqID))
			w.Header().Set(RequestIDHeader, reqID)

			next.ServeHTTP(rw, r)

			fields := []interface{}{
				"request_id", reqID,
				"method", r.Method,
				"path", r.URL.Path,
				"route", routePattern(r),
				"status", rw.statusCode,
				"bytes", rw.size,
				"duration", time.Since(start),
				"remote_addr", r.RemoteAddr,
			}

			switch {
			case rw.statusCode >= http.StatusInternalServerError:
				log.Errorw("http request", fields...)
			case rw.statusCode >= http.StatusBadRequest:
				log.Warnw("http request", fields...)
			default:
				log.Infow("http request", fields...)
			}
		})
	}
}

// RequestIDFromContext returns the request id assigned by LoggingMiddleware.
func RequestIDFromContext(ctx context.Context) string {
	reqID, _ := ctx.Value(requestIDKey{}).(string)
	return reqID
}

// routePattern is filled in by chi once routing has finished, so it is read after next.ServeHTTP.
func routePattern(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return ""
	}
	return rctx.RoutePattern()
}

type responseWriter struct {
	http.ResponseWriter
	statusCode  int
	size        int
	wroteHeader bool
}

func (rw *responseWriter) WriteHeader(code int) {
	if rw.wroteHeader {
		return
	}
	rw.statusCode = code
	rw.wroteHeader = true
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	rw.wroteHeader = true
	size, err := rw.ResponseWriter.Write(b)
	rw.size += size
	return size, err
}
