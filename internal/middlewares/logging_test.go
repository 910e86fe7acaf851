package middlewares

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggingMiddleware(t *testing.T) {
	tests := []struct {
		name          string
		handlerStatus int
		handlerBody   string
		incomingID    string
		reuseID       bool
		expectedLevel zapcore.Level
	}{
		{
			name:          "ok response generates id",
			handlerStatus: http.StatusOK,
			handlerBody:   "hello",
			expectedLevel: zapcore.InfoLevel,
		},
		{
			name:          "client id is reused",
			handlerStatus: http.StatusCreated,
			handlerBody:   "created",
			incomingID:    "abc-123",
			reuseID:       true,
			expectedLevel: zapcore.InfoLevel,
		},
		{
			name:          "oversized client id is replaced",
			handlerStatus: http.StatusOK,
			incomingID:    strings.Repeat("x", maxRequestIDLength+1),
			expectedLevel: zapcore.InfoLevel,
		},
		{
			name:          "client error logs warn",
			handlerStatus: http.StatusNotFound,
			handlerBody:   "missing",
			expectedLevel: zapcore.WarnLevel,
		},
		{
			name:          "server error logs error",
			handlerStatus: http.StatusInternalServerError,
			handlerBody:   "error",
			expectedLevel: zapcore.ErrorLevel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)

			var ctxReqID string
			router := chi.NewRouter()
			router.Use(LoggingMiddleware(zap.New(core).Sugar()))
			router.Get("/api/books/{bookID}", func(w http.ResponseWriter, r *http.Request) {
				ctxReqID = RequestIDFromContext(r.Context())
				w.WriteHeader(tt.handlerStatus)
				_, _ = w.Write([]byte(tt.handlerBody))
			})

			req := httptest.NewRequest(http.MethodGet, "/api/books/7", nil)
			if tt.incomingID != "" {
				req.Header.Set(RequestIDHeader, tt.incomingID)
			}
			rr := httptest.NewRecorder()

			router.ServeHTTP(rr, req)

			assert.Equal(t, tt.handlerStatus, rr.Code)
			assert.Equal(t, tt.handlerBody, rr.Body.String())

			reqID := rr.Header().Get(RequestIDHeader)
			assert.NotEmpty(t, reqID)
			assert.Equal(t, reqID, ctxReqID)
			if tt.reuseID {
				assert.Equal(t, tt.incomingID, reqID)
			} else {
				assert.NotEqual(t, tt.incomingID, reqID)
			}

			entries := logs.All()
			require.Len(t, entries, 1)
			assert.Equal(t, tt.expectedLevel, entries[0].Level)

			fields := entries[0].ContextMap()
			assert.Equal(t, reqID, fields["request_id"])
			assert.Equal(t, "/api/books/{bookID}", fields["route"])
			assert.Equal(t, "/api/books/7", fields["path"])
			assert.EqualValues(t, tt.handlerStatus, fields["status"])
			assert.EqualValues(t, len(tt.handlerBody), fields["bytes"])
		})
	}
}

func TestResponseWriter_KeepsFirstStatus(t *testing.T) {
	rr := httptest.NewRecorder()
	rw := &responseWriter{ResponseWriter: rr, statusCode: http.StatusOK}

	_, err := rw.Write([]byte("body"))
	require.NoError(t, err)
	rw.WriteHeader(http.StatusInternalServerError)

	assert.Equal(t, http.StatusOK, rw.statusCode)
	assert.Equal(t, 4, rw.size)
}
