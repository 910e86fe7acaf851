package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

type testEnvelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"details"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) testEnvelope {
	t.Helper()

	var env testEnvelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	return env
}

func errorCode(env testEnvelope) string {
	if env.Error == nil {
		return ""
	}
	return env.Error.Code
}

func fixedUser(userID int64) func(ctx context.Context) (int64, bool) {
	return func(ctx context.Context) (int64, bool) { return userID, userID > 0 }
}

func withBookID(r *http.Request, bookID string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(BookIDParam, bookID)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}
