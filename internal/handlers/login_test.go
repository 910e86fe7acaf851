package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/sbilibin2017/booktrack/internal/models"
	"github.com/sbilibin2017/booktrack/internal/services"
)

func TestLoginHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	user := &models.UserDB{UserID: 4, Email: "john@example.com", FullName: "John Doe"}

	tests := []struct {
		name         string
		body         string
		mockSetup    func(m *MockLoginer)
		expectedCode int
		expectedErr  string
	}{
		{
			name: "success",
			body: `{"email":"JOHN@example.com","password":"Secret123"}`,
			mockSetup: func(m *MockLoginer) {
				m.EXPECT().
					Login(gomock.Any(), "john@example.com", "Secret123").
					Return(user, "jwt-token", nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "invalid credentials",
			body: `{"email":"john@example.com","password":"wrong"}`,
			mockSetup: func(m *MockLoginer) {
				m.EXPECT().
					Login(gomock.Any(), "john@example.com", "wrong").
					Return(nil, "", services.ErrInvalidCredentials)
			},
			expectedCode: http.StatusUnauthorized,
			expectedErr:  "INVALID_CREDENTIALS",
		},
		{
			name: "internal error",
			body: `{"email":"john@example.com","password":"Secret123"}`,
			mockSetup: func(m *MockLoginer) {
				m.EXPECT().
					Login(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, "", errors.New("db down"))
			},
			expectedCode: http.StatusInternalServerError,
			expectedErr:  "INTERNAL_ERROR",
		},
		{
			name:         "missing password",
			body:         `{"email":"john@example.com"}`,
			expectedCode: http.StatusBadRequest,
			expectedErr:  "VALIDATION_ERROR",
		},
		{
			name:         "empty body",
			body:         "",
			expectedCode: http.StatusBadRequest,
			expectedErr:  "VALIDATION_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockLoginer(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(mockSvc)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString(tt.body))
			rr := httptest.NewRecorder()
			NewLoginHandler(mockSvc)(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			env := decodeEnvelope(t, rr)
			assert.Equal(t, tt.expectedErr, errorCode(env))

			if tt.expectedErr == "" {
				var data AuthData
				assert.NoError(t, json.Unmarshal(env.Data, &data))
				assert.Equal(t, "jwt-token", data.Token)
				assert.Equal(t, int64(4), data.UserID)
				assert.Equal(t, "Login successful", env.Message)
			}
		})
	}
}
