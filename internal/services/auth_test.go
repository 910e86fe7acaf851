package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"github.com/sbilibin2017/booktrack/internal/models"
	"github.com/sbilibin2017/booktrack/internal/repositories"
	"github.com/sbilibin2017/booktrack/internal/services"
)

func TestAuthService_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockUserReader(ctrl)
	mockWriter := services.NewMockUserWriter(ctrl)
	mockJWT := services.NewMockJWTGenerator(ctrl)

	svc := services.NewAuthService(mockReader, mockWriter, mockJWT)

	tests := []struct {
		name         string
		email        string
		existingUser *models.UserDB
		readerErr    error
		writerErr    error
		jwtErr       error
		wantErr      error
	}{
		{
			name:  "successful registration",
			email: "alice@example.com",
		},
		{
			name:         "user already exists",
			email:        "bob@example.com",
			existingUser: &models.UserDB{UserID: 2},
			wantErr:      services.ErrUserAlreadyExists,
		},
		{
			name:      "reader error",
			email:     "eve@example.com",
			readerErr: errors.New("db error"),
			wantErr:   errors.New("db error"),
		},
		{
			name:      "concurrent duplicate",
			email:     "race@example.com",
			writerErr: repositories.ErrDuplicate,
			wantErr:   services.ErrUserAlreadyExists,
		},
		{
			name:      "writer error",
			email:     "carol@example.com",
			writerErr: errors.New("save error"),
			wantErr:   errors.New("save error"),
		},
		{
			name:    "jwt error",
			email:   "dan@example.com",
			jwtErr:  errors.New("jwt error"),
			wantErr: errors.New("jwt error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockReader.EXPECT().
				GetByEmail(gomock.Any(), tt.email).
				Return(tt.existingUser, tt.readerErr)

			saved := &models.UserDB{UserID: 7, Email: tt.email, FullName: "Test User"}
			if tt.existingUser == nil && tt.readerErr == nil {
				mockWriter.EXPECT().
					Save(gomock.Any(), tt.email, gomock.Any(), "Test User").
					DoAndReturn(func(_ context.Context, _, hash, _ string) (*models.UserDB, error) {
						assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("Passw0rd!")))
						if tt.writerErr != nil {
							return nil, tt.writerErr
						}
						return saved, nil
					})
				if tt.writerErr == nil {
					mockJWT.EXPECT().Generate(gomock.Any(), int64(7)).Return("token123", tt.jwtErr)
				}
			}

			user, token, err := svc.Register(context.Background(), tt.email, "Passw0rd!", "Test User")
			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
				assert.Nil(t, user)
				assert.Empty(t, token)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, saved, user)
				assert.Equal(t, "token123", token)
			}
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockUserReader(ctrl)
	mockWriter := services.NewMockUserWriter(ctrl)
	mockJWT := services.NewMockJWTGenerator(ctrl)

	svc := services.NewAuthService(mockReader, mockWriter, mockJWT)

	password := "Secret123"
	hashed, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	tests := []struct {
		name      string
		email     string
		user      *models.UserDB
		readerErr error
		jwtErr    error
		wantErr   error
		expectJWT string
		loginPass string
	}{
		{
			name:      "successful login",
			email:     "alice@example.com",
			user:      &models.UserDB{UserID: 1, Email: "alice@example.com", PasswordHash: string(hashed)},
			expectJWT: "token123",
			loginPass: password,
		},
		{
			name:      "user does not exist",
			email:     "bob@example.com",
			wantErr:   services.ErrInvalidCredentials,
			loginPass: password,
		},
		{
			name:      "invalid password",
			email:     "carol@example.com",
			user:      &models.UserDB{UserID: 3, Email: "carol@example.com", PasswordHash: string(hashed)},
			wantErr:   services.ErrInvalidCredentials,
			loginPass: "wrongpass",
		},
		{
			name:      "reader error",
			email:     "eve@example.com",
			readerErr: errors.New("db error"),
			wantErr:   errors.New("db error"),
			loginPass: password,
		},
		{
			name:      "JWT generation error",
			email:     "dan@example.com",
			user:      &models.UserDB{UserID: 4, Email: "dan@example.com", PasswordHash: string(hashed)},
			jwtErr:    errors.New("jwt error"),
			wantErr:   errors.New("jwt error"),
			loginPass: password,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockReader.EXPECT().
				GetByEmail(gomock.Any(), tt.email).
				Return(tt.user, tt.readerErr)

			if tt.user != nil && tt.readerErr == nil && tt.loginPass == password {
				mockJWT.EXPECT().
					Generate(gomock.Any(), tt.user.UserID).
					Return(tt.expectJWT, tt.jwtErr)
			}

			user, token, err := svc.Login(context.Background(), tt.email, tt.loginPass)
			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
				assert.Nil(t, user)
				assert.Empty(t, token)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.user, user)
				assert.Equal(t, tt.expectJWT, token)
			}
		})
	}
}

func TestAuthService_GetUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockUserReader(ctrl)
	svc := services.NewAuthService(mockReader, services.NewMockUserWriter(ctrl), services.NewMockJWTGenerator(ctrl))

	user := &models.UserDB{UserID: 5, Email: "a@example.com"}
	dbErr := errors.New("db error")

	mockReader.EXPECT().GetByID(gomock.Any(), int64(5)).Return(user, nil)
	mockReader.EXPECT().GetByID(gomock.Any(), int64(6)).Return(nil, nil)
	mockReader.EXPECT().GetByID(gomock.Any(), int64(7)).Return(nil, dbErr)

	got, err := svc.GetUser(context.Background(), 5)
	assert.NoError(t, err)
	assert.Equal(t, user, got)

	_, err = svc.GetUser(context.Background(), 6)
	assert.ErrorIs(t, err, services.ErrUserNotFound)

	_, err = svc.GetUser(context.Background(), 7)
	assert.ErrorIs(t, err, dbErr)
}
