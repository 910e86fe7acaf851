package services

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/sbilibin2017/booktrack/internal/logger"
	"github.com/sbilibin2017/booktrack/internal/models"
	"github.com/sbilibin2017/booktrack/internal/repositories"
)

// Error variables
var (
	ErrUserAlreadyExists  = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByEmail(ctx context.Context, email string) (*models.UserDB, error)
	GetByID(ctx context.Context, userID int64) (*models.UserDB, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Save(ctx context.Context, email, passwordHash, fullName string) (*models.UserDB, error)
}

// JWTGenerator defines an interface for generating JWT tokens.
type JWTGenerator interface {
	Generate(ctx context.Context, userID int64) (string, error)
}

// AuthService handles registration, login and token verification.
type AuthService struct {
	reader UserReader
	writer UserWriter
	jwt    JWTGenerator
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(reader UserReader, writer UserWriter, jwt JWTGenerator) *AuthService {
	return &AuthService{
		reader: reader,
		writer: writer,
		jwt:    jwt,
	}
}

// Register creates a user and returns it with a fresh token.
func (svc *AuthService) Register(ctx context.Context, email, password, fullName string) (*models.UserDB, string, error) {
	existing, err := svc.reader.GetByEmail(ctx, email)
	if err != nil {
		logger.Log.Errorw("failed to check user exists", "email", email, "err", err)
		return nil, "", err
	}
	if existing != nil {
		logger.Log.Errorw("user already exists", "email", email)
		return nil, "", ErrUserAlreadyExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return nil, "", err
	}

	user, err := svc.writer.Save(ctx, email, string(hashedPassword), fullName)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			logger.Log.Errorw("user created concurrently", "email", email)
			return nil, "", ErrUserAlreadyExists
		}
		logger.Log.Errorw("failed to save user", "email", email, "err", err)
		return nil, "", err
	}

	token, err := svc.jwt.Generate(ctx, user.UserID)
	if err != nil {
		logger.Log.Errorw("failed to generate JWT", "userID", user.UserID, "err", err)
		return nil, "", err
	}

	return user, token, nil
}

// Login authenticates a user and returns it with a JWT token. An unknown
// email and a wrong password are indistinguishable to the caller.
func (svc *AuthService) Login(ctx context.Context, email, password string) (*models.UserDB, string, error) {
	user, err := svc.reader.GetByEmail(ctx, email)
	if err != nil {
		logger.Log.Errorw("failed to get user", "email", email, "err", err)
		return nil, "", err
	}
	if user == nil {
		logger.Log.Errorw("user does not exist", "email", email)
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.Log.Errorw("invalid credentials", "email", email)
		return nil, "", ErrInvalidCredentials
	}

	token, err := svc.jwt.Generate(ctx, user.UserID)
	if err != nil {
		logger.Log.Errorw("failed to generate JWT", "userID", user.UserID, "err", err)
		return nil, "", err
	}

	return user, token, nil
}

// GetUser returns the user behind a verified token.
func (svc *AuthService) GetUser(ctx context.Context, userID int64) (*models.UserDB, error) {
	user, err := svc.reader.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get user", "userID", userID, "err", err)
		return nil, err
	}
	if user == nil {
		logger.Log.Errorw("user does not exist", "userID", userID)
		return nil, ErrUserNotFound
	}
	return user, nil
}
