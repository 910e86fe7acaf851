package jwt

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Errors returned while extracting or parsing tokens.
var (
	ErrNoToken            = errors.New("authorization token is required")
	ErrInvalidTokenFormat = errors.New(`authorization header must start with "Bearer "`)
	ErrTokenExpired       = errors.New("token has expired")
	ErrInvalidToken       = errors.New("invalid token")
)

const (
	defaultSecretKey  = "my_super_secret_key"
	defaultExpiration = 24 * time.Hour
)

// Claims are the custom claims carried by BookTrack tokens.
type Claims struct {
	UserID int64 `json:"user_id"`
	jwt.RegisteredClaims
}

// JWT provides methods to generate and validate JWT tokens.
type JWT struct {
	SecretKey string        // Secret key for signing tokens
	Exp       time.Duration // Token expiration duration
}

// Option configures a JWT instance.
type Option func(*JWT)

// WithSecretKey sets the HMAC signing key.
func WithSecretKey(key string) Option {
	return func(j *JWT) {
		j.SecretKey = key
	}
}

// WithExpiration sets how long issued tokens stay valid.
func WithExpiration(exp time.Duration) Option {
	return func(j *JWT) {
		j.Exp = exp
	}
}

// New creates a new JWT instance
func New(opts ...Option) *JWT {
	j := &JWT{
		SecretKey: defaultSecretKey,
		Exp:       defaultExpiration,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Generate creates a signed token for the given user id
func (j *JWT) Generate(ctx context.Context, userID int64) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.Exp)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.SecretKey))
}

// GetClaims parses and verifies the token string and returns its claims
func (j *JWT) GetClaims(ctx context.Context, tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(j.SecretKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid || claims.UserID <= 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// GetTokenFromRequest extracts the token string from the Authorization header
func (j *JWT) GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", ErrNoToken
	}

	parts := strings.Fields(authHeader)
	if len(parts) == 0 || strings.ToLower(parts[0]) != "bearer" {
		return "", ErrInvalidTokenFormat
	}
	if len(parts) == 1 {
		return "", ErrNoToken
	}
	if len(parts) != 2 {
		return "", ErrInvalidTokenFormat
	}

	return parts[1], nil
}
