package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/sbilibin2017/booktrack/internal/logger"
	"github.com/sbilibin2017/booktrack/internal/models"
)

type UserReadRepository struct {
	db *sqlx.DB
}

func NewUserReadRepository(db *sqlx.DB) *UserReadRepository {
	return &UserReadRepository{db: db}
}

// GetByEmail returns the user with the given email, or nil when none exists.
func (r *UserReadRepository) GetByEmail(ctx context.Context, email string) (*models.UserDB, error) {
	const query = `
		SELECT user_id, email, password_hash, full_name, created_at, updated_at
		FROM users
		WHERE email = $1
	`
	return r.getOne(ctx, query, email)
}

// GetByID returns the user with the given id, or nil when none exists.
func (r *UserReadRepository) GetByID(ctx context.Context, userID int64) (*models.UserDB, error) {
	const query = `
		SELECT user_id, email, password_hash, full_name, created_at, updated_at
		FROM users
		WHERE user_id = $1
	`
	return r.getOne(ctx, query, userID)
}

func (r *UserReadRepository) getOne(ctx context.Context, query string, arg any) (*models.UserDB, error) {
	var user models.UserDB
	err := r.db.GetContext(ctx, &user, query, arg)

	logger.Log.Infow("query",
		"sql", oneLine(query),
		"args", []any{arg},
		"result", user.UserID,
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

type UserWriteRepository struct {
	db *sqlx.DB
}

func NewUserWriteRepository(db *sqlx.DB) *UserWriteRepository {
	return &UserWriteRepository{db: db}
}

// Save inserts a new user. A taken email yields ErrDuplicate.
func (r *UserWriteRepository) Save(ctx context.Context, email, passwordHash, fullName string) (*models.UserDB, error) {
	const query = `
		INSERT INTO users (email, password_hash, full_name, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING user_id, email, password_hash, full_name, created_at, updated_at
	`

	var user models.UserDB
	err := r.db.GetContext(ctx, &user, query, email, passwordHash, fullName)

	logger.Log.Infow("query",
		"sql", oneLine(query),
		"args", []any{email, "***", fullName},
		"result", user.UserID,
		"error", err,
	)

	if err != nil {
		if IsUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return &user, nil
}
