package models

import "time"

// UserDB represents a user record in the database
type UserDB struct {
	UserID       int64     `json:"user_id" db:"user_id"`       // Primary key
	Email        string    `json:"email" db:"email"`           // Unique, normalized to lower case
	PasswordHash string    `json:"-" db:"password_hash"`       // bcrypt hash, never returned to clients
	FullName     string    `json:"full_name" db:"full_name"`   // Display name
	CreatedAt    time.Time `json:"created_at" db:"created_at"` // Creation timestamp
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"` // Last update timestamp
}
