package models

import "time"

// Reading statuses a book can be in.
const (
	StatusWantToRead       = "want_to_read"
	StatusCurrentlyReading = "currently_reading"
	StatusFinished         = "finished"
)

// ReadingStatuses lists every accepted reading status.
var ReadingStatuses = []string{StatusWantToRead, StatusCurrentlyReading, StatusFinished}

// BookDB represents a book row in the database
type BookDB struct {
	BookID          int64     `json:"book_id" db:"book_id"`                   // Primary key
	UserID          int64     `json:"user_id" db:"user_id"`                   // Owner of the book, never reassigned
	Title           string    `json:"title" db:"title"`                       // Book title
	Author          string    `json:"author" db:"author"`                     // Book author
	Genre           *string   `json:"genre" db:"genre"`                       // Free-form genre, optional
	PublicationYear *int      `json:"publication_year" db:"publication_year"` // Optional publication year
	ReadingStatus   string    `json:"reading_status" db:"reading_status"`     // One of ReadingStatuses
	Rating          *int      `json:"rating" db:"rating"`                     // Optional rating 1-5
	Notes           *string   `json:"notes" db:"notes"`                       // Optional free text
	CreatedAt       time.Time `json:"created_at" db:"created_at"`             // Creation timestamp
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`             // Last update timestamp
}

// BookFields holds the user-editable attributes of a book.
type BookFields struct {
	Title           string
	Author          string
	Genre           *string
	PublicationYear *int
	ReadingStatus   string
	Rating          *int
	Notes           *string
}
