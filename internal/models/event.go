package models

// Book event operations.
const (
	OperationBookCreated = "book.created"
	OperationBookUpdated = "book.updated"
	OperationBookDeleted = "book.deleted"
)

// BookEvent is published after every successful book mutation.
type BookEvent struct {
	EventID   string `json:"event_id"`  // EventID is a unique identifier for the event.
	Timestamp int64  `json:"timestamp"` // Timestamp is the Unix time (seconds) of the mutation.
	Operation string `json:"operation"` // Operation is one of the OperationBook* constants.
	UserID    int64  `json:"user_id"`   // UserID is the owner of the book.
	BookID    int64  `json:"book_id"`   // BookID identifies the mutated book.
	Title     string `json:"title,omitempty"`
}
