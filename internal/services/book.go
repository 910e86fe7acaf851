package services

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/encoding/json"
	"github.com/segmentio/kafka-go"
	"golang.org/x/sync/errgroup"

	"github.com/sbilibin2017/booktrack/internal/logger"
	"github.com/sbilibin2017/booktrack/internal/models"
)

var (
	// ErrBookNotFound is returned when no book has the requested id.
	ErrBookNotFound = errors.New("book not found")
	// ErrForbidden is returned when the book belongs to another user.
	ErrForbidden = errors.New("access denied")
)

// BookReader defines read operations for books.
type BookReader interface {
	GetByID(ctx context.Context, bookID int64) (*models.BookDB, error)
	List(ctx context.Context, userID int64, filters models.BookFilters) (*models.BookPage, error)
	Statistics(ctx context.Context, userID int64) (*models.Statistics, error)
}

// BookWriter defines write operations for books.
type BookWriter interface {
	Save(ctx context.Context, userID int64, fields models.BookFields) (*models.BookDB, error)
	Update(ctx context.Context, bookID int64, fields models.BookFields) (*models.BookDB, error)
	Delete(ctx context.Context, bookID int64) (bool, error)
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// BookListResult is one page of books plus the status summary of the
// whole collection.
type BookListResult struct {
	Books      []models.BookDB          `json:"books"`
	Pagination models.Pagination        `json:"pagination"`
	Statistics models.StatisticsSummary `json:"statistics"`
}

// BookService handles book use cases and publishes mutation events.
type BookService struct {
	reader      BookReader
	writer      BookWriter
	kafkaWriter KafkaWriter
}

// NewBookService creates a new BookService. kafkaWriter may be nil.
func NewBookService(reader BookReader, writer BookWriter, kafkaWriter KafkaWriter) *BookService {
	return &BookService{
		reader:      reader,
		writer:      writer,
		kafkaWriter: kafkaWriter,
	}
}

// publishEvent publishes a book event to Kafka. Failures are logged only.
func (s *BookService) publishEvent(ctx context.Context, operation string, book *models.BookDB) {
	event := models.BookEvent{
		EventID:   uuid.NewString(),
		Timestamp: time.Now().Unix(),
		Operation: operation,
		UserID:    book.UserID,
		BookID:    book.BookID,
		Title:     book.Title,
	}

	if s.kafkaWriter == nil {
		logger.Log.Warnw("Kafka writer not configured, skipping publishing", "event_id", event.EventID, "operation", operation)
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("Failed to marshal book event for Kafka", "event_id", event.EventID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(book.BookID, 10)),
		Value: data,
	}

	if err := s.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("Failed to publish book event to Kafka", "event_id", event.EventID, "operation", operation, "error", err)
	} else {
		logger.Log.Infow("Book event published to Kafka", "event_id", event.EventID, "operation", operation, "bookID", book.BookID)
	}
}

// Create stores a new book for userID.
func (s *BookService) Create(ctx context.Context, userID int64, fields models.BookFields) (*models.BookDB, error) {
	book, err := s.writer.Save(ctx, userID, fields)
	if err != nil {
		logger.Log.Errorw("failed to save book", "userID", userID, "error", err)
		return nil, err
	}

	s.publishEvent(ctx, models.OperationBookCreated, book)
	return book, nil
}

// Get returns a book owned by userID.
func (s *BookService) Get(ctx context.Context, userID, bookID int64) (*models.BookDB, error) {
	book, err := s.reader.GetByID(ctx, bookID)
	if err != nil {
		logger.Log.Errorw("failed to get book", "userID", userID, "bookID", bookID, "error", err)
		return nil, err
	}
	if book == nil {
		return nil, ErrBookNotFound
	}
	if book.UserID != userID {
		logger.Log.Warnw("book access denied", "userID", userID, "bookID", bookID, "ownerID", book.UserID)
		return nil, ErrForbidden
	}
	return book, nil
}

// List returns a filtered page together with the collection's status summary.
func (s *BookService) List(ctx context.Context, userID int64, filters models.BookFilters) (*BookListResult, error) {
	var (
		page  *models.BookPage
		stats *models.Statistics
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		page, err = s.reader.List(gctx, userID, filters)
		return err
	})
	g.Go(func() error {
		var err error
		stats, err = s.reader.Statistics(gctx, userID)
		return err
	})

	if err := g.Wait(); err != nil {
		logger.Log.Errorw("failed to list books", "userID", userID, "error", err)
		return nil, err
	}

	return &BookListResult{
		Books:      page.Books,
		Pagination: page.Pagination,
		Statistics: stats.Summary(),
	}, nil
}

// Statistics returns the full collection summary for userID.
func (s *BookService) Statistics(ctx context.Context, userID int64) (*models.Statistics, error) {
	stats, err := s.reader.Statistics(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to compute statistics", "userID", userID, "error", err)
		return nil, err
	}
	return stats, nil
}

// Update overwrites a book owned by userID.
func (s *BookService) Update(ctx context.Context, userID, bookID int64, fields models.BookFields) (*models.BookDB, error) {
	if _, err := s.Get(ctx, userID, bookID); err != nil {
		return nil, err
	}

	book, err := s.writer.Update(ctx, bookID, fields)
	if err != nil {
		logger.Log.Errorw("failed to update book", "userID", userID, "bookID", bookID, "error", err)
		return nil, err
	}
	if book == nil {
		return nil, ErrBookNotFound
	}

	s.publishEvent(ctx, models.OperationBookUpdated, book)
	return book, nil
}

// Delete removes a book owned by userID.
func (s *BookService) Delete(ctx context.Context, userID, bookID int64) error {
	book, err := s.Get(ctx, userID, bookID)
	if err != nil {
		return err
	}

	deleted, err := s.writer.Delete(ctx, bookID)
	if err != nil {
		logger.Log.Errorw("failed to delete book", "userID", userID, "bookID", bookID, "error", err)
		return err
	}
	if !deleted {
		return ErrBookNotFound
	}

	s.publishEvent(ctx, models.OperationBookDeleted, book)
	return nil
}
