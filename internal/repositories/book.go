package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"golang.org/x/sync/errgroup"

	"github.com/sbilibin2017/booktrack/internal/logger"
	"github.com/sbilibin2017/booktrack/internal/models"
)

const bookSelectColumns = `
	book_id, user_id, title, author, genre, publication_year,
	reading_status, rating, notes, created_at, updated_at
`

// BookWriteRepository handles single-row book mutations.
type BookWriteRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewBookWriteRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *BookWriteRepository {
	return &BookWriteRepository{db: db, txGetter: txGetter}
}

func (r *BookWriteRepository) executor(ctx context.Context) sqlx.ExtContext {
	return pickExecutor(ctx, r.db, r.txGetter)
}

// Save inserts a book owned by userID and returns the stored row.
func (r *BookWriteRepository) Save(ctx context.Context, userID int64, fields models.BookFields) (*models.BookDB, error) {
	const query = `
		INSERT INTO books (
			user_id, title, author, genre, publication_year,
			reading_status, rating, notes, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING ` + bookSelectColumns

	args := []any{
		userID, fields.Title, fields.Author, fields.Genre, fields.PublicationYear,
		fields.ReadingStatus, fields.Rating, fields.Notes,
	}

	var book models.BookDB
	err := sqlx.GetContext(ctx, r.executor(ctx), &book, query, args...)

	logger.Log.Infow("query",
		"sql", oneLine(query),
		"args", args,
		"result", book.BookID,
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	return &book, nil
}

// Update overwrites the editable fields of a book and refreshes updated_at.
// It returns nil when the book does not exist.
func (r *BookWriteRepository) Update(ctx context.Context, bookID int64, fields models.BookFields) (*models.BookDB, error) {
	const query = `
		UPDATE books
		SET
			title = $1,
			author = $2,
			genre = $3,
			publication_year = $4,
			reading_status = $5,
			rating = $6,
			notes = $7,
			updated_at = NOW()
		WHERE book_id = $8
		RETURNING ` + bookSelectColumns

	args := []any{
		fields.Title, fields.Author, fields.Genre, fields.PublicationYear,
		fields.ReadingStatus, fields.Rating, fields.Notes, bookID,
	}

	var book models.BookDB
	err := sqlx.GetContext(ctx, r.executor(ctx), &book, query, args...)

	logger.Log.Infow("query",
		"sql", oneLine(query),
		"args", args,
		"result", book.BookID,
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// Delete removes a book and reports whether a row was deleted.
func (r *BookWriteRepository) Delete(ctx context.Context, bookID int64) (bool, error) {
	const query = `
		DELETE FROM books
		WHERE book_id = $1
	`

	res, err := r.executor(ctx).ExecContext(ctx, query, bookID)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow("query",
		"sql", oneLine(query),
		"args", []any{bookID},
		"result", rowsAffected,
		"error", err,
	)

	if err != nil {
		return false, err
	}
	return rowsAffected > 0, nil
}

// BookReadRepository handles book reads: single rows, filtered pages and
// collection statistics.
type BookReadRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewBookReadRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *BookReadRepository {
	return &BookReadRepository{db: db, txGetter: txGetter}
}

// GetByID returns a book by id, or nil when none exists. Inside a request
// transaction the row is locked until the transaction ends.
func (r *BookReadRepository) GetByID(ctx context.Context, bookID int64) (*models.BookDB, error) {
	query := `
		SELECT ` + bookSelectColumns + `
		FROM books
		WHERE book_id = $1
	`

	var executor sqlx.ExtContext = r.db
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			executor = tx
			query += " FOR UPDATE"
		}
	}

	var book models.BookDB
	err := sqlx.GetContext(ctx, executor, &book, query, bookID)

	logger.Log.Infow("query",
		"sql", oneLine(query),
		"args", []any{bookID},
		"result", book.BookID,
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// List returns one page of the user's books matching filters. The row and
// count queries run concurrently on the pool, outside any transaction, so a
// concurrent write may make TotalBooks disagree with the page by a few rows.
func (r *BookReadRepository) List(ctx context.Context, userID int64, filters models.BookFilters) (*models.BookPage, error) {
	q := NormalizeFilters(filters)

	rowsStmt, countStmt, err := BuildListQueries(userID, q)
	if err != nil {
		logger.Log.Errorw("failed to build list queries", "userID", userID, "error", err)
		return nil, err
	}

	var (
		books []models.BookDB
		total int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := r.db.SelectContext(gctx, &books, rowsStmt.SQL, rowsStmt.Args...)
		logger.Log.Infow("query",
			"sql", rowsStmt.SQL,
			"args", rowsStmt.Args,
			"result", len(books),
			"error", err,
		)
		return err
	})
	g.Go(func() error {
		err := r.db.GetContext(gctx, &total, countStmt.SQL, countStmt.Args...)
		logger.Log.Infow("query",
			"sql", countStmt.SQL,
			"args", countStmt.Args,
			"result", total,
			"error", err,
		)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if books == nil {
		books = []models.BookDB{}
	}

	return &models.BookPage{
		Books:      books,
		Pagination: NewPagination(q.Page, q.Limit, total),
	}, nil
}

func pickExecutor(ctx context.Context, db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) sqlx.ExtContext {
	if txGetter != nil {
		if tx := txGetter(ctx); tx != nil {
			return tx
		}
	}
	return db
}
