package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbilibin2017/booktrack/internal/models"
)

var bookRowColumns = []string{
	"book_id", "user_id", "title", "author", "genre", "publication_year",
	"reading_status", "rating", "notes", "created_at", "updated_at",
}

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	mock.MatchExpectationsInOrder(false)
	t.Cleanup(func() { db.Close() })

	return sqlx.NewDb(db, "sqlmock"), mock
}

func TestBookReadRepository_List_SQLMock(t *testing.T) {
	now := time.Now()

	t.Run("rows and count", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewBookReadRepository(db, nil)

		mock.ExpectQuery(`SELECT COUNT\(\*\) AS "total" FROM "books"`).
			WithArgs(int64(3), "finished").
			WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(21))
		mock.ExpectQuery(`SELECT "book_id".* FROM "books"`).
			WillReturnRows(sqlmock.NewRows(bookRowColumns).
				AddRow(1, 3, "Dune", "Herbert", nil, nil, "finished", 5, nil, now, now))

		page, err := repo.List(context.Background(), 3, models.BookFilters{Status: "finished", Limit: "10"})
		require.NoError(t, err)
		require.Len(t, page.Books, 1)
		assert.Equal(t, "Dune", page.Books[0].Title)
		assert.Equal(t, models.Pagination{CurrentPage: 1, TotalPages: 3, TotalBooks: 21, BooksPerPage: 10}, page.Pagination)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty page is not nil", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewBookReadRepository(db, nil)

		mock.ExpectQuery(`COUNT\(\*\)`).WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(0))
		mock.ExpectQuery(`SELECT "book_id"`).WillReturnRows(sqlmock.NewRows(bookRowColumns))

		page, err := repo.List(context.Background(), 3, models.BookFilters{})
		require.NoError(t, err)
		assert.NotNil(t, page.Books)
		assert.Empty(t, page.Books)
		assert.Equal(t, 0, page.Pagination.TotalPages)
	})

	t.Run("count failure fails the call", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewBookReadRepository(db, nil)
		dbErr := errors.New("count failed")

		mock.ExpectQuery(`COUNT\(\*\)`).WillReturnError(dbErr)
		mock.ExpectQuery(`SELECT "book_id"`).WillReturnRows(sqlmock.NewRows(bookRowColumns))

		page, err := repo.List(context.Background(), 3, models.BookFilters{})
		assert.ErrorIs(t, err, dbErr)
		assert.Nil(t, page)
	})

	t.Run("rows failure fails the call", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewBookReadRepository(db, nil)
		dbErr := errors.New("rows failed")

		mock.ExpectQuery(`COUNT\(\*\)`).WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(4))
		mock.ExpectQuery(`SELECT "book_id"`).WillReturnError(dbErr)

		page, err := repo.List(context.Background(), 3, models.BookFilters{})
		assert.ErrorIs(t, err, dbErr)
		assert.Nil(t, page)
	})
}

func expectStatistics(mock sqlmock.Sqlmock, failing string, failErr error) {
	queries := map[string]func() *sqlmock.ExpectedQuery{
		"status": func() *sqlmock.ExpectedQuery { return mock.ExpectQuery(`AS total_books`) },
		"genre":  func() *sqlmock.ExpectedQuery { return mock.ExpectQuery(`GROUP BY genre`) },
		"rating": func() *sqlmock.ExpectedQuery { return mock.ExpectQuery(`AS average_rating`) },
		"recent": func() *sqlmock.ExpectedQuery { return mock.ExpectQuery(`LIMIT 5`) },
	}
	results := map[string]*sqlmock.Rows{
		"status": sqlmock.NewRows([]string{"total_books", "want_to_read", "currently_reading", "finished"}).AddRow(6, 1, 2, 3),
		"genre":  sqlmock.NewRows([]string{"genre", "count"}).AddRow("Fantasy", 4).AddRow("Sci-Fi", 1),
		"rating": sqlmock.NewRows([]string{"average_rating", "rated_books"}).AddRow(4.5, 2),
		"recent": sqlmock.NewRows([]string{"book_id", "title", "author", "created_at"}).AddRow(9, "Dune", "Herbert", time.Now()),
	}

	for name, expect := range queries {
		e := expect().WithArgs(int64(11))
		if name == failing {
			e.WillReturnError(failErr)
			continue
		}
		e.WillReturnRows(results[name])
	}
}

func TestBookReadRepository_Statistics_SQLMock(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewBookReadRepository(db, nil)
		expectStatistics(mock, "", nil)

		stats, err := repo.Statistics(context.Background(), 11)
		require.NoError(t, err)

		assert.Equal(t, 6, stats.TotalBooks)
		assert.Equal(t, models.StatusCounts{WantToRead: 1, CurrentlyReading: 2, Finished: 3}, stats.ByStatus)
		assert.Equal(t, models.GenreCounts{{Genre: "Fantasy", Count: 4}, {Genre: "Sci-Fi", Count: 1}}, stats.ByGenre)
		require.NotNil(t, stats.AverageRating)
		assert.InDelta(t, 4.5, *stats.AverageRating, 0.001)
		assert.Equal(t, 2, stats.RatedBooks)
		require.Len(t, stats.RecentlyAdded, 1)
		assert.Equal(t, int64(9), stats.RecentlyAdded[0].BookID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	for _, failing := range []string{"status", "genre", "rating", "recent"} {
		t.Run(failing+" failure fails the call", func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := NewBookReadRepository(db, nil)
			dbErr := errors.New(failing + " failed")
			expectStatistics(mock, failing, dbErr)

			stats, err := repo.Statistics(context.Background(), 11)
			assert.ErrorIs(t, err, dbErr)
			assert.Nil(t, stats)
		})
	}

	t.Run("null average", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewBookReadRepository(db, nil)

		mock.ExpectQuery(`AS total_books`).WillReturnRows(
			sqlmock.NewRows([]string{"total_books", "want_to_read", "currently_reading", "finished"}).AddRow(0, 0, 0, 0))
		mock.ExpectQuery(`GROUP BY genre`).WillReturnRows(sqlmock.NewRows([]string{"genre", "count"}))
		mock.ExpectQuery(`AS average_rating`).WillReturnRows(
			sqlmock.NewRows([]string{"average_rating", "rated_books"}).AddRow(nil, 0))
		mock.ExpectQuery(`LIMIT 5`).WillReturnRows(sqlmock.NewRows([]string{"book_id", "title", "author", "created_at"}))

		stats, err := repo.Statistics(context.Background(), 11)
		require.NoError(t, err)
		assert.Nil(t, stats.AverageRating)
		assert.Zero(t, stats.RatedBooks)
		assert.Empty(t, stats.ByGenre)
		assert.NotNil(t, stats.RecentlyAdded)
	})
}

func TestBookWriteRepository_SQLMock(t *testing.T) {
	now := time.Now()
	title := "Dune"
	fields := models.BookFields{Title: title, Author: "Herbert", ReadingStatus: models.StatusWantToRead}

	t.Run("save", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewBookWriteRepository(db, nil)

		mock.ExpectQuery(`INSERT INTO books`).
			WithArgs(int64(2), "Dune", "Herbert", nil, nil, "want_to_read", nil, nil).
			WillReturnRows(sqlmock.NewRows(bookRowColumns).
				AddRow(5, 2, "Dune", "Herbert", nil, nil, "want_to_read", nil, nil, now, now))

		book, err := repo.Save(context.Background(), 2, fields)
		require.NoError(t, err)
		assert.Equal(t, int64(5), book.BookID)
		assert.Nil(t, book.Genre)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("update missing row", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewBookWriteRepository(db, nil)

		mock.ExpectQuery(`UPDATE books`).WillReturnRows(sqlmock.NewRows(bookRowColumns))

		book, err := repo.Update(context.Background(), 5, fields)
		assert.NoError(t, err)
		assert.Nil(t, book)
	})

	t.Run("delete", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewBookWriteRepository(db, nil)

		mock.ExpectExec(`DELETE FROM books`).WithArgs(int64(5)).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`DELETE FROM books`).WithArgs(int64(6)).WillReturnResult(sqlmock.NewResult(0, 0))

		deleted, err := repo.Delete(context.Background(), 5)
		assert.NoError(t, err)
		assert.True(t, deleted)

		deleted, err = repo.Delete(context.Background(), 6)
		assert.NoError(t, err)
		assert.False(t, deleted)
	})

	t.Run("uses transaction from context", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.MatchExpectationsInOrder(true)

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM books`).WithArgs(int64(5)).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		tx, err := db.Beginx()
		require.NoError(t, err)

		repo := NewBookWriteRepository(db, func(ctx context.Context) *sqlx.Tx { return tx })
		deleted, err := repo.Delete(context.Background(), 5)
		require.NoError(t, err)
		assert.True(t, deleted)
		require.NoError(t, tx.Commit())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("get by id locks inside transaction", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.MatchExpectationsInOrder(true)

		mock.ExpectBegin()
		mock.ExpectQuery(`WHERE book_id = \$1\s+FOR UPDATE`).WithArgs(int64(5)).
			WillReturnRows(sqlmock.NewRows(bookRowColumns).
				AddRow(5, 2, "Dune", "Herbert", nil, nil, "want_to_read", nil, nil, now, now))
		mock.ExpectRollback()

		tx, err := db.Beginx()
		require.NoError(t, err)

		repo := NewBookReadRepository(db, func(ctx context.Context) *sqlx.Tx { return tx })
		book, err := repo.GetByID(context.Background(), 5)
		require.NoError(t, err)
		require.NotNil(t, book)
		assert.Equal(t, int64(2), book.UserID)
		require.NoError(t, tx.Rollback())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
