package repositories

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/sbilibin2017/booktrack/internal/logger"
	"github.com/sbilibin2017/booktrack/internal/models"
)

const (
	statusCountsQuery = `
		SELECT
			COUNT(*) AS total_books,
			COUNT(*) FILTER (WHERE reading_status = 'want_to_read') AS want_to_read,
			COUNT(*) FILTER (WHERE reading_status = 'currently_reading') AS currently_reading,
			COUNT(*) FILTER (WHERE reading_status = 'finished') AS finished
		FROM books
		WHERE user_id = $1
	`
	genreCountsQuery = `
		SELECT genre, COUNT(*) AS count
		FROM books
		WHERE user_id = $1 AND genre IS NOT NULL
		GROUP BY genre
		ORDER BY count DESC, genre ASC
		LIMIT 10
	`
	ratingQuery = `
		SELECT
			ROUND(AVG(rating)::numeric, 1)::float8 AS average_rating,
			COUNT(rating) AS rated_books
		FROM books
		WHERE user_id = $1
	`
	recentBooksQuery = `
		SELECT book_id, title, author, created_at
		FROM books
		WHERE user_id = $1
		ORDER BY created_at DESC, book_id DESC
		LIMIT 5
	`
)

type statusCountsRow struct {
	TotalBooks       int `db:"total_books"`
	WantToRead       int `db:"want_to_read"`
	CurrentlyReading int `db:"currently_reading"`
	Finished         int `db:"finished"`
}

type ratingRow struct {
	AverageRating *float64 `db:"average_rating"`
	RatedBooks    int      `db:"rated_books"`
}

// Statistics computes the user's collection summary. The four aggregates are
// independent and run concurrently; the first failure fails the whole call.
func (r *BookReadRepository) Statistics(ctx context.Context, userID int64) (*models.Statistics, error) {
	var (
		counts statusCountsRow
		genres []models.GenreCount
		rating ratingRow
		recent []models.RecentBook
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := r.db.GetContext(gctx, &counts, statusCountsQuery, userID)
		logQuery(statusCountsQuery, userID, counts, err)
		return err
	})
	g.Go(func() error {
		err := r.db.SelectContext(gctx, &genres, genreCountsQuery, userID)
		logQuery(genreCountsQuery, userID, len(genres), err)
		return err
	})
	g.Go(func() error {
		err := r.db.GetContext(gctx, &rating, ratingQuery, userID)
		logQuery(ratingQuery, userID, rating, err)
		return err
	})
	g.Go(func() error {
		err := r.db.SelectContext(gctx, &recent, recentBooksQuery, userID)
		logQuery(recentBooksQuery, userID, len(recent), err)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if recent == nil {
		recent = []models.RecentBook{}
	}

	return &models.Statistics{
		TotalBooks: counts.TotalBooks,
		ByStatus: models.StatusCounts{
			WantToRead:       counts.WantToRead,
			CurrentlyReading: counts.CurrentlyReading,
			Finished:         counts.Finished,
		},
		ByGenre:       models.GenreCounts(genres),
		AverageRating: rating.AverageRating,
		RatedBooks:    rating.RatedBooks,
		RecentlyAdded: recent,
	}, nil
}

func logQuery(query string, userID int64, result any, err error) {
	logger.Log.Infow("query",
		"sql", oneLine(query),
		"args", []any{userID},
		"result", result,
		"error", err,
	)
}
