package migrations

import (
	"context"

	"github.com/uptrace/bun"
)

func init() {
	up := func(ctx context.Context, db *bun.DB) error {
		return execAll(ctx, db,
			`
			CREATE TABLE books (
				book_id          BIGSERIAL PRIMARY KEY,
				user_id          BIGINT       NOT NULL REFERENCES users (user_id) ON DELETE CASCADE,
				title            VARCHAR(255) NOT NULL,
				author           VARCHAR(255) NOT NULL,
				genre            VARCHAR(100),
				publication_year INTEGER CHECK (publication_year BETWEEN 1000 AND 2100),
				reading_status   VARCHAR(20)  NOT NULL
					CHECK (reading_status IN ('want_to_read', 'currently_reading', 'finished')),
				rating           SMALLINT CHECK (rating BETWEEN 1 AND 5),
				notes            TEXT CHECK (char_length(notes) <= 2000),
				created_at       TIMESTAMPTZ  NOT NULL DEFAULT NOW(),
				updated_at       TIMESTAMPTZ  NOT NULL DEFAULT NOW()
			)
			`,
			`CREATE INDEX idx_books_user_id ON books (user_id)`,
			`CREATE INDEX idx_books_user_status ON books (user_id, reading_status)`,
			`CREATE INDEX idx_books_user_created ON books (user_id, created_at DESC)`,
		)
	}

	down := func(ctx context.Context, db *bun.DB) error {
		return execAll(ctx, db, `DROP TABLE IF EXISTS books`)
	}

	Migrations.MustRegister(up, down)
}
