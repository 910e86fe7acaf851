package migrations

import (
	"context"

	"github.com/uptrace/bun"
)

func init() {
	up := func(ctx context.Context, db *bun.DB) error {
		return execAll(ctx, db, `
			CREATE TABLE users (
				user_id       BIGSERIAL PRIMARY KEY,
				email         VARCHAR(255) NOT NULL UNIQUE,
				password_hash VARCHAR(255) NOT NULL,
				full_name     VARCHAR(50)  NOT NULL,
				created_at    TIMESTAMPTZ  NOT NULL DEFAULT NOW(),
				updated_at    TIMESTAMPTZ  NOT NULL DEFAULT NOW()
			)
		`)
	}

	down := func(ctx context.Context, db *bun.DB) error {
		return execAll(ctx, db, `DROP TABLE IF EXISTS users`)
	}

	Migrations.MustRegister(up, down)
}
