// Package migrations holds the versioned database schema.
package migrations

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/migrate"
)

// Migrations is the registry every migration file adds itself to.
var Migrations = migrate.NewMigrations()

// NewMigrator returns a migrator over the given pool. The pool stays owned by the caller.
func NewMigrator(db *sql.DB) *migrate.Migrator {
	return migrate.NewMigrator(bun.NewDB(db, pgdialect.New()), Migrations)
}

// BringUpToDate creates the bookkeeping tables if needed and applies every pending migration.
// The returned group has ID 0 when there was nothing to apply.
func BringUpToDate(ctx context.Context, db *sql.DB) (*migrate.MigrationGroup, error) {
	migrator := NewMigrator(db)
	if err := migrator.Init(ctx); err != nil {
		return nil, errors.WithStack(err)
	}

	group, err := migrator.Migrate(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return group, nil
}

func execAll(ctx context.Context, db *bun.DB, statements ...string) error {
	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return errors.WithStack(err)
		}
	}
	return nil
}
