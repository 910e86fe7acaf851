package migrations

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestMigrations_Registered(t *testing.T) {
	sorted := Migrations.Sorted()
	require.Len(t, sorted, 2)

	assert.Equal(t, "20251014000000", sorted[0].Name)
	assert.Equal(t, "create_users", sorted[0].Comment)
	assert.Equal(t, "20251014000001", sorted[1].Name)
	assert.Equal(t, "create_books", sorted[1].Comment)

	for _, m := range sorted {
		assert.NotNil(t, m.Up, m.Name)
		assert.NotNil(t, m.Down, m.Name)
	}
}

func setupPostgres(t *testing.T) *sql.DB {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping postgres container test in short mode")
	}

	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:15-alpine",
			Env:          map[string]string{"POSTGRES_PASSWORD": "password", "POSTGRES_DB": "testdb", "POSTGRES_USER": "postgres"},
			ExposedPorts: []string{"5432/tcp"},
			WaitingFor:   wait.ForLog("database system is ready to accept connections").WithOccurrence(2).WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, _ := container.Host(ctx)
	port, _ := container.MappedPort(ctx, "5432")
	dsn := fmt.Sprintf("postgres://postgres:password@%s:%d/testdb?sslmode=disable", host, port.Int())

	db, err := sql.Open("pgx", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	for i := 0; i < 10; i++ {
		if err = db.PingContext(ctx); err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	require.NoError(t, err)
	return db
}

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()

	var exists bool
	err := db.QueryRow(`SELECT to_regclass($1) IS NOT NULL`, "public."+name).Scan(&exists)
	require.NoError(t, err)
	return exists
}

func TestBringUpToDate(t *testing.T) {
	db := setupPostgres(t)
	ctx := context.Background()

	group, err := BringUpToDate(ctx, db)
	require.NoError(t, err)
	assert.NotZero(t, group.ID)
	assert.Len(t, group.Migrations, 2)
	assert.True(t, tableExists(t, db, "users"))
	assert.True(t, tableExists(t, db, "books"))

	group, err = BringUpToDate(ctx, db)
	require.NoError(t, err)
	assert.Zero(t, group.ID, "second run has nothing to apply")

	_, err = db.ExecContext(ctx, `INSERT INTO books (user_id, title, author, reading_status) VALUES (999, 'T', 'A', 'finished')`)
	assert.Error(t, err, "books.user_id must reference users")

	rolledBack, err := NewMigrator(db).Rollback(ctx)
	require.NoError(t, err)
	assert.Len(t, rolledBack.Migrations, 2)
	assert.False(t, tableExists(t, db, "books"))
	assert.False(t, tableExists(t, db, "users"))
}
