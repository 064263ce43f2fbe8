package client

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hikariatama/sharder/internal/client/models"
)

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, name).Scan(&n)
	require.NoError(t, err)
	return n > 0
}

func TestInitDatabase_CreatesSchema(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "nested", "sharder.db")

	db, err := InitDatabase(ctx, dsn)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.PingContext(ctx))
	for _, table := range []string{"goose_db_version", "metadata", "files"} {
		require.True(t, tableExists(t, db, table), "missing table %s", table)
	}
}

func TestRunMigrations_IsIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "app.db"))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, RunMigrations(ctx, db))
	require.NoError(t, RunMigrations(ctx, db))
	require.True(t, tableExists(t, db, "files"))
}

func TestNewRepositories_SharesDatabase(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db, err := InitDatabase(ctx, ":memory:")
	require.NoError(t, err)
	defer db.Close()

	repos := NewRepositories(db)
	require.NoError(t, repos.Metadata.Set(ctx, "seed", "s"))
	require.NoError(t, repos.Files.ReplaceAll(ctx, []models.FileRecord{{ID: "1", Name: "a.txt"}}))

	v, found, err := repos.Metadata.Get(ctx, "seed")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "s", v)

	got, err := repos.Files.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
}
