package files

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hikariatama/sharder/internal/client/models"
	"github.com/hikariatama/sharder/internal/common"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE files (
  id         TEXT PRIMARY KEY,
  position   INTEGER NOT NULL,
  name       TEXT NOT NULL,
  size       INTEGER NOT NULL,
  hmac       TEXT NOT NULL,
  created_at TEXT NOT NULL
);`)
	require.NoError(t, err)
	return db
}

func record(id, name string, size int64) models.FileRecord {
	return models.FileRecord{
		ID:        id,
		Name:      name,
		Size:      size,
		HMAC:      "h-" + id,
		CreatedAt: models.Timestamp{Time: time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)},
	}
}

func TestReplaceAll_KeepsOrder(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	in := []models.FileRecord{record("z", "z.txt", 3), record("a", "a.png", 10), record("m", "m.go", 1)}
	require.NoError(t, r.ReplaceAll(ctx, in))

	got, err := r.GetAll(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff(in, got); diff != "" {
		t.Fatalf("listing mismatch (-want +got):\n%s", diff)
	}
}

func TestReplaceAll_DropsStaleRows(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.ReplaceAll(ctx, []models.FileRecord{record("1", "one", 1), record("2", "two", 2)}))
	require.NoError(t, r.ReplaceAll(ctx, []models.FileRecord{record("3", "three", 3)}))

	got, err := r.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "3", got[0].ID)
}

func TestGetAll_EmptyIsNotNil(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	got, err := r.GetAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestGetByID(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()
	require.NoError(t, r.ReplaceAll(ctx, []models.FileRecord{record("id1", "notes.txt", 42)}))

	got, err := r.GetByID(ctx, "id1")
	require.NoError(t, err)
	assert.Equal(t, "notes.txt", got.Name)
	assert.Equal(t, int64(42), got.Size)
	assert.True(t, got.CreatedAt.Equal(time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)))

	_, err = r.GetByID(ctx, "missing")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestDeleteByID(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()
	require.NoError(t, r.ReplaceAll(ctx, []models.FileRecord{record("1", "a", 1), record("2", "b", 2)}))

	require.NoError(t, r.DeleteByID(ctx, "1"))
	require.NoError(t, r.DeleteByID(ctx, "1"))

	got, err := r.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0].ID)
}

func TestReplaceAll_InsertFailureRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM files`).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`INSERT INTO files`).WillReturnError(errors.New("constraint"))
	mock.ExpectRollback()

	r := NewSQLiteRepository(db)
	err = r.ReplaceAll(context.Background(), []models.FileRecord{record("1", "a", 1)})
	require.ErrorContains(t, err, "failed to insert file 1")
	require.NoError(t, mock.ExpectationsWereMet())
}
