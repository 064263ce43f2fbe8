package client

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/hikariatama/sharder/internal/client/migrations"
	"github.com/hikariatama/sharder/internal/client/repositories/files"
	"github.com/hikariatama/sharder/internal/client/repositories/metadata"
	"github.com/hikariatama/sharder/internal/filex"
)

type Repositories struct {
	Metadata metadata.Repository
	Files    files.Repository
}

func NewRepositories(db *sql.DB) *Repositories {
	return &Repositories{
		Metadata: metadata.NewSQLiteRepository(db),
		Files:    files.NewSQLiteRepository(db),
	}
}

// RunMigrations applies the embedded migrations. Already applied versions
// are skipped.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, migrations.Migrations)
	if err != nil {
		return fmt.Errorf("goose provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// InitDatabase opens the SQLite store at dsn and migrates it. A plain file
// path gets its parent directory created first.
func InitDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	if isFilePath(dsn) {
		if err := filex.EnsureParentDir(dsn); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// modernc sqlite serializes writers; one connection also keeps
	// ":memory:" databases alive across calls.
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func isFilePath(dsn string) bool {
	return dsn != "" && !strings.HasPrefix(dsn, "file:") && !strings.HasPrefix(dsn, ":memory:")
}
