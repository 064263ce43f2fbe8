package files

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/hikariatama/sharder/internal/client/models"
	"github.com/hikariatama/sharder/internal/common"
	"github.com/hikariatama/sharder/internal/dbx"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) ReplaceAll(ctx context.Context, records []models.FileRecord) error {
	return dbx.WithTx(ctx, r.db, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM files`); err != nil {
			return fmt.Errorf("failed to clear files: %w", err)
		}

		query := `INSERT INTO files (id, position, name, size, hmac, created_at) VALUES (?, ?, ?, ?, ?, ?)`
		for i, rec := range records {
			_, err := tx.ExecContext(ctx, query,
				rec.ID, i, rec.Name, rec.Size, rec.HMAC, rec.CreatedAt.UTC().Format(time.RFC3339Nano))
			if err != nil {
				return fmt.Errorf("failed to insert file %s: %w", rec.ID, err)
			}
		}
		return nil
	})
}

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.FileRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, size, hmac, created_at FROM files ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to select files: %w", err)
	}
	defer rows.Close()

	result := []models.FileRecord{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.FileRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, size, hmac, created_at FROM files WHERE id = ?`, id)

	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *SQLiteRepository) DeleteByID(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM files WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete file %s: %w", id, err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (*models.FileRecord, error) {
	var (
		rec     models.FileRecord
		created string
	)
	if err := s.Scan(&rec.ID, &rec.Name, &rec.Size, &rec.HMAC, &created); err != nil {
		return nil, err
	}
	ts, err := models.ParseTimestamp(created)
	if err != nil {
		return nil, fmt.Errorf("file %s: %w", rec.ID, err)
	}
	rec.CreatedAt = models.Timestamp{Time: ts}
	return &rec, nil
}
