package files

import (
	"context"

	"github.com/hikariatama/sharder/internal/client/models"
)

type Repository interface {
	// ReplaceAll swaps the cached listing for records, keeping their order.
	ReplaceAll(ctx context.Context, records []models.FileRecord) error
	GetAll(ctx context.Context) ([]models.FileRecord, error)
	GetByID(ctx context.Context, id string) (*models.FileRecord, error)
	DeleteByID(ctx context.Context, id string) error
}
