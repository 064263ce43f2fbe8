package client

import (
	"context"

	"github.com/hikariatama/sharder/internal/client/models"
)

// Client is the contract the transfer pipeline and the file catalogue use to
// reach the storage backend.
type Client interface {
	Close() error
	SetToken(token string)
	Me(ctx context.Context) (*Session, error)
	Upload(ctx context.Context, name string, envelope []byte) (string, error)
	ListFiles(ctx context.Context) ([]models.FileRecord, error)
	FetchContent(ctx context.Context, id string) ([]byte, error)
	Delete(ctx context.Context, id string) error
}

// ShardSubscriber opens the shard status channel. The returned channel is
// closed when the connection ends.
type ShardSubscriber interface {
	Subscribe(ctx context.Context) (<-chan []models.ShardStatus, error)
}
