// Package metadata persists small client-local key/value settings such as the
// encryption seed and the session token.
package metadata

import (
	"context"
)

type Repository interface {
	// Get returns the value for key. found is false when the key is absent.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}
