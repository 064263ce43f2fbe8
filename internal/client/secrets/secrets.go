// Package secrets supplies the encryption seed to the transfer pipeline.
package secrets

import (
	"context"
	"sync"

	"github.com/hikariatama/sharder/internal/client/repositories/metadata"
	"github.com/hikariatama/sharder/internal/common"
)

// Provider returns the current seed. A missing seed is the empty string.
type Provider interface {
	Seed(ctx context.Context) (string, error)
}

// StoreProvider reads the seed from the local metadata store on every call,
// so a seed changed mid-session applies to the next operation.
type StoreProvider struct {
	repo metadata.Repository
}

func NewStoreProvider(repo metadata.Repository) *StoreProvider {
	return &StoreProvider{repo: repo}
}

func (p *StoreProvider) Seed(ctx context.Context) (string, error) {
	v, _, err := p.repo.Get(ctx, common.SeedMetadataKey)
	return v, err
}

func (p *StoreProvider) SetSeed(ctx context.Context, seed string) error {
	return p.repo.Set(ctx, common.SeedMetadataKey, seed)
}

// Static is a fixed in-memory seed.
type Static struct {
	mu   sync.RWMutex
	seed string
}

func NewStatic(seed string) *Static {
	return &Static{seed: seed}
}

func (s *Static) Seed(context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.seed, nil
}

func (s *Static) Set(seed string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seed = seed
}
