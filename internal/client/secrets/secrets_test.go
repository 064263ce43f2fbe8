package secrets

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo struct {
	data   map[string]string
	getErr error
}

func (m *memRepo) Get(_ context.Context, key string) (string, bool, error) {
	if m.getErr != nil {
		return "", false, m.getErr
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memRepo) Set(_ context.Context, key, value string) error {
	m.data[key] = value
	return nil
}

func (m *memRepo) Delete(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func TestStoreProvider_MissingSeedIsEmpty(t *testing.T) {
	p := NewStoreProvider(&memRepo{data: map[string]string{}})

	seed, err := p.Seed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "", seed)
}

func TestStoreProvider_SetThenSeed(t *testing.T) {
	repo := &memRepo{data: map[string]string{}}
	p := NewStoreProvider(repo)
	ctx := context.Background()

	require.NoError(t, p.SetSeed(ctx, "correct horse"))
	seed, err := p.Seed(ctx)
	require.NoError(t, err)
	assert.Equal(t, "correct horse", seed)
	assert.Equal(t, "correct horse", repo.data["seed"])
}

func TestStoreProvider_PropagatesErrors(t *testing.T) {
	p := NewStoreProvider(&memRepo{getErr: errors.New("db closed")})

	_, err := p.Seed(context.Background())
	require.EqualError(t, err, "db closed")
}

func TestStatic(t *testing.T) {
	s := NewStatic("a")
	s.Set("b")

	seed, err := s.Seed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "b", seed)
}
