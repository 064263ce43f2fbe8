package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/hikariatama/sharder/internal/client/client"
	"github.com/hikariatama/sharder/internal/client/repositories/metadata"
	"github.com/hikariatama/sharder/internal/common"
)

// SessionService keeps the backend session token in the local store and in
// the API client.
//
// Contract:
//   - Restore: load a stored token into the client at startup.
//   - SetToken: validate a token locally, persist it and start using it.
//   - Whoami: ask the backend; fall back to the token contents when the
//     backend is unavailable.
//   - Clear: forget the token.
type SessionService interface {
	Restore(ctx context.Context) (bool, error)
	SetToken(ctx context.Context, token string) (*client.Session, error)
	Whoami(ctx context.Context) (*client.Session, bool, error)
	Clear(ctx context.Context) error
}

type sessionService struct {
	client client.Client
	repo   metadata.Repository
}

func NewSessionService(c client.Client, repo metadata.Repository) SessionService {
	return &sessionService{client: c, repo: repo}
}

func (s *sessionService) Restore(ctx context.Context) (bool, error) {
	token, found, err := s.repo.Get(ctx, common.TokenMetadataKey)
	if err != nil {
		return false, fmt.Errorf("load token: %w", err)
	}
	if !found || token == "" {
		return false, nil
	}
	s.client.SetToken(token)
	return true, nil
}

func (s *sessionService) SetToken(ctx context.Context, token string) (*client.Session, error) {
	sess, err := client.InspectToken(token)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Set(ctx, common.TokenMetadataKey, token); err != nil {
		return nil, fmt.Errorf("save token: %w", err)
	}
	s.client.SetToken(token)
	return sess, nil
}

// Whoami reports the session owner. offline is true when the answer comes
// from the stored token instead of the backend.
func (s *sessionService) Whoami(ctx context.Context) (sess *client.Session, offline bool, err error) {
	sess, err = s.client.Me(ctx)
	if err == nil {
		return sess, false, nil
	}
	if !errors.Is(err, client.ErrUnavailable) {
		return nil, false, err
	}

	token, found, rErr := s.repo.Get(ctx, common.TokenMetadataKey)
	if rErr != nil || !found {
		return nil, false, err
	}
	local, iErr := client.InspectToken(token)
	if iErr != nil {
		return nil, false, err
	}
	return local, true, nil
}

func (s *sessionService) Clear(ctx context.Context) error {
	s.client.SetToken("")
	return s.repo.Delete(ctx, common.TokenMetadataKey)
}
