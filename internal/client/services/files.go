package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/hikariatama/sharder/internal/client/client"
	"github.com/hikariatama/sharder/internal/client/models"
	"github.com/hikariatama/sharder/internal/client/repositories/files"
	"github.com/hikariatama/sharder/internal/common"
	"github.com/hikariatama/sharder/internal/logging"
)

// Listing is a file catalogue. Cached is true when the backend could not be
// reached and the records come from the local cache.
type Listing struct {
	Files  []models.FileRecord
	Cached bool
}

// FileService manages the remote file catalogue.
type FileService interface {
	List(ctx context.Context) (*Listing, error)
	Lookup(ctx context.Context, id string) (*models.FileRecord, error)
	Delete(ctx context.Context, id string) error
	ShareLink(ctx context.Context, id string) (string, error)
}

type fileService struct {
	client      client.Client
	cache       files.Repository
	pipeline    *Pipeline
	frontendURL string
	log         logging.Logger

	copyToClipboard func(string) error
}

func NewFileService(c client.Client, cache files.Repository, pipeline *Pipeline, frontendURL string, log logging.Logger) FileService {
	return &fileService{
		client:          c,
		cache:           cache,
		pipeline:        pipeline,
		frontendURL:     frontendURL,
		log:             log,
		copyToClipboard: clipboard.WriteAll,
	}
}

// List fetches the catalogue and refreshes the cache. When the backend is
// unreachable the cached catalogue is returned instead. Authorization
// failures are never masked by the cache.
func (s *fileService) List(ctx context.Context) (*Listing, error) {
	records, err := s.client.ListFiles(ctx)
	if err == nil {
		if cErr := s.cache.ReplaceAll(ctx, records); cErr != nil {
			s.log.Warn(ctx, "file cache not updated", "error", cErr)
		}
		return &Listing{Files: records}, nil
	}
	if !errors.Is(err, client.ErrUnavailable) {
		return nil, fmt.Errorf("list files: %w", err)
	}

	cached, cErr := s.cache.GetAll(ctx)
	if cErr != nil {
		return nil, errors.Join(fmt.Errorf("list files: %w", err), cErr)
	}
	s.log.Warn(ctx, "backend unavailable, showing cached listing", "files", len(cached))
	return &Listing{Files: cached, Cached: true}, nil
}

// Lookup finds a record in the cached catalogue, refreshing it once if the
// id is unknown.
func (s *fileService) Lookup(ctx context.Context, id string) (*models.FileRecord, error) {
	rec, err := s.cache.GetByID(ctx, id)
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, err
	}
	if _, err := s.List(ctx); err != nil {
		return nil, err
	}
	return s.cache.GetByID(ctx, id)
}

// Delete removes the file remotely and drops it from the cache. The download
// view is reset only when it belongs to the deleted file.
func (s *fileService) Delete(ctx context.Context, id string) error {
	if err := s.client.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete %s: %w", id, err)
	}
	if err := s.cache.DeleteByID(ctx, id); err != nil {
		s.log.Warn(ctx, "file cache not updated", "id", id, "error", err)
	}
	if s.pipeline.View().ID == id {
		s.pipeline.Reset()
	}
	s.log.Info(ctx, "file deleted", "id", id)
	return nil
}

// ShareLink builds the viewer deep link for id and tries to put it on the
// clipboard. A clipboard failure is logged, not returned.
func (s *fileService) ShareLink(ctx context.Context, id string) (string, error) {
	base, err := url.Parse(strings.TrimRight(s.frontendURL, "/") + "/explorer")
	if err != nil {
		return "", fmt.Errorf("frontend url: %w", err)
	}
	q := base.Query()
	q.Set("fileId", id)
	base.RawQuery = q.Encode()
	link := base.String()

	if err := s.copyToClipboard(link); err != nil {
		s.log.Warn(ctx, "could not copy link to clipboard", "error", err)
	}
	return link, nil
}
