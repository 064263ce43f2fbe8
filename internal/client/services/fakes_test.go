package services

import (
	"context"
	"sync"

	"github.com/hikariatama/sharder/internal/client/client"
	"github.com/hikariatama/sharder/internal/client/models"
)

type fakeClient struct {
	client.Client

	mu       sync.Mutex
	uploaded map[string][]byte
	deleted  []string
	token    string

	UploadFn func(ctx context.Context, name string, envelope []byte) (string, error)
	FetchFn  func(ctx context.Context, id string) ([]byte, error)
	ListFn   func(ctx context.Context) ([]models.FileRecord, error)
	DeleteFn func(ctx context.Context, id string) error
	MeFn     func(ctx context.Context) (*client.Session, error)
}

func newFakeClient() *fakeClient {
	return &fakeClient{uploaded: map[string][]byte{}}
}

func (f *fakeClient) Upload(ctx context.Context, name string, envelope []byte) (string, error) {
	if f.UploadFn != nil {
		id, err := f.UploadFn(ctx, name, envelope)
		if err != nil {
			return "", err
		}
		f.mu.Lock()
		f.uploaded[name] = append([]byte(nil), envelope...)
		f.mu.Unlock()
		return id, nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploaded[name] = append([]byte(nil), envelope...)
	return "id-" + name, nil
}

func (f *fakeClient) FetchContent(ctx context.Context, id string) ([]byte, error) {
	return f.FetchFn(ctx, id)
}

func (f *fakeClient) ListFiles(ctx context.Context) ([]models.FileRecord, error) {
	return f.ListFn(ctx)
}

func (f *fakeClient) Delete(ctx context.Context, id string) error {
	if f.DeleteFn != nil {
		if err := f.DeleteFn(ctx, id); err != nil {
			return err
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeClient) Me(ctx context.Context) (*client.Session, error) {
	return f.MeFn(ctx)
}

func (f *fakeClient) SetToken(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = token
}

func (f *fakeClient) Token() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}

func (f *fakeClient) Envelope(name string) []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.uploaded[name]
}

type memMetadata struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemMetadata() *memMetadata {
	return &memMetadata{data: map[string]string{}}
}

func (m *memMetadata) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memMetadata) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memMetadata) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}
