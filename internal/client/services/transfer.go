package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/hikariatama/sharder/internal/client/client"
	"github.com/hikariatama/sharder/internal/client/models"
	"github.com/hikariatama/sharder/internal/client/secrets"
	"github.com/hikariatama/sharder/internal/common"
	"github.com/hikariatama/sharder/internal/cryptox"
	"github.com/hikariatama/sharder/internal/logging"
)

// Classifier decides how decrypted bytes are presented.
type Classifier interface {
	Classify(data []byte, filename string) (*models.Content, error)
}

type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseLoading    Phase = "loading"
	PhaseDecrypting Phase = "decrypting"
	PhaseReady      Phase = "ready"
	PhaseFailed     Phase = "failed"
)

// DownloadView is the state a download commits to. Only the most recently
// started download may change it.
type DownloadView struct {
	ID      string
	Name    string
	Phase   Phase
	Content *models.Content
	Err     error
}

type UploadResult struct {
	Path string
	Name string
	ID   string
}

// UploadReport lists the files of a batch that uploaded, in completion
// order. Failed files are only logged.
type UploadReport struct {
	Total    int
	Uploaded []UploadResult
}

// downloadToken identifies one download generation.
type downloadToken struct {
	gen uint64
}

// Pipeline binds encryption to uploads and downloads. It is safe for
// concurrent use.
type Pipeline struct {
	client      client.Client
	codec       *cryptox.Codec
	secrets     secrets.Provider
	classifier  Classifier
	log         logging.Logger
	concurrency int

	tasks     *taskRegistry
	uploading atomic.Int32

	listenersMu sync.RWMutex
	onUploaded  []func(UploadResult)

	mu         sync.Mutex
	generation uint64
	cancel     context.CancelFunc
	view       DownloadView
}

// NewPipeline builds a pipeline. concurrency caps the uploads of one batch in
// flight at once; zero or less starts every file immediately.
func NewPipeline(c client.Client, codec *cryptox.Codec, sp secrets.Provider, cl Classifier, log logging.Logger, concurrency int) *Pipeline {
	if concurrency < 1 {
		concurrency = -1
	}
	return &Pipeline{
		client:      c,
		codec:       codec,
		secrets:     sp,
		classifier:  cl,
		log:         log,
		concurrency: concurrency,
		tasks:       newTaskRegistry(),
		view:        DownloadView{Phase: PhaseIdle},
	}
}

// OnUploaded registers fn to run after every successful upload.
func (p *Pipeline) OnUploaded(fn func(UploadResult)) {
	p.listenersMu.Lock()
	defer p.listenersMu.Unlock()
	p.onUploaded = append(p.onUploaded, fn)
}

// Uploading reports whether an upload batch is in flight.
func (p *Pipeline) Uploading() bool {
	return p.uploading.Load() > 0
}

// Pending returns the transfers that have not settled yet.
func (p *Pipeline) Pending() []Task {
	return p.tasks.pending()
}

// Upload encrypts and uploads every file of the batch concurrently. Files
// settle independently: a failure neither cancels nor delays the others.
func (p *Pipeline) Upload(ctx context.Context, paths []string) UploadReport {
	p.uploading.Add(1)
	defer p.uploading.Add(-1)

	var (
		mu       sync.Mutex
		uploaded = make([]UploadResult, 0, len(paths))
	)

	var g errgroup.Group
	g.SetLimit(p.concurrency)
	for _, path := range paths {
		g.Go(func() error {
			res, ok := p.uploadOne(ctx, path)
			if !ok {
				return nil
			}
			mu.Lock()
			uploaded = append(uploaded, res)
			mu.Unlock()
			p.notifyUploaded(res)
			return nil
		})
	}
	_ = g.Wait()

	p.log.Info(ctx, "upload batch settled", "total", len(paths), "uploaded", len(uploaded))
	return UploadReport{Total: len(paths), Uploaded: uploaded}
}

func (p *Pipeline) uploadOne(ctx context.Context, path string) (UploadResult, bool) {
	name := filepath.Base(path)
	task := p.tasks.start(TaskUpload, name)

	id, err := p.encryptAndSend(ctx, path, name)
	if err != nil {
		p.tasks.settle(ctx, p.log, task, TaskFailed, err)
		return UploadResult{}, false
	}
	p.tasks.settle(ctx, p.log, task, TaskSuccess, nil)
	return UploadResult{Path: path, Name: name, ID: id}, true
}

func (p *Pipeline) encryptAndSend(ctx context.Context, path, name string) (string, error) {
	plain, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	defer common.WipeByteArray(plain)

	seed, err := p.secrets.Seed(ctx)
	if err != nil {
		return "", fmt.Errorf("read seed: %w", err)
	}
	envelope, err := p.codec.Encrypt(cryptox.DeriveKey(seed), plain)
	if err != nil {
		return "", fmt.Errorf("encrypt %s: %w", name, err)
	}
	return p.client.Upload(ctx, name, envelope)
}

func (p *Pipeline) notifyUploaded(res UploadResult) {
	p.listenersMu.RLock()
	fns := append([]func(UploadResult){}, p.onUploaded...)
	p.listenersMu.RUnlock()
	for _, fn := range fns {
		fn(res)
	}
}

// Download fetches, decrypts and classifies the file id. Starting a download
// supersedes any download still in flight; the superseded one stops at its
// next step and never touches the view. The returned view is the committed
// state once this call is done, which belongs to a newer download if this
// one was superseded.
func (p *Pipeline) Download(ctx context.Context, id, name string) DownloadView {
	tok, dctx := p.begin(ctx, id, name)
	defer p.end(tok)
	task := p.tasks.start(TaskDownload, id)

	content, err := p.fetchAndOpen(dctx, tok, id, name)
	// commit re-checks the generation under the lock, so a download superseded
	// at any point up to here settles as aborted.
	state := TaskSuccess
	committed := p.commit(tok, func(v *DownloadView) {
		if err != nil {
			state = TaskFailed
			v.Phase = PhaseFailed
			v.Err = err
			return
		}
		v.Phase = PhaseReady
		v.Content = content
	})
	if !committed {
		p.tasks.settle(ctx, p.log, task, TaskAborted, nil)
		return p.View()
	}
	p.tasks.settle(ctx, p.log, task, state, err)
	return p.View()
}

func (p *Pipeline) fetchAndOpen(ctx context.Context, tok downloadToken, id, name string) (*models.Content, error) {
	envelope, err := p.client.FetchContent(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.commit(tok, func(v *DownloadView) { v.Phase = PhaseDecrypting }) {
		return nil, common.ErrSuperseded
	}

	seed, err := p.secrets.Seed(ctx)
	if err != nil {
		return nil, fmt.Errorf("read seed: %w", err)
	}
	if !p.current(tok) {
		return nil, common.ErrSuperseded
	}

	plain, err := p.codec.Decrypt(cryptox.DeriveKey(seed), envelope)
	if err != nil {
		return nil, err
	}
	if !p.current(tok) {
		return nil, common.ErrSuperseded
	}

	content, err := p.classifier.Classify(plain, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrDecode, err)
	}
	return content, nil
}

// begin issues a new generation, cancels the previous download and resets
// the view to loading for the new target.
func (p *Pipeline) begin(ctx context.Context, id, name string) (downloadToken, context.Context) {
	dctx, cancel := context.WithCancel(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		p.cancel()
	}
	p.generation++
	p.cancel = cancel
	p.view = DownloadView{ID: id, Name: name, Phase: PhaseLoading}
	return downloadToken{gen: p.generation}, dctx
}

// end releases the context of tok if it is still the active download.
func (p *Pipeline) end(tok downloadToken) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.generation == tok.gen && p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}

func (p *Pipeline) current(tok downloadToken) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.generation == tok.gen
}

// commit applies fn to the view only if tok is still current.
func (p *Pipeline) commit(tok downloadToken, fn func(v *DownloadView)) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.generation != tok.gen {
		return false
	}
	fn(&p.view)
	return true
}

// View returns a copy of the committed download state.
func (p *Pipeline) View() DownloadView {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.view
}

// Reset invalidates any download in flight and returns the view to idle.
func (p *Pipeline) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.generation++
	p.view = DownloadView{Phase: PhaseIdle}
}
