package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/hikariatama/sharder/internal/client/client"
	"github.com/hikariatama/sharder/internal/client/config"
	"github.com/hikariatama/sharder/internal/client/content"
	"github.com/hikariatama/sharder/internal/client/secrets"
	"github.com/hikariatama/sharder/internal/client/services"
	"github.com/hikariatama/sharder/internal/client/shards"
	"github.com/hikariatama/sharder/internal/cryptox"
	"github.com/hikariatama/sharder/internal/logging"
)

type App struct {
	config   *config.Config
	log      logging.Logger
	db       *sql.DB
	api      client.Client
	stream   client.ShardSubscriber
	seeds    *secrets.StoreProvider
	sessions services.SessionService
	files    services.FileService
	pipeline *services.Pipeline
	shards   *shards.Aggregator
	reader   *bufio.Reader

	outMu sync.Mutex
	out   io.Writer

	mu       sync.Mutex
	ctx      context.Context
	userName string

	// transfers tracks background uploads and downloads; watcher tracks
	// the shard watcher goroutine.
	transfers sync.WaitGroup
	watcher   sync.WaitGroup
}

func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	db, err := client.InitDatabase(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}
	api := client.NewHTTPClient(c.BackendURL, c.RequestTimeout)
	return newApp(c, log, db, api, api, os.Stdin, os.Stdout), nil
}

func newApp(c *config.Config, log logging.Logger, db *sql.DB, api client.Client, stream client.ShardSubscriber, in io.Reader, out io.Writer) *App {
	repos := client.NewRepositories(db)
	seeds := secrets.NewStoreProvider(repos.Metadata)
	pipeline := services.NewPipeline(api, cryptox.NewCodec(), seeds, content.NewClassifier(), log, c.UploadConcurrency)

	a := &App{
		config:   c,
		log:      log,
		db:       db,
		api:      api,
		stream:   stream,
		seeds:    seeds,
		sessions: services.NewSessionService(api, repos.Metadata),
		files:    services.NewFileService(api, repos.Files, pipeline, c.FrontendURL, log),
		pipeline: pipeline,
		shards:   shards.NewAggregator(log),
		reader:   bufio.NewReader(in),
		out:      out,
		ctx:      context.Background(),
	}
	pipeline.OnUploaded(a.onUploaded)
	return a
}

// Run restores the session, starts the shard watcher and serves the REPL
// until the user exits or ctx ends.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.mu.Lock()
	a.ctx = ctx
	a.mu.Unlock()

	a.restoreSession(ctx)

	watcher := shards.NewWatcher(a.stream, a.shards, a.log, a.config.ReconnectInterval)
	a.watcher.Add(1)
	go func() {
		defer a.watcher.Done()
		watcher.Run(ctx)
	}()

	a.println("Welcome to sharder (type 'help' for commands)")
	if seed, _ := a.seeds.Seed(ctx); seed == "" {
		a.println("No encryption seed set; run 'seed' before uploading.")
	}

	runREPL(ctx, a, a.getStatus, a.reader, a.writer())

	if len(a.pipeline.Pending()) > 0 {
		a.println("Waiting for transfers to finish...")
	}
	a.transfers.Wait()
	cancel()
	a.watcher.Wait()
	return nil
}

func (a *App) Close() error {
	_ = a.api.Close()
	return a.db.Close()
}

func (a *App) restoreSession(ctx context.Context) {
	ok, err := a.sessions.Restore(ctx)
	if err != nil {
		a.log.Warn(ctx, "session not restored", "error", err)
		return
	}
	if !ok {
		a.println("No session token stored; run 'token' to set one.")
		return
	}
	sess, offline, err := a.sessions.Whoami(ctx)
	if err != nil {
		a.log.Warn(ctx, "stored session rejected", "error", err)
		a.println("Stored session token was rejected; run 'token' to set a new one.")
		return
	}
	a.setUser(sess.Username)
	if offline {
		a.println("Backend unreachable; listings come from the local cache.")
	}
}

func (a *App) setUser(name string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.userName = name
}

func (a *App) runContext() context.Context {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.ctx
}

// onUploaded refreshes the listing cache after each successful upload.
func (a *App) onUploaded(r services.UploadResult) {
	ctx := a.runContext()
	a.printf("uploaded %s as %s\n", r.Name, r.ID)
	if _, err := a.files.List(ctx); err != nil {
		a.log.Debug(ctx, "listing refresh after upload failed", "error", err)
	}
}

func (a *App) printf(format string, args ...any) {
	a.outMu.Lock()
	defer a.outMu.Unlock()
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) println(args ...any) {
	a.outMu.Lock()
	defer a.outMu.Unlock()
	fmt.Fprintln(a.out, args...)
}

// writer serializes writes to the app output.
func (a *App) writer() io.Writer {
	return writerFunc(func(p []byte) (int, error) {
		a.outMu.Lock()
		defer a.outMu.Unlock()
		return a.out.Write(p)
	})
}

type writerFunc func(p []byte) (int, error)

func (f writerFunc) Write(p []byte) (int, error) { return f(p) }
