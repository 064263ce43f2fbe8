package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/hikariatama/sharder/internal/client/services"
	"github.com/hikariatama/sharder/internal/common"
	"github.com/hikariatama/sharder/internal/filex"
)

// Upload starts a background batch. Shell-style patterns are expanded.
func (a *App) Upload(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usage("upload <path>...")
	}
	paths, err := expandPaths(args)
	if err != nil {
		return err
	}

	runCtx := a.runContext()
	a.printf("Uploading %d file(s) in the background.\n", len(paths))
	a.transfers.Add(1)
	go func() {
		defer a.transfers.Done()
		report := a.pipeline.Upload(runCtx, paths)
		a.printf("Upload finished: %d of %d file(s) stored.\n", len(report.Uploaded), report.Total)
	}()
	return nil
}

func expandPaths(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		matches, err := filepath.Glob(arg)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", arg, err)
		}
		if len(matches) == 0 {
			paths = append(paths, arg)
			continue
		}
		paths = append(paths, matches...)
	}
	return paths, nil
}

// Open starts a background download of the file id. Opening another file
// before it finishes supersedes it.
func (a *App) Open(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("open <id>")
	}
	id := args[0]

	name := id
	rec, err := a.files.Lookup(ctx, id)
	switch {
	case err == nil:
		name = rec.Name
	case errors.Is(err, common.ErrorNotFound):
		return fmt.Errorf("no file with id %s", id)
	default:
		a.log.Debug(ctx, "file name lookup failed", "id", id, "error", err)
	}

	runCtx := a.runContext()
	a.printf("Opening %s...\n", name)
	a.transfers.Add(1)
	go func() {
		defer a.transfers.Done()
		view := a.pipeline.Download(runCtx, id, name)
		if view.ID != id {
			return
		}
		switch view.Phase {
		case services.PhaseReady:
			a.printf("%s is ready (%s); run 'show' or 'save'.\n", name, view.Content.Mode)
		case services.PhaseFailed:
			a.printf("Opening %s failed: %v\n", name, view.Err)
		}
	}()
	return nil
}

func (a *App) Show(ctx context.Context) error {
	view := a.pipeline.View()
	switch view.Phase {
	case services.PhaseIdle:
		a.println("Nothing is open; run 'open <id>' first.")
	case services.PhaseLoading, services.PhaseDecrypting:
		a.printf("%s is still %s.\n", view.Name, view.Phase)
	case services.PhaseFailed:
		return fmt.Errorf("opening %s failed: %w", view.Name, view.Err)
	case services.PhaseReady:
		renderContent(a.writer(), view.Name, view.Content)
	}
	return nil
}

func (a *App) Save(ctx context.Context, args []string) error {
	if len(args) > 1 {
		return usage("save [path]")
	}
	view := a.pipeline.View()
	if view.Phase != services.PhaseReady || view.Content == nil {
		return errors.New("nothing ready to save; run 'open <id>' first")
	}
	dst := ""
	if len(args) == 1 {
		dst = args[0]
	}
	path, err := filex.SaveFile(dst, view.Name, view.Content.Data)
	if err != nil {
		return err
	}
	a.printf("Saved %s.\n", path)
	return nil
}
