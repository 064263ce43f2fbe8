package main

import (
	"context"
	"fmt"
	"os"

	"github.com/hikariatama/sharder/internal/buildinfo"
	"github.com/hikariatama/sharder/internal/client/cli"
	"github.com/hikariatama/sharder/internal/client/config"
	"github.com/hikariatama/sharder/internal/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		return err
	}

	log, err := logging.New(cfg.LogLevel, os.Stderr)
	if err != nil {
		return err
	}

	ctx := context.Background()

	app, err := cli.NewApp(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "startup failed", "error", err)
		return err
	}
	defer app.Close()

	return app.Run(ctx)
}
