package config

import (
	"fmt"

	"github.com/hikariatama/sharder/internal/flagx"
	"github.com/spf13/pflag"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-a, --backend string        backend API base URL
//	-f, --frontend string       frontend base URL for share links
//	-d, --db string             local SQLite DSN
//	-t, --timeout duration      HTTP request timeout (0 = none)
//	-r, --reconnect duration    shard channel reconnect interval
//	-u, --uploads int           concurrent uploads per batch
//	-l, --log-level string      log level
//
// Arguments not handled here are filtered out with flagx.FilterArgs so other
// components may define their own flags.
func parseFlags(cfg *Config, args []string) error {
	fs := pflag.NewFlagSet("sharder", pflag.ContinueOnError)

	fs.StringVarP(&cfg.BackendURL, "backend", "a", cfg.BackendURL, "backend API base URL")
	fs.StringVarP(&cfg.FrontendURL, "frontend", "f", cfg.FrontendURL, "frontend base URL for share links")
	fs.StringVarP(&cfg.DatabaseDSN, "db", "d", cfg.DatabaseDSN, "local SQLite DSN")
	fs.DurationVarP(&cfg.RequestTimeout, "timeout", "t", cfg.RequestTimeout, "HTTP request timeout (0 = none)")
	fs.DurationVarP(&cfg.ReconnectInterval, "reconnect", "r", cfg.ReconnectInterval, "shard channel reconnect interval")
	fs.IntVarP(&cfg.UploadConcurrency, "uploads", "u", cfg.UploadConcurrency, "concurrent uploads per batch (0 = all at once)")
	fs.StringVarP(&cfg.LogLevel, "log-level", "l", cfg.LogLevel, "log level (debug, info, warn, error)")

	if err := fs.Parse(flagx.FilterArgs(args, fs)); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	if cfg.UploadConcurrency < 0 {
		return fmt.Errorf("parse flags: uploads must not be negative, got %d", cfg.UploadConcurrency)
	}

	return nil
}
