package config

import (
	"time"
)

// Config holds runtime settings for the sharder CLI.
//
// Fields:
//   - BackendURL: base URL of the backend API; the shard channel is derived
//     from it by switching the scheme to ws/wss.
//   - FrontendURL: base URL used to build shareable file links.
//   - DatabaseDSN: SQLite DSN of the local store (seed, session, file cache).
//   - RequestTimeout: HTTP transport timeout; 0 leaves requests unbounded.
//   - ReconnectInterval: pause before re-subscribing to the shard channel.
//   - UploadConcurrency: maximum files of one batch in flight at once; 0
//     starts every file of a batch immediately.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	BackendURL        string
	FrontendURL       string
	DatabaseDSN       string
	RequestTimeout    time.Duration
	ReconnectInterval time.Duration
	UploadConcurrency int
	LogLevel          string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BackendURL = "http://127.0.0.1:8000/api"
	c.FrontendURL = "http://127.0.0.1:3000"
	c.DatabaseDSN = "sharder.db"
	c.RequestTimeout = 0
	c.ReconnectInterval = 3 * time.Second
	c.UploadConcurrency = 0
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones. args excludes the program name.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
