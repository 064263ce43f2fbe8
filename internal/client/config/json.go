package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/hikariatama/sharder/internal/flagx"
	"github.com/hikariatama/sharder/internal/timex"
	"github.com/tidwall/jsonc"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer and
// zero-value fields left out of the file keep their current Config value.
// Durations accept strings like "3s" or integer nanoseconds.
type JsonConfig struct {
	BackendURL        string          `json:"backend_url"`
	FrontendURL       string          `json:"frontend_url"`
	DatabaseDSN       string          `json:"database_dsn"`
	RequestTimeout    *timex.Duration `json:"request_timeout"`
	ReconnectInterval *timex.Duration `json:"reconnect_interval"`
	UploadConcurrency int             `json:"upload_concurrency"`
	LogLevel          string          `json:"log_level"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c/--config. Comments and trailing commas are allowed in the file.
// Without the flag it leaves cfg untouched.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(jsonc.ToJSON(data), &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if jc.BackendURL != "" {
		cfg.BackendURL = jc.BackendURL
	}
	if jc.FrontendURL != "" {
		cfg.FrontendURL = jc.FrontendURL
	}
	if jc.DatabaseDSN != "" {
		cfg.DatabaseDSN = jc.DatabaseDSN
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.ReconnectInterval != nil {
		cfg.ReconnectInterval = jc.ReconnectInterval.Duration
	}
	if jc.UploadConcurrency > 0 {
		cfg.UploadConcurrency = jc.UploadConcurrency
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}

	return nil
}
