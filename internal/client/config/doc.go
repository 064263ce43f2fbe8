// Package config loads runtime configuration for the sharder CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via -c or --config.
//     Comments are allowed.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// # JSON schema
//
//	{
//	  // backend API, the shard websocket lives at <backend_url>/shards
//	  "backend_url": "http://127.0.0.1:8000/api",
//	  "frontend_url": "http://127.0.0.1:3000",
//	  "database_dsn": "sharder.db",
//	  "request_timeout": "0s",
//	  "reconnect_interval": "3s",
//	  "upload_concurrency": 0,
//	  "log_level": "info"
//	}
//
// This package does not read environment variables.
package config
