// Package client talks to the sharder storage backend and bootstraps the
// local SQLite store.
//
// # Overview
//
// The package provides:
//  1. The Client contract used by the transfer pipeline: Upload, ListFiles,
//     FetchContent, Delete and Me.
//  2. HTTPClient, a REST implementation that attaches the auth_token cookie
//     to every request and maps response statuses to sentinel errors.
//  3. HTTPClient.Subscribe, the read-only shard status websocket.
//  4. Session helpers (InspectToken, CheckToken) that reject expired tokens
//     before any request is made.
//  5. Local persistence bootstrap (InitDatabase, RunMigrations) applying the
//     embedded goose migrations.
//
// # Error Handling
//
// ErrUnavailable and ErrUnauthorized both wrap common.ErrNetwork, so callers
// that only care about "the network failed" can match that single sentinel.
package client
