// Package cli provides the interactive sharder command-line client.
//
// It wires configuration, the local store, the backend client and the
// services into a REPL. Transfers run in the background so the prompt stays
// responsive; the prompt shows what is in flight and whether the storage
// backend is degraded.
//
// Commands:
//   - list, open <id>, show, save [path], delete <id>, link <id>
//   - upload <path>...
//   - shards
//   - seed, token [value], whoami, logout
//   - help, exit
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
