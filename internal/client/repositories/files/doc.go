// Package files caches the last successfully fetched file listing so the
// catalogue can still be shown while the backend is unreachable.
package files
