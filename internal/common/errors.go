// Package common defines shared constants and sentinel errors used across
// the client layers of sharder. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// ErrNetwork marks a rejected request or a non-success response status.
	ErrNetwork = errors.New("network failure")

	// ErrSuperseded marks work invalidated by a newer operation of the same
	// kind. It is swallowed inside the transfer pipeline.
	ErrSuperseded = errors.New("superseded by a newer operation")

	// ErrDecode marks a malformed envelope or a content classification failure.
	ErrDecode = errors.New("decode failure")

	// Auth errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
