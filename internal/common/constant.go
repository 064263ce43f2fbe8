// Package common contains shared constants and sentinel errors used across
// sharder components.
package common

// AuthCookieName is the cookie that carries the session token on every
// backend request, including the shard status websocket handshake.
const AuthCookieName = "auth_token"

// SeedMetadataKey is the local metadata key holding the encryption seed.
const SeedMetadataKey = "seed"

// TokenMetadataKey is the local metadata key holding the session token.
const TokenMetadataKey = "auth_token"
