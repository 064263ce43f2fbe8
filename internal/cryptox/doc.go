// Package cryptox implements the client-side envelope encryption.
//
// Keys are derived from a user seed with DeriveKey. Codec turns plaintext
// into self-describing envelopes (a 12-byte random nonce followed by the
// ChaCha20 ciphertext) and back. Ciphertext length equals plaintext length.
//
// The envelope format carries no integrity tag. Integrity of stored content
// is the backend's concern (it keeps an HMAC per file); the client cannot
// detect tampering.
package cryptox
