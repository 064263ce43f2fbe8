package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"

	"github.com/hikariatama/sharder/internal/common"
	"golang.org/x/crypto/chacha20"
)

// KeySize is the length in bytes of a derived symmetric key.
const KeySize = chacha20.KeySize

// NonceSize is the length of the nonce that prefixes every envelope.
const NonceSize = chacha20.NonceSize

// Key is a symmetric key derived from a seed.
type Key [KeySize]byte

// DeriveKey hashes the UTF-8 bytes of seed with SHA-256. The same seed always
// yields the same key. The seed is not validated; an empty seed is accepted.
func DeriveKey(seed string) Key {
	return Key(sha256.Sum256([]byte(seed)))
}

// Codec encrypts and decrypts envelopes of the form nonce || ciphertext.
//
// The ciphertext is the plaintext XORed with a ChaCha20 keystream (IETF
// variant, 12-byte nonce, initial counter 0). There is no authentication
// tag: a tampered envelope decrypts to garbage without an error.
//
// A Codec is safe for concurrent use if its random source is.
type Codec struct {
	random io.Reader
}

// NewCodec returns a codec drawing nonces from crypto/rand.
func NewCodec() *Codec {
	return &Codec{random: rand.Reader}
}

// NewCodecWithSource returns a codec drawing nonces from r. Tests use it with
// a seeded generator to make nonce sequences reproducible.
func NewCodecWithSource(r io.Reader) *Codec {
	return &Codec{random: r}
}

// Encrypt seals plaintext under key with a fresh random nonce. The returned
// envelope is exactly NonceSize bytes longer than plaintext.
func (c *Codec) Encrypt(key Key, plaintext []byte) ([]byte, error) {
	envelope := make([]byte, NonceSize+len(plaintext))

	nonce := envelope[:NonceSize]
	if _, err := io.ReadFull(c.random, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	stream, err := chacha20.NewUnauthenticatedCipher(key[:], nonce)
	if err != nil {
		return nil, err
	}
	stream.XORKeyStream(envelope[NonceSize:], plaintext)

	return envelope, nil
}

// Decrypt opens an envelope produced by Encrypt. Envelopes shorter than
// NonceSize fail with common.ErrDecode.
func (c *Codec) Decrypt(key Key, envelope []byte) ([]byte, error) {
	if len(envelope) < NonceSize {
		return nil, fmt.Errorf("%w: envelope is %d bytes, need at least %d", common.ErrDecode, len(envelope), NonceSize)
	}

	nonce, ciphertext := envelope[:NonceSize], envelope[NonceSize:]

	stream, err := chacha20.NewUnauthenticatedCipher(key[:], nonce)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrDecode, err)
	}

	plaintext := make([]byte, len(ciphertext))
	stream.XORKeyStream(plaintext, ciphertext)

	return plaintext, nil
}
