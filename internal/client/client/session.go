package client

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hikariatama/sharder/internal/common"
)

// Session is what the client can learn about a token without the backend.
type Session struct {
	UserID   string `json:"id"`
	Username string `json:"username"`

	// Expires is zero when the token carries no expiry.
	Expires time.Time `json:"-"`
}

// InspectToken reads a session token without verifying its signature; the
// backend remains the authority. Two shapes are understood: a JWT, whose
// claims are read unverified, and the backend's native token, which is
// base64(hmac-sha256 || json{id, username}).
func InspectToken(token string) (*Session, error) {
	token = strings.Trim(strings.TrimSpace(token), `"`)
	if token == "" {
		return nil, fmt.Errorf("%w: empty token", common.ErrInvalidToken)
	}
	if strings.Count(token, ".") == 2 {
		return inspectJWT(token)
	}
	return inspectNative(token)
}

func inspectJWT(token string) (*Session, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidToken, err)
	}

	s := &Session{}
	if sub, err := claims.GetSubject(); err == nil {
		s.UserID = sub
	}
	if name, ok := claims["username"].(string); ok {
		s.Username = name
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidToken, err)
	}
	if exp != nil {
		s.Expires = exp.Time
	}
	return s, nil
}

func inspectNative(token string) (*Session, error) {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidToken, err)
	}
	if len(raw) <= sha256.Size {
		return nil, fmt.Errorf("%w: token too short", common.ErrInvalidToken)
	}

	s := &Session{}
	if err := json.Unmarshal(raw[sha256.Size:], s); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidToken, err)
	}
	if s.UserID == "" || s.Username == "" {
		return nil, fmt.Errorf("%w: missing id or username", common.ErrInvalidToken)
	}
	return s, nil
}

// CheckToken rejects a malformed or expired token locally. An empty token
// is allowed; the backend answers such requests with 403.
func CheckToken(token string, now time.Time) error {
	if token == "" {
		return nil
	}
	s, err := InspectToken(token)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}
	if !s.Expires.IsZero() && !now.Before(s.Expires) {
		return fmt.Errorf("%w: %w", ErrUnauthorized, common.ErrTokenExpired)
	}
	return nil
}
