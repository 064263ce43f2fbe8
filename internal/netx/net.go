// Package netx holds URL and response helpers for the backend transport.
package netx

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// maxErrorBody bounds how much of a failed response ends up in an error.
const maxErrorBody = 512

// JoinURL appends path elements to base, escaping each element.
func JoinURL(base string, elem ...string) (string, error) {
	escaped := make([]string, len(elem))
	for i, e := range elem {
		escaped[i] = url.PathEscape(e)
	}
	u, err := url.JoinPath(base, escaped...)
	if err != nil {
		return "", fmt.Errorf("join %q: %w", base, err)
	}
	return u, nil
}

// ToWebsocketURL rewrites an http(s) URL to the matching ws(s) scheme.
func ToWebsocketURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse %q: %w", raw, err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	return u.String(), nil
}

// ErrorBody reads a bounded, trimmed excerpt of a response body for error
// messages. The body is not closed.
func ErrorBody(resp *http.Response) string {
	if resp == nil || resp.Body == nil {
		return ""
	}
	b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return strings.TrimSpace(string(b))
}
