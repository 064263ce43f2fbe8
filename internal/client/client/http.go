package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/hikariatama/sharder/internal/client/models"
	"github.com/hikariatama/sharder/internal/common"
	"github.com/hikariatama/sharder/internal/netx"
)

// HTTPClient is the REST implementation of Client. It is safe for
// concurrent use.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	dialer  *websocket.Dialer
	now     func() time.Time

	mu    sync.RWMutex
	token string
}

var (
	_ Client          = (*HTTPClient)(nil)
	_ ShardSubscriber = (*HTTPClient)(nil)
)

// NewHTTPClient builds a client for baseURL (for example
// "http://127.0.0.1:8000/api"). A zero timeout means no timeout.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		dialer: &websocket.Dialer{
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: 45 * time.Second,
		},
		now: time.Now,
	}
}

func (c *HTTPClient) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *HTTPClient) currentToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// authHeader returns the cookie header for the stored token, or an error
// when the token is locally known to be unusable.
func (c *HTTPClient) authHeader() (http.Header, error) {
	h := http.Header{}
	token := c.currentToken()
	if err := CheckToken(token, c.now()); err != nil {
		return nil, err
	}
	if token != "" {
		h.Set("Cookie", (&http.Cookie{Name: common.AuthCookieName, Value: token}).String())
	}
	return h, nil
}

func (c *HTTPClient) newRequest(ctx context.Context, method string, body io.Reader, elem ...string) (*http.Request, error) {
	u, err := netx.JoinURL(c.baseURL, elem...)
	if err != nil {
		return nil, err
	}
	auth, err := c.authHeader()
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}
	for k, v := range auth {
		req.Header[k] = v
	}
	return req, nil
}

// do sends req and returns the response only when the status is 2xx.
func (c *HTTPClient) do(req *http.Request) (*http.Response, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := req.Context().Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if err := mapStatus(resp); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return resp, nil
}

func mapStatus(resp *http.Response) error {
	code := resp.StatusCode
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusUnauthorized, code == http.StatusForbidden:
		return ErrUnauthorized
	case code == http.StatusNotFound:
		return fmt.Errorf("%w: %w", common.ErrNetwork, common.ErrorNotFound)
	case code >= 500:
		return fmt.Errorf("%w: %s", ErrUnavailable, resp.Status)
	default:
		return fmt.Errorf("%w: unexpected status %s: %s", common.ErrNetwork, resp.Status, netx.ErrorBody(resp))
	}
}

// Upload submits envelope as a multipart attachment named "file" carrying
// the original filename and returns the identifier the backend assigned.
func (c *HTTPClient) Upload(ctx context.Context, name string, envelope []byte) (string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", name)
	if err != nil {
		return "", err
	}
	if _, err := part.Write(envelope); err != nil {
		return "", err
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	req, err := c.newRequest(ctx, http.MethodPost, &body, "upload")
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var out struct {
		ULID string `json:"ulid"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: decode upload response: %w", common.ErrNetwork, err)
	}
	if out.ULID == "" {
		return "", fmt.Errorf("%w: upload response has no id", common.ErrNetwork)
	}
	return out.ULID, nil
}

func (c *HTTPClient) ListFiles(ctx context.Context) ([]models.FileRecord, error) {
	req, err := c.newRequest(ctx, http.MethodGet, nil, "files")
	if err != nil {
		return nil, err
	}
	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	records := []models.FileRecord{}
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("%w: decode listing: %w", common.ErrNetwork, err)
	}
	return records, nil
}

// FetchContent returns the raw envelope stored under id.
func (c *HTTPClient) FetchContent(ctx context.Context, id string) ([]byte, error) {
	req, err := c.newRequest(ctx, http.MethodGet, nil, "files", id)
	if err != nil {
		return nil, err
	}
	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: read body: %w", common.ErrNetwork, err)
	}
	return data, nil
}

func (c *HTTPClient) Delete(ctx context.Context, id string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, nil, "files", id)
	if err != nil {
		return err
	}
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// Me asks the backend who the current token belongs to.
func (c *HTTPClient) Me(ctx context.Context) (*Session, error) {
	req, err := c.newRequest(ctx, http.MethodGet, nil, "me")
	if err != nil {
		return nil, err
	}
	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	s := &Session{}
	if err := json.NewDecoder(resp.Body).Decode(s); err != nil {
		return nil, fmt.Errorf("%w: decode session: %w", common.ErrNetwork, err)
	}
	if s.Username == "" {
		return nil, ErrUnauthorized
	}
	return s, nil
}
