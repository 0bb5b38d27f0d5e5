package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/hashpool/poolkit/core/localstore"
	"github.com/hashpool/poolkit/pkg/logger"
)

// TokenSource supplies the bearer token at dispatch time. Implementations
// must be read-only: only the session store writes the token.
type TokenSource interface {
	// Token returns the current bearer token, or "" when no session exists.
	Token(ctx context.Context) (string, error)
}

// TokenSourceFunc adapts a function to the TokenSource interface.
type TokenSourceFunc func(ctx context.Context) (string, error)

func (f TokenSourceFunc) Token(ctx context.Context) (string, error) { return f(ctx) }

// StorageTokenSource reads the token from durable storage under key.
// A missing key means "no session", not an error.
func StorageTokenSource(store localstore.Store, key string) TokenSource {
	return TokenSourceFunc(func(ctx context.Context) (string, error) {
		token, err := store.Get(ctx, key)
		if errors.Is(err, localstore.ErrKeyNotFound) {
			return "", nil
		}
		return token, err
	})
}

// Client talks to the mining-pool dashboard API. All endpoint groups
// (auth, mining) hang off this one type; it owns bearer injection and the
// 401 teardown hook.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	logger     *slog.Logger

	mu             sync.RWMutex
	onUnauthorized func()
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTokenSource sets where bearer tokens are read from at dispatch time.
// Without one, all requests go out unauthenticated.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) {
		if ts != nil {
			c.tokens = ts
		}
	}
}

// WithLogger configures structured logging.
// Use slog.New(slog.NewTextHandler(io.Discard, nil)) to disable logging.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.logger = log
		}
	}
}

// WithUnauthorizedHandler sets the hook invoked on any 401 response.
func WithUnauthorizedHandler(fn func()) Option {
	return func(c *Client) {
		c.onUnauthorized = fn
	}
}

// New creates an API client for the given base URL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// SetUnauthorizedHandler replaces the 401 hook. The session store is built
// after the client (it authenticates through it), so the hook is wired in
// a second step.
func (c *Client) SetUnauthorizedHandler(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauthorized = fn
}

func (c *Client) unauthorized() {
	c.mu.RLock()
	fn := c.onUnauthorized
	c.mu.RUnlock()
	if fn != nil {
		fn()
	}
}

// do issues a JSON request and decodes the response into out (when non-nil).
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Join(ErrTransport, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := c.newRequest(ctx, method, path, query, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, out)
}

// postForm issues a form-encoded POST. The login endpoint is the only
// form-encoded call in the API; everything else is JSON.
func (c *Client) postForm(ctx context.Context, path string, form url.Values, out any) error {
	req, err := c.newRequest(ctx, http.MethodPost, path, nil, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return c.send(req, out)
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, errors.Join(ErrTransport, err)
	}

	if c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return nil, errors.Join(ErrTransport, err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	return req, nil
}

func (c *Client) send(req *http.Request, out any) error {
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("request failed",
			logger.Method(req.Method), logger.Path(req.URL.Path), logger.Error(err))
		return errors.Join(ErrTransport, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Join(ErrTransport, err)
	}

	c.logger.Debug("request completed",
		logger.Method(req.Method),
		logger.Path(req.URL.Path),
		logger.StatusCode(resp.StatusCode),
		logger.Elapsed(start))

	if resp.StatusCode >= 400 {
		apiErr := &APIError{Status: resp.StatusCode}
		// Error bodies are {"detail": "..."}; anything else stays generic.
		_ = json.Unmarshal(data, apiErr)

		if resp.StatusCode == http.StatusUnauthorized {
			c.unauthorized()
			return errors.Join(ErrUnauthorized, apiErr)
		}
		return apiErr
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return errors.Join(ErrTransport, err)
		}
	}
	return nil
}
