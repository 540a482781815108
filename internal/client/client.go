// Package client is the typed data access layer over the record store's
// HTTP API. Reads go through an injected Cache; every successful mutation
// invalidates the cached view of its own kind.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"school_planner_backend/pkg/logger"

	"go.uber.org/zap"
)

// Identity is the opaque holder of the caller's session token.
type Identity interface {
	Token() (string, bool)
	Clear() error
}

type Client struct {
	baseURL  string
	http     *http.Client
	identity Identity
	cache    *Cache

	mu       sync.Mutex
	inflight map[Key]bool
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

func New(baseURL string, identity Identity, cache *Cache, opts ...Option) *Client {
	c := &Client{
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		http:     &http.Client{Timeout: 10 * time.Second},
		identity: identity,
		cache:    cache,
		inflight: make(map[Key]bool),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Cache() *Cache {
	return c.cache
}

// envelope mirrors the server's response body.
type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type authMode int

const (
	authRequired authMode = iota
	authOptional
	authNone
)

func (c *Client) do(ctx context.Context, method, path string, auth authMode, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	if auth != authNone {
		token, ok := "", false
		if c.identity != nil {
			token, ok = c.identity.Token()
		}
		switch {
		case ok:
			req.Header.Set("Authorization", "Bearer "+token)
		case auth == authRequired:
			return ErrUnauthenticated
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &RequestError{Method: method, Path: path, Err: err, Transport: true}
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil && !errors.Is(err, io.EOF) {
		if resp.StatusCode >= 300 {
			return &RequestError{Method: method, Path: path, Status: resp.StatusCode, Message: resp.Status}
		}
		return &RequestError{Method: method, Path: path, Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}

	if resp.StatusCode >= 300 {
		logger.Log.Debug("record store request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("message", env.Message))
		return &RequestError{Method: method, Path: path, Status: resp.StatusCode, Message: env.Message}
	}

	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return &RequestError{Method: method, Path: path, Status: resp.StatusCode, Err: fmt.Errorf("decode data: %w", err)}
	}
	return nil
}

// beginMutation claims the single in-flight slot of kind.
func (c *Client) beginMutation(kind Key) (func(), error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inflight[kind] {
		return nil, ErrMutationPending
	}
	c.inflight[kind] = true
	return func() {
		c.mu.Lock()
		delete(c.inflight, kind)
		c.mu.Unlock()
	}, nil
}

// Pending reports whether a mutation of kind is in flight, for disabling inputs.
func (c *Client) Pending(kind Key) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inflight[kind]
}

// mutate runs one write of kind and invalidates kind when it succeeds.
// Writes are never retried.
func (c *Client) mutate(ctx context.Context, kind Key, method, path string, body, out any) error {
	done, err := c.beginMutation(kind)
	if err != nil {
		return err
	}
	defer done()

	if err := c.do(ctx, method, path, authRequired, body, out); err != nil {
		return err
	}
	c.cache.Invalidate(kind)
	return nil
}

// load serves key from the cache or fetches it once.
func load[T any](ctx context.Context, c *Client, key Key, path string, auth authMode) (T, error) {
	if v, ok := cached[T](c.cache, key); ok {
		return v, nil
	}

	gen := c.cache.Generation(key)
	var out T
	if err := c.do(ctx, http.MethodGet, path, auth, nil, &out); err != nil {
		var zero T
		return zero, err
	}
	c.cache.Store(key, gen, out)
	return out, nil
}

// Logout forgets the identity and every cached view.
func (c *Client) Logout() error {
	c.cache.Clear()
	if c.identity == nil {
		return nil
	}
	return c.identity.Clear()
}
