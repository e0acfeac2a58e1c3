package integrations

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/dhvcc/github-contribution-treemap-generator/pkg/cache"
	"github.com/dhvcc/github-contribution-treemap-generator/pkg/httputil"
	"github.com/dhvcc/github-contribution-treemap-generator/pkg/observability"
)

// maxErrorBody limits how much of an error response is kept.
const maxErrorBody = 4 << 10

// Client provides shared HTTP functionality for API clients.
// It handles caching, retry logic, and common request headers.
type Client struct {
	http    *http.Client
	cache   cache.Cache
	ttl     time.Duration
	headers map[string]string
}

// NewClient creates a Client with the given cache, entry TTL and default
// headers. A nil cache disables caching.
func NewClient(c cache.Cache, ttl time.Duration, headers map[string]string) *Client {
	if c == nil {
		c = cache.NewNullCache()
	}
	return &Client{
		http:    NewHTTPClient(0),
		cache:   c,
		ttl:     ttl,
		headers: headers,
	}
}

// SetHTTPClient replaces the underlying HTTP client.
func (c *Client) SetHTTPClient(hc *http.Client) {
	if hc != nil {
		c.http = hc
	}
}

// Cached loads v from the cache under key, or calls fetch and stores the
// JSON encoding of v on success. If refresh is true the cache is not read.
// It reports whether v came from the cache.
func (c *Client) Cached(ctx context.Context, key string, refresh bool, v any, fetch func() error) (bool, error) {
	kind := cache.KeyType(key)
	if !refresh {
		if data, ok, err := c.cache.Get(ctx, key); err == nil && ok {
			if json.Unmarshal(data, v) == nil {
				observability.Cache().OnCacheHit(ctx, kind)
				return true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, kind)
	}
	if err := fetch(); err != nil {
		return false, err
	}
	if data, err := json.Marshal(v); err == nil {
		if c.cache.Set(ctx, key, data, c.ttl) == nil {
			observability.Cache().OnCacheSet(ctx, kind, len(data))
		}
	}
	return false, nil
}

// Get performs an HTTP GET request and JSON-decodes the response into v,
// retrying transient failures.
func (c *Client) Get(ctx context.Context, url string, v any) error {
	return httputil.RetryWithBackoff(ctx, func() error {
		return c.do(ctx, http.MethodGet, url, nil, v)
	})
}

// PostJSON sends body as JSON and decodes the response into v, retrying
// transient failures.
func (c *Client) PostJSON(ctx context.Context, url string, body, v any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	return httputil.RetryWithBackoff(ctx, func() error {
		return c.do(ctx, http.MethodPost, url, payload, v)
	})
}

func (c *Client) do(ctx context.Context, method, url string, payload []byte, v any) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return err
	}
	for k, val := range c.headers {
		req.Header.Set(k, val)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	hooks := observability.HTTP()
	host, path := req.URL.Host, req.URL.Path
	hooks.OnRequest(ctx, method, host, path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, method, host, path, err)
		return transportError(ctx, err)
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, method, host, path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func transportError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return &httputil.RetryableError{Err: fmt.Errorf("%w: %v", ErrTimeout, err)}
	}
	return &httputil.RetryableError{Err: fmt.Errorf("%w: %v", ErrNetwork, err)}
}

// StatusError is a non-2xx response.
type StatusError struct {
	StatusCode int
	Header     http.Header
	Body       string
}

func (e *StatusError) Error() string {
	return "unexpected status " + strconv.Itoa(e.StatusCode)
}

// Unwrap maps 404 to [ErrNotFound] and 5xx to [ErrNetwork].
func (e *StatusError) Unwrap() error {
	switch {
	case e.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case e.StatusCode >= 500:
		return ErrNetwork
	}
	return nil
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	err := &StatusError{StatusCode: resp.StatusCode, Header: resp.Header, Body: string(data)}

	switch {
	case resp.StatusCode >= 500:
		return &httputil.RetryableError{Err: err}
	case resp.StatusCode == http.StatusTooManyRequests:
		return &httputil.RetryableError{Err: err, After: httputil.ParseRetryAfter(resp.Header, time.Now())}
	}
	return err
}
