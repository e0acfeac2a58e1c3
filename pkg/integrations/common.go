package integrations

import (
	"errors"
	"net/http"
	"time"
)

// DefaultTimeout bounds a single HTTP request.
const DefaultTimeout = 30 * time.Second

var (
	// ErrNotFound is returned for 404 responses.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (connection errors, 5xx responses).
	ErrNetwork = errors.New("network error")

	// ErrTimeout is returned when a request exceeds the HTTP client timeout.
	ErrTimeout = errors.New("request timed out")
)

// NewHTTPClient creates an HTTP client with the given timeout, or
// [DefaultTimeout] when timeout is not positive.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}
