// Package httputil provides retry helpers for the GitHub API client.
//
// # Retry
//
// [Retry] runs an operation up to a fixed number of times with exponential
// backoff. Only errors wrapped in [RetryableError] are retried: transport
// failures, 5xx responses and rate limits. Anything else is returned at once.
//
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    resp, err := client.Do(req)
//	    if err != nil {
//	        return &httputil.RetryableError{Err: err}
//	    }
//	    ...
//	})
//
// A [RetryableError] may carry the server's Retry-After hint, which replaces
// the backoff delay for that attempt. [ParseRetryAfter] reads the header.
//
// Defaults for [RetryWithBackoff]: 3 attempts, 1 second initial delay,
// doubling after each failure, at most [MaxRetryAfter] when the server asks
// for longer.
package httputil
