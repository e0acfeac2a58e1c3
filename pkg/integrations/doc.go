// Package integrations provides the HTTP plumbing shared by API clients.
//
// [Client] wraps an [http.Client] with default headers, JSON encoding,
// retries through [httputil.RetryWithBackoff] and a [cache.Cache] for
// decoded results. The GitHub GraphQL client in the [github] subpackage is
// built on it.
//
// # Errors
//
// Transport failures are wrapped in [ErrNetwork] or [ErrTimeout] and marked
// retryable. Non-2xx responses become a [StatusError] that keeps the status
// code and headers, so callers can tell a bad token from a rate limit. 5xx
// and 429 responses are retried; everything else is returned at once.
//
// [github]: github.com/dhvcc/github-contribution-treemap-generator/pkg/integrations/github
// [cache.Cache]: github.com/dhvcc/github-contribution-treemap-generator/pkg/cache.Cache
// [httputil.RetryWithBackoff]: github.com/dhvcc/github-contribution-treemap-generator/pkg/httputil.RetryWithBackoff
package integrations
