package github

import (
	"context"
	stderrors "errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dhvcc/github-contribution-treemap-generator/pkg/buildinfo"
	"github.com/dhvcc/github-contribution-treemap-generator/pkg/cache"
	"github.com/dhvcc/github-contribution-treemap-generator/pkg/errors"
	"github.com/dhvcc/github-contribution-treemap-generator/pkg/httputil"
	"github.com/dhvcc/github-contribution-treemap-generator/pkg/integrations"
)

const (
	// DefaultEndpoint is the GitHub GraphQL API.
	DefaultEndpoint = "https://api.github.com/graphql"

	// PageSize is the number of search results requested per page.
	PageSize = 100

	// MaxPages caps pagination. GitHub search returns at most 1000 results.
	MaxPages = 10
)

// Client queries the GitHub GraphQL API for merged pull requests.
type Client struct {
	*integrations.Client
	endpoint string
	keyer    cache.Keyer
	hasToken bool
}

// Option configures a [Client].
type Option func(*Client)

// WithEndpoint overrides the GraphQL endpoint.
func WithEndpoint(url string) Option { return func(c *Client) { c.endpoint = url } }

// WithKeyer sets the cache key scheme (default [cache.DefaultKeyer]).
func WithKeyer(k cache.Keyer) Option {
	return func(c *Client) {
		if k != nil {
			c.keyer = k
		}
	}
}

// WithHTTPClient replaces the HTTP client, for example to change the timeout.
func WithHTTPClient(hc *http.Client) Option { return func(c *Client) { c.SetHTTPClient(hc) } }

// NewClient creates a GitHub API client. Results are cached in c for ttl;
// a nil cache disables caching. The GraphQL API requires a token.
func NewClient(token string, c cache.Cache, ttl time.Duration, opts ...Option) *Client {
	headers := map[string]string{
		"Accept":     "application/vnd.github+json",
		"User-Agent": buildinfo.UserAgent(),
	}
	if token != "" {
		headers["Authorization"] = "Bearer " + token
	}

	client := &Client{
		Client:   integrations.NewClient(c, ttl, headers),
		endpoint: DefaultEndpoint,
		keyer:    cache.NewDefaultKeyer(),
		hasToken: token != "",
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// FetchResult is the outcome of [Client.FetchMergedPRs].
type FetchResult struct {
	PullRequests []PullRequest
	// Total is the number of matches GitHub reported, which may exceed
	// len(PullRequests) when the page cap was reached.
	Total    int
	CacheHit bool
}

type cachedPRs struct {
	PullRequests []PullRequest `json:"pull_requests"`
	Total        int           `json:"total"`
}

// FetchMergedPRs returns every merged pull request authored by user, up to
// [MaxPages] pages. If refresh is true the cache is bypassed.
func (c *Client) FetchMergedPRs(ctx context.Context, user string, refresh bool) (*FetchResult, error) {
	user = NormalizeLogin(user)
	if err := ValidateLogin(user); err != nil {
		return nil, err
	}
	if err := c.requireToken(); err != nil {
		return nil, err
	}

	var data cachedPRs
	hit, err := c.Cached(ctx, c.keyer.PRKey(user), refresh, &data, func() error {
		return c.fetchAll(ctx, user, &data)
	})
	if err != nil {
		return nil, classify(err, user)
	}
	return &FetchResult{PullRequests: data.PullRequests, Total: data.Total, CacheHit: hit}, nil
}

func (c *Client) fetchAll(ctx context.Context, user string, out *cachedPRs) error {
	*out = cachedPRs{}
	vars := map[string]any{
		"q":     "author:" + user + " is:pr is:merged",
		"first": PageSize,
	}

	for range MaxPages {
		var resp searchResponse
		if err := c.PostJSON(ctx, c.endpoint, graphQLRequest{Query: searchQuery, Variables: vars}, &resp); err != nil {
			return err
		}
		if err := graphQLErrors(resp.Errors); err != nil {
			return err
		}

		s := resp.Data.Search
		out.Total = s.IssueCount
		for _, n := range s.Nodes {
			if pr, ok := n.toPullRequest(); ok {
				out.PullRequests = append(out.PullRequests, pr)
			}
		}
		if !s.PageInfo.HasNextPage || s.PageInfo.EndCursor == "" {
			return nil
		}
		vars["after"] = s.PageInfo.EndCursor
	}
	return nil
}

func (n prNode) toPullRequest() (PullRequest, bool) {
	if n.Repository == nil {
		return PullRequest{}, false
	}
	r := n.Repository
	return PullRequest{
		Number:   n.Number,
		Title:    n.Title,
		URL:      n.URL,
		MergedAt: n.MergedAt,
		Repository: Repository{
			NameWithOwner: r.NameWithOwner,
			Name:          r.Name,
			Owner:         r.Owner.Login,
			Stars:         r.StargazerCount,
			IsPrivate:     r.IsPrivate,
			IsFork:        r.IsFork,
		},
	}, true
}

// FetchViewer returns the login of the token's owner.
func (c *Client) FetchViewer(ctx context.Context) (string, error) {
	if err := c.requireToken(); err != nil {
		return "", err
	}
	var resp viewerResponse
	if err := c.PostJSON(ctx, c.endpoint, graphQLRequest{Query: viewerQuery}, &resp); err != nil {
		return "", classify(err, "")
	}
	if err := graphQLErrors(resp.Errors); err != nil {
		return "", classify(err, "")
	}
	if resp.Data.Viewer.Login == "" {
		return "", errors.New(errors.ErrCodeUnauthorized, "GitHub did not return a user for this token")
	}
	return resp.Data.Viewer.Login, nil
}

func (c *Client) requireToken() error {
	if !c.hasToken {
		return errors.New(errors.ErrCodeUnauthorized, "GitHub token is missing: set GITHUB_TOKEN or pass --token")
	}
	return nil
}

// apiError is a GraphQL error returned with a 200 response.
type apiError struct {
	errs []graphQLError
}

func (e *apiError) Error() string {
	msgs := make([]string, len(e.errs))
	for i, ge := range e.errs {
		msgs[i] = ge.Message
	}
	return strings.Join(msgs, "; ")
}

func (e *apiError) hasType(t string) bool {
	for _, ge := range e.errs {
		if ge.Type == t {
			return true
		}
	}
	return false
}

func graphQLErrors(errs []graphQLError) error {
	if len(errs) == 0 {
		return nil
	}
	return &apiError{errs: errs}
}

// classify maps transport, HTTP and GraphQL failures to coded errors with
// messages fit for users.
func classify(err error, user string) error {
	if err == nil || errors.GetCode(err) != "" {
		return err
	}
	if stderrors.Is(err, context.Canceled) {
		return err
	}
	if stderrors.Is(err, context.DeadlineExceeded) || stderrors.Is(err, integrations.ErrTimeout) {
		return errors.Wrap(errors.ErrCodeTimeout, err, "timed out waiting for GitHub")
	}

	var se *integrations.StatusError
	if stderrors.As(err, &se) {
		return classifyStatus(se, user)
	}

	var ae *apiError
	if stderrors.As(err, &ae) {
		switch {
		case ae.hasType("NOT_FOUND"), strings.Contains(ae.Error(), "cannot be searched"):
			return errors.Wrap(errors.ErrCodeNotFound, err, "GitHub user %q not found", user)
		case ae.hasType("RATE_LIMITED"):
			return &errors.RateLimitedError{}
		case ae.hasType("FORBIDDEN"):
			return errors.Wrap(errors.ErrCodeForbidden, err, "GitHub token lacks access: %s", ae.Error())
		}
		return errors.Wrap(errors.ErrCodeInternal, err, "GitHub API error: %s", ae.Error())
	}

	if stderrors.Is(err, integrations.ErrNetwork) {
		return errors.Wrap(errors.ErrCodeNetwork, err, "could not reach GitHub")
	}
	return errors.Wrap(errors.ErrCodeInternal, err, "unexpected GitHub response")
}

func classifyStatus(se *integrations.StatusError, user string) error {
	switch {
	case se.StatusCode == http.StatusUnauthorized:
		return errors.Wrap(errors.ErrCodeUnauthorized, se, "GitHub token is missing or invalid")
	case se.StatusCode == http.StatusTooManyRequests, isRateLimited(se):
		return rateLimited(se.Header)
	case se.StatusCode == http.StatusForbidden:
		return errors.Wrap(errors.ErrCodeForbidden, se, "GitHub token lacks the required permissions")
	case se.StatusCode == http.StatusNotFound:
		return errors.Wrap(errors.ErrCodeNotFound, se, "GitHub user %q not found", user)
	case se.StatusCode >= 500:
		return errors.Wrap(errors.ErrCodeNetwork, se, "GitHub is unavailable (status %d)", se.StatusCode)
	}
	return errors.Wrap(errors.ErrCodeInternal, se, "unexpected GitHub response (status %d)", se.StatusCode)
}

func isRateLimited(se *integrations.StatusError) bool {
	return se.StatusCode == http.StatusForbidden &&
		(se.Header.Get("X-RateLimit-Remaining") == "0" || se.Header.Get("Retry-After") != "")
}

func rateLimited(h http.Header) *errors.RateLimitedError {
	e := &errors.RateLimitedError{RetryAfter: httputil.ParseRetryAfter(h, time.Now())}
	if reset, err := strconv.ParseInt(h.Get("X-RateLimit-Reset"), 10, 64); err == nil && reset > 0 {
		e.ResetAt = time.Unix(reset, 0)
	}
	return e
}
