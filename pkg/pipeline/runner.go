package pipeline

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/samber/lo"

	"github.com/dhvcc/github-contribution-treemap-generator/pkg/cache"
	"github.com/dhvcc/github-contribution-treemap-generator/pkg/contrib"
	"github.com/dhvcc/github-contribution-treemap-generator/pkg/errors"
	"github.com/dhvcc/github-contribution-treemap-generator/pkg/integrations/github"
	"github.com/dhvcc/github-contribution-treemap-generator/pkg/observability"
	"github.com/dhvcc/github-contribution-treemap-generator/pkg/render/treemap/layout"
)

// Fetcher loads a user's merged pull requests. [github.Client] implements it.
type Fetcher interface {
	FetchMergedPRs(ctx context.Context, user string, refresh bool) (*github.FetchResult, error)
}

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use it to avoid duplicating caching logic.
//
// The Runner holds no per-run state, so multiple goroutines can safely use
// the same Runner with different options.
type Runner struct {
	Fetcher Fetcher
	Cache   cache.Cache
	Keyer   cache.Keyer
	Logger  *log.Logger

	// TTL applies to cached artifacts. Zero uses DefaultCacheTTL.
	TTL time.Duration
}

// NewRunner creates a runner.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(f Fetcher, c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Fetcher: f,
		Cache:   c,
		Keyer:   keyer,
		Logger:  logger,
		TTL:     DefaultCacheTTL,
	}
}

// Execute runs the complete fetch → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := opts.Logger

	result := &Result{}

	// Stage 1: Fetch
	fetchStart := time.Now()
	repos, err := r.fetch(ctx, opts, result)
	if err != nil {
		return nil, err
	}
	result.Stats.FetchTime = time.Since(fetchStart)

	logger.Info("fetched contributions",
		"prs", result.Stats.PullRequests,
		"repos", len(repos),
		"cached", result.CacheInfo.FetchHit,
		"duration", result.Stats.FetchTime)

	// Stage 2: Filter and layout
	repos = contrib.Filter(repos, opts.FilterOptions())
	result.Repos = repos
	result.ReposHash = reposHash(repos)
	result.Stats.Repos = len(repos)
	result.Stats.Contributions = contrib.TotalContribs(repos)

	layoutStart := time.Now()
	result.Leaves = r.ComputeLayout(ctx, repos, opts)
	result.Stats.LayoutTime = time.Since(layoutStart)

	logger.Debug("computed layout",
		"cells", len(result.Leaves),
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, result.Leaves, result.ReposHash, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	logger.Debug("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// fetch returns the aggregated repositories, either from opts.Repos or from
// the Fetcher.
func (r *Runner) fetch(ctx context.Context, opts Options, result *Result) ([]contrib.Repo, error) {
	if opts.Repos != nil {
		repos := slices.Clone(opts.Repos)
		slices.SortStableFunc(repos, contrib.Less)
		return repos, nil
	}
	if r.Fetcher == nil {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "no pull request source configured")
	}

	hooks := observability.Pipeline()
	hooks.OnFetchStart(ctx, opts.User)
	start := time.Now()

	res, err := r.Fetcher.FetchMergedPRs(ctx, opts.User, opts.Refresh)
	if err != nil {
		hooks.OnFetchComplete(ctx, opts.User, 0, time.Since(start), err)
		return nil, err
	}
	hooks.OnFetchComplete(ctx, opts.User, len(res.PullRequests), time.Since(start), nil)

	result.Stats.PullRequests = len(res.PullRequests)
	result.CacheInfo.FetchHit = res.CacheHit
	if res.Total > len(res.PullRequests) {
		result.Stats.Truncated = true
		opts.Logger.Warn("search results truncated",
			"total", res.Total,
			"fetched", len(res.PullRequests))
	}

	return contrib.Aggregate(RawRepos(res.PullRequests)), nil
}

// ComputeLayout tiles the canvas of opts with repos.
func (r *Runner) ComputeLayout(ctx context.Context, repos []contrib.Repo, opts Options) []layout.Rect {
	opts.SetDefaults()

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, len(repos))
	start := time.Now()

	l := layout.Compute(contrib.Items(repos), float64(opts.Width), float64(opts.Height))

	hooks.OnLayoutComplete(ctx, l.Len(), time.Since(start))
	return l.Leaves()
}

// RenderWithCacheInfo renders every requested format, serving them from the
// cache when all of them are present. It reports whether the cache was used.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, leaves []layout.Rect, hash string, opts Options) (map[string][]byte, bool, error) {
	opts.SetDefaults()
	formats := lo.Uniq(opts.Formats)
	c, keyer := r.cache(), r.keyer()

	// Try to get all formats from cache
	if !opts.Refresh {
		artifacts := make(map[string][]byte, len(formats))
		for _, format := range formats {
			data, hit, err := c.Get(ctx, keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format)))
			if err != nil || !hit {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(formats) {
			observability.Cache().OnCacheHit(ctx, cache.KeyTypeArtifact)
			return artifacts, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, cache.KeyTypeArtifact)
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, formats)
	start := time.Now()

	rendered, err := Render(leaves, opts)
	hooks.OnRenderComplete(ctx, formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	ttl := r.TTL
	if ttl == 0 {
		ttl = DefaultCacheTTL
	}
	for format, data := range rendered {
		key := keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
		if err := c.Set(ctx, key, data, ttl); err != nil {
			opts.Logger.Debug("cache write failed", "format", format, "err", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, cache.KeyTypeArtifact, len(data))
	}

	return rendered, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) cache() cache.Cache {
	if r.Cache == nil {
		return cache.NewNullCache()
	}
	return r.Cache
}

func (r *Runner) keyer() cache.Keyer {
	if r.Keyer == nil {
		return cache.NewDefaultKeyer()
	}
	return r.Keyer
}
