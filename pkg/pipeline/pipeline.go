// Package pipeline turns a GitHub user's merged pull requests into rendered
// treemaps.
//
// The CLI and the HTTP server both run the same three stages through a
// [Runner], so flags, query parameters and caching behave identically:
//
//  1. Fetch: load merged pull requests and aggregate them per repository
//  2. Layout: filter the repositories and tile the canvas
//  3. Render: produce SVG, PNG or JSON artifacts
//
// # Usage
//
//	runner := pipeline.NewRunner(client, c, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    User:    "octocat",
//	    Formats: []string{"svg"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/dhvcc/github-contribution-treemap-generator/pkg/cache"
	"github.com/dhvcc/github-contribution-treemap-generator/pkg/contrib"
	"github.com/dhvcc/github-contribution-treemap-generator/pkg/errors"
	"github.com/dhvcc/github-contribution-treemap-generator/pkg/integrations/github"
	"github.com/dhvcc/github-contribution-treemap-generator/pkg/render/treemap/layout"
	"github.com/dhvcc/github-contribution-treemap-generator/pkg/render/treemap/sink"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultWidth is the default canvas width in pixels.
	DefaultWidth = sink.DefaultWidth

	// DefaultHeight is the default canvas height in pixels.
	DefaultHeight = sink.DefaultHeight

	// DefaultScale is the default PNG scale factor.
	DefaultScale = 2.0

	// DefaultCacheTTL is how long fetched pull requests and rendered
	// artifacts are kept.
	DefaultCacheTTL = 24 * time.Hour
)

// Format constants for output formats.
const (
	FormatSVG  = errors.FormatSVG
	FormatPNG  = errors.FormatPNG
	FormatJSON = errors.FormatJSON
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Fetch options
	User    string         `json:"user,omitempty"`
	Repos   []contrib.Repo `json:"repos,omitempty"` // used instead of fetching when non-nil
	Refresh bool           `json:"refresh,omitempty"`

	// Filter options
	Exclude        []string `json:"exclude,omitempty"`
	MinStars       uint     `json:"min_stars,omitempty"`
	MaxRepos       int      `json:"max_repos,omitempty"`
	IncludeOwn     bool     `json:"include_own,omitempty"`
	IncludePrivate bool     `json:"include_private,omitempty"`

	// Layout and render options
	Width   int         `json:"width,omitempty"`
	Height  int         `json:"height,omitempty"`
	Formats []string    `json:"formats,omitempty"`
	Scale   float64     `json:"scale,omitempty"`
	Theme   sink.Config `json:"theme,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Repos are the repositories that were laid out, largest first.
	Repos []contrib.Repo

	// ReposHash is the content hash of Repos.
	ReposHash string

	// Leaves are the tiles, in the order they are drawn.
	Leaves []layout.Rect

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	PullRequests  int
	Repos         int
	Contributions uint
	// Truncated is set when GitHub reported more matches than were fetched.
	Truncated  bool
	FetchTime  time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	FetchHit  bool // Whether pull requests came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults applies defaults and validates the options.
// Calling it more than once has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetDefaults()
	if err := o.Validate(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetDefaults fills unset fields. The canvas falls back to the theme's size
// and then to [DefaultWidth] x [DefaultHeight].
func (o *Options) SetDefaults() {
	o.User = github.NormalizeLogin(o.User)
	if o.Width == 0 {
		o.Width = o.Theme.Width
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = o.Theme.Height
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate checks the options without changing them.
func (o *Options) Validate() error {
	if o.Repos == nil {
		if err := github.ValidateLogin(o.User); err != nil {
			return err
		}
	}
	if err := errors.ValidateDimensions(o.Width, o.Height); err != nil {
		return err
	}
	for _, f := range o.Formats {
		if err := errors.ValidateFormat(f); err != nil {
			return err
		}
	}
	for _, p := range o.Exclude {
		if err := errors.ValidateExcludePattern(p); err != nil {
			return err
		}
	}
	if o.MaxRepos < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "max repos must not be negative, got %d", o.MaxRepos)
	}
	if o.Scale < 0 || o.Scale > sink.MaxScale || math.IsNaN(o.Scale) {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be between 0 and %g, got %g", sink.MaxScale, o.Scale)
	}
	return nil
}

// FilterOptions returns the repository filter for this run.
func (o *Options) FilterOptions() contrib.FilterOptions {
	return contrib.FilterOptions{
		User:           o.User,
		IncludeOwn:     o.IncludeOwn,
		IncludePrivate: o.IncludePrivate,
		Exclude:        o.Exclude,
		MinStars:       o.MinStars,
		MaxRepos:       o.MaxRepos,
	}
}

// RenderConfig returns the theme with the canvas size of this run.
func (o *Options) RenderConfig() sink.Config {
	cfg := o.Theme
	cfg.Width = o.Width
	cfg.Height = o.Height
	return cfg
}

// ArtifactKeyOpts returns cache key options for one rendered format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{
		Format: format,
		Width:  o.Width,
		Height: o.Height,
		Theme:  themeKey(o.Theme),
	}
	if format == FormatPNG {
		opts.Scale = o.Scale
	}
	return opts
}
