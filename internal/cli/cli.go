// Package cli implements the contribution-treemap command-line interface.
//
// # Commands
//
//   - render: fetch a user's merged pull requests and draw the treemap
//   - serve: expose the same pipeline over HTTP
//   - whoami: show the login the GitHub token belongs to
//   - cache: inspect or clear the local cache
//   - completion: generate shell completion scripts
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger is
// passed through context.Context so that every stage can log progress.
// Status lines are written to stderr, keeping stdout free for artifacts.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/dhvcc/github-contribution-treemap-generator/pkg/buildinfo"
	"github.com/dhvcc/github-contribution-treemap-generator/pkg/cache"
	"github.com/dhvcc/github-contribution-treemap-generator/pkg/integrations/github"
	"github.com/dhvcc/github-contribution-treemap-generator/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = buildinfo.Name

	envToken     = "GITHUB_TOKEN"
	envUser      = "GITHUB_USER"
	envRedisAddr = "CONTRIB_TREEMAP_REDIS_ADDR"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	out    io.Writer // artifacts and plain data
	ui     ui        // status lines
	getenv func(string) string

	githubOpts []github.Option
}

// New creates a CLI that logs and reports status to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		out:    os.Stdout,
		ui:     ui{w: w},
		getenv: os.Getenv,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Draw a treemap of the repositories you contributed to",
		Long: `contribution-treemap fetches the pull requests a GitHub user got merged,
groups them by repository, and draws a treemap: tile area follows the
repository's stars and tile color follows how many pull requests were merged.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.whoamiCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Cache Factory
// =============================================================================

// newCache picks the cache backend: none, Redis when an address is given,
// or the file cache. A missing home directory disables caching.
func (c *CLI) newCache(ctx context.Context, noCache bool, redisAddr string) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if redisAddr != "" {
		return cache.NewRedisCache(ctx, redisAddr, appName+":")
	}
	dir, err := cacheDir()
	if err != nil {
		c.Logger.Debug("cache disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// tokenKeyer scopes cache keys by token so results fetched with one token
// are never served for another.
func tokenKeyer(token string) cache.Keyer {
	if token == "" {
		return cache.NewDefaultKeyer()
	}
	return cache.NewScopedKeyer(nil, "token:"+cache.Hash([]byte(token))[:12]+":")
}

// newGitHubClient creates a GitHub client that caches in store under keys
// built by keyer.
func (c *CLI) newGitHubClient(token string, store cache.Cache, keyer cache.Keyer) *github.Client {
	opts := append([]github.Option{github.WithKeyer(keyer)}, c.githubOpts...)
	return github.NewClient(token, store, pipeline.DefaultCacheTTL, opts...)
}

// =============================================================================
// Environment
// =============================================================================

// firstNonEmpty returns the first non-blank value: explicit flags are
// passed before environment variables.
func firstNonEmpty(values ...string) string {
	v, _ := lo.Find(values, func(s string) bool { return strings.TrimSpace(s) != "" })
	return strings.TrimSpace(v)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard
// (~/.cache/contribution-treemap/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats splits a comma-separated format list. Blank entries are
// dropped and duplicates collapse.
func parseFormats(s string) []string {
	parts := lo.FilterMap(strings.Split(s, ","), func(p string, _ int) (string, bool) {
		p = strings.ToLower(strings.TrimSpace(p))
		return p, p != ""
	})
	if len(parts) == 0 {
		return []string{pipeline.FormatSVG}
	}
	return lo.Uniq(parts)
}
