package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dhvcc/github-contribution-treemap-generator/pkg/cache"
	"github.com/dhvcc/github-contribution-treemap-generator/pkg/contrib"
	"github.com/dhvcc/github-contribution-treemap-generator/pkg/errors"
	"github.com/dhvcc/github-contribution-treemap-generator/pkg/integrations"
	"github.com/dhvcc/github-contribution-treemap-generator/pkg/integrations/github"
	repoio "github.com/dhvcc/github-contribution-treemap-generator/pkg/io"
	"github.com/dhvcc/github-contribution-treemap-generator/pkg/pipeline"
	"github.com/dhvcc/github-contribution-treemap-generator/pkg/render/treemap/sink"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	token          string        // GitHub token; falls back to $GITHUB_TOKEN
	output         string        // output file, base path for several formats, or "-"
	formats        string        // comma-separated: svg, png, json
	width          int           // canvas width; 0 uses the theme or default
	height         int           // canvas height; 0 uses the theme or default
	scale          float64       // PNG scale factor
	config         string        // theme file (.toml, .yaml, .json)
	from           string        // repository list to render instead of fetching
	saveRepos      string        // write the drawn repositories as a list
	exclude        []string      // owner/name patterns to drop
	minStars       uint          // drop repositories with fewer stars
	maxRepos       int           // keep only the top N repositories
	includeOwn     bool          // keep repositories the user owns
	includePrivate bool          // keep private repositories
	noCache        bool          // disable the cache entirely
	refresh        bool          // ignore cached data but update it
	timeout        time.Duration // overall deadline
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{
		timeout: integrations.DefaultTimeout,
	}

	cmd := &cobra.Command{
		Use:   "render [user]",
		Short: "Render the contribution treemap of a GitHub user",
		Long: `Render fetches the pull requests USER got merged and draws them as a treemap.

USER defaults to $GITHUB_USER, then to the owner of the token. A token is
required; pass --token or set $GITHUB_TOKEN.

With --from, the repositories are read from a list saved by --save-repos
(or written by hand) and GitHub is not contacted.`,
		Example: `  contribution-treemap render octocat
  contribution-treemap render octocat -f svg,png -o treemap
  contribution-treemap render octocat --exclude 'octocat/*' --max-repos 20 -o - > out.svg
  contribution-treemap render octocat --save-repos repos.json
  contribution-treemap render --from repos.json -f png`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var user string
			if len(args) == 1 {
				user = args[0]
			}
			return c.runRender(cmd.Context(), user, &opts)
		},
	}

	cmd.Flags().StringVar(&opts.token, "token", "", "GitHub token (default $"+envToken+")")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", `output file, base path for several formats, or "-" for stdout (default <user>.<format>)`)
	cmd.Flags().StringVarP(&opts.formats, "format", "f", pipeline.FormatSVG, "output format(s): svg, png, json (comma-separated)")
	cmd.Flags().IntVar(&opts.width, "width", 0, fmt.Sprintf("canvas width in pixels (default %d, or the theme's)", sink.DefaultWidth))
	cmd.Flags().IntVar(&opts.height, "height", 0, fmt.Sprintf("canvas height in pixels (default %d, or the theme's)", sink.DefaultHeight))
	cmd.Flags().Float64Var(&opts.scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	cmd.Flags().StringVar(&opts.config, "config", "", "theme file (.toml, .yaml or .json)")
	cmd.Flags().StringVar(&opts.from, "from", "", "render a saved repository list instead of fetching")
	cmd.Flags().StringVar(&opts.saveRepos, "save-repos", "", "also write the drawn repositories to this JSON file")
	cmd.Flags().StringArrayVar(&opts.exclude, "exclude", nil, "exclude repositories matching owner/name or owner/* (repeatable)")
	cmd.Flags().UintVar(&opts.minStars, "min-stars", 0, "exclude repositories with fewer stars")
	cmd.Flags().IntVar(&opts.maxRepos, "max-repos", 0, "keep only the top N repositories (0 keeps all)")
	cmd.Flags().BoolVar(&opts.includeOwn, "include-own", false, "include repositories owned by the user")
	cmd.Flags().BoolVar(&opts.includePrivate, "include-private", false, "include private repositories")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached data and fetch again")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", opts.timeout, "overall timeout (0 disables)")

	return cmd
}

// runRender fetches, lays out and renders, then writes every artifact.
func (c *CLI) runRender(ctx context.Context, user string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)

	formats := parseFormats(opts.formats)
	if opts.output != "" {
		if err := errors.ValidateOutputPath(opts.output); err != nil {
			return err
		}
	}
	if opts.output == "-" && len(formats) > 1 {
		return errors.New(errors.ErrCodeInvalidInput, "only one format can be written to stdout, got %s", strings.Join(formats, ","))
	}

	var theme sink.Config
	if opts.config != "" {
		var err error
		if theme, err = loadTheme(opts.config); err != nil {
			return err
		}
		logger.Debug("loaded theme", "path", opts.config)
	}

	if opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
	}

	store, err := c.newCache(ctx, opts.noCache, c.getenv(envRedisAddr))
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer store.Close()

	var (
		fetcher pipeline.Fetcher
		repos   []contrib.Repo
		keyer   cache.Keyer
		message string
	)
	if opts.from != "" {
		list, err := repoio.ImportJSON(opts.from)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "read repository list")
		}
		repos = list.Repos
		user = firstNonEmpty(user, list.User, c.getenv(envUser))
		message = "Rendering " + opts.from + "..."
	} else {
		token := firstNonEmpty(opts.token, c.getenv(envToken))
		keyer = tokenKeyer(token)
		client := c.newGitHubClient(token, store, keyer)

		user = firstNonEmpty(user, c.getenv(envUser))
		if user == "" {
			if user, err = client.FetchViewer(ctx); err != nil {
				return err
			}
			logger.Debug("using token owner", "user", user)
		}
		fetcher = client
		message = "Fetching merged pull requests for @" + github.NormalizeLogin(user) + "..."
	}

	runner := pipeline.NewRunner(fetcher, store, keyer, logger)
	prog := newProgress(logger)

	spinner := newSpinner(ctx, c.ui.w, message)
	spinner.Start()
	defer spinner.Stop()
	result, err := runner.Execute(ctx, pipeline.Options{
		User:           user,
		Repos:          repos,
		Refresh:        opts.refresh,
		Exclude:        opts.exclude,
		MinStars:       opts.minStars,
		MaxRepos:       opts.maxRepos,
		IncludeOwn:     opts.includeOwn,
		IncludePrivate: opts.includePrivate,
		Width:          opts.width,
		Height:         opts.height,
		Formats:        formats,
		Scale:          opts.scale,
		Theme:          theme,
		Logger:         logger,
	})
	if err != nil {
		// A user interrupt surfaces from the client as a network error.
		if spinner.Cancelled() && stderrors.Is(ctx.Err(), context.Canceled) {
			return ctx.Err()
		}
		return err
	}

	login := github.NormalizeLogin(user)
	name := login
	if name == "" {
		name = "treemap"
	}
	var written []string
	for _, format := range formats {
		path := outputPath(opts.output, name, format, len(formats) > 1)
		if err := c.writeOutput(path, result.Artifacts[format]); err != nil {
			return err
		}
		written = append(written, path)
	}

	if opts.saveRepos != "" {
		if err := repoio.ExportJSON(&repoio.List{User: login, Repos: result.Repos}, opts.saveRepos); err != nil {
			return fmt.Errorf("save repositories: %w", err)
		}
		written = append(written, opts.saveRepos)
	}

	if login != "" {
		spinner.StopWithSuccess("Treemap for @" + login)
	} else {
		spinner.StopWithSuccess("Treemap for " + opts.from)
	}
	prog.done("Rendered %d repositories", len(result.Repos))

	c.ui.stats(result.Stats.PullRequests, len(result.Repos), result.Stats.Contributions, result.CacheInfo.FetchHit)
	if result.Stats.Truncated {
		c.ui.warning("GitHub search stops at %d results; older pull requests are not counted", github.PageSize*github.MaxPages)
	}
	if len(result.Repos) == 0 {
		c.ui.info("No repositories matched; the treemap shows %q", sink.EmptyCaption)
	}
	for _, path := range written {
		if path != "-" {
			c.ui.file(path)
		}
	}
	return nil
}

// outputPath returns where one format is written. With several formats,
// output is a base path and a known extension on it is replaced.
func outputPath(output, user, format string, multi bool) string {
	switch {
	case output == "":
		return user + "." + format
	case output == "-":
		return output
	case multi:
		ext := filepath.Ext(output)
		if errors.ValidateFormat(strings.TrimPrefix(strings.ToLower(ext), ".")) == nil {
			output = strings.TrimSuffix(output, ext)
		}
		return output + "." + format
	}
	return output
}

// writeOutput writes data to path, or to stdout for "-".
func (c *CLI) writeOutput(path string, data []byte) error {
	if path == "-" {
		_, err := c.out.Write(data)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
