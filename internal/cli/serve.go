package cli

import (
	"context"
	stderrors "errors"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/dhvcc/github-contribution-treemap-generator/pkg/errors"
	"github.com/dhvcc/github-contribution-treemap-generator/pkg/integrations"
	"github.com/dhvcc/github-contribution-treemap-generator/pkg/pipeline"
)

const shutdownTimeout = 10 * time.Second

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr      string
	redisAddr string
	token     string
	timeout   time.Duration // per-request deadline
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{
		addr:    ":8080",
		timeout: integrations.DefaultTimeout,
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve treemaps over HTTP",
		Long: `Serve exposes the render pipeline over HTTP:

  GET /healthz
  GET /api/treemap/{user}?format=svg&width=465&height=165

Results are cached in Redis when --redis-addr or $` + envRedisAddr + ` is set,
otherwise in the local cache directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.redisAddr, "redis-addr", "", "Redis address for the shared cache (default $"+envRedisAddr+")")
	cmd.Flags().StringVar(&opts.token, "token", "", "GitHub token (default $"+envToken+")")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", opts.timeout, "per-request timeout")

	return cmd
}

// runServe listens until ctx is cancelled, then shuts down gracefully.
func (c *CLI) runServe(ctx context.Context, opts *serveOpts) error {
	logger := loggerFromContext(ctx)

	token := firstNonEmpty(opts.token, c.getenv(envToken))
	if token == "" {
		return errors.New(errors.ErrCodeUnauthorized, "serve needs a GitHub token; pass --token or set $%s", envToken)
	}

	store, err := c.newCache(ctx, false, firstNonEmpty(opts.redisAddr, c.getenv(envRedisAddr)))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "open cache")
	}
	keyer := tokenKeyer(token)
	runner := pipeline.NewRunner(c.newGitHubClient(token, store, keyer), store, keyer, logger)
	defer runner.Close()

	srv := &http.Server{
		Addr:              opts.addr,
		Handler:           newServer(runner, logger, opts.timeout).routes(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	logger.Info("listening", "addr", opts.addr)

	select {
	case err := <-errc:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
