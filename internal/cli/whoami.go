package cli

import (
	"context"
	stderrors "errors"

	"github.com/spf13/cobra"

	"github.com/dhvcc/github-contribution-treemap-generator/pkg/cache"
	"github.com/dhvcc/github-contribution-treemap-generator/pkg/integrations"
)

// whoamiCommand creates the whoami command.
func (c *CLI) whoamiCommand() *cobra.Command {
	var token string

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the GitHub user the token belongs to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), integrations.DefaultTimeout)
			defer cancel()

			token := firstNonEmpty(token, c.getenv(envToken))
			client := c.newGitHubClient(token, cache.NewNullCache(), tokenKeyer(token))

			spinner := newSpinner(ctx, c.ui.w, "Verifying token...")
			spinner.Start()
			login, err := client.FetchViewer(ctx)
			if err != nil {
				if spinner.Cancelled() && stderrors.Is(ctx.Err(), context.Canceled) {
					spinner.Stop()
					return ctx.Err()
				}
				spinner.StopWithError("Token rejected")
				return err
			}
			spinner.StopWithSuccess("GitHub token")
			c.ui.keyValue("Username", "@"+login)
			return nil
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "GitHub token (default $"+envToken+")")
	return cmd
}
