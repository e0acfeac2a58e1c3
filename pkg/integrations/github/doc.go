// Package github fetches a user's merged pull requests from the GitHub
// GraphQL API (https://api.github.com/graphql).
//
// # Usage
//
//	client := github.NewClient(token, c, 24*time.Hour)
//	res, err := client.FetchMergedPRs(ctx, "octocat", false)
//	if err != nil {
//	    return err
//	}
//	for _, pr := range res.PullRequests {
//	    fmt.Println(pr.Repository.NameWithOwner, pr.Repository.Stars)
//	}
//
// # Search
//
// Pull requests come from the search query "author:<user> is:pr is:merged",
// requested [PageSize] at a time and followed through the cursor until the
// last page or [MaxPages] pages, since GitHub search stops at 1000 results.
// Each page is retried on transport errors, 5xx and 429 responses.
//
// # Authentication
//
// The GraphQL API does not accept anonymous requests, so a token is
// required. Without one the client fails before sending anything.
// [FetchViewer] resolves the token's owner when no user is given.
//
// # Errors
//
// Failures are returned as coded errors from the errors package:
//
//   - 401: UNAUTHORIZED ("GitHub token is missing or invalid")
//   - 403 with an exhausted quota, or 429: RATE_LIMITED
//   - other 403: FORBIDDEN
//   - 404 or a GraphQL NOT_FOUND: NOT_FOUND
//   - deadline or client timeout: TIMEOUT
//   - 5xx and connection failures: NETWORK_ERROR
//
// # Caching
//
// Results are cached under the [cache.Keyer] PR key for the TTL given to
// [NewClient]. Pass refresh=true to bypass the cache.
//
// [cache.Keyer]: github.com/dhvcc/github-contribution-treemap-generator/pkg/cache.Keyer
package github
