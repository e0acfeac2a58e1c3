// Package pkg provides the libraries behind contribution-treemap.
//
// # Overview
//
// contribution-treemap draws the pull requests a GitHub user got merged as a
// treemap: one cell per repository, sized by merged pull requests and
// colored by star count. The pkg directory is organized as follows:
//
//  1. [contrib] - Repository records, aggregation and filtering
//  2. [render/treemap] - Layout, colors, text fitting and output sinks
//  3. [integrations] - HTTP plumbing and the GitHub GraphQL client
//  4. [pipeline] - Orchestration (fetch → filter → layout → render)
//  5. [cache], [errors], [httputil], [observability], [io], [buildinfo] - Support
//
// # Architecture
//
//	GitHub GraphQL search (or a saved repository list)
//	         ↓
//	    [integrations/github] (merged pull requests)
//	         ↓
//	    [contrib] (aggregate per repository, filter)
//	         ↓
//	    [render/treemap/layout] (binary treemap)
//	         ↓
//	    [render/treemap/sink] (SVG, PNG, JSON)
//
// # Quick Start
//
//	import (
//	    "github.com/dhvcc/github-contribution-treemap-generator/pkg/contrib"
//	    "github.com/dhvcc/github-contribution-treemap-generator/pkg/render/treemap/layout"
//	    "github.com/dhvcc/github-contribution-treemap-generator/pkg/render/treemap/sink"
//	)
//
//	repos := contrib.Aggregate([]contrib.RawRepo{
//	    {NameWithOwner: "golang/go", Stars: 120000, Contribs: 3},
//	    {NameWithOwner: "spf13/cobra", Stars: 38000, Contribs: 1},
//	})
//	l := layout.Compute(contrib.Items(repos), 465, 165)
//	svg := sink.RenderSVG(l.Leaves(), sink.DefaultConfig())
//
// Or run the whole pipeline, including the GitHub fetch and caching:
//
//	client := github.NewClient(token, store, pipeline.DefaultCacheTTL)
//	runner := pipeline.NewRunner(client, store, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{User: "octocat"})
//
// # Caching
//
// [cache] stores fetched pull requests and rendered artifacts behind one
// interface: FileCache for the CLI, RedisCache for the HTTP server and
// NullCache when caching is disabled.
//
// # Testing
//
//	go test ./pkg/...                    # All tests
//	go test -run Example ./pkg/...       # Examples only
//	go test -tags integration ./pkg/...  # Include GitHub and Redis tests
//
// [contrib]: https://pkg.go.dev/github.com/dhvcc/github-contribution-treemap-generator/pkg/contrib
// [render/treemap]: https://pkg.go.dev/github.com/dhvcc/github-contribution-treemap-generator/pkg/render/treemap
// [integrations]: https://pkg.go.dev/github.com/dhvcc/github-contribution-treemap-generator/pkg/integrations
// [pipeline]: https://pkg.go.dev/github.com/dhvcc/github-contribution-treemap-generator/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/dhvcc/github-contribution-treemap-generator/pkg/cache
// [errors]: https://pkg.go.dev/github.com/dhvcc/github-contribution-treemap-generator/pkg/errors
// [httputil]: https://pkg.go.dev/github.com/dhvcc/github-contribution-treemap-generator/pkg/httputil
// [observability]: https://pkg.go.dev/github.com/dhvcc/github-contribution-treemap-generator/pkg/observability
// [io]: https://pkg.go.dev/github.com/dhvcc/github-contribution-treemap-generator/pkg/io
// [buildinfo]: https://pkg.go.dev/github.com/dhvcc/github-contribution-treemap-generator/pkg/buildinfo
//
// [render/treemap/layout]: https://pkg.go.dev/github.com/dhvcc/github-contribution-treemap-generator/pkg/render/treemap/layout
// [render/treemap/sink]: https://pkg.go.dev/github.com/dhvcc/github-contribution-treemap-generator/pkg/render/treemap/sink
// [integrations/github]: https://pkg.go.dev/github.com/dhvcc/github-contribution-treemap-generator/pkg/integrations/github
package pkg
