package contrib

import (
	"path"
	"slices"
	"strings"

	"github.com/samber/lo"
)

// FilterOptions selects which repositories are drawn.
type FilterOptions struct {
	// User is the login whose pull requests were fetched. Repositories it
	// owns are dropped unless IncludeOwn is set.
	User           string
	IncludeOwn     bool
	IncludePrivate bool

	// Exclude holds "owner/name" patterns, matched case-insensitively with
	// path.Match, so "owner/*" drops a whole owner.
	Exclude []string

	MinStars uint

	// MaxRepos keeps only the top repositories by contributions, then stars.
	// Zero keeps all.
	MaxRepos int
}

// Filter applies opts to repos. The input is not modified.
func Filter(repos []Repo, opts FilterOptions) []Repo {
	user := strings.ToLower(opts.User)
	patterns := lo.Map(opts.Exclude, func(p string, _ int) string { return strings.ToLower(strings.TrimSpace(p)) })

	kept := lo.Filter(repos, func(r Repo, _ int) bool {
		switch {
		case r.Private && !opts.IncludePrivate:
			return false
		case !opts.IncludeOwn && user != "" && strings.EqualFold(r.Owner, user):
			return false
		case r.Stars < opts.MinStars:
			return false
		}
		return !excluded(r, patterns)
	})

	if opts.MaxRepos > 0 && len(kept) > opts.MaxRepos {
		slices.SortStableFunc(kept, Less)
		kept = kept[:opts.MaxRepos]
	}
	return kept
}

func excluded(r Repo, patterns []string) bool {
	id := r.Key()
	return lo.SomeBy(patterns, func(p string) bool {
		ok, err := path.Match(p, id)
		return err == nil && ok
	})
}
