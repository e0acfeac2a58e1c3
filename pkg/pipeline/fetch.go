package pipeline

import (
	"github.com/samber/lo"

	"github.com/dhvcc/github-contribution-treemap-generator/pkg/contrib"
	"github.com/dhvcc/github-contribution-treemap-generator/pkg/integrations/github"
)

// RawRepos turns each pull request into a one-contribution record of its
// repository, ready for [contrib.Aggregate].
func RawRepos(prs []github.PullRequest) []contrib.RawRepo {
	return lo.Map(prs, func(pr github.PullRequest, _ int) contrib.RawRepo {
		r := pr.Repository
		return contrib.RawRepo{
			NameWithOwner: r.NameWithOwner,
			Name:          r.Name,
			Owner:         r.Owner,
			Stars:         r.Stars,
			Contribs:      1,
			Private:       r.IsPrivate,
			Fork:          r.IsFork,
		}
	})
}
