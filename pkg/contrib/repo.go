package contrib

import (
	"cmp"
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/dhvcc/github-contribution-treemap-generator/pkg/render/treemap/layout"
)

// RawRepo is a repository as reported by the API. Any field may be missing.
type RawRepo struct {
	NameWithOwner string `json:"name_with_owner,omitempty"`
	Name          string `json:"name,omitempty"`
	Owner         string `json:"owner,omitempty"`
	Stars         int    `json:"stars,omitempty"`
	Contribs      int    `json:"contribs,omitempty"`
	Private       bool   `json:"private,omitempty"`
	Fork          bool   `json:"fork,omitempty"`
}

// Repo is a normalized repository with its merged pull request count.
type Repo struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Owner    string `json:"owner"`
	Stars    uint   `json:"stars"`
	Contribs uint   `json:"contribs"`
	Private  bool   `json:"private,omitempty"`
	Fork     bool   `json:"fork,omitempty"`
}

// Key identifies a repository regardless of case.
func (r Repo) Key() string { return strings.ToLower(r.ID) }

// Normalize converts raw into a Repo. Owner and name fall back to the parts
// of NameWithOwner, and the ID to "owner/name".
func Normalize(raw RawRepo) Repo {
	owner := strings.TrimSpace(raw.Owner)
	name := strings.TrimSpace(raw.Name)
	full := strings.TrimSpace(raw.NameWithOwner)
	if o, n, ok := strings.Cut(full, "/"); ok {
		if owner == "" {
			owner = o
		}
		if name == "" {
			name = n
		}
	}

	id := full
	if id == "" && (owner != "" || name != "") {
		id = owner + "/" + name
	}

	return Repo{
		ID:       id,
		Name:     name,
		Owner:    owner,
		Stars:    uint(max(0, raw.Stars)),
		Contribs: uint(max(0, raw.Contribs)),
		Private:  raw.Private,
		Fork:     raw.Fork,
	}
}

// Aggregate normalizes raw and merges records of the same repository,
// summing Contribs and keeping the highest star count. Records without an
// ID are dropped. The result is ordered by [Less].
func Aggregate(raw []RawRepo) []Repo {
	byKey := make(map[string]*Repo)
	var order []string
	for _, r := range raw {
		repo := Normalize(r)
		if repo.ID == "" {
			continue
		}
		k := repo.Key()
		if existing, ok := byKey[k]; ok {
			existing.Contribs += repo.Contribs
			existing.Stars = max(existing.Stars, repo.Stars)
			continue
		}
		byKey[k] = &repo
		order = append(order, k)
	}

	repos := lo.Map(order, func(k string, _ int) Repo { return *byKey[k] })
	slices.SortStableFunc(repos, Less)
	return repos
}

// Less orders repositories by contributions, then stars, both descending,
// then by ID.
func Less(a, b Repo) int {
	if c := cmp.Compare(b.Contribs, a.Contribs); c != 0 {
		return c
	}
	if c := cmp.Compare(b.Stars, a.Stars); c != 0 {
		return c
	}
	return cmp.Compare(a.Key(), b.Key())
}

// Items converts repos to layout input.
func Items(repos []Repo) []layout.Item {
	return lo.Map(repos, func(r Repo, _ int) layout.Item {
		return layout.Item{
			ID:       r.ID,
			Label:    r.Name,
			Owner:    r.Owner,
			Stars:    r.Stars,
			Contribs: r.Contribs,
		}
	})
}

// TotalContribs sums the merged pull requests of repos.
func TotalContribs(repos []Repo) uint {
	return lo.SumBy(repos, func(r Repo) uint { return r.Contribs })
}
