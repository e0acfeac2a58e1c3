package cache

import "strings"

// Keyer builds cache keys.
type Keyer interface {
	// PRKey is the key of a user's merged pull requests.
	PRKey(user string) string

	// ArtifactKey is the key of a rendered output. reposHash identifies the
	// repositories that were laid out.
	ArtifactKey(reposHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts holds everything besides the data that changes a rendered
// artifact.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Theme  string  `json:"theme,omitempty"`
	Scale  float64 `json:"scale,omitempty"`
}

// Key families, as reported by [KeyType].
const (
	KeyTypePRs      = "prs"
	KeyTypeArtifact = "artifact"
)

// KeyType returns the family of a key built by a [Keyer], looking past any
// scope prefix. Unknown keys report "other".
func KeyType(key string) string {
	for _, part := range strings.Split(key, ":") {
		switch part {
		case KeyTypePRs, KeyTypeArtifact:
			return part
		}
	}
	return "other"
}

// DefaultKeyer is the standard key scheme.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard key scheme.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// PRKey returns "prs:<login>" with the login lowercased, since GitHub logins
// are case-insensitive.
func (DefaultKeyer) PRKey(user string) string {
	return KeyTypePRs + ":" + strings.ToLower(strings.TrimSpace(user))
}

// ArtifactKey hashes the repositories hash together with the options.
func (DefaultKeyer) ArtifactKey(reposHash string, opts ArtifactKeyOpts) string {
	return hashKey(KeyTypeArtifact, reposHash, opts)
}
