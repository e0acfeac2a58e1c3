package cache

// ScopedKeyer prefixes every key of another Keyer. The CLI scopes pull
// request results by token so that data visible to one token is never
// served to another.
//
//	k := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "token:"+cache.Hash([]byte(token))[:12]+":")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or [DefaultKeyer] when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// PRKey returns the prefixed pull request key.
func (k *ScopedKeyer) PRKey(user string) string {
	return k.prefix + k.inner.PRKey(user)
}

// ArtifactKey returns the prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(reposHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(reposHash, opts)
}
