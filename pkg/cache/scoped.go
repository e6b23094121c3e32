package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
// The serve command applies it when server.cache_scope is configured,
// so deployments sharing one redis instance never read each other's
// entries:
//
//	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// MazeKey generates a prefixed key for maze document caching.
func (k *ScopedKeyer) MazeKey(opts MazeKeyOpts) string {
	return k.prefix + k.inner.MazeKey(opts)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(mazeHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(mazeHash, opts)
}
