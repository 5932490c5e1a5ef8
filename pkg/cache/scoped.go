package cache

// ScopedKeyer wraps a Keyer with a prefix so that several consumers can share
// one cache directory without their entries colliding. The HTTP server scopes
// its keys this way.
//
//	serverKeyer := NewScopedKeyer(NewDefaultKeyer(), "serve:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer prefixes every key of inner. A nil inner uses the default keyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// LayoutKey implements Keyer.
func (k *ScopedKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(graphHash, opts)
}

// IndexKey implements Keyer.
func (k *ScopedKeyer) IndexKey(sourcesHash string, exclude string) string {
	return k.prefix + k.inner.IndexKey(sourcesHash, exclude)
}
