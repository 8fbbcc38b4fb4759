package cache

// ScopedKeyer wraps a Keyer with a prefix so independent namespaces
// can share one backend. The pipeline runner scopes probe and render
// entries apart this way.
//
// Example:
//
//	probeKeyer := NewScopedKeyer(NewDefaultKeyer(), "probe:")
//	renderKeyer := NewScopedKeyer(NewDefaultKeyer(), "render:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to every
// generated key.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// Key builds the inner key and prepends the scope prefix.
func (k *ScopedKeyer) Key(parts ...any) string {
	return k.prefix + k.inner.Key(parts...)
}
