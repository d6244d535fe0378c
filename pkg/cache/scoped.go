package cache

// ScopedKeyer wraps a Keyer with a prefix so that batches of different
// profiles keep separate namespaces in a shared cache directory.
//
//	rolesKeyer := NewScopedKeyer(NewDefaultKeyer(), "roles:")
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

// CardKey generates a prefixed card key.
func (k *ScopedKeyer) CardKey(p CardKeyParts) string {
	return k.prefix + k.inner.CardKey(p)
}
