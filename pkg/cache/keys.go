package cache

// ResultKeyOpts are the option fields that affect a calculation result.
// Two runs with the same network, catalog and ResultKeyOpts are
// interchangeable.
type ResultKeyOpts struct {
	MaxDrop float64
}

// Keyer generates cache keys. Implementations must be deterministic:
// identical inputs always produce identical keys.
type Keyer interface {
	// ResultKey generates a key for a solved path set, from content hashes
	// of the network and catalog plus the result-affecting options.
	ResultKey(networkHash, catalogHash string, opts ResultKeyOpts) string

	// NetworkKey generates a key for a serialized network snapshot.
	NetworkKey(name string) string
}

// DefaultKeyer is the standard key layout: a fixed prefix per data class
// followed by a SHA-256 hash of the inputs.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// ResultKey generates a key for a solved path set.
func (k *DefaultKeyer) ResultKey(networkHash, catalogHash string, opts ResultKeyOpts) string {
	return hashKey("result", networkHash, catalogHash, opts)
}

// NetworkKey generates a key for a serialized network snapshot.
func (k *DefaultKeyer) NetworkKey(name string) string {
	return hashKey("network", name)
}

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation, so
// different users or deployments get separate cache namespaces.
//
// Example usage:
//
//	userKeyer := NewScopedKeyer(NewDefaultKeyer(), "user:abc123:")
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

// ResultKey generates a prefixed key for a solved path set.
func (k *ScopedKeyer) ResultKey(networkHash, catalogHash string, opts ResultKeyOpts) string {
	return k.prefix + k.inner.ResultKey(networkHash, catalogHash, opts)
}

// NetworkKey generates a prefixed key for a network snapshot.
func (k *ScopedKeyer) NetworkKey(name string) string {
	return k.prefix + k.inner.NetworkKey(name)
}
