package descriptor

import (
	"reflect"
	"sync"
)

// Cache wraps a Provider with a per-type cache. Descriptors are computed
// lazily on first request and kept until Forget; errors are not cached.
type Cache struct {
	provider Provider
	cache    sync.Map
}

func NewCache(provider Provider) *Cache {
	return &Cache{provider: provider}
}

func (c *Cache) DescriptorFor(t reflect.Type) (*Descriptor, error) {
	if cached, ok := c.cache.Load(t); ok {
		return cached.(*Descriptor), nil
	}

	d, err := c.provider.DescriptorFor(t)
	if err != nil {
		return nil, err
	}

	// Two racing computations produce equivalent descriptors; first stored
	// wins so every caller observes the same pointer afterwards.
	actual, _ := c.cache.LoadOrStore(t, d)
	return actual.(*Descriptor), nil
}

// Forget drops the cached descriptor for t. Used when a constructor is
// registered after the type was already scanned.
func (c *Cache) Forget(t reflect.Type) {
	c.cache.Delete(t)
}
