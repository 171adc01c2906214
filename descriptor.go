package rivet

import (
	"github.com/rivetdi/rivet/internal/descriptor"
)

// TagKey is the struct tag marking injectable fields:
//
//	type Controller struct {
//	    Service *Service `rivet:""`
//	    Cache   *Cache   `rivet:",optional"`
//	}
const TagKey = descriptor.TagKey

// MethodPrefix marks injectable methods. A pointer-receiver method named
// Inject* has each parameter resolved and is invoked during member
// injection:
//
//	func (c *Controller) InjectClock(clock *Clock) { ... }
const MethodPrefix = descriptor.MethodPrefix

// Descriptor is the cached injection metadata computed per type: the chosen
// constructor, injectable fields in order (embedded-struct fields first),
// and injectable methods in order.
type Descriptor = descriptor.Descriptor

type DescriptorField = descriptor.Field

type DescriptorMethod = descriptor.Method

type Constructor = descriptor.Constructor

// DescriptorProvider is the pluggable metadata source consumed by the
// injector. Implementations must be safe for concurrent use; results may be
// cached for the process lifetime.
type DescriptorProvider = descriptor.Provider
