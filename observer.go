package rivet

import (
	"time"
)

// ResolveHook observes every root Instance call: the requested type key, how
// long resolution took, and the error if it failed.
type ResolveHook func(key string, duration time.Duration, err error)

// InjectHook observes every InjectMembers call, including idempotent no-ops.
type InjectHook func(key string, duration time.Duration, err error)
