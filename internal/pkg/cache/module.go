package cache

import "go.uber.org/fx"

// Module provides the in-memory cache as the Cache implementation.
var Module = fx.Provide(func() Cache { return NewMemory() })
