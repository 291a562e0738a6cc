package basket

import "go.uber.org/fx"

// Module provides the in-memory basket store.
var Module = fx.Provide(func() Store { return NewMemoryStore() })
