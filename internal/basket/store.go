// Package basket keeps per-session product reservations prior to order
// creation. The store is addressed by an explicit session identifier instead
// of ambient session state, so handlers receive it as a dependency and tests
// can substitute their own instance.
package basket

// Store holds reserved quantities per session. Quantities never exceed the
// stock level supplied at write time and never go below zero; writes from
// concurrent requests of the same session are last-write-wins.
type Store interface {
	// Add reserves delta more units of the product, clamping the stored
	// quantity to stockAvailable. A quantity that would exceed the stock is
	// silently clamped, never rejected.
	Add(sessionID string, productID int64, stockAvailable, delta int)
	// Remove releases delta units, clamping the stored quantity at zero.
	Remove(sessionID string, productID int64, delta int)
	// PruneZero drops entries whose quantity is exactly zero and returns the
	// resulting mapping. Applying it twice yields the same mapping.
	PruneZero(sessionID string) map[int64]int
	// Quantities returns a copy of the session's reservations.
	Quantities(sessionID string) map[int64]int
	// IDs returns the product identifiers currently held by the session.
	IDs(sessionID string) []int64
	// Clear removes the whole session basket.
	Clear(sessionID string)
}
