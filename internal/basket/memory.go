package basket

import "sync"

// MemoryStore is an in-process Store implementation.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]map[int64]int
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]map[int64]int)}
}

func (s *MemoryStore) session(sessionID string) map[int64]int {
	b, ok := s.sessions[sessionID]
	if !ok {
		b = make(map[int64]int)
		s.sessions[sessionID] = b
	}
	return b
}

// Add reserves delta units of the product, clamped to stockAvailable.
func (s *MemoryStore) Add(sessionID string, productID int64, stockAvailable, delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.session(sessionID)
	quantity := b[productID] + delta
	if quantity > stockAvailable {
		quantity = stockAvailable
	}
	if quantity < 0 {
		quantity = 0
	}
	b[productID] = quantity
}

// Remove releases delta units of an existing entry, clamped at zero.
func (s *MemoryStore) Remove(sessionID string, productID int64, delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.sessions[sessionID]
	if !ok {
		return
	}
	quantity, held := b[productID]
	if !held {
		return
	}
	quantity -= delta
	if quantity < 0 {
		quantity = 0
	}
	b[productID] = quantity
}

// PruneZero drops zero-quantity entries and returns the resulting mapping.
func (s *MemoryStore) PruneZero(sessionID string) map[int64]int {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.sessions[sessionID]
	if !ok {
		return map[int64]int{}
	}
	for id, quantity := range b {
		if quantity == 0 {
			delete(b, id)
		}
	}
	return copyBasket(b)
}

// Quantities returns a copy of the session reservations.
func (s *MemoryStore) Quantities(sessionID string) map[int64]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return copyBasket(s.sessions[sessionID])
}

// IDs returns product identifiers currently held by the session.
func (s *MemoryStore) IDs(sessionID string) []int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b := s.sessions[sessionID]
	ids := make([]int64, 0, len(b))
	for id := range b {
		ids = append(ids, id)
	}
	return ids
}

// Clear removes the session basket entirely.
func (s *MemoryStore) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, sessionID)
}

func copyBasket(b map[int64]int) map[int64]int {
	out := make(map[int64]int, len(b))
	for id, quantity := range b {
		out[id] = quantity
	}
	return out
}
