package test

import (
	"context"
	"sync"
	"time"

	"github.com/polkiloo/megano/internal/pkg/cache"
)

// RatingEnqueuerStub records enqueued product identifiers.
type RatingEnqueuerStub struct {
	Accept bool
	IDs    []int64
}

// Enqueue tracks the product id and reports the configured acceptance.
func (s *RatingEnqueuerStub) Enqueue(productID int64) bool {
	s.IDs = append(s.IDs, productID)
	return s.Accept
}

// WorkerFacadeStub mimics worker interactions with the review use case.
type WorkerFacadeStub struct {
	RecalculateFn func(context.Context, int64) error
	Calls         []int64
	mu            sync.Mutex
}

// Lock exposes internal mutex for external synchronization.
func (s *WorkerFacadeStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *WorkerFacadeStub) Unlock() { s.mu.Unlock() }

// RecalculateRating records invocations.
func (s *WorkerFacadeStub) RecalculateRating(ctx context.Context, productID int64) error {
	if s.RecalculateFn != nil {
		return s.RecalculateFn(ctx, productID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls = append(s.Calls, productID)
	return nil
}

// CacheStub records cache traffic without expiring anything.
type CacheStub struct {
	Values map[cache.Key]any
	Sets   []cache.Key
	Gets   []cache.Key
}

// NewCacheStub constructs an empty cache stub.
func NewCacheStub() *CacheStub {
	return &CacheStub{Values: make(map[cache.Key]any)}
}

// Get returns the stored value, recording the lookup.
func (s *CacheStub) Get(key cache.Key) (any, bool) {
	s.Gets = append(s.Gets, key)
	v, ok := s.Values[key]
	return v, ok
}

// Set stores the value, recording the write.
func (s *CacheStub) Set(key cache.Key, value any, ttl time.Duration) {
	s.Sets = append(s.Sets, key)
	s.Values[key] = value
}

// Delete removes the key.
func (s *CacheStub) Delete(key cache.Key) {
	delete(s.Values, key)
}
