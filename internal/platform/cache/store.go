package cache

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/riskibarqy/little-league/internal/platform/resilience"
)

type entry[V any] struct {
	value    V
	storedAt time.Time
}

// Store is an in-process TTL cache. Expired entries stay readable through
// GetStale until they are overwritten or deleted.
//
// Every Delete or DeletePrefix advances the store generation. A GetOrLoad
// load that started before an invalidation returns its value to its callers
// but does not store it.
type Store[V any] struct {
	mu      sync.RWMutex
	entries map[string]entry[V]
	gen     uint64
	ttl     time.Duration
	now     func() time.Time
	flight  resilience.SingleFlight[V]
}

// NewStore creates a store; ttl <= 0 keeps entries fresh forever.
func NewStore[V any](ttl time.Duration) *Store[V] {
	return &Store[V]{
		entries: make(map[string]entry[V]),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *Store[V]) Get(_ context.Context, key string) (V, bool) {
	var zero V
	if key == "" {
		return zero, false
	}

	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok || !s.fresh(e) {
		return zero, false
	}

	return e.value, true
}

// GetStale returns the last stored value regardless of age.
func (s *Store[V]) GetStale(_ context.Context, key string) (V, time.Time, bool) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	return e.value, e.storedAt, ok
}

func (s *Store[V]) Set(_ context.Context, key string, value V) {
	if key == "" {
		return
	}

	s.mu.Lock()
	s.entries[key] = entry[V]{value: value, storedAt: s.now()}
	s.mu.Unlock()
}

func (s *Store[V]) Delete(_ context.Context, key string) {
	if key == "" {
		return
	}

	s.mu.Lock()
	delete(s.entries, key)
	s.gen++
	s.mu.Unlock()
}

func (s *Store[V]) DeletePrefix(_ context.Context, prefix string) {
	if prefix == "" {
		return
	}

	s.mu.Lock()
	for key := range s.entries {
		if strings.HasPrefix(key, prefix) {
			delete(s.entries, key)
		}
	}
	s.gen++
	s.mu.Unlock()
}

func (s *Store[V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// GetOrLoad returns a fresh cached value or loads it once for all concurrent
// callers of the same key. Load errors are not cached.
func (s *Store[V]) GetOrLoad(ctx context.Context, key string, loader func(context.Context) (V, error)) (V, error) {
	var zero V
	if loader == nil {
		return zero, fmt.Errorf("loader is required")
	}
	if key == "" {
		return loader(ctx)
	}

	if value, ok := s.Get(ctx, key); ok {
		return value, nil
	}

	gen := s.generation()
	value, err, _ := s.flight.Do(key+"@"+strconv.FormatUint(gen, 10), func() (V, error) {
		if cached, ok := s.Get(ctx, key); ok {
			return cached, nil
		}

		loaded, loadErr := loader(ctx)
		if loadErr != nil {
			return zero, loadErr
		}
		s.setAt(key, loaded, gen)
		return loaded, nil
	})
	if err != nil {
		return zero, err
	}

	return value, nil
}

func (s *Store[V]) generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gen
}

// setAt stores value only if no invalidation happened since gen was read.
func (s *Store[V]) setAt(key string, value V, gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen == gen {
		s.entries[key] = entry[V]{value: value, storedAt: s.now()}
	}
}

func (s *Store[V]) fresh(e entry[V]) bool {
	if s.ttl <= 0 {
		return true
	}
	return s.now().Sub(e.storedAt) < s.ttl
}
