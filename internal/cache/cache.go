package cache

import (
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultTTL is the freshness window for cached datasets
const DefaultTTL = 5 * time.Minute

type entry struct {
	payload  []byte
	storedAt time.Time
}

// Store is a wall-clock TTL cache keyed per logical dataset. Entries past
// their TTL are not evicted; they stay retrievable as stale fallbacks for
// callers whose refresh attempt failed. The underlying LRU only bounds
// total size.
type Store struct {
	ttl time.Duration
	lru *lru.Cache[string, entry]
	now func() time.Time
}

// NewStore creates a cache store holding up to size datasets
func NewStore(size int, ttl time.Duration) (*Store, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	l, err := lru.New[string, entry](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create cache store: %w", err)
	}
	return &Store{ttl: ttl, lru: l, now: time.Now}, nil
}

// Put overwrites the entry for a key with a fresh timestamp
func (s *Store) Put(key string, payload []byte) {
	s.lru.Add(key, entry{payload: payload, storedAt: s.now()})
}

// Get returns the cached payload for a key. fresh reports whether the
// entry is still inside the TTL window; stale entries are returned with
// fresh == false rather than dropped.
func (s *Store) Get(key string) (payload []byte, fresh, ok bool) {
	e, ok := s.lru.Get(key)
	if !ok {
		return nil, false, false
	}
	return e.payload, s.now().Sub(e.storedAt) < s.ttl, true
}

// Remove drops the entry for a key
func (s *Store) Remove(key string) {
	s.lru.Remove(key)
}
