package cache

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Store is the in-memory response cache.
//
// A single mutex guards the entry map, the user index and the hit/miss
// counters so they are always mutually consistent. Operations never perform
// I/O under the lock.
type Store struct {
	mu sync.Mutex

	// entries maps canonical request keys to cached responses.
	entries map[string]*Entry

	// userKeys maps a lower-cased account address to the set of cache keys
	// created on its behalf. Only user-attributed entries are indexed;
	// shared market data is not.
	userKeys map[string]map[string]struct{}

	// hits and misses count lookups per info type, process-lifetime only.
	hits   map[string]int64
	misses map[string]int64
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		entries:  make(map[string]*Entry),
		userKeys: make(map[string]map[string]struct{}),
		hits:     make(map[string]int64),
		misses:   make(map[string]int64),
	}
}

// Get returns the cached response body for key, if present and fresh.
// An entry found expired is deleted on touch so lookups never serve stale
// data, regardless of sweep timing. The hit/miss counter for infoType is
// updated either way.
func (s *Store) Get(key, infoType string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok {
		s.misses[infoType]++
		CacheMisses.WithLabelValues(infoType).Inc()
		return nil, false
	}
	if entry.Expired(time.Now()) {
		delete(s.entries, key)
		CacheEntries.Set(float64(len(s.entries)))
		CacheEvictions.WithLabelValues("expired").Inc()
		s.misses[infoType]++
		CacheMisses.WithLabelValues(infoType).Inc()
		return nil, false
	}

	s.hits[infoType]++
	CacheHits.WithLabelValues(infoType).Inc()
	return entry.Body, true
}

// Put stores a response body under key with the given TTL, overwriting any
// existing entry. If user is non-empty the key is added to that account's
// index set for targeted invalidation.
func (s *Store) Put(key string, body []byte, ttl time.Duration, user string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = &Entry{
		Body:      body,
		ExpiresAt: time.Now().Add(ttl),
	}
	if user != "" {
		addr := strings.ToLower(user)
		set, ok := s.userKeys[addr]
		if !ok {
			set = make(map[string]struct{})
			s.userKeys[addr] = set
		}
		set[key] = struct{}{}
	}
	CacheEntries.Set(float64(len(s.entries)))
}

// InvalidateUser removes every entry indexed under the given account address
// and drops the index set itself. Returns the number of entries removed.
// Unknown addresses are a no-op.
func (s *Store) InvalidateUser(user string) int {
	addr := strings.ToLower(user)

	s.mu.Lock()
	defer s.mu.Unlock()

	keys, ok := s.userKeys[addr]
	if !ok {
		return 0
	}
	delete(s.userKeys, addr)

	removed := 0
	for key := range keys {
		if _, exists := s.entries[key]; exists {
			delete(s.entries, key)
			removed++
		}
	}
	if removed > 0 {
		CacheEntries.Set(float64(len(s.entries)))
		CacheEvictions.WithLabelValues("invalidated").Add(float64(removed))
	}
	return removed
}

// InvalidateUserScoped removes every entry whose request type is
// account-specific. This is the fallback when an exchange action succeeded
// but the acting address could not be determined; it scans the whole store
// and is intentionally the slow path. Returns the number removed.
func (s *Store) InvalidateUserScoped() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	var stale []string
	for key := range s.entries {
		if UserScoped(keyType(key)) {
			stale = append(stale, key)
		}
	}
	removed := s.removeKeysLocked(stale)
	if removed > 0 {
		CacheEvictions.WithLabelValues("invalidated").Add(float64(removed))
	}
	return removed
}

// ClearByType removes every entry whose request type equals infoType and
// returns the count.
func (s *Store) ClearByType(infoType string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	var stale []string
	for key := range s.entries {
		if keyType(key) == infoType {
			stale = append(stale, key)
		}
	}
	removed := s.removeKeysLocked(stale)
	if removed > 0 {
		CacheEvictions.WithLabelValues("cleared").Add(float64(removed))
	}
	return removed
}

// ClearAll drops every entry and the whole user index, returning the number
// of entries removed.
func (s *Store) ClearAll() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := len(s.entries)
	s.entries = make(map[string]*Entry)
	s.userKeys = make(map[string]map[string]struct{})
	CacheEntries.Set(0)
	if count > 0 {
		CacheEvictions.WithLabelValues("cleared").Add(float64(count))
	}
	return count
}

// SweepExpired removes all entries past expiry and prunes user-index
// references to keys that no longer exist. Returns the number of expired
// entries removed.
func (s *Store) SweepExpired() int {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	var expired []string
	for key, entry := range s.entries {
		if entry.Expired(now) {
			expired = append(expired, key)
		}
	}
	for _, key := range expired {
		delete(s.entries, key)
	}

	// Prune the user index against the surviving entries. This also catches
	// references left dangling by type-scoped removals.
	for addr, keys := range s.userKeys {
		for key := range keys {
			if _, exists := s.entries[key]; !exists {
				delete(keys, key)
			}
		}
		if len(keys) == 0 {
			delete(s.userKeys, addr)
		}
	}

	if len(expired) > 0 {
		CacheEntries.Set(float64(len(s.entries)))
		CacheEvictions.WithLabelValues("expired").Add(float64(len(expired)))
	}
	return len(expired)
}

// Size returns the current entry count.
func (s *Store) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// removeKeysLocked deletes the given entries and prunes them from every
// user-index set. Caller must hold s.mu.
func (s *Store) removeKeysLocked(keys []string) int {
	removed := 0
	for _, key := range keys {
		if _, exists := s.entries[key]; exists {
			delete(s.entries, key)
			removed++
		}
	}
	if removed > 0 {
		for addr, set := range s.userKeys {
			for _, key := range keys {
				delete(set, key)
			}
			if len(set) == 0 {
				delete(s.userKeys, addr)
			}
		}
		CacheEntries.Set(float64(len(s.entries)))
	}
	return removed
}

// TypeStats holds lookup counters for one info type.
type TypeStats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
}

// Stats is a point-in-time snapshot of cache effectiveness.
type Stats struct {
	Entries     int                  `json:"entries"`
	TotalHits   int64                `json:"total_hits"`
	TotalMisses int64                `json:"total_misses"`
	HitRate     string               `json:"hit_rate"`
	ByType      map[string]TypeStats `json:"by_type"`
}

// Snapshot returns current hit/miss statistics.
func (s *Store) Snapshot() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	byType := make(map[string]TypeStats, len(s.hits)+len(s.misses))
	var totalHits, totalMisses int64
	for t, n := range s.hits {
		ts := byType[t]
		ts.Hits = n
		byType[t] = ts
		totalHits += n
	}
	for t, n := range s.misses {
		ts := byType[t]
		ts.Misses = n
		byType[t] = ts
		totalMisses += n
	}

	hitRate := "0.0%"
	if total := totalHits + totalMisses; total > 0 {
		hitRate = fmt.Sprintf("%.1f%%", float64(totalHits)/float64(total)*100)
	}

	return Stats{
		Entries:     len(s.entries),
		TotalHits:   totalHits,
		TotalMisses: totalMisses,
		HitRate:     hitRate,
		ByType:      byType,
	}
}
