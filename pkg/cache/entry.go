package cache

import "time"

// Entry represents a cached upstream response.
type Entry struct {
	// Body is the raw upstream response body.
	Body []byte

	// ExpiresAt is when the entry becomes stale.
	ExpiresAt time.Time
}

// Expired returns true if the entry is stale at the given instant.
func (e *Entry) Expired(now time.Time) bool {
	return now.After(e.ExpiresAt)
}

// TTL returns the time until expiration.
// Returns 0 if already expired.
func (e *Entry) TTL() time.Duration {
	ttl := time.Until(e.ExpiresAt)
	if ttl < 0 {
		return 0
	}
	return ttl
}
