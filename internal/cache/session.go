package cache

import (
	"sync"
	"time"
)

type session struct {
	cache     *MarketStatsCache
	expiresAt time.Time
}

// SessionRegistry hands out one MarketStatsCache per session so market data never
// leaks between users. A session expires ttl after its last use.
type SessionRegistry struct {
	mu         sync.Mutex
	sessions   map[string]*session
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

// NewSessionRegistry creates a registry whose caches hold at most maxEntries markets.
func NewSessionRegistry(ttl time.Duration, maxEntries int) *SessionRegistry {
	return &SessionRegistry{
		sessions:   make(map[string]*session),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// For returns the cache of sessionKey, creating it if needed, and extends its expiry.
// An expired session is replaced by a fresh cache.
func (r *SessionRegistry) For(sessionKey string) *MarketStatsCache {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	s, ok := r.sessions[sessionKey]
	if !ok || !now.Before(s.expiresAt) {
		s = &session{cache: NewMarketStatsCache(r.maxEntries)}
		r.sessions[sessionKey] = s
	}
	s.expiresAt = now.Add(r.ttl)
	return s.cache
}

// End drops the cache of sessionKey.
func (r *SessionRegistry) End(sessionKey string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[sessionKey]; ok {
		s.cache.Reset()
		delete(r.sessions, sessionKey)
	}
}

// Sweep removes sessions that expired at or before now and returns how many were removed.
func (r *SessionRegistry) Sweep(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for key, s := range r.sessions {
		if !now.Before(s.expiresAt) {
			s.cache.Reset()
			delete(r.sessions, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of live sessions.
func (r *SessionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// SetClock replaces the clock used for expiry. Intended for tests.
func (r *SessionRegistry) SetClock(now func() time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.now = now
}
