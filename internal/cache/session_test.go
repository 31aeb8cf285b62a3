package cache_test

import (
	"testing"
	"time"

	"github.com/liamba05/Fynnance/internal/cache"
)

// TestSessionRegistry tests per-session cache scoping and expiry.
//
// WHY: Market data is cached per session so one user's lookups never
// leak into another's, and idle sessions are released by the sweeper.
func TestSessionRegistry(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("same key returns same cache, different keys are isolated", func(t *testing.T) {
		r := cache.NewSessionRegistry(time.Hour, 10)
		r.SetClock(func() time.Time { return base })

		a1 := r.For("user-a")
		a2 := r.For("user-a")
		b := r.For("user-b")

		if a1 != a2 {
			t.Error("Expected the same cache for repeated lookups of one session")
		}
		if a1 == b {
			t.Error("Expected distinct caches for distinct sessions")
		}
		if r.Len() != 2 {
			t.Errorf("Expected 2 sessions, got %d", r.Len())
		}
	})

	t.Run("sweep removes only expired sessions", func(t *testing.T) {
		r := cache.NewSessionRegistry(time.Hour, 10)
		now := base
		r.SetClock(func() time.Time { return now })

		r.For("idle")
		now = base.Add(40 * time.Minute)
		r.For("active")

		removed := r.Sweep(base.Add(time.Hour))

		if removed != 1 {
			t.Errorf("Expected 1 expired session removed, got %d", removed)
		}
		if r.Len() != 1 {
			t.Errorf("Expected 1 remaining session, got %d", r.Len())
		}
	})

	t.Run("use extends expiry", func(t *testing.T) {
		r := cache.NewSessionRegistry(time.Hour, 10)
		now := base
		r.SetClock(func() time.Time { return now })

		r.For("user")
		now = base.Add(50 * time.Minute)
		r.For("user")

		if removed := r.Sweep(base.Add(70 * time.Minute)); removed != 0 {
			t.Errorf("Expected touched session to survive, %d removed", removed)
		}
	})

	t.Run("expired session is replaced with a fresh cache", func(t *testing.T) {
		r := cache.NewSessionRegistry(time.Hour, 10)
		now := base
		r.SetClock(func() time.Time { return now })

		first := r.For("user")
		now = base.Add(2 * time.Hour)
		second := r.For("user")

		if first == second {
			t.Error("Expected a new cache after expiry")
		}
	})

	t.Run("end drops the session", func(t *testing.T) {
		r := cache.NewSessionRegistry(time.Hour, 10)
		r.For("user")
		r.End("user")

		if r.Len() != 0 {
			t.Errorf("Expected no sessions after End, got %d", r.Len())
		}
	})
}
