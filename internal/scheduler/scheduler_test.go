package scheduler

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/liamba05/Fynnance/internal/cache"
)

type countingSweeper struct {
	calls atomic.Int32
}

func (c *countingSweeper) Sweep(time.Time) int {
	c.calls.Add(1)
	return 0
}

func TestNew(t *testing.T) {
	t.Run("accepts descriptors and cron expressions", func(t *testing.T) {
		for _, spec := range []string{"@every 5m", "*/10 * * * *", "@hourly"} {
			if _, err := New(spec, &countingSweeper{}); err != nil {
				t.Errorf("New(%q) returned unexpected error: %v", spec, err)
			}
		}
	})

	t.Run("rejects malformed schedule", func(t *testing.T) {
		for _, spec := range []string{"", "every five minutes", "* * *"} {
			if _, err := New(spec, &countingSweeper{}); err == nil {
				t.Errorf("New(%q): expected error", spec)
			}
		}
	})
}

// TestScheduler_Sweep tests the sweep job against a real session registry.
//
// WHY: Sessions are only dropped by the sweep. Without it, one cache per
// visitor would accumulate for the life of the process.
func TestScheduler_Sweep(t *testing.T) {
	// Setup
	start := time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)
	registry := cache.NewSessionRegistry(30*time.Minute, 4)
	registry.SetClock(func() time.Time { return start })
	registry.For("old")
	registry.SetClock(func() time.Time { return start.Add(20 * time.Minute) })
	registry.For("recent")

	s, err := New("@every 5m", registry)
	if err != nil {
		t.Fatalf("New() returned unexpected error: %v", err)
	}
	s.now = func() time.Time { return start.Add(40 * time.Minute) }

	// Execute
	s.sweep()

	// Assert
	if registry.Len() != 1 {
		t.Errorf("Expected 1 live session, got %d", registry.Len())
	}
}

func TestScheduler_StartStop(t *testing.T) {
	sweeper := &countingSweeper{}
	s, err := New("@every 1s", sweeper)
	if err != nil {
		t.Fatalf("New() returned unexpected error: %v", err)
	}

	s.Start()
	time.Sleep(1500 * time.Millisecond)
	ctx := s.Stop()

	select {
	case <-ctx.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("Stop() did not finish")
	}
	if sweeper.calls.Load() < 1 {
		t.Errorf("Expected at least one sweep, got %d", sweeper.calls.Load())
	}
}
