// Package scheduler runs periodic maintenance jobs on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Sweeper drops state that expired at or before now and reports how much it removed.
// *cache.SessionRegistry satisfies it.
type Sweeper interface {
	Sweep(now time.Time) int
}

// Scheduler sweeps expired market data sessions on a cron schedule.
type Scheduler struct {
	cron    *cron.Cron
	spec    string
	sweeper Sweeper
	now     func() time.Time
}

// New creates a Scheduler running the session sweep on spec.
// spec accepts standard five field cron expressions and descriptors such as "@every 5m".
func New(spec string, sweeper Sweeper) (*Scheduler, error) {
	s := &Scheduler{
		cron:    cron.New(),
		spec:    spec,
		sweeper: sweeper,
		now:     time.Now,
	}
	if _, err := s.cron.AddFunc(spec, s.sweep); err != nil {
		return nil, fmt.Errorf("invalid sweep schedule %q: %w", spec, err)
	}
	return s, nil
}

// Start runs the scheduler in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
	log.Printf("Session sweep scheduled (%s)", s.spec)
}

// Stop stops the scheduler. The returned context is done once a running sweep has finished.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

func (s *Scheduler) sweep() {
	if removed := s.sweeper.Sweep(s.now()); removed > 0 {
		log.Printf("Expired %d market data session(s)", removed)
	}
}
