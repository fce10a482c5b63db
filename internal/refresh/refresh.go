// Package refresh keeps the cached snapshot for the preferred location from
// going stale between dashboard visits.
package refresh

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/mcrocce/meteodash/internal/resolver"
)

// Scheduler periodically re-resolves the preferred location so the next
// dashboard request is served from a warm cache.
type Scheduler struct {
	scheduler *gocron.Scheduler
	resolver  *resolver.Resolver
	interval  time.Duration
}

func New(rs *resolver.Resolver, interval time.Duration) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		resolver:  rs,
		interval:  interval,
	}
}

// Start schedules the periodic refresh job and starts the underlying
// scheduler.
func (s *Scheduler) Start() error {
	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 30
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(s.run)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

func (s *Scheduler) run() {
	log.Println("refresh: running snapshot refresh job")

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	// An empty request follows the resolution chain: fresh cache first,
	// then the persisted preferred location, then the default.
	res, err := s.resolver.Resolve(ctx, resolver.Request{})
	if err != nil {
		log.Printf("refresh: resolve failed: %v", err)
		return
	}
	if res.FromCache {
		log.Println("refresh: snapshot still fresh, nothing to do")
		return
	}
	log.Printf("refresh: refreshed snapshot for %s", res.Snapshot.DisplayName)
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
