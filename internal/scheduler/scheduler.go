package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/forest-temperature-monitor/internal/session"
	"github.com/i474232898/forest-temperature-monitor/internal/weather"
)

const tickTimeout = 30 * time.Second

// Scheduler periodically checks every session and refreshes the ones that are due.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   *weather.Service
	sessions  *session.Manager
	tick      time.Duration
}

// New creates a new Scheduler.
func New(sessions *session.Manager, tick time.Duration, service *weather.Service) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	return &Scheduler{
		scheduler: s,
		service:   service,
		sessions:  sessions,
		tick:      tick,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
// The first run happens immediately.
func (s *Scheduler) Start() error {
	seconds := int(s.tick.Seconds())
	if seconds <= 0 {
		seconds = 60
	}

	_, err := s.scheduler.Every(seconds).Seconds().Do(func() {
		s.RunOnce()
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// RunOnce ticks every session once. Sessions whose interval has not elapsed
// are left untouched.
func (s *Scheduler) RunOnce() int {
	ctx, cancel := context.WithTimeout(context.Background(), tickTimeout)
	defer cancel()

	now := s.sessions.Now()
	refreshed := 0
	for _, sess := range s.sessions.All() {
		if sess.Tick(ctx, s.service, now, false) {
			refreshed++
		}
	}
	if refreshed > 0 {
		log.Printf("scheduler: refreshed %d session(s)", refreshed)
	}
	return refreshed
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
