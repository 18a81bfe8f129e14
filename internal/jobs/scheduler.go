package jobs

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Cleaner deletes visitor rows older than the retention window.
type Cleaner interface {
	Cleanup(ctx context.Context, retention time.Duration) (int64, error)
}

// Sweeper evicts sessions idle for longer than ttl.
type Sweeper interface {
	Sweep(ttl time.Duration) int
	Len() int
}

type Config struct {
	Retention  time.Duration
	SessionTTL time.Duration
}

type Scheduler struct {
	cron    *cron.Cron
	cleaner Cleaner
	sweeper Sweeper
	cfg     Config
}

func NewScheduler(cleaner Cleaner, sweeper Sweeper, cfg Config) *Scheduler {
	if cfg.Retention <= 0 {
		cfg.Retention = 365 * 24 * time.Hour
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 2 * time.Hour
	}
	return &Scheduler{
		cron:    cron.New(cron.WithSeconds()),
		cleaner: cleaner,
		sweeper: sweeper,
		cfg:     cfg,
	}
}

// Start registers the jobs and starts the cron loop.
func (s *Scheduler) Start() error {
	if s.cleaner != nil {
		// every night at midnight
		if _, err := s.cron.AddFunc("0 0 0 * * *", s.RunCleanup); err != nil {
			return err
		}
	}
	if s.sweeper != nil {
		if _, err := s.cron.AddFunc("0 */10 * * * *", s.RunSweep); err != nil {
			return err
		}
	}

	log.Println("Cron scheduler started (visitor cleanup nightly, session sweep every 10 minutes)")
	s.cron.Start()
	return nil
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) RunCleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	n, err := s.cleaner.Cleanup(ctx, s.cfg.Retention)
	if err != nil {
		log.Printf("Visitor cleanup failed: %v", err)
		return
	}
	log.Printf("Cleaned up %d old visitor records", n)
}

func (s *Scheduler) RunSweep() {
	if n := s.sweeper.Sweep(s.cfg.SessionTTL); n > 0 {
		log.Printf("Evicted %d idle sessions, %d still live", n, s.sweeper.Len())
	}
}
