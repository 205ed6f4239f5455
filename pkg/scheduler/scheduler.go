package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Regenerator is the job the scheduler drives; the recommendation service
// satisfies it.
type Regenerator interface {
	GenerateAll(ctx context.Context) (int, error)
}

// Scheduler regenerates recommendations for every holding on a cron spec.
type Scheduler struct {
	cron    *cron.Cron
	job     Regenerator
	timeout time.Duration

	mu      sync.Mutex
	running bool
}

// New validates spec (standard 5-field cron or descriptors such as @daily).
func New(spec string, job Regenerator) (*Scheduler, error) {
	if _, err := cron.ParseStandard(spec); err != nil {
		return nil, fmt.Errorf("invalid cron expression %q: %w", spec, err)
	}
	s := &Scheduler{cron: cron.New(), job: job, timeout: 10 * time.Minute}
	if _, err := s.cron.AddFunc(spec, func() { s.RunOnce(context.Background()) }); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	log.Println("[scheduler] started")
}

// Stop waits for a running regeneration to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	log.Println("[scheduler] stopped")
}

// RunOnce runs one regeneration pass. Overlapping runs are skipped.
func (s *Scheduler) RunOnce(ctx context.Context) bool {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		log.Println("[scheduler] previous run still in progress, skipping")
		return false
	}
	s.running = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	start := time.Now()
	failed, err := s.job.GenerateAll(ctx)
	if err != nil {
		log.Printf("[scheduler] regeneration aborted: %v", err)
		return true
	}
	log.Printf("[scheduler] regeneration done in %s, %d failed", time.Since(start).Round(time.Millisecond), failed)
	return true
}
