// Package scheduler triggers recurring maintenance work on cron schedules.
// The actual work runs on the task queue, so a missed trigger or a crashed
// run is retried by the queue, not the scheduler.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/ehonlab/ehon-server/internal/tasks"
)

// Config holds the cron schedules for maintenance jobs. Schedules use the
// standard five-field cron format.
type Config struct {
	// ActivityCleanupSchedule is when old learning activities are pruned.
	ActivityCleanupSchedule string

	// ActivityRetentionDays is how long learning activities are kept.
	ActivityRetentionDays int

	// PopularitySchedule is when book popularity scores are refreshed.
	PopularitySchedule string
}

// MaintenanceScheduler enqueues periodic maintenance tasks.
type MaintenanceScheduler struct {
	client *tasks.Client
	config Config

	cron       *cron.Cron
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewMaintenanceScheduler creates a new scheduler instance.
func NewMaintenanceScheduler(client *tasks.Client, cfg Config) *MaintenanceScheduler {
	return &MaintenanceScheduler{
		client: client,
		config: cfg,
		cron:   cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler.
func (s *MaintenanceScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if _, err := s.cron.AddFunc(s.config.ActivityCleanupSchedule, s.enqueueActivityCleanup); err != nil {
		return fmt.Errorf("invalid activity cleanup schedule '%s': %w", s.config.ActivityCleanupSchedule, err)
	}
	if _, err := s.cron.AddFunc(s.config.PopularitySchedule, s.enqueuePopularityRefresh); err != nil {
		return fmt.Errorf("invalid popularity schedule '%s': %w", s.config.PopularitySchedule, err)
	}

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	log.Printf("Maintenance scheduler: started (activity cleanup '%s', popularity refresh '%s')",
		s.config.ActivityCleanupSchedule, s.config.PopularitySchedule)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler, waiting for running jobs to complete.
func (s *MaintenanceScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	s.cancelFunc = nil

	log.Printf("Maintenance scheduler: stopped")
}

// IsRunning returns whether the scheduler is active.
func (s *MaintenanceScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRuns returns when each scheduled job will next fire, for diagnostics.
func (s *MaintenanceScheduler) NextRuns() []time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	entries := s.cron.Entries()
	times := make([]time.Time, 0, len(entries))
	for _, entry := range entries {
		times = append(times, entry.Next)
	}
	return times
}

func (s *MaintenanceScheduler) enqueueActivityCleanup() {
	_, err := s.client.Add(tasks.CleanupActivitiesTask{
		RetentionDays: s.config.ActivityRetentionDays,
	}).Save()
	if err != nil {
		log.Printf("Maintenance scheduler: failed to enqueue activity cleanup: %v", err)
		return
	}
	log.Printf("Maintenance scheduler: enqueued activity cleanup")
}

func (s *MaintenanceScheduler) enqueuePopularityRefresh() {
	_, err := s.client.Add(tasks.RecomputePopularityTask{}).Save()
	if err != nil {
		log.Printf("Maintenance scheduler: failed to enqueue popularity refresh: %v", err)
		return
	}
	log.Printf("Maintenance scheduler: enqueued popularity refresh")
}
