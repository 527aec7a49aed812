package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"
)

// ActivityCleaner provides the ability to delete old learning activity entries.
type ActivityCleaner interface {
	DeleteOlderThan(cutoff time.Time) (int64, error)
}

// CleanupActivitiesTask removes learning activity entries older than the
// configured retention period.
type CleanupActivitiesTask struct {
	RetentionDays int `json:"retention_days"`
}

// Config returns the queue configuration for activity cleanup tasks.
func (t CleanupActivitiesTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "cleanup_activities",
		MaxAttempts: 3,
		Backoff:     5 * time.Minute,
		Timeout:     2 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// CleanupActivitiesProcessor creates a processor function for CleanupActivitiesTask.
func CleanupActivitiesProcessor(cleaner ActivityCleaner) backlite.QueueProcessor[CleanupActivitiesTask] {
	return func(ctx context.Context, task CleanupActivitiesTask) error {
		if cleaner == nil {
			return fmt.Errorf("activity cleaner not configured")
		}

		retentionDays := task.RetentionDays
		if retentionDays <= 0 {
			retentionDays = 365
		}
		cutoff := time.Now().AddDate(0, 0, -retentionDays)

		deleted, err := cleaner.DeleteOlderThan(cutoff)
		if err != nil {
			return fmt.Errorf("cleanup activities: %w", err)
		}

		log.Printf("[TASK] Cleaned up %d learning activities older than %d days", deleted, retentionDays)
		return nil
	}
}

// NewCleanupActivitiesQueue creates a backlite queue for activity cleanup tasks.
func NewCleanupActivitiesQueue(cleaner ActivityCleaner) backlite.Queue {
	return backlite.NewQueue(CleanupActivitiesProcessor(cleaner))
}
