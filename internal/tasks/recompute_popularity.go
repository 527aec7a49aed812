package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"
)

// PopularityRecomputer refreshes book popularity scores from engagement data.
type PopularityRecomputer interface {
	RecomputePopularityScores() (int64, error)
}

// RecomputePopularityTask refreshes every book's popularity score. Scores
// drift as favorites and reviews come and go, so this runs on a schedule
// rather than on every write.
type RecomputePopularityTask struct{}

// Config returns the queue configuration for popularity recompute tasks.
func (t RecomputePopularityTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "recompute_popularity",
		MaxAttempts: 3,
		Backoff:     time.Minute,
		Timeout:     5 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// RecomputePopularityProcessor creates a processor function for RecomputePopularityTask.
func RecomputePopularityProcessor(recomputer PopularityRecomputer) backlite.QueueProcessor[RecomputePopularityTask] {
	return func(ctx context.Context, task RecomputePopularityTask) error {
		if recomputer == nil {
			return fmt.Errorf("popularity recomputer not configured")
		}

		updated, err := recomputer.RecomputePopularityScores()
		if err != nil {
			return fmt.Errorf("recompute popularity: %w", err)
		}

		log.Printf("[TASK] Refreshed popularity scores for %d books", updated)
		return nil
	}
}

// NewRecomputePopularityQueue creates a backlite queue for popularity recompute tasks.
func NewRecomputePopularityQueue(recomputer PopularityRecomputer) backlite.Queue {
	return backlite.NewQueue(RecomputePopularityProcessor(recomputer))
}
