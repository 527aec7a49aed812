// Package activities provides database operations for the learning activity
// log.
//
// This package implements the ActivityStore interface defined in internal/http/activities.go.
package activities

import (
	"time"

	"gorm.io/gorm"

	"github.com/ehonlab/ehon-server/internal/entities"
)

// Repository handles all learning activity database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new activities repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Record appends an activity to the log.
func (r *Repository) Record(activity *entities.LearningActivity) error {
	return r.db.Create(activity).Error
}

// ListByUser returns a user's activities with pagination, newest first.
// A non-zero childID narrows the feed to that child.
func (r *Repository) ListByUser(userID, childID uint, limit, offset int) ([]entities.LearningActivity, int64, error) {
	countQuery := r.db.Model(&entities.LearningActivity{}).Where("user_id = ?", userID)
	if childID > 0 {
		countQuery = countQuery.Where("child_id = ?", childID)
	}

	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.db.Where("user_id = ?", userID).Order("created_at DESC")
	if childID > 0 {
		query = query.Where("child_id = ?", childID)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var activities []entities.LearningActivity
	err := query.Find(&activities).Error
	return activities, total, err
}

// DeleteOlderThan removes activities created before the cutoff and returns
// the number of rows deleted. Used by the retention cleanup task.
func (r *Repository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	result := r.db.Where("created_at < ?", cutoff).Delete(&entities.LearningActivity{})
	return result.RowsAffected, result.Error
}
