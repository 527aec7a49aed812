package entities

import "time"

type ActivityType string

const (
	ActivityBookReadCompleted ActivityType = "book_read_completed"
	ActivityQuestionAnswered  ActivityType = "question_answered"
	ActivityBadgeEarned       ActivityType = "badge_earned"
	ActivityNoteTaken         ActivityType = "note_taken"
	ActivityReviewPosted      ActivityType = "review_posted"
)

type LearningActivity struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	UserID       uint         `gorm:"index" json:"user_id"`
	ChildID      uint         `gorm:"index" json:"child_id,omitempty"`
	BookID       uint         `json:"book_id,omitempty"`
	ActivityType ActivityType `gorm:"index;size:50" json:"activity_type"`
	Detail       string       `gorm:"size:500" json:"detail,omitempty"`
	CreatedAt    time.Time    `gorm:"index" json:"created_at"`
}

func (LearningActivity) TableName() string {
	return "learning_activities"
}
