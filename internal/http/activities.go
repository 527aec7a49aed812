package http

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ehonlab/ehon-server/internal/entities"
)

// ActivityStore defines database operations for the learning activity log.
type ActivityStore interface {
	Record(activity *entities.LearningActivity) error
	ListByUser(userID, childID uint, limit, offset int) ([]entities.LearningActivity, int64, error)
}

type ActivitiesController struct {
	store    ActivityStore
	children ChildFinder
}

func NewActivitiesController(store ActivityStore, children ChildFinder) *ActivitiesController {
	return &ActivitiesController{store: store, children: children}
}

// ListActivities returns the caller's activity feed, newest first,
// optionally narrowed to one child.
// GET /api/users/me/activities?child_id=&limit=&offset=
func (ac *ActivitiesController) ListActivities(c *gin.Context) {
	childID, ok := parseOptionalQueryID(c, "child_id")
	if !ok {
		return
	}

	userID := GetUserID(c)
	if childID > 0 {
		if _, err := ac.children.GetChild(childID, userID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				respondNotFound(c, "child")
				return
			}
			respondInternalError(c, err, "list activities")
			return
		}
	}

	limit, offset := parsePagination(c)
	activities, total, err := ac.store.ListByUser(userID, childID, limit, offset)
	if err != nil {
		respondInternalError(c, err, "list activities")
		return
	}
	respondPaginated(c, activities, total, limit, offset)
}

type activityRequest struct {
	ChildID      uint   `json:"child_id"`
	BookID       uint   `json:"book_id"`
	ActivityType string `json:"activity_type" binding:"required,oneof=book_read_completed question_answered badge_earned note_taken review_posted"`
	Detail       string `json:"detail" binding:"max=500"`
}

// RecordActivity appends an entry to the caller's activity log.
// POST /api/users/me/activities
func (ac *ActivitiesController) RecordActivity(c *gin.Context) {
	var req activityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	userID := GetUserID(c)
	if req.ChildID > 0 {
		if _, err := ac.children.GetChild(req.ChildID, userID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				respondNotFound(c, "child")
				return
			}
			respondInternalError(c, err, "record activity")
			return
		}
	}

	activity := entities.LearningActivity{
		UserID:       userID,
		ChildID:      req.ChildID,
		BookID:       req.BookID,
		ActivityType: entities.ActivityType(req.ActivityType),
		Detail:       req.Detail,
	}
	if err := ac.store.Record(&activity); err != nil {
		respondInternalError(c, err, "record activity")
		return
	}
	respondCreated(c, activity)
}
