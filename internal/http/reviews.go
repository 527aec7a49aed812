package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ehonlab/ehon-server/internal/entities"
)

// ReviewStore defines database operations for reviews.
type ReviewStore interface {
	CreateReview(review *entities.Review) error
	GetReviewByID(id uint) (*entities.Review, error)
	ListByBook(bookID uint, limit, offset int) ([]entities.Review, int64, error)
	ListByUser(userID uint) ([]entities.Review, error)
	UpdateReview(review *entities.Review) error
	DeleteReview(id uint) error
}

// BookFinder checks that a referenced book exists.
type BookFinder interface {
	GetBookByID(id uint) (*entities.Book, error)
}

// ActivityRecorder appends entries to the learning activity log.
type ActivityRecorder interface {
	Record(activity *entities.LearningActivity) error
}

type ReviewsController struct {
	store      ReviewStore
	books      BookFinder
	summaries  ReviewSummaryStore
	activities ActivityRecorder
}

func NewReviewsController(store ReviewStore, books BookFinder, summaries ReviewSummaryStore, activities ActivityRecorder) *ReviewsController {
	return &ReviewsController{store: store, books: books, summaries: summaries, activities: activities}
}

// ListByBook returns a book's reviews, newest first.
// GET /api/books/:id/reviews
func (rc *ReviewsController) ListByBook(c *gin.Context) {
	bookID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := rc.books.GetBookByID(bookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "book")
			return
		}
		respondInternalError(c, err, "list reviews")
		return
	}

	limit, offset := parsePagination(c)
	reviews, total, err := rc.store.ListByBook(bookID, limit, offset)
	if err != nil {
		respondInternalError(c, err, "list reviews")
		return
	}
	respondPaginated(c, reviews, total, limit, offset)
}

// GetSummary returns a book's average rating and review count.
// GET /api/books/:id/reviews/summary
func (rc *ReviewsController) GetSummary(c *gin.Context) {
	bookID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := rc.books.GetBookByID(bookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "book")
			return
		}
		respondInternalError(c, err, "review summary")
		return
	}

	summary, err := rc.summaries.GetSummary(bookID)
	if err != nil {
		respondInternalError(c, err, "review summary")
		return
	}
	c.JSON(http.StatusOK, summary)
}

type reviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// CreateReview posts a review for a book and logs the activity.
// POST /api/books/:id/reviews
func (rc *ReviewsController) CreateReview(c *gin.Context) {
	bookID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	if _, err := rc.books.GetBookByID(bookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "book")
			return
		}
		respondInternalError(c, err, "create review")
		return
	}

	review := entities.Review{
		UserID:  GetUserID(c),
		BookID:  bookID,
		Rating:  req.Rating,
		Comment: req.Comment,
	}
	if err := rc.store.CreateReview(&review); err != nil {
		respondInternalError(c, err, "create review")
		return
	}

	if err := rc.activities.Record(&entities.LearningActivity{
		UserID:       review.UserID,
		BookID:       bookID,
		ActivityType: entities.ActivityReviewPosted,
	}); err != nil {
		log.Printf("Failed to record review activity: %v", err)
	}

	respondCreated(c, review)
}

type updateReviewRequest struct {
	Rating  *int    `json:"rating" binding:"omitempty,min=1,max=5"`
	Comment *string `json:"comment"`
}

// UpdateReview updates the caller's own review.
// PUT /api/reviews/:id
func (rc *ReviewsController) UpdateReview(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req updateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	review, err := rc.store.GetReviewByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "review")
			return
		}
		respondInternalError(c, err, "update review")
		return
	}
	// A review belonging to someone else looks like a missing one
	if review.UserID != GetUserID(c) {
		respondNotFound(c, "review")
		return
	}

	if req.Rating != nil {
		review.Rating = *req.Rating
	}
	if req.Comment != nil {
		review.Comment = *req.Comment
	}

	if err := rc.store.UpdateReview(review); err != nil {
		respondInternalError(c, err, "update review")
		return
	}
	c.JSON(http.StatusOK, review)
}

// DeleteReview removes the caller's own review.
// DELETE /api/reviews/:id
func (rc *ReviewsController) DeleteReview(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	review, err := rc.store.GetReviewByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "review")
			return
		}
		respondInternalError(c, err, "delete review")
		return
	}
	if review.UserID != GetUserID(c) {
		respondNotFound(c, "review")
		return
	}

	if err := rc.store.DeleteReview(id); err != nil {
		respondInternalError(c, err, "delete review")
		return
	}
	respondSuccess(c, "review deleted")
}

// ListMine returns the caller's reviews, newest first.
// GET /api/users/me/reviews
func (rc *ReviewsController) ListMine(c *gin.Context) {
	reviews, err := rc.store.ListByUser(GetUserID(c))
	if err != nil {
		respondInternalError(c, err, "list own reviews")
		return
	}
	c.JSON(http.StatusOK, reviews)
}
