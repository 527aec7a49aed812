// Package reviews provides database operations for book reviews and their
// rating summaries.
//
// This package implements the ReviewStore interface defined in internal/http/reviews.go.
package reviews

import (
	"gorm.io/gorm"

	"github.com/ehonlab/ehon-server/internal/entities"
)

// Summary aggregates the ratings of a single book.
type Summary struct {
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int64   `json:"review_count"`
}

// Repository handles all review database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new reviews repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateReview stores a review.
func (r *Repository) CreateReview(review *entities.Review) error {
	return r.db.Create(review).Error
}

// GetReviewByID retrieves a review by ID.
func (r *Repository) GetReviewByID(id uint) (*entities.Review, error) {
	var review entities.Review
	err := r.db.First(&review, id).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// ListByBook returns a book's reviews with pagination, newest first.
func (r *Repository) ListByBook(bookID uint, limit, offset int) ([]entities.Review, int64, error) {
	var total int64
	if err := r.db.Model(&entities.Review{}).Where("book_id = ?", bookID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.db.Where("book_id = ?", bookID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var reviews []entities.Review
	err := query.Find(&reviews).Error
	return reviews, total, err
}

// ListByUser returns a user's reviews, newest first.
func (r *Repository) ListByUser(userID uint) ([]entities.Review, error) {
	var reviews []entities.Review
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&reviews).Error
	return reviews, err
}

// UpdateReview persists review changes.
func (r *Repository) UpdateReview(review *entities.Review) error {
	return r.db.Save(review).Error
}

// DeleteReview removes a review.
func (r *Repository) DeleteReview(id uint) error {
	result := r.db.Delete(&entities.Review{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GetSummary returns the average rating and review count for a book. A book
// with no reviews yields a zero summary, not an error.
func (r *Repository) GetSummary(bookID uint) (*Summary, error) {
	var summary Summary
	err := r.db.Model(&entities.Review{}).
		Select("COALESCE(AVG(rating), 0) AS average_rating, COUNT(*) AS review_count").
		Where("book_id = ?", bookID).
		Scan(&summary).Error
	if err != nil {
		return nil, err
	}
	return &summary, nil
}
