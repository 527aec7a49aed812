// Package favorites provides database operations for users' favorite books.
//
// This package implements the FavoriteStore interface defined in internal/http/favorites.go.
package favorites

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/ehonlab/ehon-server/internal/entities"
)

// FavoriteBook pairs a favorited book with the moment it was starred.
type FavoriteBook struct {
	Book        entities.Book `json:"book"`
	FavoritedAt time.Time     `json:"favorited_at"`
}

// Repository handles all favorites database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new favorites repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// AddFavorite stars a book for a user. Starring an already-starred book is a
// no-op and keeps the original favorited-at time.
func (r *Repository) AddFavorite(userID, bookID uint) error {
	favorite := entities.Favorite{
		UserID:      userID,
		BookID:      bookID,
		FavoritedAt: time.Now(),
	}
	err := r.db.Create(&favorite).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil
	}
	return err
}

// RemoveFavorite unstars a book.
func (r *Repository) RemoveFavorite(userID, bookID uint) error {
	result := r.db.Where("user_id = ? AND book_id = ?", userID, bookID).Delete(&entities.Favorite{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// IsFavorite reports whether a user has starred a book.
func (r *Repository) IsFavorite(userID, bookID uint) (bool, error) {
	var count int64
	err := r.db.Model(&entities.Favorite{}).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Count(&count).Error
	return count > 0, err
}

// ListFavoriteBooks returns a user's starred books with pagination, most
// recently starred first, with each book's themes preloaded.
func (r *Repository) ListFavoriteBooks(userID uint, limit, offset int) ([]FavoriteBook, int64, error) {
	var total int64
	if err := r.db.Model(&entities.Favorite{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.db.Where("user_id = ?", userID).Order("favorited_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var favorites []entities.Favorite
	if err := query.Find(&favorites).Error; err != nil {
		return nil, 0, err
	}
	if len(favorites) == 0 {
		return nil, total, nil
	}

	bookIDs := make([]uint, 0, len(favorites))
	for _, f := range favorites {
		bookIDs = append(bookIDs, f.BookID)
	}

	var books []entities.Book
	if err := r.db.Preload("Themes").Where("id IN ?", bookIDs).Find(&books).Error; err != nil {
		return nil, 0, err
	}
	byID := make(map[uint]entities.Book, len(books))
	for _, b := range books {
		byID[b.ID] = b
	}

	result := make([]FavoriteBook, 0, len(favorites))
	for _, f := range favorites {
		book, ok := byID[f.BookID]
		if !ok {
			continue
		}
		result = append(result, FavoriteBook{Book: book, FavoritedAt: f.FavoritedAt})
	}
	return result, total, nil
}
