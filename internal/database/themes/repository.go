// Package themes provides database operations for the theme catalog.
//
// This package implements the ThemeStore interface defined in internal/http/themes.go.
package themes

import (
	"gorm.io/gorm"

	"github.com/ehonlab/ehon-server/internal/entities"
)

// ThemeWithCount pairs a theme with the number of books linked to it.
type ThemeWithCount struct {
	entities.Theme
	BookCount int64 `json:"book_count"`
}

// Repository handles all theme database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new themes repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateTheme adds a theme to the catalog. Duplicate names surface as
// gorm.ErrDuplicatedKey.
func (r *Repository) CreateTheme(theme *entities.Theme) error {
	return r.db.Create(theme).Error
}

// GetThemeByID retrieves a theme by ID.
func (r *Repository) GetThemeByID(id uint) (*entities.Theme, error) {
	var theme entities.Theme
	err := r.db.First(&theme, id).Error
	if err != nil {
		return nil, err
	}
	return &theme, nil
}

// ListThemes returns all themes ordered by name.
func (r *Repository) ListThemes() ([]entities.Theme, error) {
	var themes []entities.Theme
	err := r.db.Order("name ASC").Find(&themes).Error
	return themes, err
}

// ListThemesWithBookCounts returns all themes ordered by name, each with the
// number of books currently linked to it.
func (r *Repository) ListThemesWithBookCounts() ([]ThemeWithCount, error) {
	var rows []ThemeWithCount
	err := r.db.Model(&entities.Theme{}).
		Select("themes.*, COUNT(book_themes.book_id) AS book_count").
		Joins("LEFT JOIN book_themes ON book_themes.theme_id = themes.id").
		Group("themes.id").
		Order("themes.name ASC").
		Find(&rows).Error
	return rows, err
}

// UpdateTheme persists theme changes.
func (r *Repository) UpdateTheme(theme *entities.Theme) error {
	return r.db.Save(theme).Error
}

// DeleteTheme removes a theme and its book links in one transaction.
func (r *Repository) DeleteTheme(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("theme_id = ?", id).Delete(&entities.BookTheme{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&entities.Theme{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// ListBooksByTheme returns the books linked to a theme with pagination,
// newest first.
func (r *Repository) ListBooksByTheme(themeID uint, limit, offset int) ([]entities.Book, int64, error) {
	var total int64
	err := r.db.Model(&entities.Book{}).
		Joins("JOIN book_themes ON book_themes.book_id = books.id").
		Where("book_themes.theme_id = ?", themeID).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var books []entities.Book
	query := r.db.Preload("Themes").
		Joins("JOIN book_themes ON book_themes.book_id = books.id").
		Where("book_themes.theme_id = ?", themeID).
		Order("books.created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	err = query.Find(&books).Error
	return books, total, err
}
