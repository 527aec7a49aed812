// Package books provides database operations for the book catalog, including
// pages, table-of-contents items and theme links.
//
// This package implements the BookStore interface defined in internal/http/books.go.
package books

import (
	"gorm.io/gorm"

	"github.com/ehonlab/ehon-server/internal/entities"
)

// Repository handles all book catalog database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateBook inserts a book and links it to the given themes in one
// transaction. Unknown theme IDs roll the whole insert back.
func (r *Repository) CreateBook(book *entities.Book, themeIDs []uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(book).Error; err != nil {
			return err
		}
		return syncThemeLinks(tx, book.ID, themeIDs)
	})
}

// GetBookByID retrieves a book without associations.
func (r *Repository) GetBookByID(id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.First(&book, id).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// GetBookDetail retrieves a book with its themes ordered by name.
func (r *Repository) GetBookDetail(id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.Preload("Themes", func(db *gorm.DB) *gorm.DB {
		return db.Order("themes.name ASC")
	}).First(&book, id).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// ListBooks returns a page of the catalog, newest first, optionally filtered
// by theme.
func (r *Repository) ListBooks(themeID uint, limit, offset int) ([]entities.Book, int64, error) {
	countQuery := r.db.Model(&entities.Book{})
	if themeID > 0 {
		countQuery = countQuery.
			Joins("JOIN book_themes ON book_themes.book_id = books.id").
			Where("book_themes.theme_id = ?", themeID)
	}

	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.db.Preload("Themes").Order("books.created_at DESC")
	if themeID > 0 {
		query = query.
			Joins("JOIN book_themes ON book_themes.book_id = books.id").
			Where("book_themes.theme_id = ?", themeID)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var books []entities.Book
	err := query.Find(&books).Error
	return books, total, err
}

// UpdateBook persists field changes and, when themeIDs is non-nil, reconciles
// the theme links: links absent from the new set are removed, missing ones
// added, unchanged ones left untouched. Everything runs in one transaction.
func (r *Repository) UpdateBook(book *entities.Book, themeIDs []uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(book).Error; err != nil {
			return err
		}
		if themeIDs == nil {
			return nil
		}
		return syncThemeLinks(tx, book.ID, themeIDs)
	})
}

// DeleteBook removes a book and everything referencing it: theme links,
// pages, TOC items, reviews, favorites and all reading progress with its
// bookmarks and notes. Runs in one transaction.
func (r *Repository) DeleteBook(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var progressIDs []uint
		if err := tx.Model(&entities.ReadingProgress{}).
			Where("book_id = ?", id).
			Pluck("id", &progressIDs).Error; err != nil {
			return err
		}
		if len(progressIDs) > 0 {
			if err := tx.Where("progress_id IN ?", progressIDs).Delete(&entities.Bookmark{}).Error; err != nil {
				return err
			}
			if err := tx.Where("progress_id IN ?", progressIDs).Delete(&entities.Note{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("book_id = ?", id).Delete(&entities.ReadingProgress{}).Error; err != nil {
			return err
		}
		if err := tx.Where("book_id = ?", id).Delete(&entities.Review{}).Error; err != nil {
			return err
		}
		if err := tx.Where("book_id = ?", id).Delete(&entities.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("book_id = ?", id).Delete(&entities.BookTheme{}).Error; err != nil {
			return err
		}
		if err := tx.Where("book_id = ?", id).Delete(&entities.BookPage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("book_id = ?", id).Delete(&entities.BookTocItem{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&entities.Book{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// syncThemeLinks reconciles book_themes rows against the desired theme set.
// Unknown theme IDs are reported as a foreign key violation so callers can
// map them to a client error.
func syncThemeLinks(tx *gorm.DB, bookID uint, themeIDs []uint) error {
	if len(themeIDs) > 0 {
		var known int64
		if err := tx.Model(&entities.Theme{}).Where("id IN ?", themeIDs).Count(&known).Error; err != nil {
			return err
		}
		if known != int64(len(uniqueIDs(themeIDs))) {
			return gorm.ErrForeignKeyViolated
		}
	}

	var existing []uint
	if err := tx.Model(&entities.BookTheme{}).
		Where("book_id = ?", bookID).
		Pluck("theme_id", &existing).Error; err != nil {
		return err
	}

	desired := make(map[uint]bool, len(themeIDs))
	for _, id := range themeIDs {
		desired[id] = true
	}
	current := make(map[uint]bool, len(existing))
	for _, id := range existing {
		current[id] = true
	}

	for _, id := range existing {
		if !desired[id] {
			if err := tx.Where("book_id = ? AND theme_id = ?", bookID, id).
				Delete(&entities.BookTheme{}).Error; err != nil {
				return err
			}
		}
	}
	for _, id := range themeIDs {
		if !current[id] {
			if err := tx.Create(&entities.BookTheme{BookID: bookID, ThemeID: id}).Error; err != nil {
				return err
			}
			current[id] = true
		}
	}
	return nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	var out []uint
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// --- Pages ---

// CreatePage adds a page to a book.
func (r *Repository) CreatePage(page *entities.BookPage) error {
	return r.db.Create(page).Error
}

// GetPage returns a page belonging to the given book.
func (r *Repository) GetPage(id, bookID uint) (*entities.BookPage, error) {
	var page entities.BookPage
	err := r.db.Where("id = ? AND book_id = ?", id, bookID).First(&page).Error
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// ListPages returns a book's pages ordered by page number.
func (r *Repository) ListPages(bookID uint) ([]entities.BookPage, error) {
	var pages []entities.BookPage
	err := r.db.Where("book_id = ?", bookID).Order("page_number ASC").Find(&pages).Error
	return pages, err
}

// UpdatePage persists page changes.
func (r *Repository) UpdatePage(page *entities.BookPage) error {
	return r.db.Save(page).Error
}

// DeletePage removes a page from a book.
func (r *Repository) DeletePage(id, bookID uint) error {
	result := r.db.Where("id = ? AND book_id = ?", id, bookID).Delete(&entities.BookPage{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// --- Table of contents ---

// CreateTocItem adds a TOC item to a book.
func (r *Repository) CreateTocItem(item *entities.BookTocItem) error {
	return r.db.Create(item).Error
}

// GetTocItem returns a TOC item belonging to the given book.
func (r *Repository) GetTocItem(id, bookID uint) (*entities.BookTocItem, error) {
	var item entities.BookTocItem
	err := r.db.Where("id = ? AND book_id = ?", id, bookID).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// ListTocItems returns a book's TOC ordered by page number.
func (r *Repository) ListTocItems(bookID uint) ([]entities.BookTocItem, error) {
	var items []entities.BookTocItem
	err := r.db.Where("book_id = ?", bookID).Order("page_number ASC").Find(&items).Error
	return items, err
}

// UpdateTocItem persists TOC item changes.
func (r *Repository) UpdateTocItem(item *entities.BookTocItem) error {
	return r.db.Save(item).Error
}

// DeleteTocItem removes a TOC item from a book.
func (r *Repository) DeleteTocItem(id, bookID uint) error {
	result := r.db.Where("id = ? AND book_id = ?", id, bookID).Delete(&entities.BookTocItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// RecomputePopularityScores refreshes every book's popularity score from its
// current favorite and review counts. Returns the number of books updated.
func (r *Repository) RecomputePopularityScores() (int64, error) {
	result := r.db.Exec(`
		UPDATE books SET popularity_score =
			(SELECT COUNT(*) FROM favorites WHERE favorites.book_id = books.id) * 2.0 +
			(SELECT COUNT(*) FROM reviews WHERE reviews.book_id = books.id) * 1.0 +
			(SELECT COALESCE(AVG(rating), 0) FROM reviews WHERE reviews.book_id = books.id) * 0.5`)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
