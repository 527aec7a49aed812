// Package progress provides database operations for reading progress,
// bookmarks and notes.
//
// This package implements the ProgressStore interface defined in internal/http/progress.go.
//
// A progress record is keyed by (user, book, child), with child ID 0 meaning
// the account owner reads for themselves. The key is backed by a composite
// unique index, so two concurrent get-or-create calls race harmlessly: the
// loser hits gorm.ErrDuplicatedKey and re-fetches the winner's row.
package progress

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/ehonlab/ehon-server/internal/entities"
)

// Repository handles all reading progress database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new progress repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetOrCreate returns the progress record for the (user, book, child) key,
// creating it at page 1 on first read. Re-reading never resets an existing
// record.
func (r *Repository) GetOrCreate(userID, bookID, childID uint) (*entities.ReadingProgress, error) {
	existing, err := r.get(userID, bookID, childID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	record := entities.ReadingProgress{
		UserID:      userID,
		BookID:      bookID,
		ChildID:     childID,
		CurrentPage: 1,
		LastReadAt:  time.Now(),
	}
	err = r.db.Create(&record).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Lost a create race, the other record wins
		return r.get(userID, bookID, childID)
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *Repository) get(userID, bookID, childID uint) (*entities.ReadingProgress, error) {
	var record entities.ReadingProgress
	err := r.db.Where("user_id = ? AND book_id = ? AND child_id = ?", userID, bookID, childID).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// UpdatePage sets the current page verbatim, marks completion and refreshes
// the last-read time. Pages are not clamped against the book's length.
func (r *Repository) UpdatePage(record *entities.ReadingProgress, page int, completed bool) error {
	record.CurrentPage = page
	record.IsCompleted = completed
	record.LastReadAt = time.Now()
	return r.db.Save(record).Error
}

// --- Bookmarks ---

// AddBookmark marks a page. Marking an already-marked page returns the
// existing bookmark instead of an error.
func (r *Repository) AddBookmark(progressID uint, pageNumber int) (*entities.Bookmark, error) {
	bookmark := entities.Bookmark{
		ProgressID: progressID,
		PageNumber: pageNumber,
	}
	err := r.db.Create(&bookmark).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		var existing entities.Bookmark
		if err := r.db.Where("progress_id = ? AND page_number = ?", progressID, pageNumber).
			First(&existing).Error; err != nil {
			return nil, err
		}
		return &existing, nil
	}
	if err != nil {
		return nil, err
	}
	return &bookmark, nil
}

// ListBookmarks returns a progress record's bookmarks ordered by page number.
func (r *Repository) ListBookmarks(progressID uint) ([]entities.Bookmark, error) {
	var bookmarks []entities.Bookmark
	err := r.db.Where("progress_id = ?", progressID).Order("page_number ASC").Find(&bookmarks).Error
	return bookmarks, err
}

// RemoveBookmark unmarks a page.
func (r *Repository) RemoveBookmark(progressID uint, pageNumber int) error {
	result := r.db.Where("progress_id = ? AND page_number = ?", progressID, pageNumber).
		Delete(&entities.Bookmark{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// --- Notes ---

// AddNote attaches a note to a page. Multiple notes per page are allowed.
func (r *Repository) AddNote(note *entities.Note) error {
	return r.db.Create(note).Error
}

// GetNote returns a note belonging to the given progress record.
func (r *Repository) GetNote(id, progressID uint) (*entities.Note, error) {
	var note entities.Note
	err := r.db.Where("id = ? AND progress_id = ?", id, progressID).First(&note).Error
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// ListNotes returns a progress record's notes ordered by page number, then
// by creation time within a page.
func (r *Repository) ListNotes(progressID uint) ([]entities.Note, error) {
	var notes []entities.Note
	err := r.db.Where("progress_id = ?", progressID).
		Order("page_number ASC, created_at ASC").
		Find(&notes).Error
	return notes, err
}

// UpdateNote persists note changes.
func (r *Repository) UpdateNote(note *entities.Note) error {
	return r.db.Save(note).Error
}

// DeleteNote removes a note from a progress record.
func (r *Repository) DeleteNote(id, progressID uint) error {
	result := r.db.Where("id = ? AND progress_id = ?", id, progressID).Delete(&entities.Note{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
