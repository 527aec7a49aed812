package entities

import "time"

// ReadingProgress tracks how far a reader got through a book. ChildID 0 means
// the account owner is reading for themselves; SQLite treats NULLs as distinct
// in unique indexes, so the zero value keeps the (user, book, child) key
// enforceable at the storage level.
type ReadingProgress struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"uniqueIndex:idx_progress_key" json:"user_id"`
	BookID      uint      `gorm:"uniqueIndex:idx_progress_key" json:"book_id"`
	ChildID     uint      `gorm:"uniqueIndex:idx_progress_key" json:"child_id"`
	CurrentPage int       `json:"current_page"`
	IsCompleted bool      `gorm:"default:false" json:"is_completed"`
	LastReadAt  time.Time `json:"last_read_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Bookmarks []Bookmark `gorm:"foreignKey:ProgressID" json:"bookmarks,omitempty"`
	Notes     []Note     `gorm:"foreignKey:ProgressID" json:"notes,omitempty"`
}

// Bookmark marks a single page at most once per progress record.
type Bookmark struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ProgressID uint      `gorm:"uniqueIndex:idx_bookmark_page" json:"progress_id"`
	PageNumber int       `gorm:"uniqueIndex:idx_bookmark_page" json:"page_number"`
	CreatedAt  time.Time `json:"created_at"`
}

type Note struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ProgressID uint      `gorm:"index" json:"progress_id"`
	PageNumber int       `json:"page_number"`
	Content    string    `gorm:"type:text" json:"content"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (ReadingProgress) TableName() string {
	return "reading_progress"
}

func (Bookmark) TableName() string {
	return "bookmarks"
}

func (Note) TableName() string {
	return "notes"
}
