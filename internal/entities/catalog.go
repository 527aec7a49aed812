package entities

import "time"

type ThemeCategory string

const (
	ThemeCategorySelf     ThemeCategory = "self"
	ThemeCategoryOthers   ThemeCategory = "others"
	ThemeCategoryWorld    ThemeCategory = "world"
	ThemeCategoryThinking ThemeCategory = "thinking"
)

type Theme struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	Name        string        `gorm:"uniqueIndex;size:100" json:"name"`
	Category    ThemeCategory `gorm:"size:20" json:"category"`
	Description string        `gorm:"size:500" json:"description,omitempty"`
	IconURL     string        `gorm:"size:2048" json:"icon_url,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
}

type Book struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Title           string    `gorm:"index;size:512" json:"title"`
	Author          string    `gorm:"index;size:256" json:"author"`
	Description     string    `gorm:"type:text" json:"description,omitempty"`
	CoverURL        string    `gorm:"size:2048" json:"cover_url,omitempty"`
	MinAge          int       `json:"min_age"`
	MaxAge          int       `json:"max_age"`
	TotalPages      int       `json:"total_pages"`
	IsPremium       bool      `gorm:"default:false" json:"is_premium"`
	IsFree          bool      `gorm:"default:false" json:"is_free"`
	PopularityScore float64   `gorm:"default:0" json:"popularity_score"`
	Themes          []Theme   `gorm:"many2many:book_themes;" json:"themes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// BookTheme is the join row behind the many2many association. It is mapped
// explicitly so the catalog repository can diff theme links without going
// through gorm's association API.
type BookTheme struct {
	BookID  uint `gorm:"primaryKey" json:"book_id"`
	ThemeID uint `gorm:"primaryKey" json:"theme_id"`
}

type BookPage struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	BookID     uint      `gorm:"index" json:"book_id"`
	PageNumber int       `json:"page_number"`
	ImageURL   string    `gorm:"size:2048" json:"image_url,omitempty"`
	AudioURL   string    `gorm:"size:2048" json:"audio_url,omitempty"`
	Text       string    `gorm:"type:text" json:"text,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type BookTocItem struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	BookID     uint   `gorm:"index" json:"book_id"`
	Title      string `gorm:"size:256" json:"title"`
	PageNumber int    `json:"page_number"`
}

func (Theme) TableName() string {
	return "themes"
}

func (Book) TableName() string {
	return "books"
}

func (BookTheme) TableName() string {
	return "book_themes"
}

func (BookPage) TableName() string {
	return "book_pages"
}

func (BookTocItem) TableName() string {
	return "book_toc_items"
}
