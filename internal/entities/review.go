package entities

import "time"

type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index" json:"user_id"`
	BookID    uint      `gorm:"index" json:"book_id"`
	Rating    int       `json:"rating"`
	Comment   string    `gorm:"type:text" json:"comment,omitempty"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Favorite links a user to a book they starred. The composite primary key
// makes repeat adds a no-op at the storage level.
type Favorite struct {
	UserID      uint      `gorm:"primaryKey" json:"user_id"`
	BookID      uint      `gorm:"primaryKey" json:"book_id"`
	FavoritedAt time.Time `json:"favorited_at"`
}

func (Review) TableName() string {
	return "reviews"
}

func (Favorite) TableName() string {
	return "favorites"
}
