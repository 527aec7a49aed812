package entities

import (
	"time"

	"gorm.io/datatypes"
)

type UserTier string

const (
	UserTierFree    UserTier = "free"
	UserTierPremium UserTier = "premium"
	UserTierCreator UserTier = "creator"
	UserTierAdmin   UserTier = "admin"
)

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;size:255" json:"email"`
	PasswordHash string    `gorm:"size:255" json:"-"`
	Name         string    `gorm:"size:100" json:"name"`
	Tier         UserTier  `gorm:"size:20;default:'free'" json:"tier"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Settings *UserSettings `gorm:"foreignKey:UserID" json:"settings,omitempty"`
	Children []Child       `gorm:"foreignKey:UserID" json:"children,omitempty"`
}

// UserSettings is a 1:1 row created together with its user.
type UserSettings struct {
	ID                    uint      `gorm:"primaryKey" json:"id"`
	UserID                uint      `gorm:"uniqueIndex" json:"user_id"`
	NotifyNewBooks        bool      `gorm:"default:true" json:"notify_new_books"`
	NotifyReadingReminder bool      `gorm:"default:true" json:"notify_reading_reminder"`
	NotifyBadges          bool      `gorm:"default:true" json:"notify_badges"`
	NotifyNewsletter      bool      `gorm:"default:false" json:"notify_newsletter"`
	UpdatedAt             time.Time `json:"updated_at"`
}

type Child struct {
	ID        uint                        `gorm:"primaryKey" json:"id"`
	UserID    uint                        `gorm:"index" json:"user_id"`
	Name      string                      `gorm:"size:100" json:"name"`
	Age       int                         `json:"age"`
	AvatarURL string                      `gorm:"size:2048" json:"avatar_url,omitempty"`
	Interests datatypes.JSONSlice[string] `json:"interests"`
	CreatedAt time.Time                   `json:"created_at"`
	UpdatedAt time.Time                   `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (UserSettings) TableName() string {
	return "user_settings"
}

func (Child) TableName() string {
	return "children"
}
