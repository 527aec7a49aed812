// Package users provides database operations for account management.
//
// This package implements the UserStore interface defined in internal/http/users.go.
//
// # Usage
//
//	repo := users.NewRepository(db)
//	user, err := repo.GetUserByEmail(email)
package users

import (
	"gorm.io/gorm"

	"github.com/ehonlab/ehon-server/internal/entities"
)

// Repository handles all user database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new users repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateUser creates a user together with its settings row and any initial
// children in a single transaction. A duplicate email surfaces as
// gorm.ErrDuplicatedKey.
func (r *Repository) CreateUser(user *entities.User, children []entities.Child) (*entities.User, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		settings := entities.UserSettings{UserID: user.ID}
		if err := tx.Create(&settings).Error; err != nil {
			return err
		}
		user.Settings = &settings
		for i := range children {
			children[i].UserID = user.ID
			if err := tx.Create(&children[i]).Error; err != nil {
				return err
			}
		}
		user.Children = children
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetUserByID retrieves a user by ID.
func (r *Repository) GetUserByID(id uint) (*entities.User, error) {
	var user entities.User
	err := r.db.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by email.
func (r *Repository) GetUserByEmail(email string) (*entities.User, error) {
	var user entities.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser persists profile changes.
func (r *Repository) UpdateUser(user *entities.User) error {
	return r.db.Save(user).Error
}

// GetSettings returns the settings row for a user.
func (r *Repository) GetSettings(userID uint) (*entities.UserSettings, error) {
	var settings entities.UserSettings
	err := r.db.Where("user_id = ?", userID).First(&settings).Error
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// UpdateSettings persists settings changes.
func (r *Repository) UpdateSettings(settings *entities.UserSettings) error {
	return r.db.Save(settings).Error
}

// DeleteUser removes a user and everything hanging off the account: settings,
// children, reviews, favorites, activities and all reading progress with its
// bookmarks and notes. Runs in one transaction so a failure leaves the
// account intact.
func (r *Repository) DeleteUser(userID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var progressIDs []uint
		if err := tx.Model(&entities.ReadingProgress{}).
			Where("user_id = ?", userID).
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
		if err := tx.Where("user_id = ?", userID).Delete(&entities.ReadingProgress{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&entities.Review{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&entities.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&entities.LearningActivity{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&entities.Child{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&entities.UserSettings{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entities.User{}, userID).Error
	})
}
