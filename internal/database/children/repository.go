// Package children provides database operations for child profiles.
//
// This package implements the ChildStore interface defined in internal/http/children.go.
package children

import (
	"gorm.io/gorm"

	"github.com/ehonlab/ehon-server/internal/entities"
)

// Repository handles all child profile database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new children repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateChild adds a child profile to a user's account.
func (r *Repository) CreateChild(child *entities.Child) error {
	return r.db.Create(child).Error
}

// GetChild returns a child owned by the given user. A child belonging to a
// different user is indistinguishable from a missing one.
func (r *Repository) GetChild(id, userID uint) (*entities.Child, error) {
	var child entities.Child
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&child).Error
	if err != nil {
		return nil, err
	}
	return &child, nil
}

// ListChildren returns all children for a user, oldest profile first.
func (r *Repository) ListChildren(userID uint) ([]entities.Child, error) {
	var children []entities.Child
	err := r.db.Where("user_id = ?", userID).Order("id ASC").Find(&children).Error
	return children, err
}

// UpdateChild persists profile changes.
func (r *Repository) UpdateChild(child *entities.Child) error {
	return r.db.Save(child).Error
}

// DeleteChild removes a child profile.
func (r *Repository) DeleteChild(id, userID uint) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&entities.Child{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
