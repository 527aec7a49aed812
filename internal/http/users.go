package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ehonlab/ehon-server/internal/entities"
)

// UserStore defines database operations for account profile management.
type UserStore interface {
	GetUserByID(id uint) (*entities.User, error)
	UpdateUser(user *entities.User) error
	GetSettings(userID uint) (*entities.UserSettings, error)
	UpdateSettings(settings *entities.UserSettings) error
	DeleteUser(userID uint) error
}

type UsersController struct {
	store UserStore
}

func NewUsersController(store UserStore) *UsersController {
	return &UsersController{store: store}
}

// GetMe returns the authenticated user's profile.
// GET /api/users/me
func (uc *UsersController) GetMe(c *gin.Context) {
	user, err := uc.store.GetUserByID(GetUserID(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "user")
			return
		}
		respondInternalError(c, err, "get profile")
		return
	}
	c.JSON(http.StatusOK, user)
}

type updateProfileRequest struct {
	Name *string `json:"name" binding:"omitempty,max=100"`
}

// UpdateMe updates the authenticated user's profile.
// PUT /api/users/me
func (uc *UsersController) UpdateMe(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	user, err := uc.store.GetUserByID(GetUserID(c))
	if err != nil {
		respondInternalError(c, err, "update profile")
		return
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if err := uc.store.UpdateUser(user); err != nil {
		respondInternalError(c, err, "update profile")
		return
	}
	c.JSON(http.StatusOK, user)
}

// GetSettings returns the authenticated user's notification settings.
// GET /api/users/me/settings
func (uc *UsersController) GetSettings(c *gin.Context) {
	settings, err := uc.store.GetSettings(GetUserID(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "settings")
			return
		}
		respondInternalError(c, err, "get settings")
		return
	}
	c.JSON(http.StatusOK, settings)
}

type updateSettingsRequest struct {
	NotifyNewBooks        *bool `json:"notify_new_books"`
	NotifyReadingReminder *bool `json:"notify_reading_reminder"`
	NotifyBadges          *bool `json:"notify_badges"`
	NotifyNewsletter      *bool `json:"notify_newsletter"`
}

// UpdateSettings updates the authenticated user's notification settings.
// Only the provided flags change.
// PUT /api/users/me/settings
func (uc *UsersController) UpdateSettings(c *gin.Context) {
	var req updateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	settings, err := uc.store.GetSettings(GetUserID(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "settings")
			return
		}
		respondInternalError(c, err, "update settings")
		return
	}

	if req.NotifyNewBooks != nil {
		settings.NotifyNewBooks = *req.NotifyNewBooks
	}
	if req.NotifyReadingReminder != nil {
		settings.NotifyReadingReminder = *req.NotifyReadingReminder
	}
	if req.NotifyBadges != nil {
		settings.NotifyBadges = *req.NotifyBadges
	}
	if req.NotifyNewsletter != nil {
		settings.NotifyNewsletter = *req.NotifyNewsletter
	}

	if err := uc.store.UpdateSettings(settings); err != nil {
		respondInternalError(c, err, "update settings")
		return
	}
	c.JSON(http.StatusOK, settings)
}

// DeleteMe removes the authenticated user's account and all its data.
// DELETE /api/users/me
func (uc *UsersController) DeleteMe(c *gin.Context) {
	if err := uc.store.DeleteUser(GetUserID(c)); err != nil {
		respondInternalError(c, err, "delete account")
		return
	}
	respondSuccess(c, "account deleted")
}
