package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ehonlab/ehon-server/internal/database/themes"
	"github.com/ehonlab/ehon-server/internal/entities"
)

// ThemeStore defines database operations for the theme catalog.
type ThemeStore interface {
	CreateTheme(theme *entities.Theme) error
	GetThemeByID(id uint) (*entities.Theme, error)
	ListThemesWithBookCounts() ([]themes.ThemeWithCount, error)
	UpdateTheme(theme *entities.Theme) error
	DeleteTheme(id uint) error
	ListBooksByTheme(themeID uint, limit, offset int) ([]entities.Book, int64, error)
}

type ThemesController struct {
	store ThemeStore
}

func NewThemesController(store ThemeStore) *ThemesController {
	return &ThemesController{store: store}
}

// ListThemes returns the theme catalog ordered by name, with book counts.
// GET /api/themes
func (tc *ThemesController) ListThemes(c *gin.Context) {
	rows, err := tc.store.ListThemesWithBookCounts()
	if err != nil {
		respondInternalError(c, err, "list themes")
		return
	}
	c.JSON(http.StatusOK, rows)
}

type themeRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Category    string `json:"category" binding:"required,oneof=self others world thinking"`
	Description string `json:"description" binding:"max=500"`
	IconURL     string `json:"icon_url" binding:"omitempty,max=2048"`
}

// CreateTheme adds a theme to the catalog.
// POST /api/themes
func (tc *ThemesController) CreateTheme(c *gin.Context) {
	var req themeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	theme := entities.Theme{
		Name:        req.Name,
		Category:    entities.ThemeCategory(req.Category),
		Description: req.Description,
		IconURL:     req.IconURL,
	}
	err := tc.store.CreateTheme(&theme)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			respondConflict(c, "theme name already exists")
			return
		}
		respondInternalError(c, err, "create theme")
		return
	}
	respondCreated(c, theme)
}

// GetTheme returns a single theme.
// GET /api/themes/:id
func (tc *ThemesController) GetTheme(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	theme, err := tc.store.GetThemeByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "theme")
			return
		}
		respondInternalError(c, err, "get theme")
		return
	}
	c.JSON(http.StatusOK, theme)
}

type updateThemeRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=100"`
	Category    *string `json:"category" binding:"omitempty,oneof=self others world thinking"`
	Description *string `json:"description" binding:"omitempty,max=500"`
	IconURL     *string `json:"icon_url" binding:"omitempty,max=2048"`
}

// UpdateTheme updates a theme. Only the provided fields change.
// PUT /api/themes/:id
func (tc *ThemesController) UpdateTheme(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req updateThemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	theme, err := tc.store.GetThemeByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "theme")
			return
		}
		respondInternalError(c, err, "update theme")
		return
	}

	if req.Name != nil {
		theme.Name = *req.Name
	}
	if req.Category != nil {
		theme.Category = entities.ThemeCategory(*req.Category)
	}
	if req.Description != nil {
		theme.Description = *req.Description
	}
	if req.IconURL != nil {
		theme.IconURL = *req.IconURL
	}

	err = tc.store.UpdateTheme(theme)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			respondConflict(c, "theme name already exists")
			return
		}
		respondInternalError(c, err, "update theme")
		return
	}
	c.JSON(http.StatusOK, theme)
}

// DeleteTheme removes a theme, unlinking its books.
// DELETE /api/themes/:id
func (tc *ThemesController) DeleteTheme(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	err := tc.store.DeleteTheme(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "theme")
			return
		}
		respondInternalError(c, err, "delete theme")
		return
	}
	respondSuccess(c, "theme deleted")
}

// ListBooksByTheme returns the books linked to a theme.
// GET /api/themes/:id/books
func (tc *ThemesController) ListBooksByTheme(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := tc.store.GetThemeByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "theme")
			return
		}
		respondInternalError(c, err, "list books by theme")
		return
	}

	limit, offset := parsePagination(c)
	books, total, err := tc.store.ListBooksByTheme(id, limit, offset)
	if err != nil {
		respondInternalError(c, err, "list books by theme")
		return
	}
	respondPaginated(c, books, total, limit, offset)
}
