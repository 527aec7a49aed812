package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ehonlab/ehon-server/internal/entities"
)

// ChildStore defines database operations for child profile management.
type ChildStore interface {
	CreateChild(child *entities.Child) error
	GetChild(id, userID uint) (*entities.Child, error)
	ListChildren(userID uint) ([]entities.Child, error)
	UpdateChild(child *entities.Child) error
	DeleteChild(id, userID uint) error
}

type ChildrenController struct {
	store ChildStore
}

func NewChildrenController(store ChildStore) *ChildrenController {
	return &ChildrenController{store: store}
}

// ListChildren returns the authenticated user's child profiles.
// GET /api/children
func (cc *ChildrenController) ListChildren(c *gin.Context) {
	children, err := cc.store.ListChildren(GetUserID(c))
	if err != nil {
		respondInternalError(c, err, "list children")
		return
	}
	c.JSON(http.StatusOK, children)
}

// CreateChild adds a child profile.
// POST /api/children
func (cc *ChildrenController) CreateChild(c *gin.Context) {
	var req childInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	child := entities.Child{
		UserID:    GetUserID(c),
		Name:      req.Name,
		Age:       req.Age,
		AvatarURL: req.AvatarURL,
		Interests: req.Interests,
	}
	if err := cc.store.CreateChild(&child); err != nil {
		respondInternalError(c, err, "create child")
		return
	}
	respondCreated(c, child)
}

// GetChild returns one of the authenticated user's child profiles.
// GET /api/children/:id
func (cc *ChildrenController) GetChild(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	child, err := cc.store.GetChild(id, GetUserID(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "child")
			return
		}
		respondInternalError(c, err, "get child")
		return
	}
	c.JSON(http.StatusOK, child)
}

type updateChildRequest struct {
	Name      *string   `json:"name" binding:"omitempty,max=100"`
	Age       *int      `json:"age" binding:"omitempty,min=0,max=18"`
	AvatarURL *string   `json:"avatar_url" binding:"omitempty,max=2048"`
	Interests *[]string `json:"interests"`
}

// UpdateChild updates a child profile. Only the provided fields change.
// PUT /api/children/:id
func (cc *ChildrenController) UpdateChild(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req updateChildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	child, err := cc.store.GetChild(id, GetUserID(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "child")
			return
		}
		respondInternalError(c, err, "update child")
		return
	}

	if req.Name != nil {
		child.Name = *req.Name
	}
	if req.Age != nil {
		child.Age = *req.Age
	}
	if req.AvatarURL != nil {
		child.AvatarURL = *req.AvatarURL
	}
	if req.Interests != nil {
		child.Interests = *req.Interests
	}

	if err := cc.store.UpdateChild(child); err != nil {
		respondInternalError(c, err, "update child")
		return
	}
	c.JSON(http.StatusOK, child)
}

// DeleteChild removes a child profile.
// DELETE /api/children/:id
func (cc *ChildrenController) DeleteChild(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	err := cc.store.DeleteChild(id, GetUserID(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "child")
			return
		}
		respondInternalError(c, err, "delete child")
		return
	}
	respondSuccess(c, "child deleted")
}
