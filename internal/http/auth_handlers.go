package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ehonlab/ehon-server/internal/auth"
	"github.com/ehonlab/ehon-server/internal/entities"
)

// AuthController exposes registration, login and credential changes.
type AuthController struct {
	service *auth.Service
}

// NewAuthController creates a new auth controller.
func NewAuthController(service *auth.Service) *AuthController {
	return &AuthController{service: service}
}

type childInput struct {
	Name      string   `json:"name" binding:"required,max=100"`
	Age       int      `json:"age" binding:"min=0,max=18"`
	AvatarURL string   `json:"avatar_url" binding:"omitempty,max=2048"`
	Interests []string `json:"interests"`
}

type registerRequest struct {
	Email    string       `json:"email" binding:"required"`
	Password string       `json:"password" binding:"required"`
	Name     string       `json:"name" binding:"max=100"`
	Children []childInput `json:"children" binding:"dive"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type tokenResponse struct {
	Token string         `json:"token"`
	User  *entities.User `json:"user"`
}

// Register creates an account and returns a bearer token for it.
// POST /auth/register
func (ac *AuthController) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	children := make([]entities.Child, 0, len(req.Children))
	for _, child := range req.Children {
		children = append(children, entities.Child{
			Name:      child.Name,
			Age:       child.Age,
			AvatarURL: child.AvatarURL,
			Interests: child.Interests,
		})
	}

	user, token, err := ac.service.Register(req.Email, req.Password, req.Name, children)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrEmailTaken):
			respondConflict(c, err.Error())
		case errors.Is(err, auth.ErrInvalidEmail),
			errors.Is(err, auth.ErrPasswordTooShort),
			errors.Is(err, auth.ErrPasswordTooLong):
			respondBadRequest(c, err.Error())
		default:
			respondInternalError(c, err, "register")
		}
		return
	}

	respondCreated(c, tokenResponse{Token: token, User: user})
}

// Login verifies credentials and returns a bearer token.
// POST /auth/login
func (ac *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	user, token, err := ac.service.Login(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrAccountDisabled):
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid email or password"})
		default:
			respondInternalError(c, err, "login")
		}
		return
	}

	c.JSON(http.StatusOK, tokenResponse{Token: token, User: user})
}

type changeEmailRequest struct {
	NewEmail string `json:"new_email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ChangeEmail updates the account email after re-checking the password.
// PUT /api/users/me/change-email
func (ac *AuthController) ChangeEmail(c *gin.Context) {
	var req changeEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	user, err := ac.service.ChangeEmail(GetUserID(c), req.NewEmail, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: err.Error()})
		case errors.Is(err, auth.ErrInvalidEmail):
			respondBadRequest(c, err.Error())
		case errors.Is(err, auth.ErrEmailTaken):
			respondConflict(c, err.Error())
		default:
			respondInternalError(c, err, "change email")
		}
		return
	}

	c.JSON(http.StatusOK, user)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

// ChangePassword replaces the account password.
// PUT /api/users/me/change-password
func (ac *AuthController) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	err := ac.service.ChangePassword(GetUserID(c), req.CurrentPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: err.Error()})
		case errors.Is(err, auth.ErrPasswordTooShort), errors.Is(err, auth.ErrPasswordTooLong):
			respondBadRequest(c, err.Error())
		default:
			respondInternalError(c, err, "change password")
		}
		return
	}

	respondSuccess(c, "password changed")
}
