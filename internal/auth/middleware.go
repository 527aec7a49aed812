package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ehonlab/ehon-server/internal/entities"
)

// Context keys for user data
const (
	ContextKeyUserID   = "auth_user_id"
	ContextKeyUserTier = "auth_user_tier"
)

// Middleware handles bearer token authentication for HTTP requests.
type Middleware struct {
	service     *Service
	publicPaths map[string]bool
}

// NewMiddleware creates a new authentication middleware.
func NewMiddleware(service *Service) *Middleware {
	publicPaths := map[string]bool{
		"/health":        true,
		"/ping":          true,
		"/auth/register": true,
		"/auth/login":    true,
	}

	return &Middleware{
		service:     service,
		publicPaths: publicPaths,
	}
}

// Handler returns a Gin middleware handler that authenticates requests.
func (m *Middleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.publicPaths[c.Request.URL.Path] {
			c.Next()
			return
		}

		user := m.tryBearerAuth(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "authentication required",
			})
			return
		}

		c.Set(ContextKeyUserID, user.ID)
		c.Set(ContextKeyUserTier, user.Tier)
		c.Next()
	}
}

// tryBearerAuth attempts to authenticate using a Bearer token.
func (m *Middleware) tryBearerAuth(c *gin.Context) *entities.User {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil
	}

	// Extract token from "Bearer <token>"
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return nil
	}

	user, err := m.service.ValidateToken(parts[1])
	if err != nil {
		return nil
	}
	return user
}

// RequireTier returns a middleware that only lets the listed tiers through.
func (m *Middleware) RequireTier(tiers ...entities.UserTier) gin.HandlerFunc {
	tierSet := make(map[entities.UserTier]bool)
	for _, t := range tiers {
		tierSet[t] = true
	}

	return func(c *gin.Context) {
		if !tierSet[GetUserTier(c)] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "insufficient permissions",
			})
			return
		}
		c.Next()
	}
}

// GetUserID retrieves the authenticated user's ID from the context.
func GetUserID(c *gin.Context) uint {
	if id, exists := c.Get(ContextKeyUserID); exists {
		if userID, ok := id.(uint); ok {
			return userID
		}
	}
	return 0
}

// GetUserTier retrieves the authenticated user's tier from the context.
func GetUserTier(c *gin.Context) entities.UserTier {
	if t, exists := c.Get(ContextKeyUserTier); exists {
		if tier, ok := t.(entities.UserTier); ok {
			return tier
		}
	}
	return ""
}
