package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/snishiyama/networking-crm/internal/authz"
	"github.com/snishiyama/networking-crm/internal/constants"
	apierrors "github.com/snishiyama/networking-crm/internal/errors"
	"github.com/snishiyama/networking-crm/internal/models"
)

// RequireAuth checks if the user is authenticated via session
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get(constants.ContextKeyUserID)
		role := session.Get(constants.ContextKeyRole)

		if userID == nil || role == nil {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		// Store identity in context for easy access in handlers
		c.Set(constants.ContextKeyUserID, userID)
		c.Set(constants.ContextKeyRole, role)
		c.Next()
	}
}

// RequireSuperAdmin restricts a route to super admins. Must run after
// RequireAuth.
func RequireSuperAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetRole(c)
		if !ok || role != models.RoleSuperAdmin {
			apierrors.Forbidden(c, "")
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	switch v := userID.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}

// GetRole retrieves the current user's role from context
func GetRole(c *gin.Context) (models.Role, bool) {
	role, exists := c.Get(constants.ContextKeyRole)
	if !exists {
		return "", false
	}

	switch v := role.(type) {
	case models.Role:
		return v, true
	case string:
		return models.Role(v), true
	default:
		return "", false
	}
}

// GetActor builds the authz actor from the request context.
func GetActor(c *gin.Context) (authz.Actor, bool) {
	userID, ok := GetUserID(c)
	if !ok {
		return authz.Actor{}, false
	}
	role, ok := GetRole(c)
	if !ok {
		return authz.Actor{}, false
	}
	return authz.Actor{ID: userID, Role: role}, true
}
