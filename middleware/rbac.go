package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mintevents/event-portal-backend/internal/auth"
)

// RBACMiddleware gates a route group to the given roles. This is the routing
// layer of the defense; every mutating service method re-checks the caller's
// role on its own.
func RBACMiddleware(allowedRoles ...auth.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, ok := GetProfile(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "profile missing"})
			return
		}

		for _, role := range allowedRoles {
			if profile.Role == role {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error": "access denied for role: " + profile.Role.String(),
		})
	}
}
