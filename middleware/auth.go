package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/mintevents/event-portal-backend/config"
	"github.com/mintevents/event-portal-backend/internal/auth"
)

// AuthMiddleware validates the bearer token and resolves the caller's
// role-augmented profile once per request. Handlers and services receive the
// profile explicitly; nothing downstream re-reads the raw token.
func AuthMiddleware(cfg *config.Config, authSvc auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing Authorization header"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid Authorization header"})
			return
		}

		token, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
			return []byte(cfg.JWTAccessSecret), nil
		}, jwt.WithValidMethods([]string{"HS256"}))
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid claims"})
			return
		}

		userIDFloat, ok := claims["user_id"].(float64)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user_id missing in token"})
			return
		}

		profile, err := authSvc.ResolveProfile(uint(userIDFloat))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			return
		}

		// Degraded profiles carry no email; fall back to the token claim so
		// email-keyed lookups (replies, dashboard) still work.
		if profile.Email == "" {
			if email, ok := claims["email"].(string); ok {
				profile.Email = email
			}
		}

		c.Set("profile", profile)
		c.Set("user_id", profile.UserID)

		c.Next()
	}
}

// GetProfile extracts the resolved profile from the request context.
func GetProfile(c *gin.Context) (auth.Profile, bool) {
	raw, exists := c.Get("profile")
	if !exists {
		return auth.Profile{}, false
	}
	profile, ok := raw.(auth.Profile)
	return profile, ok
}
