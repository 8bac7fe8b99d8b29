package middleware

import (
	"net/http"
	"strings"

	"iftarmap/internal/httpapi/service"
	"iftarmap/internal/identity"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware verifies the Bearer credential against the external identity
// provider, provisions the local user row on first sight, and stashes the
// user id and admin flag in the gin context for handlers downstream.
func AuthMiddleware(verifier identity.Verifier, users service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		ident, err := verifier.Verify(c.Request.Context(), parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		user, err := users.Provision(c.Request.Context(), ident)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load user"})
			c.Abort()
			return
		}

		c.Set("userID", user.ID)
		c.Set("isAdmin", user.IsAdmin)

		c.Next()
	}
}

// RequireAdmin rejects requests whose authenticated user lacks the admin
// flag. It must run after AuthMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		isAdmin, exists := c.Get("isAdmin")
		if !exists {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin flag not found"})
			c.Abort()
			return
		}

		if admin, ok := isAdmin.(bool); !ok || !admin {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin privileges required"})
			c.Abort()
			return
		}

		c.Next()
	}
}
