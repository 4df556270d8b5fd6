package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/launchblock/cerberus/core"
	"github.com/launchblock/cerberus/service"
)

// bearerToken extracts the session id from the Authorization header.
func bearerToken(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(auth, "Bearer ")
}

// SessionGuard creates middleware that validates the presented session id
// before any admin-gated handler runs. Missing and expired sessions get the
// same response body, so a caller cannot tell which case they hit.
func SessionGuard(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := bearerToken(c)
		if sessionID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		address, err := authService.RequireAdmin(c.Request.Context(), sessionID)
		if err != nil {
			recordValidation(false)
			if errors.Is(err, core.ErrUnauthorized) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			} else {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Session validation failed"})
			}
			return
		}

		recordValidation(true)

		// The address is exposed for audit logging only; holding the
		// session is what authorized the request.
		c.Set("adminAddress", address)

		c.Next()
	}
}
