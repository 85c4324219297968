package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/restropos-api/internal/presentation/http/dto/response"
	"github.com/sangkips/restropos-api/pkg/utils"
)

// AdminAuth gates admin routes behind a valid PIN session token.
func AdminAuth(sessions *utils.SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		if err := sessions.ValidateToken(parts[1]); err != nil {
			response.Unauthorized(c, "Invalid or expired session")
			c.Abort()
			return
		}

		c.Next()
	}
}
