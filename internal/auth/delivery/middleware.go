package delivery

import (
	"net/http"
	"strings"

	"treemap-backend/internal/auth/usecase"
	"treemap-backend/pkg/nocodb"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware guards protected routes: a missing or invalid Bearer token
// aborts the request with 401 and the client is expected to re-authenticate.
func AuthMiddleware(authUsecase usecase.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		user, err := authUsecase.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			c.Abort()
			return
		}

		c.Set("user", user)
		c.Set("userID", nocodb.FormatID(user.ID))
		c.Next()
	}
}
