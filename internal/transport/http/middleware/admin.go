package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect4-minimax/pkg/auth"
)

const AdminKeyHeader = "X-Admin-Key"

// AdminKeyMiddleware lets a request through only if its X-Admin-Key matches the bcrypt
// hash. With no hash configured every request is refused.
func AdminKeyMiddleware(hash string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if hash == "" {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Admin access is not configured"})
			return
		}

		if !auth.CheckAdminKey(c.GetHeader(AdminKeyHeader), hash) {
			log.Printf("[AUTH] Rejected admin request from %s", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid admin key"})
			return
		}

		c.Next()
	}
}
