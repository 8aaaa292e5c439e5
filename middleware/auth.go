package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/thedailylaw/dailylaw-be/types"
)

// CronAuthMiddleware guards the scheduled trigger endpoints with a shared
// bearer credential. Fails closed: an empty configured secret rejects every
// request rather than letting triggers through unauthenticated.
func CronAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, types.DataResponse{
				Status:  "error",
				Message: "Authorization header is required",
			})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, types.DataResponse{
				Status:  "error",
				Message: "Authorization header format must be Bearer {token}",
			})
			return
		}

		if secret == "" || subtle.ConstantTimeCompare([]byte(parts[1]), []byte(secret)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, types.DataResponse{
				Status:  "error",
				Message: "Invalid trigger token",
			})
			return
		}

		c.Next()
	}
}
