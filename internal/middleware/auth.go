package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"passportx/internal/domain"
	"passportx/internal/service"
)

// AppKeyAuth returns Gin middleware that requires an
// "Authorization: Bearer <app key>" header. It aborts with 401 before any
// handler runs.
func AppKeyAuth(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || authService.ValidateAppKey(token) != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":  "UNAUTHORIZED",
				"error": domain.ErrUnauthorized.Message,
			})
			return
		}
		c.Next()
	}
}
