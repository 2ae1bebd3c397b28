package middlewares

import (
	"net/http"
	"strings"

	"foodhopper/services"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware verifies the bearer token and gates the route on the caller
// role. Handlers read the request identity from currentUserID/currentUserRole
// instead of touching the Authorization header themselves.
func AuthMiddleware(requiredRoles ...int) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"code": 0, "mess": "Authorization header is missing"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		userInfo, err := services.ParseToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"code": 0, "mess": "Invalid token"})
			c.Abort()
			return
		}

		hasRole := false
		for _, role := range requiredRoles {
			if userInfo.Role == role {
				hasRole = true
				break
			}
		}

		if !hasRole {
			c.JSON(http.StatusForbidden, gin.H{"code": 0, "mess": "You do not have permission to access this resource"})
			c.Abort()
			return
		}

		c.Set("currentUserID", userInfo.UserId)
		c.Set("currentUserRole", userInfo.Role)
		c.Next()
	}
}
