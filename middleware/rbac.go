package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RBACMiddleware checks if the user has one of the allowed roles
func RBACMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ac, ok := GetAccessContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			return
		}

		for _, role := range allowedRoles {
			if ac.RoleName == role {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "unauthorized"})
	}
}

// RequirePermission gates a route on the role × tier permission table.
func RequirePermission(p Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		ac, ok := GetAccessContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			return
		}

		if !ac.CanAccess(p) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "access denied"})
			return
		}

		c.Next()
	}
}

// RequireVerified gates a route on profile verification. The denied body
// carries an action hint so clients can render a "Get Verified" fallback.
func RequireVerified(p Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		ac, ok := GetAccessContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			return
		}

		tier := TierVerified
		granted := ac.CheckAccess(AccessQuery{
			Permission:          p,
			RequiredTier:        &tier,
			RequireVerification: true,
		})
		if !granted {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":  "verification required",
				"action": "get_verified",
			})
			return
		}

		c.Next()
	}
}
