package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/jessiehunter4/good-tenants-mvp-sub000/config"
)

// IdentityService resolves a user id from a verified token into an access
// context (role + profile status). Implemented by the auth service.
type IdentityService interface {
	LoadAccessContext(userID uint) (AccessContext, error)
}

// AuthMiddleware validates the bearer token and places the caller's
// AccessContext in the gin context for downstream gates and handlers.
func AuthMiddleware(cfg *config.Config, identity IdentityService) gin.HandlerFunc {
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
		})
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

		accessContext, err := identity.LoadAccessContext(uint(userIDFloat))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			return
		}

		c.Set("user_id", accessContext.UserID)
		c.Set("access_context", accessContext)
		c.Next()
	}
}

// UserIDFromToken verifies a raw token string and returns its user id.
// Used by the websocket endpoint, where the token arrives as a query
// parameter instead of a header.
func UserIDFromToken(cfg *config.Config, tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTAccessSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, jwt.ErrTokenUnverifiable
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, jwt.ErrTokenInvalidClaims
	}
	userIDFloat, ok := claims["user_id"].(float64)
	if !ok {
		return 0, jwt.ErrTokenInvalidClaims
	}
	return uint(userIDFloat), nil
}

// GetAccessContext retrieves the caller's access context set by AuthMiddleware.
func GetAccessContext(c *gin.Context) (AccessContext, bool) {
	val, exists := c.Get("access_context")
	if !exists {
		return AccessContext{}, false
	}
	ac, ok := val.(AccessContext)
	return ac, ok
}
