package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const accountIDKey = "account_id"

// JWTMiddleware validates the bearer token and stores the account ID on the
// request context.
func JWTMiddleware(jwtManager *JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header"})
			return
		}

		claims, err := jwtManager.ValidateToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(accountIDKey, claims.AccountID)
		c.Next()
	}
}

// GetAccountID returns the authenticated account ID set by JWTMiddleware.
func GetAccountID(c *gin.Context) (string, bool) {
	id, exists := c.Get(accountIDKey)
	if !exists {
		return "", false
	}
	accountID, ok := id.(string)
	return accountID, ok && accountID != ""
}
