package middleware

import (
	"net/http"

	"github.com/NguyenHongSon4/app-02/utils/token"
	"github.com/gin-gonic/gin"
)

// TokenValidator is the part of the auth service the middleware needs.
type TokenValidator interface {
	ValidateToken(tokenString string) (*token.JWTClaims, error)
}

// AuthMiddleware requires a valid Bearer token and stores the account
// identity in the context under "accountID" and "username".
func AuthMiddleware(authService TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := token.ExtractToken(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
			return
		}

		claims, err := authService.ValidateToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			return
		}

		c.Set("accountID", claims.AccountID)
		c.Set("username", claims.Username)

		c.Next()
	}
}
