package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"onboarding-service/auth"
)

const principalKey = "principal"

// Authenticate verifies the bearer token and stores the principal in the
// request context. Requests without a valid token are rejected with 401.
func Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		claims, err := auth.ParseToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set(principalKey, auth.Principal{Email: claims.Email, Role: claims.Role})
		c.Next()
	}
}

// PrincipalFrom returns the authenticated principal stored by Authenticate.
func PrincipalFrom(c *gin.Context) (auth.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return auth.Principal{}, false
	}
	p, ok := v.(auth.Principal)
	return p, ok
}
