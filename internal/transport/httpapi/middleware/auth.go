// Package middleware is Gin request middleware: Firebase-token auth and
// panic recovery, adapted from fweilun-Ark's internal/http/middleware.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"travelcore/internal/infra"
)

const (
	callerUIDKey  = "caller_uid"
	callerRoleKey = "caller_role"
)

// Auth verifies the Bearer Firebase ID token on every request and stores the
// caller's uid/role in the Gin context for downstream handlers, the same
// shape fweilun-Ark's order/location handlers relied on for per-caller
// authorization.
func Auth(verifier infra.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		const prefix = "Bearer "
		if !strings.HasPrefix(header, prefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or malformed authorization header"})
			return
		}

		token, err := verifier.VerifyIDToken(c.Request.Context(), strings.TrimPrefix(header, prefix))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(callerUIDKey, token.UID)
		if role, ok := token.Claims["role"].(string); ok {
			c.Set(callerRoleKey, role)
		}
		c.Next()
	}
}

// CallerUID returns the verified caller's uid, or "" outside Auth.
func CallerUID(c *gin.Context) string {
	uid, _ := c.Get(callerUIDKey)
	s, _ := uid.(string)
	return s
}

// CallerRole returns the verified caller's role claim, or "" when absent.
func CallerRole(c *gin.Context) string {
	role, _ := c.Get(callerRoleKey)
	s, _ := role.(string)
	return s
}
