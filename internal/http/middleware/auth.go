// README: Bearer-token auth middleware; a nil verifier leaves the gateway open.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"freightcalc/internal/infra"
)

const callerKey = "caller"

func Auth(verifier infra.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if verifier == nil {
			c.Next()
			return
		}
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		id, err := verifier.VerifyToken(c.Request.Context(), strings.TrimSpace(token))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set(callerKey, id)
		c.Next()
	}
}

// Caller returns the verified identity, or nil when auth is off.
func Caller(c *gin.Context) *infra.Identity {
	v, ok := c.Get(callerKey)
	if !ok {
		return nil
	}
	id, _ := v.(*infra.Identity)
	return id
}
