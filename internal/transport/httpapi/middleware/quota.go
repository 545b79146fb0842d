package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"travelcore/internal/llm/usage"
)

// Quota deducts one monthly LLM call from the caller's allowance before
// letting a turn request through, returning 429 once usage.ErrQuotaExhausted
// fires. Must run after Auth so CallerUID is already populated.
func Quota(meter *usage.Meter) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := CallerUID(c)
		if uid == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing caller"})
			return
		}

		if err := meter.Charge(c.Request.Context(), uid); err != nil {
			if errors.Is(err, usage.ErrQuotaExhausted) {
				c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "monthly llm call quota exhausted"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "quota check failed"})
			return
		}

		c.Next()
	}
}
