// README: Tests for the quota middleware's caller-identity guard. The
// Charge path itself (create-then-deduct, quota-exhausted mapping) is
// already covered against a mocked Postgres pool in
// internal/llm/usage/usage_test.go; here only the boundary with the Gin
// context this middleware owns is verified.
package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"travelcore/internal/llm/usage"
	"travelcore/internal/transport/httpapi/middleware"
)

func TestQuota_NoCallerUIDRejectsWithoutTouchingStore(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.Quota(usage.NewMeter(nil)))
	r.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 when no caller_uid is set, got %d", w.Code)
	}
}
