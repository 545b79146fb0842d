// README: HTTP router registration (Gin).
package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"travelcore/internal/infra"
	"travelcore/internal/llm/usage"
	"travelcore/internal/orchestrator"
	"travelcore/internal/telemetry"
	"travelcore/internal/transport/httpapi/handlers"
	"travelcore/internal/transport/httpapi/middleware"
)

// NewRouter wires the conversational turn endpoints behind Firebase auth and
// monthly LLM-call quota enforcement. /health and /metrics are registered
// ahead of that middleware chain so health checks and Prometheus scrapes
// never need a Bearer token.
func NewRouter(o *orchestrator.Orchestrator, verifier infra.TokenVerifier, quota *usage.Meter) *gin.Engine {
	r := gin.New()

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	r.GET("/metrics", gin.WrapH(telemetry.Handler()))

	r.Use(middleware.Logging(), middleware.Recovery(), middleware.Auth(verifier), middleware.Quota(quota))

	turnHandler := handlers.NewTurnHandler(o)
	r.POST("/api/turn", turnHandler.Chat)
	r.POST("/api/turn/stream", turnHandler.Stream)

	return r
}
