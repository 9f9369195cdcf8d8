package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-ai-backend/internal/ai"
	"resume-ai-backend/internal/payments"
	"resume-ai-backend/internal/resumes"
	"resume-ai-backend/internal/shared/config"
	"resume-ai-backend/internal/shared/metrics"
	"resume-ai-backend/internal/shared/server/middleware"
	"resume-ai-backend/internal/shared/server/respond"
)

// RouterDeps carries the handlers the router wires up.
type RouterDeps struct {
	Config          config.Config
	AIHandler       *ai.Handler
	PaymentsHandler *payments.Handler
	ResumesHandler  *resumes.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})

	authed := api.Group("")
	authed.Use(middleware.Auth(deps.Config.Env))

	// Every completion costs money upstream, so the AI group gets a small
	// per-principal bucket.
	aiGroup := authed.Group("/ai")
	aiGroup.Use(middleware.RateLimit(middleware.RateLimitRule{Rate: 1, Burst: 10}, middleware.NewRateLimiter(nil)))
	if deps.AIHandler != nil {
		deps.AIHandler.RegisterRoutes(aiGroup)
	}
	if deps.PaymentsHandler != nil {
		deps.PaymentsHandler.RegisterRoutes(aiGroup)
	}

	if deps.ResumesHandler != nil {
		deps.ResumesHandler.RegisterRoutes(authed.Group("/resumes"))
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
