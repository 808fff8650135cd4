package api

import (
	"database/sql"

	"shop/api/health"
	itemapi "shop/api/item"
	memberapi "shop/api/member"
	"shop/api/middleware"
	orderapi "shop/api/order"
	itemapp "shop/application/item"
	memberapp "shop/application/member"
	orderapp "shop/application/order"
	"shop/config"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Router assembles the gin engine: middleware chain, /metrics and the
// versioned /api routes.
type Router struct {
	engine *gin.Engine
}

// NewRouter Create and wire the HTTP router
func NewRouter(
	cfg *config.Config,
	sqlDB *sql.DB,
	memberService *memberapp.ApplicationService,
	itemService *itemapp.ApplicationService,
	orderService *orderapp.ApplicationService,
	queryService *orderapp.QueryService,
) *Router {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(
		middleware.RequestIDMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.RecoveryMiddleware(),
		middleware.CORSMiddleware(&cfg.CORS),
		middleware.RateLimitMiddleware(&cfg.Server.RateLimit),
	)

	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := engine.Group("/api")
	health.NewController(cfg, sqlDB).RegisterRoutes(api)
	memberapi.NewController(memberService).RegisterRoutes(api.Group("/v1"))
	itemapi.NewController(itemService).RegisterRoutes(api.Group("/v1"))
	orderapi.NewController(orderService, queryService).RegisterRoutes(api)
	orderapi.NewSimpleController(queryService).RegisterRoutes(api)

	return &Router{engine: engine}
}

// Engine exposes the underlying gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
