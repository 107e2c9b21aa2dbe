package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/cemse-backend/internal/http/handlers"
	httpMW "github.com/yungbote/cemse-backend/internal/http/middleware"
	"github.com/yungbote/cemse-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	ServiceName    string
	CORSOrigins    []string
	AuthMiddleware *httpMW.AuthMiddleware

	BusinessPlanHandler *httpH.BusinessPlanHandler
	HealthHandler       *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log, "/healthcheck", "/readyz"))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
		r.GET("/readyz", cfg.HealthHandler.Ready)
	}

	api := r.Group("/api")
	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// Business plans
		if cfg.BusinessPlanHandler != nil {
			protected.POST("/business-plans", cfg.BusinessPlanHandler.Create)
			protected.GET("/business-plans", cfg.BusinessPlanHandler.List)
			protected.GET("/business-plans/:id", cfg.BusinessPlanHandler.Get)
			protected.PATCH("/business-plans/:id", cfg.BusinessPlanHandler.Update)
			protected.DELETE("/business-plans/:id", cfg.BusinessPlanHandler.Delete)
		}
	}

	return r
}
