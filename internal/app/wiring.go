package app

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	redisclient "github.com/yungbote/cemse-backend/internal/clients/redis"
	"github.com/yungbote/cemse-backend/internal/data/repos"
	"github.com/yungbote/cemse-backend/internal/http"
	httpH "github.com/yungbote/cemse-backend/internal/http/handlers"
	httpMW "github.com/yungbote/cemse-backend/internal/http/middleware"
	bp "github.com/yungbote/cemse-backend/internal/modules/businessplan"
	"github.com/yungbote/cemse-backend/internal/platform/logger"
	"github.com/yungbote/cemse-backend/internal/services"
)

type Repos struct {
	BusinessPlan repos.BusinessPlanRepo
}

type Services struct {
	Auth         services.AuthService
	BusinessPlan services.BusinessPlanService
	Notifier     services.PlanNotifier
}

type Handlers struct {
	Health       *httpH.HealthHandler
	BusinessPlan *httpH.BusinessPlanHandler
}

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		BusinessPlan: repos.NewBusinessPlanRepo(db, log),
	}
}

func wireServices(log *logger.Logger, cfg Config, reposet Repos, events redisclient.PlanEventBus) (Services, error) {
	log.Info("Wiring services...")
	policy, err := bp.ParsePolicy(cfg.SanitizePolicy)
	if err != nil {
		return Services{}, fmt.Errorf("sanitize policy: %w", err)
	}
	sanitizer := bp.NewSanitizer(policy)
	log.Info("Sanitizer ready", "policy", sanitizer.Policy())
	notifier := services.NewPlanNotifier(events)
	return Services{
		Auth:         services.NewAuthService(log, cfg.JWTSecretKey),
		BusinessPlan: services.NewBusinessPlanService(log, reposet.BusinessPlan, sanitizer, notifier),
		Notifier:     notifier,
	}, nil
}

func wireHandlers(log *logger.Logger, serviceset Services, db httpH.Pinger) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:       httpH.NewHealthHandler(db),
		BusinessPlan: httpH.NewBusinessPlanHandler(log, serviceset.BusinessPlan),
	}
}

func wireMiddleware(log *logger.Logger, serviceset Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, serviceset.Auth),
	}
}

func wireRouter(log *logger.Logger, cfg Config, handlers Handlers, middleware Middleware) *gin.Engine {
	return http.NewRouter(http.RouterConfig{
		Log:                 log,
		ServiceName:         cfg.ServiceName,
		CORSOrigins:         cfg.CORSOrigins,
		AuthMiddleware:      middleware.Auth,
		BusinessPlanHandler: handlers.BusinessPlan,
		HealthHandler:       handlers.Health,
	})
}
