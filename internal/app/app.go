package app

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"

	redisclient "github.com/yungbote/cemse-backend/internal/clients/redis"
	"github.com/yungbote/cemse-backend/internal/data/db"
	"github.com/yungbote/cemse-backend/internal/observability"
	"github.com/yungbote/cemse-backend/internal/platform/logger"
)

type App struct {
	Log      *logger.Logger
	DB       *db.Service
	Router   *gin.Engine
	Cfg      Config
	Repos    Repos
	Services Services
	Events   redisclient.PlanEventBus

	shutdownTracing func(context.Context) error
}

func New() (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading configuration...")
	cfg, err := LoadConfig(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cfg.JWTSecretKey == "" {
		log.Warn("JWT_SECRET_KEY not set; every API request will be rejected")
	}

	shutdownTracing, err := observability.InitOTel(context.Background(), log, observability.OtelConfig{
		Enabled:     cfg.Otel.Enabled,
		ServiceName: cfg.ServiceName,
		Environment: cfg.Environment,
		Exporter:    cfg.Otel.Exporter,
		Endpoint:    cfg.Otel.Endpoint,
		Headers:     cfg.Otel.Headers,
		Insecure:    cfg.Otel.Insecure,
		SampleRatio: cfg.Otel.SampleRatio,
	})
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init tracing: %w", err)
	}

	database, err := db.Open(cfg.dbConfig(), log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init database: %w", err)
	}
	log.Info("Database ready", "driver", database.Driver())
	if err := database.AutoMigrateAll(); err != nil {
		_ = database.Close()
		log.Sync()
		return nil, fmt.Errorf("automigrate: %w", err)
	}

	events, err := redisclient.NewPlanEventBus(log, redisclient.Options{Addr: cfg.Redis.Addr, Channel: cfg.Redis.Channel})
	if err != nil {
		_ = database.Close()
		log.Sync()
		return nil, fmt.Errorf("init plan events: %w", err)
	}

	reposet := wireRepos(database.DB(), log)
	serviceset, err := wireServices(log, cfg, reposet, events)
	if err != nil {
		_ = events.Close()
		_ = database.Close()
		log.Sync()
		return nil, err
	}
	handlerset := wireHandlers(log, serviceset, database)
	middleware := wireMiddleware(log, serviceset)
	router := wireRouter(log, cfg, handlerset, middleware)

	return &App{
		Log:             log,
		DB:              database,
		Router:          router,
		Cfg:             cfg,
		Repos:           reposet,
		Services:        serviceset,
		Events:          events,
		shutdownTracing: shutdownTracing,
	}, nil
}

func (a *App) Close(ctx context.Context) {
	if a == nil {
		return
	}
	if a.Events != nil {
		if err := a.Events.Close(); err != nil {
			a.Log.Warn("Closing plan event bus failed", "error", err)
		}
	}
	if a.shutdownTracing != nil {
		if err := a.shutdownTracing(ctx); err != nil {
			a.Log.Warn("Tracing shutdown failed", "error", err)
		}
	}
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			a.Log.Warn("Closing database failed", "error", err)
		}
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
