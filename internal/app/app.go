package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/HANSKMIEL/landscape-architecture-tool-sub003/internal/config"
	"github.com/HANSKMIEL/landscape-architecture-tool-sub003/internal/database"
	"github.com/HANSKMIEL/landscape-architecture-tool-sub003/internal/handlers"
	"github.com/HANSKMIEL/landscape-architecture-tool-sub003/internal/middleware"
	"github.com/HANSKMIEL/landscape-architecture-tool-sub003/internal/services"
)

type App struct {
	config   *config.Config
	logger   *logrus.Logger
	db       *database.Database
	services *services.Services
	handlers *handlers.Handlers
	router   *gin.Engine
}

func New(cfg *config.Config) (*App, error) {
	app := &App{
		config: cfg,
		logger: setupLogger(cfg),
	}

	db, err := database.New(cfg, app.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	svcs, err := services.New(cfg, app.logger, db)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}
	app.services = svcs

	app.handlers, err = handlers.New(cfg, app.logger, svcs)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize handlers: %w", err)
	}

	app.setupRouter()

	return app, nil
}

func (a *App) Router() *gin.Engine {
	return a.router
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("Shutting down application...")

	if err := a.services.Publisher.Close(); err != nil {
		a.logger.WithError(err).Error("Error closing Kafka publisher")
	}

	if err := a.db.Close(); err != nil {
		a.logger.WithError(err).Error("Error closing database connections")
		return err
	}

	return nil
}

func setupLogger(cfg *config.Config) *logrus.Logger {
	logger := logrus.New()

	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if cfg.Logging.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}

func (a *App) setupRouter() {
	if a.config.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(middleware.Logger(a.logger))
	router.Use(middleware.Recovery(a.logger))
	router.Use(middleware.CORS(a.config))

	// Health and metrics endpoints (no auth required)
	router.GET("/health", a.handlers.Health.Check)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Token issuance sits outside the authenticated group.
	router.POST("/api/v1/auth/token", a.handlers.Auth.Token)

	api := router.Group("/api/v1")
	{
		api.Use(middleware.Auth(a.services.Auth, a.logger))

		api.DELETE("/auth/token", a.handlers.Auth.Revoke)

		api.GET("/criteria-options", a.handlers.Options.Get)
		api.POST("/criteria-options/invalidate", a.handlers.Options.Invalidate)

		recommendations := api.Group("/recommendations")
		{
			recommendations.POST("", a.handlers.Recommendation.Recommend)
			recommendations.POST("/feedback", a.handlers.Feedback.Submit)
			recommendations.GET("/feedback/:requestId", a.handlers.Feedback.Get)
		}
	}

	a.router = router
}
