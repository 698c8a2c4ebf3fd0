package services

import (
	"github.com/sirupsen/logrus"

	"github.com/HANSKMIEL/landscape-architecture-tool-sub003/internal/config"
	"github.com/HANSKMIEL/landscape-architecture-tool-sub003/internal/database"
	"github.com/HANSKMIEL/landscape-architecture-tool-sub003/internal/messaging"
)

type Services struct {
	Auth             *AuthService
	Health           *HealthService
	Options          OptionsService
	Engine           *RecommendationEngine
	FeedbackRecorder *FeedbackRecorder
	Publisher        *messaging.FeedbackPublisher
}

func New(cfg *config.Config, logger *logrus.Logger, db *database.Database) (*Services, error) {
	authService := NewAuthService(cfg, logger, db.Redis)
	healthService := NewHealthService(cfg, logger, db)

	optionsService := NewCachedOptionsService(db.PG, db.Redis, cfg.Engine.OptionsTTL, logger)
	catalog := NewPostgresPlantCatalog(db.PG, logger)
	requestStore := NewRedisRequestStore(db.Redis, cfg.Engine.RequestTTL)

	engine := NewRecommendationEngine(catalog, optionsService, requestStore, cfg.Engine, logger)

	publisher := messaging.NewFeedbackPublisher(cfg, logger)
	feedbackStore := NewPostgresFeedbackStore(db.PG)
	feedbackRecorder := NewFeedbackRecorder(feedbackStore, requestStore, publisher, cfg.Feedback, logger)

	return &Services{
		Auth:             authService,
		Health:           healthService,
		Options:          optionsService,
		Engine:           engine,
		FeedbackRecorder: feedbackRecorder,
		Publisher:        publisher,
	}, nil
}
