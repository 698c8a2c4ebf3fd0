package handlers

import (
	"github.com/sirupsen/logrus"

	"github.com/HANSKMIEL/landscape-architecture-tool-sub003/internal/config"
	"github.com/HANSKMIEL/landscape-architecture-tool-sub003/internal/services"
	"github.com/HANSKMIEL/landscape-architecture-tool-sub003/internal/validation"
)

type Handlers struct {
	Health         *HealthHandler
	Auth           *AuthHandler
	Recommendation *RecommendationHandler
	Feedback       *FeedbackHandler
	Options        *OptionsHandler
}

func New(cfg *config.Config, logger *logrus.Logger, services *services.Services) (*Handlers, error) {
	validator, err := validation.NewSchemaValidator()
	if err != nil {
		return nil, err
	}

	return &Handlers{
		Health:         NewHealthHandler(logger, services.Health),
		Auth:           NewAuthHandler(services.Auth, cfg, logger),
		Recommendation: NewRecommendationHandler(services.Engine, validator, logger),
		Feedback:       NewFeedbackHandler(services.FeedbackRecorder, validator, logger),
		Options:        NewOptionsHandler(services.Options, logger),
	}, nil
}
