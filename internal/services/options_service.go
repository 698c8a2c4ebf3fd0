package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/HANSKMIEL/landscape-architecture-tool-sub003/pkg/models"
)

// OptionsService exposes the criteria options collaborator: the valid
// enumerations the normalizer validates against. Read-only reference data,
// cached with an explicit invalidation path.
type OptionsService interface {
	Options(ctx context.Context) (models.CriteriaOptions, error)
	Invalidate(ctx context.Context) error
}

const optionsCacheKey = "criteria_options"

// CachedOptionsService loads enumerations from the criteria_options table
// and caches the assembled set in Redis with a configurable TTL.
type CachedOptionsService struct {
	db     DatabaseQuerier
	redis  *redis.Client
	ttl    time.Duration
	logger *logrus.Logger
}

func NewCachedOptionsService(db DatabaseQuerier, redisClient *redis.Client, ttl time.Duration, logger *logrus.Logger) *CachedOptionsService {
	return &CachedOptionsService{
		db:     db,
		redis:  redisClient,
		ttl:    ttl,
		logger: logger,
	}
}

func (s *CachedOptionsService) Options(ctx context.Context) (models.CriteriaOptions, error) {
	if s.redis != nil {
		if cached := s.redis.Get(ctx, optionsCacheKey).Val(); cached != "" {
			var opts models.CriteriaOptions
			if err := json.Unmarshal([]byte(cached), &opts); err == nil {
				return opts, nil
			}
			s.logger.Warn("Discarding unreadable cached criteria options")
		}
	}

	opts, err := s.load(ctx)
	if err != nil {
		return models.CriteriaOptions{}, err
	}

	if s.redis != nil {
		if data, err := json.Marshal(opts); err == nil {
			if err := s.redis.Set(ctx, optionsCacheKey, data, s.ttl).Err(); err != nil {
				s.logger.WithError(err).Warn("Failed to cache criteria options")
			}
		}
	}

	return opts, nil
}

// Invalidate drops the cached enumeration set; the next Options call reloads
// from the database.
func (s *CachedOptionsService) Invalidate(ctx context.Context) error {
	if s.redis == nil {
		return nil
	}
	if err := s.redis.Del(ctx, optionsCacheKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate criteria options cache: %w", err)
	}
	return nil
}

const listOptionsQuery = `
	SELECT category, value
	FROM criteria_options
	ORDER BY category, sort_order, value`

func (s *CachedOptionsService) load(ctx context.Context) (models.CriteriaOptions, error) {
	rows, err := s.db.Query(ctx, listOptionsQuery)
	if err != nil {
		return models.CriteriaOptions{}, fmt.Errorf("failed to query criteria options: %w", err)
	}
	defer rows.Close()

	var opts models.CriteriaOptions
	for rows.Next() {
		var category, value string
		if err := rows.Scan(&category, &value); err != nil {
			s.logger.WithError(err).Warn("Failed to scan criteria option row, skipping")
			continue
		}

		switch category {
		case "hardiness_zone":
			opts.HardinessZones = append(opts.HardinessZones, value)
		case "sun_exposure":
			opts.SunExposures = append(opts.SunExposures, value)
		case "soil_type":
			opts.SoilTypes = append(opts.SoilTypes, value)
		case "moisture_level":
			opts.MoistureLevels = append(opts.MoistureLevels, value)
		case "bloom_season":
			opts.BloomSeasons = append(opts.BloomSeasons, value)
		case "bloom_color":
			opts.BloomColors = append(opts.BloomColors, value)
		case "maintenance_level":
			opts.MaintenanceLevels = append(opts.MaintenanceLevels, value)
		case "budget_range":
			opts.BudgetRanges = append(opts.BudgetRanges, value)
		default:
			s.logger.WithField("category", category).Debug("Ignoring unknown criteria option category")
		}
	}

	if err := rows.Err(); err != nil {
		return models.CriteriaOptions{}, fmt.Errorf("failed reading criteria option rows: %w", err)
	}
	return opts, nil
}
