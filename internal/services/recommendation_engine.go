package services

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/HANSKMIEL/landscape-architecture-tool-sub003/internal/config"
	"github.com/HANSKMIEL/landscape-architecture-tool-sub003/pkg/models"
)

const partialResultNote = "Results are partial: the scoring deadline elapsed before every candidate was evaluated."

// RecommendationEngine drives a criteria payload through normalization,
// hard-constraint filtering, concurrent scoring, explanation, and ranking.
type RecommendationEngine struct {
	normalizer *CriteriaNormalizer
	filter     *CandidateFilter
	scorer     *ScoringEngine
	explainer  *ExplanationGenerator
	ranker     *Ranker
	catalog    PlantCatalog
	options    OptionsService
	requests   RequestStore
	cfg        config.EngineConfig
	logger     *logrus.Logger
}

func NewRecommendationEngine(catalog PlantCatalog, options OptionsService, requests RequestStore,
	cfg config.EngineConfig, logger *logrus.Logger) *RecommendationEngine {
	weights := WeightTableFromConfig(cfg.Weights)
	return &RecommendationEngine{
		normalizer: NewCriteriaNormalizer(logger),
		filter:     NewCandidateFilter(logger),
		scorer:     NewScoringEngine(weights, cfg.PHTolerance, logger),
		explainer:  NewExplanationGenerator(cfg.Thresholds, logger),
		ranker:     NewRanker(logger),
		catalog:    catalog,
		options:    options,
		requests:   requests,
		cfg:        cfg,
		logger:     logger,
	}
}

// Recommend produces a ranked recommendation list for a raw criteria payload.
// Criteria problems come back as *ValidationError; everything else is an
// infrastructure failure.
func (e *RecommendationEngine) Recommend(ctx context.Context, raw map[string]interface{}) (*models.RecommendationResult, error) {
	started := time.Now()
	recommendationRequests.Inc()
	defer func() {
		recommendationLatency.Observe(time.Since(started).Seconds())
	}()

	opts, err := e.options.Options(ctx)
	if err != nil {
		return nil, err
	}

	criteria, err := e.normalizer.Normalize(raw, opts)
	if err != nil {
		return nil, err
	}

	request := models.RecommendationRequest{
		RequestID: uuid.New(),
		Criteria:  *criteria,
		CreatedAt: time.Now().UTC(),
	}
	if err := e.requests.Save(ctx, request); err != nil {
		return nil, err
	}

	plants, err := e.catalog.ListPlants(ctx)
	if err != nil {
		return nil, err
	}

	candidates := e.filter.Filter(criteria, plants)
	candidatesSurvived.Observe(float64(len(candidates)))

	result := &models.RecommendationResult{
		RequestID:       request.RequestID,
		Recommendations: []models.ScoredPlant{},
		GeneratedAt:     time.Now().UTC(),
	}
	if len(candidates) == 0 {
		result.Note = "No plants satisfy the hard constraints; relax the hardiness zone or required attributes."
		e.logger.WithField("request_id", request.RequestID).Info("No candidates survived filtering")
		return result, nil
	}

	scored, partial := e.scoreAll(ctx, candidates, criteria)

	explained := make([]models.ScoredPlant, 0, len(scored))
	for _, candidate := range scored {
		explained = append(explained, e.explainer.Explain(candidate))
	}

	result.Recommendations = e.ranker.Rank(explained, criteria, e.cfg.TopN)
	result.Partial = partial
	if partial {
		result.Note = partialResultNote
		recommendationPartials.Inc()
	}

	e.logger.WithFields(logrus.Fields{
		"request_id": request.RequestID,
		"candidates": len(candidates),
		"returned":   len(result.Recommendations),
		"partial":    partial,
		"duration":   time.Since(started),
	}).Info("Recommendation request completed")

	return result, nil
}

// scoreAll scores candidates on a worker pool bounded by the request
// deadline. Candidates not reached before the deadline are dropped and the
// result is flagged partial rather than failed.
func (e *RecommendationEngine) scoreAll(ctx context.Context, candidates []models.PlantRecord, criteria *models.Criteria) ([]scoredCandidate, bool) {
	scoreCtx, cancel := context.WithTimeout(ctx, e.cfg.RequestTimeout)
	defer cancel()

	workers := e.cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	jobs := make(chan models.PlantRecord)
	results := make(chan scoredCandidate, len(candidates))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for plant := range jobs {
				e.scoreOne(plant, criteria, results)
			}
		}()
	}

	expired := false
feed:
	for _, plant := range candidates {
		select {
		case <-scoreCtx.Done():
			expired = true
			break feed
		case jobs <- plant:
		}
	}
	close(jobs)
	wg.Wait()
	close(results)

	scored := make([]scoredCandidate, 0, len(candidates))
	for candidate := range results {
		scored = append(scored, candidate)
	}

	// Every candidate handed to a worker gets scored; the batch is partial
	// only when the feed loop stopped before dispatching them all.
	return scored, expired
}

// scoreOne isolates a single candidate so a scoring panic skips that plant
// instead of taking down the request.
func (e *RecommendationEngine) scoreOne(plant models.PlantRecord, criteria *models.Criteria, results chan<- scoredCandidate) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.WithFields(logrus.Fields{
				"plant_id":       plant.ID,
				"botanical_name": plant.BotanicalName,
				"panic":          r,
			}).Error("Scoring panicked; candidate skipped")
		}
	}()
	results <- e.scorer.Score(plant, criteria)
}
