package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HANSKMIEL/landscape-architecture-tool-sub003/internal/config"
	"github.com/HANSKMIEL/landscape-architecture-tool-sub003/internal/services"
	"github.com/HANSKMIEL/landscape-architecture-tool-sub003/internal/validation"
	"github.com/HANSKMIEL/landscape-architecture-tool-sub003/pkg/models"
)

type fixedCatalog struct {
	plants []models.PlantRecord
}

func (c *fixedCatalog) ListPlants(context.Context) ([]models.PlantRecord, error) {
	return c.plants, nil
}

type fixedOptions struct{}

func (fixedOptions) Options(context.Context) (models.CriteriaOptions, error) {
	return models.CriteriaOptions{
		HardinessZones:    []string{"3", "4", "5", "6", "7", "8", "9"},
		SunExposures:      []string{"Full Sun", "Partial Shade", "Full Shade"},
		SoilTypes:         []string{"Clay", "Loam", "Sand"},
		MoistureLevels:    []string{"Dry", "Moist", "Wet"},
		BloomSeasons:      []string{"Spring", "Summer", "Autumn", "Winter"},
		BloomColors:       []string{"White", "Yellow", "Pink"},
		MaintenanceLevels: []string{"Low", "Medium", "High"},
		BudgetRanges:      []string{"Budget", "Moderate", "Premium"},
	}, nil
}

func (fixedOptions) Invalidate(context.Context) error { return nil }

func fixturePlant() models.PlantRecord {
	return models.PlantRecord{
		ID:               uuid.New(),
		BotanicalName:    "Acer campestre",
		CommonName:       "Field Maple",
		Category:         "Tree",
		HeightMin:        5, HeightMax: 12,
		WidthMin: 3, WidthMax: 8,
		HardinessZoneMin: 4, HardinessZoneMax: 8,
		SunExposure: "Full Sun", SoilType: "Loam",
		SoilPHMin: 5.5, SoilPHMax: 7.5,
		MoistureLevel: "Moist", MaintenanceLevel: "Low",
		BloomColors: []string{"Yellow"}, BloomSeason: "Spring",
		Native: true, DeerResistant: true, PollinatorFriendly: true,
		Price: 45, BudgetBand: "Moderate",
	}
}

type testHarness struct {
	router   *gin.Engine
	requests *services.MemoryRequestStore
}

func newTestHarness(t *testing.T) *testHarness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	engineCfg := config.EngineConfig{
		TopN:           20,
		Workers:        2,
		RequestTimeout: 2 * time.Second,
		PHTolerance:    2.0,
		Thresholds:     config.ThresholdTable{Strong: 0.8, Weak: 0.4},
	}

	requests := services.NewMemoryRequestStore()
	engine := services.NewRecommendationEngine(
		&fixedCatalog{plants: []models.PlantRecord{fixturePlant()}},
		fixedOptions{}, requests, engineCfg, logger,
	)
	recorder := services.NewFeedbackRecorder(
		services.NewMemoryFeedbackStore(), requests, nil,
		config.FeedbackConfig{RatingMin: 1, RatingMax: 5}, logger,
	)

	validator, err := validation.NewSchemaValidator()
	require.NoError(t, err)

	recommendationHandler := NewRecommendationHandler(engine, validator, logger)
	feedbackHandler := NewFeedbackHandler(recorder, validator, logger)

	router := gin.New()
	router.POST("/api/v1/recommendations", recommendationHandler.Recommend)
	router.POST("/api/v1/recommendations/feedback", feedbackHandler.Submit)
	router.GET("/api/v1/recommendations/feedback/:requestId", feedbackHandler.Get)

	return &testHarness{router: router, requests: requests}
}

func (h *testHarness) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

func TestRecommendationHandler_Recommend(t *testing.T) {
	t.Run("returns ranked recommendations", func(t *testing.T) {
		harness := newTestHarness(t)

		w := harness.do(t, http.MethodPost, "/api/v1/recommendations", map[string]interface{}{
			"hardiness_zone": "5",
			"sun_exposure":   "full sun",
		})
		require.Equal(t, http.StatusOK, w.Code)

		var result models.RecommendationResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		assert.NotEqual(t, uuid.Nil, result.RequestID)
		require.Len(t, result.Recommendations, 1)
		assert.Equal(t, "Acer campestre", result.Recommendations[0].Plant.BotanicalName)
		assert.NotEmpty(t, result.Recommendations[0].MatchReasons)
		assert.False(t, result.Partial)
	})

	t.Run("unknown payload key is a 400", func(t *testing.T) {
		harness := newTestHarness(t)

		w := harness.do(t, http.MethodPost, "/api/v1/recommendations", map[string]interface{}{
			"favourite_color": "blue",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "VALIDATION_FAILED")
	})

	t.Run("invalid field value is a 400 naming the field", func(t *testing.T) {
		harness := newTestHarness(t)

		w := harness.do(t, http.MethodPost, "/api/v1/recommendations", map[string]interface{}{
			"soil_ph": "abc",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "soil_ph")
	})

	t.Run("non-object body is a 400", func(t *testing.T) {
		harness := newTestHarness(t)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/recommendations", bytes.NewReader([]byte("[1,2]")))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		harness.router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("empty criteria is a valid request", func(t *testing.T) {
		harness := newTestHarness(t)

		w := harness.do(t, http.MethodPost, "/api/v1/recommendations", map[string]interface{}{})
		require.Equal(t, http.StatusOK, w.Code)

		var result models.RecommendationResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		require.Len(t, result.Recommendations, 1)
		assert.InDelta(t, 0.5, result.Recommendations[0].Score, 0.001)
	})
}

func TestFeedbackHandler(t *testing.T) {
	t.Run("submit and read back", func(t *testing.T) {
		harness := newTestHarness(t)

		w := harness.do(t, http.MethodPost, "/api/v1/recommendations", map[string]interface{}{})
		require.Equal(t, http.StatusOK, w.Code)
		var result models.RecommendationResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))

		plantID := result.Recommendations[0].Plant.ID
		w = harness.do(t, http.MethodPost, "/api/v1/recommendations/feedback", map[string]interface{}{
			"request_id": result.RequestID,
			"rating":     4,
			"feedback": map[string]interface{}{
				"selected_plant_ids": []string{plantID.String()},
				"comments":           "good match",
			},
		})
		require.Equal(t, http.StatusNoContent, w.Code)

		w = harness.do(t, http.MethodGet, "/api/v1/recommendations/feedback/"+result.RequestID.String(), nil)
		require.Equal(t, http.StatusOK, w.Code)

		var feedback models.Feedback
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &feedback))
		assert.Equal(t, 4, feedback.Rating)
		assert.Equal(t, []uuid.UUID{plantID}, feedback.SelectedPlantIDs)
	})

	t.Run("unknown request id is a 404", func(t *testing.T) {
		harness := newTestHarness(t)

		w := harness.do(t, http.MethodPost, "/api/v1/recommendations/feedback", map[string]interface{}{
			"request_id": uuid.New(),
			"rating":     3,
			"feedback":   map[string]interface{}{},
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "REQUEST_NOT_FOUND")
	})

	t.Run("out of range rating is a 400", func(t *testing.T) {
		harness := newTestHarness(t)

		w := harness.do(t, http.MethodPost, "/api/v1/recommendations", map[string]interface{}{})
		require.Equal(t, http.StatusOK, w.Code)
		var result models.RecommendationResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))

		w = harness.do(t, http.MethodPost, "/api/v1/recommendations/feedback", map[string]interface{}{
			"request_id": result.RequestID,
			"rating":     9,
			"feedback":   map[string]interface{}{},
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "rating")
	})

	t.Run("malformed request id in read path is a 400", func(t *testing.T) {
		harness := newTestHarness(t)

		w := harness.do(t, http.MethodGet, "/api/v1/recommendations/feedback/not-a-uuid", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown field in feedback body fails schema validation", func(t *testing.T) {
		harness := newTestHarness(t)

		w := harness.do(t, http.MethodPost, "/api/v1/recommendations/feedback", map[string]interface{}{
			"request_id": uuid.New(),
			"rating":     3,
			"sentiment":  "positive",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "VALIDATION_FAILED")
	})

	t.Run("missing rating fails schema validation", func(t *testing.T) {
		harness := newTestHarness(t)

		w := harness.do(t, http.MethodPost, "/api/v1/recommendations/feedback", map[string]interface{}{
			"request_id": uuid.New(),
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "rating")
	})
}

type countingOptions struct {
	fixedOptions
	invalidations int
}

func (c *countingOptions) Invalidate(context.Context) error {
	c.invalidations++
	return nil
}

func TestOptionsHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	options := &countingOptions{}
	handler := NewOptionsHandler(options, logger)

	router := gin.New()
	router.GET("/api/v1/criteria-options", handler.Get)
	router.POST("/api/v1/criteria-options/invalidate", handler.Invalidate)

	t.Run("get returns the enumerations", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/criteria-options", nil))

		require.Equal(t, http.StatusOK, w.Code)
		var opts models.CriteriaOptions
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &opts))
		assert.Contains(t, opts.SunExposures, "Full Sun")
	})

	t.Run("invalidate drops the cache", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/criteria-options/invalidate", nil))

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, 1, options.invalidations)
	})
}

func TestAuthHandler_Token(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret: "test-secret",
			TokenTTL:  time.Hour,
			APIKeys:   map[string]string{"designer-key": "designer"},
		},
	}

	// Session storage degrades gracefully when Redis is unreachable, so a
	// dead client address is enough for token issuance.
	auth := services.NewAuthService(cfg, logger, redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"}))
	handler := NewAuthHandler(auth, cfg, logger)

	router := gin.New()
	router.POST("/api/v1/auth/token", handler.Token)

	issue := func(t *testing.T, body interface{}) *httptest.ResponseRecorder {
		t.Helper()
		data, err := json.Marshal(body)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/token", bytes.NewReader(data))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("known api key yields a bearer token", func(t *testing.T) {
		w := issue(t, map[string]string{"api_key": "designer-key"})

		require.Equal(t, http.StatusOK, w.Code)
		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp["token"])
		assert.Equal(t, "Bearer", resp["token_type"])
		assert.InDelta(t, 3600, resp["expires_in"], 0.1)
	})

	t.Run("unknown api key is a 401", func(t *testing.T) {
		w := issue(t, map[string]string{"api_key": "wrong"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_API_KEY")
	})

	t.Run("missing api key is a 400", func(t *testing.T) {
		w := issue(t, map[string]string{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
