package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HANSKMIEL/landscape-architecture-tool-sub003/internal/config"
	"github.com/HANSKMIEL/landscape-architecture-tool-sub003/pkg/models"
)

type stubCatalog struct {
	plants []models.PlantRecord
	err    error
}

func (s *stubCatalog) ListPlants(context.Context) ([]models.PlantRecord, error) {
	return s.plants, s.err
}

type stubOptions struct {
	opts models.CriteriaOptions
}

func (s *stubOptions) Options(context.Context) (models.CriteriaOptions, error) {
	return s.opts, nil
}

func (s *stubOptions) Invalidate(context.Context) error { return nil }

func testEngineConfig() config.EngineConfig {
	return config.EngineConfig{
		TopN:           20,
		Workers:        2,
		RequestTimeout: 2 * time.Second,
		PHTolerance:    2.0,
		Thresholds:     config.ThresholdTable{Strong: 0.8, Weak: 0.4},
	}
}

func newTestEngine(plants []models.PlantRecord, cfg config.EngineConfig) (*RecommendationEngine, *MemoryRequestStore) {
	requests := NewMemoryRequestStore()
	engine := NewRecommendationEngine(
		&stubCatalog{plants: plants},
		&stubOptions{opts: testOptions()},
		requests,
		cfg,
		testLogger(),
	)
	return engine, requests
}

func TestRecommendationEngine_Recommend(t *testing.T) {
	t.Run("end to end: filter, score, explain, rank", func(t *testing.T) {
		compatible := testPlant("Acer campestre")
		compatible.HardinessZoneMin, compatible.HardinessZoneMax = 3, 7
		incompatible := testPlant("Buddleja davidii")
		incompatible.HardinessZoneMin, incompatible.HardinessZoneMax = 6, 9

		engine, requests := newTestEngine([]models.PlantRecord{compatible, incompatible}, testEngineConfig())

		result, err := engine.Recommend(context.Background(), map[string]interface{}{
			"hardiness_zone": "5",
		})
		require.NoError(t, err)

		require.Len(t, result.Recommendations, 1)
		top := result.Recommendations[0]
		assert.Equal(t, "Acer campestre", top.Plant.BotanicalName)
		assert.False(t, result.Partial)

		// Zone 5 is strictly inside 3-7, so the hardiness dimension is a
		// strong match and must surface as a reason.
		require.NotEmpty(t, top.MatchReasons)
		assert.Contains(t, top.MatchReasons[0], "hardiness zone 5")

		// The criteria snapshot must be retrievable by request ID.
		snapshot, err := requests.Get(context.Background(), result.RequestID)
		require.NoError(t, err)
		require.NotNil(t, snapshot.Criteria.HardinessZone)
		assert.Equal(t, 5, *snapshot.Criteria.HardinessZone)
	})

	t.Run("marginal hardiness zone surfaces a warning", func(t *testing.T) {
		edge := testPlant("Hydrangea paniculata")
		edge.HardinessZoneMin, edge.HardinessZoneMax = 5, 8

		engine, _ := newTestEngine([]models.PlantRecord{edge}, testEngineConfig())

		result, err := engine.Recommend(context.Background(), map[string]interface{}{
			"hardiness_zone": "5",
		})
		require.NoError(t, err)
		require.Len(t, result.Recommendations, 1)
		require.NotEmpty(t, result.Recommendations[0].Warnings)
		assert.Contains(t, result.Recommendations[0].Warnings[0], "edge")
	})

	t.Run("height envelope: contained range scores one, disjoint warns", func(t *testing.T) {
		contained := testPlant("Spiraea japonica")
		contained.HeightMin, contained.HeightMax = 1.5, 1.8
		disjoint := testPlant("Fagus sylvatica")
		disjoint.HeightMin, disjoint.HeightMax = 3.0, 4.0

		engine, _ := newTestEngine([]models.PlantRecord{contained, disjoint}, testEngineConfig())

		result, err := engine.Recommend(context.Background(), map[string]interface{}{
			"desired_height_min": 1.0,
			"desired_height_max": 2.0,
		})
		require.NoError(t, err)
		require.Len(t, result.Recommendations, 2)

		top := result.Recommendations[0]
		assert.Equal(t, "Spiraea japonica", top.Plant.BotanicalName)
		assert.InDelta(t, 1.0, top.Score, 0.001)
		require.NotEmpty(t, top.MatchReasons)
		assert.Contains(t, top.MatchReasons[0], "fits the desired envelope")

		// Height is not a hard constraint: the disjoint plant stays in the
		// result, scored zero, with the mismatch surfaced as a warning.
		bottom := result.Recommendations[1]
		assert.Equal(t, "Fagus sylvatica", bottom.Plant.BotanicalName)
		assert.InDelta(t, 0.0, bottom.Score, 0.001)
		require.NotEmpty(t, bottom.Warnings)
		assert.Contains(t, bottom.Warnings[0], "falls outside the desired envelope")
	})

	t.Run("no criteria yields neutral baseline for everything", func(t *testing.T) {
		engine, _ := newTestEngine([]models.PlantRecord{
			testPlant("Cornus mas"), testPlant("Betula pendula"),
		}, testEngineConfig())

		result, err := engine.Recommend(context.Background(), map[string]interface{}{})
		require.NoError(t, err)
		require.Len(t, result.Recommendations, 2)
		for _, rec := range result.Recommendations {
			assert.InDelta(t, 0.5, rec.Score, 0.001)
			assert.Empty(t, rec.MatchReasons)
			assert.Empty(t, rec.Warnings)
		}
		// Ties resolve alphabetically.
		assert.Equal(t, "Betula pendula", result.Recommendations[0].Plant.BotanicalName)
	})

	t.Run("empty survivor set is a result, not an error", func(t *testing.T) {
		plant := testPlant("Ilex aquifolium")
		plant.HardinessZoneMin, plant.HardinessZoneMax = 7, 9

		engine, _ := newTestEngine([]models.PlantRecord{plant}, testEngineConfig())

		result, err := engine.Recommend(context.Background(), map[string]interface{}{
			"hardiness_zone": "3",
		})
		require.NoError(t, err)
		assert.Empty(t, result.Recommendations)
		assert.NotEmpty(t, result.Note)
		assert.False(t, result.Partial)
	})

	t.Run("invalid criteria surface as ValidationError", func(t *testing.T) {
		engine, _ := newTestEngine([]models.PlantRecord{testPlant("Taxus baccata")}, testEngineConfig())

		_, err := engine.Recommend(context.Background(), map[string]interface{}{
			"soil_ph": "abc",
		})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "soil_ph", verr.Fields[0].Field)
	})

	t.Run("expired deadline yields a partial result", func(t *testing.T) {
		var plants []models.PlantRecord
		for i := 0; i < 50; i++ {
			plants = append(plants, testPlant("Taxus baccata"))
		}

		cfg := testEngineConfig()
		cfg.RequestTimeout = time.Nanosecond

		engine, _ := newTestEngine(plants, cfg)

		result, err := engine.Recommend(context.Background(), map[string]interface{}{
			"sun_exposure": "Full Sun",
		})
		require.NoError(t, err)
		assert.True(t, result.Partial)
		assert.NotEmpty(t, result.Note)
		assert.Less(t, len(result.Recommendations), len(plants))
	})

	t.Run("partial flag tracks dropped candidates exactly", func(t *testing.T) {
		var plants []models.PlantRecord
		for i := 0; i < 3; i++ {
			plants = append(plants, testPlant("Taxus baccata"))
		}

		cfg := testEngineConfig()
		cfg.RequestTimeout = time.Millisecond

		engine, _ := newTestEngine(plants, cfg)

		// Whether the tight deadline strikes or not, a run that scored every
		// candidate must never be flagged partial.
		for i := 0; i < 25; i++ {
			result, err := engine.Recommend(context.Background(), map[string]interface{}{
				"sun_exposure": "Full Sun",
			})
			require.NoError(t, err)
			assert.Equal(t, len(result.Recommendations) < len(plants), result.Partial)
		}
	})

	t.Run("results are capped at top N", func(t *testing.T) {
		var plants []models.PlantRecord
		for i := 0; i < 30; i++ {
			plants = append(plants, testPlant("Taxus baccata"))
		}

		engine, _ := newTestEngine(plants, testEngineConfig())

		result, err := engine.Recommend(context.Background(), map[string]interface{}{
			"sun_exposure": "Full Sun",
		})
		require.NoError(t, err)
		assert.Len(t, result.Recommendations, 20)
	})

	t.Run("every request gets a fresh request ID", func(t *testing.T) {
		engine, _ := newTestEngine([]models.PlantRecord{testPlant("Taxus baccata")}, testEngineConfig())

		first, err := engine.Recommend(context.Background(), map[string]interface{}{})
		require.NoError(t, err)
		second, err := engine.Recommend(context.Background(), map[string]interface{}{})
		require.NoError(t, err)
		assert.NotEqual(t, first.RequestID, second.RequestID)
	})
}
