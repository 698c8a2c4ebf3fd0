package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Mode)

	assert.Equal(t, 20, cfg.Engine.TopN)
	assert.Equal(t, 0, cfg.Engine.Workers)
	assert.Equal(t, 2*time.Second, cfg.Engine.RequestTimeout)
	assert.Equal(t, 720*time.Hour, cfg.Engine.RequestTTL)
	assert.Equal(t, time.Hour, cfg.Engine.OptionsTTL)
	assert.InDelta(t, 2.0, cfg.Engine.PHTolerance, 0.001)
	assert.InDelta(t, 0.8, cfg.Engine.Thresholds.Strong, 0.001)
	assert.InDelta(t, 0.4, cfg.Engine.Thresholds.Weak, 0.001)
	assert.Equal(t, "2024.1", cfg.Engine.Weights.Version)

	assert.Equal(t, 1, cfg.Feedback.RatingMin)
	assert.Equal(t, 5, cfg.Feedback.RatingMax)

	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "plant-feedback", cfg.Kafka.Topics.Feedback)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.NotEmpty(t, cfg.Security.CORS.AllowedOrigins)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("ENGINE_TOP_N", "5")
	t.Setenv("SERVER_PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Engine.TopN)
	assert.Equal(t, "9090", cfg.Server.Port)
}
