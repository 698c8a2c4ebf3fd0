package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Kafka    KafkaConfig    `mapstructure:"kafka"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Engine   EngineConfig   `mapstructure:"engine"`
	Feedback FeedbackConfig `mapstructure:"feedback"`
	Security SecurityConfig `mapstructure:"security"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	URL            string        `mapstructure:"url"`
	MaxConnections int           `mapstructure:"max_connections"`
	MaxIdleTime    time.Duration `mapstructure:"max_idle_time"`
	MaxLifetime    time.Duration `mapstructure:"max_lifetime"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

type RedisConfig struct {
	URL        string        `mapstructure:"url"`
	MaxRetries int           `mapstructure:"max_retries"`
	PoolSize   int           `mapstructure:"pool_size"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers"`
	Topics  struct {
		Feedback string `mapstructure:"feedback"`
	} `mapstructure:"topics"`
}

type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
	// APIKeys maps a pre-shared client key to the role its tokens carry.
	APIKeys map[string]string `mapstructure:"api_keys"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// EngineConfig holds every recommendation-engine tunable: the scoring weight
// table, explanation thresholds, ranking cap, worker pool size and the
// per-request deadline. Nothing in the engine is hard-coded; retuning is a
// config change.
type EngineConfig struct {
	TopN           int            `mapstructure:"top_n"`
	Workers        int            `mapstructure:"workers"`
	RequestTimeout time.Duration  `mapstructure:"request_timeout"`
	RequestTTL     time.Duration  `mapstructure:"request_ttl"`
	OptionsTTL     time.Duration  `mapstructure:"options_ttl"`
	PHTolerance    float64        `mapstructure:"ph_tolerance"`
	Weights        WeightsConfig  `mapstructure:"weights"`
	Thresholds     ThresholdTable `mapstructure:"thresholds"`
}

// WeightsConfig is the named, versioned per-dimension weight mapping.
type WeightsConfig struct {
	Version    string             `mapstructure:"version"`
	Dimensions map[string]float64 `mapstructure:"dimensions"`
}

// ThresholdTable holds the strong/weak partial-score cut-offs used by the
// explanation generator.
type ThresholdTable struct {
	Strong float64 `mapstructure:"strong"`
	Weak   float64 `mapstructure:"weak"`
}

type FeedbackConfig struct {
	RatingMin int `mapstructure:"rating_min"`
	RatingMax int `mapstructure:"rating_max"`
}

type SecurityConfig struct {
	CORS CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AllowedMethods []string `mapstructure:"allowed_methods"`
	AllowedHeaders []string `mapstructure:"allowed_headers"`
}

func Load() (*Config, error) {
	viper.SetConfigName("app")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	setDefaults()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		// Config file is optional, continue with env vars and defaults
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults() {
	// Server defaults
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "development")

	// Database defaults
	viper.SetDefault("database.max_connections", 25)
	viper.SetDefault("database.max_idle_time", "15m")
	viper.SetDefault("database.max_lifetime", "1h")
	viper.SetDefault("database.connect_timeout", "10s")

	// Redis defaults
	viper.SetDefault("redis.url", "redis://localhost:6379/0")
	viper.SetDefault("redis.max_retries", 3)
	viper.SetDefault("redis.pool_size", 10)
	viper.SetDefault("redis.timeout", "5s")

	// Kafka defaults
	viper.SetDefault("kafka.brokers", []string{"localhost:9092"})
	viper.SetDefault("kafka.topics.feedback", "plant-feedback")

	// Auth defaults
	viper.SetDefault("auth.token_ttl", "24h")

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "text")

	// Engine defaults
	viper.SetDefault("engine.top_n", 20)
	viper.SetDefault("engine.workers", 0) // 0 means runtime.NumCPU()
	viper.SetDefault("engine.request_timeout", "2s")
	viper.SetDefault("engine.request_ttl", "720h")
	viper.SetDefault("engine.options_ttl", "1h")
	viper.SetDefault("engine.ph_tolerance", 2.0)
	viper.SetDefault("engine.thresholds.strong", 0.8)
	viper.SetDefault("engine.thresholds.weak", 0.4)
	viper.SetDefault("engine.weights.version", "2024.1")

	// Feedback defaults
	viper.SetDefault("feedback.rating_min", 1)
	viper.SetDefault("feedback.rating_max", 5)

	// Security defaults
	viper.SetDefault("security.cors.allowed_origins", []string{"*"})
	viper.SetDefault("security.cors.allowed_methods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	viper.SetDefault("security.cors.allowed_headers", []string{"*"})
}
