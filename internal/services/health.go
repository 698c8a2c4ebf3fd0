package services

import (
	"context"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/HANSKMIEL/landscape-architecture-tool-sub003/internal/config"
	"github.com/HANSKMIEL/landscape-architecture-tool-sub003/internal/database"
)

type HealthService struct {
	config *config.Config
	logger *logrus.Logger
	db     *database.Database

	healthCheckStatus *prometheus.GaugeVec
	systemMetrics     *prometheus.GaugeVec
}

type HealthStatus struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Services  map[string]string `json:"services"`
	Critical  []string          `json:"critical_failures,omitempty"`
}

func NewHealthService(cfg *config.Config, logger *logrus.Logger, db *database.Database) *HealthService {
	hs := &HealthService{
		config: cfg,
		logger: logger,
		db:     db,
	}

	hs.healthCheckStatus = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "health_check_status",
		Help: "Health check status (1 = healthy, 0 = unhealthy)",
	}, []string{"service"})

	hs.systemMetrics = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "system_info",
		Help: "System information metrics",
	}, []string{"metric_type"})

	// Register metrics with error handling - ignore if already registered
	if err := prometheus.Register(hs.healthCheckStatus); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
			logger.WithError(err).Warn("Failed to register health_check_status metric")
		}
	}
	if err := prometheus.Register(hs.systemMetrics); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
			logger.WithError(err).Warn("Failed to register system_info metric")
		}
	}

	go hs.collectSystemMetrics()

	return hs
}

func (s *HealthService) CheckHealth() *HealthStatus {
	status := &HealthStatus{
		Timestamp: time.Now(),
		Services:  make(map[string]string),
	}

	criticalServices := map[string]func() error{
		"postgresql": s.checkPostgreSQL,
		"redis":      s.checkRedis,
	}

	allHealthy := true
	for name, checkFunc := range criticalServices {
		if err := checkFunc(); err != nil {
			status.Services[name] = "unhealthy"
			status.Critical = append(status.Critical, name)
			allHealthy = false
			s.logger.WithError(err).Errorf("Critical service %s is unhealthy", name)
			s.updateHealthMetrics(name, false)
		} else {
			status.Services[name] = "healthy"
			s.updateHealthMetrics(name, true)
		}
	}

	if allHealthy {
		status.Status = "healthy"
	} else {
		status.Status = "unhealthy"
	}

	return status
}

func (s *HealthService) checkPostgreSQL() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.db.PG.Ping(ctx)
}

func (s *HealthService) checkRedis() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.db.Redis.Ping(ctx).Err()
}

func (s *HealthService) updateHealthMetrics(service string, healthy bool) {
	value := 0.0
	if healthy {
		value = 1.0
	}
	s.healthCheckStatus.WithLabelValues(service).Set(value)
}

func (s *HealthService) collectSystemMetrics() {
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()

	var memStats runtime.MemStats

	for range ticker.C {
		runtime.ReadMemStats(&memStats)
		s.systemMetrics.WithLabelValues("goroutines").Set(float64(runtime.NumGoroutine()))
		s.systemMetrics.WithLabelValues("heap_alloc_bytes").Set(float64(memStats.HeapAlloc))
		s.systemMetrics.WithLabelValues("heap_objects").Set(float64(memStats.HeapObjects))
	}
}
