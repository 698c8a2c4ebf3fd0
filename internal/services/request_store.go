package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/HANSKMIEL/landscape-architecture-tool-sub003/pkg/models"
)

// RequestStore persists RecommendationRequest snapshots so that feedback
// arriving later can be tied back to the criteria it was generated from.
type RequestStore interface {
	Save(ctx context.Context, req models.RecommendationRequest) error
	Get(ctx context.Context, requestID uuid.UUID) (*models.RecommendationRequest, error)
}

// RedisRequestStore keeps snapshots in Redis with a TTL; a request that has
// aged out behaves exactly like one that never existed.
type RedisRequestStore struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewRedisRequestStore(redisClient *redis.Client, ttl time.Duration) *RedisRequestStore {
	return &RedisRequestStore{redis: redisClient, ttl: ttl}
}

func requestKey(requestID uuid.UUID) string {
	return fmt.Sprintf("recommendation_request:%s", requestID.String())
}

func (s *RedisRequestStore) Save(ctx context.Context, req models.RecommendationRequest) error {
	data, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal recommendation request: %w", err)
	}
	if err := s.redis.Set(ctx, requestKey(req.RequestID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store recommendation request: %w", err)
	}
	return nil
}

func (s *RedisRequestStore) Get(ctx context.Context, requestID uuid.UUID) (*models.RecommendationRequest, error) {
	data, err := s.redis.Get(ctx, requestKey(requestID)).Result()
	if err == redis.Nil {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read recommendation request: %w", err)
	}

	var req models.RecommendationRequest
	if err := json.Unmarshal([]byte(data), &req); err != nil {
		return nil, fmt.Errorf("failed to unmarshal recommendation request: %w", err)
	}
	return &req, nil
}

// MemoryRequestStore is the in-process implementation used by tests and
// single-node deployments without Redis.
type MemoryRequestStore struct {
	mu       sync.RWMutex
	requests map[uuid.UUID]models.RecommendationRequest
}

func NewMemoryRequestStore() *MemoryRequestStore {
	return &MemoryRequestStore{
		requests: make(map[uuid.UUID]models.RecommendationRequest),
	}
}

func (s *MemoryRequestStore) Save(_ context.Context, req models.RecommendationRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests[req.RequestID] = req
	return nil
}

func (s *MemoryRequestStore) Get(_ context.Context, requestID uuid.UUID) (*models.RecommendationRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	req, ok := s.requests[requestID]
	if !ok {
		return nil, ErrRequestNotFound
	}
	return &req, nil
}
