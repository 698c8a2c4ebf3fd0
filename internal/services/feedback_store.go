package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/HANSKMIEL/landscape-architecture-tool-sub003/pkg/models"
)

// FeedbackStore persists user feedback keyed by request ID. Upsert replaces
// any earlier submission for the same request in full.
type FeedbackStore interface {
	Upsert(ctx context.Context, feedback models.Feedback) error
	Get(ctx context.Context, requestID uuid.UUID) (*models.Feedback, error)
}

// PostgresFeedbackStore stores feedback in the recommendation_feedback table.
type PostgresFeedbackStore struct {
	db DatabaseQuerier
}

func NewPostgresFeedbackStore(db DatabaseQuerier) *PostgresFeedbackStore {
	return &PostgresFeedbackStore{db: db}
}

const upsertFeedbackQuery = `
	INSERT INTO recommendation_feedback (request_id, selected_plant_ids, rating, comments, submitted_at)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (request_id) DO UPDATE SET
		selected_plant_ids = EXCLUDED.selected_plant_ids,
		rating = EXCLUDED.rating,
		comments = EXCLUDED.comments,
		submitted_at = EXCLUDED.submitted_at`

const getFeedbackQuery = `
	SELECT request_id, selected_plant_ids, rating, comments, submitted_at
	FROM recommendation_feedback
	WHERE request_id = $1`

func (s *PostgresFeedbackStore) Upsert(ctx context.Context, feedback models.Feedback) error {
	ids := make([]string, len(feedback.SelectedPlantIDs))
	for i, id := range feedback.SelectedPlantIDs {
		ids[i] = id.String()
	}

	_, err := s.db.Exec(ctx, upsertFeedbackQuery,
		feedback.RequestID, ids, feedback.Rating, feedback.Comments, feedback.SubmittedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert feedback: %w", err)
	}
	return nil
}

func (s *PostgresFeedbackStore) Get(ctx context.Context, requestID uuid.UUID) (*models.Feedback, error) {
	var (
		feedback models.Feedback
		rawIDs   []string
	)
	row := s.db.QueryRow(ctx, getFeedbackQuery, requestID)
	if err := row.Scan(&feedback.RequestID, &rawIDs, &feedback.Rating,
		&feedback.Comments, &feedback.SubmittedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrFeedbackNotFound
		}
		return nil, fmt.Errorf("failed to read feedback: %w", err)
	}

	feedback.SelectedPlantIDs = make([]uuid.UUID, 0, len(rawIDs))
	for _, raw := range rawIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			continue
		}
		feedback.SelectedPlantIDs = append(feedback.SelectedPlantIDs, id)
	}
	return &feedback, nil
}

// MemoryFeedbackStore is the in-process implementation used by tests.
type MemoryFeedbackStore struct {
	mu       sync.RWMutex
	feedback map[uuid.UUID]models.Feedback
}

func NewMemoryFeedbackStore() *MemoryFeedbackStore {
	return &MemoryFeedbackStore{
		feedback: make(map[uuid.UUID]models.Feedback),
	}
}

func (s *MemoryFeedbackStore) Upsert(_ context.Context, feedback models.Feedback) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.feedback[feedback.RequestID] = feedback
	return nil
}

func (s *MemoryFeedbackStore) Get(_ context.Context, requestID uuid.UUID) (*models.Feedback, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fb, ok := s.feedback[requestID]
	if !ok {
		return nil, ErrFeedbackNotFound
	}
	return &fb, nil
}
