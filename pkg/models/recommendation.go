package models

import (
	"time"

	"github.com/google/uuid"
)

// ScoredPlant is one ranked candidate: the borrowed catalog record, its
// overall match score in [0,1], and ordered human-readable explanations.
type ScoredPlant struct {
	Plant        PlantRecord `json:"plant"`
	Score        float64     `json:"score"`
	MatchReasons []string    `json:"match_reasons"`
	Warnings     []string    `json:"warnings"`
}

// RecommendationRequest is the immutable snapshot created at normalization
// time. Feedback submitted later references RequestID; the criteria snapshot
// is what gives that feedback meaning, so it is never recomputed.
type RecommendationRequest struct {
	RequestID uuid.UUID `json:"request_id"`
	Criteria  Criteria  `json:"criteria"`
	CreatedAt time.Time `json:"created_at"`
}

// RecommendationResult is the ordered, capped output of one request.
// Partial is set when the per-request deadline expired before every
// candidate could be scored; the candidates that were scored are still
// ranked and returned.
type RecommendationResult struct {
	RequestID       uuid.UUID     `json:"request_id"`
	Recommendations []ScoredPlant `json:"recommendations"`
	Partial         bool          `json:"partial"`
	Note            string        `json:"note,omitempty"`
	GeneratedAt     time.Time     `json:"generated_at"`
}

// FeedbackSubmission is the inbound feedback DTO.
type FeedbackSubmission struct {
	RequestID uuid.UUID       `json:"request_id" binding:"required"`
	Feedback  FeedbackDetails `json:"feedback"`
	Rating    int             `json:"rating" binding:"required"`
}

type FeedbackDetails struct {
	SelectedPlantIDs []uuid.UUID `json:"selected_plant_ids"`
	Comments         string      `json:"comments"`
}
