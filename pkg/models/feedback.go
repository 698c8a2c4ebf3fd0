package models

import (
	"time"

	"github.com/google/uuid"
)

// Feedback records which recommendations a user actually chose for a given
// request. One record exists per request; a re-submission fully replaces the
// prior record (last-write-wins).
type Feedback struct {
	RequestID        uuid.UUID   `json:"request_id"`
	SelectedPlantIDs []uuid.UUID `json:"selected_plant_ids"`
	Rating           int         `json:"rating"`
	Comments         string      `json:"comments"`
	SubmittedAt      time.Time   `json:"submitted_at"`
}
