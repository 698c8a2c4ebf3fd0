package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/HANSKMIEL/landscape-architecture-tool-sub003/internal/config"
	"github.com/HANSKMIEL/landscape-architecture-tool-sub003/pkg/models"
)

// FeedbackEventPublisher pushes accepted feedback onto the message bus.
type FeedbackEventPublisher interface {
	PublishFeedback(ctx context.Context, feedback models.Feedback) error
}

// FeedbackRecorder validates and records feedback against issued
// recommendation requests. Concurrent submissions for the same request ID are
// serialized; the last completed write wins in full.
type FeedbackRecorder struct {
	store     FeedbackStore
	requests  RequestStore
	publisher FeedbackEventPublisher
	cfg       config.FeedbackConfig
	logger    *logrus.Logger

	locks sync.Map // request ID -> *sync.Mutex
}

func NewFeedbackRecorder(store FeedbackStore, requests RequestStore,
	publisher FeedbackEventPublisher, cfg config.FeedbackConfig, logger *logrus.Logger) *FeedbackRecorder {
	return &FeedbackRecorder{
		store:     store,
		requests:  requests,
		publisher: publisher,
		cfg:       cfg,
		logger:    logger,
	}
}

// Record validates the submission, verifies the request exists, and upserts
// the feedback. Returns ErrRequestNotFound for unknown request IDs and a
// *ValidationError for out-of-range ratings.
func (r *FeedbackRecorder) Record(ctx context.Context, submission models.FeedbackSubmission) error {
	if err := r.validate(submission); err != nil {
		feedbackSubmissions.WithLabelValues("invalid").Inc()
		return err
	}

	if _, err := r.requests.Get(ctx, submission.RequestID); err != nil {
		feedbackSubmissions.WithLabelValues("unknown_request").Inc()
		return err
	}

	feedback := models.Feedback{
		RequestID:        submission.RequestID,
		SelectedPlantIDs: submission.Feedback.SelectedPlantIDs,
		Rating:           submission.Rating,
		Comments:         submission.Feedback.Comments,
		SubmittedAt:      time.Now().UTC(),
	}

	lock := r.lockFor(submission.RequestID)
	lock.Lock()
	defer lock.Unlock()

	if err := r.store.Upsert(ctx, feedback); err != nil {
		return err
	}
	feedbackSubmissions.WithLabelValues("accepted").Inc()

	r.logger.WithFields(logrus.Fields{
		"request_id":      feedback.RequestID,
		"rating":          feedback.Rating,
		"selected_plants": len(feedback.SelectedPlantIDs),
	}).Info("Feedback recorded")

	if r.publisher != nil {
		// Publishing is best effort; the durable write already succeeded.
		if err := r.publisher.PublishFeedback(ctx, feedback); err != nil {
			r.logger.WithError(err).WithField("request_id", feedback.RequestID).
				Warn("Feedback stored but event publish failed")
		}
	}

	return nil
}

// Get returns the currently stored feedback for a request, after verifying
// the request itself exists.
func (r *FeedbackRecorder) Get(ctx context.Context, requestID uuid.UUID) (*models.Feedback, error) {
	if _, err := r.requests.Get(ctx, requestID); err != nil {
		return nil, err
	}
	return r.store.Get(ctx, requestID)
}

func (r *FeedbackRecorder) validate(submission models.FeedbackSubmission) error {
	validationErr := &ValidationError{}
	if submission.Rating < r.cfg.RatingMin || submission.Rating > r.cfg.RatingMax {
		validationErr.add("rating", submission.Rating,
			"must be between %d and %d", r.cfg.RatingMin, r.cfg.RatingMax)
	}
	if validationErr.hasErrors() {
		return validationErr
	}
	return nil
}

func (r *FeedbackRecorder) lockFor(requestID uuid.UUID) *sync.Mutex {
	lock, _ := r.locks.LoadOrStore(requestID, &sync.Mutex{})
	return lock.(*sync.Mutex)
}
