package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"

	"github.com/HANSKMIEL/landscape-architecture-tool-sub003/internal/config"
	"github.com/HANSKMIEL/landscape-architecture-tool-sub003/pkg/models"
)

// FeedbackMessage is the wire envelope published for every accepted feedback
// submission, consumed downstream for weight tuning and analytics.
type FeedbackMessage struct {
	Feedback  models.Feedback `json:"feedback"`
	Timestamp time.Time       `json:"timestamp"`
}

// FeedbackPublisher publishes accepted feedback to Kafka. Publishing happens
// after the durable write; a broker failure never fails the submission.
type FeedbackPublisher struct {
	writer *kafka.Writer
	topic  string
	logger *logrus.Logger
}

func NewFeedbackPublisher(cfg *config.Config, logger *logrus.Logger) *FeedbackPublisher {
	topic := cfg.Kafka.Topics.Feedback
	return &FeedbackPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Kafka.Brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{}, // Key by request ID so resubmissions land in order
			RequiredAcks: kafka.RequireOne,
			Async:        false,
			BatchTimeout: 10 * time.Millisecond,
			BatchSize:    100,
		},
		topic:  topic,
		logger: logger,
	}
}

func (p *FeedbackPublisher) PublishFeedback(ctx context.Context, feedback models.Feedback) error {
	message := FeedbackMessage{
		Feedback:  feedback,
		Timestamp: time.Now().UTC(),
	}

	messageBytes, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal feedback message: %w", err)
	}

	kafkaMessage := kafka.Message{
		Key:   []byte(feedback.RequestID.String()),
		Value: messageBytes,
		Headers: []kafka.Header{
			{Key: "request_id", Value: []byte(feedback.RequestID.String())},
			{Key: "timestamp", Value: []byte(message.Timestamp.Format(time.RFC3339))},
		},
	}

	writeCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := p.writer.WriteMessages(writeCtx, kafkaMessage); err != nil {
		p.logger.WithError(err).WithField("request_id", feedback.RequestID).Error("Failed to publish feedback to Kafka")
		return fmt.Errorf("failed to write feedback to Kafka: %w", err)
	}

	p.logger.WithFields(logrus.Fields{
		"request_id": feedback.RequestID,
		"topic":      p.topic,
	}).Info("Feedback published to Kafka")

	return nil
}

func (p *FeedbackPublisher) Close() error {
	return p.writer.Close()
}
