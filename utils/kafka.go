package utils

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	log "github.com/sirupsen/logrus"

	"github.com/jessiehunter4/good-tenants-mvp-sub000/config"
)

// Event types published on the platform topic.
const (
	EventInviteSent      = "INVITE_SENT"
	EventInviteAnswered  = "INVITE_ANSWERED"
	EventProfileVerified = "PROFILE_VERIFIED"
	EventShowingUpdated  = "SHOWING_UPDATED"
)

// PlatformEvent is the envelope written to Kafka. The notification consumer
// fans these out as in-app notifications and emails.
type PlatformEvent struct {
	Type      string                 `json:"type"`
	UserID    uint                   `json:"user_id"`
	Payload   map[string]interface{} `json:"payload,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

var kafkaWriter *kafka.Writer

// InitializeKafka sets up the shared writer. Publishing degrades to a logged
// warning when Kafka is unreachable; nothing here is on a request's critical
// path.
func InitializeKafka(cfg *config.Config) {
	kafkaWriter = &kafka.Writer{
		Addr:         kafka.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		Async:        true,
	}
	log.WithField("brokers", cfg.KafkaBrokers).Info("kafka writer initialized")
}

// PublishEvent writes a platform event, fire-and-forget.
func PublishEvent(ev PlatformEvent) {
	if kafkaWriter == nil {
		return
	}
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now().UTC()
	}

	body, err := json.Marshal(ev)
	if err != nil {
		log.WithError(err).Warn("failed to marshal platform event")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := kafkaWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(ev.Type),
		Value: body,
	}); err != nil {
		log.WithError(err).WithField("type", ev.Type).Warn("failed to publish platform event")
	}
}

// NewEventReader builds a consumer-group reader for the platform topic.
func NewEventReader(cfg *config.Config, groupID string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.KafkaBrokers,
		GroupID:  groupID,
		Topic:    cfg.KafkaTopic,
		MinBytes: 1,
		MaxBytes: 10e6,
		MaxWait:  time.Second,
	})
}

// CloseKafka flushes and closes the writer.
func CloseKafka() error {
	if kafkaWriter != nil {
		return kafkaWriter.Close()
	}
	return nil
}
