package repository

import (
	"context"

	"MacroPulse/internal/domain/models"
	domrepo "MacroPulse/internal/domain/repository"
	pkgkafka "MacroPulse/pkg/kafka"
)

// KafkaAlertSink publishes regime transition alerts to a Kafka topic. The
// downstream notification service owns delivery to devices.
type KafkaAlertSink struct {
	producer *pkgkafka.Producer
	topic    string
}

func NewKafkaAlertSink(producer *pkgkafka.Producer, topic string) domrepo.AlertSink {
	return &KafkaAlertSink{producer: producer, topic: topic}
}

func (s *KafkaAlertSink) Deliver(ctx context.Context, alert models.AlertPayload) error {
	// Keyed by destination regime so a partition carries a regime's alerts in order.
	return s.producer.Publish(ctx, s.topic, []byte(alert.To), alert)
}

func (s *KafkaAlertSink) Close() error {
	if s.producer != nil {
		return s.producer.Close()
	}
	return nil
}
