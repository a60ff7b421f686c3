package repository

import (
	"context"

	"MacroPulse/internal/domain/models"
	domrepo "MacroPulse/internal/domain/repository"
	pkgkafka "MacroPulse/pkg/kafka"
)

// KafkaSamplePublisher publishes live quotes to the samples ingest topic.
type KafkaSamplePublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

func NewKafkaSamplePublisher(producer *pkgkafka.Producer, topic string) domrepo.SamplePublisher {
	return &KafkaSamplePublisher{producer: producer, topic: topic}
}

func (p *KafkaSamplePublisher) Publish(ctx context.Context, q *models.IndicatorQuote) error {
	// Keyed by indicator so each indicator's samples stay ordered.
	return p.producer.Publish(ctx, p.topic, []byte(q.Indicator), q)
}

func (p *KafkaSamplePublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
