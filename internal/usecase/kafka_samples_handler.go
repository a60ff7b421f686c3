package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"MacroPulse/internal/domain/models"
	domrepo "MacroPulse/internal/domain/repository"
	pkgkafka "MacroPulse/pkg/kafka"
)

// KafkaSamplesHandler consumes the samples ingest topic and lands rows in
// the history store.
type KafkaSamplesHandler struct {
	topic   string
	store   domrepo.HistoryStore
	metrics domrepo.Metrics
}

func NewKafkaSamplesHandler(topic string, store domrepo.HistoryStore, metrics domrepo.Metrics) *KafkaSamplesHandler {
	return &KafkaSamplesHandler{topic: topic, store: store, metrics: metrics}
}

func (h *KafkaSamplesHandler) Topic() string { return h.topic }

// incoming message schema matches IndicatorQuote: {indicator, timestamp, value}
func (h *KafkaSamplesHandler) Handle(ctx context.Context, b []byte) error {
	var q models.IndicatorQuote
	if err := json.Unmarshal(b, &q); err != nil {
		h.metrics.RecordError("consumer_unmarshal")
		return err
	}
	if !q.Indicator.IsValid() {
		h.metrics.RecordError("consumer_indicator")
		return fmt.Errorf("unknown indicator %q", q.Indicator)
	}
	if q.Timestamp.IsZero() {
		q.Timestamp = time.Now().UTC()
	}

	start := time.Now()
	err := h.store.Store(ctx, q.Indicator, models.IndicatorSample{
		Timestamp: q.Timestamp,
		Value:     q.Value,
	})
	h.metrics.RecordLatency("ingest_store", time.Since(start).Seconds())
	if err != nil {
		h.metrics.RecordError("consumer_store")
		return err
	}
	return nil
}

var _ pkgkafka.MessageHandler = (*KafkaSamplesHandler)(nil)
