package usecase

import (
	"context"
	"fmt"

	"MacroPulse/internal/domain/models"
	drepo "MacroPulse/internal/domain/repository"
)

// QuoteProcessor routes validated live quotes to the configured backend:
// the Kafka ingest topic (consumed into ClickHouse elsewhere) or ClickHouse
// directly.
type QuoteProcessor struct {
	pub     drepo.SamplePublisher
	store   drepo.HistoryStore
	metrics drepo.Metrics
	backend string
}

func NewQuoteProcessor(pub drepo.SamplePublisher, store drepo.HistoryStore, metrics drepo.Metrics, backend string) *QuoteProcessor {
	if backend == "" {
		backend = "kafka"
	}
	return &QuoteProcessor{pub: pub, store: store, metrics: metrics, backend: backend}
}

// Process routes a single quote to the configured backend.
func (p *QuoteProcessor) Process(ctx context.Context, q *models.IndicatorQuote) error {
	if q == nil {
		return fmt.Errorf("quote is nil")
	}

	var err error
	switch p.backend {
	case "kafka":
		err = p.pub.Publish(ctx, q)
	case "clickhouse":
		err = p.store.Store(ctx, q.Indicator, models.IndicatorSample{Timestamp: q.Timestamp, Value: q.Value})
	default:
		err = fmt.Errorf("unknown backend: %s", p.backend)
	}

	if err != nil {
		p.metrics.RecordError("quote_process")
		return fmt.Errorf("process quote: %w", err)
	}
	return nil
}

// Close closes underlying resources if available.
func (p *QuoteProcessor) Close() {
	if p.pub != nil {
		_ = p.pub.Close()
	}
	if p.store != nil {
		_ = p.store.Close()
	}
}
