package repository

import (
	"context"
	"time"

	"MacroPulse/internal/domain/models"
)

// QuoteStream is a live indicator quote feed (WebSocket upstream).
type QuoteStream interface {
	Connect(ctx context.Context) error
	Subscribe(ctx context.Context) error
	Read(ctx context.Context) (<-chan *models.IndicatorQuote, <-chan error)
	Reconnect(ctx context.Context) error
	Close() error
	IsConnected() bool
}

// HistorySource fetches indicator history from the upstream market-data API.
// Fallible: on failure callers substitute a cached or synthetic series and
// never surface a hard failure to the dashboard.
type HistorySource interface {
	FetchHistory(ctx context.Context, indicator models.IndicatorType, days int) ([]models.IndicatorSample, error)
}

// HistoryStore is the durable indicator sample store.
type HistoryStore interface {
	Init(ctx context.Context) error // ensure tables, health checks
	Store(ctx context.Context, indicator models.IndicatorType, s models.IndicatorSample) error
	StoreBatch(ctx context.Context, indicator models.IndicatorType, samples []models.IndicatorSample) error
	Query(ctx context.Context, indicator models.IndicatorType, from, to time.Time, limit int) ([]models.IndicatorSample, error)
	LatestN(ctx context.Context, indicator models.IndicatorType, n int) ([]models.IndicatorSample, error)
	Health(ctx context.Context) error // ping
	Close() error
}

// StateStore persists the regime tracker state across restarts.
// Load on a never-written store returns the zero state with notifications
// enabled and found=false.
type StateStore interface {
	Load(ctx context.Context) (models.RegimeTrackerState, bool, error)
	Save(ctx context.Context, state models.RegimeTrackerState) error
}

// AlertSink accepts confirmed regime transition alerts. Delivery mechanics,
// timing and retry are the sink's responsibility.
type AlertSink interface {
	Deliver(ctx context.Context, alert models.AlertPayload) error
	Close() error
}

// SamplePublisher hands live quotes to the ingest topic. The consumer side
// lands them in the history store.
type SamplePublisher interface {
	Publish(ctx context.Context, q *models.IndicatorQuote) error
	Close() error
}

// Metrics records operational measurements.
type Metrics interface {
	RecordFetch(indicator string, seconds float64)
	RecordError(kind string)
	RecordIndicatorValue(indicator string, value float64)
	RecordRegime(regime string)
	RecordTransition(from, to string)
	RecordAlert(outcome string)
	RecordLatency(op string, seconds float64)
}
