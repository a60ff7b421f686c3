package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"MacroPulse/internal/domain/models"
)

// stubMetrics satisfies the Metrics interface and records nothing.
type stubMetrics struct{}

func (stubMetrics) RecordFetch(string, float64)          {}
func (stubMetrics) RecordError(string)                   {}
func (stubMetrics) RecordIndicatorValue(string, float64) {}
func (stubMetrics) RecordRegime(string)                  {}
func (stubMetrics) RecordTransition(string, string)      {}
func (stubMetrics) RecordAlert(string)                   {}
func (stubMetrics) RecordLatency(string, float64)        {}

// stubSource serves canned history per indicator and can fail selectively.
type stubSource struct {
	mu      sync.Mutex
	history map[models.IndicatorType][]models.IndicatorSample
	fail    map[models.IndicatorType]bool
}

func newStubSource() *stubSource {
	return &stubSource{
		history: make(map[models.IndicatorType][]models.IndicatorSample),
		fail:    make(map[models.IndicatorType]bool),
	}
}

func (s *stubSource) FetchHistory(_ context.Context, indicator models.IndicatorType, _ int) ([]models.IndicatorSample, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail[indicator] {
		return nil, fmt.Errorf("upstream down")
	}
	return s.history[indicator], nil
}

// dailySeries builds an ascending daily series ending today with the given
// values appended after a flat prefix around base.
func dailySeries(base float64, n int, tail ...float64) []models.IndicatorSample {
	total := n + len(tail)
	end := time.Now().UTC().Truncate(24 * time.Hour)
	out := make([]models.IndicatorSample, 0, total)
	for i := 0; i < n; i++ {
		ts := end.AddDate(0, 0, i-total+1)
		// mild alternation so stddev is nonzero
		v := base
		if i%2 == 0 {
			v = base * 1.01
		}
		out = append(out, models.IndicatorSample{Timestamp: ts, Value: v})
	}
	for i, v := range tail {
		ts := end.AddDate(0, 0, i+n-total+1)
		out = append(out, models.IndicatorSample{Timestamp: ts, Value: v})
	}
	return out
}

// memHistoryStore is an in-memory HistoryStore for chart tests.
type memHistoryStore struct {
	mu      sync.Mutex
	samples map[models.IndicatorType][]models.IndicatorSample
	failQ   bool
}

func newMemHistoryStore() *memHistoryStore {
	return &memHistoryStore{samples: make(map[models.IndicatorType][]models.IndicatorSample)}
}

func (m *memHistoryStore) Init(context.Context) error { return nil }

func (m *memHistoryStore) Store(_ context.Context, indicator models.IndicatorType, s models.IndicatorSample) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.samples[indicator] = append(m.samples[indicator], s)
	return nil
}

func (m *memHistoryStore) StoreBatch(ctx context.Context, indicator models.IndicatorType, samples []models.IndicatorSample) error {
	for _, s := range samples {
		if err := m.Store(ctx, indicator, s); err != nil {
			return err
		}
	}
	return nil
}

func (m *memHistoryStore) Query(_ context.Context, indicator models.IndicatorType, from, to time.Time, limit int) ([]models.IndicatorSample, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failQ {
		return nil, fmt.Errorf("store down")
	}
	var out []models.IndicatorSample
	for _, s := range m.samples[indicator] {
		if s.Timestamp.Before(from) || s.Timestamp.After(to) {
			continue
		}
		out = append(out, s)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (m *memHistoryStore) LatestN(_ context.Context, indicator models.IndicatorType, n int) ([]models.IndicatorSample, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := m.samples[indicator]
	if len(all) > n {
		all = all[len(all)-n:]
	}
	return all, nil
}

func (m *memHistoryStore) Health(context.Context) error { return nil }
func (m *memHistoryStore) Close() error                 { return nil }
