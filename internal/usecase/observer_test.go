package usecase

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MacroPulse/internal/domain/models"
	"MacroPulse/internal/repository"
	"MacroPulse/internal/services/signals"
	"MacroPulse/pkg/queue"
)

type captureQueue struct {
	mu       sync.Mutex
	messages []interface{}
}

func (q *captureQueue) PublishMessage(_ context.Context, _ string, payload interface{}) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.messages = append(q.messages, payload)
	return nil
}

var _ queue.QueueService = (*captureQueue)(nil)

func TestObserveTransitionEnqueuesOnce(t *testing.T) {
	ctx := context.Background()
	src := bullishSource()
	snapUC := newSnapshotUC(t, src)
	tracker := signals.NewRegimeChangeTracker(repository.NewMemoryStateStore())
	q := &captureQueue{}

	uc := NewObserveUseCase(snapUC, tracker, q, stubMetrics{}, testLogger(t), 0)

	// First observation initializes the tracker, no alert.
	require.NoError(t, uc.ObserveOnce(ctx))
	assert.Empty(t, q.messages)

	// Same regime again, still no alert.
	require.NoError(t, uc.ObserveOnce(ctx))
	assert.Empty(t, q.messages)

	// Flip to all-bearish: one alert for the transition.
	src.mu.Lock()
	src.history[models.IndicatorVIX] = dailySeries(30, 60, 30)
	src.history[models.IndicatorDXY] = dailySeries(100, 60, 101)
	src.history[models.IndicatorM2] = dailySeries(102, 60, 100)
	src.mu.Unlock()

	require.NoError(t, uc.ObserveOnce(ctx))
	require.NoError(t, uc.ObserveOnce(ctx))
	require.Len(t, q.messages, 1)

	alert, ok := q.messages[0].(*models.AlertPayload)
	require.True(t, ok)
	assert.Equal(t, models.RegimeRiskOn, alert.From)
	assert.Equal(t, models.RegimeRiskOff, alert.To)
	assert.NotEmpty(t, alert.Title)
}

func TestObserveNoAlertWhenDisabled(t *testing.T) {
	ctx := context.Background()
	src := bullishSource()
	snapUC := newSnapshotUC(t, src)
	tracker := signals.NewRegimeChangeTracker(repository.NewMemoryStateStore())
	q := &captureQueue{}

	uc := NewObserveUseCase(snapUC, tracker, q, stubMetrics{}, testLogger(t), 0)

	require.NoError(t, uc.ObserveOnce(ctx))
	require.NoError(t, tracker.SetNotificationsEnabled(ctx, false))

	src.mu.Lock()
	src.history[models.IndicatorVIX] = dailySeries(30, 60, 30)
	src.history[models.IndicatorDXY] = dailySeries(100, 60, 101)
	src.history[models.IndicatorM2] = dailySeries(102, 60, 100)
	src.mu.Unlock()

	require.NoError(t, uc.ObserveOnce(ctx))
	assert.Empty(t, q.messages)
}
