package signals

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MacroPulse/internal/domain/models"
)

// stubStateStore keeps tracker state in memory so Observe is testable without
// real durable storage.
type stubStateStore struct {
	mu      sync.Mutex
	state   models.RegimeTrackerState
	written bool
	saves   int
	failSet bool
}

func (s *stubStateStore) Load(_ context.Context) (models.RegimeTrackerState, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state, s.written, nil
}

func (s *stubStateStore) Save(_ context.Context, state models.RegimeTrackerState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failSet {
		return errors.New("store unavailable")
	}
	s.state = state
	s.written = true
	s.saves++
	return nil
}

func TestTrackerTransitionSequence(t *testing.T) {
	ctx := context.Background()
	store := &stubStateStore{}
	tr := NewRegimeChangeTracker(store)

	// First-ever observation: tracking starts, no alert.
	alert, err := tr.Observe(ctx, models.RegimeRiskOn)
	require.NoError(t, err)
	assert.Nil(t, alert)

	state, err := tr.State(ctx)
	require.NoError(t, err)
	require.NotNil(t, state.LastKnownRegime)
	assert.Equal(t, models.RegimeRiskOn, *state.LastKnownRegime)
	assert.True(t, state.NotificationsEnabled)

	// Same regime again: no alert.
	alert, err = tr.Observe(ctx, models.RegimeRiskOn)
	require.NoError(t, err)
	assert.Nil(t, alert)

	// Transition: exactly one alert with the (from, to) pair.
	alert, err = tr.Observe(ctx, models.RegimeRiskOff)
	require.NoError(t, err)
	require.NotNil(t, alert)
	assert.Equal(t, models.RegimeRiskOn, alert.From)
	assert.Equal(t, models.RegimeRiskOff, alert.To)
	assert.NotEmpty(t, alert.Title)
	assert.NotEmpty(t, alert.Body)

	// NoData: no alert, state untouched.
	alert, err = tr.Observe(ctx, models.RegimeNoData)
	require.NoError(t, err)
	assert.Nil(t, alert)

	state, err = tr.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.RegimeRiskOff, *state.LastKnownRegime)
}

func TestTrackerNoDataNeverInitializes(t *testing.T) {
	ctx := context.Background()
	tr := NewRegimeChangeTracker(&stubStateStore{})

	alert, err := tr.Observe(ctx, models.RegimeNoData)
	require.NoError(t, err)
	assert.Nil(t, alert)

	state, err := tr.State(ctx)
	require.NoError(t, err)
	assert.Nil(t, state.LastKnownRegime)
}

func TestTrackerNotificationsDisabled(t *testing.T) {
	ctx := context.Background()
	store := &stubStateStore{}
	tr := NewRegimeChangeTracker(store)

	_, err := tr.Observe(ctx, models.RegimeRiskOn)
	require.NoError(t, err)
	require.NoError(t, tr.SetNotificationsEnabled(ctx, false))

	// Transition still recorded, but no alert while disabled.
	alert, err := tr.Observe(ctx, models.RegimeRiskOff)
	require.NoError(t, err)
	assert.Nil(t, alert)

	state, err := tr.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.RegimeRiskOff, *state.LastKnownRegime)
	assert.NotNil(t, state.LastChangeAt)
}

func TestTrackerSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	store := &stubStateStore{}

	tr := NewRegimeChangeTracker(store)
	_, err := tr.Observe(ctx, models.RegimeRiskOn)
	require.NoError(t, err)

	// New tracker over the same store: the restart case. Re-observing the
	// same regime must not alert.
	tr2 := NewRegimeChangeTracker(store)
	alert, err := tr2.Observe(ctx, models.RegimeRiskOn)
	require.NoError(t, err)
	assert.Nil(t, alert)

	alert, err = tr2.Observe(ctx, models.RegimeMixed)
	require.NoError(t, err)
	require.NotNil(t, alert)
	assert.Equal(t, models.RegimeRiskOn, alert.From)
}

func TestTrackerFailedSaveDoesNotConfirmTransition(t *testing.T) {
	ctx := context.Background()
	store := &stubStateStore{}
	tr := NewRegimeChangeTracker(store)

	_, err := tr.Observe(ctx, models.RegimeRiskOn)
	require.NoError(t, err)

	store.failSet = true
	alert, err := tr.Observe(ctx, models.RegimeRiskOff)
	assert.Error(t, err)
	assert.Nil(t, alert)

	// Store recovers: the transition is confirmed and alerted exactly once.
	store.failSet = false
	alert, err = tr.Observe(ctx, models.RegimeRiskOff)
	require.NoError(t, err)
	require.NotNil(t, alert)
	assert.Equal(t, models.RegimeRiskOn, alert.From)
	assert.Equal(t, models.RegimeRiskOff, alert.To)
}

func TestTrackerObserveIsSerialized(t *testing.T) {
	ctx := context.Background()
	store := &stubStateStore{}
	tr := NewRegimeChangeTracker(store)

	_, err := tr.Observe(ctx, models.RegimeRiskOn)
	require.NoError(t, err)

	// Concurrent identical transitions: at most one alert total.
	var wg sync.WaitGroup
	var mu sync.Mutex
	var alerts []*models.AlertPayload
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a, err := tr.Observe(ctx, models.RegimeRiskOff)
			require.NoError(t, err)
			if a != nil {
				mu.Lock()
				alerts = append(alerts, a)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Len(t, alerts, 1)
}

func TestTrackerTimestampUpdatedOnTransition(t *testing.T) {
	ctx := context.Background()
	store := &stubStateStore{}
	tr := NewRegimeChangeTracker(store)

	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	t1 := t0.Add(time.Hour)
	clock := t0
	tr.now = func() time.Time { return clock }

	_, err := tr.Observe(ctx, models.RegimeRiskOn)
	require.NoError(t, err)
	state, _ := tr.State(ctx)
	assert.Equal(t, t0, *state.LastChangeAt)

	clock = t1
	_, err = tr.Observe(ctx, models.RegimeMixed)
	require.NoError(t, err)
	state, _ = tr.State(ctx)
	assert.Equal(t, t1, *state.LastChangeAt)
}
