package signals

import (
	"context"
	"fmt"
	"sync"
	"time"

	"MacroPulse/internal/domain/models"
	drepo "MacroPulse/internal/domain/repository"
)

// RegimeChangeTracker detects regime transitions and decides whether to raise
// a one-shot alert. Observe is a critical section: a mutex enforces the
// single-writer invariant so interleaved calls cannot corrupt the persisted
// last-known regime or change timestamp.
//
// State survives restarts through the injected StateStore. A transition is
// confirmed only once the new state is persisted; a failed write leaves the
// in-memory state untouched so the next observation retries rather than
// losing the alert.
type RegimeChangeTracker struct {
	mu     sync.Mutex
	store  drepo.StateStore
	state  models.RegimeTrackerState
	loaded bool
	now    func() time.Time
}

func NewRegimeChangeTracker(store drepo.StateStore) *RegimeChangeTracker {
	return &RegimeChangeTracker{store: store, now: time.Now}
}

// Observe feeds the latest classified regime to the tracker. It returns a
// non-nil AlertPayload for at most one alert per confirmed transition:
// never on the first observation, never for NoData, and only while
// notifications are enabled.
func (t *RegimeChangeTracker) Observe(ctx context.Context, regime models.MarketRegime) (*models.AlertPayload, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	if regime == models.RegimeNoData {
		return nil, nil
	}

	now := t.now()

	// First-ever observation: start tracking, no alert to compare against.
	if t.state.LastKnownRegime == nil {
		next := t.state
		next.LastKnownRegime = &regime
		next.LastChangeAt = &now
		if err := t.store.Save(ctx, next); err != nil {
			return nil, fmt.Errorf("save tracker state: %w", err)
		}
		t.state = next
		return nil, nil
	}

	prev := *t.state.LastKnownRegime
	if prev == regime {
		return nil, nil
	}

	next := t.state
	next.LastKnownRegime = &regime
	next.LastChangeAt = &now
	if err := t.store.Save(ctx, next); err != nil {
		return nil, fmt.Errorf("save tracker state: %w", err)
	}
	t.state = next

	if !t.state.NotificationsEnabled {
		return nil, nil
	}
	alert := models.NewAlertPayload(prev, regime, now)
	return &alert, nil
}

// State returns a copy of the current tracker state.
func (t *RegimeChangeTracker) State(ctx context.Context) (models.RegimeTrackerState, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.ensureLoaded(ctx); err != nil {
		return models.RegimeTrackerState{}, err
	}
	return t.state, nil
}

// SetNotificationsEnabled toggles alerting and persists the setting.
func (t *RegimeChangeTracker) SetNotificationsEnabled(ctx context.Context, enabled bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.ensureLoaded(ctx); err != nil {
		return err
	}
	next := t.state
	next.NotificationsEnabled = enabled
	if err := t.store.Save(ctx, next); err != nil {
		return fmt.Errorf("save tracker state: %w", err)
	}
	t.state = next
	return nil
}

// ensureLoaded lazily reads persisted state. A never-written store yields the
// zero state with notifications enabled: the default applies on first-ever
// initialization only, every later read reflects what was stored.
func (t *RegimeChangeTracker) ensureLoaded(ctx context.Context) error {
	if t.loaded {
		return nil
	}
	state, found, err := t.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load tracker state: %w", err)
	}
	if !found {
		state = models.RegimeTrackerState{NotificationsEnabled: true}
		if err := t.store.Save(ctx, state); err != nil {
			return fmt.Errorf("init tracker state: %w", err)
		}
	}
	t.state = state
	t.loaded = true
	return nil
}
