package usecase

import (
	"context"
	"fmt"
	"time"

	domrepo "MacroPulse/internal/domain/repository"
	"MacroPulse/internal/services/signals"
	"MacroPulse/pkg/logger"
	"MacroPulse/pkg/queue"
)

// AlertMessageType is the queue message type for regime transition alerts.
const AlertMessageType = "regime_alert"

// ObserveUseCase periodically rebuilds the snapshot and feeds the regime to
// the change tracker. Confirmed transitions are enqueued for dispatch; the
// tracker itself guarantees at-most-once per transition.
type ObserveUseCase struct {
	snapshot *SnapshotUseCase
	tracker  *signals.RegimeChangeTracker
	alerts   queue.QueueService
	metrics  domrepo.Metrics
	log      *logger.Logger
	interval time.Duration
}

func NewObserveUseCase(
	snapshot *SnapshotUseCase,
	tracker *signals.RegimeChangeTracker,
	alerts queue.QueueService,
	metrics domrepo.Metrics,
	log *logger.Logger,
	interval time.Duration,
) *ObserveUseCase {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &ObserveUseCase{
		snapshot: snapshot,
		tracker:  tracker,
		alerts:   alerts,
		metrics:  metrics,
		log:      log,
		interval: interval,
	}
}

// Start runs the observe loop until the context ends. One observation is
// performed immediately so a restart does not wait a full interval.
func (uc *ObserveUseCase) Start(ctx context.Context) {
	go func() {
		if err := uc.ObserveOnce(ctx); err != nil {
			uc.log.Error("observe failed", logger.Error(err))
		}
		ticker := time.NewTicker(uc.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := uc.ObserveOnce(ctx); err != nil {
					uc.log.Error("observe failed", logger.Error(err))
				}
			}
		}
	}()
}

// ObserveOnce builds one snapshot and runs it through the tracker.
func (uc *ObserveUseCase) ObserveOnce(ctx context.Context) error {
	snap, err := uc.snapshot.GetSnapshot(ctx, GetSnapshotParams{})
	if err != nil {
		return fmt.Errorf("observe snapshot: %w", err)
	}

	alert, err := uc.tracker.Observe(ctx, snap.Regime)
	if err != nil {
		uc.metrics.RecordError("tracker_observe")
		return fmt.Errorf("observe regime: %w", err)
	}
	if alert == nil {
		return nil
	}

	uc.metrics.RecordTransition(string(alert.From), string(alert.To))
	uc.log.Info("regime transition",
		logger.String("from", string(alert.From)),
		logger.String("to", string(alert.To)),
	)

	if err := uc.alerts.PublishMessage(ctx, AlertMessageType, alert); err != nil {
		uc.metrics.RecordAlert("enqueue_failed")
		return fmt.Errorf("enqueue alert: %w", err)
	}
	uc.metrics.RecordAlert("enqueued")
	return nil
}
