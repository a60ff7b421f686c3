package usecase

import (
	"context"
	"fmt"

	"MacroPulse/internal/domain/models"
	domrepo "MacroPulse/internal/domain/repository"
	"MacroPulse/pkg/logger"
	"MacroPulse/pkg/queue"
)

// AlertDispatchJob drains the alert queue into the delivery sink. Queue
// workers retry failed deliveries with backoff and dead-letter the rest.
type AlertDispatchJob struct {
	sink    domrepo.AlertSink
	metrics domrepo.Metrics
	log     *logger.Logger
}

func NewAlertDispatchJob(sink domrepo.AlertSink, metrics domrepo.Metrics, log *logger.Logger) *AlertDispatchJob {
	return &AlertDispatchJob{sink: sink, metrics: metrics, log: log}
}

func (j *AlertDispatchJob) Name() string { return "alert_dispatch" }

func (j *AlertDispatchJob) Type() string { return AlertMessageType }

func (j *AlertDispatchJob) Handle(ctx context.Context, payload interface{}) error {
	alert, err := queue.ParsePayload[models.AlertPayload](payload)
	if err != nil {
		j.metrics.RecordAlert("malformed")
		return fmt.Errorf("parse alert payload: %w", err)
	}

	if err := j.sink.Deliver(ctx, *alert); err != nil {
		j.metrics.RecordAlert("deliver_failed")
		return fmt.Errorf("deliver alert: %w", err)
	}

	j.metrics.RecordAlert("delivered")
	j.log.Info("alert delivered",
		logger.String("from", string(alert.From)),
		logger.String("to", string(alert.To)),
	)
	return nil
}

var _ queue.Job = (*AlertDispatchJob)(nil)
