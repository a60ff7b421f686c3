package repository

import (
	"context"
	"time"

	"MacroPulse/internal/domain/repository"
	pkgkafka "MacroPulse/pkg/kafka"
	"MacroPulse/pkg/logger"

	"github.com/segmentio/kafka-go"
)

// ConsumerMetricsHook records handling latency and logs handler failures
// for every consumed message.
type ConsumerMetricsHook struct {
	log     *logger.Logger
	metrics repository.Metrics
}

func NewConsumerMetricsHook(log *logger.Logger, metrics repository.Metrics) *ConsumerMetricsHook {
	return &ConsumerMetricsHook{log: log, metrics: metrics}
}

func (h *ConsumerMetricsHook) BeforeHandle(ctx context.Context, topic string, km kafka.Message, data []byte) (context.Context, kafka.Message, []byte, error) {
	ctx = pkgkafka.WithStartTime(ctx, time.Now())
	if id := pkgkafka.ExtractTraceID(km); id != "" {
		ctx = pkgkafka.WithTraceID(ctx, id)
	}
	return ctx, km, data, nil
}

func (h *ConsumerMetricsHook) AfterHandle(ctx context.Context, topic string, km kafka.Message, data []byte, err error) {
	if start, ok := pkgkafka.StartTime(ctx); ok {
		h.metrics.RecordLatency("kafka_consume", time.Since(start).Seconds())
	}
}

func (h *ConsumerMetricsHook) OnError(ctx context.Context, topic string, km kafka.Message, data []byte, err error) {
	h.metrics.RecordError("kafka_consume")
	h.log.Error("kafka message handling failed",
		logger.String("topic", topic),
		logger.Int("partition", km.Partition),
		logger.Error(err),
	)
}

var _ pkgkafka.ConsumerHook = (*ConsumerMetricsHook)(nil)
