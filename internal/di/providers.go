package di

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"MacroPulse/internal/domain/models"
	"MacroPulse/internal/domain/repository"
	domsvc "MacroPulse/internal/domain/service"
	"MacroPulse/internal/handler/api"
	mid "MacroPulse/internal/middleware"
	internalrepo "MacroPulse/internal/repository"
	"MacroPulse/internal/service/marketdata"
	svcmetrics "MacroPulse/internal/service/metrics"
	"MacroPulse/internal/services/features"
	"MacroPulse/internal/services/riskmodel"
	"MacroPulse/internal/services/signals"
	"MacroPulse/internal/usecase"
	"MacroPulse/pkg/cache"
	pkgch "MacroPulse/pkg/clickhouse"
	"MacroPulse/pkg/config"
	pkgkafka "MacroPulse/pkg/kafka"
	"MacroPulse/pkg/logger"
	"MacroPulse/pkg/metrics"
	"MacroPulse/pkg/queue"
	"MacroPulse/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	level := "info"
	format := "json"
	if cfg.Environment == "development" {
		level = "debug"
		format = "console"
	}
	return logger.New(&logger.Config{Level: level, Format: format, Output: "stdout"})
}

// ProvideClickHouseClient creates a ClickHouse client and ensures the schema.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db := cfg.ClickHouse.Database
	if db == "" {
		db = "macropulse"
	}
	if err := client.InitSchema(ctx, []string{
		fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s", db),
		fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s.indicator_samples (indicator String, ts DateTime, value Float64) ENGINE=MergeTree ORDER BY (indicator, ts)", db),
	}); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}

	return client, nil
}

// ProvideKafkaProducer creates a Kafka producer.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideKafkaConsumer creates the samples ingest consumer.
func ProvideKafkaConsumer(cfg *config.Config) (*pkgkafka.Consumer, error) {
	consumer, err := pkgkafka.NewConsumer(
		pkgkafka.WithConsumerBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithConsumerGroupID(cfg.Kafka.Consumer.GroupID),
		pkgkafka.WithConsumerWorkers(cfg.Kafka.Consumer.Workers),
		pkgkafka.WithConsumerBufferSize(cfg.Kafka.Consumer.BufferSize),
		pkgkafka.WithConsumerRetry(cfg.Kafka.Consumer.RetryMax, cfg.Kafka.Consumer.BackoffMin, cfg.Kafka.Consumer.BackoffMax),
		pkgkafka.WithConsumerDLQ(cfg.Kafka.Consumer.DLQTopic),
		pkgkafka.WithConsumerFetch(cfg.Kafka.Consumer.MinBytes, cfg.Kafka.Consumer.MaxBytes),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer: %w", err)
	}
	return consumer, nil
}

// ProvideRedisClient creates the shared Redis client.
func ProvideRedisClient(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	svcmetrics.Register()
	return metrics.New()
}

// ProvideHistoryStore creates the ClickHouse history store.
func ProvideHistoryStore(chClient *pkgch.Client, cfg *config.Config, l *logger.Logger) repository.HistoryStore {
	db := cfg.ClickHouse.Database
	if db == "" {
		db = "macropulse"
	}
	store := internalrepo.NewClickHouseHistoryStore(chClient, db+".indicator_samples")
	store.SetLogger(l)
	return store
}

// ProvideStateStore creates the Redis-backed tracker state store.
func ProvideStateStore(client *redis.Client, cfg *config.Config) repository.StateStore {
	return internalrepo.NewRedisStateStore(client, cfg.Redis.Prefix)
}

// ProvideAlertSink creates the Kafka alert sink.
func ProvideAlertSink(producer *pkgkafka.Producer, cfg *config.Config) repository.AlertSink {
	return internalrepo.NewKafkaAlertSink(producer, cfg.Kafka.AlertsTopic)
}

// ProvideSamplePublisher creates the Kafka samples publisher.
func ProvideSamplePublisher(producer *pkgkafka.Producer, cfg *config.Config) repository.SamplePublisher {
	return internalrepo.NewKafkaSamplePublisher(producer, cfg.Kafka.SamplesTopic)
}

// ProvideCache creates the layered snapshot cache.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	host := cfg.Redis.Addr
	port := 6379
	if h, p, err := net.SplitHostPort(cfg.Redis.Addr); err == nil {
		host = h
		if n, err := strconv.Atoi(p); err == nil {
			port = n
		}
	}
	rc, err := cache.NewRedisCache(
		cache.WithRedisHost(host),
		cache.WithRedisPort(port),
		cache.WithRedisPassword(cfg.Redis.Password),
		cache.WithRedisDB(cfg.Redis.DB),
		cache.WithRedisPrefix(cfg.Redis.Prefix),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return cache.NewLayeredCache(rc), nil
}

// ProvideQuoteStream creates the upstream WebSocket quote stream.
func ProvideQuoteStream(cfg *config.Config, l *logger.Logger) repository.QuoteStream {
	indicators := make([]models.IndicatorType, 0, len(cfg.MarketData.Indicators))
	for _, s := range cfg.MarketData.Indicators {
		indicators = append(indicators, models.IndicatorType(s))
	}
	return marketdata.NewStream(
		cfg.MarketData.APIKey,
		cfg.MarketData.WebSocketURL,
		indicators,
		cfg.MarketData.ReconnectDelay,
		cfg.MarketData.PingInterval,
		l,
	)
}

// ProvideMarketDataClient creates the REST history client.
func ProvideMarketDataClient(cfg *config.Config, m repository.Metrics, l *logger.Logger) *marketdata.Client {
	return marketdata.NewClient(cfg, m, l)
}

// ProvideHistorySource exposes the market-data client as a HistorySource.
func ProvideHistorySource(client *marketdata.Client) repository.HistorySource {
	return client
}

// ProvideStatComputer creates the local stat computer.
func ProvideStatComputer() domsvc.StatComputer {
	return features.NewComputer()
}

// ProvideRiskScorer creates the external risk model client. Nil when the
// model URL is not configured; the snapshot degrades without it.
func ProvideRiskScorer(cfg *config.Config) domsvc.RiskScorer {
	if cfg.RiskModel.URL == "" {
		return nil
	}
	return riskmodel.NewClient(cfg)
}

// ProvideZScoreClassifier builds the classifier with per-indicator overrides.
func ProvideZScoreClassifier(cfg *config.Config) *signals.ZScoreClassifier {
	overrides := make(map[models.IndicatorType]signals.ZScoreThresholds, len(cfg.ZScore))
	for name, t := range cfg.ZScore {
		overrides[models.IndicatorType(name)] = signals.ZScoreThresholds{
			Significant: t.Significant,
			Extreme:     t.Extreme,
		}
	}
	return signals.NewZScoreClassifier(overrides)
}

// ProvideRegimeClassifier builds the classifier from config thresholds,
// falling back to defaults for unset values.
func ProvideRegimeClassifier(cfg *config.Config) *signals.RegimeClassifier {
	t := signals.DefaultRegimeThresholds()
	if cfg.Regime.VIXBullishBelow > 0 {
		t.VIXBullishBelow = cfg.Regime.VIXBullishBelow
	}
	if cfg.Regime.VIXBearishAbove > 0 {
		t.VIXBearishAbove = cfg.Regime.VIXBearishAbove
	}
	if cfg.Regime.DXYBand > 0 {
		t.DXYBand = cfg.Regime.DXYBand
	}
	if cfg.Regime.M2Band > 0 {
		t.M2Band = cfg.Regime.M2Band
	}
	return signals.NewRegimeClassifier(t)
}

// ProvideTracker creates the regime change tracker.
func ProvideTracker(store repository.StateStore) *signals.RegimeChangeTracker {
	return signals.NewRegimeChangeTracker(store)
}

// ProvideTrendSynthesizer creates the trend synthesizer.
func ProvideTrendSynthesizer() *signals.TrendSynthesizer {
	return signals.NewTrendSynthesizer()
}

// ProvideSnapshotUseCase assembles the snapshot use case.
func ProvideSnapshotUseCase(
	source repository.HistorySource,
	stats domsvc.StatComputer,
	zscore *signals.ZScoreClassifier,
	regime *signals.RegimeClassifier,
	risk domsvc.RiskScorer,
	m repository.Metrics,
	cacheSvc cache.Service,
	l *logger.Logger,
	cfg *config.Config,
) *usecase.SnapshotUseCase {
	return usecase.NewSnapshotUseCase(source, stats, zscore, regime, risk, m, cacheSvc, l, cfg.Observer.HistoryDays)
}

// ProvideAlertQueuePublisher creates the queue handle used to enqueue alerts.
func ProvideAlertQueuePublisher(l *logger.Logger, client *redis.Client, cfg *config.Config) queue.QueueService {
	return queue.NewRedisPublisher(l, client, queue.WithKeyPrefix(cfg.Alerts.QueueKey))
}

// ProvideAlertQueueConsumer creates the queue worker pool that delivers
// alerts through the sink.
func ProvideAlertQueueConsumer(
	l *logger.Logger,
	client *redis.Client,
	cfg *config.Config,
	sink repository.AlertSink,
	m repository.Metrics,
) *queue.RedisQueue {
	qc := &queue.QueueConfig{
		Workers:    cfg.Alerts.Workers,
		QueueSize:  256,
		RetryLimit: cfg.Alerts.RetryLimit,
		RetryDelay: cfg.Alerts.RetryDelay,
	}
	if qc.Workers <= 0 {
		qc.Workers = 2
	}
	if qc.RetryLimit <= 0 {
		qc.RetryLimit = 3
	}
	if qc.RetryDelay <= 0 {
		qc.RetryDelay = 5 * time.Second
	}
	jobs := []queue.Job{usecase.NewAlertDispatchJob(sink, m, l)}
	return queue.NewRedisConsumer(l, qc, client, jobs, queue.WithKeyPrefix(cfg.Alerts.QueueKey))
}

// ProvideObserveUseCase assembles the observe loop.
func ProvideObserveUseCase(
	snapshot *usecase.SnapshotUseCase,
	tracker *signals.RegimeChangeTracker,
	alerts queue.QueueService,
	m repository.Metrics,
	l *logger.Logger,
	cfg *config.Config,
) *usecase.ObserveUseCase {
	return usecase.NewObserveUseCase(snapshot, tracker, alerts, m, l, cfg.Observer.Interval)
}

// ProvideChartUseCase assembles the chart use case.
func ProvideChartUseCase(store repository.HistoryStore, source repository.HistorySource, cfg *config.Config) *usecase.ChartUseCase {
	return usecase.NewChartUseCase(store, source, cfg.Chart.MaxPoints)
}

// ProvideTrendUseCase assembles the trend use case.
func ProvideTrendUseCase(client *marketdata.Client, synth *signals.TrendSynthesizer) *usecase.TrendUseCase {
	return usecase.NewTrendUseCase(client, synth)
}

// ProvideQuoteProcessor creates the quote processor routed by config.
func ProvideQuoteProcessor(
	pub repository.SamplePublisher,
	store repository.HistoryStore,
	m repository.Metrics,
	cfg *config.Config,
) *usecase.QuoteProcessor {
	return usecase.NewQuoteProcessor(pub, store, m, cfg.Ingest.Backend)
}

// ProvideQuoteCollector creates the quote collector with its pipeline.
func ProvideQuoteCollector(
	stream repository.QuoteStream,
	processor *usecase.QuoteProcessor,
	m repository.Metrics,
	cfg *config.Config,
) *usecase.QuoteCollector {
	maxRPS := cfg.MarketData.Rate.RPS
	if maxRPS <= 0 {
		maxRPS = 20
	}
	pipe := mid.NewRealtimePipeline(processor, m,
		mid.WithMaxRPS(maxRPS),
		mid.WithBufferSize(2000),
	)
	return usecase.NewQuoteCollector(stream, processor, m, pipe)
}

// ProvideKafkaSamplesHandler registers the handler for the ingest topic.
func ProvideKafkaSamplesHandler(store repository.HistoryStore, m repository.Metrics, cfg *config.Config) *usecase.KafkaSamplesHandler {
	return usecase.NewKafkaSamplesHandler(cfg.Kafka.SamplesTopic, store, m)
}

// ProvideDashboardHandler creates the Echo HTTP handler.
func ProvideDashboardHandler(
	l *logger.Logger,
	snapshot *usecase.SnapshotUseCase,
	chart *usecase.ChartUseCase,
	trend *usecase.TrendUseCase,
	tracker *signals.RegimeChangeTracker,
	store repository.HistoryStore,
) *api.DashboardHandler {
	return api.NewDashboardHandler(l, snapshot, chart, trend, tracker, store)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *logger.Logger,
	m repository.Metrics,
	producer *pkgkafka.Producer,
	collector *usecase.QuoteCollector,
	consumer *pkgkafka.Consumer,
	kh *usecase.KafkaSamplesHandler,
	observer *usecase.ObserveUseCase,
	alertQueue *queue.RedisQueue,
	chClient *pkgch.Client,
	handler *api.DashboardHandler,
) *server.App {
	if consumer != nil {
		consumer.WithConsumerHook(internalrepo.NewConsumerMetricsHook(l, m))
	}
	if topic := cfg.Kafka.LogsTopic; topic != "" {
		l.AddCollector(&logger.CollectionConfig{
			TimeInterval:   time.Minute,
			CountThreshold: 100,
			Topic:          topic,
			Publisher:      internalrepo.NewKafkaLogPublisher(producer),
		})
	}
	return server.New(cfg, l, collector, consumer, kh, observer, alertQueue, chClient, handler)
}
