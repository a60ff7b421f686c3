//go:build wireinject
// +build wireinject

package di

import (
	"MacroPulse/pkg/config"
	"MacroPulse/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideClickHouseClient,
		ProvideKafkaProducer,
		ProvideKafkaConsumer,
		ProvideRedisClient,
		ProvideCache,

		// Repositories
		ProvideHistoryStore,
		ProvideStateStore,
		ProvideAlertSink,
		ProvideSamplePublisher,
		ProvideQuoteStream,
		ProvideMarketDataClient,
		ProvideHistorySource,

		// Domain services
		ProvideStatComputer,
		ProvideRiskScorer,
		ProvideZScoreClassifier,
		ProvideRegimeClassifier,
		ProvideTracker,
		ProvideTrendSynthesizer,

		// Alert queue
		ProvideAlertQueuePublisher,
		ProvideAlertQueueConsumer,

		// Use cases
		ProvideSnapshotUseCase,
		ProvideObserveUseCase,
		ProvideChartUseCase,
		ProvideTrendUseCase,
		ProvideQuoteProcessor,
		ProvideQuoteCollector,
		ProvideKafkaSamplesHandler,

		// HTTP
		ProvideDashboardHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
