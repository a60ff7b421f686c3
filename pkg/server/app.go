package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"MacroPulse/internal/usecase"
	pkgch "MacroPulse/pkg/clickhouse"
	"MacroPulse/pkg/config"
	xhttp "MacroPulse/pkg/http"
	pkgkafka "MacroPulse/pkg/kafka"
	applogger "MacroPulse/pkg/logger"
	"MacroPulse/pkg/queue"
)

// App encapsulates the entire application lifecycle: the quote collector,
// the samples ingest consumer, the observe loop, the alert dispatch queue
// and the HTTP server.
type App struct {
	cfg        *config.Config
	log        *applogger.Logger
	collector  *usecase.QuoteCollector
	consumer   *pkgkafka.Consumer
	kh         pkgkafka.MessageHandler
	observer   *usecase.ObserveUseCase
	alertQueue *queue.RedisQueue
	chClient   *pkgch.Client
	handler    xhttp.Handler
	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	log *applogger.Logger,
	collector *usecase.QuoteCollector,
	consumer *pkgkafka.Consumer,
	kh pkgkafka.MessageHandler,
	observer *usecase.ObserveUseCase,
	alertQueue *queue.RedisQueue,
	chClient *pkgch.Client,
	handler xhttp.Handler,
) *App {
	return &App{
		cfg:        cfg,
		log:        log,
		collector:  collector,
		consumer:   consumer,
		kh:         kh,
		observer:   observer,
		alertQueue: alertQueue,
		chClient:   chClient,
		handler:    handler,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithLogging(a.log, 2*time.Second),
	)

	// Live quote collector
	if a.collector != nil {
		go func() {
			if err := a.collector.Start(ctx); err != nil {
				a.log.Error("collector error", applogger.Error(err))
			}
		}()
		a.log.Info("quote collector started", applogger.Strings("indicators", a.cfg.MarketData.Indicators))
	}

	// Samples ingest consumer
	if a.consumer != nil && a.kh != nil {
		a.consumer.RegisterHandler(a.kh)
		go func() {
			if err := a.consumer.Start(); err != nil {
				a.log.Error("kafka consumer error", applogger.Error(err))
			}
		}()
		a.log.Info("kafka consumer started", applogger.String("topic", a.kh.Topic()))
	}

	// Alert dispatch workers
	if a.alertQueue != nil {
		if err := a.alertQueue.Start(); err != nil {
			a.log.Error("alert queue start error", applogger.Error(err))
			return err
		}
		a.log.Info("alert dispatch queue started",
			applogger.Int("workers", a.cfg.Alerts.Workers),
			applogger.String("key", a.cfg.Alerts.QueueKey),
		)
	}

	// Regime observe loop
	if a.observer != nil {
		a.observer.Start(ctx)
		a.log.Info("observer started", applogger.Duration("interval", a.cfg.Observer.Interval))
	}

	// HTTP server
	if err := a.httpServer.Start(); err != nil {
		a.log.Error("http server start error", applogger.Error(err))
		return err
	}
	a.log.Info("http server started", applogger.Int("port", a.cfg.Server.Port))

	// Wait for interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.log.Info("shutdown signal received")
	cancel()
	return a.shutdown(context.Background())
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()

	// Stop collector (pipeline + stream)
	if a.collector != nil {
		if err := a.collector.Shutdown(shutdownCtx); err != nil {
			a.log.Warn("collector stop error", applogger.Error(err))
		}
	}

	// Shutdown HTTP server
	if a.httpServer != nil {
		if err := a.httpServer.Stop(shutdownCtx); err != nil {
			a.log.Error("http shutdown error", applogger.Error(err))
		}
	}

	// Stop alert dispatch workers
	if a.alertQueue != nil {
		if err := a.alertQueue.Stop(shutdownCtx); err != nil {
			a.log.Warn("alert queue stop error", applogger.Error(err))
		}
	}

	// Stop ingest consumer
	if a.consumer != nil {
		if err := a.consumer.Stop(shutdownCtx); err != nil {
			a.log.Warn("kafka consumer stop error", applogger.Error(err))
		}
	}

	// Close processor resources (publisher + store)
	if a.collector != nil && a.collector.Processor() != nil {
		a.collector.Processor().Close()
	}

	// Close infrastructure clients
	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			a.log.Warn("clickhouse close error", applogger.Error(err))
		}
	}

	a.log.Info("shutdown complete")
	a.log.RemoveCollector()
	return nil
}
