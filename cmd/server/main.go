package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	appinventory "github.com/shantum/COH-ERP2-sub001/internal/application/inventory"
	appqc "github.com/shantum/COH-ERP2-sub001/internal/application/qc"
	apptrade "github.com/shantum/COH-ERP2-sub001/internal/application/trade"
	"github.com/shantum/COH-ERP2-sub001/internal/infrastructure/cache"
	"github.com/shantum/COH-ERP2-sub001/internal/infrastructure/carrier"
	"github.com/shantum/COH-ERP2-sub001/internal/infrastructure/config"
	"github.com/shantum/COH-ERP2-sub001/internal/infrastructure/event"
	"github.com/shantum/COH-ERP2-sub001/internal/infrastructure/logger"
	"github.com/shantum/COH-ERP2-sub001/internal/infrastructure/persistence"
	"github.com/shantum/COH-ERP2-sub001/internal/infrastructure/scheduler"
	"github.com/shantum/COH-ERP2-sub001/internal/infrastructure/telemetry"
	"github.com/shantum/COH-ERP2-sub001/internal/interfaces/http/handler"
	"github.com/shantum/COH-ERP2-sub001/internal/interfaces/http/router"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer logger.Sync(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Telemetry
	tp, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	mp, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.MetricsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	lp, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.LogsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize logger provider", zap.Error(err))
	}
	log = lp.Bridge(log, logger.ParseLevel(cfg.Log.Level))
	defer shutdownTelemetry(log, tp, mp, lp)

	log.Info("Starting returns service",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.GormLevel))
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
		Enabled:    cfg.Telemetry.DBTraceEnabled,
		LogFullSQL: cfg.Telemetry.DBLogFullSQL,
		DBName:     cfg.Database.DBName,
	}, log); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}
	log.Info("Database connected successfully")

	// Balance cache
	balances, closeCache, err := cache.NewBalanceCacheFactory(cfg.Redis,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(!cfg.IsProduction()),
	).CreateCache(ctx)
	if err != nil {
		log.Fatal("Failed to initialize balance cache", zap.Error(err))
	}
	defer func() { _ = closeCache() }()

	// Events
	serializer := event.NewEventSerializer()
	event.RegisterAllEvents(serializer)
	outboxPublisher := event.NewOutboxPublisher(serializer).WithMaxRetries(cfg.Event.MaxRetries)
	outboxRepo := event.NewGormOutboxRepository(db.DB)

	bus := event.NewInMemoryEventBus(log)
	bus.Subscribe(appqc.NewWriteOffHandler(log))
	publisher := event.PublisherChain{bus}
	if cfg.Kafka.Enabled {
		relay := event.NewKafkaRelay(event.NewKafkaWriter(cfg.Kafka.Brokers, cfg.Kafka.Topic), serializer, log)
		defer func() {
			if err := relay.Close(); err != nil {
				log.Error("Error closing Kafka writer", zap.Error(err))
			}
		}()
		// Kafka first: a broker failure leaves the entry pending before local
		// handlers have seen it.
		publisher = event.PublisherChain{relay, bus}
		log.Info("Kafka relay enabled", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))
	}

	// Application services
	scope := persistence.NewGormTransactionScope(db.DB, outboxPublisher, balances)
	counters := apptrade.NewCounterMaintainer()

	returnService := apptrade.NewReturnService(
		scope,
		persistence.NewGormOrderLineRepository(db.DB),
		persistence.NewGormOrderRepository(db.DB),
		persistence.NewGormSKURepository(db.DB),
		counters,
	)
	exchangeService := apptrade.NewExchangeService(scope, counters)
	qcService := appqc.NewService(scope, persistence.NewGormQueueItemRepository(db.DB), counters)
	balanceService := appinventory.NewBalanceService(scope, persistence.NewGormInventoryTransactionRepository(db.DB), balances)

	if cfg.Carrier.Enabled {
		booker, err := carrier.NewHTTPBooker(cfg.Carrier)
		if err != nil {
			log.Fatal("Failed to initialize carrier client", zap.Error(err))
		}
		returnService.SetCarrier(booker)
		log.Info("Carrier pickup booking enabled", zap.String("base_url", cfg.Carrier.BaseURL))
	}

	meter := mp.Meter("returns")
	metrics, err := telemetry.NewReturnMetrics(meter)
	if err != nil {
		log.Fatal("Failed to create business metrics", zap.Error(err))
	}
	returnService.SetMetrics(metrics)
	exchangeService.SetMetrics(metrics)
	qcService.SetMetrics(metrics)
	balanceService.SetMetrics(metrics)

	// HTTP
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine, err := router.NewEngine(router.Config{
		ServiceName:    cfg.Telemetry.ServiceName,
		TracingEnabled: cfg.Telemetry.Enabled,
		MaxBodySize:    cfg.HTTP.MaxBodySize,
		Meter:          meter,
	}, log, router.Handlers{
		Returns:   handler.NewReturnHandler(returnService, exchangeService),
		QC:        handler.NewQCHandler(qcService),
		Inventory: handler.NewInventoryHandler(balanceService),
		Health:    handler.NewHealthHandler(db),
	})
	if err != nil {
		log.Fatal("Failed to build HTTP engine", zap.Error(err))
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	sched, err := newScheduler(cfg.Event, outboxRepo, log)
	if err != nil {
		log.Fatal("Failed to configure scheduler", zap.Error(err))
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if cfg.Event.ProcessorEnabled {
		processor := event.NewOutboxProcessor(outboxRepo, publisher, serializer, event.OutboxProcessorConfig{
			BatchSize:    cfg.Event.BatchSize,
			PollInterval: cfg.Event.PollInterval,
		}, log)
		g.Go(func() error {
			_ = bus.Start(gctx)
			defer func() { _ = bus.Stop(context.Background()) }()
			return processor.Run(gctx)
		})
	}
	g.Go(func() error {
		return sched.Run(gctx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("Service stopped with error", zap.Error(err))
		os.Exit(1)
	}
	log.Info("Service stopped")
}

func newScheduler(cfg config.EventConfig, store scheduler.OutboxStore, log *zap.Logger) (*scheduler.Scheduler, error) {
	sched := scheduler.New(scheduler.DefaultConfig(), log)

	if cfg.CleanupSchedule != "" {
		cleanup, err := scheduler.NewOutboxCleanupJob(store, cfg.CleanupRetention, log)
		if err != nil {
			return nil, err
		}
		if err := sched.Register(cfg.CleanupSchedule, cleanup); err != nil {
			return nil, err
		}
	}
	if cfg.DeadLetterReport != "" {
		if err := sched.Register(cfg.DeadLetterReport, scheduler.NewDeadLetterReportJob(store, 20, log)); err != nil {
			return nil, err
		}
	}
	return sched, nil
}

type shutdowner interface {
	Shutdown(ctx context.Context) error
}

func shutdownTelemetry(log *zap.Logger, providers ...shutdowner) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for _, p := range providers {
		if err := p.Shutdown(ctx); err != nil {
			log.Error("Telemetry shutdown failed", zap.Error(err))
		}
	}
}
