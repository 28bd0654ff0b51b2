package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/lightbnb/lightbnb/internal/auth"
	"github.com/lightbnb/lightbnb/internal/config"
	"github.com/lightbnb/lightbnb/internal/domain"
	"github.com/lightbnb/lightbnb/internal/event"
	handler "github.com/lightbnb/lightbnb/internal/handler/http"
	"github.com/lightbnb/lightbnb/internal/repository"
	"github.com/lightbnb/lightbnb/internal/repository/memory"
	"github.com/lightbnb/lightbnb/internal/repository/postgres"
	"github.com/lightbnb/lightbnb/internal/service"
	"github.com/lightbnb/lightbnb/migrations"
	"github.com/lightbnb/lightbnb/pkg/database"
	"github.com/lightbnb/lightbnb/pkg/health"
	pkgkafka "github.com/lightbnb/lightbnb/pkg/kafka"
	"github.com/lightbnb/lightbnb/pkg/middleware"
	"github.com/lightbnb/lightbnb/pkg/tracing"
)

// App wires together all dependencies and runs the LightBnB service.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	pool           *pgxpool.Pool
	producer       *pkgkafka.Producer
	httpServer     *http.Server
	tracerShutdown tracing.ShutdownFunc
}

// NewApp creates a new application instance, initializing all dependencies.
// On failure, everything acquired so far is released.
func NewApp(cfg *config.Config, logger *slog.Logger) (_ *App, err error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var cleanup cleanupStack
	defer func() {
		if err != nil {
			cleanup.run()
		}
	}()

	// Initialize OpenTelemetry tracing.
	tracerShutdown, err := tracing.InitTracer(ctx, handler.ServiceName, cfg.Environment, cfg.Tracing)
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}
	cleanup.push(func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer shutdownCancel()
		if err := tracerShutdown(shutdownCtx); err != nil {
			logger.Error("tracer shutdown error", slog.String("error", err.Error()))
		}
	})

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics, err := middleware.NewHTTPMetrics(reg, handler.ServiceName)
	if err != nil {
		return nil, fmt.Errorf("register http metrics: %w", err)
	}

	// Initialize PostgreSQL connection pool.
	pool, err := database.NewPostgresPool(ctx, cfg.Postgres(), logger)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	cleanup.push(pool.Close)

	if err := database.RegisterPoolMetrics(reg, pool, handler.ServiceName); err != nil {
		return nil, fmt.Errorf("register pool metrics: %w", err)
	}

	// Run database migrations.
	if err := database.RunMigrations(ctx, pool, migrations.FS, logger); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("database migrations completed")

	if threshold := cfg.SlowQueryThreshold(); threshold > 0 {
		database.SetSlowQueryLogging(threshold, logger)
	}

	// Event publishing is optional.
	var (
		producer  *pkgkafka.Producer
		publisher event.Publisher = event.NoopPublisher{}
	)
	if cfg.EventsEnabled() {
		producer = pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers), logger)
		publisher = event.NewProducer(producer, logger)
		cleanup.push(func() {
			if err := producer.Close(); err != nil {
				logger.Error("kafka producer close error", slog.String("error", err.Error()))
			}
		})
		logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))
	} else {
		logger.Info("kafka brokers not configured, events disabled")
	}

	// Build the dependency graph.
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiry)
	userRepo := postgres.NewUserRepository(pool)
	reservationRepo := postgres.NewReservationRepository(pool)
	propertyRepo := newPropertyRepository(cfg, pool, logger)

	userService := service.NewUserService(userRepo, jwtManager, publisher, logger)
	propertyService := service.NewPropertyService(propertyRepo, publisher, logger)
	reservationService := service.NewReservationService(reservationRepo)

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.RegisterCritical("postgres", func(ctx context.Context) error {
		return pool.Ping(ctx)
	})
	if producer != nil {
		healthHandler.RegisterNonCritical("kafka", producer.Ping)
	}

	router := handler.NewRouter(handler.RouterDeps{
		Users:              userService,
		Properties:         propertyService,
		Reservations:       reservationService,
		JWTManager:         jwtManager,
		Health:             healthHandler,
		Metrics:            httpMetrics,
		Gatherer:           reg,
		CORS:               middleware.DefaultCORSConfig(cfg.CORSAllowedOrigins...),
		DefaultSearchLimit: cfg.DefaultSearchLimit,
		Logger:             logger,
	})

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &App{
		cfg:            cfg,
		logger:         logger,
		pool:           pool,
		producer:       producer,
		httpServer:     httpServer,
		tracerShutdown: tracerShutdown,
	}, nil
}

// newPropertyRepository selects the property store named by PROPERTY_STORE.
func newPropertyRepository(cfg *config.Config, pool *pgxpool.Pool, logger *slog.Logger) repository.PropertyRepository {
	if cfg.PropertyStore == config.StoreMemory {
		logger.Warn("using in-memory property store, listings are not persisted")
		return memory.NewPropertyRepository()
	}

	mode := domain.WhereModeCorrected
	if cfg.PropertySearchLegacyWhere {
		mode = domain.WhereModeLegacy
	}
	logger.Info("property search configured", slog.String("where_mode", mode.String()))
	return postgres.NewPropertyRepository(pool, mode, logger)
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server", slog.String("addr", a.httpServer.Addr))
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return errors.Join(err, a.Shutdown())
	}

	return a.Shutdown()
}

// Shutdown stops components in order: HTTP server, tracer, Kafka producer,
// PostgreSQL pool.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	var errs []error

	httpCtx, httpCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer httpCancel()
	if err := a.httpServer.Shutdown(httpCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	// Spans from drained requests are flushed here.
	tracerCtx, tracerCancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer tracerCancel()
	if err := a.tracerShutdown(tracerCtx); err != nil {
		a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	a.pool.Close()

	a.logger.Info("application shutdown complete")
	return errors.Join(errs...)
}

// cleanupStack releases start-up resources in reverse acquisition order.
type cleanupStack []func()

func (s *cleanupStack) push(fn func()) {
	*s = append(*s, fn)
}

func (s *cleanupStack) run() {
	for i := len(*s) - 1; i >= 0; i-- {
		(*s)[i]()
	}
	*s = nil
}
