package main

import (
	"context"
	"errors"
	"math/rand"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/protrack/backend/internal/application/dashboard"
	inventoryapp "github.com/protrack/backend/internal/application/inventory"
	"github.com/protrack/backend/internal/application/logistics"
	"github.com/protrack/backend/internal/application/manufacturing"
	plannerapp "github.com/protrack/backend/internal/application/planner"
	"github.com/protrack/backend/internal/application/production"
	"github.com/protrack/backend/internal/application/quality"
	"github.com/protrack/backend/internal/application/resource"
	"github.com/protrack/backend/internal/application/state"
	"github.com/protrack/backend/internal/application/workforce"
	"github.com/protrack/backend/internal/domain/inventory"
	"github.com/protrack/backend/internal/domain/shared"
	"github.com/protrack/backend/internal/infrastructure/ai"
	"github.com/protrack/backend/internal/infrastructure/cache"
	"github.com/protrack/backend/internal/infrastructure/config"
	"github.com/protrack/backend/internal/infrastructure/event"
	"github.com/protrack/backend/internal/infrastructure/logger"
	"github.com/protrack/backend/internal/infrastructure/migration"
	"github.com/protrack/backend/internal/infrastructure/persistence"
	"github.com/protrack/backend/internal/infrastructure/scheduler"
	"github.com/protrack/backend/internal/infrastructure/seed"
	"github.com/protrack/backend/internal/infrastructure/storage"
	"github.com/protrack/backend/internal/infrastructure/telemetry"
	"github.com/protrack/backend/internal/interfaces/http/handler"
	"github.com/protrack/backend/internal/interfaces/http/middleware"
	"github.com/protrack/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

const rateLimiterCleanupJob = "rate-limiter-cleanup"

func main() {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	}, cfg.App.Env)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting PCP backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("version", version),
		zap.String("port", cfg.App.Port),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tp, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    version,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}

	metrics := telemetry.NewMetrics()

	// Snapshot store
	var (
		store  state.Store
		db     *persistence.Database
		pinger handler.Pinger
	)
	if cfg.Database.IsPersistent() {
		db, err = openDatabase(cfg, log)
		if err != nil {
			log.Fatal("Failed to open database", zap.Error(err))
		}
		defer func() {
			if err := db.Close(); err != nil {
				log.Error("Error closing database", zap.Error(err))
			}
		}()
		store = persistence.NewGormStateStore(db)
		pinger = db
	} else {
		log.Warn("Using in-memory state, data is lost on restart")
		store = persistence.NewMemoryStore()
	}

	seeded, err := seed.Initial(cfg.Seed, time.Now())
	if err != nil {
		log.Fatal("Failed to build seed data", zap.Error(err))
	}
	initial, err := state.Bootstrap(ctx, store, func() state.State { return seeded })
	if err != nil {
		log.Fatal("Failed to bootstrap state", zap.Error(err))
	}

	// Domain events
	bus := event.NewInMemoryEventBus(log.Named("events"))
	bus.Subscribe(event.NewAuditHandler(log, inventory.EventTypeLowStock, inventory.EventTypeOutOfStock))
	bus.Subscribe(telemetry.NewMetricsEventHandler(metrics))
	if err := bus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}

	states := state.NewController(initial,
		state.WithStore(store),
		state.WithEventPublisher(bus),
		state.WithSaveFailureHook(func(error) { metrics.StateSaveFailed() }),
		state.WithLogger(log.Named("state")),
	)

	// Outbound integrations
	archive, err := storage.New(ctx, cfg.Storage, log.Named("storage"))
	if err != nil {
		log.Fatal("Failed to initialize upload archive", zap.Error(err))
	}
	planner, err := ai.New(ctx, cfg.AI, log)
	if err != nil {
		log.Fatal("Failed to initialize AI planner", zap.Error(err))
	}

	orderOpts := []production.Option{
		production.WithTickObserver(metrics),
		production.WithLogger(log.Named("production")),
	}
	if cfg.Ticker.Seed != 0 {
		orderOpts = append(orderOpts, production.WithIncrementSource(rand.New(rand.NewSource(cfg.Ticker.Seed))))
	}
	if cfg.Idempotency.Enabled {
		idem, closeIdem, err := newIdempotencyStore(ctx, cfg)
		if err != nil {
			log.Fatal("Failed to initialize idempotency store", zap.Error(err))
		}
		defer closeIdem()
		orderOpts = append(orderOpts, production.WithIdempotencyStore(idem, cfg.Idempotency.TTL))
	}

	orderService := production.NewOrderService(states, orderOpts...)
	inventoryService := inventoryapp.NewInventoryService(states,
		inventoryapp.WithArchive(archive, cfg.Storage.Prefix),
		inventoryapp.WithLogger(log.Named("inventory")),
	)
	attendanceService := workforce.NewAttendanceService(states,
		workforce.WithArchive(archive, cfg.Storage.Prefix),
		workforce.WithLogger(log.Named("workforce")),
	)
	plannerService := plannerapp.NewPlannerService(states, planner,
		plannerapp.WithHistorySize(cfg.AI.HistorySize),
		plannerapp.WithRecorder(metrics),
		plannerapp.WithLogger(log.Named("planner")),
	)

	handlers := router.Handlers{
		Orders:     handler.NewOrderHandler(orderService),
		Inventory:  handler.NewInventoryHandler(inventoryService),
		Processes:  handler.NewProcessHandler(manufacturing.NewProcessService(states)),
		Resources:  handler.NewResourceHandler(resource.NewResourceService(states)),
		Transports: handler.NewTransportHandler(logistics.NewTransportService(states)),
		Quality:    handler.NewQualityHandler(quality.NewSampleService(states, time.Now)),
		Warehouses: handler.NewWarehouseHandler(attendanceService),
		Planner:    handler.NewPlannerHandler(plannerService),
		Dashboard:  handler.NewDashboardHandler(dashboard.NewDashboardService(states)),
	}

	// Background jobs
	var limiter *middleware.RateLimiter
	if cfg.HTTP.RateLimitEnabled {
		rps := float64(cfg.HTTP.RateLimitRequests) / cfg.HTTP.RateLimitWindow.Seconds()
		limiter = middleware.NewRateLimiter(rps, cfg.HTTP.RateLimitRequests)
	}

	sched := scheduler.New(log.Named("scheduler"))
	if cfg.Ticker.Enabled {
		if err := sched.Every(production.TickerJobName, cfg.Ticker.Interval, orderService.ProgressJob()); err != nil {
			log.Fatal("Failed to schedule progress ticker", zap.Error(err))
		}
	}
	if limiter != nil {
		err := sched.Every(rateLimiterCleanupJob, time.Minute, func(context.Context) error {
			limiter.Cleanup()
			return nil
		})
		if err != nil {
			log.Fatal("Failed to schedule rate limiter cleanup", zap.Error(err))
		}
	}
	if err := sched.Start(ctx); err != nil {
		log.Fatal("Failed to start scheduler", zap.Error(err))
	}

	engine := newEngine(cfg, log, metrics, limiter)

	systemHandler := handler.NewSystemHandler(cfg.App.Name, version, states, pinger, handler.WithJobReporter(sched))
	engine.GET("/health", systemHandler.Health)
	if cfg.Metrics.Enabled {
		engine.GET(cfg.Metrics.Path, gin.WrapH(metrics.Handler()))
	}

	router.NewRouter(engine).Register(router.DomainGroups(handlers)...).Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := sched.Stop(shutdownCtx); err != nil {
		log.Warn("Scheduler did not stop cleanly", zap.Error(err))
	}
	_ = bus.Stop(shutdownCtx)
	if err := tp.Shutdown(shutdownCtx); err != nil {
		log.Warn("Tracer shutdown failed", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// openDatabase connects to the configured SQL database. PostgreSQL schemas
// are managed by migrations; other drivers rely on auto-migrate.
func openDatabase(cfg *config.Config, log *zap.Logger) (*persistence.Database, error) {
	dbCfg := cfg.Database
	if dbCfg.Driver != config.DriverPostgres {
		dbCfg.AutoMigrate = true
	}
	db, err := persistence.NewDatabase(&dbCfg,
		persistence.WithLogger(log.Named("gorm")),
		persistence.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThresh),
	)
	if err != nil {
		return nil, err
	}

	if dbCfg.Driver == config.DriverPostgres && !dbCfg.AutoMigrate {
		sqlDB, err := db.DB.DB()
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		m, err := migration.New(sqlDB, log.Named("migrate"))
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		if err := m.Up(); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		if err := telemetry.InstrumentGorm(db.DB, dbCfg.Driver); err != nil {
			log.Warn("Failed to instrument database", zap.Error(err))
		}
	}

	log.Info("Database connected", zap.String("driver", dbCfg.Driver))
	return db, nil
}

// newIdempotencyStore returns the Redis store when Redis is enabled and the
// in-process store otherwise
func newIdempotencyStore(ctx context.Context, cfg *config.Config) (shared.IdempotencyStore, func(), error) {
	if !cfg.Redis.Enabled {
		s := cache.NewInMemoryIdempotencyStore()
		return s, func() { _ = s.Close() }, nil
	}
	client, err := cache.NewRedisClient(ctx, cache.RedisConfig{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return nil, nil, err
	}
	s := cache.NewRedisIdempotencyStore(client, "pcp:idempotency:")
	return s, func() { _ = s.Close() }, nil
}

func newEngine(cfg *config.Config, log *zap.Logger, metrics *telemetry.Metrics, limiter *middleware.RateLimiter) *gin.Engine {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Warn("Invalid trusted proxies", zap.Error(err))
	}

	skip := []string{"/health", cfg.Metrics.Path}
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log, skip...))
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
		Skip:        skip,
	}))
	engine.Use(middleware.SpanAttributes())
	engine.Use(middleware.Secure())

	cors := middleware.DefaultCORSConfig()
	cors.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		cors.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		cors.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(cors))

	engine.Use(middleware.BodyLimit(max(cfg.HTTP.MaxBodySize, cfg.HTTP.MaxUploadSize)))
	if limiter != nil {
		engine.Use(middleware.RateLimit(limiter))
	}
	if cfg.HTTP.GzipEnabled {
		engine.Use(gzip.Gzip(gzip.DefaultCompression))
	}
	if cfg.Metrics.Enabled {
		engine.Use(metrics.GinMiddleware())
	}
	return engine
}
