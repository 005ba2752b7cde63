package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	billingapp "github.com/gmu1026/billing/internal/application/billing"
	partnerapp "github.com/gmu1026/billing/internal/application/partner"
	slipapp "github.com/gmu1026/billing/internal/application/slip"
	domainslip "github.com/gmu1026/billing/internal/domain/slip"
	"github.com/gmu1026/billing/internal/infrastructure/cache"
	"github.com/gmu1026/billing/internal/infrastructure/config"
	"github.com/gmu1026/billing/internal/infrastructure/logger"
	"github.com/gmu1026/billing/internal/infrastructure/persistence"
	"github.com/gmu1026/billing/internal/infrastructure/ratesync"
	"github.com/gmu1026/billing/internal/infrastructure/telemetry"
	"github.com/gmu1026/billing/internal/interfaces/http/handler"
	"github.com/gmu1026/billing/internal/interfaces/http/middleware"
	"github.com/gmu1026/billing/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting billing slip engine",
		zap.String("name", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("vendor", cfg.App.Vendor),
		zap.String("port", cfg.App.Port),
	)

	// Tracing: spans go to the OTLP collector when enabled, no-op otherwise
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}()

	// Initialize database with a zap-backed gorm logger
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", zap.Error(err))
		}
	}()
	log.Info("Database connected",
		zap.String("host", cfg.Database.Host),
		zap.String("dbname", cfg.Database.DBName),
	)

	if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
		Enabled:    cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL: cfg.Telemetry.DBLogFullSQL,
	}, log); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}

	// Repositories
	companyRepo := persistence.NewGormCompanyRepository(db.DB)
	bpRepo := persistence.NewGormBPCodeRepository(db.DB)
	contractRepo := persistence.NewGormContractRepository(db.DB)
	mappingRepo := persistence.NewGormAccountMappingRepository(db.DB)
	billingRepo := persistence.NewGormBillingRecordRepository(db.DB)
	profileRepo := persistence.NewGormProfileRepository(db.DB)
	depositRepo := persistence.NewGormDepositRepository(db.DB)
	chargeRepo := persistence.NewGormAdditionalChargeRepository(db.DB)
	splitRepo := persistence.NewGormSplitRuleRepository(db.DB)
	proRataRepo := persistence.NewGormProRataRepository(db.DB)
	slipRepo := persistence.NewGormSlipRecordRepository(db.DB)
	vendorRepo := persistence.NewGormVendorConfigRepository(db.DB)

	// Exchange-rate reads optionally go through a Redis cache. Writes and
	// syncs invalidate through the same wrapper, so both repos behave
	// identically; the cache only shortens generation-time lookups.
	var rateRepo domainslip.ExchangeRateRepository = persistence.NewGormExchangeRateRepository(db.DB)
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			cancel()
			log.Warn("Redis unreachable, running without rate cache", zap.Error(err))
		} else {
			cancel()
			rateRepo = cache.NewRateCache(rateRepo, redisClient, 10*time.Minute, log)
			log.Info("Exchange-rate cache enabled", zap.String("addr", cfg.Redis.Addr()))
		}
		defer func() {
			_ = redisClient.Close()
		}()
	}

	// Remote rate source. When disabled the engine serves what the rates
	// table already holds and manual syncs return an upstream error.
	var syncer slipapp.RateSyncer
	if cfg.RateSync.Enabled {
		syncer = ratesync.NewHBClient(cfg.RateSync, rateRepo, log)
		log.Info("Rate sync enabled", zap.String("base_url", cfg.RateSync.BaseURL))
	}

	// Application services
	resolver := slipapp.NewMappingResolver(mappingRepo, contractRepo, companyRepo, bpRepo, profileRepo, cfg.App.Vendor)
	proRataCalc := slipapp.NewProRataCalculator(proRataRepo)
	injector := slipapp.NewChargeInjector(chargeRepo, slipRepo)
	generationService := slipapp.NewGenerationService(
		billingRepo,
		resolver,
		proRataCalc,
		splitRepo,
		injector,
		slipRepo,
		vendorRepo,
		rateRepo,
		companyRepo,
		bpRepo,
		syncer,
		log,
		cfg.App.Vendor,
		cfg.RateSync.DefaultDays,
	)
	batchService := slipapp.NewBatchService(slipRepo, bpRepo, log)
	exportService := slipapp.NewExportService(slipRepo, bpRepo)
	rateService := slipapp.NewExchangeRateService(rateRepo, syncer, log)
	vendorConfigService := slipapp.NewVendorConfigService(vendorRepo)
	depositService := billingapp.NewDepositService(depositRepo, log)
	chargeService := billingapp.NewChargeService(chargeRepo, contractRepo)
	splitRuleService := billingapp.NewSplitRuleService(splitRepo, companyRepo)
	proRataService := billingapp.NewProRataService(proRataRepo, contractRepo)
	profileService := billingapp.NewProfileService(profileRepo, depositRepo)
	companyService := partnerapp.NewCompanyService(companyRepo, bpRepo, log)

	// HTTP handlers
	slipHandler := handler.NewSlipHandler(generationService, batchService, exportService)
	rateHandler := handler.NewExchangeRateHandler(rateService)
	vendorConfigHandler := handler.NewVendorConfigHandler(vendorConfigService)
	depositHandler := handler.NewDepositHandler(depositService)
	chargeHandler := handler.NewChargeHandler(chargeService)
	splitRuleHandler := handler.NewSplitRuleHandler(splitRuleService)
	proRataHandler := handler.NewProRataHandler(proRataService)
	profileHandler := handler.NewProfileHandler(profileService)
	companyHandler := handler.NewCompanyHandler(companyService)
	systemHandler := handler.NewSystemHandler(db.DB)

	// Gin engine
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Invalid trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(middleware.Tracing(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))
	engine.Use(middleware.SpanEnrichment())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.BodyLimit(4 << 20))
	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsCfg))
	engine.Use(middleware.Timeout(cfg.HTTP.WriteTimeout))

	// Liveness probe outside the versioned API
	engine.GET("/health", healthHandler(db, log))

	router.NewRouter(engine, router.WithAPIVersion("v1")).
		Register(slipHandler).
		Register(rateHandler).
		Register(vendorConfigHandler).
		Register(depositHandler).
		Register(chargeHandler).
		Register(splitRuleHandler).
		Register(proRataHandler).
		Register(profileHandler).
		Register(companyHandler).
		Register(systemHandler).
		Setup()

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
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database, _ *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
