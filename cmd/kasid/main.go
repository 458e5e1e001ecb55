package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kasicash/kasi/internal/application/usecase"
	"github.com/kasicash/kasi/internal/auth"
	"github.com/kasicash/kasi/internal/domain/port"
	"github.com/kasicash/kasi/internal/infrastructure/adapter"
	"github.com/kasicash/kasi/internal/infrastructure/cache"
	"github.com/kasicash/kasi/internal/infrastructure/config"
	"github.com/kasicash/kasi/internal/infrastructure/messaging"
	"github.com/kasicash/kasi/internal/infrastructure/persistence/postgres"
	"github.com/kasicash/kasi/internal/observability"
	"github.com/kasicash/kasi/internal/presentation/rest"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := config.Load()

	logger := observability.InitLogger(observability.LogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	}, cfg.ServiceName)

	// Fail fast on missing credentials. The error names the variables only;
	// values never reach the log.
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger.Info("starting kasi-lending", "http_port", cfg.HTTPPort)

	metrics, err := observability.InitMetrics(cfg.ServiceName)
	if err != nil {
		logger.Error("failed to initialize metrics", "error", err)
		os.Exit(1)
	}

	// Database.
	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	defer dbCancel()

	pool, err := postgres.NewPool(dbCtx, cfg.DB.DSN())
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("connected to database")

	if err := postgres.RunMigrations(cfg.DB.DSN(), "file://migrations"); err != nil {
		logger.Warn("migration warning", "error", err)
	}

	appRepo := postgres.NewApplicationRepo(pool)
	docRepo := postgres.NewDocumentRepo(pool)

	// Event publisher: Kafka when brokers are configured, log-only otherwise.
	var publisher port.EventPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaPublisher := messaging.NewKafkaEventPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger)
		defer kafkaPublisher.Close() //nolint:errcheck
		publisher = kafkaPublisher
		logger.Info("kafka publisher enabled", "topic", cfg.Kafka.Topic)
	} else {
		publisher = messaging.NewLogEventPublisher(logger)
		logger.Warn("KAFKA_BROKERS not set, events will only be logged")
	}

	// Credit bureau: deterministic mock, optionally cached through Redis.
	var bureau port.CreditBureau = adapter.NewMockBureau()
	if cfg.Redis.Addr != "" {
		redisCache := cache.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Password)
		defer redisCache.Close() //nolint:errcheck
		if err := redisCache.Ping(ctx); err != nil {
			logger.Warn("redis unreachable, credit reports will not be cached", "error", err)
		} else {
			bureau = adapter.NewCachedBureau(bureau, redisCache, cfg.Redis.TTL, logger)
			logger.Info("redis report cache enabled")
		}
	}

	// Face matching: real provider when credentials are present.
	var matcher port.FaceMatcher
	if cfg.FaceMatch.APIKey != "" && cfg.FaceMatch.BaseURL != "" {
		matcher = adapter.NewFaceMatchClient(cfg.FaceMatch.APIKey, cfg.FaceMatch.BaseURL)
	} else {
		matcher = adapter.NewFaceMatchStub()
		logger.Warn("FACE_MATCH_API_KEY not set, using stub face matcher")
	}

	// Mail: HTTP provider when credentials are present.
	var mailer port.Mailer
	if cfg.Mail.APIKey != "" && cfg.Mail.BaseURL != "" {
		mailer = adapter.NewHTTPMailer(cfg.Mail.APIKey, cfg.Mail.BaseURL, cfg.Mail.From)
	} else {
		mailer = adapter.NewLogMailer(logger)
		logger.Warn("MAIL_API_KEY not set, decision emails will only be logged")
	}

	extractor := adapter.NewPDFTextExtractor()

	jwtSvc, err := auth.NewJWTService(auth.JWTConfig{
		Secret:       cfg.Auth.JWTSecret,
		PublicKeyPEM: cfg.Auth.JWTPublicKey,
		Issuer:       cfg.Auth.Issuer,
	})
	if err != nil {
		logger.Error("failed to initialize JWT service", "error", err)
		os.Exit(1)
	}

	handlers := rest.NewHandlers(
		usecase.NewSubmitApplicationUseCase(appRepo, bureau, publisher, logger),
		usecase.NewGetApplicationUseCase(appRepo, docRepo),
		usecase.NewListApplicationsUseCase(appRepo),
		usecase.NewUploadDocumentUseCase(appRepo, docRepo, extractor, publisher, logger),
		usecase.NewReviewApplicationUseCase(appRepo, publisher, mailer, logger),
		usecase.NewAnalyzeIncomeUseCase(extractor, logger),
		usecase.NewCreditCheckUseCase(bureau, logger),
		usecase.NewScoreVerificationUseCase(logger),
		usecase.NewVerifySelfieUseCase(appRepo, docRepo, matcher, publisher, logger),
		logger,
	)

	router := rest.NewRouter(handlers, rest.RouterConfig{
		JWT: jwtSvc,
		Health: rest.NewHealthHandler(cfg.ServiceName, map[string]rest.ReadinessCheck{
			"postgres": func(ctx context.Context) error { return postgres.HealthCheck(ctx, pool) },
		}, logger),
		MetricsHandler: metrics.Handler,
		Instrument:     metrics.HTTPMiddleware,
		RateLimit:      rest.NewRateLimiter(100),
		Logger:         logger,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("http server failed", "error", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
	if err := metrics.Provider.Shutdown(shutdownCtx); err != nil {
		logger.Warn("metrics shutdown failed", "error", err)
	}
	logger.Info("kasi-lending stopped")
}
