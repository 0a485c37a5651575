package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	cacheadapter "github.com/bbrahmbhatt94/html-web-genesis/internal/adapters/cache"
	emailadapter "github.com/bbrahmbhatt94/html-web-genesis/internal/adapters/email"
	eventadapter "github.com/bbrahmbhatt94/html-web-genesis/internal/adapters/events"
	httpadapter "github.com/bbrahmbhatt94/html-web-genesis/internal/adapters/http"
	"github.com/bbrahmbhatt94/html-web-genesis/internal/adapters/postgres"
	"github.com/bbrahmbhatt94/html-web-genesis/internal/adapters/security"
	stripeadapter "github.com/bbrahmbhatt94/html-web-genesis/internal/adapters/stripe"
	"github.com/bbrahmbhatt94/html-web-genesis/internal/application"
	"github.com/bbrahmbhatt94/html-web-genesis/internal/domain"
)

type Runtime struct {
	cfg        Config
	logger     *slog.Logger
	service    *application.Service
	httpServer *http.Server
	outbox     *eventadapter.OutboxWorker
	cleanupFn  func(context.Context)
}

func NewRuntime(ctx context.Context, configPath string) (*Runtime, error) {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	logger.Info("bootstrapping storefront backend", "service", cfg.ServiceID, "http_port", cfg.HTTPPort)

	db, err := postgres.Connect(ctx, cfg.DatabaseURL, cfg.MaxDBConns)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("gorm sql db: %w", err)
	}

	if err := postgres.RunMigrations(ctx, db); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	redisClient, err := cacheadapter.Connect(ctx, cfg.RedisURL)
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if err := redisClient.Ping(ctx).Err(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	repos := postgres.NewRepositories(db)

	gateway, err := stripeadapter.NewGateway(cfg.StripeSecretKey)
	if err != nil {
		_ = sqlDB.Close()
		_ = redisClient.Close()
		return nil, fmt.Errorf("init stripe gateway: %w", err)
	}
	sender, err := emailadapter.NewResendSender(cfg.ResendAPIKey, cfg.EmailFrom, cfg.EmailFromName)
	if err != nil {
		_ = sqlDB.Close()
		_ = redisClient.Close()
		return nil, fmt.Errorf("init email sender: %w", err)
	}
	urlSigner, err := security.NewJWTURLSigner(cfg.DownloadSigningKey, cfg.SiteBaseURL)
	if err != nil {
		_ = sqlDB.Close()
		_ = redisClient.Close()
		return nil, fmt.Errorf("init url signer: %w", err)
	}

	svc := application.NewService(application.Dependencies{
		Config: application.Config{
			SessionTTL:           cfg.SessionTTL,
			FailedLoginThreshold: cfg.FailedLoginThreshold,
			RateLimitWindow:      cfg.RateLimitWindow,
			LockoutDuration:      cfg.LockoutDuration,
			ProductName:          cfg.ProductName,
			ProductAsset:         cfg.ProductAsset,
			Currency:             cfg.Currency,
			SiteBaseURL:          cfg.SiteBaseURL,
			SignedURLTTL:         cfg.SignedURLTTL,
			DownloadTTL:          cfg.DownloadTTL,
			MaxDownloads:         cfg.MaxDownloads,
			ProcessedTTL:         cfg.ProcessedTTL,
			IdempotencyTTL:       cfg.IdempotencyTTL,
		},
		Admins:        repos.Admins,
		Sessions:      repos.Sessions,
		LoginAttempts: repos.LoginAttempts,
		Orders:        repos.Orders,
		Downloads:     repos.Downloads,
		Reviews:       repos.Reviews,
		Analytics:     repos.Analytics,
		Outbox:        repos.Outbox,
		Idempotency:   repos.Idempotency,
		Lockouts:      cacheadapter.NewRedisLockoutStore(redisClient),
		Processed:     cacheadapter.NewRedisProcessedSessionStore(redisClient),
		Hasher:        security.NewBcryptHasher(cfg.BcryptCost),
		Tokens:        security.NewHexTokenSource(domain.DownloadTokenHexSize),
		URLSigner:     urlSigner,
		Payments:      gateway,
		Email:         sender,
	})

	handler := httpadapter.NewHandler(svc, sqlDB.Ping, func() error {
		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return redisClient.Ping(pingCtx).Err()
	})
	router := httpadapter.NewRouter(handler, cfg.AllowedOrigins)
	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	outbox := eventadapter.NewOutboxWorker(
		logger,
		repos.Outbox,
		eventadapter.PublishFunc(svc.PublishOutboxEvent),
		cfg.OutboxPollInterval,
		cfg.OutboxBatchSize,
		cfg.OutboxClaimTTL,
		cfg.OutboxMaxRetries,
	)

	return &Runtime{
		cfg:        cfg,
		logger:     logger,
		service:    svc,
		httpServer: httpServer,
		outbox:     outbox,
		cleanupFn: func(ctx context.Context) {
			_ = redisClient.Close()
			_ = sqlDB.Close()
		},
	}, nil
}

func (r *Runtime) RunAPI(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		r.logger.Info("http server started", "addr", r.httpServer.Addr)
		if err := r.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		r.logger.Info("shutdown signal received")
	case err := <-errCh:
		r.logger.Error("server failure", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = r.httpServer.Shutdown(shutdownCtx)
	r.cleanupFn(shutdownCtx)
	return nil
}

// RunWorker runs the outbox publisher alongside the periodic session sweep.
func (r *Runtime) RunWorker(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go r.runSessionSweep(ctx)

	r.logger.Info("outbox worker started")
	err := r.outbox.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	r.cleanupFn(shutdownCtx)
	return nil
}

func (r *Runtime) runSessionSweep(ctx context.Context) {
	ticker := time.NewTicker(r.cfg.SessionSweepEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		removed, err := r.service.SweepExpiredSessions(ctx)
		if err != nil {
			r.logger.ErrorContext(ctx, "session sweep failed", "error", err)
			continue
		}
		if removed > 0 {
			r.logger.InfoContext(ctx, "expired sessions removed", "count", removed)
		}
	}
}
