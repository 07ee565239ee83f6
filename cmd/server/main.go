package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	approvalapp "github.com/chatforge/backend/internal/application/approval"
	intakeapp "github.com/chatforge/backend/internal/application/intake"
	settingsapp "github.com/chatforge/backend/internal/application/settings"
	"github.com/chatforge/backend/internal/infrastructure/auth"
	"github.com/chatforge/backend/internal/infrastructure/cache"
	"github.com/chatforge/backend/internal/infrastructure/config"
	"github.com/chatforge/backend/internal/infrastructure/logger"
	"github.com/chatforge/backend/internal/infrastructure/persistence"
	"github.com/chatforge/backend/internal/infrastructure/storage"
	"github.com/chatforge/backend/internal/infrastructure/telemetry"
	"github.com/chatforge/backend/internal/interfaces/http/handler"
	"github.com/chatforge/backend/internal/interfaces/http/middleware"
	"github.com/chatforge/backend/internal/interfaces/http/router"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "server exited with error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.NewForEnvironment(cfg.App.Env)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tracerProvider, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		return fmt.Errorf("init telemetry: %w", err)
	}
	defer func() {
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			log.Warn("Tracer provider shutdown failed", zap.Error(err))
		}
	}()

	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, logger.MapGormLogLevel(cfg.Log.Level))
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Warn("Database close failed", zap.Error(err))
		}
	}()

	if err := db.AutoMigrate(); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	companyRepo := persistence.NewGormCompanyRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	contactRepo := persistence.NewGormContactMessageRepository(db.DB)
	buildRequestRepo := persistence.NewGormBuildRequestRepository(db.DB)
	templateRepo := persistence.NewGormTemplateRepository(db.DB)
	settingsRepo := persistence.NewGormSettingsRepository(db.DB)
	auditRepo := persistence.NewGormAuditRepository(db.DB)

	archive, err := storage.NewArchiveStore(&cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("init archive store: %w", err)
	}

	settingsCache := cache.NewSettingsCache(cfg.Redis, log)

	jwtService := auth.NewJWTService(cfg.JWT)
	tokenBlacklist := newTokenBlacklist(cfg.Redis, log)

	reconciliationService := approvalapp.NewReconciliationService(userRepo, companyRepo, auditRepo, log)
	workflowService := approvalapp.NewWorkflowService(companyRepo, userRepo, auditRepo, archive, log)
	diagnosticsService := approvalapp.NewDiagnosticsService(companyRepo, reconciliationService, archive, log)
	contactService := intakeapp.NewContactService(contactRepo, log)
	buildRequestService := intakeapp.NewBuildRequestService(buildRequestRepo, archive, log)
	templateService := intakeapp.NewTemplateService(templateRepo, log)
	settingsService := settingsapp.NewService(settingsRepo, log)

	engine := router.New(router.Dependencies{
		Config: cfg,
		Logger: log,
		JWTConfig: middleware.JWTMiddlewareConfig{
			JWTService:     jwtService,
			TokenBlacklist: tokenBlacklist,
			Logger:         log,
		},
		SettingsCache: settingsCache,
		Maintenance:   settingsService,

		System:         handler.NewSystemHandler(db, cfg.App.Name),
		Approval:       handler.NewApprovalHandler(workflowService),
		Reconciliation: handler.NewReconciliationHandler(reconciliationService),
		Diagnostics:    handler.NewDiagnosticsHandler(diagnosticsService, reconciliationService),
		Contact:        handler.NewContactHandler(contactService),
		BuildRequest:   handler.NewBuildRequestHandler(buildRequestService),
		Template:       handler.NewTemplateHandler(templateService),
		Settings:       handler.NewSettingsHandler(settingsService, settingsCache, log),
		Audit:          handler.NewAuditHandler(auditRepo),
	})

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	log.Info("Server stopped")
	return nil
}

// newTokenBlacklist prefers Redis so revocations survive restarts and
// replicate across instances, with an in-memory fallback for
// development.
func newTokenBlacklist(cfg config.RedisConfig, log *zap.Logger) auth.TokenBlacklist {
	blacklist, err := auth.NewRedisTokenBlacklist(cfg)
	if err != nil {
		log.Warn("Redis unavailable, using in-memory token blacklist", zap.Error(err))
		return auth.NewInMemoryTokenBlacklist()
	}
	return blacklist
}
