// Command server starts the messaging HTTP server.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/messagely/server/internal/config"
	"github.com/messagely/server/internal/repository/postgres"
	httpserver "github.com/messagely/server/internal/server/http"
	"github.com/messagely/server/internal/service"
	"github.com/messagely/server/internal/token"
	"github.com/messagely/server/migrations"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

// main parses configuration, runs migrations, and starts the HTTP server.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()
	logger.Info("starting",
		zap.String("version", version),
		zap.String("buildDate", buildDate),
		zap.String("addr", cfg.Addr),
	)

	if cfg.JWTSecret == "" {
		logger.Fatal("missing signing secret (JWT_SECRET)")
	}
	if cfg.DatabaseDSN == "" {
		logger.Fatal("missing database DSN (DATABASE_DSN)")
	}

	// Context with OS signals
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := migrations.Up(ctx, cfg.DatabaseDSN); err != nil {
		logger.Fatal("migrate up", zap.Error(err))
	}

	// DB pool
	db, err := postgres.New(ctx, cfg.DatabaseDSN)
	if err != nil {
		logger.Fatal("postgres.New", zap.Error(err))
	}
	defer db.Close()

	// Repositories
	userRepo := postgres.NewUserRepo(db)
	messageRepo := postgres.NewMessageRepo(db)

	// Services
	tokens := token.New([]byte(cfg.JWTSecret), cfg.AccessTTL)
	authSvc := service.NewAuthService(userRepo, tokens, cfg.BcryptCost)
	userSvc := service.NewUserService(userRepo, messageRepo)
	messageSvc := service.NewMessageService(messageRepo)

	app := httpserver.New(authSvc, userSvc, messageSvc, tokens, logger)

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: app.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.Addr))
		errCh <- srv.ListenAndServe()
	}()

	// Wait for stop
	select {
	case <-ctx.Done():
		// graceful shutdown
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			_ = srv.Close()
		}
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}

	logger.Info("shutdown complete")
}
