package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yaleims/api/internal/app"
	"github.com/yaleims/api/internal/authz"
	"github.com/yaleims/api/internal/observability"
	"github.com/yaleims/api/internal/platform/store"
	"github.com/yaleims/api/internal/scoring"
	"github.com/yaleims/api/internal/token"
	"github.com/yaleims/api/internal/users"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	storeClient, err := store.New(ctx, cfg.FirestoreProjectID, cfg.FirestoreCredsFile)
	if err != nil {
		logger.Error("connect firestore", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := storeClient.Close(); err != nil {
			logger.Warn("firestore close", slog.Any("error", err))
		}
	}()

	userRepo := users.NewRepository(storeClient)
	userService := users.NewService(userRepo, cfg.InstitutionDomain, logger)
	usersHandler := users.NewHandler(logger, userService)

	scoringRepo := scoring.NewRepository(storeClient)
	scoringHandler := scoring.NewHandler(logger, scoringRepo)

	verifier := token.NewVerifier(cfg.TokenSecret)
	metrics := observability.NewMetrics()

	router := app.NewFunctionsRouter(app.FunctionsRouterParams{
		Logger:         logger,
		Config:         cfg,
		Tokens:         verifier,
		Authz:          authz.Middleware{Logger: logger},
		UsersHandler:   usersHandler,
		ScoringHandler: scoringHandler,
		Metrics:        metrics,
	})

	server := &http.Server{
		Addr:         cfg.FunctionsAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting functions server", slog.String("addr", cfg.FunctionsAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
