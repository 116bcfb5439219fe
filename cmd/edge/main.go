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
	"github.com/yaleims/api/internal/auth"
	"github.com/yaleims/api/internal/authz"
	"github.com/yaleims/api/internal/cas"
	"github.com/yaleims/api/internal/observability"
	"github.com/yaleims/api/internal/platform/store"
	"github.com/yaleims/api/internal/proxy"
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

	endpoints := cas.Endpoints{
		ProdHost:       cfg.CASHost,
		TestHost:       cfg.CASTestHost,
		FrontendBase:   cfg.FrontendBaseURL,
		LocalDevOrigin: app.LocalDevOrigin,
	}
	casBase, err := endpoints.BaseURL()
	if err != nil {
		logger.Error("cas base url", slog.Any("error", err))
		os.Exit(1)
	}
	ssoClient := cas.NewClient(casBase, cfg.CASTimeout)

	userRepo := users.NewRepository(storeClient)
	userService := users.NewService(userRepo, cfg.InstitutionDomain, logger)

	issuer := token.NewIssuer(cfg.TokenSecret, cfg.TokenTTL)
	verifier := token.NewVerifier(cfg.TokenSecret)

	metrics := observability.NewMetrics()
	authHandler := auth.NewHandler(logger, userService, ssoClient, issuer, verifier, endpoints, cfg.TokenTTL, metrics)

	proxyClient, err := proxy.NewClient(cfg.FunctionsBaseURL, cfg.AppRequestTimeout, logger)
	if err != nil {
		logger.Error("build proxy client", slog.Any("error", err))
		os.Exit(1)
	}
	proxyHandler := proxy.NewHandler(logger, proxyClient, authz.Middleware{Logger: logger})

	router := app.NewEdgeRouter(app.EdgeRouterParams{
		Logger:       logger,
		Config:       cfg,
		Tokens:       verifier,
		AuthHandler:  authHandler,
		ProxyHandler: proxyHandler,
		Metrics:      metrics,
	})

	server := &http.Server{
		Addr:         cfg.EdgeAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting edge server", slog.String("addr", cfg.EdgeAddr))
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
