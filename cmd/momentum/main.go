package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/boddenberg/momentum-bfa-go/internal/config"
	"github.com/boddenberg/momentum-bfa-go/internal/domain"
	"github.com/boddenberg/momentum-bfa-go/internal/handler"
	"github.com/boddenberg/momentum-bfa-go/internal/infra/cache"
	"github.com/boddenberg/momentum-bfa-go/internal/infra/observability"
	"github.com/boddenberg/momentum-bfa-go/internal/infra/staticstore"
	"github.com/boddenberg/momentum-bfa-go/internal/service"

	"go.uber.org/zap"
)

func main() {
	// --- Load .env file (for local development) ---
	if err := config.LoadDotEnv(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "failed to read .env: %v\n", err)
		os.Exit(1)
	}

	// --- Config ---
	cfg := config.Load()

	// --- Logger ---
	logger := observability.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	logger.Info("configuration loaded",
		zap.Int("port", cfg.Port),
		zap.String("log_level", cfg.LogLevel),
		zap.Duration("session_ttl", cfg.SessionTTL),
		zap.String("default_portfolio", string(cfg.DefaultPortfolio)),
		zap.Strings("cors_allowed_origins", cfg.CORSAllowedOrigins),
		zap.Bool("tracing", cfg.OTLPEndpoint != ""),
	)

	// --- Tracing ---
	shutdown, err := observability.InitTracer(cfg.OTLPEndpoint, "momentum-bfa")
	if err != nil {
		logger.Fatal("failed to init tracer", zap.Error(err))
	}
	defer shutdown(context.Background())

	// --- Metrics ---
	metrics := observability.NewMetrics()

	// --- Calculator ---
	catalog, err := service.NewCatalog(domain.DefaultTypeDefinitions())
	if err != nil {
		logger.Fatal("invalid transaction type catalog", zap.Error(err))
	}
	calculator, err := service.NewCalculator(catalog, service.DefaultCoefficients())
	if err != nil {
		logger.Fatal("invalid calculator coefficients", zap.Error(err))
	}

	// --- Stores ---
	store := staticstore.New()
	sessions := cache.New[*service.Session](cfg.SessionTTL, cache.WithSlidingExpiration())
	defer sessions.Close()

	// --- Services ---
	portfolioSvc := service.NewPortfolioService(store, catalog, calculator, metrics, logger)
	sessionSvc := service.NewSessionService(catalog, calculator, store, sessions, metrics, logger)

	// --- Router ---
	router := handler.NewRouter(portfolioSvc, sessionSvc, metrics, logger, handler.Options{
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		DefaultPortfolio:   cfg.DefaultPortfolio,
	})

	// --- Server ---
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// --- Graceful shutdown ---
	go func() {
		logger.Info("server starting", zap.Int("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
