package handler

import (
	"net/http"
	"time"

	"github.com/boddenberg/momentum-bfa-go/internal/domain"
	"github.com/boddenberg/momentum-bfa-go/internal/infra/observability"
	"github.com/boddenberg/momentum-bfa-go/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("handler")

// Options carries the router settings that come from configuration.
type Options struct {
	CORSAllowedOrigins []string
	// DefaultPortfolio is used when POST /api/sessions names none.
	DefaultPortfolio domain.PortfolioType
}

// NewRouter creates the HTTP router with all routes and middleware.
// Routes follow the API contract of the Momentum dashboard front-end.
func NewRouter(portfolioSvc *service.PortfolioService, sessionSvc *service.SessionService, metrics *observability.Metrics, logger *zap.Logger, opts Options) http.Handler {
	if opts.DefaultPortfolio == "" {
		opts.DefaultPortfolio = domain.PortfolioCredit
	}

	r := chi.NewRouter()

	// --- Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.ZapLoggerMiddleware(logger))
	r.Use(observability.TracingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.CORSAllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(middleware.Heartbeat("/ping"))

	// --- Operational endpoints ---
	r.Get("/healthz", healthzHandler(portfolioSvc, logger))
	r.Get("/readyz", readyzHandler())
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	// --- API ---
	r.Route("/api", func(r chi.Router) {

		// =============================================
		// 1. Portfolio & recommendations
		// =============================================
		r.Get("/portfolio/{type}", getOpportunityScoreHandler(portfolioSvc, logger))
		r.Get("/portfolio/{type}/overview", getOverviewHandler(portfolioSvc, logger))
		r.Get("/recommendations/{portfolioType}", listRecommendationsHandler(portfolioSvc, logger))

		// =============================================
		// 2. Calculator
		// =============================================
		r.Post("/calculate", calculateHandler(portfolioSvc, logger))
		r.Get("/transaction-types", transactionTypesHandler(portfolioSvc))
		r.Get("/metrics/calculator", calculatorMetricsHandler(metrics))

		// =============================================
		// 3. Dashboard sessions
		// =============================================
		r.Post("/sessions", createSessionHandler(sessionSvc, opts.DefaultPortfolio, logger))
		r.Route("/sessions/{sessionId}", func(r chi.Router) {
			r.Use(SessionIDMiddleware(logger))

			r.Get("/", getSessionHandler(sessionSvc, logger))
			r.Delete("/", deleteSessionHandler(sessionSvc, logger))
			r.Post("/toggle", toggleHandler(sessionSvc, logger))
			r.Put("/duration", setDurationHandler(sessionSvc, logger))
			r.Put("/portfolio", setPortfolioHandler(sessionSvc, logger))
			r.Put("/recommendation", selectRecommendationHandler(sessionSvc, logger))
			r.Post("/calculate", calculateSessionHandler(sessionSvc, logger))
		})
	})

	return r
}

// ============================================================
// Operational
// ============================================================

func healthzHandler(portfolioSvc *service.PortfolioService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		now := time.Now().Format(time.RFC3339)

		services := []domain.ServiceHealth{
			{Name: "momentum-api", Status: "healthy", LatencyMs: 0, LastChecked: now},
		}

		if portfolioSvc != nil {
			start := time.Now()
			_, err := portfolioSvc.GetOpportunityScore(ctx, domain.PortfolioCredit)
			latency := time.Since(start).Milliseconds()
			status := "healthy"
			if err != nil {
				logger.Warn("health check: recommendation store failed", zap.Error(err))
				status = "degraded"
			}
			services = append(services, domain.ServiceHealth{
				Name: "recommendation-store", Status: status, LatencyMs: latency, LastChecked: now,
			})
		}

		overallStatus := "healthy"
		for _, s := range services {
			if s.Status == "unhealthy" {
				overallStatus = "unhealthy"
				break
			}
			if s.Status == "degraded" {
				overallStatus = "degraded"
			}
		}

		writeJSON(w, http.StatusOK, domain.HealthStatus{
			Status:   overallStatus,
			Services: services,
		})
	}
}

func readyzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func calculatorMetricsHandler(metrics *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, metrics.GetCalculatorSnapshot())
	}
}
