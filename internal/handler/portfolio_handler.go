package handler

import (
	"net/http"

	"github.com/boddenberg/momentum-bfa-go/internal/domain"
	"github.com/boddenberg/momentum-bfa-go/internal/service"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ============================================================
// 1. Portfolio & recommendations
// ============================================================

func getOpportunityScoreHandler(svc *service.PortfolioService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /api/portfolio/{type}")
		defer span.End()

		portfolio := domain.PortfolioType(chi.URLParam(r, "type"))
		span.SetAttributes(attribute.String("portfolio.type", string(portfolio)))

		score, err := svc.GetOpportunityScore(ctx, portfolio)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"opportunityScore": score})
	}
}

func getOverviewHandler(svc *service.PortfolioService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /api/portfolio/{type}/overview")
		defer span.End()

		overview, err := svc.GetOverview(ctx, domain.PortfolioType(chi.URLParam(r, "type")))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, overview)
	}
}

func listRecommendationsHandler(svc *service.PortfolioService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /api/recommendations/{portfolioType}")
		defer span.End()

		recs, err := svc.ListRecommendations(ctx, domain.PortfolioType(chi.URLParam(r, "portfolioType")))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"recommendations": recs})
	}
}

// ============================================================
// 2. Calculator
// ============================================================

func calculateHandler(svc *service.PortfolioService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /api/calculate")
		defer span.End()

		var req domain.CalculateRequest
		if err := decodeJSON(w, r, &req, false); err != nil {
			handleServiceError(w, err, logger)
			return
		}

		result, err := svc.CalculateValue(ctx, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, domain.CalculateResponse{CalculatedValue: result})
	}
}

func transactionTypesHandler(svc *service.PortfolioService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"transactionTypes": svc.TransactionTypes()})
	}
}
