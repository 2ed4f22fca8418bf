package handler

import (
	"net/http"

	"github.com/boddenberg/momentum-bfa-go/internal/domain"
	"github.com/boddenberg/momentum-bfa-go/internal/service"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ============================================================
// 3. Dashboard sessions
// ============================================================

func createSessionHandler(svc *service.SessionService, defaultPortfolio domain.PortfolioType, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /api/sessions")
		defer span.End()

		var req domain.CreateSessionRequest
		if err := decodeJSON(w, r, &req, true); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		if req.PortfolioType == "" {
			req.PortfolioType = defaultPortfolio
		}

		state, err := svc.Create(ctx, req.PortfolioType)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		w.Header().Set("Location", "/api/sessions/"+state.SessionID)
		writeJSON(w, http.StatusCreated, state)
	}
}

func getSessionHandler(svc *service.SessionService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /api/sessions/{sessionId}")
		defer span.End()

		state, err := svc.Get(ctx, SessionIDFromContext(ctx))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, state)
	}
}

func deleteSessionHandler(svc *service.SessionService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /api/sessions/{sessionId}")
		defer span.End()

		if err := svc.Delete(ctx, SessionIDFromContext(ctx)); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func toggleHandler(svc *service.SessionService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /api/sessions/{sessionId}/toggle")
		defer span.End()

		var req domain.ToggleRequest
		if err := decodeJSON(w, r, &req, false); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		span.SetAttributes(attribute.String("transaction.type", req.TransactionType))

		resp, err := svc.Toggle(ctx, SessionIDFromContext(ctx), req.TransactionType)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func setDurationHandler(svc *service.SessionService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PUT /api/sessions/{sessionId}/duration")
		defer span.End()

		var req domain.DurationRequest
		if err := decodeJSON(w, r, &req, false); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		if req.Months == nil {
			writeError(w, http.StatusBadRequest, "validation error on 'months': is required")
			return
		}

		state, err := svc.SetDuration(ctx, SessionIDFromContext(ctx), *req.Months)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, state)
	}
}

func setPortfolioHandler(svc *service.SessionService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PUT /api/sessions/{sessionId}/portfolio")
		defer span.End()

		var req domain.PortfolioRequest
		if err := decodeJSON(w, r, &req, false); err != nil {
			handleServiceError(w, err, logger)
			return
		}

		state, err := svc.SetPortfolio(ctx, SessionIDFromContext(ctx), req.PortfolioType)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, state)
	}
}

func selectRecommendationHandler(svc *service.SessionService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PUT /api/sessions/{sessionId}/recommendation")
		defer span.End()

		var req domain.RecommendationRequest
		if err := decodeJSON(w, r, &req, false); err != nil {
			handleServiceError(w, err, logger)
			return
		}

		state, err := svc.SelectRecommendation(ctx, SessionIDFromContext(ctx), req.RecommendationID)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, state)
	}
}

func calculateSessionHandler(svc *service.SessionService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /api/sessions/{sessionId}/calculate")
		defer span.End()

		state, err := svc.Calculate(ctx, SessionIDFromContext(ctx))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, state)
	}
}
