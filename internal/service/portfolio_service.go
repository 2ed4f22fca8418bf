package service

import (
	"context"
	"fmt"
	"time"

	"github.com/boddenberg/momentum-bfa-go/internal/domain"
	"github.com/boddenberg/momentum-bfa-go/internal/infra/observability"
	"github.com/boddenberg/momentum-bfa-go/internal/port"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var tracer = otel.Tracer("service/portfolio")

var errInvalidPortfolio = &domain.ErrValidation{Message: `Invalid portfolio type. Must be "Credit" or "Debit"`}

// PortfolioService serves portfolio headline data, recommendations, the
// transaction type catalog and the single-type calculation.
type PortfolioService struct {
	store      port.RecommendationStore
	catalog    *Catalog
	calculator *Calculator
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// NewPortfolioService creates the portfolio service with all dependencies injected.
func NewPortfolioService(
	store port.RecommendationStore,
	catalog *Catalog,
	calculator *Calculator,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *PortfolioService {
	return &PortfolioService{
		store:      store,
		catalog:    catalog,
		calculator: calculator,
		metrics:    metrics,
		logger:     logger,
	}
}

// TransactionTypes returns the catalog entries in render order.
func (s *PortfolioService) TransactionTypes() []domain.TypeDefinition {
	return s.catalog.Definitions()
}

// GetOpportunityScore returns the headline opportunity size of a portfolio.
func (s *PortfolioService) GetOpportunityScore(ctx context.Context, portfolio domain.PortfolioType) (*domain.OpportunityScore, error) {
	ctx, span := tracer.Start(ctx, "PortfolioService.GetOpportunityScore")
	defer span.End()

	if !portfolio.Valid() {
		return nil, errInvalidPortfolio
	}
	return s.store.GetOpportunityScore(ctx, portfolio)
}

// ListRecommendations returns the recommendations of a portfolio.
func (s *PortfolioService) ListRecommendations(ctx context.Context, portfolio domain.PortfolioType) ([]domain.Recommendation, error) {
	ctx, span := tracer.Start(ctx, "PortfolioService.ListRecommendations")
	defer span.End()

	if !portfolio.Valid() {
		return nil, errInvalidPortfolio
	}
	return s.store.ListRecommendations(ctx, portfolio)
}

// GetOverview fetches the score and the recommendations of a portfolio concurrently.
func (s *PortfolioService) GetOverview(ctx context.Context, portfolio domain.PortfolioType) (*domain.PortfolioOverview, error) {
	ctx, span := tracer.Start(ctx, "PortfolioService.GetOverview")
	defer span.End()
	span.SetAttributes(attribute.String("portfolio.type", string(portfolio)))

	if !portfolio.Valid() {
		return nil, errInvalidPortfolio
	}

	start := time.Now()
	defer func() {
		s.metrics.RecordRequestDuration("overview", time.Since(start))
	}()

	var (
		score *domain.OpportunityScore
		recs  []domain.Recommendation
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		sc, err := s.store.GetOpportunityScore(gCtx, portfolio)
		if err != nil {
			return fmt.Errorf("opportunity score: %w", err)
		}
		score = sc
		return nil
	})

	g.Go(func() error {
		r, err := s.store.ListRecommendations(gCtx, portfolio)
		if err != nil {
			return fmt.Errorf("recommendations: %w", err)
		}
		recs = r
		return nil
	})

	if err := g.Wait(); err != nil {
		s.logger.Error("failed to build portfolio overview",
			zap.String("portfolio_type", string(portfolio)),
			zap.Error(err),
		)
		return nil, err
	}

	return &domain.PortfolioOverview{
		PortfolioType:    portfolio,
		OpportunityScore: score,
		Recommendations:  recs,
	}, nil
}

// CalculateValue prices one transaction type for a recommendation over twelve
// months. It agrees with the dashboard calculator for single-type Credit selections.
func (s *PortfolioService) CalculateValue(ctx context.Context, req *domain.CalculateRequest) (*domain.CalculationResult, error) {
	ctx, span := tracer.Start(ctx, "PortfolioService.CalculateValue")
	defer span.End()

	if req.RecommendationID == "" || req.TransactionType == "" || req.PortfolioType == "" {
		return nil, &domain.ErrValidation{Message: "Missing required parameters: recommendationId, transactionType, portfolioType"}
	}
	if !req.PortfolioType.Valid() {
		return nil, errInvalidPortfolio
	}
	span.SetAttributes(
		attribute.String("recommendation.id", req.RecommendationID),
		attribute.String("transaction.type", req.TransactionType),
		attribute.String("portfolio.type", string(req.PortfolioType)),
	)

	if _, err := s.store.GetRecommendation(ctx, req.RecommendationID); err != nil {
		return nil, err
	}

	t := domain.TransactionType(req.TransactionType)
	if _, ok := s.catalog.Lookup(t); !ok {
		s.metrics.IncrCalculation("single", "error")
		return nil, &domain.ErrValidation{Field: "transactionType", Message: fmt.Sprintf("unknown transaction type %q", req.TransactionType)}
	}

	result, err := s.calculator.CalculateSingle(t, req.PortfolioType)
	if err != nil {
		s.metrics.IncrCalculation("single", "error")
		s.logger.Error("single-type calculation failed",
			zap.String("transaction_type", req.TransactionType),
			zap.String("portfolio_type", string(req.PortfolioType)),
			zap.Error(err),
		)
		return nil, err
	}

	s.metrics.IncrCalculation("single", "ok")
	s.logger.Debug("single-type calculation",
		zap.String("recommendation_id", req.RecommendationID),
		zap.String("transaction_type", req.TransactionType),
		zap.String("portfolio_type", string(req.PortfolioType)),
		zap.Int64("value", result.Value),
	)
	return result, nil
}
