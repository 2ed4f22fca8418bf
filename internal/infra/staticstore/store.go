// Package staticstore serves the read-only portfolio data the dashboard is
// built around: opportunity scores and the recommendation playbook.
// It implements port.RecommendationStore.
package staticstore

import (
	"context"

	"github.com/boddenberg/momentum-bfa-go/internal/domain"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("staticstore")

// Store is an immutable in-memory RecommendationStore.
type Store struct {
	scores          map[domain.PortfolioType]domain.OpportunityScore
	recommendations []domain.Recommendation
}

// New returns a store over the built-in data set.
func New() *Store {
	return NewWith(defaultScores(), defaultRecommendations())
}

// NewWith returns a store over the given data (used by tests).
func NewWith(scores map[domain.PortfolioType]domain.OpportunityScore, recs []domain.Recommendation) *Store {
	return &Store{scores: scores, recommendations: recs}
}

// GetOpportunityScore returns the headline score of a portfolio.
func (s *Store) GetOpportunityScore(ctx context.Context, portfolio domain.PortfolioType) (*domain.OpportunityScore, error) {
	_, span := tracer.Start(ctx, "Store.GetOpportunityScore")
	defer span.End()
	span.SetAttributes(attribute.String("portfolio.type", string(portfolio)))

	score, ok := s.scores[portfolio]
	if !ok {
		return nil, &domain.ErrNotFound{Resource: "opportunity score", ID: string(portfolio)}
	}
	return &score, nil
}

// ListRecommendations returns the recommendations of a portfolio in playbook order.
func (s *Store) ListRecommendations(ctx context.Context, portfolio domain.PortfolioType) ([]domain.Recommendation, error) {
	_, span := tracer.Start(ctx, "Store.ListRecommendations")
	defer span.End()
	span.SetAttributes(attribute.String("portfolio.type", string(portfolio)))

	out := make([]domain.Recommendation, 0, len(s.recommendations))
	for _, r := range s.recommendations {
		if r.PortfolioType == portfolio {
			out = append(out, cloneRecommendation(r))
		}
	}
	return out, nil
}

// GetRecommendation looks a recommendation up by id.
func (s *Store) GetRecommendation(ctx context.Context, id string) (*domain.Recommendation, error) {
	_, span := tracer.Start(ctx, "Store.GetRecommendation")
	defer span.End()
	span.SetAttributes(attribute.String("recommendation.id", id))

	for _, r := range s.recommendations {
		if r.ID == id {
			rec := cloneRecommendation(r)
			return &rec, nil
		}
	}
	return nil, &domain.ErrNotFound{Resource: "recommendation", ID: id}
}

func cloneRecommendation(r domain.Recommendation) domain.Recommendation {
	r.Actions = append([]string(nil), r.Actions...)
	return r
}
