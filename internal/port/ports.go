// Package port defines the interfaces (ports) for external dependencies.
// Following hexagonal architecture, these ports decouple the domain/service
// layer from concrete implementations.
package port

import (
	"context"

	"github.com/boddenberg/momentum-bfa-go/internal/domain"
)

// RecommendationStore serves the read-only portfolio data
// (opportunity scores and recommendations).
type RecommendationStore interface {
	GetOpportunityScore(ctx context.Context, portfolio domain.PortfolioType) (*domain.OpportunityScore, error)
	ListRecommendations(ctx context.Context, portfolio domain.PortfolioType) ([]domain.Recommendation, error)
	GetRecommendation(ctx context.Context, id string) (*domain.Recommendation, error)
}

// Cache provides generic caching with TTL.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, value T)
	Delete(key string)
}
