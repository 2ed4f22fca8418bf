package staticstore_test

import (
	"context"
	"testing"

	"github.com/boddenberg/momentum-bfa-go/internal/domain"
	"github.com/boddenberg/momentum-bfa-go/internal/infra/staticstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_OpportunityScores(t *testing.T) {
	s := staticstore.New()
	ctx := context.Background()

	credit, err := s.GetOpportunityScore(ctx, domain.PortfolioCredit)
	require.NoError(t, err)
	assert.Equal(t, int64(1000000), credit.Value)
	assert.Equal(t, "$1M", credit.FormattedValue)

	debit, err := s.GetOpportunityScore(ctx, domain.PortfolioDebit)
	require.NoError(t, err)
	assert.Equal(t, int64(750000), debit.Value)
	assert.Equal(t, "75K", debit.PerSegment)

	_, err = s.GetOpportunityScore(ctx, "Prepaid")
	var notFound *domain.ErrNotFound
	assert.ErrorAs(t, err, &notFound)
}

func TestStore_ListRecommendationsFiltersByPortfolio(t *testing.T) {
	s := staticstore.New()

	credit, err := s.ListRecommendations(context.Background(), domain.PortfolioCredit)
	require.NoError(t, err)
	require.Len(t, credit, 4)
	for _, r := range credit {
		assert.Equal(t, domain.PortfolioCredit, r.PortfolioType)
	}
	assert.Equal(t, "rec-1", credit[0].ID)

	debit, err := s.ListRecommendations(context.Background(), domain.PortfolioDebit)
	require.NoError(t, err)
	require.Len(t, debit, 4)
	assert.Equal(t, "rec-5", debit[0].ID)
}

func TestStore_ReturnsCopies(t *testing.T) {
	s := staticstore.New()

	rec, err := s.GetRecommendation(context.Background(), "rec-3")
	require.NoError(t, err)
	rec.Actions[0] = "changed"

	again, err := s.GetRecommendation(context.Background(), "rec-3")
	require.NoError(t, err)
	assert.NotEqual(t, "changed", again.Actions[0])
}

func TestStore_GetRecommendationUnknown(t *testing.T) {
	_, err := staticstore.New().GetRecommendation(context.Background(), "rec-99")

	var notFound *domain.ErrNotFound
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "rec-99", notFound.ID)
}
