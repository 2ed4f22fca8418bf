package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/boddenberg/momentum-bfa-go/internal/domain"
	"github.com/boddenberg/momentum-bfa-go/internal/handler"
	"github.com/boddenberg/momentum-bfa-go/internal/infra/cache"
	"github.com/boddenberg/momentum-bfa-go/internal/infra/client"
	"github.com/boddenberg/momentum-bfa-go/internal/infra/observability"
	"github.com/boddenberg/momentum-bfa-go/internal/infra/resilience"
	"github.com/boddenberg/momentum-bfa-go/internal/infra/staticstore"
	"github.com/boddenberg/momentum-bfa-go/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testCfg = resilience.Config{
	MaxRetries:     2,
	InitialBackoff: time.Millisecond,
	MaxConcurrency: 4,
}

func newAPIServer(t *testing.T) *httptest.Server {
	t.Helper()

	catalog := service.DefaultCatalog()
	calc, err := service.NewCalculator(catalog, service.DefaultCoefficients())
	require.NoError(t, err)

	store := staticstore.New()
	metrics := observability.NewMetrics()
	sessions := cache.New[*service.Session](time.Minute, cache.WithSlidingExpiration())
	t.Cleanup(sessions.Close)

	router := handler.NewRouter(
		service.NewPortfolioService(store, catalog, calc, metrics, zap.NewNop()),
		service.NewSessionService(catalog, calc, store, sessions, metrics, zap.NewNop()),
		metrics,
		zap.NewNop(),
		handler.Options{},
	)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func newClient(t *testing.T, baseURL string) *client.MomentumClient {
	t.Helper()
	cb := resilience.NewCircuitBreaker(t.Name(), zap.NewNop())
	return client.NewMomentumClient(&http.Client{Timeout: 5 * time.Second}, baseURL, cb, testCfg)
}

func TestMomentumClient_SessionRoundTrip(t *testing.T) {
	srv := newAPIServer(t)
	c := newClient(t, srv.URL)
	ctx := context.Background()

	st, err := c.CreateSession(ctx, domain.PortfolioDebit)
	require.NoError(t, err)
	assert.Equal(t, domain.PortfolioDebit, st.PortfolioType)

	resp, err := c.Toggle(ctx, st.SessionID, "Card Not Present")
	require.NoError(t, err)
	assert.True(t, resp.Applied)
	assert.Equal(t, domain.Selection{domain.TypeCardNotPresent, domain.TypeEcommerce, domain.TypeRecurring}, resp.State.SelectedTypes)

	_, err = c.SetDuration(ctx, st.SessionID, 9)
	require.NoError(t, err)

	st, err = c.Calculate(ctx, st.SessionID)
	require.NoError(t, err)
	require.NotNil(t, st.CalculatedValue)
	// (380000+310000+270000)/1000*20*0.75
	assert.Equal(t, int64(14400), st.CalculatedValue.Value)
	assert.Equal(t, 5.6, st.CalculatedValue.PercentChange)

	got, err := c.GetSession(ctx, st.SessionID)
	require.NoError(t, err)
	assert.Equal(t, st.CalculatedValue, got.CalculatedValue)

	require.NoError(t, c.DeleteSession(ctx, st.SessionID))

	_, err = c.GetSession(ctx, st.SessionID)
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestMomentumClient_CalculateValueAndRecommendations(t *testing.T) {
	srv := newAPIServer(t)
	c := newClient(t, srv.URL)
	ctx := context.Background()

	recs, err := c.ListRecommendations(ctx, domain.PortfolioCredit)
	require.NoError(t, err)
	require.Len(t, recs, 4)

	res, err := c.CalculateValue(ctx, domain.CalculateRequest{
		RecommendationID: recs[0].ID,
		TransactionType:  "ATM",
		PortfolioType:    domain.PortfolioCredit,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5800), res.Value)
	assert.Equal(t, "$5,800", res.FormattedValue)
}

func TestMomentumClient_ClientErrorsAreNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"Missing required parameters: recommendationId, transactionType, portfolioType"}`))
	}))
	defer srv.Close()

	_, err := newClient(t, srv.URL).CalculateValue(context.Background(), domain.CalculateRequest{})

	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Missing required parameters: recommendationId, transactionType, portfolioType", apiErr.Message)
	assert.Equal(t, int32(1), calls.Load())
}

func TestMomentumClient_ServerErrorsAreRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "unavailable", http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"recommendations":[]}`))
	}))
	defer srv.Close()

	recs, err := newClient(t, srv.URL).ListRecommendations(context.Background(), domain.PortfolioDebit)

	require.NoError(t, err)
	assert.Empty(t, recs)
	assert.Equal(t, int32(3), calls.Load())
}

func TestMomentumClient_ExhaustedRetriesWrapExternalError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newClient(t, srv.URL).GetSession(context.Background(), "f47ac10b-58cc-4372-a567-0e02b2c3d479")

	var ext *domain.ErrExternalService
	require.ErrorAs(t, err, &ext)
	assert.Equal(t, "momentum-api", ext.Service)
}

func TestMomentumClient_OpenCircuit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	cfg := testCfg
	cfg.MaxRetries = 0
	cb := resilience.NewCircuitBreaker(t.Name(), zap.NewNop())
	c := client.NewMomentumClient(srv.Client(), srv.URL, cb, cfg)

	for i := 0; i < 5; i++ {
		_, _ = c.GetSession(context.Background(), "x")
	}

	_, err := c.GetSession(context.Background(), "x")
	var open *domain.ErrCircuitOpen
	assert.ErrorAs(t, err, &open)
}
