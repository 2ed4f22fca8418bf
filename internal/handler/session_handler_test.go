package handler_test

import (
	"net/http"
	"testing"

	"github.com/boddenberg/momentum-bfa-go/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createSession(t *testing.T, h http.Handler, body any) domain.DashboardState {
	t.Helper()
	rec := do(t, h, http.MethodPost, "/api/sessions", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	st := decode[domain.DashboardState](t, rec)
	assert.Equal(t, "/api/sessions/"+st.SessionID, rec.Header().Get("Location"))
	return st
}

func TestCreateSession_Defaults(t *testing.T) {
	router, _ := newTestRouter(t)

	st := createSession(t, router, nil)

	_, err := uuid.Parse(st.SessionID)
	require.NoError(t, err)
	assert.Equal(t, domain.PortfolioCredit, st.PortfolioType)
	assert.Equal(t, domain.DurationTwelve, st.Duration)
	assert.NotNil(t, st.SelectedTypes)
	assert.Empty(t, st.SelectedTypes)
	assert.Nil(t, st.CalculatedValue)
	assert.False(t, st.CanCalculate)
}

func TestCreateSession_WithPortfolio(t *testing.T) {
	router, _ := newTestRouter(t)

	st := createSession(t, router, domain.CreateSessionRequest{PortfolioType: domain.PortfolioDebit})

	assert.Equal(t, domain.PortfolioDebit, st.PortfolioType)

	rec := do(t, router, http.MethodPost, "/api/sessions", domain.CreateSessionRequest{PortfolioType: "Gold"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSession_FullFlow(t *testing.T) {
	router, _ := newTestRouter(t)
	st := createSession(t, router, nil)
	base := "/api/sessions/" + st.SessionID

	// Checking POS selects Card Present as its parent.
	rec := do(t, router, http.MethodPost, base+"/toggle", domain.ToggleRequest{TransactionType: "POS"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	toggled := decode[domain.ToggleResponse](t, rec)
	assert.True(t, toggled.Applied)
	assert.Equal(t, domain.Selection{domain.TypePOS, domain.TypeCardPresent}, toggled.State.SelectedTypes)

	// Unchecking Card Present removes the whole branch.
	rec = do(t, router, http.MethodPost, base+"/toggle", domain.ToggleRequest{TransactionType: "Card Present"})
	require.Equal(t, http.StatusOK, rec.Code)
	toggled = decode[domain.ToggleResponse](t, rec)
	assert.Empty(t, toggled.State.SelectedTypes)

	rec = do(t, router, http.MethodPost, base+"/toggle", domain.ToggleRequest{TransactionType: "POS"})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = do(t, router, http.MethodPost, base+"/toggle", domain.ToggleRequest{TransactionType: "Card Present"})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = do(t, router, http.MethodPost, base+"/toggle", domain.ToggleRequest{TransactionType: "POS"})
	require.Equal(t, http.StatusOK, rec.Code)
	toggled = decode[domain.ToggleResponse](t, rec)
	require.Equal(t, domain.Selection{domain.TypePOS, domain.TypeCardPresent}, toggled.State.SelectedTypes)

	rec = do(t, router, http.MethodPut, base+"/duration", map[string]int{"months": 6})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, router, http.MethodPost, base+"/calculate", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	st = decode[domain.DashboardState](t, rec)
	require.NotNil(t, st.CalculatedValue)
	assert.Equal(t, domain.TypePOS, st.CalculatedValue.TransactionType)
	assert.Equal(t, int64(7700), st.CalculatedValue.Value)
	assert.Equal(t, "$7,700", st.CalculatedValue.FormattedValue)
	assert.Equal(t, "6 Months", st.CalculatedValue.CalculationPeriod)
	assert.Equal(t, 3.8, st.CalculatedValue.PercentChange)

	rec = do(t, router, http.MethodGet, base, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[domain.DashboardState](t, rec)
	assert.Equal(t, st.CalculatedValue, got.CalculatedValue)
}

func TestSession_ToggleUnknownTokenIsReported(t *testing.T) {
	router, _ := newTestRouter(t)
	st := createSession(t, router, nil)

	rec := do(t, router, http.MethodPost, "/api/sessions/"+st.SessionID+"/toggle", domain.ToggleRequest{TransactionType: "Contactless"})

	require.Equal(t, http.StatusOK, rec.Code)
	toggled := decode[domain.ToggleResponse](t, rec)
	assert.False(t, toggled.Applied)
	assert.Empty(t, toggled.State.SelectedTypes)
}

func TestSession_CalculateGuardReturns422(t *testing.T) {
	router, _ := newTestRouter(t)
	st := createSession(t, router, nil)
	base := "/api/sessions/" + st.SessionID

	rec := do(t, router, http.MethodPost, base+"/calculate", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	do(t, router, http.MethodPost, base+"/toggle", domain.ToggleRequest{TransactionType: "ATM"})
	rec = do(t, router, http.MethodPut, base+"/duration", map[string]int{"months": 0})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decode[domain.DashboardState](t, rec).CanCalculate)

	rec = do(t, router, http.MethodPost, base+"/calculate", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestSession_DurationValidation(t *testing.T) {
	router, _ := newTestRouter(t)
	st := createSession(t, router, nil)
	base := "/api/sessions/" + st.SessionID

	rec := do(t, router, http.MethodPut, base+"/duration", map[string]int{"months": 5})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodPut, base+"/duration", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSession_PortfolioAndRecommendation(t *testing.T) {
	router, _ := newTestRouter(t)
	st := createSession(t, router, nil)
	base := "/api/sessions/" + st.SessionID

	rec := do(t, router, http.MethodPut, base+"/recommendation", domain.RecommendationRequest{RecommendationID: "rec-3"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	st = decode[domain.DashboardState](t, rec)
	require.NotNil(t, st.SelectedRecommendation)
	assert.Equal(t, "rec-3", st.SelectedRecommendation.ID)

	rec = do(t, router, http.MethodPut, base+"/recommendation", domain.RecommendationRequest{RecommendationID: "rec-8"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodPut, base+"/portfolio", domain.PortfolioRequest{PortfolioType: domain.PortfolioDebit})
	require.Equal(t, http.StatusOK, rec.Code)
	st = decode[domain.DashboardState](t, rec)
	assert.Equal(t, domain.PortfolioDebit, st.PortfolioType)
	assert.Nil(t, st.SelectedRecommendation)

	rec = do(t, router, http.MethodPut, base+"/portfolio", domain.PortfolioRequest{PortfolioType: "debit"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSession_DeleteAndNotFound(t *testing.T) {
	router, _ := newTestRouter(t)
	st := createSession(t, router, nil)
	base := "/api/sessions/" + st.SessionID

	rec := do(t, router, http.MethodDelete, base, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, router, http.MethodGet, base, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, router, http.MethodDelete, base, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSession_MalformedID(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := do(t, router, http.MethodGet, "/api/sessions/not-a-uuid", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSession_ToggleEmptyTokenIsIgnored(t *testing.T) {
	router, _ := newTestRouter(t)
	st := createSession(t, router, nil)
	base := "/api/sessions/" + st.SessionID

	rec := do(t, router, http.MethodPost, base+"/toggle", domain.ToggleRequest{TransactionType: "POS"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, router, http.MethodPost, base+"/toggle", map[string]string{})

	require.Equal(t, http.StatusOK, rec.Code)
	toggled := decode[domain.ToggleResponse](t, rec)
	assert.False(t, toggled.Applied)
	assert.Equal(t, domain.Selection{domain.TypePOS, domain.TypeCardPresent}, toggled.State.SelectedTypes)
}
