package domain

import "time"

// ============================================================
// Dashboard sessions
// ============================================================

// DashboardState is a read-only snapshot of one analyst's dashboard.
type DashboardState struct {
	SessionID              string                  `json:"sessionId,omitempty"`
	PortfolioType          PortfolioType           `json:"portfolioType"`
	SelectedRecommendation *SelectedRecommendation `json:"selectedRecommendation,omitempty"`
	SelectedTypes          Selection               `json:"selectedTransactionTypes"`
	Duration               Duration                `json:"duration"`
	CalculatedValue        *CalculationResult      `json:"calculatedValue"`
	CanCalculate           bool                    `json:"canCalculate"`
	CreatedAt              *time.Time              `json:"createdAt,omitempty"`
}

// CreateSessionRequest is the body of POST /api/sessions.
type CreateSessionRequest struct {
	PortfolioType PortfolioType `json:"portfolioType,omitempty"`
}

// ToggleRequest is the body of POST /api/sessions/{id}/toggle.
type ToggleRequest struct {
	TransactionType string `json:"transactionType"`
}

// ToggleResponse reports the new state and whether the token was known.
type ToggleResponse struct {
	Applied bool            `json:"applied"`
	State   *DashboardState `json:"state"`
}

// DurationRequest is the body of PUT /api/sessions/{id}/duration.
type DurationRequest struct {
	Months *int `json:"months"`
}

// PortfolioRequest is the body of PUT /api/sessions/{id}/portfolio.
type PortfolioRequest struct {
	PortfolioType PortfolioType `json:"portfolioType"`
}

// RecommendationRequest is the body of PUT /api/sessions/{id}/recommendation.
// An empty ID clears the selected recommendation.
type RecommendationRequest struct {
	RecommendationID string `json:"recommendationId"`
}
