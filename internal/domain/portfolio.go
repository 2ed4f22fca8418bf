package domain

// ============================================================
// Portfolios & Recommendations
// ============================================================

// PortfolioType is the card portfolio being analysed.
type PortfolioType string

const (
	PortfolioCredit PortfolioType = "Credit"
	PortfolioDebit  PortfolioType = "Debit"
)

// Valid reports whether p is Credit or Debit.
func (p PortfolioType) Valid() bool {
	return p == PortfolioCredit || p == PortfolioDebit
}

// OpportunityScore is the portfolio-level headline figure
// (shown as "Opportunity Size" on the dashboard).
type OpportunityScore struct {
	Value          int64   `json:"value"`
	FormattedValue string  `json:"formattedValue"`
	PercentChange  float64 `json:"percentChange"`
	PerSegment     string  `json:"perSegment"`
}

// Recommendation is a sales play with its estimated opportunity value.
type Recommendation struct {
	ID             string        `json:"id"`
	Title          string        `json:"title"`
	Value          int64         `json:"value"`
	FormattedValue string        `json:"formattedValue"`
	Description    string        `json:"description"`
	PortfolioType  PortfolioType `json:"portfolioType"`
	PercentChange  float64       `json:"percentChange"`
	Actions        []string      `json:"actions"`
	Color          string        `json:"color"`
	GradientColor  string        `json:"gradientColor"`
}

// SelectedRecommendation is the recommendation the analyst drilled into.
type SelectedRecommendation struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// PortfolioOverview bundles the headline score with its recommendations.
type PortfolioOverview struct {
	PortfolioType    PortfolioType     `json:"portfolioType"`
	OpportunityScore *OpportunityScore `json:"opportunityScore"`
	Recommendations  []Recommendation  `json:"recommendations"`
}
