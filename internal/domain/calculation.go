package domain

import "fmt"

// ============================================================
// Value Calculator
// ============================================================

// Duration is the calculation window in months. Only the values in
// Durations are meaningful; 0 means "no duration chosen".
type Duration int

const (
	DurationNone   Duration = 0
	DurationThree  Duration = 3
	DurationSix    Duration = 6
	DurationNine   Duration = 9
	DurationTwelve Duration = 12

	// DefaultDuration is the window a new dashboard starts with.
	DefaultDuration = DurationTwelve
)

// Durations lists the allowed durations in slider order.
var Durations = []Duration{DurationNone, DurationThree, DurationSix, DurationNine, DurationTwelve}

// Valid reports whether d is one of the enumerated durations.
func (d Duration) Valid() bool {
	for _, v := range Durations {
		if v == d {
			return true
		}
	}
	return false
}

// Label renders the duration the way results display it ("6 Months").
func (d Duration) Label() string {
	return fmt.Sprintf("%d Months", int(d))
}

// Coefficient holds the fixed per-type inputs of the calculator.
type Coefficient struct {
	BaseValue    int64   `json:"baseValue"`
	GrowthFactor float64 `json:"growthFactor"`
}

// CalculationResult is produced fresh by every calculation and never mutated.
type CalculationResult struct {
	TransactionType   TransactionType `json:"transactionType"`
	CalculationPeriod string          `json:"calculationPeriod"`
	BaseValue         float64         `json:"baseValue"`
	GrowthFactor      float64         `json:"growthFactor"`
	Value             int64           `json:"value"`
	PercentChange     float64         `json:"percentChange"`
	FormattedValue    string          `json:"formattedValue"`
}

// CalculateRequest is the body of POST /api/calculate (single-type calculation).
type CalculateRequest struct {
	RecommendationID string        `json:"recommendationId"`
	TransactionType  string        `json:"transactionType"`
	PortfolioType    PortfolioType `json:"portfolioType"`
}

// CalculateResponse wraps the single-type calculation result.
type CalculateResponse struct {
	CalculatedValue *CalculationResult `json:"calculatedValue"`
}
