package service

import (
	"fmt"
	"strconv"

	"github.com/boddenberg/momentum-bfa-go/internal/domain"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	thousand         = decimal.NewFromInt(1000)
	valuePerThousand = decimal.NewFromInt(20)
	monthsPerYear    = decimal.NewFromInt(12)
	yearlyPctChange  = 7.5

	// Debit portfolios earn less interchange per transaction than credit.
	portfolioModifiers = map[domain.PortfolioType]decimal.Decimal{
		domain.PortfolioCredit: decimal.NewFromInt(1),
		domain.PortfolioDebit:  decimal.NewFromFloat(0.85),
	}

	usdPrinter = message.NewPrinter(language.AmericanEnglish)
)

// DefaultCoefficients returns the base value and growth factor per transaction type.
func DefaultCoefficients() map[domain.TransactionType]domain.Coefficient {
	return map[domain.TransactionType]domain.Coefficient{
		domain.TypePOS:            {BaseValue: 350000, GrowthFactor: 1.56},
		domain.TypeCardPresent:    {BaseValue: 420000, GrowthFactor: 1.45},
		domain.TypeCardNotPresent: {BaseValue: 380000, GrowthFactor: 1.38},
		domain.TypeATM:            {BaseValue: 290000, GrowthFactor: 1.32},
		domain.TypeEcommerce:      {BaseValue: 310000, GrowthFactor: 1.62},
		domain.TypeRecurring:      {BaseValue: 270000, GrowthFactor: 1.72},
	}
}

// Calculator derives opportunity values from fixed per-type coefficients.
// It holds no mutable state; all methods are pure.
type Calculator struct {
	coefficients map[domain.TransactionType]domain.Coefficient
}

// NewCalculator returns a calculator over the given coefficient table.
// It fails with ErrMissingCoefficient if any catalog token is not covered.
func NewCalculator(catalog *Catalog, coefficients map[domain.TransactionType]domain.Coefficient) (*Calculator, error) {
	table := make(map[domain.TransactionType]domain.Coefficient, len(coefficients))
	for k, v := range coefficients {
		table[k] = v
	}
	for _, t := range catalog.Values() {
		if _, ok := table[t]; !ok {
			return nil, &domain.ErrMissingCoefficient{TransactionType: t}
		}
	}
	return &Calculator{coefficients: table}, nil
}

// Coefficient returns the coefficients of t.
func (c *Calculator) Coefficient(t domain.TransactionType) (domain.Coefficient, bool) {
	v, ok := c.coefficients[t]
	return v, ok
}

// Calculate computes the opportunity value of a multi-type selection over d months.
// Base values are summed, growth factors averaged, and monetary outputs scaled by d/12.
func (c *Calculator) Calculate(sel domain.Selection, d domain.Duration) (*domain.CalculationResult, error) {
	if len(sel) == 0 {
		return nil, &domain.ErrValidation{Field: "selectedTransactionTypes", Message: "at least one transaction type is required"}
	}
	if !d.Valid() || d == domain.DurationNone {
		return nil, &domain.ErrValidation{Field: "duration", Message: fmt.Sprintf("must be one of 3, 6, 9, 12 (got %d)", int(d))}
	}

	totalBase := decimal.Zero
	var growthSum float64
	for _, t := range sel {
		coef, ok := c.coefficients[t]
		if !ok {
			return nil, &domain.ErrMissingCoefficient{TransactionType: t}
		}
		totalBase = totalBase.Add(decimal.NewFromInt(coef.BaseValue))
		growthSum += coef.GrowthFactor
	}
	growth := growthSum / float64(len(sel))

	return c.build(sel[0], d, totalBase, growth), nil
}

// CalculateSingle is the single-type, twelve-month calculation served by
// POST /api/calculate. The portfolio modifier scales the base value before the
// shared formula, so for Credit it equals Calculate({t}, 12).
func (c *Calculator) CalculateSingle(t domain.TransactionType, portfolio domain.PortfolioType) (*domain.CalculationResult, error) {
	modifier, ok := portfolioModifiers[portfolio]
	if !ok {
		return nil, errInvalidPortfolio
	}
	coef, ok := c.coefficients[t]
	if !ok {
		return nil, &domain.ErrMissingCoefficient{TransactionType: t}
	}

	base := decimal.NewFromInt(coef.BaseValue).Mul(modifier)
	return c.build(t, domain.DurationTwelve, base, coef.GrowthFactor), nil
}

func (c *Calculator) build(primary domain.TransactionType, d domain.Duration, totalBase decimal.Decimal, growth float64) *domain.CalculationResult {
	multiplier := decimal.NewFromInt(int64(d)).Div(monthsPerYear)

	value := totalBase.Div(thousand).Mul(valuePerThousand).Mul(multiplier).Round(0).IntPart()

	pct := yearlyPctChange
	if d != domain.DurationTwelve {
		pct = yearlyPctChange * (float64(d) / 12)
	}

	return &domain.CalculationResult{
		TransactionType:   primary,
		CalculationPeriod: d.Label(),
		BaseValue:         totalBase.Mul(multiplier).InexactFloat64(),
		GrowthFactor:      roundFloat(growth, 2),
		Value:             value,
		PercentChange:     roundFloat(pct, 1),
		FormattedValue:    FormatUSD(value),
	}
}

// roundFloat rounds the exact binary value of f to the given decimal places,
// ties away from zero. 1.505 is stored as 1.50499... and rounds to 1.5.
func roundFloat(f float64, places int32) float64 {
	exact, err := decimal.NewFromString(strconv.FormatFloat(f, 'f', 64, 64))
	if err != nil {
		return f
	}
	return exact.Round(places).InexactFloat64()
}

// FormatUSD renders a whole-dollar amount with US digit grouping ("$1,234,567").
func FormatUSD(v int64) string {
	if v < 0 {
		return "-" + usdPrinter.Sprintf("$%d", -v)
	}
	return usdPrinter.Sprintf("$%d", v)
}
