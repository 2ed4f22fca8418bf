package service

import (
	"fmt"

	"github.com/boddenberg/momentum-bfa-go/internal/domain"
)

// Dashboard is the state behind one analyst's calculator page: portfolio,
// selected recommendation, selected transaction types, duration and the last
// calculation result. It is not safe for concurrent use; callers serialise access.
type Dashboard struct {
	catalog    *Catalog
	calculator *Calculator

	portfolio      domain.PortfolioType
	recommendation *domain.SelectedRecommendation
	selection      domain.Selection
	duration       domain.Duration
	result         *domain.CalculationResult
}

// NewDashboard returns a dashboard on the Credit portfolio with a 12 month window.
func NewDashboard(catalog *Catalog, calculator *Calculator) *Dashboard {
	return &Dashboard{
		catalog:    catalog,
		calculator: calculator,
		portfolio:  domain.PortfolioCredit,
		selection:  domain.Selection{},
		duration:   domain.DefaultDuration,
	}
}

// Toggle flips one transaction type checkbox. It returns false, leaving the
// selection untouched, when the token is not in the catalog.
func (d *Dashboard) Toggle(t domain.TransactionType) bool {
	next, ok := d.catalog.Toggle(d.selection, t)
	if !ok {
		return false
	}
	d.selection = next
	return true
}

// SetDuration replaces the duration. Values outside {0,3,6,9,12} are rejected.
func (d *Dashboard) SetDuration(months domain.Duration) error {
	if !months.Valid() {
		return &domain.ErrValidation{Field: "months", Message: fmt.Sprintf("must be one of 0, 3, 6, 9, 12 (got %d)", int(months))}
	}
	d.duration = months
	return nil
}

// SetPortfolioType switches between the Credit and Debit portfolios.
// The selected recommendation belongs to a portfolio, so it is cleared on change.
func (d *Dashboard) SetPortfolioType(p domain.PortfolioType) error {
	if !p.Valid() {
		return errInvalidPortfolio
	}
	if p != d.portfolio {
		d.recommendation = nil
	}
	d.portfolio = p
	return nil
}

// SelectRecommendation records the recommendation being drilled into; nil clears it.
func (d *Dashboard) SelectRecommendation(rec *domain.SelectedRecommendation) {
	if rec == nil {
		d.recommendation = nil
		return
	}
	cp := *rec
	d.recommendation = &cp
}

// CanCalculate reports whether Calculate would produce a result.
func (d *Dashboard) CanCalculate() bool {
	return len(d.selection) > 0 && d.duration != domain.DurationNone
}

// Calculate computes a result from the current selection and duration and
// publishes it, replacing any previous one. With an empty selection or a zero
// duration it returns ErrNotCalculable and the published result is unchanged.
func (d *Dashboard) Calculate() (*domain.CalculationResult, error) {
	if !d.CanCalculate() {
		return nil, &domain.ErrNotCalculable{SelectionSize: len(d.selection), Duration: d.duration}
	}
	res, err := d.calculator.Calculate(d.selection, d.duration)
	if err != nil {
		return nil, err
	}
	d.result = res
	return res, nil
}

// ClearResult drops the published result.
func (d *Dashboard) ClearResult() {
	d.result = nil
}

// Selection returns a copy of the selected tokens in insertion order.
func (d *Dashboard) Selection() domain.Selection { return d.selection.Clone() }

// Duration returns the current duration.
func (d *Dashboard) Duration() domain.Duration { return d.duration }

// PortfolioType returns the current portfolio.
func (d *Dashboard) PortfolioType() domain.PortfolioType { return d.portfolio }

// Result returns the last published result, or nil before the first calculation.
func (d *Dashboard) Result() *domain.CalculationResult {
	if d.result == nil {
		return nil
	}
	cp := *d.result
	return &cp
}

// State returns a snapshot safe to hand to other goroutines.
func (d *Dashboard) State() *domain.DashboardState {
	s := &domain.DashboardState{
		PortfolioType:   d.portfolio,
		SelectedTypes:   d.selection.Clone(),
		Duration:        d.duration,
		CalculatedValue: d.Result(),
		CanCalculate:    d.CanCalculate(),
	}
	if d.recommendation != nil {
		cp := *d.recommendation
		s.SelectedRecommendation = &cp
	}
	return s
}
