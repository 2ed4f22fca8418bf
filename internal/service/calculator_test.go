package service_test

import (
	"testing"

	"github.com/boddenberg/momentum-bfa-go/internal/domain"
	"github.com/boddenberg/momentum-bfa-go/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCalculator(t *testing.T) *service.Calculator {
	t.Helper()
	calc, err := service.NewCalculator(service.DefaultCatalog(), service.DefaultCoefficients())
	require.NoError(t, err)
	return calc
}

func TestCalculate_SinglePOSOverTwelveMonths(t *testing.T) {
	res, err := newCalculator(t).Calculate(domain.Selection{pos}, domain.DurationTwelve)
	require.NoError(t, err)

	assert.Equal(t, &domain.CalculationResult{
		TransactionType:   pos,
		CalculationPeriod: "12 Months",
		BaseValue:         350000,
		GrowthFactor:      1.56,
		Value:             7000,
		PercentChange:     7.5,
		FormattedValue:    "$7,000",
	}, res)
}

func TestCalculate_POSAndATMOverSixMonths(t *testing.T) {
	res, err := newCalculator(t).Calculate(domain.Selection{pos, atm}, domain.DurationSix)
	require.NoError(t, err)

	assert.Equal(t, pos, res.TransactionType)
	assert.Equal(t, "6 Months", res.CalculationPeriod)
	assert.Equal(t, 320000.0, res.BaseValue)
	assert.Equal(t, 1.44, res.GrowthFactor)
	assert.Equal(t, int64(6400), res.Value)
	assert.Equal(t, 3.8, res.PercentChange)
	assert.Equal(t, "$6,400", res.FormattedValue)
}

func TestCalculate_DurationScaling(t *testing.T) {
	tests := []struct {
		duration  domain.Duration
		value     int64
		base      float64
		pctChange float64
	}{
		{domain.DurationThree, 1750, 87500, 1.9},
		{domain.DurationSix, 3500, 175000, 3.8},
		{domain.DurationNine, 5250, 262500, 5.6},
		{domain.DurationTwelve, 7000, 350000, 7.5},
	}

	calc := newCalculator(t)
	for _, tt := range tests {
		t.Run(tt.duration.Label(), func(t *testing.T) {
			res, err := calc.Calculate(domain.Selection{pos}, tt.duration)
			require.NoError(t, err)

			assert.Equal(t, tt.value, res.Value)
			assert.Equal(t, tt.base, res.BaseValue)
			assert.Equal(t, tt.pctChange, res.PercentChange)
			assert.Equal(t, 1.56, res.GrowthFactor)
		})
	}
}

func TestCalculate_FullCatalog(t *testing.T) {
	calc := newCalculator(t)
	all := domain.Selection{cp, atm, pos, cnp, ecm, rec}

	res, err := calc.Calculate(all, domain.DurationTwelve)
	require.NoError(t, err)

	// 420000+290000+350000+380000+310000+270000
	assert.Equal(t, 2020000.0, res.BaseValue)
	assert.Equal(t, int64(40400), res.Value)
	assert.Equal(t, "$40,400", res.FormattedValue)
	// (1.45+1.32+1.56+1.38+1.62+1.72)/6 = 1.5083...
	assert.Equal(t, 1.51, res.GrowthFactor)
	assert.Equal(t, cp, res.TransactionType)
}

func TestCalculate_GrowthRoundsStoredBinaryValue(t *testing.T) {
	calc := newCalculator(t)

	tests := []struct {
		name string
		sel  domain.Selection
		want float64
	}{
		// 1.505 is stored just below the tie.
		{"POS checks Card Present", domain.Selection{pos, cp}, 1.5},
		// 1.385 is stored just above the tie.
		{"ATM and Card Present", domain.Selection{atm, cp}, 1.39},
		{"four types below the tie", domain.Selection{pos, atm, cnp, rec}, 1.49},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := calc.Calculate(tt.sel, domain.DurationTwelve)
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.GrowthFactor)
		})
	}
}

func TestCalculate_IsDeterministic(t *testing.T) {
	calc := newCalculator(t)
	sel := domain.Selection{ecm, cnp, rec}

	first, err := calc.Calculate(sel, domain.DurationNine)
	require.NoError(t, err)
	second, err := calc.Calculate(sel, domain.DurationNine)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.NotSame(t, first, second)
}

func TestCalculate_RejectsEmptySelectionAndZeroDuration(t *testing.T) {
	calc := newCalculator(t)
	var validation *domain.ErrValidation

	_, err := calc.Calculate(domain.Selection{}, domain.DurationTwelve)
	assert.ErrorAs(t, err, &validation)

	_, err = calc.Calculate(domain.Selection{pos}, domain.DurationNone)
	assert.ErrorAs(t, err, &validation)

	_, err = calc.Calculate(domain.Selection{pos}, domain.Duration(7))
	assert.ErrorAs(t, err, &validation)
}

func TestCalculate_MissingCoefficient(t *testing.T) {
	_, err := newCalculator(t).Calculate(domain.Selection{"Contactless"}, domain.DurationTwelve)

	var missing *domain.ErrMissingCoefficient
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, domain.TransactionType("Contactless"), missing.TransactionType)
}

func TestNewCalculator_RequiresCoefficientsForEveryCatalogType(t *testing.T) {
	coefficients := service.DefaultCoefficients()
	delete(coefficients, domain.TypeRecurring)

	_, err := service.NewCalculator(service.DefaultCatalog(), coefficients)

	var missing *domain.ErrMissingCoefficient
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, domain.TypeRecurring, missing.TransactionType)
}

func TestCalculateSingle_CreditMatchesDashboardFormula(t *testing.T) {
	calc := newCalculator(t)

	for _, tok := range service.DefaultCatalog().Values() {
		single, err := calc.CalculateSingle(tok, domain.PortfolioCredit)
		require.NoError(t, err)

		multi, err := calc.Calculate(domain.Selection{tok}, domain.DurationTwelve)
		require.NoError(t, err)

		assert.Equal(t, multi, single, "token %q", tok)
	}
}

func TestCalculateSingle_DebitModifier(t *testing.T) {
	res, err := newCalculator(t).CalculateSingle(pos, domain.PortfolioDebit)
	require.NoError(t, err)

	// 350000 * 0.85 = 297500 -> round(297.5 * 20)
	assert.Equal(t, 297500.0, res.BaseValue)
	assert.Equal(t, int64(5950), res.Value)
	assert.Equal(t, "$5,950", res.FormattedValue)
	assert.Equal(t, 1.56, res.GrowthFactor)
	assert.Equal(t, "12 Months", res.CalculationPeriod)
	assert.Equal(t, 7.5, res.PercentChange)
}

func TestCalculateSingle_Errors(t *testing.T) {
	calc := newCalculator(t)

	_, err := calc.CalculateSingle(pos, "Prepaid")
	var validation *domain.ErrValidation
	assert.ErrorAs(t, err, &validation)

	_, err = calc.CalculateSingle("Contactless", domain.PortfolioCredit)
	var missing *domain.ErrMissingCoefficient
	assert.ErrorAs(t, err, &missing)
}

func TestFormatUSD(t *testing.T) {
	assert.Equal(t, "$0", service.FormatUSD(0))
	assert.Equal(t, "$950", service.FormatUSD(950))
	assert.Equal(t, "$7,000", service.FormatUSD(7000))
	assert.Equal(t, "$3,225,000", service.FormatUSD(3225000))
	assert.Equal(t, "-$1,500", service.FormatUSD(-1500))
}
