package staticstore

import "github.com/boddenberg/momentum-bfa-go/internal/domain"

func defaultScores() map[domain.PortfolioType]domain.OpportunityScore {
	return map[domain.PortfolioType]domain.OpportunityScore{
		domain.PortfolioCredit: {Value: 1000000, FormattedValue: "$1M", PercentChange: 7.2, PerSegment: "100K"},
		domain.PortfolioDebit:  {Value: 750000, FormattedValue: "$750K", PercentChange: 4.5, PerSegment: "75K"},
	}
}

func defaultRecommendations() []domain.Recommendation {
	return []domain.Recommendation{
		{
			ID:             "rec-1",
			Title:          "Target high-volume, high-spending users with consistent patterns",
			Value:          320000,
			FormattedValue: "$320,000",
			Description:    "opportunity value",
			PortfolioType:  domain.PortfolioCredit,
			PercentChange:  16,
			Actions: []string{
				"Flag recurring spending above a certain threshold (e.g., $125 monthly) across multiple categories like Groceries, Office supplies, Fuel",
				"Monitor transaction modes and usage frequency (POS, ATM, E-commerce)",
				"Target POS-heavy users with recurring transactions in groceries, office supplies, fuel",
				"Focus on E-commerce users who spend on office supplies or bulk purchases",
			},
			Color:         "#E62621",
			GradientColor: "#FF5A4E",
		},
		{
			ID:             "rec-2",
			Title:          "Increase activation for dormant card members",
			Value:          280000,
			FormattedValue: "$280,000",
			Description:    "opportunity value",
			PortfolioType:  domain.PortfolioCredit,
			PercentChange:  15,
			Actions: []string{
				"Identify cards with minimal or no usage over 60-day periods",
				"Create tiered incentive campaigns based on spending potential",
				"Target with category-specific cashback offers for first transactions",
				"Implement automated activation reminders with escalating benefits",
			},
			Color:         "#E65C21",
			GradientColor: "#FF914E",
		},
		{
			ID:             "rec-3",
			Title:          "Expand recurring payment enrollment",
			Value:          400000,
			FormattedValue: "$400,000",
			Description:    "opportunity value",
			PortfolioType:  domain.PortfolioCredit,
			PercentChange:  22,
			Actions: []string{
				"Identify users with periodic identical payments but not using recurring setup",
				"Analyze subscription economy spending patterns across demographic segments",
				"Target subscription-heavy users with incentives for additional recurring setups",
				"Create educational campaign about benefits of automated payments",
			},
			Color:         "#E62170",
			GradientColor: "#FF4E9E",
		},
		{
			ID:             "rec-4",
			Title:          "Enhance cross-border transaction volume",
			Value:          215000,
			FormattedValue: "$215,000",
			Description:    "opportunity value",
			PortfolioType:  domain.PortfolioCredit,
			PercentChange:  19,
			Actions: []string{
				"Identify cardholders with international travel history",
				"Create targeted international transaction fee waiver campaign",
				"Develop merchant partnerships in popular tourist destinations",
				"Implement real-time currency conversion alerts for transparency",
			},
			Color:         "#3C21E6",
			GradientColor: "#694EFF",
		},
		{
			ID:             "rec-5",
			Title:          "Increase debit card usage through merchant-specific offers",
			Value:          225000,
			FormattedValue: "$225,000",
			Description:    "opportunity value",
			PortfolioType:  domain.PortfolioDebit,
			PercentChange:  18,
			Actions: []string{
				"Target top merchants by transaction volume",
				"Develop limited-time exclusive merchant partnerships",
				"Create cash-back incentives for frequent debit card usage",
				"Focus on everyday purchases like groceries and gas",
			},
			Color:         "#E62621",
			GradientColor: "#FF5A4E",
		},
		{
			ID:             "rec-6",
			Title:          "Promote contactless payment adoption",
			Value:          185000,
			FormattedValue: "$185,000",
			Description:    "opportunity value",
			PortfolioType:  domain.PortfolioDebit,
			PercentChange:  14,
			Actions: []string{
				"Identify customers who haven't used contactless features",
				"Create educational content about contactless payment security",
				"Offer incentives for first contactless transaction",
				"Partner with merchants to promote tap-to-pay at checkout",
			},
			Color:         "#E65C21",
			GradientColor: "#FF914E",
		},
		{
			ID:             "rec-7",
			Title:          "Drive online debit card usage",
			Value:          260000,
			FormattedValue: "$260,000",
			Description:    "opportunity value",
			PortfolioType:  domain.PortfolioDebit,
			PercentChange:  17,
			Actions: []string{
				"Target customers who primarily use debit in-person only",
				"Create e-commerce specific rewards for debit transactions",
				"Address security concerns with enhanced fraud protection messaging",
				"Develop partnerships with popular online retailers",
			},
			Color:         "#0072CE",
			GradientColor: "#2B9DFF",
		},
		{
			ID:             "rec-8",
			Title:          "Increase automated bill payment penetration",
			Value:          195000,
			FormattedValue: "$195,000",
			Description:    "opportunity value",
			PortfolioType:  domain.PortfolioDebit,
			PercentChange:  16,
			Actions: []string{
				"Identify customers paying bills manually",
				"Offer simplified bill payment setup through mobile app",
				"Promote automatic payments for utilities and subscriptions",
				"Provide incentives for setting up multiple automatic payments",
			},
			Color:         "#21B866",
			GradientColor: "#4EE993",
		},
	}
}
