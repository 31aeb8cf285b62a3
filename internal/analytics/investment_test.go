package analytics_test

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/liamba05/Fynnance/internal/analytics"
	"github.com/liamba05/Fynnance/internal/apperrors"
	"github.com/liamba05/Fynnance/internal/model"
	"github.com/liamba05/Fynnance/internal/testutil"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 0.005
}

// TestInvestmentPotential tests rental property scoring.
//
// WHY: The score thresholds are part of the user-facing verdict. A gross yield of
// exactly 8% must not earn the high-yield point because the comparison is strict.
func TestInvestmentPotential(t *testing.T) {
	market := func() model.MarketStats {
		return testutil.NewMarketStats().
			WithRentalYield(testutil.Float(6)).
			WithPriceToRent(testutil.Float(15)).
			WithVacancy(testutil.Float(5)).
			Build()
	}

	t.Run("does not award high yield bonus at exactly 8 percent", func(t *testing.T) {
		analysis, err := analytics.InvestmentPotential(300000, 2000, market())
		if err != nil {
			t.Fatalf("InvestmentPotential() returned unexpected error: %v", err)
		}

		if analysis.Summary.GrossYield != 8.0 {
			t.Errorf("Expected gross yield 8.0, got %v", analysis.Summary.GrossYield)
		}
		if slices.Contains(analysis.Recommendation.Reasons, "High gross yield potential") {
			t.Error("Expected no high gross yield bonus at exactly 8%")
		}
		if analysis.Recommendation.Score != 4 {
			t.Errorf("Expected score 4, got %d", analysis.Recommendation.Score)
		}
		if analysis.Recommendation.Rating != model.RatingStrong {
			t.Errorf("Expected strong rating, got %s", analysis.Recommendation.Rating)
		}
	})

	t.Run("applies the expense model", func(t *testing.T) {
		analysis, err := analytics.InvestmentPotential(300000, 2000, market())
		if err != nil {
			t.Fatalf("InvestmentPotential() returned unexpected error: %v", err)
		}

		e := analysis.Expenses
		if !approx(e.PropertyTax, 4500) || !approx(e.Insurance, 1500) || !approx(e.Maintenance, 2400) || !approx(e.Vacancy, 1200) {
			t.Errorf("Unexpected expenses %+v", e)
		}
		if !approx(analysis.Summary.NetYield, 4.8) {
			t.Errorf("Expected net yield 4.8, got %.2f", analysis.Summary.NetYield)
		}
		if !approx(analysis.Summary.MonthlyCashflow, 1200) {
			t.Errorf("Expected monthly cashflow 1200, got %.2f", analysis.Summary.MonthlyCashflow)
		}
		if !approx(analysis.Summary.TotalMonthlyExpenses, 800) {
			t.Errorf("Expected monthly expenses 800, got %.2f", analysis.Summary.TotalMonthlyExpenses)
		}
		if !approx(analysis.MarketComparison.YieldVsMarket, 2) {
			t.Errorf("Expected yield vs market 2, got %.2f", analysis.MarketComparison.YieldVsMarket)
		}
		if !approx(analysis.MarketComparison.PriceToRentVsMarket, 2.5) {
			t.Errorf("Expected price-to-rent vs market 2.5, got %.2f", analysis.MarketComparison.PriceToRentVsMarket)
		}
	})

	t.Run("scores each rating band", func(t *testing.T) {
		tests := []struct {
			name        string
			price, rent float64
			wantScore   int
			wantRating  model.Rating
		}{
			{"all three points", 250000, 2000, 5, model.RatingStrong},
			{"yield and ratio only", 300000, 2000, 4, model.RatingStrong},
			{"expensive property", 600000, 2000, 0, model.RatingCaution},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				analysis, err := analytics.InvestmentPotential(tt.price, tt.rent, market())
				if err != nil {
					t.Fatalf("InvestmentPotential() returned unexpected error: %v", err)
				}
				if analysis.Recommendation.Score != tt.wantScore {
					t.Errorf("Expected score %d, got %d", tt.wantScore, analysis.Recommendation.Score)
				}
				if analysis.Recommendation.Rating != tt.wantRating {
					t.Errorf("Expected rating %s, got %s", tt.wantRating, analysis.Recommendation.Rating)
				}
			})
		}
	})

	t.Run("rates moderate when only the ratio beats the market", func(t *testing.T) {
		stats := testutil.NewMarketStats().
			WithRentalYield(testutil.Float(9)).
			WithPriceToRent(testutil.Float(15)).
			WithVacancy(testutil.Float(5)).
			Build()

		analysis, err := analytics.InvestmentPotential(300000, 2000, stats)
		if err != nil {
			t.Fatalf("InvestmentPotential() returned unexpected error: %v", err)
		}
		if analysis.Recommendation.Rating != model.RatingModerate || analysis.Recommendation.Score != 2 {
			t.Errorf("Expected moderate with score 2, got %s with %d", analysis.Recommendation.Rating, analysis.Recommendation.Score)
		}
	})

	t.Run("rejects invalid price and rent", func(t *testing.T) {
		for _, tc := range []struct{ price, rent float64 }{{0, 2000}, {-1, 2000}, {300000, -5}, {300000, math.NaN()}} {
			_, err := analytics.InvestmentPotential(tc.price, tc.rent, market())
			if !errors.Is(err, apperrors.ErrInvalidInput) {
				t.Errorf("InvestmentPotential(%v, %v): expected invalid input, got %v", tc.price, tc.rent, err)
			}
		}
	})

	t.Run("requires market vacancy", func(t *testing.T) {
		stats := testutil.NewMarketStats().WithVacancy(nil).Build()

		_, err := analytics.InvestmentPotential(300000, 2000, stats)
		if !errors.Is(err, apperrors.ErrMissingRequiredData) {
			t.Errorf("Expected missing required data, got %v", err)
		}
	})
}
