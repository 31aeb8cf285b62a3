package analytics

import (
	"fmt"
	"math"
	"strings"

	"github.com/liamba05/Fynnance/internal/apperrors"
	"github.com/liamba05/Fynnance/internal/model"
)

const (
	// DefaultCreditScore is assumed when the user has not shared a credit score.
	DefaultCreditScore = 680

	frontEndDTI           = 0.28
	mortgageTermYears     = 30
	creditImprovementMark = 740
	affordableRangeFloor  = 0.9
)

type rateTier struct {
	minScore int
	rate     float64
}

// rateTiers are evaluated top-down with inclusive lower bounds.
var rateTiers = []rateTier{
	{760, 0.0425},
	{700, 0.0450},
	{660, 0.0475},
}

const fallbackRate = 0.0525

// EstimateRate returns the estimated annual mortgage rate as a fraction for a credit score.
func EstimateRate(creditScore int) float64 {
	for _, tier := range rateTiers {
		if creditScore >= tier.minScore {
			return tier.rate
		}
	}
	return fallbackRate
}

// MaxLoan is the loan amount a fixed monthly payment can service over years at annualRate.
func MaxLoan(monthlyPayment, annualRate float64, years int) float64 {
	monthlyRate := annualRate / 12
	n := float64(years * 12)
	if monthlyRate == 0 {
		return monthlyPayment * n
	}
	return monthlyPayment * (1 - math.Pow(1+monthlyRate, -n)) / monthlyRate
}

// Affordability estimates the home price a user can afford from annual income and
// credit score, and positions it against the market median.
//
// A nil income returns *apperrors.MissingRequiredDataError regardless of the other
// inputs. A nil credit score falls back to DefaultCreditScore.
func Affordability(income *float64, creditScore *int, stats model.MarketStats) (model.AffordabilityResult, error) {
	if income == nil {
		return model.AffordabilityResult{}, &apperrors.MissingRequiredDataError{Field: "income"}
	}
	if err := requirePositive("income", *income); err != nil {
		return model.AffordabilityResult{}, err
	}

	score := DefaultCreditScore
	defaulted := true
	if creditScore != nil {
		score = *creditScore
		defaulted = false
	}

	maxMonthly := *income / 12 * frontEndDTI
	rate := EstimateRate(score)
	maxPrice := MaxLoan(maxMonthly, rate, mortgageTermYears)

	position := model.MarketPosition{
		MedianPrice: stats.MedianPrice,
		AffordableRange: fmt.Sprintf("$%.0fk - $%.0fk",
			math.Round(maxPrice*affordableRangeFloor/1000),
			math.Round(maxPrice/1000)),
	}
	if stats.MedianPrice != nil && *stats.MedianPrice > 0 {
		vs := round((maxPrice / *stats.MedianPrice - 1) * 100, 2)
		position.VsMedianPct = &vs
		position.PricedOut = maxPrice < *stats.MedianPrice
	}

	return model.AffordabilityResult{
		Summary: model.AffordabilitySummary{
			MaxHomePrice:         round(maxPrice, 2),
			MaxMonthlyPayment:    round(maxMonthly, 2),
			EstimatedRate:        round(rate*100, 2),
			CreditScore:          score,
			CreditScoreDefaulted: defaulted,
		},
		MarketPosition:  position,
		Recommendations: affordabilityRecommendations(position.PricedOut, score),
	}, nil
}

func affordabilityRecommendations(pricedOut bool, creditScore int) model.RecommendationSet {
	items := make([]model.Recommendation, 0, 2)

	if pricedOut {
		items = append(items, model.Recommendation{
			Type:    "market_position",
			Message: "You may be priced out of median homes in this area",
			ActionItems: []string{
				"Consider nearby areas with lower median prices",
				"Look for below-market opportunities",
				"Consider smaller properties or condos",
			},
		})
	}

	if creditScore < creditImprovementMark {
		items = append(items, model.Recommendation{
			Type:    "credit_improvement",
			Message: "Improving your credit score could lower your interest rate",
			ActionItems: []string{
				"Work on improving credit score",
				"Pay down existing debt",
				"Check for credit report errors",
			},
		})
	}

	summary := "No specific recommendations"
	if len(items) > 0 {
		focus := make([]string, len(items))
		for i, item := range items {
			focus[i] = strings.ReplaceAll(item.Type, "_", " ")
		}
		summary = "Focus on " + strings.Join(focus, ", ")
	}

	return model.RecommendationSet{Items: items, Summary: summary}
}
