package analytics

import (
	"github.com/liamba05/Fynnance/internal/apperrors"
	"github.com/liamba05/Fynnance/internal/model"
)

// Expense model of a rental property, as fractions.
const (
	propertyTaxRate = 0.015 // of price
	insuranceRate   = 0.005 // of price
	maintenanceRate = 0.10  // of annual rent

	highGrossYieldPct = 8.0
)

// InvestmentPotential scores a rental property with the given price and expected
// monthly rent against the local market.
//
// The market must report a rental yield, a price-to-rent ratio and a vacancy rate;
// a missing figure returns *apperrors.MissingRequiredDataError.
func InvestmentPotential(price, rent float64, stats model.MarketStats) (model.InvestmentAnalysis, error) {
	if err := requirePositive("propertyPrice", price); err != nil {
		return model.InvestmentAnalysis{}, err
	}
	if !isFinite(rent) {
		return model.InvestmentAnalysis{}, apperrors.NewInvalidInput("expectedRent", "must be a finite number")
	}
	if rent < 0 {
		return model.InvestmentAnalysis{}, apperrors.NewInvalidInput("expectedRent", "must not be negative")
	}
	if stats.VacancyRatePct == nil {
		return model.InvestmentAnalysis{}, &apperrors.MissingRequiredDataError{Field: "marketStats.vacancyRatePct"}
	}
	if stats.RentalYieldPct == nil {
		return model.InvestmentAnalysis{}, &apperrors.MissingRequiredDataError{Field: "marketStats.rentalYieldPct"}
	}
	if stats.PriceToRentRatio == nil {
		return model.InvestmentAnalysis{}, &apperrors.MissingRequiredDataError{Field: "marketStats.priceToRentRatio"}
	}

	annualRent := rent * 12
	grossYield := annualRent * 100 / price

	expenses := model.InvestmentExpenses{
		PropertyTax: price * propertyTaxRate,
		Insurance:   price * insuranceRate,
		Maintenance: annualRent * maintenanceRate,
		Vacancy:     annualRent * (*stats.VacancyRatePct / 100),
	}
	expenses.Total = expenses.PropertyTax + expenses.Insurance + expenses.Maintenance + expenses.Vacancy

	netIncome := annualRent - expenses.Total
	netYield := netIncome * 100 / price

	marketYield := *stats.RentalYieldPct
	marketPriceToRent := *stats.PriceToRentRatio

	// With no rent the property has no price-to-rent ratio and cannot beat the market on it.
	var priceToRent float64
	hasPriceToRent := annualRent > 0
	if hasPriceToRent {
		priceToRent = price / annualRent
	}

	comparison := model.MarketComparison{
		MarketYield:       round(marketYield, 2),
		MarketPriceToRent: round(marketPriceToRent, 2),
		YieldVsMarket:     round(grossYield-marketYield, 2),
	}
	if hasPriceToRent {
		comparison.PriceToRentVsMarket = round(marketPriceToRent-priceToRent, 2)
	}

	return model.InvestmentAnalysis{
		PropertyPrice: price,
		ExpectedRent:  rent,
		Summary: model.InvestmentSummary{
			GrossYield:           round(grossYield, 2),
			NetYield:             round(netYield, 2),
			AnnualRent:           round(annualRent, 2),
			NetAnnualIncome:      round(netIncome, 2),
			MonthlyCashflow:      round(netIncome/12, 2),
			TotalMonthlyExpenses: round(expenses.Total/12, 2),
			PriceToRentRatio:     round(priceToRent, 2),
		},
		Expenses: model.InvestmentExpenses{
			PropertyTax: round(expenses.PropertyTax, 2),
			Insurance:   round(expenses.Insurance, 2),
			Maintenance: round(expenses.Maintenance, 2),
			Vacancy:     round(expenses.Vacancy, 2),
			Total:       round(expenses.Total, 2),
		},
		MarketComparison: comparison,
		Recommendation:   scoreInvestment(grossYield, marketYield, priceToRent, hasPriceToRent, marketPriceToRent),
	}, nil
}

func scoreInvestment(grossYield, marketYield, priceToRent float64, hasPriceToRent bool, marketPriceToRent float64) model.InvestmentRecommendation {
	rec := model.InvestmentRecommendation{Reasons: make([]string, 0, 3)}

	if grossYield > marketYield {
		rec.Score += 2
		rec.Reasons = append(rec.Reasons, "Above market rental yield")
	}
	if hasPriceToRent && priceToRent < marketPriceToRent {
		rec.Score += 2
		rec.Reasons = append(rec.Reasons, "Better than market price-to-rent ratio")
	}
	if grossYield > highGrossYieldPct {
		rec.Score++
		rec.Reasons = append(rec.Reasons, "High gross yield potential")
	}

	switch {
	case rec.Score >= 4:
		rec.Rating = model.RatingStrong
		rec.Recommendation = "Strong investment opportunity"
	case rec.Score >= 2:
		rec.Rating = model.RatingModerate
		rec.Recommendation = "Moderate investment opportunity"
	default:
		rec.Rating = model.RatingCaution
		rec.Recommendation = "Exercise caution"
	}
	return rec
}
