package analytics

import (
	"math"
	"time"

	"cloud.google.com/go/civil"

	"github.com/liamba05/Fynnance/internal/apperrors"
	"github.com/liamba05/Fynnance/internal/model"
)

const (
	// insufficientPaymentBuffer is added to the interest-only payment when suggesting a
	// minimum payment. It is a flat heuristic and does not guarantee a sensible payoff term.
	insufficientPaymentBuffer = 100.0

	// daysPerProjectedMonth approximates a calendar month in payoff dates.
	daysPerProjectedMonth = 30

	// maxProjectedPayments bounds the payoff term. Longer terms are rejected rather
	// than projected.
	maxProjectedPayments = 100_000
)

// AccelerationSteps are the extra monthly amounts evaluated as what-if payoff scenarios.
var AccelerationSteps = []float64{100, 200, 500}

// Project computes the payoff projection of a loan with the given balance, annual
// interest rate in percent and fixed monthly payment.
//
// A payment that does not exceed the monthly interest returns an
// *apperrors.InsufficientPaymentError carrying the suggested minimum payment.
// Payoff dates count months as 30-day blocks from now.
func Project(balance, annualRatePct, payment float64, now time.Time) (model.LoanPrediction, error) {
	if err := requirePositive("balance", balance); err != nil {
		return model.LoanPrediction{}, err
	}
	if err := requirePositive("interestRate", annualRatePct); err != nil {
		return model.LoanPrediction{}, err
	}
	if err := requirePositive("payment", payment); err != nil {
		return model.LoanPrediction{}, err
	}

	monthlyRate := annualRatePct / 12 / 100
	monthlyInterest := balance * monthlyRate

	if payment <= monthlyInterest {
		return model.LoanPrediction{}, &apperrors.InsufficientPaymentError{
			Payment:         payment,
			MonthlyInterest: round(monthlyInterest, 2),
			MinimumRequired: round(monthlyInterest+insufficientPaymentBuffer, 2),
		}
	}

	remaining, err := remainingPayments(balance, monthlyRate, payment)
	if err != nil {
		return model.LoanPrediction{}, err
	}
	totalToPay := payment * float64(remaining)
	start := civil.DateOf(now)

	prediction := model.LoanPrediction{
		MonthlyPayment:    payment,
		RemainingPayments: remaining,
		TotalToPay:        round(totalToPay, 2),
		TotalInterest:     round(totalToPay-balance, 2),
		MonthlyInterest:   round(monthlyInterest, 2),
		MonthlyPrincipal:  round(payment-monthlyInterest, 2),
		PayoffDate:        start.AddDays(daysPerProjectedMonth * remaining),
		AcceleratedPayoff: make([]model.AcceleratedScenario, 0, len(AccelerationSteps)),
	}

	for _, extra := range AccelerationSteps {
		newPayment := payment + extra
		newRemaining, err := remainingPayments(balance, monthlyRate, newPayment)
		if err != nil {
			return model.LoanPrediction{}, err
		}
		newTotal := newPayment * float64(newRemaining)

		prediction.AcceleratedPayoff = append(prediction.AcceleratedPayoff, model.AcceleratedScenario{
			AdditionalMonthly: extra,
			NewPayment:        newPayment,
			NewPayoffDate:     start.AddDays(daysPerProjectedMonth * newRemaining),
			MonthsSaved:       remaining - newRemaining,
			InterestSavings:   round(totalToPay-newTotal, 2),
			TotalToPay:        round(newTotal, 2),
		})
	}

	return prediction, nil
}

// remainingPayments inverts the annuity formula for the term, rounding partial months up.
// payment must exceed balance*monthlyRate. Log1p keeps both logarithms exact for rates
// small enough that 1+monthlyRate rounds to 1.
func remainingPayments(balance, monthlyRate, payment float64) (int, error) {
	n := -math.Log1p(-balance*monthlyRate/payment) / math.Log1p(monthlyRate)
	if !isFinite(n) || n <= 0 {
		return 0, apperrors.NewInvalidInput("interestRate", "is too small to project a payoff term")
	}
	if n > maxProjectedPayments {
		return 0, apperrors.NewInvalidInput("payment", "does not pay off the balance within a projectable term")
	}
	return int(math.Ceil(n)), nil
}

func requirePositive(field string, v float64) error {
	if !isFinite(v) {
		return apperrors.NewInvalidInput(field, "must be a finite number")
	}
	if v <= 0 {
		return apperrors.NewInvalidInput(field, "must be greater than zero")
	}
	return nil
}
