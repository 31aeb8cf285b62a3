package model

import "cloud.google.com/go/civil"

// LoanFacts are the inputs needed to project a loan payoff. A nil field means the
// provider did not report it; the projection is then skipped rather than defaulted.
type LoanFacts struct {
	CurrentBalance *float64 `json:"currentBalance"`
	InterestRate   *float64 `json:"interestRate"` // annual percentage, e.g. 18 for 18%
	MinimumPayment *float64 `json:"minimumPayment"`
}

// Complete reports whether every field needed for a projection is present.
func (f LoanFacts) Complete() bool {
	return f.CurrentBalance != nil && f.InterestRate != nil && f.MinimumPayment != nil
}

// AcceleratedScenario is a what-if payoff at a higher monthly payment.
type AcceleratedScenario struct {
	AdditionalMonthly float64    `json:"additionalMonthly"`
	NewPayment        float64    `json:"newPayment"`
	NewPayoffDate     civil.Date `json:"newPayoffDate"`
	MonthsSaved       int        `json:"monthsSaved"`
	InterestSavings   float64    `json:"interestSavings"`
	TotalToPay        float64    `json:"totalToPay"`
}

// LoanPrediction is the payoff projection of a single loan.
// PayoffDate counts months as fixed 30-day blocks and is not calendar accurate.
type LoanPrediction struct {
	MonthlyPayment    float64               `json:"monthlyPayment"`
	RemainingPayments int                   `json:"remainingPayments"`
	TotalToPay        float64               `json:"totalToPay"`
	TotalInterest     float64               `json:"totalInterest"`
	MonthlyInterest   float64               `json:"monthlyInterest"`
	MonthlyPrincipal  float64               `json:"monthlyPrincipal"`
	PayoffDate        civil.Date            `json:"payoffDate"`
	AcceleratedPayoff []AcceleratedScenario `json:"acceleratedPayoff"`
}
