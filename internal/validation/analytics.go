package validation

import (
	"fmt"
	"math"

	"github.com/liamba05/Fynnance/internal/api/request"
)

// ValidateLoanProjection checks that every projection input is present and finite.
// Domain checks (positive balance, payment above interest) belong to the analysis.
func ValidateLoanProjection(req request.LoanProjectionRequest) error {
	errors := make(map[string]string)

	requireNumber(errors, "balance", req.Balance)
	requireNumber(errors, "interestRate", req.InterestRate)
	requireNumber(errors, "payment", req.Payment)

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

// ValidateRecurring checks that a transaction list was sent.
// Individual malformed transactions are reported by the detector with their index.
func ValidateRecurring(req request.RecurringRequest) error {
	if req.Transactions == nil {
		return &Error{Fields: map[string]string{"transactions": "transactions is required"}}
	}
	return nil
}

// ValidateInvestment checks an investment analysis request.
//
// Required fields:
//   - propertyPrice: finite number
//   - expectedRent: finite number
//   - marketStats: object
func ValidateInvestment(req request.InvestmentRequest) error {
	errors := make(map[string]string)

	requireNumber(errors, "propertyPrice", req.PropertyPrice)
	requireNumber(errors, "expectedRent", req.ExpectedRent)
	if req.MarketStats == nil {
		errors["marketStats"] = "marketStats is required"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

// ValidateAffordability checks the optional fields of an affordability request.
// A missing income is not a validation failure.
func ValidateAffordability(req request.AffordabilityRequest) error {
	errors := make(map[string]string)

	if req.Income != nil && !finite(*req.Income) {
		errors["income"] = "income must be a finite number"
	}
	if req.CreditScore != nil {
		if msg := creditScoreProblem(*req.CreditScore); msg != "" {
			errors["creditScore"] = msg
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

func requireNumber(errors map[string]string, field string, v *float64) {
	switch {
	case v == nil:
		errors[field] = fmt.Sprintf("%s is required", field)
	case !finite(*v):
		errors[field] = fmt.Sprintf("%s must be a finite number", field)
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func creditScoreProblem(score int) string {
	if score < 300 || score > 850 {
		return "creditScore must be between 300 and 850"
	}
	return ""
}
