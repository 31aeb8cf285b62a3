package request

import (
	"cloud.google.com/go/civil"

	"github.com/liamba05/Fynnance/internal/model"
)

// LoanProjectionRequest is the body of POST /api/analytics/loan-projection.
// InterestRate is an annual percentage, e.g. 18 for 18%.
type LoanProjectionRequest struct {
	Balance      *float64 `json:"balance"`
	InterestRate *float64 `json:"interestRate"`
	Payment      *float64 `json:"payment"`
}

// RecurringRequest is the body of POST /api/analytics/recurring.
// AsOf defaults to today.
type RecurringRequest struct {
	Transactions []model.Transaction `json:"transactions"`
	AsOf         *civil.Date         `json:"asOf,omitempty"`
}

// LiabilitiesRequest is the body of POST /api/analytics/liabilities.
type LiabilitiesRequest struct {
	CreditCards  []model.RawCreditCard  `json:"creditCards"`
	StudentLoans []model.RawStudentLoan `json:"studentLoans"`
	Mortgages    []model.RawMortgage    `json:"mortgages"`
	Accounts     []model.Account        `json:"accounts"`
}

// Raw returns the liabilities in provider shape.
func (r LiabilitiesRequest) Raw() model.RawLiabilities {
	return model.RawLiabilities{
		Credit:   r.CreditCards,
		Student:  r.StudentLoans,
		Mortgage: r.Mortgages,
	}
}

// InvestmentRequest is the body of POST /api/analytics/investment.
type InvestmentRequest struct {
	PropertyPrice *float64           `json:"propertyPrice"`
	ExpectedRent  *float64           `json:"expectedRent"`
	MarketStats   *model.MarketStats `json:"marketStats"`
}

// AffordabilityRequest is the body of POST /api/analytics/affordability.
// Income is optional so that a missing income reaches the analysis and is
// reported as missing data rather than a malformed request.
type AffordabilityRequest struct {
	Income      *float64          `json:"income"`
	CreditScore *int              `json:"creditScore"`
	MarketStats model.MarketStats `json:"marketStats"`
}
