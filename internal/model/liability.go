package model

import "cloud.google.com/go/civil"

// LiabilityKind identifies which family a normalized liability belongs to.
type LiabilityKind string

const (
	LiabilityCreditCard  LiabilityKind = "credit"
	LiabilityStudentLoan LiabilityKind = "student"
	LiabilityMortgage    LiabilityKind = "mortgage"
)

// RawLiabilities is the provider-shaped liability payload. Any of the slices may be
// empty; an empty slice means the user holds no liability of that kind.
type RawLiabilities struct {
	Credit   []RawCreditCard  `json:"credit"`
	Student  []RawStudentLoan `json:"student"`
	Mortgage []RawMortgage    `json:"mortgage"`
}

// APR is one annual percentage rate reported on a credit card.
type APR struct {
	APRType       string   `json:"apr_type"`
	APRPercentage *float64 `json:"apr_percentage"`
}

// RawCreditCard mirrors a credit liability record.
type RawCreditCard struct {
	AccountID            string      `json:"account_id"`
	APRs                 []APR       `json:"aprs"`
	IsOverdue            *bool       `json:"is_overdue"`
	LastPaymentAmount    *float64    `json:"last_payment_amount"`
	LastStatementBalance *float64    `json:"last_statement_balance"`
	MinimumPaymentAmount *float64    `json:"minimum_payment_amount"`
	NextPaymentDueDate   *civil.Date `json:"next_payment_due_date"`
}

// RawStudentLoan mirrors a student loan liability record.
type RawStudentLoan struct {
	AccountID                   string      `json:"account_id"`
	LoanName                    string      `json:"loan_name"`
	InterestRatePercentage      *float64    `json:"interest_rate_percentage"`
	IsOverdue                   *bool       `json:"is_overdue"`
	LastPaymentAmount           *float64    `json:"last_payment_amount"`
	MinimumPaymentAmount        *float64    `json:"minimum_payment_amount"`
	NextPaymentDueDate          *civil.Date `json:"next_payment_due_date"`
	OriginationDate             *civil.Date `json:"origination_date"`
	OutstandingPrincipalBalance *float64    `json:"outstanding_principal_balance"`
	ExpectedPayoffDate          *civil.Date `json:"expected_payoff_date"`
}

// MortgageInterestRate is the rate block of a mortgage record.
type MortgageInterestRate struct {
	Percentage *float64 `json:"percentage"`
	Type       string   `json:"type"`
}

// RawMortgage mirrors a mortgage liability record.
type RawMortgage struct {
	AccountID                   string               `json:"account_id"`
	InterestRate                MortgageInterestRate `json:"interest_rate"`
	LastPaymentAmount           *float64             `json:"last_payment_amount"`
	NextMonthlyPayment          *float64             `json:"next_monthly_payment"`
	NextPaymentDueDate          *civil.Date          `json:"next_payment_due_date"`
	LoanTerm                    string               `json:"loan_term"`
	LoanTypeDescription         string               `json:"loan_type_description"`
	MaturityDate                *civil.Date          `json:"maturity_date"`
	OriginationDate             *civil.Date          `json:"origination_date"`
	OutstandingPrincipalBalance *float64             `json:"outstanding_principal_balance"`
	PastDueAmount               *float64             `json:"past_due_amount"`
}

// Liability is the uniform shape every liability kind is normalized into.
type Liability struct {
	AccountID       string        `json:"accountId"`
	Name            string        `json:"name"`
	Kind            LiabilityKind `json:"kind"`
	Balance         *float64      `json:"balance"`
	InterestRate    *float64      `json:"interestRate"`
	MinimumPayment  *float64      `json:"minimumPayment"`
	LastPayment     *float64      `json:"lastPayment"`
	NextDueDate     *civil.Date   `json:"nextDueDate,omitempty"`
	IsOverdue       bool          `json:"isOverdue"`
	LoanTerm        string        `json:"loanTerm,omitempty"`
	RateType        string        `json:"rateType,omitempty"`
	OriginationDate *civil.Date   `json:"originationDate,omitempty"`
	MaturityDate    *civil.Date   `json:"maturityDate,omitempty"`
}

// Facts returns the projection inputs of the liability.
func (l Liability) Facts() LoanFacts {
	return LoanFacts{
		CurrentBalance: l.Balance,
		InterestRate:   l.InterestRate,
		MinimumPayment: l.MinimumPayment,
	}
}

// PredictionError records a per-instrument projection failure.
type PredictionError struct {
	Error           string   `json:"error"`
	MinimumRequired *float64 `json:"minimumRequired,omitempty"`
}

// LiabilitySummary holds portfolio-level liability totals. All values are always set.
type LiabilitySummary struct {
	TotalBalance        float64 `json:"totalBalance"`
	TotalMinimumPayment float64 `json:"totalMinimumPayment"`
	AverageInterestRate float64 `json:"averageInterestRate"`
	RatedInstruments    int     `json:"ratedInstruments"`
	CreditCardCount     int     `json:"creditCardCount"`
	StudentLoanCount    int     `json:"studentLoanCount"`
	MortgageCount       int     `json:"mortgageCount"`
	HasMortgage         bool    `json:"hasMortgage"`
	HasCreditCards      bool    `json:"hasCreditCards"`
	HasLoans            bool    `json:"hasLoans"`
}

// LiabilityReport is the normalized liability view with payoff projections.
type LiabilityReport struct {
	CreditCards       []Liability                `json:"creditCards"`
	StudentLoans      []Liability                `json:"studentLoans"`
	Mortgages         []Liability                `json:"mortgages"`
	PayoffPredictions map[string]LoanPrediction  `json:"payoffPredictions"`
	PredictionErrors  map[string]PredictionError `json:"predictionErrors"`
	Summary           LiabilitySummary           `json:"summary"`
}
