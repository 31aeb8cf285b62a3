package analytics_test

import (
	"testing"
	"time"

	"github.com/liamba05/Fynnance/internal/analytics"
	"github.com/liamba05/Fynnance/internal/model"
	"github.com/liamba05/Fynnance/internal/testutil"
)

func liabilityAccounts() []model.Account {
	return []model.Account{
		{AccountID: "card-1", Name: "Sapphire Preferred", Type: "credit", Subtype: "credit card"},
		{AccountID: "loan-1", Name: "Federal Direct Loan", Type: "loan", Subtype: "student"},
	}
}

// TestAggregateLiabilities tests liability normalization and payoff projection.
//
// WHY: Liabilities arrive in three provider shapes. They must be flattened into one
// shape with stable totals, and one bad loan must not hide the others.
func TestAggregateLiabilities(t *testing.T) {
	now := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)

	t.Run("returns zeroed summary when user has no liabilities", func(t *testing.T) {
		report := analytics.AggregateLiabilities(model.RawLiabilities{}, nil, now)

		s := report.Summary
		if s.HasMortgage || s.HasCreditCards || s.HasLoans {
			t.Errorf("Expected all has_* flags false, got %+v", s)
		}
		if s.TotalBalance != 0 || s.TotalMinimumPayment != 0 || s.AverageInterestRate != 0 {
			t.Errorf("Expected zero totals, got %+v", s)
		}
		if report.CreditCards == nil || report.StudentLoans == nil || report.Mortgages == nil {
			t.Error("Expected empty non-nil liability lists")
		}
		if report.PayoffPredictions == nil || report.PredictionErrors == nil {
			t.Error("Expected initialized prediction maps")
		}
	})

	t.Run("normalizes all three kinds and joins account names", func(t *testing.T) {
		raw := model.RawLiabilities{
			Credit: []model.RawCreditCard{{
				AccountID:            "card-1",
				LastStatementBalance: testutil.Float(2400),
				MinimumPaymentAmount: testutil.Float(60),
				APRs: []model.APR{
					{APRType: "cash_apr", APRPercentage: testutil.Float(29.99)},
					{APRType: "purchase_apr", APRPercentage: testutil.Float(21.99)},
				},
			}},
			Student: []model.RawStudentLoan{{
				AccountID:                   "loan-1",
				OutstandingPrincipalBalance: testutil.Float(18000),
				InterestRatePercentage:      testutil.Float(5.5),
				MinimumPaymentAmount:        testutil.Float(250),
			}},
			Mortgage: []model.RawMortgage{{
				AccountID:                   "mort-1",
				OutstandingPrincipalBalance: testutil.Float(300000),
				InterestRate:                model.MortgageInterestRate{Percentage: testutil.Float(6), Type: "fixed"},
				NextMonthlyPayment:          testutil.Float(2000),
				LoanTerm:                    "30 year",
			}},
		}

		report := analytics.AggregateLiabilities(raw, liabilityAccounts(), now)

		if report.CreditCards[0].Name != "Sapphire Preferred" {
			t.Errorf("Expected joined card name, got %q", report.CreditCards[0].Name)
		}
		if rate := report.CreditCards[0].InterestRate; rate == nil || *rate != 21.99 {
			t.Errorf("Expected purchase APR 21.99, got %v", rate)
		}
		if report.Mortgages[0].Name != "Mortgage account mort-1" {
			t.Errorf("Expected placeholder name, got %q", report.Mortgages[0].Name)
		}

		if _, ok := report.PayoffPredictions["loan-1"]; !ok {
			t.Error("Expected a payoff prediction for the student loan")
		}
		if _, ok := report.PayoffPredictions["mort-1"]; !ok {
			t.Error("Expected a payoff prediction for the mortgage")
		}
		if _, ok := report.PayoffPredictions["card-1"]; ok {
			t.Error("Expected no payoff prediction for a revolving card")
		}

		s := report.Summary
		if s.TotalBalance != 320400 {
			t.Errorf("Expected total balance 320400, got %.2f", s.TotalBalance)
		}
		if s.TotalMinimumPayment != 2310 {
			t.Errorf("Expected total minimum payment 2310, got %.2f", s.TotalMinimumPayment)
		}
		if s.AverageInterestRate != 11.16 {
			t.Errorf("Expected average rate 11.16, got %.2f", s.AverageInterestRate)
		}
		if !s.HasMortgage || !s.HasCreditCards || !s.HasLoans {
			t.Errorf("Expected all has_* flags true, got %+v", s)
		}
	})

	t.Run("excludes unrated instruments from the average rate", func(t *testing.T) {
		raw := model.RawLiabilities{
			Credit: []model.RawCreditCard{
				{AccountID: "card-1", LastStatementBalance: testutil.Float(1000), APRs: []model.APR{{APRType: "purchase_apr", APRPercentage: testutil.Float(20)}}},
				{AccountID: "card-2", LastStatementBalance: testutil.Float(500)},
			},
		}

		report := analytics.AggregateLiabilities(raw, nil, now)

		if report.Summary.AverageInterestRate != 20 {
			t.Errorf("Expected average rate 20, got %.2f", report.Summary.AverageInterestRate)
		}
		if report.Summary.RatedInstruments != 1 {
			t.Errorf("Expected 1 rated instrument, got %d", report.Summary.RatedInstruments)
		}
		if report.CreditCards[1].InterestRate != nil {
			t.Error("Expected missing APR to stay nil")
		}
	})

	t.Run("isolates a failing projection", func(t *testing.T) {
		raw := model.RawLiabilities{
			Student: []model.RawStudentLoan{{
				AccountID:                   "loan-1",
				OutstandingPrincipalBalance: testutil.Float(18000),
				InterestRatePercentage:      testutil.Float(6),
				MinimumPaymentAmount:        testutil.Float(50),
			}},
			Mortgage: []model.RawMortgage{{
				AccountID:                   "mort-1",
				OutstandingPrincipalBalance: testutil.Float(200000),
				InterestRate:                model.MortgageInterestRate{Percentage: testutil.Float(4)},
				LastPaymentAmount:           testutil.Float(1500),
			}},
		}

		report := analytics.AggregateLiabilities(raw, liabilityAccounts(), now)

		pe, ok := report.PredictionErrors["loan-1"]
		if !ok {
			t.Fatal("Expected a prediction error for the underpaid loan")
		}
		if pe.MinimumRequired == nil || *pe.MinimumRequired != 190 {
			t.Errorf("Expected minimum required 190, got %v", pe.MinimumRequired)
		}
		if _, ok := report.PayoffPredictions["mort-1"]; !ok {
			t.Error("Expected mortgage prediction despite the failing loan")
		}
	})

	t.Run("skips projection when a fact is missing", func(t *testing.T) {
		raw := model.RawLiabilities{
			Student: []model.RawStudentLoan{{
				AccountID:                   "loan-1",
				OutstandingPrincipalBalance: testutil.Float(18000),
				MinimumPaymentAmount:        testutil.Float(250),
			}},
		}

		report := analytics.AggregateLiabilities(raw, nil, now)

		if len(report.PayoffPredictions) != 0 || len(report.PredictionErrors) != 0 {
			t.Errorf("Expected no prediction and no error, got %v / %v", report.PayoffPredictions, report.PredictionErrors)
		}
	})
}
