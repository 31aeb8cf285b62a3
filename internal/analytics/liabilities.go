package analytics

import (
	"errors"
	"fmt"
	"time"

	"github.com/liamba05/Fynnance/internal/apperrors"
	"github.com/liamba05/Fynnance/internal/model"
)

const purchaseAPRType = "purchase_apr"

var kindLabels = map[model.LiabilityKind]string{
	model.LiabilityCreditCard:  "Credit card",
	model.LiabilityStudentLoan: "Student loan",
	model.LiabilityMortgage:    "Mortgage",
}

// AggregateLiabilities normalizes provider liability records, attaches account names,
// projects the payoff of every loan and mortgage that reports a balance, rate and
// payment, and totals the result.
//
// A failed projection is recorded in PredictionErrors under the account ID and does
// not affect the other instruments. Empty input produces a zeroed summary.
func AggregateLiabilities(raw model.RawLiabilities, accounts []model.Account, now time.Time) model.LiabilityReport {
	names := make(map[string]string, len(accounts))
	for _, a := range accounts {
		if a.Name != "" {
			names[a.AccountID] = a.Name
		} else if a.OfficialName != "" {
			names[a.AccountID] = a.OfficialName
		}
	}

	report := model.LiabilityReport{
		CreditCards:       make([]model.Liability, 0, len(raw.Credit)),
		StudentLoans:      make([]model.Liability, 0, len(raw.Student)),
		Mortgages:         make([]model.Liability, 0, len(raw.Mortgage)),
		PayoffPredictions: make(map[string]model.LoanPrediction),
		PredictionErrors:  make(map[string]model.PredictionError),
	}

	for _, c := range raw.Credit {
		report.CreditCards = append(report.CreditCards, model.Liability{
			AccountID:      c.AccountID,
			Name:           accountName(names, model.LiabilityCreditCard, c.AccountID, ""),
			Kind:           model.LiabilityCreditCard,
			Balance:        c.LastStatementBalance,
			InterestRate:   purchaseAPR(c.APRs),
			MinimumPayment: c.MinimumPaymentAmount,
			LastPayment:    c.LastPaymentAmount,
			NextDueDate:    c.NextPaymentDueDate,
			IsOverdue:      c.IsOverdue != nil && *c.IsOverdue,
		})
	}

	for _, s := range raw.Student {
		report.StudentLoans = append(report.StudentLoans, model.Liability{
			AccountID:       s.AccountID,
			Name:            accountName(names, model.LiabilityStudentLoan, s.AccountID, s.LoanName),
			Kind:            model.LiabilityStudentLoan,
			Balance:         s.OutstandingPrincipalBalance,
			InterestRate:    s.InterestRatePercentage,
			MinimumPayment:  s.MinimumPaymentAmount,
			LastPayment:     s.LastPaymentAmount,
			NextDueDate:     s.NextPaymentDueDate,
			IsOverdue:       s.IsOverdue != nil && *s.IsOverdue,
			OriginationDate: s.OriginationDate,
			MaturityDate:    s.ExpectedPayoffDate,
		})
	}

	for _, m := range raw.Mortgage {
		payment := m.NextMonthlyPayment
		if payment == nil {
			payment = m.LastPaymentAmount
		}
		report.Mortgages = append(report.Mortgages, model.Liability{
			AccountID:       m.AccountID,
			Name:            accountName(names, model.LiabilityMortgage, m.AccountID, ""),
			Kind:            model.LiabilityMortgage,
			Balance:         m.OutstandingPrincipalBalance,
			InterestRate:    m.InterestRate.Percentage,
			MinimumPayment:  payment,
			LastPayment:     m.LastPaymentAmount,
			NextDueDate:     m.NextPaymentDueDate,
			IsOverdue:       m.PastDueAmount != nil && *m.PastDueAmount > 0,
			LoanTerm:        m.LoanTerm,
			RateType:        m.InterestRate.Type,
			OriginationDate: m.OriginationDate,
			MaturityDate:    m.MaturityDate,
		})
	}

	for _, group := range [][]model.Liability{report.StudentLoans, report.Mortgages} {
		for _, l := range group {
			facts := l.Facts()
			if !facts.Complete() {
				continue
			}
			prediction, err := Project(*facts.CurrentBalance, *facts.InterestRate, *facts.MinimumPayment, now)
			if err != nil {
				report.PredictionErrors[l.AccountID] = predictionError(err)
				continue
			}
			report.PayoffPredictions[l.AccountID] = prediction
		}
	}

	report.Summary = summarizeLiabilities(report)
	return report
}

func summarizeLiabilities(report model.LiabilityReport) model.LiabilitySummary {
	summary := model.LiabilitySummary{
		CreditCardCount:  len(report.CreditCards),
		StudentLoanCount: len(report.StudentLoans),
		MortgageCount:    len(report.Mortgages),
		HasCreditCards:   len(report.CreditCards) > 0,
		HasLoans:         len(report.StudentLoans) > 0,
		HasMortgage:      len(report.Mortgages) > 0,
	}

	var rateSum float64
	for _, group := range [][]model.Liability{report.CreditCards, report.StudentLoans, report.Mortgages} {
		for _, l := range group {
			if l.Balance != nil && isFinite(*l.Balance) {
				summary.TotalBalance += *l.Balance
			}
			if l.MinimumPayment != nil && isFinite(*l.MinimumPayment) {
				summary.TotalMinimumPayment += *l.MinimumPayment
			}
			if l.InterestRate != nil && isFinite(*l.InterestRate) {
				rateSum += *l.InterestRate
				summary.RatedInstruments++
			}
		}
	}

	summary.TotalBalance = round(summary.TotalBalance, 2)
	summary.TotalMinimumPayment = round(summary.TotalMinimumPayment, 2)
	if summary.RatedInstruments > 0 {
		summary.AverageInterestRate = round(rateSum/float64(summary.RatedInstruments), 2)
	}
	return summary
}

func accountName(names map[string]string, kind model.LiabilityKind, accountID, fallback string) string {
	if name, ok := names[accountID]; ok {
		return name
	}
	if fallback != "" {
		return fallback
	}
	return fmt.Sprintf("%s account %s", kindLabels[kind], accountID)
}

// purchaseAPR returns the purchase APR of a card, or nil when the card reports none.
func purchaseAPR(aprs []model.APR) *float64 {
	for _, apr := range aprs {
		if apr.APRType == purchaseAPRType && apr.APRPercentage != nil {
			v := *apr.APRPercentage
			return &v
		}
	}
	return nil
}

func predictionError(err error) model.PredictionError {
	pe := model.PredictionError{Error: err.Error()}
	var insufficient *apperrors.InsufficientPaymentError
	if errors.As(err, &insufficient) {
		minimum := insufficient.MinimumRequired
		pe.MinimumRequired = &minimum
	}
	return pe
}
