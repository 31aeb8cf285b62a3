package analytics

import (
	"fmt"
	"sort"

	"cloud.google.com/go/civil"

	"github.com/liamba05/Fynnance/internal/apperrors"
	"github.com/liamba05/Fynnance/internal/model"
)

// Thresholds of the consistency test. Fixtures in recurring_test.go are derived from them.
const (
	maxAmountVariation   = 0.1
	maxIntervalVariation = 0.3

	// HighConfidence is the confidence at or above which a payment counts toward summary totals.
	HighConfidence = 0.7

	recencyWindowDays      = 180
	fullHistoryOccurrences = 12
	paymentHistoryLength   = 3
	daysPerMonth           = 30
)

type frequencyBand struct {
	minDays   float64
	maxDays   float64
	frequency model.Frequency
}

// frequencyBands are evaluated in order with inclusive bounds.
var frequencyBands = []frequencyBand{
	{25, 35, model.FrequencyMonthly},
	{5, 9, model.FrequencyWeekly},
	{12, 16, model.FrequencyBiweekly},
	{85, 95, model.FrequencyQuarterly},
}

// ClassifyFrequency maps a mean payment interval in days to a frequency.
func ClassifyFrequency(avgIntervalDays float64) model.Frequency {
	for _, band := range frequencyBands {
		if avgIntervalDays >= band.minDays && avgIntervalDays <= band.maxDays {
			return band.frequency
		}
	}
	return model.FrequencyUnknown
}

// DetectRecurring finds recurring payments in a transaction stream.
//
// Transactions are grouped by merchant, and a group is recurring when both its amounts
// and its day gaps are consistent. asOf is the reference date for recency scoring.
// A transaction without a date or amount fails the whole call with an
// *apperrors.InvalidInputError; sparse data just yields an empty result.
// The output does not depend on input order.
func DetectRecurring(txns []model.Transaction, asOf civil.Date) (model.RecurringAnalysis, error) {
	groups := make(map[string][]model.PaymentObservation)

	for i, t := range txns {
		if !t.Date.IsValid() {
			return model.RecurringAnalysis{}, apperrors.NewInvalidInput(fmt.Sprintf("transactions[%d].date", i), "is missing or not a calendar date")
		}
		if !t.Amount.Valid {
			return model.RecurringAnalysis{}, apperrors.NewInvalidInput(fmt.Sprintf("transactions[%d].amount", i), "is missing")
		}

		key := t.MerchantKey()
		if key == "" {
			continue
		}
		groups[key] = append(groups[key], model.PaymentObservation{
			Date:     t.Date,
			Amount:   t.Amount.Decimal.Abs().InexactFloat64(),
			Category: t.PrimaryCategory(),
		})
	}

	payments := make([]model.RecurringPayment, 0)
	for name, observations := range groups {
		if len(observations) < 2 {
			continue
		}
		if p, ok := evaluateGroup(name, observations, asOf); ok {
			payments = append(payments, p)
		}
	}

	sort.SliceStable(payments, func(i, j int) bool {
		if payments[i].Confidence != payments[j].Confidence {
			return payments[i].Confidence > payments[j].Confidence
		}
		return payments[i].Name < payments[j].Name
	})

	return model.RecurringAnalysis{
		RecurringPayments: payments,
		Summary:           SummarizeRecurring(payments),
	}, nil
}

func evaluateGroup(name string, obs []model.PaymentObservation, asOf civil.Date) (model.RecurringPayment, bool) {
	sortObservations(obs)

	amounts := make([]float64, len(obs))
	for i, o := range obs {
		amounts[i] = o.Amount
	}
	intervals := make([]float64, len(obs)-1)
	for i := 1; i < len(obs); i++ {
		intervals[i-1] = float64(obs[i].Date.DaysSince(obs[i-1].Date))
	}

	amountCV := coefficientOfVariation(amounts)
	intervalCV := coefficientOfVariation(intervals)
	if !(amountCV < maxAmountVariation && intervalCV < maxIntervalVariation) {
		return model.RecurringPayment{}, false
	}

	avgInterval := mean(intervals)
	last := obs[len(obs)-1]

	amountConsistency := 1 - min(amountCV, 1)
	timingConsistency := 1 - min(intervalCV, 1)
	occurrenceScore := min(float64(len(obs))/fullHistoryOccurrences, 1)
	recencyScore := clamp01(1 - float64(asOf.DaysSince(last.Date))/recencyWindowDays)

	confidence := clamp01(0.4*amountConsistency + 0.3*timingConsistency + 0.2*occurrenceScore + 0.1*recencyScore)

	start := len(obs) - paymentHistoryLength
	if start < 0 {
		start = 0
	}
	history := make([]model.PaymentObservation, 0, paymentHistoryLength)
	for _, o := range obs[start:] {
		history = append(history, model.PaymentObservation{Date: o.Date, Amount: round(o.Amount, 2)})
	}

	return model.RecurringPayment{
		Name:                name,
		Amount:              round(mean(amounts), 2),
		Frequency:           ClassifyFrequency(avgInterval),
		Category:            obs[0].Category,
		LastPayment:         last.Date,
		NextPayment:         last.Date.AddDays(int(round(avgInterval, 0))),
		Confidence:          round(confidence, 3),
		Occurrences:         len(obs),
		AverageIntervalDays: round(avgInterval, 1),
		AmountVariation:     round(amountCV, 4),
		IntervalVariation:   round(intervalCV, 4),
		AmountConsistency:   round(amountConsistency, 3),
		TimingConsistency:   round(timingConsistency, 3),
		PaymentHistory:      history,
	}, true
}

// sortObservations orders by date, then amount, then category so the result is a
// function of the multiset of observations only.
func sortObservations(obs []model.PaymentObservation) {
	sort.Slice(obs, func(i, j int) bool {
		a, b := obs[i], obs[j]
		if a.Date != b.Date {
			return a.Date.Before(b.Date)
		}
		if a.Amount != b.Amount {
			return a.Amount < b.Amount
		}
		return a.Category < b.Category
	})
}

// SummarizeRecurring totals the high-confidence payments by category and as a
// monthly-equivalent run rate. payments must already be in their final order.
func SummarizeRecurring(payments []model.RecurringPayment) model.RecurringSummary {
	summary := model.RecurringSummary{
		TotalPaymentsDetected: len(payments),
		Categories:            make(map[string]model.RecurringCategoryTotal),
	}

	categoryTotals := make(map[string]float64)
	categoryOrder := make([]string, 0)
	var categorySum, monthly float64

	for _, p := range payments {
		if p.Confidence < HighConfidence {
			continue
		}
		summary.HighConfidencePayments++

		if _, seen := categoryTotals[p.Category]; !seen {
			categoryOrder = append(categoryOrder, p.Category)
		}
		categoryTotals[p.Category] += p.Amount
		categorySum += p.Amount

		if p.AverageIntervalDays > 0 {
			monthly += p.Amount * (daysPerMonth / p.AverageIntervalDays)
		}
	}

	for _, category := range categoryOrder {
		total := categoryTotals[category]
		var pct float64
		if categorySum > 0 {
			pct = round(total/categorySum*100, 1)
		}
		summary.Categories[category] = model.RecurringCategoryTotal{
			MonthlyTotal: round(total, 2),
			Percentage:   pct,
		}
	}
	summary.TotalMonthlyRecurring = round(monthly, 2)

	return summary
}
