package model

import (
	"time"

	"cloud.google.com/go/civil"
)

// Frequency describes how often a recurring payment occurs.
type Frequency string

const (
	FrequencyWeekly    Frequency = "weekly"
	FrequencyBiweekly  Frequency = "biweekly"
	FrequencyMonthly   Frequency = "monthly"
	FrequencyQuarterly Frequency = "quarterly"
	FrequencyUnknown   Frequency = "unknown"
)

// PaymentObservation is one dated, absolute-valued payment inside a merchant group.
type PaymentObservation struct {
	Date     civil.Date `json:"date"`
	Amount   float64    `json:"amount"`
	Category string     `json:"category,omitempty"`
}

// RecurringPayment is a merchant group that passed the amount and interval consistency test.
type RecurringPayment struct {
	Name                string               `json:"name"`
	Amount              float64              `json:"amount"`
	Frequency           Frequency            `json:"frequency"`
	Category            string               `json:"category"`
	LastPayment         civil.Date           `json:"lastPayment"`
	NextPayment         civil.Date           `json:"nextPayment"`
	Confidence          float64              `json:"confidence"`
	Occurrences         int                  `json:"occurrences"`
	AverageIntervalDays float64              `json:"averageIntervalDays"`
	AmountVariation     float64              `json:"amountVariation"`   // coefficient of variation of amounts
	IntervalVariation   float64              `json:"intervalVariation"` // coefficient of variation of day gaps
	AmountConsistency   float64              `json:"amountConsistency"`
	TimingConsistency   float64              `json:"timingConsistency"`
	PaymentHistory      []PaymentObservation `json:"paymentHistory"`
}

// RecurringCategoryTotal is the monthly total of high-confidence payments in one category.
type RecurringCategoryTotal struct {
	MonthlyTotal float64 `json:"monthlyTotal"`
	Percentage   float64 `json:"percentage"`
}

// RecurringSummary summarizes the detected payments.
type RecurringSummary struct {
	TotalMonthlyRecurring  float64                           `json:"totalMonthlyRecurring"`
	TotalPaymentsDetected  int                               `json:"totalPaymentsDetected"`
	HighConfidencePayments int                               `json:"highConfidencePayments"`
	Categories             map[string]RecurringCategoryTotal `json:"categories"`
}

// AnalysisWindow describes the transaction window an analysis ran over.
type AnalysisWindow struct {
	AnalysisPeriodDays int        `json:"analysisPeriodDays"`
	StartDate          civil.Date `json:"startDate"`
	EndDate            civil.Date `json:"endDate"`
	GeneratedAt        time.Time  `json:"generatedAt"`
}

// RecurringAnalysis is the output of recurring payment detection.
type RecurringAnalysis struct {
	RecurringPayments []RecurringPayment `json:"recurringPayments"`
	Summary           RecurringSummary   `json:"summary"`
	Metadata          *AnalysisWindow    `json:"metadata,omitempty"`
}
