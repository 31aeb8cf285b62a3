package model

import "time"

// FinancialProfile is the consolidated view of a user's accounts, holdings,
// liabilities, transactions and recurring payments.
// Liabilities and Recurring are nil when their section could not be built; a
// warning names the section.
type FinancialProfile struct {
	UserID             string             `json:"userId"`
	Accounts           []Account          `json:"accounts"`
	BalancesByType     map[string]float64 `json:"balancesByType"`
	Investments        []Holding          `json:"investments"`
	Liabilities        *LiabilityReport   `json:"liabilities"`
	Transactions       []Transaction      `json:"transactions"`
	TransactionSummary TransactionSummary `json:"transactionSummary"`
	Recurring          *RecurringAnalysis `json:"recurring"`
	Warnings           []string           `json:"warnings,omitempty"`
	GeneratedAt        time.Time          `json:"generatedAt"`
}
