package model

import (
	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// Transaction is a single posted bank or card transaction as delivered by a data source.
//
// Sign convention: a positive Amount is money leaving the account (spend), a negative
// Amount is money coming in (income, refunds). This matches the Plaid convention.
// Amount is a NullDecimal so a record with no amount can be told apart from a zero amount.
type Transaction struct {
	TransactionID string              `json:"transactionId,omitempty"`
	AccountID     string              `json:"accountId,omitempty"`
	Date          civil.Date          `json:"date"`
	Name          string              `json:"name"`
	MerchantName  string              `json:"merchantName,omitempty"`
	Amount        decimal.NullDecimal `json:"amount"`
	Category      []string            `json:"category"`
}

// PrimaryCategory returns the first category or "uncategorized" when none is set.
func (t Transaction) PrimaryCategory() string {
	if len(t.Category) == 0 || t.Category[0] == "" {
		return "uncategorized"
	}
	return t.Category[0]
}

// MerchantKey returns the identity transactions are grouped under: the normalized
// merchant name when present, else the raw transaction name.
func (t Transaction) MerchantKey() string {
	if t.MerchantName != "" {
		return t.MerchantName
	}
	return t.Name
}

// TransactionSummary aggregates spend and income over a transaction window.
// Values follow the Transaction sign convention.
type TransactionSummary struct {
	TotalSpending    float64 `json:"totalSpending"`
	TotalIncome      float64 `json:"totalIncome"`
	NetCashFlow      float64 `json:"netCashFlow"`
	TransactionCount int     `json:"transactionCount"`
}
