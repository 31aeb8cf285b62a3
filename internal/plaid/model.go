package plaid

import (
	"fmt"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/liamba05/Fynnance/internal/model"
)

// Error codes Plaid returns for items that have no liability data (yet).
const (
	CodeNoLiabilityAccounts = "NO_LIABILITY_ACCOUNTS"
	CodeProductNotReady     = "PRODUCT_NOT_READY"
)

// APIError is the error object Plaid returns with a non-2xx status.
type APIError struct {
	StatusCode     int    `json:"-"`
	ErrorType      string `json:"error_type"`
	ErrorCode      string `json:"error_code"`
	ErrorMessage   string `json:"error_message"`
	DisplayMessage string `json:"display_message"`
	RequestID      string `json:"request_id"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("plaid %s %s (status %d): %s", e.ErrorType, e.ErrorCode, e.StatusCode, e.ErrorMessage)
}

type account struct {
	AccountID    string  `json:"account_id"`
	Name         string  `json:"name"`
	OfficialName *string `json:"official_name"`
	Mask         *string `json:"mask"`
	Type         string  `json:"type"`
	Subtype      *string `json:"subtype"`
	Balances     struct {
		Available       *float64 `json:"available"`
		Current         *float64 `json:"current"`
		IsoCurrencyCode *string  `json:"iso_currency_code"`
	} `json:"balances"`
}

type accountsResponse struct {
	Accounts  []account `json:"accounts"`
	RequestID string    `json:"request_id"`
}

type holding struct {
	AccountID        string   `json:"account_id"`
	SecurityID       string   `json:"security_id"`
	InstitutionPrice float64  `json:"institution_price"`
	InstitutionValue *float64 `json:"institution_value"`
	CostBasis        *float64 `json:"cost_basis"`
	Quantity         float64  `json:"quantity"`
}

type security struct {
	SecurityID   string  `json:"security_id"`
	Name         *string `json:"name"`
	TickerSymbol *string `json:"ticker_symbol"`
	Type         *string `json:"type"`
}

type holdingsResponse struct {
	Accounts   []account  `json:"accounts"`
	Holdings   []holding  `json:"holdings"`
	Securities []security `json:"securities"`
}

type transaction struct {
	TransactionID string              `json:"transaction_id"`
	AccountID     string              `json:"account_id"`
	Amount        decimal.NullDecimal `json:"amount"`
	Date          civil.Date          `json:"date"`
	Name          string              `json:"name"`
	MerchantName  *string             `json:"merchant_name"`
	Category      []string            `json:"category"`
}

type transactionsResponse struct {
	Transactions      []transaction `json:"transactions"`
	TotalTransactions int           `json:"total_transactions"`
}

type liabilitiesResponse struct {
	Accounts    []account            `json:"accounts"`
	Liabilities model.RawLiabilities `json:"liabilities"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func toAccount(a account) model.Account {
	return model.Account{
		AccountID:        a.AccountID,
		Name:             a.Name,
		OfficialName:     deref(a.OfficialName),
		Mask:             deref(a.Mask),
		Type:             a.Type,
		Subtype:          deref(a.Subtype),
		CurrentBalance:   a.Balances.Current,
		AvailableBalance: a.Balances.Available,
		CurrencyCode:     deref(a.Balances.IsoCurrencyCode),
	}
}

func toAccounts(raw []account) []model.Account {
	out := make([]model.Account, 0, len(raw))
	for _, a := range raw {
		out = append(out, toAccount(a))
	}
	return out
}

func toTransactions(raw []transaction) []model.Transaction {
	out := make([]model.Transaction, 0, len(raw))
	for _, t := range raw {
		out = append(out, model.Transaction{
			TransactionID: t.TransactionID,
			AccountID:     t.AccountID,
			Date:          t.Date,
			Name:          t.Name,
			MerchantName:  deref(t.MerchantName),
			Amount:        t.Amount,
			Category:      t.Category,
		})
	}
	return out
}
