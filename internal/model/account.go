package model

// Account is a bank, card, loan or investment account held at an institution.
type Account struct {
	AccountID        string   `json:"accountId"`
	Name             string   `json:"name"`
	OfficialName     string   `json:"officialName,omitempty"`
	Mask             string   `json:"mask,omitempty"`
	Type             string   `json:"type"`
	Subtype          string   `json:"subtype,omitempty"`
	CurrentBalance   *float64 `json:"currentBalance"`
	AvailableBalance *float64 `json:"availableBalance"`
	CurrencyCode     string   `json:"currencyCode,omitempty"`
}

// Holding is an investment position enriched with its security details.
type Holding struct {
	AccountID   string   `json:"accountId"`
	SecurityID  string   `json:"securityId"`
	Name        string   `json:"name"`
	Ticker      string   `json:"ticker,omitempty"`
	Type        string   `json:"type,omitempty"`
	Quantity    float64  `json:"quantity"`
	Price       float64  `json:"price"`
	Value       float64  `json:"value"`
	CostBasis   *float64 `json:"costBasis"`
	GainLoss    *float64 `json:"gainLoss"`
	GainLossPct *float64 `json:"gainLossPct"`
	MarketPrice *float64 `json:"marketPrice,omitempty"`
	MarketValue *float64 `json:"marketValue,omitempty"`
}
