package yahoo

import (
	"time"

	"cloud.google.com/go/civil"
)

// Response represents the raw JSON response of the Yahoo Finance chart API.
// Price arrays hold nulls for sessions without trades, hence the pointers.
type Response struct {
	Chart Chart `json:"chart"`
}

// Chart is the top-level chart object of a Response.
type Chart struct {
	Result []Result `json:"result"`
	Error  *Error   `json:"error"`
}

// Error is the error object Yahoo returns for unknown symbols.
type Error struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// Result holds the series of one symbol.
type Result struct {
	Meta       Meta    `json:"meta"`
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []QuoteSeries `json:"quote"`
	} `json:"indicators"`
}

// Meta describes the symbol.
type Meta struct {
	Currency         string `json:"currency"`
	Symbol           string `json:"symbol"`
	ExchangeName     string `json:"exchangeName"`
	FullExchangeName string `json:"fullExchangeName"`
	LongName         string `json:"longName"`
	Shortname        string `json:"shortName"`
}

// QuoteSeries holds the OHLCV arrays, aligned with Result.Timestamp.
type QuoteSeries struct {
	Open   []*float64 `json:"open"`
	Close  []*float64 `json:"close"`
	Volume []*int64   `json:"volume"`
	High   []*float64 `json:"high"`
	Low    []*float64 `json:"low"`
}

// PriceChart is the parsed form of a Response.
type PriceChart struct {
	Currency         string       `json:"currency"`
	Symbol           string       `json:"symbol"`
	ExchangeName     string       `json:"exchangeName"`
	FullExchangeName string       `json:"fullExchangeName"`
	LongName         string       `json:"longName"`
	Shortname        string       `json:"shortName"`
	Indicators       []Indicators `json:"indicators"`
}

// Indicators is one trading day. Days without a close are skipped during parsing.
type Indicators struct {
	Date       time.Time
	PriceOpen  float64
	PriceClose float64
	Volume     int64
	PriceHigh  float64
	PriceLow   float64
}

// Quote is the most recent close of a symbol.
type Quote struct {
	Symbol   string     `json:"symbol"`
	Currency string     `json:"currency"`
	Price    float64    `json:"price"`
	Date     civil.Date `json:"date"`
}
