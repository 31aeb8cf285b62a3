package testutil

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/liamba05/Fynnance/internal/model"
)

// Float returns a pointer to v. Handy for optional numeric fields.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }

// String returns a pointer to v.
func String(v string) *string { return &v }

// Date is a shorthand for a civil date.
func Date(year int, month time.Month, day int) civil.Date {
	return civil.Date{Year: year, Month: month, Day: day}
}

// TransactionBuilder provides a fluent interface for creating test transactions.
//
// Example usage:
//
//	txn := testutil.NewTransaction().
//	    WithMerchant("Netflix").
//	    WithAmount(14.99).
//	    OnDate(testutil.Date(2026, time.January, 1)).
//	    Build()
type TransactionBuilder struct {
	txn model.Transaction
}

// NewTransaction creates a TransactionBuilder with sensible defaults.
func NewTransaction() *TransactionBuilder {
	return &TransactionBuilder{
		txn: model.Transaction{
			TransactionID: MakeID(),
			AccountID:     "acc-checking",
			Date:          Date(2026, time.January, 1),
			Name:          "TEST MERCHANT",
			Amount:        decimal.NewNullDecimal(decimal.NewFromFloat(10)),
			Category:      []string{"Shops"},
		},
	}
}

// WithName sets the raw transaction name.
func (b *TransactionBuilder) WithName(name string) *TransactionBuilder {
	b.txn.Name = name
	return b
}

// WithMerchant sets the normalized merchant name.
func (b *TransactionBuilder) WithMerchant(merchant string) *TransactionBuilder {
	b.txn.MerchantName = merchant
	return b
}

// WithAmount sets a signed amount. Positive is spend.
func (b *TransactionBuilder) WithAmount(amount float64) *TransactionBuilder {
	b.txn.Amount = decimal.NewNullDecimal(decimal.NewFromFloat(amount))
	return b
}

// WithoutAmount clears the amount, producing a malformed record.
func (b *TransactionBuilder) WithoutAmount() *TransactionBuilder {
	b.txn.Amount = decimal.NullDecimal{}
	return b
}

// OnDate sets the posting date.
func (b *TransactionBuilder) OnDate(d civil.Date) *TransactionBuilder {
	b.txn.Date = d
	return b
}

// WithCategory sets the category hierarchy, primary first.
func (b *TransactionBuilder) WithCategory(categories ...string) *TransactionBuilder {
	b.txn.Category = categories
	return b
}

// WithAccount sets the account ID.
func (b *TransactionBuilder) WithAccount(accountID string) *TransactionBuilder {
	b.txn.AccountID = accountID
	return b
}

// Build returns the transaction.
func (b *TransactionBuilder) Build() model.Transaction {
	return b.txn
}

// Series creates one charge per gap for merchant, starting at start. gaps[i] is the
// number of days between charge i and i+1 and amounts must have len(gaps)+1 entries.
//
// Example usage:
//
//	txns := testutil.Series("Netflix", testutil.Date(2026, 1, 1),
//	    []int{30, 31, 29}, []float64{14.99, 15.00, 14.98, 14.99})
func Series(merchant string, start civil.Date, gaps []int, amounts []float64) []model.Transaction {
	txns := make([]model.Transaction, 0, len(amounts))
	d := start
	for i, amount := range amounts {
		if i > 0 {
			d = d.AddDays(gaps[i-1])
		}
		txns = append(txns, NewTransaction().
			WithMerchant(merchant).
			WithName(merchant).
			WithAmount(amount).
			OnDate(d).
			WithCategory("Service", "Subscription").
			Build())
	}
	return txns
}

// MarketStatsBuilder provides a fluent interface for creating market statistics.
type MarketStatsBuilder struct {
	stats model.MarketStats
}

// NewMarketStats creates a MarketStatsBuilder for a mid-priced market:
// median price 400000, median rent 2500, vacancy 5%.
func NewMarketStats() *MarketStatsBuilder {
	return &MarketStatsBuilder{
		stats: model.MarketStats{
			ZipCode:          "94103",
			PropertyType:     "Single Family",
			MedianPrice:      Float(400000),
			MedianRent:       Float(2500),
			PriceToRentRatio: Float(13.33),
			RentalYieldPct:   Float(7.5),
			AvgDaysOnMarket:  Float(35),
			VacancyRatePct:   Float(5),
			Insights:         []string{},
		},
	}
}

// WithMedianPrice sets the median sale price; nil clears it.
func (b *MarketStatsBuilder) WithMedianPrice(v *float64) *MarketStatsBuilder {
	b.stats.MedianPrice = v
	return b
}

// WithRentalYield sets the market rental yield in percent; nil clears it.
func (b *MarketStatsBuilder) WithRentalYield(v *float64) *MarketStatsBuilder {
	b.stats.RentalYieldPct = v
	return b
}

// WithPriceToRent sets the market price-to-rent ratio; nil clears it.
func (b *MarketStatsBuilder) WithPriceToRent(v *float64) *MarketStatsBuilder {
	b.stats.PriceToRentRatio = v
	return b
}

// WithVacancy sets the vacancy rate in percent; nil clears it.
func (b *MarketStatsBuilder) WithVacancy(v *float64) *MarketStatsBuilder {
	b.stats.VacancyRatePct = v
	return b
}

// Build returns the market statistics.
func (b *MarketStatsBuilder) Build() model.MarketStats {
	return b.stats
}

// NewListing creates a listing with the given price and bedroom count.
func NewListing(address string, price, beds float64) model.Listing {
	dom := 14
	return model.Listing{
		ID:            MakeID(),
		AddressLine1:  address,
		City:          "San Francisco",
		State:         "CA",
		ZipCode:       "94103",
		Price:         Float(price),
		Bedrooms:      Float(beds),
		Bathrooms:     Float(1),
		SquareFootage: Float(900),
		DaysOnMarket:  &dom,
		Status:        "Active",
	}
}
