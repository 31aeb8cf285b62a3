package analytics_test

import (
	"slices"
	"testing"
	"time"

	"github.com/liamba05/Fynnance/internal/analytics"
	"github.com/liamba05/Fynnance/internal/model"
	"github.com/liamba05/Fynnance/internal/testutil"
)

// TestBuildMarketStats tests market statistics derived from listings.
//
// WHY: Missing market data must surface as nil, never as a zero that looks like a real
// median or vacancy rate.
func TestBuildMarketStats(t *testing.T) {
	fetchedAt := time.Date(2026, time.May, 1, 12, 0, 0, 0, time.UTC)

	t.Run("computes medians, ratios and insights", func(t *testing.T) {
		sale := []model.Listing{
			testutil.NewListing("1 Main St", 300000, 3),
			testutil.NewListing("2 Main St", 500000, 3),
			testutil.NewListing("3 Main St", 400000, 3),
		}
		for i, dom := range []int{10, 20, 30} {
			d := dom
			sale[i].DaysOnMarket = &d
		}
		rental := []model.Listing{
			testutil.NewListing("10 Oak Ave", 2000, 2),
			testutil.NewListing("11 Oak Ave", 3000, 2),
			testutil.NewListing("12 Oak Ave", 2500, 2),
		}
		rental[0].Status = "Available"

		stats := analytics.BuildMarketStats("94103", "Single Family", sale, rental, fetchedAt)

		if stats.MedianPrice == nil || *stats.MedianPrice != 400000 {
			t.Errorf("Expected median price 400000, got %v", stats.MedianPrice)
		}
		if stats.MedianRent == nil || *stats.MedianRent != 2500 {
			t.Errorf("Expected median rent 2500, got %v", stats.MedianRent)
		}
		if stats.PriceToRentRatio == nil || *stats.PriceToRentRatio != 13.33 {
			t.Errorf("Expected price-to-rent 13.33, got %v", stats.PriceToRentRatio)
		}
		if stats.RentalYieldPct == nil || *stats.RentalYieldPct != 7.5 {
			t.Errorf("Expected rental yield 7.5, got %v", stats.RentalYieldPct)
		}
		if stats.AvgDaysOnMarket == nil || *stats.AvgDaysOnMarket != 20 {
			t.Errorf("Expected avg days on market 20, got %v", stats.AvgDaysOnMarket)
		}
		if stats.VacancyRatePct == nil || *stats.VacancyRatePct != 33.33 {
			t.Errorf("Expected vacancy 33.33, got %v", stats.VacancyRatePct)
		}

		for _, want := range []string{
			"Market favors buying over renting",
			"Fast-moving market with quick sales",
			"Higher than normal vacancy rates",
		} {
			if !slices.Contains(stats.Insights, want) {
				t.Errorf("Expected insight %q in %v", want, stats.Insights)
			}
		}
	})

	t.Run("leaves figures nil without listings", func(t *testing.T) {
		stats := analytics.BuildMarketStats("94103", "Condo", nil, nil, fetchedAt)

		if stats.MedianPrice != nil || stats.MedianRent != nil || stats.PriceToRentRatio != nil ||
			stats.RentalYieldPct != nil || stats.AvgDaysOnMarket != nil || stats.VacancyRatePct != nil {
			t.Errorf("Expected all figures nil, got %+v", stats)
		}
		if stats.Insights == nil || len(stats.Insights) != 0 {
			t.Errorf("Expected empty insights, got %v", stats.Insights)
		}
	})
}
