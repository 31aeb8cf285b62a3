package analytics

import (
	"strings"
	"time"

	"github.com/liamba05/Fynnance/internal/model"
)

const vacantStatus = "available"

// BuildMarketStats derives market statistics from sale and rental listings.
// Figures that cannot be computed from the listings are left nil.
func BuildMarketStats(zipCode, propertyType string, sale, rental []model.Listing, fetchedAt time.Time) model.MarketStats {
	stats := model.MarketStats{
		ZipCode:      zipCode,
		PropertyType: propertyType,
		SaleCount:    len(sale),
		RentalCount:  len(rental),
		Insights:     make([]string, 0, 3),
		FetchedAt:    fetchedAt,
	}

	salePrices := listingPrices(sale)
	rentPrices := listingPrices(rental)

	var daysOnMarket []float64
	for _, l := range sale {
		if l.DaysOnMarket != nil && *l.DaysOnMarket > 0 {
			daysOnMarket = append(daysOnMarket, float64(*l.DaysOnMarket))
		}
	}

	if len(salePrices) > 0 {
		stats.MedianPrice = ptr(median(salePrices))
	}
	if len(rentPrices) > 0 {
		stats.MedianRent = ptr(median(rentPrices))
	}
	if len(daysOnMarket) > 0 {
		stats.AvgDaysOnMarket = ptr(round(mean(daysOnMarket), 1))
	}

	if stats.MedianPrice != nil && stats.MedianRent != nil && *stats.MedianPrice > 0 && *stats.MedianRent > 0 {
		annualRent := *stats.MedianRent * 12
		stats.PriceToRentRatio = ptr(round(*stats.MedianPrice/annualRent, 2))
		stats.RentalYieldPct = ptr(round(annualRent*100 / *stats.MedianPrice, 2))
	}

	if len(rental) > 0 {
		var vacant int
		for _, l := range rental {
			if strings.EqualFold(l.Status, vacantStatus) {
				vacant++
			}
		}
		stats.VacancyRatePct = ptr(round(float64(vacant)/float64(len(rental))*100, 2))
	}

	stats.Insights = marketInsights(stats)
	return stats
}

func marketInsights(stats model.MarketStats) []string {
	insights := make([]string, 0, 3)

	if p := stats.PriceToRentRatio; p != nil {
		if *p > 20 {
			insights = append(insights, "Market favors renting over buying")
		} else if *p < 15 {
			insights = append(insights, "Market favors buying over renting")
		}
	}

	if d := stats.AvgDaysOnMarket; d != nil {
		if *d > 90 {
			insights = append(insights, "Slower market with longer selling times")
		} else if *d < 30 {
			insights = append(insights, "Fast-moving market with quick sales")
		}
	}

	if v := stats.VacancyRatePct; v != nil {
		if *v < 5 {
			insights = append(insights, "Very competitive rental market")
		} else if *v > 10 {
			insights = append(insights, "Higher than normal vacancy rates")
		}
	}

	return insights
}

func listingPrices(listings []model.Listing) []float64 {
	prices := make([]float64, 0, len(listings))
	for _, l := range listings {
		if l.Price != nil && *l.Price > 0 {
			prices = append(prices, *l.Price)
		}
	}
	return prices
}

func ptr[T any](v T) *T {
	return &v
}
