package analytics

import (
	"sort"
	"strings"

	"github.com/liamba05/Fynnance/internal/model"
)

const (
	maxWithinBudget = 8
	maxAboveBudget  = 4
	maxListings     = maxWithinBudget + maxAboveBudget
)

// SelectListings picks a balanced set of listings around a budget.
//
// Listings with fewer than minBeds bedrooms or without a price are dropped. With a
// budget, up to 8 of the cheapest listings within it are followed by up to 4 above
// it; without one the 12 cheapest are returned. The price range quartiles cover every
// listing that passed the filter, not only the selected ones.
func SelectListings(listings []model.Listing, maxPrice *float64, minBeds float64) model.ListingSearch {
	pool := make([]model.Listing, 0, len(listings))
	for _, l := range listings {
		if l.Price == nil || *l.Price <= 0 {
			continue
		}
		beds := 0.0
		if l.Bedrooms != nil {
			beds = *l.Bedrooms
		}
		if beds < minBeds {
			continue
		}
		pool = append(pool, l)
	}
	sort.SliceStable(pool, func(i, j int) bool { return *pool[i].Price < *pool[j].Price })

	budget := maxPrice
	if budget != nil && *budget <= 0 {
		budget = nil
	}

	var selected []model.Listing
	if budget == nil {
		selected = pool[:min(len(pool), maxListings)]
	} else {
		within := make([]model.Listing, 0, maxWithinBudget)
		above := make([]model.Listing, 0, maxAboveBudget)
		for _, l := range pool {
			if *l.Price <= *budget {
				if len(within) < maxWithinBudget {
					within = append(within, l)
				}
			} else if len(above) < maxAboveBudget {
				above = append(above, l)
			}
		}
		selected = append(within, above...)
	}

	search := model.ListingSearch{
		MarketContext: model.ListingMarketContext{
			TotalListings: len(selected),
			MaxPrice:      budget,
		},
		Listings: make([]model.ListingSummary, 0, len(selected)),
	}

	if len(pool) > 0 {
		prices := listingPrices(pool)
		search.MarketContext.PriceRange = &model.PriceRange{
			Low:    round(percentile(prices, 25), 2),
			Median: round(percentile(prices, 50), 2),
			High:   round(percentile(prices, 75), 2),
		}
	}

	affordable := 0
	for _, l := range selected {
		within := budget == nil || *l.Price <= *budget
		if budget != nil && within {
			affordable++
		}
		search.Listings = append(search.Listings, model.ListingSummary{
			Address:      listingAddress(l),
			Price:        *l.Price,
			Bedrooms:     l.Bedrooms,
			Bathrooms:    l.Bathrooms,
			SquareFeet:   l.SquareFootage,
			DaysOnMarket: l.DaysOnMarket,
			WithinBudget: within,
		})
	}
	if budget != nil {
		search.MarketContext.AffordableCount = &affordable
	}

	return search
}

func listingAddress(l model.Listing) string {
	if l.AddressLine1 == "" && l.FormattedAddr != "" {
		return l.FormattedAddr
	}
	parts := make([]string, 0, 2)
	for _, p := range []string{l.AddressLine1, l.City} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
