package model

import "time"

// Listing is a sale or rental listing returned by the market data provider.
type Listing struct {
	ID             string   `json:"id"`
	FormattedAddr  string   `json:"formattedAddress"`
	AddressLine1   string   `json:"addressLine1"`
	City           string   `json:"city,omitempty"`
	State          string   `json:"state,omitempty"`
	ZipCode        string   `json:"zipCode,omitempty"`
	PropertyType   string   `json:"propertyType,omitempty"`
	Price          *float64 `json:"price"`
	Bedrooms       *float64 `json:"bedrooms"`
	Bathrooms      *float64 `json:"bathrooms"`
	SquareFootage  *float64 `json:"squareFootage"`
	DaysOnMarket   *int     `json:"daysOnMarket"`
	Status         string   `json:"status,omitempty"`
	ListedDate     string   `json:"listedDate,omitempty"`
	LastSeenOnDate string   `json:"lastSeenDate,omitempty"`
}

// MarketStats summarizes a (zip code, property type) market. A nil field means the
// provider returned no data for it, never zero.
type MarketStats struct {
	ZipCode          string    `json:"zipCode"`
	PropertyType     string    `json:"propertyType"`
	MedianPrice      *float64  `json:"medianPrice"`
	MedianRent       *float64  `json:"medianRent"`
	PriceToRentRatio *float64  `json:"priceToRentRatio"`
	RentalYieldPct   *float64  `json:"rentalYieldPct"`
	AvgDaysOnMarket  *float64  `json:"avgDaysOnMarket"`
	VacancyRatePct   *float64  `json:"vacancyRatePct"`
	SaleCount        int       `json:"saleCount"`
	RentalCount      int       `json:"rentalCount"`
	Insights         []string  `json:"insights"`
	FetchedAt        time.Time `json:"fetchedAt"`
}

// PriceRange is the quartile spread of listing prices.
type PriceRange struct {
	Low    float64 `json:"low"`
	Median float64 `json:"median"`
	High   float64 `json:"high"`
}

// ListingSummary is one listing selected for display.
type ListingSummary struct {
	Address      string   `json:"address"`
	Price        float64  `json:"price"`
	Bedrooms     *float64 `json:"bedrooms"`
	Bathrooms    *float64 `json:"bathrooms"`
	SquareFeet   *float64 `json:"squareFeet"`
	DaysOnMarket *int     `json:"daysOnMarket"`
	WithinBudget bool     `json:"withinBudget"`
}

// ListingMarketContext describes the filtered listing pool the selection was drawn from.
type ListingMarketContext struct {
	TotalListings   int         `json:"totalListings"`
	PriceRange      *PriceRange `json:"priceRange"`
	MaxPrice        *float64    `json:"maxPrice"`
	AffordableCount *int        `json:"affordableCount"`
}

// ListingSearch is the result of a listing selection.
type ListingSearch struct {
	ZipCode       string               `json:"zipCode"`
	Kind          string               `json:"kind"`
	MarketContext ListingMarketContext `json:"marketContext"`
	Listings      []ListingSummary     `json:"listings"`
}

// MarketData is one fetched market: the derived statistics plus the listings they
// were computed from, kept for listing searches.
type MarketData struct {
	Stats          MarketStats `json:"stats"`
	SaleListings   []Listing   `json:"saleListings"`
	RentalListings []Listing   `json:"rentalListings"`
}
