package request

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ListingFilters are the query parameters of a listing search. Nil fields were not given.
type ListingFilters struct {
	ZipCode  string
	MaxPrice *float64
	MinBeds  *float64
}

// InvestmentQuery are the query parameters of a stored-user investment analysis.
type InvestmentQuery struct {
	ZipCode string
	Price   float64
	Rent    float64
}

// ParseListingFilters extracts listing filters from query parameters.
// All parameters are optional.
//
// Validation rules:
//   - maxPrice: must be a positive number
//   - minBeds: must be a number between 0 and 20
func ParseListingFilters(zipParam, maxPriceParam, minBedsParam string) (*ListingFilters, error) {
	filters := &ListingFilters{ZipCode: strings.TrimSpace(zipParam)}

	if maxPriceParam != "" {
		maxPrice, err := parseNumber("maxPrice", maxPriceParam)
		if err != nil {
			return nil, err
		}
		if maxPrice <= 0 {
			return nil, fmt.Errorf("invalid maxPrice: must be positive")
		}
		filters.MaxPrice = &maxPrice
	}

	if minBedsParam != "" {
		minBeds, err := parseNumber("minBeds", minBedsParam)
		if err != nil {
			return nil, err
		}
		if minBeds < 0 || minBeds > 20 {
			return nil, fmt.Errorf("invalid minBeds: must be between 0 and 20")
		}
		filters.MinBeds = &minBeds
	}

	return filters, nil
}

// ParseInvestmentQuery extracts the property price and expected rent. Both are required.
func ParseInvestmentQuery(zipParam, priceParam, rentParam string) (*InvestmentQuery, error) {
	if priceParam == "" {
		return nil, fmt.Errorf("price is required")
	}
	if rentParam == "" {
		return nil, fmt.Errorf("rent is required")
	}

	price, err := parseNumber("price", priceParam)
	if err != nil {
		return nil, err
	}
	rent, err := parseNumber("rent", rentParam)
	if err != nil {
		return nil, err
	}

	return &InvestmentQuery{
		ZipCode: strings.TrimSpace(zipParam),
		Price:   price,
		Rent:    rent,
	}, nil
}

// ParseDays parses a day-count parameter, returning defaultDays when it is empty.
// Range checks are left to the service.
func ParseDays(name, param string, defaultDays int) (int, error) {
	if param == "" {
		return defaultDays, nil
	}
	days, err := strconv.Atoi(strings.TrimSpace(param))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: must be a whole number", name)
	}
	return days, nil
}

func parseNumber(name, param string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(param), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid %s: must be a number", name)
	}
	return v, nil
}
