package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/liamba05/Fynnance/internal/analytics"
	"github.com/liamba05/Fynnance/internal/apperrors"
	"github.com/liamba05/Fynnance/internal/cache"
	"github.com/liamba05/Fynnance/internal/model"
	"github.com/liamba05/Fynnance/internal/quota"
	"github.com/liamba05/Fynnance/internal/rentcast"
)

// Listing kinds.
const (
	ListingKindRental = "rental"
	ListingKindSale   = "sale"
)

const (
	rentalIncomeShare    = 0.30
	defaultRentalMinBeds = 1
	defaultSaleMinBeds   = 2
	quotaKey             = "rentcast"
)

// FactsReader looks up the stored facts of a user.
type FactsReader interface {
	GetFacts(ctx context.Context, userID string) (model.UserFacts, error)
}

// MarketService serves market statistics and the analyses built on them.
//
// Market data is cached per session key. Every upstream call is charged
// against the RentCast quota first.
type MarketService struct {
	client   rentcast.Client
	sessions *cache.SessionRegistry
	limiter  quota.Limiter
	facts    FactsReader
	now      func() time.Time
}

// NewMarketService creates a new MarketService.
func NewMarketService(
	client rentcast.Client,
	sessions *cache.SessionRegistry,
	limiter quota.Limiter,
	facts FactsReader,
) *MarketService {
	return &MarketService{
		client:   client,
		sessions: sessions,
		limiter:  limiter,
		facts:    facts,
		now:      time.Now,
	}
}

// SetClock replaces the service clock. Intended for tests.
func (s *MarketService) SetClock(now func() time.Time) {
	s.now = now
}

// MarketData returns the market of (zipCode, propertyType), from the session cache when
// possible. An empty sessionKey bypasses the cache.
func (s *MarketService) MarketData(ctx context.Context, sessionKey, zipCode, propertyType string) (model.MarketData, error) {
	zipCode = strings.TrimSpace(zipCode)
	if zipCode == "" {
		return model.MarketData{}, apperrors.NewInvalidInput("zip", apperrors.ErrInvalidZipCode.Error())
	}

	load := func(ctx context.Context) (model.MarketData, error) {
		return s.fetch(ctx, zipCode, propertyType)
	}
	if sessionKey == "" || s.sessions == nil {
		return load(ctx)
	}
	return s.sessions.For(sessionKey).Get(ctx, cache.Key{ZipCode: zipCode, PropertyType: propertyType}, load)
}

// MarketStats returns only the statistics of a market.
func (s *MarketService) MarketStats(ctx context.Context, sessionKey, zipCode, propertyType string) (model.MarketStats, error) {
	data, err := s.MarketData(ctx, sessionKey, zipCode, propertyType)
	if err != nil {
		return model.MarketStats{}, err
	}
	return data.Stats, nil
}

func (s *MarketService) fetch(ctx context.Context, zipCode, propertyType string) (model.MarketData, error) {
	var sale, rental []model.Listing

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := s.charge(gctx); err != nil {
			return err
		}
		var err error
		sale, err = s.client.SaleListings(gctx, zipCode, propertyType)
		return err
	})
	g.Go(func() error {
		if err := s.charge(gctx); err != nil {
			return err
		}
		var err error
		rental, err = s.client.RentalListings(gctx, zipCode, propertyType)
		return err
	})
	if err := g.Wait(); err != nil {
		return model.MarketData{}, err
	}

	return model.MarketData{
		Stats:          analytics.BuildMarketStats(zipCode, propertyType, sale, rental, s.now().UTC()),
		SaleListings:   nonNil(sale),
		RentalListings: nonNil(rental),
	}, nil
}

func (s *MarketService) charge(ctx context.Context) error {
	if s.limiter == nil {
		return nil
	}
	allowed, err := s.limiter.Allow(ctx, quotaKey)
	if err != nil {
		return apperrors.NewUpstream("rentcast", fmt.Errorf("quota check failed: %w", err))
	}
	if !allowed {
		return apperrors.NewUpstream("rentcast", apperrors.ErrQuotaExceeded)
	}
	return nil
}

// resolveZip prefers an explicit zip code over the one stored for the user.
func resolveZip(zipCode string, facts model.UserFacts) (string, error) {
	if z := strings.TrimSpace(zipCode); z != "" {
		return z, nil
	}
	if facts.ZipCode != nil && strings.TrimSpace(*facts.ZipCode) != "" {
		return strings.TrimSpace(*facts.ZipCode), nil
	}
	return "", &apperrors.MissingRequiredDataError{Field: "zipCode"}
}

// Affordability analyzes what the user can afford in zipCode, or in their stored
// zip code when zipCode is empty.
func (s *MarketService) Affordability(ctx context.Context, userID, zipCode string) (model.AffordabilityResult, error) {
	facts, err := s.facts.GetFacts(ctx, userID)
	if err != nil {
		return model.AffordabilityResult{}, err
	}
	// Income is required before any quota is spent. A stored non-positive income
	// gives nothing to analyze.
	if facts.Income == nil || *facts.Income <= 0 {
		return model.AffordabilityResult{}, &apperrors.MissingRequiredDataError{Field: "income"}
	}
	zip, err := resolveZip(zipCode, facts)
	if err != nil {
		return model.AffordabilityResult{}, err
	}

	stats, err := s.MarketStats(ctx, userID, zip, rentcast.AnyPropertyType)
	if err != nil {
		return model.AffordabilityResult{}, err
	}
	return analytics.Affordability(facts.Income, facts.CreditScore, stats)
}

// Investment analyzes a rental property at price and expected monthly rent.
func (s *MarketService) Investment(ctx context.Context, userID, zipCode string, price, rent float64) (model.InvestmentAnalysis, error) {
	facts, err := s.facts.GetFacts(ctx, userID)
	if err != nil {
		return model.InvestmentAnalysis{}, err
	}
	zip, err := resolveZip(zipCode, facts)
	if err != nil {
		return model.InvestmentAnalysis{}, err
	}

	stats, err := s.MarketStats(ctx, userID, zip, rentcast.AnyPropertyType)
	if err != nil {
		return model.InvestmentAnalysis{}, err
	}
	return analytics.InvestmentPotential(price, rent, stats)
}

// ListingQuery narrows a listing search. Nil fields take their defaults.
type ListingQuery struct {
	ZipCode  string
	MaxPrice *float64
	MinBeds  *float64
}

// RentalListings selects rental listings. Without a MaxPrice the budget is 30% of
// the user's monthly income, when known.
func (s *MarketService) RentalListings(ctx context.Context, userID string, q ListingQuery) (model.ListingSearch, error) {
	facts, err := s.facts.GetFacts(ctx, userID)
	if err != nil {
		return model.ListingSearch{}, err
	}

	budget := q.MaxPrice
	if budget == nil && facts.Income != nil && *facts.Income > 0 {
		b := *facts.Income / 12 * rentalIncomeShare
		budget = &b
	}
	return s.listings(ctx, userID, ListingKindRental, q, facts, budget, defaultRentalMinBeds)
}

// PropertyListings selects sale listings. Without a MaxPrice the budget is the
// user's maximum affordable home price, when income is known.
func (s *MarketService) PropertyListings(ctx context.Context, userID string, q ListingQuery) (model.ListingSearch, error) {
	facts, err := s.facts.GetFacts(ctx, userID)
	if err != nil {
		return model.ListingSearch{}, err
	}

	budget := q.MaxPrice
	if budget == nil && facts.Income != nil && *facts.Income > 0 {
		afford, err := analytics.Affordability(facts.Income, facts.CreditScore, model.MarketStats{})
		if err != nil {
			return model.ListingSearch{}, err
		}
		b := afford.Summary.MaxHomePrice
		budget = &b
	}
	return s.listings(ctx, userID, ListingKindSale, q, facts, budget, defaultSaleMinBeds)
}

func (s *MarketService) listings(
	ctx context.Context,
	userID, kind string,
	q ListingQuery,
	facts model.UserFacts,
	budget *float64,
	defaultMinBeds float64,
) (model.ListingSearch, error) {
	zip, err := resolveZip(q.ZipCode, facts)
	if err != nil {
		return model.ListingSearch{}, err
	}

	data, err := s.MarketData(ctx, userID, zip, rentcast.AnyPropertyType)
	if err != nil {
		return model.ListingSearch{}, err
	}

	minBeds := defaultMinBeds
	if q.MinBeds != nil {
		minBeds = *q.MinBeds
	}

	pool := data.RentalListings
	if kind == ListingKindSale {
		pool = data.SaleListings
	}

	search := analytics.SelectListings(pool, budget, minBeds)
	search.ZipCode = zip
	search.Kind = kind
	return search, nil
}
