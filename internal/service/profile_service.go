package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/liamba05/Fynnance/internal/analytics"
	"github.com/liamba05/Fynnance/internal/apperrors"
	"github.com/liamba05/Fynnance/internal/model"
	"github.com/liamba05/Fynnance/internal/yahoo"
)

// Window defaults for transaction-based analyses.
const (
	DefaultProfileDays       = 30
	DefaultRecurringLookback = 180
	maxLookbackDays          = 730
	quoteConcurrency         = 4
)

// FinancialDataSource supplies a user's raw financial records.
type FinancialDataSource interface {
	Accounts(ctx context.Context, userID string) ([]model.Account, error)
	Holdings(ctx context.Context, userID string) ([]model.Holding, error)
	Transactions(ctx context.Context, userID string, start, end civil.Date) ([]model.Transaction, error)
	Liabilities(ctx context.Context, userID string) (model.RawLiabilities, []model.Account, error)
}

// ProfileService builds consolidated financial views from a data source.
type ProfileService struct {
	data   FinancialDataSource
	quotes yahoo.Client
	now    func() time.Time
}

// NewProfileService creates a new ProfileService. quotes may be nil to skip
// holdings revaluation.
func NewProfileService(data FinancialDataSource, quotes yahoo.Client) *ProfileService {
	return &ProfileService{
		data:   data,
		quotes: quotes,
		now:    time.Now,
	}
}

// SetClock replaces the service clock. Intended for tests.
func (s *ProfileService) SetClock(now func() time.Time) {
	s.now = now
}

func validateWindow(field string, days int) error {
	if days <= 0 || days > maxLookbackDays {
		return apperrors.NewInvalidInput(field, fmt.Sprintf("must be between 1 and %d", maxLookbackDays))
	}
	return nil
}

// Profile returns the consolidated profile of a user.
//
// Accounts, holdings, transactions and liabilities are fetched concurrently.
// Accounts and transactions are required. A holdings failure leaves the
// investments empty. A liabilities failure or malformed transaction data leaves
// that section nil. Each isolated failure attaches a warning.
// Transactions cover the last days; recurring payments are detected over the
// longer of days and the default recurring lookback.
func (s *ProfileService) Profile(ctx context.Context, userID string, days int) (model.FinancialProfile, error) {
	if err := validateWindow("days", days); err != nil {
		return model.FinancialProfile{}, err
	}

	now := s.now()
	today := civil.DateOf(now)
	lookback := max(days, DefaultRecurringLookback)
	start := today.AddDays(-lookback)

	var (
		accounts       []model.Account
		holdings       []model.Holding
		transactions   []model.Transaction
		rawLiab        model.RawLiabilities
		liabAccounts   []model.Account
		holdingsErr    error
		liabilitiesErr error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		accounts, err = s.data.Accounts(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		transactions, err = s.data.Transactions(gctx, userID, start, today)
		return err
	})
	g.Go(func() error {
		holdings, holdingsErr = s.data.Holdings(gctx, userID)
		return nil
	})
	g.Go(func() error {
		rawLiab, liabAccounts, liabilitiesErr = s.data.Liabilities(gctx, userID)
		return nil
	})
	if err := g.Wait(); err != nil {
		return model.FinancialProfile{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToBuildProfile, err)
	}

	profile := model.FinancialProfile{
		UserID:      userID,
		Accounts:    accounts,
		GeneratedAt: now.UTC(),
	}

	if holdingsErr != nil {
		log.Printf("profile %s: holdings unavailable: %v", userID, holdingsErr)
		profile.Warnings = append(profile.Warnings, "investment holdings unavailable")
		holdings = nil
	}
	profile.Investments = s.revalue(ctx, nonNil(holdings))

	if liabilitiesErr != nil {
		log.Printf("profile %s: liabilities unavailable: %v", userID, liabilitiesErr)
		profile.Warnings = append(profile.Warnings, "liabilities unavailable")
	} else {
		if len(liabAccounts) == 0 {
			liabAccounts = accounts
		}
		report := analytics.AggregateLiabilities(rawLiab, liabAccounts, now)
		profile.Liabilities = &report
	}

	profile.BalancesByType = BalancesByType(accounts)

	windowStart := today.AddDays(-days)
	recent := make([]model.Transaction, 0, len(transactions))
	for _, t := range transactions {
		if !t.Date.Before(windowStart) {
			recent = append(recent, t)
		}
	}
	profile.Transactions = recent
	profile.TransactionSummary = SummarizeTransactions(recent)

	recurring, err := s.detect(transactions, start, today, now, lookback)
	if err != nil {
		log.Printf("profile %s: recurring payments unavailable: %v", userID, err)
		profile.Warnings = append(profile.Warnings, "recurring payments unavailable")
	} else {
		profile.Recurring = &recurring
	}

	return profile, nil
}

// Recurring detects recurring payments over the last lookbackDays of transactions.
func (s *ProfileService) Recurring(ctx context.Context, userID string, lookbackDays int) (model.RecurringAnalysis, error) {
	if err := validateWindow("lookbackDays", lookbackDays); err != nil {
		return model.RecurringAnalysis{}, err
	}

	now := s.now()
	today := civil.DateOf(now)
	start := today.AddDays(-lookbackDays)

	transactions, err := s.data.Transactions(ctx, userID, start, today)
	if err != nil {
		return model.RecurringAnalysis{}, err
	}
	return s.detect(transactions, start, today, now, lookbackDays)
}

func (s *ProfileService) detect(transactions []model.Transaction, start, end civil.Date, now time.Time, lookback int) (model.RecurringAnalysis, error) {
	analysis, err := analytics.DetectRecurring(transactions, end)
	if err != nil {
		return model.RecurringAnalysis{}, apperrors.NewUpstream("transactions", err)
	}
	analysis.Metadata = &model.AnalysisWindow{
		AnalysisPeriodDays: lookback,
		StartDate:          start,
		EndDate:            end,
		GeneratedAt:        now.UTC(),
	}
	return analysis, nil
}

// Liabilities returns the normalized liabilities of a user with payoff projections.
func (s *ProfileService) Liabilities(ctx context.Context, userID string) (model.LiabilityReport, error) {
	raw, accounts, err := s.data.Liabilities(ctx, userID)
	if err != nil {
		return model.LiabilityReport{}, err
	}
	return analytics.AggregateLiabilities(raw, accounts, s.now()), nil
}

// revalue replaces institution prices with the latest quote where one is available.
// A failed quote leaves the holding untouched.
func (s *ProfileService) revalue(ctx context.Context, holdings []model.Holding) []model.Holding {
	if s.quotes == nil || len(holdings) == 0 {
		return holdings
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(quoteConcurrency)

	for i := range holdings {
		ticker := strings.TrimSpace(holdings[i].Ticker)
		if ticker == "" {
			continue
		}
		g.Go(func() error {
			quote, err := s.quotes.LatestClose(gctx, ticker)
			if err != nil {
				log.Printf("quote for %s unavailable, keeping institution price: %v", ticker, err)
				return nil
			}
			price := quote.Price
			value := decimal.NewFromFloat(price).Mul(decimal.NewFromFloat(holdings[i].Quantity)).Round(2).InexactFloat64()

			mu.Lock()
			holdings[i].MarketPrice = &price
			holdings[i].MarketValue = &value
			mu.Unlock()
			return nil
		})
	}
	g.Wait() //nolint:errcheck

	return holdings
}

// BalancesByType sums current balances per lower-cased account type.
// Accounts without a current balance are skipped.
func BalancesByType(accounts []model.Account) map[string]float64 {
	sums := make(map[string]decimal.Decimal)
	for _, a := range accounts {
		if a.CurrentBalance == nil {
			continue
		}
		key := strings.ToLower(a.Type)
		sums[key] = sums[key].Add(decimal.NewFromFloat(*a.CurrentBalance))
	}

	out := make(map[string]float64, len(sums))
	for k, v := range sums {
		out[k] = v.Round(2).InexactFloat64()
	}
	return out
}

// SummarizeTransactions totals spend (positive amounts) and income (negative
// amounts, reported as a positive number). Transactions without an amount are
// counted but contribute nothing.
func SummarizeTransactions(transactions []model.Transaction) model.TransactionSummary {
	spend, income := decimal.Zero, decimal.Zero
	for _, t := range transactions {
		if !t.Amount.Valid {
			continue
		}
		switch {
		case t.Amount.Decimal.IsPositive():
			spend = spend.Add(t.Amount.Decimal)
		case t.Amount.Decimal.IsNegative():
			income = income.Add(t.Amount.Decimal.Neg())
		}
	}
	return model.TransactionSummary{
		TotalSpending:    spend.Round(2).InexactFloat64(),
		TotalIncome:      income.Round(2).InexactFloat64(),
		NetCashFlow:      income.Sub(spend).Round(2).InexactFloat64(),
		TransactionCount: len(transactions),
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
