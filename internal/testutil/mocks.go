package testutil

import (
	"context"
	"errors"
	"sync"

	"cloud.google.com/go/civil"

	"github.com/liamba05/Fynnance/internal/apperrors"
	"github.com/liamba05/Fynnance/internal/model"
	"github.com/liamba05/Fynnance/internal/yahoo"
)

// MockYahooClient is a mock implementation of yahoo.Client for testing.
// Symbols without a configured quote fail with apperrors.ErrSymbolNotFound.
type MockYahooClient struct {
	mu     sync.Mutex
	quotes map[string]yahoo.Quote
	errs   map[string]error
	// QueryCount tracks how many times LatestClose was called
	QueryCount int
}

// NewMockYahooClient creates a mock with no quotes configured.
func NewMockYahooClient() *MockYahooClient {
	return &MockYahooClient{
		quotes: make(map[string]yahoo.Quote),
		errs:   make(map[string]error),
	}
}

// WithQuote configures the close returned for symbol.
func (m *MockYahooClient) WithQuote(symbol string, price float64) *MockYahooClient {
	m.quotes[symbol] = yahoo.Quote{Symbol: symbol, Currency: "USD", Price: price, Date: civil.DateOf(FixedNow)}
	return m
}

// WithError configures symbol to fail with err.
func (m *MockYahooClient) WithError(symbol string, err error) *MockYahooClient {
	m.errs[symbol] = err
	return m
}

// LatestClose returns the configured quote.
func (m *MockYahooClient) LatestClose(_ context.Context, symbol string) (yahoo.Quote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.QueryCount++

	if err, ok := m.errs[symbol]; ok {
		return yahoo.Quote{}, err
	}
	q, ok := m.quotes[symbol]
	if !ok {
		return yahoo.Quote{}, apperrors.NewUpstream("yahoo", apperrors.ErrSymbolNotFound)
	}
	return q, nil
}

// MockDataSource is an in-memory service.FinancialDataSource.
// Each section can be given data or an error independently.
type MockDataSource struct {
	mu sync.Mutex

	AccountList       []model.Account
	HoldingList       []model.Holding
	TransactionList   []model.Transaction
	RawLiabilities    model.RawLiabilities
	LiabilityAccounts []model.Account

	AccountsErr     error
	HoldingsErr     error
	TransactionsErr error
	LiabilitiesErr  error

	// TransactionWindows records every requested [start, end] range.
	TransactionWindows [][2]civil.Date
}

// NewMockDataSource creates an empty data source.
func NewMockDataSource() *MockDataSource {
	return &MockDataSource{}
}

func (m *MockDataSource) Accounts(_ context.Context, _ string) ([]model.Account, error) {
	return m.AccountList, m.AccountsErr
}

func (m *MockDataSource) Holdings(_ context.Context, _ string) ([]model.Holding, error) {
	if m.HoldingsErr != nil {
		return nil, m.HoldingsErr
	}
	out := make([]model.Holding, len(m.HoldingList))
	copy(out, m.HoldingList)
	return out, nil
}

// Transactions returns the configured transactions dated within [start, end].
func (m *MockDataSource) Transactions(_ context.Context, _ string, start, end civil.Date) ([]model.Transaction, error) {
	m.mu.Lock()
	m.TransactionWindows = append(m.TransactionWindows, [2]civil.Date{start, end})
	m.mu.Unlock()

	if m.TransactionsErr != nil {
		return nil, m.TransactionsErr
	}
	var out []model.Transaction
	for _, t := range m.TransactionList {
		if !t.Date.Before(start) && !t.Date.After(end) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *MockDataSource) Liabilities(_ context.Context, _ string) (model.RawLiabilities, []model.Account, error) {
	return m.RawLiabilities, m.LiabilityAccounts, m.LiabilitiesErr
}

// MockRentCastClient is an in-memory rentcast.Client with call counters.
type MockRentCastClient struct {
	mu sync.Mutex

	Sale   []model.Listing
	Rental []model.Listing
	Err    error

	SaleCalls   int
	RentalCalls int
	// PropertyTypes records the property type of every call.
	PropertyTypes []string
	// Release, when set, blocks every call until it is closed.
	Release chan struct{}
}

// NewMockRentCastClient creates a client serving the given listings.
func NewMockRentCastClient(sale, rental []model.Listing) *MockRentCastClient {
	return &MockRentCastClient{Sale: sale, Rental: rental}
}

func (m *MockRentCastClient) SaleListings(ctx context.Context, _, propertyType string) ([]model.Listing, error) {
	m.mu.Lock()
	m.SaleCalls++
	m.PropertyTypes = append(m.PropertyTypes, propertyType)
	m.mu.Unlock()
	return m.respond(ctx, m.Sale)
}

func (m *MockRentCastClient) RentalListings(ctx context.Context, _, propertyType string) ([]model.Listing, error) {
	m.mu.Lock()
	m.RentalCalls++
	m.PropertyTypes = append(m.PropertyTypes, propertyType)
	m.mu.Unlock()
	return m.respond(ctx, m.Rental)
}

func (m *MockRentCastClient) respond(ctx context.Context, listings []model.Listing) ([]model.Listing, error) {
	if m.Release != nil {
		select {
		case <-m.Release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return listings, nil
}

// Calls returns the total number of upstream calls.
func (m *MockRentCastClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.SaleCalls + m.RentalCalls
}

// ErrMockUpstream is a generic upstream failure for tests.
var ErrMockUpstream = apperrors.NewUpstream("mock", errors.New("connection reset"))
