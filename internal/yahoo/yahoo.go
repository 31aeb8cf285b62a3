package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"cloud.google.com/go/civil"

	"github.com/liamba05/Fynnance/internal/apperrors"
)

// DefaultBaseURL is the public Yahoo Finance chart endpoint.
const DefaultBaseURL = "https://query1.finance.yahoo.com"

// Client fetches quotes for holdings enrichment.
type Client interface {
	LatestClose(ctx context.Context, symbol string) (Quote, error)
}

// FinanceClient provides methods for fetching financial data from Yahoo Finance API.
type FinanceClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewFinanceClient creates a new Yahoo Finance client. An empty baseURL selects DefaultBaseURL.
func NewFinanceClient(baseURL string, timeout time.Duration) *FinanceClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &FinanceClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// ParseChart converts a raw Yahoo Finance API response into a structured price chart.
//
// The method performs validation to ensure:
//   - A result is present
//   - Timestamp data is present
//   - Close price data is present and aligned with the timestamps
//
// Days with a null close are dropped. Other null fields parse as zero.
func ParseChart(yahooResult Response) (PriceChart, error) {
	if len(yahooResult.Chart.Result) == 0 {
		return PriceChart{}, fmt.Errorf("no results returned")
	}
	result := yahooResult.Chart.Result[0]

	if len(result.Timestamp) == 0 {
		return PriceChart{}, fmt.Errorf("no price data returned")
	}
	if len(result.Indicators.Quote) == 0 || len(result.Indicators.Quote[0].Close) == 0 {
		return PriceChart{}, fmt.Errorf("no close prices returned")
	}

	series := result.Indicators.Quote[0]
	if len(series.Close) != len(result.Timestamp) {
		return PriceChart{}, fmt.Errorf("mismatched data lengths")
	}

	indicators := make([]Indicators, 0, len(result.Timestamp))
	for i, v := range result.Timestamp {
		if series.Close[i] == nil {
			continue
		}
		indicators = append(indicators, Indicators{
			Date:       time.Unix(v, 0).UTC(),
			PriceOpen:  valueAt(series.Open, i),
			PriceClose: *series.Close[i],
			Volume:     valueAt(series.Volume, i),
			PriceHigh:  valueAt(series.High, i),
			PriceLow:   valueAt(series.Low, i),
		})
	}

	return PriceChart{
		Symbol:           result.Meta.Symbol,
		Currency:         result.Meta.Currency,
		ExchangeName:     result.Meta.ExchangeName,
		FullExchangeName: result.Meta.FullExchangeName,
		LongName:         result.Meta.LongName,
		Shortname:        result.Meta.Shortname,
		Indicators:       indicators,
	}, nil
}

func valueAt[T any](values []*T, i int) T {
	var zero T
	if i >= len(values) || values[i] == nil {
		return zero
	}
	return *values[i]
}

// Latest returns the most recent trading day of the chart.
func (c PriceChart) Latest() (Indicators, bool) {
	if len(c.Indicators) == 0 {
		return Indicators{}, false
	}
	return c.Indicators[len(c.Indicators)-1], true
}

// QueryFiveDaySymbol fetches the last 5 days of daily price data for a symbol.
func (c *FinanceClient) QueryFiveDaySymbol(ctx context.Context, symbol string) (Response, error) {
	endpoint := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=5d", c.baseURL, url.PathEscape(symbol))
	result, err := c.queryYahoo(ctx, endpoint)
	if err != nil {
		return Response{}, err
	}
	if len(result.Chart.Result) == 0 {
		return Response{}, fmt.Errorf("%w: %s", apperrors.ErrSymbolNotFound, symbol)
	}

	return result, nil
}

// LatestClose returns the most recent close for symbol.
func (c *FinanceClient) LatestClose(ctx context.Context, symbol string) (Quote, error) {
	resp, err := c.QueryFiveDaySymbol(ctx, symbol)
	if err != nil {
		return Quote{}, apperrors.NewUpstream("yahoo", err)
	}
	chart, err := ParseChart(resp)
	if err != nil {
		return Quote{}, apperrors.NewUpstream("yahoo", fmt.Errorf("failed to parse chart for %s: %w", symbol, err))
	}
	latest, ok := chart.Latest()
	if !ok {
		return Quote{}, apperrors.NewUpstream("yahoo", fmt.Errorf("%w: no closing price for %s", apperrors.ErrSymbolNotFound, symbol))
	}
	return Quote{
		Symbol:   chart.Symbol,
		Currency: chart.Currency,
		Price:    latest.PriceClose,
		Date:     civil.DateOf(latest.Date),
	}, nil
}

// queryYahoo executes a request against the chart API and decodes the response.
//
// The method sets required headers:
//   - User-Agent: Mimics a browser to avoid API blocking
//   - Accept: Requests JSON response format
func (c *FinanceClient) queryYahoo(ctx context.Context, endpoint string) (Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Response{}, err
	}

	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Response{}, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, err
	}

	var response Response
	if err := json.Unmarshal(data, &response); err != nil {
		return Response{}, fmt.Errorf("failed to decode yahoo response (status %d): %w", resp.StatusCode, err)
	}

	if response.Chart.Error != nil {
		return response, fmt.Errorf("yahoo error: %s: %s", response.Chart.Error.Code, response.Chart.Error.Description)
	}

	return response, nil
}
