// Package rentcast fetches sale and long-term rental listings from the RentCast API.
package rentcast

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/liamba05/Fynnance/internal/apperrors"
	"github.com/liamba05/Fynnance/internal/model"
)

// DefaultBaseURL is the RentCast v1 API.
const DefaultBaseURL = "https://api.rentcast.io/v1"

// DefaultLimit is how many listings are requested per call.
const DefaultLimit = 20

// AnyPropertyType leaves the propertyType filter unset, so listings of every
// property type are returned.
const AnyPropertyType = ""

const source = "rentcast"

// Client fetches listings for one market.
type Client interface {
	SaleListings(ctx context.Context, zipCode, propertyType string) ([]model.Listing, error)
	RentalListings(ctx context.Context, zipCode, propertyType string) ([]model.Listing, error)
}

// StatusError is returned for a non-2xx RentCast response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("rentcast returned status %d: %s", e.StatusCode, e.Body)
}

// HTTPClient implements Client against the RentCast REST API.
type HTTPClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	limit      int
}

// NewHTTPClient creates a RentCast client. An empty baseURL selects DefaultBaseURL.
func NewHTTPClient(baseURL, apiKey string, timeout time.Duration) *HTTPClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &HTTPClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		limit:      DefaultLimit,
	}
}

// SaleListings calls /listings/sale.
func (c *HTTPClient) SaleListings(ctx context.Context, zipCode, propertyType string) ([]model.Listing, error) {
	return c.listings(ctx, "/listings/sale", zipCode, propertyType)
}

// RentalListings calls /listings/rental/long-term.
func (c *HTTPClient) RentalListings(ctx context.Context, zipCode, propertyType string) ([]model.Listing, error) {
	return c.listings(ctx, "/listings/rental/long-term", zipCode, propertyType)
}

func (c *HTTPClient) listings(ctx context.Context, path, zipCode, propertyType string) ([]model.Listing, error) {
	q := url.Values{}
	q.Set("zipCode", zipCode)
	if propertyType != AnyPropertyType {
		q.Set("propertyType", propertyType)
	}
	q.Set("limit", strconv.Itoa(c.limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return nil, apperrors.NewUpstream(source, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewUpstream(source, fmt.Errorf("%s request failed: %w", path, err))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewUpstream(source, fmt.Errorf("failed to read %s response: %w", path, err))
	}

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.NewUpstream(source, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(data))})
	}

	var listings []model.Listing
	if err := json.Unmarshal(data, &listings); err != nil {
		return nil, apperrors.NewUpstream(source, fmt.Errorf("failed to decode %s response: %w", path, err))
	}
	return listings, nil
}
