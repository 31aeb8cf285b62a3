// Package plaid fetches accounts, holdings, transactions and liabilities from Plaid.
package plaid

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"cloud.google.com/go/civil"

	"github.com/liamba05/Fynnance/internal/apperrors"
	"github.com/liamba05/Fynnance/internal/model"
)

// DefaultBaseURL is the Plaid sandbox environment.
const DefaultBaseURL = "https://sandbox.plaid.com"

const (
	source           = "plaid"
	transactionsPage = 500
)

// Client is the Plaid API surface the application depends on.
type Client interface {
	GetAccounts(ctx context.Context, accessToken string) ([]model.Account, error)
	GetHoldings(ctx context.Context, accessToken string) ([]model.Holding, error)
	GetTransactions(ctx context.Context, accessToken string, start, end civil.Date) ([]model.Transaction, error)
	GetLiabilities(ctx context.Context, accessToken string) (model.RawLiabilities, []model.Account, error)
}

// HTTPClient implements Client against Plaid's JSON API.
type HTTPClient struct {
	httpClient *http.Client
	baseURL    string
	clientID   string
	secret     string
}

// NewHTTPClient creates a Plaid client. An empty baseURL selects DefaultBaseURL.
func NewHTTPClient(baseURL, clientID, secret string, timeout time.Duration) *HTTPClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &HTTPClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		clientID:   clientID,
		secret:     secret,
	}
}

// GetAccounts calls /accounts/get.
func (c *HTTPClient) GetAccounts(ctx context.Context, accessToken string) ([]model.Account, error) {
	var resp accountsResponse
	if err := c.post(ctx, "/accounts/get", map[string]any{"access_token": accessToken}, &resp); err != nil {
		return nil, apperrors.NewUpstream(source, err)
	}
	return toAccounts(resp.Accounts), nil
}

// GetHoldings calls /investments/holdings/get and formats the holdings.
func (c *HTTPClient) GetHoldings(ctx context.Context, accessToken string) ([]model.Holding, error) {
	var resp holdingsResponse
	if err := c.post(ctx, "/investments/holdings/get", map[string]any{"access_token": accessToken}, &resp); err != nil {
		return nil, apperrors.NewUpstream(source, err)
	}
	return formatHoldings(resp.Holdings, resp.Securities), nil
}

// GetTransactions calls /transactions/get, following pagination until every
// transaction in [start, end] has been read.
func (c *HTTPClient) GetTransactions(ctx context.Context, accessToken string, start, end civil.Date) ([]model.Transaction, error) {
	var all []model.Transaction
	for {
		body := map[string]any{
			"access_token": accessToken,
			"start_date":   start.String(),
			"end_date":     end.String(),
			"options": map[string]any{
				"count":                             transactionsPage,
				"offset":                            len(all),
				"include_personal_finance_category": true,
			},
		}

		var resp transactionsResponse
		if err := c.post(ctx, "/transactions/get", body, &resp); err != nil {
			return nil, apperrors.NewUpstream(source, err)
		}
		all = append(all, toTransactions(resp.Transactions)...)

		if len(resp.Transactions) == 0 || len(all) >= resp.TotalTransactions {
			return all, nil
		}
	}
}

// GetLiabilities calls /liabilities/get. Items without liability products yield
// an empty result rather than an error.
func (c *HTTPClient) GetLiabilities(ctx context.Context, accessToken string) (model.RawLiabilities, []model.Account, error) {
	var resp liabilitiesResponse
	err := c.post(ctx, "/liabilities/get", map[string]any{"access_token": accessToken}, &resp)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && (apiErr.ErrorCode == CodeNoLiabilityAccounts || apiErr.ErrorCode == CodeProductNotReady) {
			return model.RawLiabilities{}, nil, nil
		}
		return model.RawLiabilities{}, nil, apperrors.NewUpstream(source, err)
	}
	return resp.Liabilities, toAccounts(resp.Accounts), nil
}

func (c *HTTPClient) post(ctx context.Context, path string, body map[string]any, out any) error {
	body["client_id"] = c.clientID
	body["secret"] = c.secret

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode %s request: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read %s response: %w", path, err)
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if err := json.Unmarshal(data, apiErr); err != nil || apiErr.ErrorCode == "" {
			apiErr.ErrorMessage = strings.TrimSpace(string(data))
		}
		return apiErr
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}
