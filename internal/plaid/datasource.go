package plaid

import (
	"context"

	"cloud.google.com/go/civil"

	"github.com/liamba05/Fynnance/internal/apperrors"
	"github.com/liamba05/Fynnance/internal/model"
)

// TokenSource resolves the Plaid access token of a user.
type TokenSource interface {
	AccessToken(ctx context.Context, userID string) (string, error)
}

// StaticTokenSource serves one configured access token to every user.
type StaticTokenSource struct {
	Token string
}

// AccessToken returns the configured token.
func (s StaticTokenSource) AccessToken(_ context.Context, _ string) (string, error) {
	if s.Token == "" {
		return "", &apperrors.MissingRequiredDataError{Field: "plaidAccessToken"}
	}
	return s.Token, nil
}

// DataSource serves a user's financial data by resolving their token first.
type DataSource struct {
	client Client
	tokens TokenSource
}

// NewDataSource creates a DataSource.
func NewDataSource(client Client, tokens TokenSource) *DataSource {
	return &DataSource{client: client, tokens: tokens}
}

// Accounts returns the user's accounts.
func (d *DataSource) Accounts(ctx context.Context, userID string) ([]model.Account, error) {
	token, err := d.tokens.AccessToken(ctx, userID)
	if err != nil {
		return nil, err
	}
	return d.client.GetAccounts(ctx, token)
}

// Holdings returns the user's investment holdings.
func (d *DataSource) Holdings(ctx context.Context, userID string) ([]model.Holding, error) {
	token, err := d.tokens.AccessToken(ctx, userID)
	if err != nil {
		return nil, err
	}
	return d.client.GetHoldings(ctx, token)
}

// Transactions returns the user's transactions dated within [start, end].
func (d *DataSource) Transactions(ctx context.Context, userID string, start, end civil.Date) ([]model.Transaction, error) {
	token, err := d.tokens.AccessToken(ctx, userID)
	if err != nil {
		return nil, err
	}
	return d.client.GetTransactions(ctx, token, start, end)
}

// Liabilities returns the user's raw liabilities and the accounts they belong to.
func (d *DataSource) Liabilities(ctx context.Context, userID string) (model.RawLiabilities, []model.Account, error) {
	token, err := d.tokens.AccessToken(ctx, userID)
	if err != nil {
		return model.RawLiabilities{}, nil, err
	}
	return d.client.GetLiabilities(ctx, token)
}
