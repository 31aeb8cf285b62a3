package handlers

import (
	"net/http"
	"time"

	"cloud.google.com/go/civil"

	"github.com/liamba05/Fynnance/internal/analytics"
	"github.com/liamba05/Fynnance/internal/api/request"
	"github.com/liamba05/Fynnance/internal/api/response"
	"github.com/liamba05/Fynnance/internal/validation"
)

// AnalyticsHandler serves the stateless calculators. Every input comes in the
// request body; nothing is fetched or stored.
type AnalyticsHandler struct {
	now func() time.Time
}

// NewAnalyticsHandler creates a new AnalyticsHandler
func NewAnalyticsHandler() *AnalyticsHandler {
	return &AnalyticsHandler{now: time.Now}
}

// LoanProjection projects the payoff of a single loan.
//
// Endpoint: POST /api/analytics/loan-projection
// Request Body: LoanProjectionRequest (balance, interestRate, payment)
// Response: 200 OK with LoanPrediction
// Error: 400 Bad Request if a field is missing or out of range
// Error: 422 Unprocessable Entity if the payment does not cover interest
func (h *AnalyticsHandler) LoanProjection(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.LoanProjectionRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateLoanProjection(req); err != nil {
		response.RespondServiceError(w, err, "")
		return
	}

	prediction, err := analytics.Project(*req.Balance, *req.InterestRate, *req.Payment, h.now())
	if err != nil {
		response.RespondServiceError(w, err, "failed to project loan")
		return
	}

	response.RespondJSON(w, http.StatusOK, prediction)
}

// Recurring detects recurring payments in a list of transactions.
//
// Endpoint: POST /api/analytics/recurring
// Request Body: RecurringRequest (transactions, optional asOf)
// Response: 200 OK with RecurringAnalysis
// Error: 400 Bad Request if a transaction is malformed
func (h *AnalyticsHandler) Recurring(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.RecurringRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateRecurring(req); err != nil {
		response.RespondServiceError(w, err, "")
		return
	}

	asOf := civil.DateOf(h.now())
	if req.AsOf != nil {
		asOf = *req.AsOf
	}

	result, err := analytics.DetectRecurring(req.Transactions, asOf)
	if err != nil {
		response.RespondServiceError(w, err, "failed to detect recurring payments")
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}

// Liabilities normalizes liabilities and projects their payoff.
//
// Endpoint: POST /api/analytics/liabilities
// Request Body: LiabilitiesRequest (creditCards, studentLoans, mortgages, accounts)
// Response: 200 OK with LiabilityReport
func (h *AnalyticsHandler) Liabilities(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.LiabilitiesRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	report := analytics.AggregateLiabilities(req.Raw(), req.Accounts, h.now())
	response.RespondJSON(w, http.StatusOK, report)
}

// Investment scores a rental property against the given market.
//
// Endpoint: POST /api/analytics/investment
// Request Body: InvestmentRequest (propertyPrice, expectedRent, marketStats)
// Response: 200 OK with InvestmentAnalysis
// Error: 400 Bad Request if price or rent is invalid
// Error: 422 Unprocessable Entity if the market lacks a required figure
func (h *AnalyticsHandler) Investment(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.InvestmentRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateInvestment(req); err != nil {
		response.RespondServiceError(w, err, "")
		return
	}

	result, err := analytics.InvestmentPotential(*req.PropertyPrice, *req.ExpectedRent, *req.MarketStats)
	if err != nil {
		response.RespondServiceError(w, err, "failed to analyze investment")
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}

// Affordability estimates the affordable home price for an income.
//
// Endpoint: POST /api/analytics/affordability
// Request Body: AffordabilityRequest (income, creditScore, marketStats)
// Response: 200 OK with AffordabilityResult
// Error: 422 Unprocessable Entity if income is missing
func (h *AnalyticsHandler) Affordability(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.AffordabilityRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateAffordability(req); err != nil {
		response.RespondServiceError(w, err, "")
		return
	}

	result, err := analytics.Affordability(req.Income, req.CreditScore, req.MarketStats)
	if err != nil {
		response.RespondServiceError(w, err, "failed to analyze affordability")
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}
