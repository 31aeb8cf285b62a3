package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/liamba05/Fynnance/internal/api/request"
	"github.com/liamba05/Fynnance/internal/api/response"
	"github.com/liamba05/Fynnance/internal/apperrors"
	"github.com/liamba05/Fynnance/internal/service"
)

// ProfileHandler serves views built from the user's linked accounts.
// A nil service means Plaid is not configured; every endpoint then answers 503.
type ProfileHandler struct {
	profileService *service.ProfileService
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
	}
}

func (h *ProfileHandler) available(w http.ResponseWriter) bool {
	if h.profileService == nil {
		response.RespondError(w, http.StatusServiceUnavailable, "account data is not configured", "")
		return false
	}
	return true
}

// Profile returns the consolidated financial profile.
//
// Endpoint: GET /api/user/{uuid}/profile?days=30
// Response: 200 OK with FinancialProfile
// Error: 400 Bad Request if days is not between 1 and 730
// Error: 502 Bad Gateway if accounts or transactions cannot be fetched
func (h *ProfileHandler) Profile(w http.ResponseWriter, r *http.Request) {
	if !h.available(w) {
		return
	}

	days, err := request.ParseDays("days", r.URL.Query().Get("days"), service.DefaultProfileDays)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid query parameters", err.Error())
		return
	}

	profile, err := h.profileService.Profile(r.Context(), chi.URLParam(r, "uuid"), days)
	if err != nil {
		response.RespondServiceError(w, err, apperrors.ErrFailedToBuildProfile.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, profile)
}

// Recurring detects recurring payments in the user's transactions.
//
// Endpoint: GET /api/user/{uuid}/recurring?lookbackDays=180
// Response: 200 OK with RecurringAnalysis
func (h *ProfileHandler) Recurring(w http.ResponseWriter, r *http.Request) {
	if !h.available(w) {
		return
	}

	lookback, err := request.ParseDays("lookbackDays", r.URL.Query().Get("lookbackDays"), service.DefaultRecurringLookback)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid query parameters", err.Error())
		return
	}

	analysis, err := h.profileService.Recurring(r.Context(), chi.URLParam(r, "uuid"), lookback)
	if err != nil {
		response.RespondServiceError(w, err, "failed to detect recurring payments")
		return
	}

	response.RespondJSON(w, http.StatusOK, analysis)
}

// Liabilities returns the user's liabilities with payoff projections.
//
// Endpoint: GET /api/user/{uuid}/liabilities
// Response: 200 OK with LiabilityReport
func (h *ProfileHandler) Liabilities(w http.ResponseWriter, r *http.Request) {
	if !h.available(w) {
		return
	}

	report, err := h.profileService.Liabilities(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		response.RespondServiceError(w, err, "failed to retrieve liabilities")
		return
	}

	response.RespondJSON(w, http.StatusOK, report)
}
