package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/liamba05/Fynnance/internal/api/middleware"
	"github.com/liamba05/Fynnance/internal/api/request"
	"github.com/liamba05/Fynnance/internal/api/response"
	"github.com/liamba05/Fynnance/internal/apperrors"
	"github.com/liamba05/Fynnance/internal/model"
	"github.com/liamba05/Fynnance/internal/service"
	"github.com/liamba05/Fynnance/internal/validation"
)

// MarketHandler serves market statistics and the per-user analyses built on them.
// A nil service means RentCast is not configured; every endpoint then answers 503.
type MarketHandler struct {
	marketService *service.MarketService
}

// NewMarketHandler creates a new MarketHandler
func NewMarketHandler(marketService *service.MarketService) *MarketHandler {
	return &MarketHandler{
		marketService: marketService,
	}
}

func (h *MarketHandler) available(w http.ResponseWriter) bool {
	if h.marketService == nil {
		response.RespondError(w, http.StatusServiceUnavailable, "market data is not configured", "")
		return false
	}
	return true
}

// validZip checks an optional zip code parameter. An empty value is left to the service.
func validZip(w http.ResponseWriter, zip string) bool {
	if zip == "" {
		return true
	}
	if err := validation.ValidateZipCode(zip); err != nil {
		response.RespondServiceError(w, &validation.Error{Fields: map[string]string{"zip": err.Error()}}, "")
		return false
	}
	return true
}

// MarketStats returns statistics of a zip code market.
// Results are cached under the X-Session-ID header when one is sent.
//
// Endpoint: GET /api/market/stats?zip=&propertyType=
// Response: 200 OK with MarketStats
// Error: 400 Bad Request if zip is missing or malformed
// Error: 502 Bad Gateway if the provider fails or the quota is used up
func (h *MarketHandler) MarketStats(w http.ResponseWriter, r *http.Request) {
	if !h.available(w) {
		return
	}

	zip := strings.TrimSpace(r.URL.Query().Get("zip"))
	if zip == "" {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidZipCode.Error(), "")
		return
	}
	if !validZip(w, zip) {
		return
	}

	session := strings.TrimSpace(r.Header.Get(middleware.SessionHeader))
	stats, err := h.marketService.MarketStats(r.Context(), session, zip, r.URL.Query().Get("propertyType"))
	if err != nil {
		response.RespondServiceError(w, err, apperrors.ErrFailedToRetrieveMarketStats.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, stats)
}

// Affordability analyzes what the user can afford, using stored facts.
//
// Endpoint: GET /api/user/{uuid}/affordability?zip=
// Response: 200 OK with AffordabilityResult
// Error: 404 Not Found if the user has no facts
// Error: 422 Unprocessable Entity if income or zip code is not known
func (h *MarketHandler) Affordability(w http.ResponseWriter, r *http.Request) {
	if !h.available(w) {
		return
	}

	userID := chi.URLParam(r, "uuid")
	zip := strings.TrimSpace(r.URL.Query().Get("zip"))
	if !validZip(w, zip) {
		return
	}

	result, err := h.marketService.Affordability(r.Context(), userID, zip)
	if err != nil {
		response.RespondServiceError(w, err, "failed to analyze affordability")
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}

// Investment scores a rental property against the user's market.
//
// Endpoint: GET /api/user/{uuid}/investment?zip=&price=&rent=
// Response: 200 OK with InvestmentAnalysis
// Error: 400 Bad Request if price or rent is missing or invalid
func (h *MarketHandler) Investment(w http.ResponseWriter, r *http.Request) {
	if !h.available(w) {
		return
	}

	userID := chi.URLParam(r, "uuid")
	q := r.URL.Query()
	query, err := request.ParseInvestmentQuery(q.Get("zip"), q.Get("price"), q.Get("rent"))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid query parameters", err.Error())
		return
	}
	if !validZip(w, query.ZipCode) {
		return
	}

	result, err := h.marketService.Investment(r.Context(), userID, query.ZipCode, query.Price, query.Rent)
	if err != nil {
		response.RespondServiceError(w, err, "failed to analyze investment")
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}

// Listings selects rental or sale listings around the user's budget.
//
// Endpoint: GET /api/user/{uuid}/listings/{kind}?zip=&maxPrice=&minBeds=
// kind is "rental" or "sale".
// Response: 200 OK with ListingSearch
// Error: 400 Bad Request if kind or a filter is invalid
func (h *MarketHandler) Listings(w http.ResponseWriter, r *http.Request) {
	if !h.available(w) {
		return
	}

	userID := chi.URLParam(r, "uuid")
	kind := chi.URLParam(r, "kind")
	q := r.URL.Query()

	filters, err := request.ParseListingFilters(q.Get("zip"), q.Get("maxPrice"), q.Get("minBeds"))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid query parameters", err.Error())
		return
	}
	if !validZip(w, filters.ZipCode) {
		return
	}

	query := service.ListingQuery{
		ZipCode:  filters.ZipCode,
		MaxPrice: filters.MaxPrice,
		MinBeds:  filters.MinBeds,
	}

	var search model.ListingSearch
	switch kind {
	case service.ListingKindRental:
		search, err = h.marketService.RentalListings(r.Context(), userID, query)
	case service.ListingKindSale:
		search, err = h.marketService.PropertyListings(r.Context(), userID, query)
	default:
		response.RespondError(w, http.StatusBadRequest, "invalid listing kind", "kind must be rental or sale")
		return
	}
	if err != nil {
		response.RespondServiceError(w, err, "failed to search listings")
		return
	}

	response.RespondJSON(w, http.StatusOK, search)
}
