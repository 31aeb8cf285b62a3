package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/liamba05/Fynnance/internal/api/request"
	"github.com/liamba05/Fynnance/internal/api/response"
	"github.com/liamba05/Fynnance/internal/apperrors"
	"github.com/liamba05/Fynnance/internal/model"
	"github.com/liamba05/Fynnance/internal/service"
	"github.com/liamba05/Fynnance/internal/validation"
)

// UserHandler handles the facts, goals and memories a user shares.
type UserHandler struct {
	userFactsService *service.UserFactsService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userFactsService *service.UserFactsService) *UserHandler {
	return &UserHandler{
		userFactsService: userFactsService,
	}
}

// Facts returns the stored facts of a user.
//
// Endpoint: GET /api/user/{uuid}/facts
// Response: 200 OK with UserFacts
// Error: 404 Not Found if the user never stored facts
func (h *UserHandler) Facts(w http.ResponseWriter, r *http.Request) {
	facts, err := h.userFactsService.GetFacts(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		response.RespondServiceError(w, err, apperrors.ErrFailedToRetrieveFacts.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, facts)
}

// UpdateFacts applies a partial facts update, creating the user on first write.
//
// Endpoint: PUT /api/user/{uuid}/facts
// Request Body: UpdateFactsRequest (all fields optional, at least one required)
// Response: 200 OK with the updated UserFacts
// Error: 400 Bad Request if validation fails
func (h *UserHandler) UpdateFacts(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.UpdateFactsRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateFacts(req); err != nil {
		response.RespondServiceError(w, err, "")
		return
	}

	facts, err := h.userFactsService.UpdateFacts(r.Context(), chi.URLParam(r, "uuid"), model.UserFactsUpdate{
		Income:      req.Income,
		CreditScore: req.CreditScore,
		ZipCode:     req.ZipCode,
		Assets:      req.Assets,
	})
	if err != nil {
		response.RespondServiceError(w, err, apperrors.ErrFailedToUpdateFacts.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, facts)
}

// Goals returns the goals, preferences and memories of a user.
//
// Endpoint: GET /api/user/{uuid}/goals
// Response: 200 OK with UserGoals
// Error: 404 Not Found if the user never stored facts
func (h *UserHandler) Goals(w http.ResponseWriter, r *http.Request) {
	goals, err := h.userFactsService.GetGoals(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		response.RespondServiceError(w, err, apperrors.ErrFailedToRetrieveGoals.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, goals)
}

// UpdateGoals applies a partial goals update.
//
// Endpoint: PUT /api/user/{uuid}/goals
// Request Body: UpdateGoalsRequest (goals, preferences)
// Response: 200 OK with UserGoals
func (h *UserHandler) UpdateGoals(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.UpdateGoalsRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateGoals(req); err != nil {
		response.RespondServiceError(w, err, "")
		return
	}

	goals, err := h.userFactsService.UpdateGoals(r.Context(), chi.URLParam(r, "uuid"), model.UserGoalsUpdate{
		Goals:       req.Goals,
		Preferences: req.Preferences,
	})
	if err != nil {
		response.RespondServiceError(w, err, "failed to update user goals")
		return
	}

	response.RespondJSON(w, http.StatusOK, goals)
}

// AddMemories appends memories to the user's list.
//
// Endpoint: POST /api/user/{uuid}/memories
// Request Body: AddMemoriesRequest (memories)
// Response: 200 OK with UserGoals
func (h *UserHandler) AddMemories(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.AddMemoriesRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateAddMemories(req); err != nil {
		response.RespondServiceError(w, err, "")
		return
	}

	goals, err := h.userFactsService.AddMemories(r.Context(), chi.URLParam(r, "uuid"), req.Memories)
	if err != nil {
		response.RespondServiceError(w, err, "failed to store memories")
		return
	}

	response.RespondJSON(w, http.StatusOK, goals)
}
