package response

import (
	"errors"
	"log"
	"net/http"

	"github.com/liamba05/Fynnance/internal/apperrors"
	"github.com/liamba05/Fynnance/internal/validation"
)

// StatusFor maps an error kind to its HTTP status. Unknown errors are 500.
// Upstream failures are 502 even when they wrap an input error from the provider's data.
func StatusFor(err error) int {
	var verr *validation.Error
	switch {
	case errors.Is(err, apperrors.ErrUpstreamData):
		return http.StatusBadGateway
	case errors.As(err, &verr), errors.Is(err, apperrors.ErrInvalidInput), errors.Is(err, validation.ErrInvalidUUID):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrMissingRequiredData), errors.Is(err, apperrors.ErrInsufficientPayment):
		return http.StatusUnprocessableEntity
	case errors.Is(err, apperrors.ErrUserNotFound), errors.Is(err, apperrors.ErrMarketDataNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// RespondServiceError writes err with the status of its kind.
// Typed errors carry their remediation data in details; fallback is the message
// used for unclassified failures.
//
// Example:
//
//	response.RespondServiceError(w, err, apperrors.ErrFailedToBuildProfile.Error())
func RespondServiceError(w http.ResponseWriter, err error, fallback string) {
	status := StatusFor(err)

	var (
		verr         *validation.Error
		invalid      *apperrors.InvalidInputError
		missing      *apperrors.MissingRequiredDataError
		insufficient *apperrors.InsufficientPaymentError
	)
	switch {
	case status == http.StatusBadGateway:
		log.Printf("upstream failure: %v", err)
		RespondError(w, status, apperrors.ErrUpstreamData.Error(), err.Error())
	case errors.As(err, &verr):
		RespondError(w, status, "validation failed", verr.Fields)
	case errors.As(err, &invalid):
		RespondError(w, status, apperrors.ErrInvalidInput.Error(), map[string]string{
			"field":  invalid.Field,
			"reason": invalid.Reason,
		})
	case errors.As(err, &missing):
		RespondError(w, status, apperrors.ErrMissingRequiredData.Error(), map[string]string{
			"field":   missing.Field,
			"message": missing.Error(),
		})
	case errors.As(err, &insufficient):
		RespondError(w, status, apperrors.ErrInsufficientPayment.Error(), map[string]float64{
			"payment":          insufficient.Payment,
			"monthly_interest": insufficient.MonthlyInterest,
			"minimum_required": insufficient.MinimumRequired,
		})
	case status == http.StatusInternalServerError:
		log.Printf("%s: %v", fallback, err)
		RespondError(w, status, fallback, err.Error())
	default:
		RespondError(w, status, err.Error(), "")
	}
}
