package apperrors

import (
	"errors"
	"fmt"
)

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrUserNotFound indicates that no user facts record exists for the given user ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrMarketDataNotFound indicates that the market data provider returned no listings
	// for the requested zip code and property type.
	ErrMarketDataNotFound = errors.New("market data not found")

	// ErrSymbolNotFound indicates that a quote lookup returned no results
	ErrSymbolNotFound = errors.New("symbol not found")
)

// Error kinds of the analytics core. Every typed error below unwraps to exactly one
// of these so callers can branch with errors.Is without knowing the concrete type.
var (
	// ErrInvalidInput indicates malformed or out-of-domain numeric input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrMissingRequiredData indicates that a precondition field was not present.
	ErrMissingRequiredData = errors.New("missing required data")

	// ErrUpstreamData indicates that a collaborator fetch failed or returned an unrecognized shape.
	ErrUpstreamData = errors.New("upstream data error")

	// ErrInsufficientPayment indicates that a loan payment does not cover the monthly interest.
	ErrInsufficientPayment = errors.New("payment too low to pay off loan")
)

// Business logic errors represent validation failures or constraint violations.
var (
	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrEmptyID indicates that a required ID parameter is empty or missing.
	ErrEmptyID = errors.New("ID cannot be empty")

	// ErrQuotaExceeded indicates that the upstream provider quota for the current window is used up.
	ErrQuotaExceeded = errors.New("upstream quota exceeded")

	// ErrInvalidZipCode indicates that a zip code parameter is missing or malformed.
	ErrInvalidZipCode = errors.New("zip code is required")
)

// Operation failure errors represent system-level failures when retrieving or processing data.
var (
	ErrFailedToRetrieveFacts       = errors.New("failed to retrieve user facts")
	ErrFailedToUpdateFacts         = errors.New("failed to update user facts")
	ErrFailedToRetrieveGoals       = errors.New("failed to retrieve user goals")
	ErrFailedToBuildProfile        = errors.New("failed to build financial profile")
	ErrFailedToRetrieveMarketStats = errors.New("failed to retrieve market stats")
)

// InvalidInputError reports a malformed or out-of-domain value. It is never clamped.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrInvalidInput, e.Field, e.Reason)
}

func (e *InvalidInputError) Unwrap() error { return ErrInvalidInput }

// NewInvalidInput builds an InvalidInputError for the named field.
func NewInvalidInput(field, reason string) *InvalidInputError {
	return &InvalidInputError{Field: field, Reason: reason}
}

// MissingRequiredDataError reports an absent precondition field, e.g. income.
type MissingRequiredDataError struct {
	Field string
}

func (e *MissingRequiredDataError) Error() string {
	return fmt.Sprintf("%s: %s is not set, please provide it to run this analysis", ErrMissingRequiredData, e.Field)
}

func (e *MissingRequiredDataError) Unwrap() error { return ErrMissingRequiredData }

// UpstreamDataError wraps a failed collaborator fetch. The original cause is kept.
type UpstreamDataError struct {
	Source string
	Err    error
}

func (e *UpstreamDataError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrUpstreamData, e.Source, e.Err)
}

// Unwrap exposes both the error kind and the original cause.
func (e *UpstreamDataError) Unwrap() []error { return []error{ErrUpstreamData, e.Err} }

// NewUpstream wraps err as an UpstreamDataError from source. A nil err stays nil.
func NewUpstream(source string, err error) error {
	if err == nil {
		return nil
	}
	var existing *UpstreamDataError
	if errors.As(err, &existing) {
		return err
	}
	return &UpstreamDataError{Source: source, Err: err}
}

// InsufficientPaymentError carries the payment that would be needed as remediation data.
type InsufficientPaymentError struct {
	Payment         float64
	MonthlyInterest float64
	MinimumRequired float64
}

func (e *InsufficientPaymentError) Error() string {
	return fmt.Sprintf("%s: payment %.2f does not cover monthly interest %.2f, minimum required %.2f",
		ErrInsufficientPayment, e.Payment, e.MonthlyInterest, e.MinimumRequired)
}

func (e *InsufficientPaymentError) Unwrap() error { return ErrInsufficientPayment }
