package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// Common validation errors
var (
	ErrInvalidUUID    = fmt.Errorf("invalid UUID format")
	ErrInvalidZipCode = fmt.Errorf("invalid zip code")
)

var zipCodePattern = regexp.MustCompile(`^\d{5}$`)

// ValidateUUID checks if a string is a valid UUID
func ValidateUUID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidUUID, id)
	}
	return nil
}

// ValidateZipCode checks that zip is a five digit US zip code.
func ValidateZipCode(zip string) error {
	if !zipCodePattern.MatchString(strings.TrimSpace(zip)) {
		return fmt.Errorf("%w: must be 5 digits", ErrInvalidZipCode)
	}
	return nil
}
