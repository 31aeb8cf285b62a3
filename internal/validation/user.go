package validation

import (
	"fmt"
	"strings"

	"github.com/liamba05/Fynnance/internal/api/request"
)

const (
	maxGoalsLength        = 2000
	maxMemoryLength       = 500
	maxMemoriesPerRequest = 50
)

// ValidateUpdateFacts validates a partial facts update. Only provided fields are checked.
func ValidateUpdateFacts(req request.UpdateFactsRequest) error {
	errors := make(map[string]string)

	if req.Income == nil && req.CreditScore == nil && req.ZipCode == nil && req.Assets == nil {
		return &Error{Fields: map[string]string{"body": "at least one fact is required"}}
	}

	if req.Income != nil {
		if !finite(*req.Income) || *req.Income <= 0 {
			errors["income"] = "income must be greater than zero"
		}
	}
	if req.CreditScore != nil {
		if msg := creditScoreProblem(*req.CreditScore); msg != "" {
			errors["creditScore"] = msg
		}
	}
	if req.ZipCode != nil {
		if err := ValidateZipCode(*req.ZipCode); err != nil {
			errors["zipCode"] = err.Error()
		}
	}
	if req.Assets != nil && !finite(*req.Assets) {
		errors["assets"] = "assets must be a finite number"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

// ValidateUpdateGoals validates a partial goals update.
func ValidateUpdateGoals(req request.UpdateGoalsRequest) error {
	errors := make(map[string]string)

	if req.Goals == nil && req.Preferences == nil {
		return &Error{Fields: map[string]string{"body": "goals or preferences is required"}}
	}

	if req.Goals != nil && len(*req.Goals) > maxGoalsLength {
		errors["goals"] = fmt.Sprintf("goals must be %d characters or less", maxGoalsLength)
	}
	if req.Preferences != nil && len(*req.Preferences) > maxGoalsLength {
		errors["preferences"] = fmt.Sprintf("preferences must be %d characters or less", maxGoalsLength)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

// ValidateAddMemories validates a batch of memories.
func ValidateAddMemories(req request.AddMemoriesRequest) error {
	errors := make(map[string]string)

	switch {
	case len(req.Memories) == 0:
		errors["memories"] = "at least one memory is required"
	case len(req.Memories) > maxMemoriesPerRequest:
		errors["memories"] = fmt.Sprintf("at most %d memories per request", maxMemoriesPerRequest)
	}

	blank := true
	for i, m := range req.Memories {
		if strings.TrimSpace(m) != "" {
			blank = false
		}
		if len(m) > maxMemoryLength {
			errors[fmt.Sprintf("memories[%d]", i)] = fmt.Sprintf("memory must be %d characters or less", maxMemoryLength)
		}
	}
	if len(req.Memories) > 0 && blank {
		errors["memories"] = "memories must not all be blank"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
