package model

import "time"

// UserFacts are the financial facts a user has shared. A nil field means "not present"
// and must be branched on, never read as zero.
type UserFacts struct {
	UserID      string    `json:"userId"`
	Income      *float64  `json:"income"`
	CreditScore *int      `json:"creditScore"`
	ZipCode     *string   `json:"zipCode"`
	Assets      *float64  `json:"assets"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// UserGoals holds the free-form goals, preferences and remembered notes of a user.
type UserGoals struct {
	UserID      string    `json:"userId"`
	Goals       string    `json:"goals"`
	Preferences string    `json:"preferences"`
	Memories    []string  `json:"memories"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// UserFactsUpdate is a partial update of UserFacts. Nil fields are left unchanged.
type UserFactsUpdate struct {
	Income      *float64 `json:"income"`
	CreditScore *int     `json:"creditScore"`
	ZipCode     *string  `json:"zipCode"`
	Assets      *float64 `json:"assets"`
}

// UserGoalsUpdate is a partial update of UserGoals. Nil fields are left unchanged.
type UserGoalsUpdate struct {
	Goals       *string `json:"goals"`
	Preferences *string `json:"preferences"`
}
