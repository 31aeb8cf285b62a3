package request

// UpdateFactsRequest is a partial update of the stored user facts.
type UpdateFactsRequest struct {
	Income      *float64 `json:"income,omitempty"`
	CreditScore *int     `json:"creditScore,omitempty"`
	ZipCode     *string  `json:"zipCode,omitempty"`
	Assets      *float64 `json:"assets,omitempty"`
}

// UpdateGoalsRequest is a partial update of goals and preferences.
type UpdateGoalsRequest struct {
	Goals       *string `json:"goals,omitempty"`
	Preferences *string `json:"preferences,omitempty"`
}

// AddMemoriesRequest appends notes to the user's memory list.
type AddMemoriesRequest struct {
	Memories []string `json:"memories"`
}
