package model

// AffordabilitySummary holds the headline affordability numbers.
// EstimatedRate is expressed in percent, e.g. 4.75.
type AffordabilitySummary struct {
	MaxHomePrice         float64 `json:"maxHomePrice"`
	MaxMonthlyPayment    float64 `json:"maxMonthlyPayment"`
	EstimatedRate        float64 `json:"estimatedRate"`
	CreditScore          int     `json:"creditScore"`
	CreditScoreDefaulted bool    `json:"creditScoreDefaulted"`
}

// MarketPosition compares the affordable price against the local market.
type MarketPosition struct {
	MedianPrice     *float64 `json:"medianPrice"`
	VsMedianPct     *float64 `json:"vsMedianPct"`
	AffordableRange string   `json:"affordableRange"`
	PricedOut       bool     `json:"pricedOut"`
}

// Recommendation is one rule-based suggestion with its fixed action items.
type Recommendation struct {
	Type        string   `json:"type"`
	Message     string   `json:"message"`
	ActionItems []string `json:"actionItems"`
}

// RecommendationSet groups the recommendations with a one-line summary.
type RecommendationSet struct {
	Items   []Recommendation `json:"items"`
	Summary string           `json:"summary"`
}

// AffordabilityResult is the output of the affordability analysis.
type AffordabilityResult struct {
	Summary         AffordabilitySummary `json:"summary"`
	MarketPosition  MarketPosition       `json:"marketPosition"`
	Recommendations RecommendationSet    `json:"recommendations"`
}

// InvestmentSummary holds the yield and cash flow figures of a rental property.
type InvestmentSummary struct {
	GrossYield           float64 `json:"grossYield"`
	NetYield             float64 `json:"netYield"`
	AnnualRent           float64 `json:"annualRent"`
	NetAnnualIncome      float64 `json:"netAnnualIncome"`
	MonthlyCashflow      float64 `json:"monthlyCashflow"`
	TotalMonthlyExpenses float64 `json:"totalMonthlyExpenses"`
	PriceToRentRatio     float64 `json:"priceToRentRatio"`
}

// InvestmentExpenses is the annual expense model of a rental property.
type InvestmentExpenses struct {
	PropertyTax float64 `json:"propertyTax"`
	Insurance   float64 `json:"insurance"`
	Maintenance float64 `json:"maintenance"`
	Vacancy     float64 `json:"vacancy"`
	Total       float64 `json:"total"`
}

// MarketComparison compares a property against the local market figures.
type MarketComparison struct {
	MarketYield         float64 `json:"marketYield"`
	MarketPriceToRent   float64 `json:"marketPriceToRent"`
	YieldVsMarket       float64 `json:"yieldVsMarket"`
	PriceToRentVsMarket float64 `json:"priceToRentVsMarket"`
}

// Rating is the verdict of the investment score.
type Rating string

const (
	RatingStrong   Rating = "strong"
	RatingModerate Rating = "moderate"
	RatingCaution  Rating = "caution"
)

// InvestmentRecommendation is the scored verdict with the reasons that earned points.
type InvestmentRecommendation struct {
	Score          int      `json:"score"`
	Rating         Rating   `json:"rating"`
	Recommendation string   `json:"recommendation"`
	Reasons        []string `json:"reasons"`
}

// InvestmentAnalysis is the output of the investment potential analysis.
type InvestmentAnalysis struct {
	PropertyPrice    float64                  `json:"propertyPrice"`
	ExpectedRent     float64                  `json:"expectedRent"`
	Summary          InvestmentSummary        `json:"summary"`
	Expenses         InvestmentExpenses       `json:"expenses"`
	MarketComparison MarketComparison         `json:"marketComparison"`
	Recommendation   InvestmentRecommendation `json:"recommendation"`
}
