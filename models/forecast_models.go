package models

// Prediction is the output of a demand predictor strategy for one region.
type Prediction struct {
	Month      string  `json:"month"`
	Demand     float64 `json:"demand"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}

// Outcome values for a (product, region) pair during forecast generation.
const (
	OutcomeCreated = "created"
	OutcomeSkipped = "skipped"
	OutcomeFailed  = "failed"
)

// RegionOutcome reports what happened to one (product, region) pair, so callers
// can tell "skipped for insufficient data" apart from "failed".
type RegionOutcome struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Region      string `json:"region"`
	Status      string `json:"status"`
	Detail      string `json:"detail,omitempty"`
}

// DashboardSummary holds the headline counts for the dashboard endpoint.
type DashboardSummary struct {
	TotalProducts  int     `json:"total_products"`
	TotalSales     int     `json:"total_sales"`
	TotalForecasts int     `json:"total_forecasts"`
	TotalRevenue   float64 `json:"total_revenue"`
}
