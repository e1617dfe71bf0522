package models

import "time"

// --- Core Models ---

// Product represents a stock-keeping unit known to the system.
// Products are auto-created the first time an upload references a new SKU.
type Product struct {
	ID           string    `json:"id"`
	SKU          string    `json:"sku"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	CurrentStock int       `json:"current_stock"`
	ReorderLevel int       `json:"reorder_level"`
	LastUpdated  time.Time `json:"last_updated"`
}

// ProductSummary is the slim product view embedded in sale and forecast listings.
type ProductSummary struct {
	ID   string `json:"id"`
	SKU  string `json:"sku"`
	Name string `json:"name"`
}

// Sale is a single historical sales record. Sales are append-only.
type Sale struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Date      time.Time       `json:"date"`
	Quantity  int             `json:"quantity"`
	Region    *string         `json:"region,omitempty"`
	Revenue   float64         `json:"revenue"`
	Product   *ProductSummary `json:"Product,omitempty"`
}

// Forecast is a generated demand prediction for one product in one region.
// Forecasts are append-only; re-running generation accumulates records.
type Forecast struct {
	ID              string          `json:"id"`
	ProductID       string          `json:"product_id"`
	Region          string          `json:"region"`
	ForecastMonth   string          `json:"forecast_month"`
	PredictedDemand float64         `json:"predicted_demand"`
	ConfidenceScore float64         `json:"confidence_score"`
	AIReasoning     string          `json:"ai_reasoning"`
	CreatedAt       time.Time       `json:"created_at"`
	Product         *ProductSummary `json:"Product,omitempty"`
}
