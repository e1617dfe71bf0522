package stores

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"app/models"
)

// ForecastStore persists generated forecasts in Postgres. Append-only; there
// is deliberately no uniqueness constraint on (product, region, month), so
// regenerating accumulates records.
type ForecastStore struct {
	db *pgxpool.Pool
}

func NewForecastStore(db *pgxpool.Pool) *ForecastStore {
	return &ForecastStore{db: db}
}

// Create appends a forecast record, generating its ID and reading CreatedAt
// back from the database.
func (s *ForecastStore) Create(ctx context.Context, forecast *models.Forecast) error {
	if forecast.ID == "" {
		forecast.ID = uuid.NewString()
	}
	if forecast.Region == "" {
		forecast.Region = "Global"
	}

	query := `
		INSERT INTO forecasts (id, product_id, region, forecast_month, predicted_demand, confidence_score, ai_reasoning)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`
	if err := s.db.QueryRow(ctx, query,
		forecast.ID, forecast.ProductID, forecast.Region, forecast.ForecastMonth,
		forecast.PredictedDemand, forecast.ConfidenceScore, forecast.AIReasoning,
	).Scan(&forecast.CreatedAt); err != nil {
		return fmt.Errorf("failed to create forecast: %w", err)
	}
	return nil
}

// FindAll returns every forecast newest first, each with its product summary.
func (s *ForecastStore) FindAll(ctx context.Context) ([]models.Forecast, error) {
	query := `
		SELECT f.id, f.product_id, f.region, f.forecast_month, f.predicted_demand,
		       f.confidence_score, f.ai_reasoning, f.created_at,
		       p.id, p.sku, p.name
		FROM forecasts f
		JOIN products p ON f.product_id = p.id
		ORDER BY f.created_at DESC
	`
	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list forecasts: %w", err)
	}
	defer rows.Close()

	var forecasts []models.Forecast
	for rows.Next() {
		var forecast models.Forecast
		var product models.ProductSummary
		if err := rows.Scan(
			&forecast.ID, &forecast.ProductID, &forecast.Region, &forecast.ForecastMonth,
			&forecast.PredictedDemand, &forecast.ConfidenceScore, &forecast.AIReasoning,
			&forecast.CreatedAt, &product.ID, &product.SKU, &product.Name,
		); err != nil {
			return nil, fmt.Errorf("failed to scan forecast: %w", err)
		}
		forecast.Product = &product
		forecasts = append(forecasts, forecast)
	}
	return forecasts, rows.Err()
}
