package forecast

import (
	"context"
	"errors"
	"fmt"
	"math"

	"app/models"
)

// Predictor is a demand prediction strategy. Implementations receive one
// product's sales for a single region, ordered ascending by date, and return
// the prediction for the following calendar month. Callers must not invoke a
// predictor with fewer than two sales; that policy belongs to the Service.
type Predictor interface {
	Predict(ctx context.Context, product models.Product, sales []models.Sale, region string) (*models.Prediction, error)
}

// MockPredictor is the deterministic, network-free strategy used when no
// Gemini credential is configured.
type MockPredictor struct{}

func (MockPredictor) Predict(_ context.Context, _ models.Product, sales []models.Sale, region string) (*models.Prediction, error) {
	if len(sales) == 0 {
		return nil, errors.New("no sales history")
	}
	return mockPrediction(sales, region, false), nil
}

// mockPrediction projects 10% growth over the mean of the last three sales
// (fewer if the history is shorter). apiFailed switches the reasoning template
// so operators can tell a degraded remote call apart from a missing credential.
func mockPrediction(sales []models.Sale, region string, apiFailed bool) *models.Prediction {
	recent := sales
	if len(recent) > 3 {
		recent = recent[len(recent)-3:]
	}
	sum := 0
	for _, sale := range recent {
		sum += sale.Quantity
	}
	avg := float64(sum) / float64(len(recent))

	reasoning := fmt.Sprintf("Based on 10%% projected growth from recent average in %s (Mock).", region)
	if apiFailed {
		reasoning = fmt.Sprintf("Based on 10%% projected growth from recent average in %s (Mock - API Failed).", region)
	}

	return &models.Prediction{
		Month:      NextForecastMonth(latestSaleDate(sales)),
		Demand:     math.Round(avg * 1.1),
		Confidence: 0.85,
		Reasoning:  reasoning,
	}
}
