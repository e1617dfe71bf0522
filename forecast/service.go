package forecast

import (
	"context"
	"fmt"
	"log"
	"sync"

	"golang.org/x/sync/errgroup"

	"app/models"
)

// Store contracts consumed by the orchestrator. The Postgres implementations
// live in the stores package; tests substitute in-memory fakes.

type ProductStore interface {
	FindByID(ctx context.Context, id string) (*models.Product, error)
	FindAll(ctx context.Context) ([]models.Product, error)
}

type SaleStore interface {
	// FindByProduct returns the product's sales ordered ascending by date.
	FindByProduct(ctx context.Context, productID string) ([]models.Sale, error)
}

type ForecastStore interface {
	Create(ctx context.Context, forecast *models.Forecast) error
}

// minHistory is the smallest regional sequence worth predicting on.
const minHistory = 2

// predictorConcurrency bounds the fan-out over (product, region) pairs. Each
// pair costs at most one remote call.
const predictorConcurrency = 4

// Service orchestrates forecast generation: it resolves the target products,
// partitions each product's history by region, invokes the predictor on every
// region with enough data, and persists the results.
type Service struct {
	products  ProductStore
	sales     SaleStore
	forecasts ForecastStore
	predictor Predictor
}

func NewService(products ProductStore, sales SaleStore, forecasts ForecastStore, predictor Predictor) *Service {
	return &Service{
		products:  products,
		sales:     sales,
		forecasts: forecasts,
		predictor: predictor,
	}
}

// regionJob is one predictor invocation: a product's sales in one region.
type regionJob struct {
	product models.Product
	region  string
	sales   []models.Sale
}

// GenerateForecasts produces a forecast for every (product, region) pair with
// at least two sales. productID narrows the run to one product; empty means
// all products. It returns the newly created forecasts plus a per-pair outcome
// report. One pair failing never aborts the others; the error return is
// reserved for failures before the fan-out (enumerating products or reading a
// product's sales).
func (s *Service) GenerateForecasts(ctx context.Context, productID string) ([]models.Forecast, []models.RegionOutcome, error) {
	targets, err := s.resolveTargets(ctx, productID)
	if err != nil {
		return nil, nil, err
	}

	var (
		jobs     []regionJob
		outcomes []models.RegionOutcome
	)
	for _, product := range targets {
		history, err := s.sales.FindByProduct(ctx, product.ID)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load sales for product %s: %w", product.SKU, err)
		}

		for region, regional := range GroupByRegion(history) {
			if len(regional) < minHistory {
				log.Printf("Skipping %s/%s: %d record(s), needs %d", product.SKU, region, len(regional), minHistory)
				outcomes = append(outcomes, models.RegionOutcome{
					ProductID:   product.ID,
					ProductName: product.Name,
					Region:      region,
					Status:      models.OutcomeSkipped,
					Detail:      fmt.Sprintf("insufficient data: %d record(s)", len(regional)),
				})
				continue
			}
			jobs = append(jobs, regionJob{product: product, region: region, sales: regional})
		}
	}

	var (
		mu      sync.Mutex
		created []models.Forecast
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(predictorConcurrency)
	for _, job := range jobs {
		g.Go(func() error {
			outcome, forecast := s.runJob(gctx, job)
			mu.Lock()
			defer mu.Unlock()
			outcomes = append(outcomes, outcome)
			if forecast != nil {
				created = append(created, *forecast)
			}
			return nil
		})
	}
	_ = g.Wait() // jobs never return errors; failures land in the report

	return created, outcomes, nil
}

func (s *Service) resolveTargets(ctx context.Context, productID string) ([]models.Product, error) {
	if productID == "" {
		products, err := s.products.FindAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list products: %w", err)
		}
		return products, nil
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to load product %s: %w", productID, err)
	}
	if product == nil {
		return nil, fmt.Errorf("product %s not found", productID)
	}
	return []models.Product{*product}, nil
}

// runJob invokes the predictor for one (product, region) pair and persists the
// result. All failures are converted into a failed outcome.
func (s *Service) runJob(ctx context.Context, job regionJob) (models.RegionOutcome, *models.Forecast) {
	outcome := models.RegionOutcome{
		ProductID:   job.product.ID,
		ProductName: job.product.Name,
		Region:      job.region,
	}

	prediction, err := s.predictor.Predict(ctx, job.product, job.sales, job.region)
	if err != nil || prediction == nil {
		detail := "predictor returned no result"
		if err != nil {
			detail = err.Error()
		}
		log.Printf("Predictor failed for %s/%s: %s", job.product.SKU, job.region, detail)
		outcome.Status = models.OutcomeFailed
		outcome.Detail = detail
		return outcome, nil
	}

	forecast := &models.Forecast{
		ProductID:       job.product.ID,
		Region:          job.region,
		ForecastMonth:   prediction.Month,
		PredictedDemand: prediction.Demand,
		ConfidenceScore: prediction.Confidence,
		AIReasoning:     prediction.Reasoning,
	}
	if err := s.forecasts.Create(ctx, forecast); err != nil {
		log.Printf("Failed to persist forecast for %s/%s: %v", job.product.SKU, job.region, err)
		outcome.Status = models.OutcomeFailed
		outcome.Detail = fmt.Sprintf("failed to persist forecast: %v", err)
		return outcome, nil
	}

	outcome.Status = models.OutcomeCreated
	return outcome, forecast
}
