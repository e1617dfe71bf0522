package forecast

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"app/models"
)

// --- in-memory fakes ---

type memProductStore struct {
	products []models.Product
	failAll  bool
}

func (m *memProductStore) FindByID(_ context.Context, id string) (*models.Product, error) {
	for _, p := range m.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, nil
}

func (m *memProductStore) FindAll(context.Context) ([]models.Product, error) {
	if m.failAll {
		return nil, errors.New("store unreachable")
	}
	return m.products, nil
}

type memSaleStore struct {
	byProduct map[string][]models.Sale
}

func (m *memSaleStore) FindByProduct(_ context.Context, productID string) ([]models.Sale, error) {
	return m.byProduct[productID], nil
}

type memForecastStore struct {
	mu         sync.Mutex
	forecasts  []models.Forecast
	failRegion string
}

func (m *memForecastStore) Create(_ context.Context, forecast *models.Forecast) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failRegion != "" && forecast.Region == m.failRegion {
		return errors.New("insert failed")
	}
	forecast.ID = uuid.NewString()
	forecast.CreatedAt = time.Now()
	m.forecasts = append(m.forecasts, *forecast)
	return nil
}

func newFixture(predictor Predictor) (*Service, *memProductStore, *memSaleStore, *memForecastStore) {
	products := &memProductStore{}
	sales := &memSaleStore{byProduct: map[string][]models.Sale{}}
	forecasts := &memForecastStore{}
	return NewService(products, sales, forecasts, predictor), products, sales, forecasts
}

func regionSale(date time.Time, quantity int, region string) models.Sale {
	sale := models.Sale{Date: date, Quantity: quantity}
	if region != "" {
		sale.Region = &region
	}
	return sale
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

// --- tests ---

func TestGenerateForecastsEndToEnd(t *testing.T) {
	service, products, sales, store := newFixture(MockPredictor{})
	products.products = []models.Product{{ID: "p1", SKU: "P1", Name: "Widget"}}
	sales.byProduct["p1"] = []models.Sale{
		regionSale(day(2024, time.January, 15), 10, "US"),
		regionSale(day(2024, time.February, 15), 12, "US"),
		regionSale(day(2024, time.March, 15), 14, "US"),
	}

	created, report, err := service.GenerateForecasts(context.Background(), "")
	require.NoError(t, err)

	require.Len(t, created, 1)
	forecast := created[0]
	assert.Equal(t, "p1", forecast.ProductID)
	assert.Equal(t, "US", forecast.Region)
	assert.Equal(t, "2024-04", forecast.ForecastMonth)
	assert.Equal(t, 13.0, forecast.PredictedDemand) // round((10+12+14)/3 * 1.1)
	assert.Equal(t, 0.85, forecast.ConfidenceScore)
	assert.Contains(t, forecast.AIReasoning, "US (Mock).")

	require.Len(t, report, 1)
	assert.Equal(t, models.OutcomeCreated, report[0].Status)
	assert.Len(t, store.forecasts, 1)
}

func TestGenerateForecastsSkipsThinRegions(t *testing.T) {
	service, products, sales, store := newFixture(MockPredictor{})
	products.products = []models.Product{{ID: "p1", SKU: "P1", Name: "Widget"}}
	sales.byProduct["p1"] = []models.Sale{
		regionSale(day(2024, time.January, 1), 10, "US"),
		regionSale(day(2024, time.February, 1), 12, "US"),
		regionSale(day(2024, time.March, 1), 9, "EU"), // single record
	}

	created, report, err := service.GenerateForecasts(context.Background(), "")
	require.NoError(t, err)

	require.Len(t, created, 1)
	assert.Equal(t, "US", created[0].Region)
	assert.Len(t, store.forecasts, 1)

	require.Len(t, report, 2)
	byRegion := map[string]models.RegionOutcome{}
	for _, outcome := range report {
		byRegion[outcome.Region] = outcome
	}
	assert.Equal(t, models.OutcomeSkipped, byRegion["EU"].Status)
	assert.Contains(t, byRegion["EU"].Detail, "insufficient data")
	assert.Equal(t, models.OutcomeCreated, byRegion["US"].Status)
}

func TestGenerateForecastsGlobalNormalization(t *testing.T) {
	service, products, sales, _ := newFixture(MockPredictor{})
	products.products = []models.Product{{ID: "p1", SKU: "P1", Name: "Widget"}}
	// One sale with no region and one with an empty region form a single
	// Global cohort of two records.
	sales.byProduct["p1"] = []models.Sale{
		regionSale(day(2024, time.January, 1), 10, ""),
		{Date: day(2024, time.February, 1), Quantity: 12, Region: strPtr("")},
	}

	created, _, err := service.GenerateForecasts(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, "Global", created[0].Region)
}

func TestGenerateForecastsNoDeduplication(t *testing.T) {
	service, products, sales, store := newFixture(MockPredictor{})
	products.products = []models.Product{{ID: "p1", SKU: "P1", Name: "Widget"}}
	sales.byProduct["p1"] = []models.Sale{
		regionSale(day(2024, time.January, 1), 10, "US"),
		regionSale(day(2024, time.February, 1), 12, "US"),
	}

	_, _, err := service.GenerateForecasts(context.Background(), "")
	require.NoError(t, err)
	_, _, err = service.GenerateForecasts(context.Background(), "")
	require.NoError(t, err)

	// Two identical runs append two records; there is no dedup key.
	assert.Len(t, store.forecasts, 2)
}

func TestGenerateForecastsSingleProductFilter(t *testing.T) {
	service, products, sales, store := newFixture(MockPredictor{})
	products.products = []models.Product{
		{ID: "p1", SKU: "P1", Name: "Widget"},
		{ID: "p2", SKU: "P2", Name: "Gadget"},
	}
	for _, id := range []string{"p1", "p2"} {
		sales.byProduct[id] = []models.Sale{
			regionSale(day(2024, time.January, 1), 10, "US"),
			regionSale(day(2024, time.February, 1), 12, "US"),
		}
	}

	created, _, err := service.GenerateForecasts(context.Background(), "p2")
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, "p2", created[0].ProductID)
	assert.Len(t, store.forecasts, 1)
}

func TestGenerateForecastsUnknownProductIsFatal(t *testing.T) {
	service, _, _, _ := newFixture(MockPredictor{})
	_, _, err := service.GenerateForecasts(context.Background(), "missing")
	assert.ErrorContains(t, err, "not found")
}

func TestGenerateForecastsStoreUnreachableIsFatal(t *testing.T) {
	service, products, _, _ := newFixture(MockPredictor{})
	products.failAll = true
	_, _, err := service.GenerateForecasts(context.Background(), "")
	assert.Error(t, err)
}

func TestGenerateForecastsPersistFailureDoesNotAbortOthers(t *testing.T) {
	service, products, sales, store := newFixture(MockPredictor{})
	products.products = []models.Product{{ID: "p1", SKU: "P1", Name: "Widget"}}
	sales.byProduct["p1"] = []models.Sale{
		regionSale(day(2024, time.January, 1), 10, "US"),
		regionSale(day(2024, time.February, 1), 12, "US"),
		regionSale(day(2024, time.January, 1), 20, "EU"),
		regionSale(day(2024, time.February, 1), 24, "EU"),
	}
	store.failRegion = "EU"

	created, report, err := service.GenerateForecasts(context.Background(), "")
	require.NoError(t, err)

	require.Len(t, created, 1)
	assert.Equal(t, "US", created[0].Region)

	byRegion := map[string]models.RegionOutcome{}
	for _, outcome := range report {
		byRegion[outcome.Region] = outcome
	}
	assert.Equal(t, models.OutcomeFailed, byRegion["EU"].Status)
	assert.Contains(t, byRegion["EU"].Detail, "persist")
	assert.Equal(t, models.OutcomeCreated, byRegion["US"].Status)
}

func TestGenerateForecastsNoProducts(t *testing.T) {
	service, _, _, _ := newFixture(MockPredictor{})
	created, report, err := service.GenerateForecasts(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, created)
	assert.Empty(t, report)
}
