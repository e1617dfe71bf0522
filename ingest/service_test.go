package ingest

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"app/models"
)

type memProductStore struct {
	bySKU map[string]*models.Product
}

func (m *memProductStore) FindBySKU(_ context.Context, sku string) (*models.Product, error) {
	return m.bySKU[sku], nil
}

func (m *memProductStore) Create(_ context.Context, product *models.Product) error {
	product.ID = "id-" + product.SKU
	product.LastUpdated = time.Now()
	m.bySKU[product.SKU] = product
	return nil
}

type memSaleStore struct {
	sales []models.Sale
}

func (m *memSaleStore) Create(_ context.Context, sale *models.Sale) error {
	m.sales = append(m.sales, *sale)
	return nil
}

func newFixture() (*Service, *memProductStore, *memSaleStore) {
	products := &memProductStore{bySKU: map[string]*models.Product{}}
	sales := &memSaleStore{}
	return NewService(products, sales), products, sales
}

func TestProcessCreatesProductWithDefaults(t *testing.T) {
	service, products, sales := newFixture()

	added, err := service.Process(context.Background(), []Row{
		{ProductID: "P1", ProductName: "Widget", Date: "2024-01-15", Quantity: "10", Region: "US", Revenue: "99.50"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, added)

	product := products.bySKU["P1"]
	require.NotNil(t, product)
	assert.Equal(t, "Widget", product.Name)
	assert.Equal(t, "Uncategorized", product.Category)
	assert.Equal(t, 0, product.CurrentStock)

	require.Len(t, sales.sales, 1)
	sale := sales.sales[0]
	assert.Equal(t, product.ID, sale.ProductID)
	assert.Equal(t, 10, sale.Quantity)
	require.NotNil(t, sale.Region)
	assert.Equal(t, "US", *sale.Region)
	assert.Equal(t, 99.5, sale.Revenue)
}

func TestProcessReusesExistingProduct(t *testing.T) {
	service, products, sales := newFixture()
	products.bySKU["P1"] = &models.Product{ID: "existing", SKU: "P1", Name: "Widget"}

	// ProductName may be blank when the SKU is already known.
	added, err := service.Process(context.Background(), []Row{
		{ProductID: "P1", Date: "2024-01-15", Quantity: "3"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, added)
	require.Len(t, sales.sales, 1)
	assert.Equal(t, "existing", sales.sales[0].ProductID)
	assert.Nil(t, sales.sales[0].Region)
}

func TestProcessDefaultsRevenueToZero(t *testing.T) {
	service, _, sales := newFixture()

	added, err := service.Process(context.Background(), []Row{
		{ProductID: "P1", ProductName: "Widget", Date: "2024-01-15", Quantity: "1"},
		{ProductID: "P1", Date: "2024-01-16", Quantity: "2", Revenue: "not-a-number"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, added)
	assert.Equal(t, 0.0, sales.sales[0].Revenue)
	assert.Equal(t, 0.0, sales.sales[1].Revenue)
}

func TestProcessAbortsOnMalformedRowKeepingPriorRows(t *testing.T) {
	service, _, sales := newFixture()

	added, err := service.Process(context.Background(), []Row{
		{ProductID: "P1", ProductName: "Widget", Date: "2024-01-15", Quantity: "1"},
		{ProductID: "P1", Date: "2024-01-16", Quantity: "lots"},
		{ProductID: "P1", Date: "2024-01-17", Quantity: "3"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
	assert.Contains(t, err.Error(), "Quantity")
	// The row before the malformed one stays committed.
	assert.Equal(t, 1, added)
	assert.Len(t, sales.sales, 1)
}

func TestProcessRejectsBadRows(t *testing.T) {
	tests := []struct {
		name string
		row  Row
		want string
	}{
		{"missing product id", Row{Date: "2024-01-01", Quantity: "1"}, "ProductID"},
		{"missing name for new sku", Row{ProductID: "P9", Date: "2024-01-01", Quantity: "1"}, "ProductName"},
		{"missing date", Row{ProductID: "P1", ProductName: "W", Quantity: "1"}, "Date"},
		{"bad date", Row{ProductID: "P1", ProductName: "W", Date: "soon", Quantity: "1"}, "Date"},
		{"negative quantity", Row{ProductID: "P1", ProductName: "W", Date: "2024-01-01", Quantity: "-2"}, "Quantity"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _, _ := newFixture()
			_, err := service.Process(context.Background(), []Row{tt.row})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestProcessAcceptsTimestampDates(t *testing.T) {
	service, _, sales := newFixture()
	added, err := service.Process(context.Background(), []Row{
		{ProductID: "P1", ProductName: "W", Date: "2024-02-29T10:30:00Z", Quantity: "4"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, added)
	assert.Equal(t, time.Date(2024, time.February, 29, 10, 30, 0, 0, time.UTC), sales.sales[0].Date)
}

func TestParseCSV(t *testing.T) {
	input := " ProductID ,ProductName,Date,Quantity,Region,Revenue\n" +
		"P1,Widget,2024-01-15,10,US,100\n" +
		"P1,Widget,2024-02-15,12,,\n"

	rows, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, Row{ProductID: "P1", ProductName: "Widget", Date: "2024-01-15", Quantity: "10", Region: "US", Revenue: "100"}, rows[0])
	assert.Empty(t, rows[1].Region)
	assert.Empty(t, rows[1].Revenue)
}

func TestParseCSVIgnoresExtraColumns(t *testing.T) {
	input := "ProductID,Comment,ProductName,Date,Quantity\n" +
		"P1,ignore me,Widget,2024-01-15,10\n"

	rows, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Widget", rows[0].ProductName)
	assert.Equal(t, "10", rows[0].Quantity)
}

func TestParseCSVEmptyBody(t *testing.T) {
	rows, err := ParseCSV(strings.NewReader("ProductID,ProductName,Date,Quantity,Region,Revenue\n"))
	require.NoError(t, err)
	assert.Empty(t, rows)
}
