package ingest

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"app/models"
)

// Store contracts consumed by ingestion.

type ProductStore interface {
	FindBySKU(ctx context.Context, sku string) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
}

type SaleStore interface {
	Create(ctx context.Context, sale *models.Sale) error
}

// dateLayouts are tried in order when parsing the Date column.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"01/02/2006",
}

// Service ingests raw upload rows: it upserts a product per SKU and appends a
// sale record per row.
type Service struct {
	products ProductStore
	sales    SaleStore
}

func NewService(products ProductStore, sales SaleStore) *Service {
	return &Service{products: products, sales: sales}
}

// Process ingests rows in order and returns how many sales were added. The
// first malformed row aborts the upload with an error naming the row; rows
// processed before it stay committed.
func (s *Service) Process(ctx context.Context, rows []Row) (int, error) {
	added := 0
	for i, row := range rows {
		if err := s.processRow(ctx, row); err != nil {
			return added, fmt.Errorf("row %d: %w", i+1, err)
		}
		added++
	}
	return added, nil
}

func (s *Service) processRow(ctx context.Context, row Row) error {
	if row.ProductID == "" {
		return fmt.Errorf("missing ProductID")
	}

	product, err := s.products.FindBySKU(ctx, row.ProductID)
	if err != nil {
		return err
	}
	if product == nil {
		if row.ProductName == "" {
			return fmt.Errorf("missing ProductName for new product %s", row.ProductID)
		}
		product = &models.Product{
			SKU:      row.ProductID,
			Name:     row.ProductName,
			Category: "Uncategorized",
		}
		if err := s.products.Create(ctx, product); err != nil {
			return err
		}
	}

	date, err := parseDate(row.Date)
	if err != nil {
		return err
	}
	quantity, err := strconv.Atoi(row.Quantity)
	if err != nil {
		return fmt.Errorf("invalid Quantity %q", row.Quantity)
	}
	if quantity < 0 {
		return fmt.Errorf("negative Quantity %d", quantity)
	}

	sale := &models.Sale{
		ProductID: product.ID,
		Date:      date,
		Quantity:  quantity,
		Revenue:   parseRevenue(row.Revenue),
	}
	if row.Region != "" {
		region := row.Region
		sale.Region = &region
	}
	return s.sales.Create(ctx, sale)
}

func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("missing Date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid Date %q", value)
}

// parseRevenue tolerates absent or malformed revenue cells, defaulting to 0.
func parseRevenue(value string) float64 {
	if value == "" {
		return 0
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return 0
	}
	f, _ := d.Float64()
	return f
}
