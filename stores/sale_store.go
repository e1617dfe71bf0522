package stores

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"app/models"
)

// SaleStore persists sales in Postgres. Sales are append-only; there is no
// update or delete path.
type SaleStore struct {
	db *pgxpool.Pool
}

func NewSaleStore(db *pgxpool.Pool) *SaleStore {
	return &SaleStore{db: db}
}

// Create appends a sale record, generating its ID.
func (s *SaleStore) Create(ctx context.Context, sale *models.Sale) error {
	if sale.ID == "" {
		sale.ID = uuid.NewString()
	}

	query := `
		INSERT INTO sales (id, product_id, sale_date, quantity, region, revenue)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	if _, err := s.db.Exec(ctx, query,
		sale.ID, sale.ProductID, sale.Date, sale.Quantity, sale.Region, sale.Revenue,
	); err != nil {
		return fmt.Errorf("failed to create sale: %w", err)
	}
	return nil
}

// FindByProduct returns one product's sales ordered ascending by date, the
// ordering the forecast pipeline depends on.
func (s *SaleStore) FindByProduct(ctx context.Context, productID string) ([]models.Sale, error) {
	query := `
		SELECT id, product_id, sale_date, quantity, region, revenue
		FROM sales
		WHERE product_id = $1
		ORDER BY sale_date ASC
	`
	rows, err := s.db.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales for product %s: %w", productID, err)
	}
	defer rows.Close()

	var sales []models.Sale
	for rows.Next() {
		var sale models.Sale
		if err := rows.Scan(&sale.ID, &sale.ProductID, &sale.Date, &sale.Quantity, &sale.Region, &sale.Revenue); err != nil {
			return nil, fmt.Errorf("failed to scan sale: %w", err)
		}
		sales = append(sales, sale)
	}
	return sales, rows.Err()
}

// CountAll returns the total number of sale records.
func (s *SaleStore) CountAll(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRow(ctx, "SELECT COUNT(*) FROM sales").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count sales: %w", err)
	}
	return count, nil
}

// FindAll returns a page of sales newest first, each with its product summary.
func (s *SaleStore) FindAll(ctx context.Context, limit, offset int) ([]models.Sale, error) {
	query := `
		SELECT s.id, s.product_id, s.sale_date, s.quantity, s.region, s.revenue,
		       p.id, p.sku, p.name
		FROM sales s
		JOIN products p ON s.product_id = p.id
		ORDER BY s.sale_date DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := s.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	defer rows.Close()

	var sales []models.Sale
	for rows.Next() {
		var sale models.Sale
		var product models.ProductSummary
		if err := rows.Scan(
			&sale.ID, &sale.ProductID, &sale.Date, &sale.Quantity, &sale.Region, &sale.Revenue,
			&product.ID, &product.SKU, &product.Name,
		); err != nil {
			return nil, fmt.Errorf("failed to scan sale: %w", err)
		}
		sale.Product = &product
		sales = append(sales, sale)
	}
	return sales, rows.Err()
}
