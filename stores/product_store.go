package stores

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"app/models"
)

const productColumns = "id, sku, name, category, current_stock, reorder_level, last_updated"

// ProductStore persists products in Postgres.
type ProductStore struct {
	db *pgxpool.Pool
}

func NewProductStore(db *pgxpool.Pool) *ProductStore {
	return &ProductStore{db: db}
}

// Create inserts a product, generating the ID and applying the category
// default when absent. LastUpdated is filled in from the database.
func (s *ProductStore) Create(ctx context.Context, product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	if product.Category == "" {
		product.Category = "Uncategorized"
	}

	query := `
		INSERT INTO products (id, sku, name, category, current_stock, reorder_level)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING last_updated
	`
	if err := s.db.QueryRow(ctx, query,
		product.ID, product.SKU, product.Name, product.Category,
		product.CurrentStock, product.ReorderLevel,
	).Scan(&product.LastUpdated); err != nil {
		return fmt.Errorf("failed to create product %s: %w", product.SKU, err)
	}
	return nil
}

// FindBySKU returns the product with the given SKU, or nil if none exists.
func (s *ProductStore) FindBySKU(ctx context.Context, sku string) (*models.Product, error) {
	return s.findOne(ctx, "SELECT "+productColumns+" FROM products WHERE sku = $1", sku)
}

// FindByID returns the product with the given id, or nil if none exists.
func (s *ProductStore) FindByID(ctx context.Context, id string) (*models.Product, error) {
	return s.findOne(ctx, "SELECT "+productColumns+" FROM products WHERE id = $1", id)
}

func (s *ProductStore) findOne(ctx context.Context, query string, arg any) (*models.Product, error) {
	var product models.Product
	err := s.db.QueryRow(ctx, query, arg).Scan(
		&product.ID, &product.SKU, &product.Name, &product.Category,
		&product.CurrentStock, &product.ReorderLevel, &product.LastUpdated,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query product: %w", err)
	}
	return &product, nil
}

// FindAll returns every product, ordered by SKU.
func (s *ProductStore) FindAll(ctx context.Context) ([]models.Product, error) {
	rows, err := s.db.Query(ctx, "SELECT "+productColumns+" FROM products ORDER BY sku")
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var product models.Product
		if err := rows.Scan(
			&product.ID, &product.SKU, &product.Name, &product.Category,
			&product.CurrentStock, &product.ReorderLevel, &product.LastUpdated,
		); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}
	return products, rows.Err()
}
