package handlers

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"

	"app/models"
	"app/stores"
)

// ProductHandler serves the product listing.
type ProductHandler struct {
	store *stores.ProductStore
}

func NewProductHandler(store *stores.ProductStore) *ProductHandler {
	return &ProductHandler{store: store}
}

// HandleListProducts handles GET /api/v1/products.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	products, err := h.store.FindAll(context.Background())
	if err != nil {
		log.Printf("Error listing products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to retrieve products"})
	}
	if products == nil {
		products = []models.Product{}
	}
	return c.JSON(products)
}
