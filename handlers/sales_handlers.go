package handlers

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"

	"app/models"
	"app/stores"
	"app/utils"
)

// SalesHandler serves the sales listing.
type SalesHandler struct {
	store *stores.SaleStore
}

func NewSalesHandler(store *stores.SaleStore) *SalesHandler {
	return &SalesHandler{store: store}
}

// HandleListSales handles GET /api/v1/sales with page/pageSize pagination.
// Each sale carries a slim product summary.
func (h *SalesHandler) HandleListSales(c *fiber.Ctx) error {
	ctx := context.Background()

	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("pageSize", 50)

	total, err := h.store.CountAll(ctx)
	if err != nil {
		log.Printf("Error counting sales: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to count sales"})
	}

	pagination := utils.CreatePagination(total, page, pageSize)
	sales, err := h.store.FindAll(ctx, pagination.PageSize, pagination.Offset())
	if err != nil {
		log.Printf("Error listing sales: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to retrieve sales"})
	}
	if sales == nil {
		sales = []models.Sale{}
	}

	return c.JSON(fiber.Map{"sales": sales, "pagination": pagination})
}
