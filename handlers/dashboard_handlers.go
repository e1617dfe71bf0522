package handlers

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"

	"app/database"
	"app/models"
)

// HandleGetDashboardSummary handles GET /api/v1/dashboard/summary.
func HandleGetDashboardSummary(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	var summary models.DashboardSummary

	if err := db.QueryRow(ctx, "SELECT COUNT(*) FROM products").Scan(&summary.TotalProducts); err != nil {
		log.Printf("Error counting products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to count products"})
	}

	if err := db.QueryRow(ctx, "SELECT COUNT(*) FROM sales").Scan(&summary.TotalSales); err != nil {
		log.Printf("Error counting sales: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to count sales"})
	}

	if err := db.QueryRow(ctx, "SELECT COUNT(*) FROM forecasts").Scan(&summary.TotalForecasts); err != nil {
		log.Printf("Error counting forecasts: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to count forecasts"})
	}

	if err := db.QueryRow(ctx, "SELECT COALESCE(SUM(revenue), 0) FROM sales").Scan(&summary.TotalRevenue); err != nil {
		log.Printf("Error calculating total revenue: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to calculate total revenue"})
	}

	return c.JSON(summary)
}

// HandleHealth handles GET /api/v1/health with a database ping.
func HandleHealth(c *fiber.Ctx) error {
	if err := database.GetDB().Ping(context.Background()); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Database ping failed: " + err.Error()})
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
