package handlers

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"

	"app/forecast"
	"app/models"
	"app/stores"
)

// ForecastHandler serves forecast generation and listing.
type ForecastHandler struct {
	service *forecast.Service
	store   *stores.ForecastStore
}

func NewForecastHandler(service *forecast.Service, store *stores.ForecastStore) *ForecastHandler {
	return &ForecastHandler{service: service, store: store}
}

// HandleGenerateForecast handles POST /api/v1/forecast. An optional productId
// in the body narrows the run to one product. The response carries the newly
// created forecasts plus the per-region outcome report; forecasts created
// before a later failure are never rolled back.
func (h *ForecastHandler) HandleGenerateForecast(c *fiber.Ctx) error {
	var body struct {
		ProductID string `json:"productId"`
	}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid request body"})
		}
	}

	forecasts, report, err := h.service.GenerateForecasts(context.Background(), body.ProductID)
	if err != nil {
		log.Printf("Error generating forecast: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Error generating forecast"})
	}
	if forecasts == nil {
		forecasts = []models.Forecast{}
	}
	if report == nil {
		report = []models.RegionOutcome{}
	}

	return c.JSON(fiber.Map{
		"message":   "Forecast generated",
		"forecasts": forecasts,
		"report":    report,
	})
}

// HandleListForecasts handles GET /api/v1/forecasts, newest first.
func (h *ForecastHandler) HandleListForecasts(c *fiber.Ctx) error {
	forecasts, err := h.store.FindAll(context.Background())
	if err != nil {
		log.Printf("Error listing forecasts: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to retrieve forecasts"})
	}
	if forecasts == nil {
		forecasts = []models.Forecast{}
	}
	return c.JSON(forecasts)
}
