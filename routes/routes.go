package routes

import (
	"github.com/gofiber/fiber/v2"

	"app/handlers"
)

// SetupRoutes defines all the routes for the application.
func SetupRoutes(
	app *fiber.App,
	upload *handlers.UploadHandler,
	products *handlers.ProductHandler,
	sales *handlers.SalesHandler,
	forecasts *handlers.ForecastHandler,
) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Inventory Forecasting API Running")
	})

	api := app.Group("/api/v1")

	api.Get("/health", handlers.HandleHealth)
	api.Get("/dashboard/summary", handlers.HandleGetDashboardSummary)

	api.Post("/upload", upload.HandleUploadSales)
	api.Get("/products", products.HandleListProducts)
	api.Get("/sales", sales.HandleListSales)

	api.Post("/forecast", forecasts.HandleGenerateForecast)
	api.Get("/forecasts", forecasts.HandleListForecasts)
}
