package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"

	"app/config"
	"app/database"
	"app/forecast"
	"app/handlers"
	"app/ingest"
	"app/middleware"
	"app/routes"
	"app/stores"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database
	database.InitDB(cfg.DatabaseURL)
	defer database.CloseDB()

	productStore := stores.NewProductStore(database.GetDB())
	saleStore := stores.NewSaleStore(database.GetDB())
	forecastStore := stores.NewForecastStore(database.GetDB())

	// The remote predictor is used only when a credential is configured; it
	// degrades to the mock internally on any failure.
	var predictor forecast.Predictor
	if cfg.AIConfigured() {
		predictor = forecast.NewGeminiPredictor(cfg)
	} else {
		log.Println("GEMINI_API_KEY not set, using mock prediction logic")
		predictor = forecast.MockPredictor{}
	}

	forecastService := forecast.NewService(productStore, saleStore, forecastStore, predictor)
	ingestService := ingest.NewService(productStore, saleStore)

	app := fiber.New()
	app.Use(cors.New())
	app.Use(middleware.RequestLogger)

	routes.SetupRoutes(
		app,
		handlers.NewUploadHandler(ingestService),
		handlers.NewProductHandler(productStore),
		handlers.NewSalesHandler(saleStore),
		handlers.NewForecastHandler(forecastService, forecastStore),
	)

	log.Fatal(app.Listen(":" + cfg.Port))
}
