package handlers

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"app/ingest"
)

// UploadHandler accepts sales history uploads.
type UploadHandler struct {
	ingest *ingest.Service
}

func NewUploadHandler(service *ingest.Service) *UploadHandler {
	return &UploadHandler{ingest: service}
}

// HandleUploadSales handles POST /api/v1/upload. It accepts a multipart CSV
// or Excel (.xlsx) file with ProductID, ProductName, Date, Quantity, Region,
// Revenue columns, upserts products and appends sales.
func (h *UploadHandler) HandleUploadSales(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "No file uploaded."})
	}

	name := strings.ToLower(fileHeader.Filename)
	isCSV := strings.HasSuffix(name, ".csv")
	isExcel := strings.HasSuffix(name, ".xlsx")
	if !isCSV && !isExcel {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid file format. Please upload a CSV or Excel (.xlsx) file."})
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Printf("Error opening upload %s: %v", fileHeader.Filename, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to open uploaded file"})
	}
	defer file.Close()

	var rows []ingest.Row
	if isExcel {
		rows, err = ingest.ParseXLSX(file)
	} else {
		rows, err = ingest.ParseCSV(file)
	}
	if err != nil {
		log.Printf("Error parsing upload %s: %v", fileHeader.Filename, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Error parsing file: " + err.Error()})
	}

	added, err := h.ingest.Process(context.Background(), rows)
	if err != nil {
		// Rows ingested before the bad one stay committed.
		log.Printf("Data processing error after %d row(s): %v", added, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Error processing data: " + err.Error()})
	}

	return c.JSON(fiber.Map{"message": fmt.Sprintf("Successfully processed %d sales records.", added)})
}
