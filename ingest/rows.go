package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Row is one raw upload row before parsing. All fields are kept as strings;
// Process validates and converts them.
type Row struct {
	ProductID   string
	ProductName string
	Date        string
	Quantity    string
	Region      string
	Revenue     string
}

// rowFromRecord maps a header-indexed record into a Row. Unknown columns are
// ignored so uploads may carry extra fields.
func rowFromRecord(header map[string]int, record []string) Row {
	field := func(name string) string {
		idx, ok := header[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}
	return Row{
		ProductID:   field("ProductID"),
		ProductName: field("ProductName"),
		Date:        field("Date"),
		Quantity:    field("Quantity"),
		Region:      field("Region"),
		Revenue:     field("Revenue"),
	}
}

func headerIndex(fields []string) map[string]int {
	header := make(map[string]int, len(fields))
	for i, name := range fields {
		header[strings.TrimSpace(name)] = i
	}
	return header
}

// ParseCSV reads the expected ProductID,ProductName,Date,Quantity,Region,Revenue
// columns from a CSV stream. Header names are trimmed; column order is free.
func ParseCSV(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	fields, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	header := headerIndex(fields)

	var rows []Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}
		rows = append(rows, rowFromRecord(header, record))
	}
	return rows, nil
}

// ParseXLSX reads the same columns from the first sheet of an Excel workbook.
func ParseXLSX(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("Excel file has no sheets")
	}
	records, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read Excel sheet %q: %w", sheet, err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	header := headerIndex(records[0])
	rows := make([]Row, 0, len(records)-1)
	for _, record := range records[1:] {
		rows = append(rows, rowFromRecord(header, record))
	}
	return rows, nil
}
