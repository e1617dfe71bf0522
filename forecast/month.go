package forecast

import (
	"time"

	"app/models"
)

// AddOneCalendarMonth returns the instant exactly one calendar month after t.
// Overflow is normalized into the following month (Jan 31 + 1 month = Mar 3,
// or Mar 2 in a leap year), not clamped to the 30th/28th.
func AddOneCalendarMonth(t time.Time) time.Time {
	return t.AddDate(0, 1, 0)
}

// NextForecastMonth formats the calendar month after lastSale as YYYY-MM.
func NextForecastMonth(lastSale time.Time) string {
	return AddOneCalendarMonth(lastSale).Format("2006-01")
}

// latestSaleDate returns the maximum sale date in the sequence, so the
// forecast month does not depend on the caller's ordering.
func latestSaleDate(sales []models.Sale) time.Time {
	var latest time.Time
	for _, sale := range sales {
		if sale.Date.After(latest) {
			latest = sale.Date
		}
	}
	return latest
}
