package forecast

import "app/models"

// GlobalRegion is the normalized label for sales that carry no region.
const GlobalRegion = "Global"

// GroupByRegion partitions one product's sales history into per-region
// sequences, preserving the input order within each region. Sales with a
// missing or empty region land under GlobalRegion. Pure function.
func GroupByRegion(sales []models.Sale) map[string][]models.Sale {
	grouped := make(map[string][]models.Sale)
	for _, sale := range sales {
		region := GlobalRegion
		if sale.Region != nil && *sale.Region != "" {
			region = *sale.Region
		}
		grouped[region] = append(grouped[region], sale)
	}
	return grouped
}
