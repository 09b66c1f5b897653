// Package reports provides fleet-wide inventory statistics.
package reports

import (
	"stockbook/internal/core/types"
)

// CategoryStats is a per-category rollup of active items.
type CategoryStats struct {
	Count int         `json:"count"`
	Value types.Money `json:"value"`
}

// InventorySummary holds fleet-wide statistics derived from the current
// item snapshot. Value figures use cost basis (quantity x cost price),
// deliberately distinct from the display total elsewhere.
type InventorySummary struct {
	TotalItems        int                      `json:"totalItems"`
	TotalValue        types.Money              `json:"totalValue"`
	LowStockCount     int                      `json:"lowStockCount"`
	OutOfStockCount   int                      `json:"outOfStockCount"`
	CategoryBreakdown map[string]CategoryStats `json:"categoryBreakdown"`
	AverageItemValue  types.Money              `json:"averageItemValue"`
}
