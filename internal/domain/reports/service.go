package reports

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"stockbook/internal/domain/catalogs/item"
)

// Service provides report generation operations.
// It reads the same documents the stock ledger owns; it never mutates.
type Service struct {
	items item.Repository
}

// NewService creates a new reports service.
func NewService(items item.Repository) *Service {
	return &Service{items: items}
}

// InventorySummary derives fleet-wide statistics from the current
// active-item snapshot.
func (s *Service) InventorySummary(ctx context.Context) (*InventorySummary, error) {
	items, err := s.items.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active items: %w", err)
	}

	return Summarize(items), nil
}

// Summarize computes statistics over the given items. Only active items
// participate. Value figures use cost basis.
func Summarize(items []*item.InventoryItem) *InventorySummary {
	summary := &InventorySummary{
		TotalValue:        decimal.Zero,
		AverageItemValue:  decimal.Zero,
		CategoryBreakdown: make(map[string]CategoryStats),
	}

	for _, it := range items {
		if !it.Active {
			continue
		}

		summary.TotalItems++
		value := it.CostValue()
		summary.TotalValue = summary.TotalValue.Add(value)

		switch it.StockStatus() {
		case item.StatusLowStock:
			summary.LowStockCount++
		case item.StatusOutOfStock:
			summary.OutOfStockCount++
		}

		stats := summary.CategoryBreakdown[it.Category]
		stats.Count++
		stats.Value = stats.Value.Add(value)
		summary.CategoryBreakdown[it.Category] = stats
	}

	if summary.TotalItems > 0 {
		summary.AverageItemValue = summary.TotalValue.
			Div(decimal.NewFromInt(int64(summary.TotalItems))).
			Round(2)
	}

	return summary
}
