package item

import (
	"context"

	"stockbook/internal/core/id"
	"stockbook/internal/domain"
)

// ListFilter extends the common filter with item-specific criteria.
type ListFilter struct {
	domain.ListFilter

	Category   string
	ActiveOnly bool
}

// Repository defines persistence operations for inventory items.
type Repository interface {
	Create(ctx context.Context, item *InventoryItem) error
	GetByID(ctx context.Context, itemID id.ID) (*InventoryItem, error)
	GetByCode(ctx context.Context, code string) (*InventoryItem, error)
	Update(ctx context.Context, item *InventoryItem) error
	ExistsByCode(ctx context.Context, code string) (bool, error)
	List(ctx context.Context, filter ListFilter) (domain.ListResult[*InventoryItem], error)

	// ListActive returns the full active-item snapshot for reporting.
	ListActive(ctx context.Context) ([]*InventoryItem, error)
}
