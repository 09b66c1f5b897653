// Package item provides the InventoryItem catalog and stock ledger rules.
package item

import (
	"context"

	"github.com/shopspring/decimal"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/entity"
	"stockbook/internal/core/types"
)

// StockStatus is the derived stock classification.
// It is computed from quantity and thresholds, never stored.
type StockStatus string

const (
	StatusOutOfStock StockStatus = "out_of_stock"
	StatusLowStock   StockStatus = "low_stock"
	StatusOverstock  StockStatus = "overstock"
	StatusInStock    StockStatus = "in_stock"
)

// AdjustOp is a quantity adjustment operation.
type AdjustOp string

const (
	OpAdd      AdjustOp = "add"
	OpSubtract AdjustOp = "subtract"
	OpSet      AdjustOp = "set"
)

// InventoryItem represents a stocked item.
type InventoryItem struct {
	entity.Catalog

	// Category groups items for reporting rollups
	Category string `db:"category" json:"category,omitempty"`

	// Unit is the display unit label (pcs, kg, ...)
	Unit string `db:"unit" json:"unit,omitempty"`

	// Rate is the selling price per unit
	Rate types.Money `db:"rate" json:"rate"`

	// CostPrice is the acquisition cost per unit (basis for inventory value)
	CostPrice types.Money `db:"cost_price" json:"costPrice"`

	// Quantity on hand. Never negative.
	Quantity int64 `db:"quantity" json:"quantity"`

	// Reorder thresholds
	MinStockLevel int64 `db:"min_stock_level" json:"minStockLevel"`
	MaxStockLevel int64 `db:"max_stock_level" json:"maxStockLevel"`

	// Active items participate in reports; referenced items are
	// deactivated, never hard-deleted.
	Active bool `db:"active" json:"active"`
}

// NewInventoryItem creates a new item with required fields.
func NewInventoryItem(code, name string) *InventoryItem {
	return &InventoryItem{
		Catalog: entity.NewCatalog(code, name),
		Active:  true,
	}
}

// Validate implements entity.Validatable.
func (i *InventoryItem) Validate(ctx context.Context) error {
	if err := i.Catalog.Validate(ctx); err != nil {
		return err
	}

	if i.Code == "" {
		return apperror.NewValidation("code is required").
			WithDetail("field", "code")
	}

	if i.Quantity < 0 {
		return apperror.NewValidation("quantity cannot be negative").
			WithDetail("field", "quantity")
	}

	if i.Rate.IsNegative() {
		return apperror.NewValidation("rate cannot be negative").
			WithDetail("field", "rate")
	}

	if i.CostPrice.IsNegative() {
		return apperror.NewValidation("cost price cannot be negative").
			WithDetail("field", "costPrice")
	}

	return nil
}

// TotalValue returns quantity x rate. Derived, never stored.
func (i *InventoryItem) TotalValue() types.Money {
	return i.Rate.Mul(decimal.NewFromInt(i.Quantity))
}

// CostValue returns quantity x cost price (cost basis for reports).
func (i *InventoryItem) CostValue() types.Money {
	return i.CostPrice.Mul(decimal.NewFromInt(i.Quantity))
}

// ApplyAdjustment mutates quantity according to op and returns (old, new).
// Every quantity mutation path goes through this rule:
//   - add:      new = old + amount
//   - subtract: new = max(0, old - amount); the floor at zero is silent
//   - set:      new = amount; negative amounts are rejected
func (i *InventoryItem) ApplyAdjustment(op AdjustOp, amount int64) (int64, int64, error) {
	old := i.Quantity

	switch op {
	case OpAdd:
		i.Quantity = old + amount
	case OpSubtract:
		i.Quantity = old - amount
		if i.Quantity < 0 {
			i.Quantity = 0
		}
	case OpSet:
		if amount < 0 {
			return old, old, apperror.NewValidation("quantity cannot be set to a negative value").
				WithDetail("field", "amount").
				WithDetail("value", amount)
		}
		i.Quantity = amount
	default:
		return old, old, apperror.NewValidation("unknown adjustment operation").
			WithDetail("field", "operation").
			WithDetail("value", string(op))
	}

	return old, i.Quantity, nil
}

// StockStatus classifies the item's current stock level.
// Zero stock always wins over low stock, even when MinStockLevel is 0.
// MaxStockLevel of 0 means no ceiling.
func (i *InventoryItem) StockStatus() StockStatus {
	switch {
	case i.Quantity == 0:
		return StatusOutOfStock
	case i.Quantity <= i.MinStockLevel:
		return StatusLowStock
	case i.MaxStockLevel > 0 && i.Quantity >= i.MaxStockLevel:
		return StatusOverstock
	default:
		return StatusInStock
	}
}

// ProfitMargin computes the margin percent of price over cost,
// rounded to 2 decimals. Zero cost or zero price yields zero margin;
// price is the divisor and an unpriced item has no meaningful margin.
func ProfitMargin(price, cost types.Money) types.Money {
	if cost.IsZero() || price.IsZero() {
		return decimal.Zero
	}
	return price.Sub(cost).
		Div(price).
		Mul(decimal.NewFromInt(100)).
		Round(2)
}
