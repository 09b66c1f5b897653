package dto

import (
	"time"

	"stockbook/internal/core/types"
	"stockbook/internal/domain/catalogs/item"
)

// --- Request DTOs ---

// CreateItemRequest is the request body for registering an inventory item.
type CreateItemRequest struct {
	Code          string      `json:"code" binding:"required"`
	Name          string      `json:"name" binding:"required"`
	Category      string      `json:"category"`
	Unit          string      `json:"unit"`
	Rate          types.Money `json:"rate"`
	CostPrice     types.Money `json:"costPrice"`
	Quantity      int64       `json:"quantity"`
	MinStockLevel int64       `json:"minStockLevel"`
	MaxStockLevel int64       `json:"maxStockLevel"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateItemRequest) ToEntity() *item.InventoryItem {
	it := item.NewInventoryItem(r.Code, r.Name)
	it.Category = r.Category
	it.Unit = r.Unit
	it.Rate = r.Rate
	it.CostPrice = r.CostPrice
	it.Quantity = r.Quantity
	it.MinStockLevel = r.MinStockLevel
	it.MaxStockLevel = r.MaxStockLevel
	return it
}

// UpdateItemRequest is the request body for updating an inventory item.
type UpdateItemRequest struct {
	Name          string      `json:"name" binding:"required"`
	Category      string      `json:"category"`
	Unit          string      `json:"unit"`
	Rate          types.Money `json:"rate"`
	CostPrice     types.Money `json:"costPrice"`
	Quantity      int64       `json:"quantity"`
	MinStockLevel int64       `json:"minStockLevel"`
	MaxStockLevel int64       `json:"maxStockLevel"`
	Active        *bool       `json:"active"`
	Version       int         `json:"version" binding:"required,min=1"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateItemRequest) ApplyTo(it *item.InventoryItem) {
	it.Name = r.Name
	it.Category = r.Category
	it.Unit = r.Unit
	it.Rate = r.Rate
	it.CostPrice = r.CostPrice
	it.Quantity = r.Quantity
	it.MinStockLevel = r.MinStockLevel
	it.MaxStockLevel = r.MaxStockLevel
	if r.Active != nil {
		it.Active = *r.Active
	}
	it.Version = r.Version
}

// AdjustStockRequest is the request body for a quantity adjustment.
type AdjustStockRequest struct {
	Operation item.AdjustOp `json:"operation" binding:"required"`
	Amount    int64         `json:"amount"`
}

// --- Response DTOs ---

// ItemResponse is the response body for an inventory item.
// Status, total value and profit margin are derived on the way out,
// never stored.
type ItemResponse struct {
	ID            string           `json:"id"`
	Code          string           `json:"code"`
	Name          string           `json:"name"`
	Category      string           `json:"category,omitempty"`
	Unit          string           `json:"unit,omitempty"`
	Rate          types.Money      `json:"rate"`
	CostPrice     types.Money      `json:"costPrice"`
	Quantity      int64            `json:"quantity"`
	MinStockLevel int64            `json:"minStockLevel"`
	MaxStockLevel int64            `json:"maxStockLevel"`
	Active        bool             `json:"active"`
	Status        item.StockStatus `json:"status"`
	TotalValue    types.Money      `json:"totalValue"`
	ProfitMargin  types.Money      `json:"profitMargin"`
	Version       int              `json:"version"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

// FromItem creates response DTO from domain entity.
func FromItem(it *item.InventoryItem) *ItemResponse {
	return &ItemResponse{
		ID:            it.ID.String(),
		Code:          it.Code,
		Name:          it.Name,
		Category:      it.Category,
		Unit:          it.Unit,
		Rate:          it.Rate,
		CostPrice:     it.CostPrice,
		Quantity:      it.Quantity,
		MinStockLevel: it.MinStockLevel,
		MaxStockLevel: it.MaxStockLevel,
		Active:        it.Active,
		Status:        it.StockStatus(),
		TotalValue:    it.TotalValue(),
		ProfitMargin:  item.ProfitMargin(it.Rate, it.CostPrice),
		Version:       it.Version,
		CreatedAt:     it.CreatedAt,
		UpdatedAt:     it.UpdatedAt,
	}
}

// FromItems maps a slice of items to response DTOs.
func FromItems(items []*item.InventoryItem) []*ItemResponse {
	out := make([]*ItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, FromItem(it))
	}
	return out
}
