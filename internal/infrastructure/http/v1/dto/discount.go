package dto

import (
	"time"

	"stockbook/internal/core/types"
	"stockbook/internal/domain/vouchers/discount"
)

// --- Request DTOs ---

// CreateDiscountRequest is the request body for creating a discount voucher.
// The code is always generated server-side; callers supply only the prefix.
type CreateDiscountRequest struct {
	Prefix            string         `json:"prefix" binding:"required"`
	Model             discount.Model `json:"model" binding:"required"`
	Value             types.Money    `json:"value"`
	MinOrderAmount    types.Money    `json:"minOrderAmount"`
	MaxDiscountAmount *types.Money   `json:"maxDiscountAmount"`
	UsageLimit        int64          `json:"usageLimit" binding:"required,min=1"`
	ValidFrom         time.Time      `json:"validFrom" binding:"required"`
	ValidUntil        time.Time      `json:"validUntil" binding:"required"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateDiscountRequest) ToEntity() *discount.DiscountVoucher {
	v := discount.NewDiscountVoucher(r.Prefix, r.Model, r.Value)
	v.MinOrderAmount = r.MinOrderAmount
	v.MaxDiscountAmount = r.MaxDiscountAmount
	v.UsageLimit = r.UsageLimit
	v.ValidFrom = r.ValidFrom
	v.ValidUntil = r.ValidUntil
	return v
}

// ValidateDiscountRequest carries the order amount a voucher is checked against.
type ValidateDiscountRequest struct {
	OrderAmount types.Money `json:"orderAmount"`
}

// --- Response DTOs ---

// DiscountResponse is the response body for a discount voucher.
type DiscountResponse struct {
	ID                string         `json:"id"`
	Code              string         `json:"code"`
	Model             discount.Model `json:"model"`
	Value             types.Money    `json:"value"`
	MinOrderAmount    types.Money    `json:"minOrderAmount"`
	MaxDiscountAmount *types.Money   `json:"maxDiscountAmount,omitempty"`
	UsageLimit        int64          `json:"usageLimit"`
	UsedCount         int64          `json:"usedCount"`
	Remaining         int64          `json:"remaining"`
	ValidFrom         time.Time      `json:"validFrom"`
	ValidUntil        time.Time      `json:"validUntil"`
	Active            bool           `json:"active"`
	Version           int            `json:"version"`
	CreatedAt         time.Time      `json:"createdAt"`
	UpdatedAt         time.Time      `json:"updatedAt"`
}

// FromDiscount creates response DTO from domain entity.
func FromDiscount(v *discount.DiscountVoucher) *DiscountResponse {
	return &DiscountResponse{
		ID:                v.ID.String(),
		Code:              v.Code,
		Model:             v.Model,
		Value:             v.Value,
		MinOrderAmount:    v.MinOrderAmount,
		MaxDiscountAmount: v.MaxDiscountAmount,
		UsageLimit:        v.UsageLimit,
		UsedCount:         v.UsedCount,
		Remaining:         v.UsageLimit - v.UsedCount,
		ValidFrom:         v.ValidFrom,
		ValidUntil:        v.ValidUntil,
		Active:            v.Active,
		Version:           v.Version,
		CreatedAt:         v.CreatedAt,
		UpdatedAt:         v.UpdatedAt,
	}
}

// FromDiscounts maps a slice of vouchers to response DTOs.
func FromDiscounts(vouchers []*discount.DiscountVoucher) []*DiscountResponse {
	out := make([]*DiscountResponse, 0, len(vouchers))
	for _, v := range vouchers {
		out = append(out, FromDiscount(v))
	}
	return out
}
