package dto

import (
	"time"

	"stockbook/internal/core/types"
	"stockbook/internal/domain/documents/transaction"
)

// --- Request DTOs ---

// VoucherLineRequest is one line item in a voucher request.
type VoucherLineRequest struct {
	ItemName string      `json:"itemName" binding:"required"`
	Quantity float64     `json:"quantity" binding:"required,gt=0"`
	Rate     types.Money `json:"rate"`
	Unit     string      `json:"unit"`
	Category string      `json:"category"`

	// Total is an optional precomputed line total; when present it is
	// authoritative over quantity x rate.
	Total *types.Money `json:"total"`
}

// CreateVoucherRequest is the request body for creating a voucher.
type CreateVoucherRequest struct {
	Date         *time.Time           `json:"date"`
	Counterparty string               `json:"counterparty" binding:"required"`
	Items        []VoucherLineRequest `json:"items" binding:"required,min=1"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateVoucherRequest) ToEntity(kind transaction.Kind) *transaction.Voucher {
	doc := transaction.NewVoucher(kind, r.Counterparty)
	if r.Date != nil {
		doc.Date = *r.Date
	}
	for _, line := range r.Items {
		doc.AddLine(transaction.Line{
			ItemName: line.ItemName,
			Quantity: line.Quantity,
			Rate:     line.Rate,
			Unit:     line.Unit,
			Category: line.Category,
			Total:    line.Total,
		})
	}
	return doc
}

// UpdateVoucherRequest is the request body for updating a voucher.
// Items are optional: when omitted the stored lines and the frozen total
// are kept untouched.
type UpdateVoucherRequest struct {
	Date         *time.Time           `json:"date"`
	Counterparty string               `json:"counterparty" binding:"required"`
	Items        []VoucherLineRequest `json:"items"`
	Version      int                  `json:"version" binding:"required,min=1"`
}

// ApplyTo applies update DTO to an existing voucher. Returns true when the
// caller supplied a replacement line set.
func (r *UpdateVoucherRequest) ApplyTo(doc *transaction.Voucher) bool {
	if r.Date != nil {
		doc.Date = *r.Date
	}
	doc.Counterparty = r.Counterparty
	doc.Version = r.Version

	if r.Items == nil {
		return false
	}

	doc.Lines = doc.Lines[:0]
	for _, line := range r.Items {
		doc.AddLine(transaction.Line{
			ItemName: line.ItemName,
			Quantity: line.Quantity,
			Rate:     line.Rate,
			Unit:     line.Unit,
			Category: line.Category,
			Total:    line.Total,
		})
	}
	return true
}

// --- Response DTOs ---

// VoucherLineResponse is one line item in a voucher response.
type VoucherLineResponse struct {
	LineID   string      `json:"lineId"`
	LineNo   int         `json:"lineNo"`
	ItemName string      `json:"itemName"`
	Quantity float64     `json:"quantity"`
	Rate     types.Money `json:"rate"`
	Unit     string      `json:"unit,omitempty"`
	Category string      `json:"category,omitempty"`
	Amount   types.Money `json:"amount"`
}

// VoucherResponse is the response body for a voucher document.
type VoucherResponse struct {
	DocumentResponse
	Kind         transaction.Kind      `json:"kind"`
	Counterparty string                `json:"counterparty"`
	Total        types.Money           `json:"total"`
	Entries      int                   `json:"entries"`
	Status       transaction.Status    `json:"status"`
	Items        []VoucherLineResponse `json:"items"`
}

// FromVoucher creates response DTO from domain entity.
func FromVoucher(doc *transaction.Voucher) *VoucherResponse {
	items := make([]VoucherLineResponse, 0, len(doc.Lines))
	for _, line := range doc.Lines {
		items = append(items, VoucherLineResponse{
			LineID:   line.LineID.String(),
			LineNo:   line.LineNo,
			ItemName: line.ItemName,
			Quantity: line.Quantity,
			Rate:     line.Rate,
			Unit:     line.Unit,
			Category: line.Category,
			Amount:   line.Amount(),
		})
	}

	return &VoucherResponse{
		DocumentResponse: FromDocument(doc.Document),
		Kind:             doc.Kind,
		Counterparty:     doc.Counterparty,
		Total:            doc.Total,
		Entries:          doc.Entries,
		Status:           doc.Status,
		Items:            items,
	}
}

// FromVouchers maps a slice of vouchers to response DTOs.
func FromVouchers(docs []*transaction.Voucher) []*VoucherResponse {
	out := make([]*VoucherResponse, 0, len(docs))
	for _, doc := range docs {
		out = append(out, FromVoucher(doc))
	}
	return out
}
