// Package transaction provides purchase and sales voucher documents.
package transaction

import (
	"context"

	"github.com/shopspring/decimal"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/entity"
	"stockbook/internal/core/id"
	"stockbook/internal/core/numerator"
	"stockbook/internal/core/types"
)

// Kind distinguishes the two symmetric voucher flows.
type Kind string

const (
	KindPurchase Kind = "purchase"
	KindSales    Kind = "sales"
)

// Status is the voucher lifecycle state. The transition is one-way:
// Active -> Voided, exactly once. Voided vouchers are never physically
// deleted.
type Status string

const (
	StatusActive Status = "Active"
	StatusVoided Status = "Voided"
)

// NumberingConfig returns the display-id configuration for a voucher kind.
func NumberingConfig(kind Kind) numerator.Config {
	if kind == KindSales {
		return numerator.DefaultConfig("SV")
	}
	return numerator.DefaultConfig("PV")
}

// Line is one entry within a voucher.
type Line struct {
	LineID id.ID `db:"line_id" json:"lineId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	ItemName string  `db:"item_name" json:"itemName"`
	Quantity float64 `db:"quantity" json:"quantity"`

	// Rate is the unit rate
	Rate types.Money `db:"rate" json:"rate"`

	Unit     string `db:"unit" json:"unit,omitempty"`
	Category string `db:"category" json:"category,omitempty"`

	// Total is an optional caller-supplied precomputed line total.
	// When absent the line amount is quantity x rate.
	Total *types.Money `db:"total" json:"total,omitempty"`
}

// Amount returns the line's contribution to the grand total.
// One computation path serves both voucher flows: the caller-supplied
// total is authoritative when present, otherwise quantity x rate.
func (l Line) Amount() types.Money {
	if l.Total != nil {
		return *l.Total
	}
	return l.Rate.Mul(decimal.NewFromFloat(l.Quantity))
}

// Voucher represents a purchase or sales voucher document.
type Voucher struct {
	entity.Document

	Kind Kind `db:"kind" json:"kind"`

	// Counterparty is the supplier (purchase) or party (sales)
	Counterparty string `db:"counterparty" json:"counterparty"`

	// Total is computed once at creation and frozen thereafter; edits do
	// not silently recompute it unless the caller supplies new lines.
	Total types.Money `db:"total" json:"total"`

	// Entries is the line-item count
	Entries int `db:"entries" json:"entries"`

	Status Status `db:"status" json:"status"`

	// Table part: line items
	Lines []Line `db:"-" json:"items"`
}

// NewVoucher creates a new voucher document in the Active state.
func NewVoucher(kind Kind, counterparty string) *Voucher {
	return &Voucher{
		Document:     entity.NewDocument(),
		Kind:         kind,
		Counterparty: counterparty,
		Status:       StatusActive,
		Lines:        make([]Line, 0),
	}
}

// AddLine appends a line and renumbers it.
func (v *Voucher) AddLine(line Line) {
	line.LineID = id.New()
	line.LineNo = len(v.Lines) + 1
	v.Lines = append(v.Lines, line)
}

// ComputeTotals derives the grand total and entry count from the lines.
func (v *Voucher) ComputeTotals() {
	total := decimal.Zero
	for _, line := range v.Lines {
		total = total.Add(line.Amount())
	}
	v.Total = total
	v.Entries = len(v.Lines)
}

// Validate implements entity.Validatable.
func (v *Voucher) Validate(ctx context.Context) error {
	if err := v.Document.Validate(ctx); err != nil {
		return err
	}

	if v.Kind != KindPurchase && v.Kind != KindSales {
		return apperror.NewValidation("invalid voucher kind").
			WithDetail("field", "kind").
			WithDetail("value", string(v.Kind))
	}

	if v.Counterparty == "" {
		return apperror.NewValidation("counterparty is required").
			WithDetail("field", "counterparty")
	}

	if len(v.Lines) == 0 {
		return apperror.NewValidation("at least one line item is required").
			WithDetail("field", "items")
	}

	for i, line := range v.Lines {
		if line.ItemName == "" {
			return apperror.NewValidation("item name is required").
				WithDetail("field", "items").
				WithDetail("lineNo", i+1)
		}
		if line.Quantity <= 0 {
			return apperror.NewValidation("quantity must be positive").
				WithDetail("field", "items").
				WithDetail("lineNo", i+1)
		}
	}

	return nil
}

// CanModify checks if the voucher can still be edited.
func (v *Voucher) CanModify() error {
	if v.Status == StatusVoided {
		return apperror.NewInvalidState("voucher is voided").
			WithDetail("number", v.Number)
	}
	return nil
}

// Void transitions the voucher to Voided. The transition happens exactly
// once; a second void is rejected.
func (v *Voucher) Void() error {
	if v.Status == StatusVoided {
		return apperror.NewInvalidState("voucher is already voided").
			WithDetail("number", v.Number)
	}

	v.Status = StatusVoided
	v.Touch()
	return nil
}

var _ entity.Validatable = (*Voucher)(nil)
