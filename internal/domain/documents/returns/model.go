// Package returns provides purchase and sales return records.
// A return is a summary record, not a reversal of specific stock movements:
// it carries no line items, only a description and a declared entry count.
package returns

import (
	"context"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/entity"
	"stockbook/internal/core/numerator"
)

// Kind distinguishes purchase returns from sales returns.
type Kind string

const (
	KindPurchase Kind = "purchase"
	KindSales    Kind = "sales"
)

// Status is the return lifecycle state. Submitted -> Voided, one-way.
type Status string

const (
	StatusSubmitted Status = "Submitted"
	StatusVoided    Status = "Voided"
)

// NumberingConfig returns the display-id configuration for a return kind.
func NumberingConfig(kind Kind) numerator.Config {
	if kind == KindSales {
		return numerator.DefaultConfig("SR")
	}
	return numerator.DefaultConfig("PR")
}

// ReturnRecord represents a purchase or sales return.
type ReturnRecord struct {
	entity.Document

	Kind Kind `db:"kind" json:"kind"`

	// Description is free text describing the returned goods
	Description string `db:"description" json:"description"`

	// Entries is the declared entry count
	Entries int `db:"entries" json:"entries"`

	Status Status `db:"status" json:"status"`
}

// NewReturnRecord creates a new return in the Submitted state.
func NewReturnRecord(kind Kind) *ReturnRecord {
	return &ReturnRecord{
		Document: entity.NewDocument(),
		Kind:     kind,
		Status:   StatusSubmitted,
	}
}

// Validate implements entity.Validatable.
func (r *ReturnRecord) Validate(ctx context.Context) error {
	if err := r.Document.Validate(ctx); err != nil {
		return err
	}

	if r.Kind != KindPurchase && r.Kind != KindSales {
		return apperror.NewValidation("invalid return kind").
			WithDetail("field", "kind").
			WithDetail("value", string(r.Kind))
	}

	if r.Description == "" {
		return apperror.NewValidation("description is required").
			WithDetail("field", "description")
	}

	if r.Entries <= 0 {
		return apperror.NewValidation("entry count must be positive").
			WithDetail("field", "entries")
	}

	return nil
}

// CanModify checks if the record is still editable.
// Fields are mutable only while Submitted.
func (r *ReturnRecord) CanModify() error {
	if r.Status == StatusVoided {
		return apperror.NewInvalidState("return is voided").
			WithDetail("number", r.Number)
	}
	return nil
}

// Void transitions the record to Voided exactly once. The display number
// assigned at creation is never reused, even after voiding.
func (r *ReturnRecord) Void() error {
	if r.Status == StatusVoided {
		return apperror.NewInvalidState("return is already voided").
			WithDetail("number", r.Number)
	}

	r.Status = StatusVoided
	r.Touch()
	return nil
}

var _ entity.Validatable = (*ReturnRecord)(nil)
