package entity

import (
	"context"
	"time"

	"stockbook/internal/core/apperror"
)

// Document is the base type for business transactions.
// Examples: purchase voucher, sales voucher, purchase/sales return.
type Document struct {
	BaseDocument

	// Number is the human-readable sequential display id (e.g. "PV 001").
	// Assigned once at creation and never reused, even after voiding.
	Number string `db:"number" json:"number"`

	// Date is the business date of the document
	Date time.Time `db:"date" json:"date"`
}

// NewDocument creates a new Document with generated ID.
func NewDocument() Document {
	return Document{
		BaseDocument: NewBaseDocument(),
		Date:         time.Now().UTC(),
	}
}

// Validate implements Validatable interface.
func (d *Document) Validate(ctx context.Context) error {
	if d.Date.IsZero() {
		return apperror.NewValidation("date is required").
			WithDetail("field", "date")
	}

	return nil
}
