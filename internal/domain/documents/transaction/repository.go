package transaction

import (
	"context"
	"time"

	"stockbook/internal/core/id"
	"stockbook/internal/domain"
)

// ListFilter extends the common filter with voucher-specific criteria.
type ListFilter struct {
	domain.ListFilter

	Kind          Kind
	Status        Status
	Counterparty  string
	DateFrom      *time.Time
	DateTo        *time.Time
	IncludeVoided bool
}

// Repository defines persistence operations for transaction vouchers.
type Repository interface {
	Create(ctx context.Context, doc *Voucher) error
	GetByID(ctx context.Context, docID id.ID) (*Voucher, error)
	GetByNumber(ctx context.Context, kind Kind, number string) (*Voucher, error)
	Update(ctx context.Context, doc *Voucher) error
	GetLines(ctx context.Context, docID id.ID) ([]Line, error)
	SaveLines(ctx context.Context, docID id.ID, lines []Line) error
	List(ctx context.Context, filter ListFilter) (domain.ListResult[*Voucher], error)
}
