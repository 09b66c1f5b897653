package returns

import (
	"context"
	"time"

	"stockbook/internal/core/id"
	"stockbook/internal/domain"
)

// ListFilter extends the common filter with return-specific criteria.
type ListFilter struct {
	domain.ListFilter

	Kind          Kind
	Status        Status
	DateFrom      *time.Time
	DateTo        *time.Time
	IncludeVoided bool
}

// Repository defines persistence operations for return records.
type Repository interface {
	Create(ctx context.Context, rec *ReturnRecord) error
	GetByID(ctx context.Context, recID id.ID) (*ReturnRecord, error)
	GetByNumber(ctx context.Context, kind Kind, number string) (*ReturnRecord, error)
	Update(ctx context.Context, rec *ReturnRecord) error
	List(ctx context.Context, filter ListFilter) (domain.ListResult[*ReturnRecord], error)
}
