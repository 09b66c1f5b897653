package discount

import (
	"context"

	"stockbook/internal/core/id"
	"stockbook/internal/domain"
)

// ListFilter extends the common filter with voucher-specific criteria.
type ListFilter struct {
	domain.ListFilter

	ActiveOnly bool
	Model      Model
}

// Repository defines persistence operations for discount vouchers.
type Repository interface {
	Create(ctx context.Context, voucher *DiscountVoucher) error
	GetByID(ctx context.Context, voucherID id.ID) (*DiscountVoucher, error)
	GetByCode(ctx context.Context, code string) (*DiscountVoucher, error)
	Update(ctx context.Context, voucher *DiscountVoucher) error
	ExistsByCode(ctx context.Context, code string) (bool, error)
	List(ctx context.Context, filter ListFilter) (domain.ListResult[*DiscountVoucher], error)
}
