// Package discount provides the discount voucher service.
package discount

import (
	"context"
	"fmt"
	"time"

	"stockbook/internal/core/apperror"
	appctx "stockbook/internal/core/context"
	"stockbook/internal/core/tx"
	"stockbook/internal/core/types"
	"stockbook/internal/domain"
	"stockbook/pkg/logger"
)

// Service provides business operations for discount vouchers.
// Validation is evaluated fresh on every call; no voucher state is cached.
type Service struct {
	repo      Repository
	txManager tx.Manager

	// now is swappable for tests
	now func() time.Time
}

// NewService creates a new discount voucher service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
		now:       time.Now,
	}
}

// Create persists a new voucher. The generated code is globally unique by
// construction, but a collision is still re-checked before commit.
func (s *Service) Create(ctx context.Context, v *DiscountVoucher) error {
	if err := v.Validate(ctx); err != nil {
		return err
	}

	exists, err := s.repo.ExistsByCode(ctx, v.Code)
	if err != nil {
		return fmt.Errorf("check code: %w", err)
	}
	if exists {
		return apperror.NewDuplicate("voucher", "code", v.Code)
	}

	v.StampCreated(appctx.GetUserID(ctx))

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Create(ctx, v)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "discount voucher created", "id", v.ID, "code", v.Code)
	return nil
}

// GetByCode retrieves a voucher by its code.
func (s *Service) GetByCode(ctx context.Context, code string) (*DiscountVoucher, error) {
	return s.repo.GetByCode(ctx, code)
}

// List retrieves vouchers with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*DiscountVoucher], error) {
	filter.Normalize()
	return s.repo.List(ctx, filter)
}

// Validate evaluates the voucher guard chain for an order amount.
// A missing code yields a not-found result rather than an error, so the
// routing layer can return the rejection reason in a 200 envelope.
func (s *Service) Validate(ctx context.Context, code string, orderAmount types.Money) (Result, error) {
	v, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		if apperror.IsNotFound(err) {
			return Result{Code: code, Reason: ReasonNotFound, FinalAmount: orderAmount}, nil
		}
		return Result{}, err
	}

	return v.Evaluate(s.now(), orderAmount), nil
}

// Redeem increments the voucher's usage counter by exactly one and stamps
// last-modified. It deliberately does not re-run the validity chain; callers
// that need the check-and-increment to be atomic use RedeemIfValid.
func (s *Service) Redeem(ctx context.Context, code string) (*DiscountVoucher, error) {
	var redeemed *DiscountVoucher

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		v, err := s.repo.GetByCode(ctx, code)
		if err != nil {
			return err
		}

		if err := v.RegisterRedemption(); err != nil {
			return err
		}

		v.UpdatedBy = appctx.GetUserID(ctx)
		if err := s.repo.Update(ctx, v); err != nil {
			return err
		}

		redeemed = v
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "voucher redeemed",
		"code", code,
		"used_count", redeemed.UsedCount,
		"usage_limit", redeemed.UsageLimit,
	)

	return redeemed, nil
}

// RedeemIfValid runs the full guard chain and the usage increment inside one
// transaction, closing the time-of-check/time-of-use gap between the thin
// Validate and Redeem entry points.
func (s *Service) RedeemIfValid(ctx context.Context, code string, orderAmount types.Money) (Result, error) {
	var result Result

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		v, err := s.repo.GetByCode(ctx, code)
		if err != nil {
			if apperror.IsNotFound(err) {
				result = Result{Code: code, Reason: ReasonNotFound, FinalAmount: orderAmount}
				return nil
			}
			return err
		}

		result = v.Evaluate(s.now(), orderAmount)
		if !result.Valid {
			return nil
		}

		if err := v.RegisterRedemption(); err != nil {
			return err
		}

		v.UpdatedBy = appctx.GetUserID(ctx)
		return s.repo.Update(ctx, v)
	})
	if err != nil {
		return Result{}, err
	}

	if result.Valid {
		logger.Info(ctx, "voucher validated and redeemed",
			"code", code,
			"discount", result.Discount,
			"final_amount", result.FinalAmount,
		)
	}

	return result, nil
}
