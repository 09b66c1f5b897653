// Package item provides the stock ledger service.
package item

import (
	"context"
	"fmt"

	"stockbook/internal/core/apperror"
	appctx "stockbook/internal/core/context"
	"stockbook/internal/core/id"
	"stockbook/internal/core/tx"
	"stockbook/internal/domain"
	"stockbook/pkg/logger"
)

// Service provides business operations for the stock ledger.
type Service struct {
	repo      Repository
	txManager tx.Manager
}

// NewService creates a new stock ledger service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
	}
}

// Create registers a new inventory item. Item codes are unique;
// a duplicate code is rejected before any write.
func (s *Service) Create(ctx context.Context, it *InventoryItem) error {
	if err := it.Validate(ctx); err != nil {
		return err
	}

	exists, err := s.repo.ExistsByCode(ctx, it.Code)
	if err != nil {
		return fmt.Errorf("check code: %w", err)
	}
	if exists {
		return apperror.NewDuplicate("item", "code", it.Code)
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Create(ctx, it)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "inventory item created", "id", it.ID, "code", it.Code)
	return nil
}

// GetByID retrieves an item by its internal id.
func (s *Service) GetByID(ctx context.Context, itemID id.ID) (*InventoryItem, error) {
	return s.repo.GetByID(ctx, itemID)
}

// GetByCode retrieves an item by its unique code.
func (s *Service) GetByCode(ctx context.Context, code string) (*InventoryItem, error) {
	return s.repo.GetByCode(ctx, code)
}

// Update replaces item fields. A direct quantity edit follows the same rule
// as Adjust with the set operation: a negative quantity is rejected, never
// clamped, so the two mutation paths cannot diverge.
func (s *Service) Update(ctx context.Context, it *InventoryItem) error {
	if err := it.Validate(ctx); err != nil {
		return err
	}

	it.Touch()

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Update(ctx, it)
	})
}

// Deactivate soft-deactivates an item. Items referenced by historical
// transactions are never hard-deleted.
func (s *Service) Deactivate(ctx context.Context, itemID id.ID) error {
	it, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return err
	}

	it.Active = false
	it.Touch()

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Update(ctx, it)
	})
}

// AdjustResult reports the outcome of a quantity adjustment.
type AdjustResult struct {
	ItemID      id.ID       `json:"itemId"`
	OldQuantity int64       `json:"oldQuantity"`
	NewQuantity int64       `json:"newQuantity"`
	Status      StockStatus `json:"status"`
}

// Adjust applies a quantity adjustment to an item.
// The read and write happen in one transaction; on any failure no partial
// state is written. Every successful adjustment stamps last-modified.
func (s *Service) Adjust(ctx context.Context, itemID id.ID, op AdjustOp, amount int64) (AdjustResult, error) {
	var result AdjustResult

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		it, err := s.repo.GetByID(ctx, itemID)
		if err != nil {
			return err
		}

		old, updated, err := it.ApplyAdjustment(op, amount)
		if err != nil {
			return err
		}

		it.Touch()
		if err := s.repo.Update(ctx, it); err != nil {
			return err
		}

		result = AdjustResult{
			ItemID:      it.ID,
			OldQuantity: old,
			NewQuantity: updated,
			Status:      it.StockStatus(),
		}
		return nil
	})
	if err != nil {
		return AdjustResult{}, err
	}

	logger.Info(ctx, "stock adjusted",
		"item_id", itemID,
		"op", op,
		"amount", amount,
		"old", result.OldQuantity,
		"new", result.NewQuantity,
		"user_id", appctx.GetUserID(ctx),
	)

	return result, nil
}

// List retrieves items with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*InventoryItem], error) {
	filter.Normalize()
	return s.repo.List(ctx, filter)
}
