// Package returns provides the return record service.
package returns

import (
	"context"

	"stockbook/internal/core/apperror"
	appctx "stockbook/internal/core/context"
	"stockbook/internal/core/id"
	"stockbook/internal/core/numerator"
	"stockbook/internal/core/tx"
	"stockbook/internal/domain"
	"stockbook/pkg/logger"
)

// Service provides business operations for return records.
type Service struct {
	repo      Repository
	numerator numerator.Generator
	txManager tx.Manager
}

// NewService creates a new return record service.
func NewService(repo Repository, gen numerator.Generator, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		numerator: gen,
		txManager: txManager,
	}
}

// Create validates, numbers and persists a new return record.
// The display id is assigned once here and never reused.
func (s *Service) Create(ctx context.Context, rec *ReturnRecord) error {
	if err := rec.Validate(ctx); err != nil {
		return err
	}

	if rec.Number == "" {
		number, err := s.numerator.Next(ctx, NumberingConfig(rec.Kind))
		if err != nil {
			return apperror.NewDependencyUnavailable("sequence store", err)
		}
		rec.Number = number
	}

	rec.StampCreated(appctx.GetUserID(ctx))

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Create(ctx, rec)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "return created", "id", rec.ID, "number", rec.Number, "kind", rec.Kind)
	return nil
}

// GetByRef retrieves a return by display number or internal id,
// tried in that order.
func (s *Service) GetByRef(ctx context.Context, kind Kind, ref string) (*ReturnRecord, error) {
	rec, err := s.repo.GetByNumber(ctx, kind, ref)
	if err == nil {
		return rec, nil
	}
	if !apperror.IsNotFound(err) {
		return nil, err
	}

	recID, parseErr := id.Parse(ref)
	if parseErr != nil {
		return nil, apperror.NewNotFound("return", ref)
	}

	return s.repo.GetByID(ctx, recID)
}

// Update replaces date, description and entry count while Submitted.
func (s *Service) Update(ctx context.Context, rec *ReturnRecord) error {
	if err := rec.CanModify(); err != nil {
		return err
	}

	if err := rec.Validate(ctx); err != nil {
		return err
	}

	rec.StampUpdated(appctx.GetUserID(ctx))

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Update(ctx, rec)
	})
}

// Void transitions a return to Voided. A second void is rejected.
func (s *Service) Void(ctx context.Context, kind Kind, ref string) (*ReturnRecord, error) {
	var voided *ReturnRecord

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		rec, err := s.GetByRef(ctx, kind, ref)
		if err != nil {
			return err
		}

		if err := rec.Void(); err != nil {
			return err
		}

		rec.UpdatedBy = appctx.GetUserID(ctx)
		if err := s.repo.Update(ctx, rec); err != nil {
			return err
		}

		voided = rec
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "return voided", "number", voided.Number, "kind", voided.Kind)
	return voided, nil
}

// List retrieves returns with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*ReturnRecord], error) {
	filter.Normalize()
	return s.repo.List(ctx, filter)
}
