// Package transaction provides the voucher document service.
package transaction

import (
	"context"
	"fmt"

	"stockbook/internal/core/apperror"
	appctx "stockbook/internal/core/context"
	"stockbook/internal/core/id"
	"stockbook/internal/core/numerator"
	"stockbook/internal/core/tx"
	"stockbook/internal/domain"
	"stockbook/pkg/logger"
)

// Service provides business operations for purchase and sales vouchers.
type Service struct {
	repo      Repository
	numerator numerator.Generator
	txManager tx.Manager
}

// NewService creates a new voucher service.
func NewService(repo Repository, gen numerator.Generator, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		numerator: gen,
		txManager: txManager,
	}
}

// Create validates, numbers and persists a new voucher.
// Required fields are checked before any write; a failed validation leaves
// no partial document. The grand total is computed here, once.
func (s *Service) Create(ctx context.Context, doc *Voucher) error {
	doc.ComputeTotals()

	if err := doc.Validate(ctx); err != nil {
		return err
	}

	if doc.Number == "" {
		number, err := s.numerator.Next(ctx, NumberingConfig(doc.Kind))
		if err != nil {
			return apperror.NewDependencyUnavailable("sequence store", err)
		}
		doc.Number = number
	}

	doc.StampCreated(appctx.GetUserID(ctx))

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, doc); err != nil {
			return fmt.Errorf("create document: %w", err)
		}

		if err := s.repo.SaveLines(ctx, doc.ID, doc.Lines); err != nil {
			return fmt.Errorf("save lines: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "voucher created",
		"id", doc.ID,
		"number", doc.Number,
		"kind", doc.Kind,
		"total", doc.Total,
	)

	return nil
}

// GetByRef retrieves a voucher by display number or internal id,
// tried in that order. This tolerates both human-entered and
// system-generated references.
func (s *Service) GetByRef(ctx context.Context, kind Kind, ref string) (*Voucher, error) {
	doc, err := s.repo.GetByNumber(ctx, kind, ref)
	if err == nil {
		return s.withLines(ctx, doc)
	}
	if !apperror.IsNotFound(err) {
		return nil, err
	}

	docID, parseErr := id.Parse(ref)
	if parseErr != nil {
		return nil, apperror.NewNotFound("voucher", ref)
	}

	doc, err = s.repo.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}
	return s.withLines(ctx, doc)
}

// GetByID retrieves a voucher with its lines.
func (s *Service) GetByID(ctx context.Context, docID id.ID) (*Voucher, error) {
	doc, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}
	return s.withLines(ctx, doc)
}

func (s *Service) withLines(ctx context.Context, doc *Voucher) (*Voucher, error) {
	lines, err := s.repo.GetLines(ctx, doc.ID)
	if err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}
	doc.Lines = lines
	return doc, nil
}

// Update replaces voucher fields while the document is Active.
// The total is recomputed only when the caller supplies a replacement line
// set; the rule is identical on the purchase and sales paths.
func (s *Service) Update(ctx context.Context, doc *Voucher, replaceLines bool) error {
	if err := doc.CanModify(); err != nil {
		return err
	}

	if replaceLines {
		doc.ComputeTotals()
	}

	if err := doc.Validate(ctx); err != nil {
		return err
	}

	doc.StampUpdated(appctx.GetUserID(ctx))

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, doc); err != nil {
			return fmt.Errorf("update document: %w", err)
		}

		if replaceLines {
			if err := s.repo.SaveLines(ctx, doc.ID, doc.Lines); err != nil {
				return fmt.Errorf("save lines: %w", err)
			}
		}

		return nil
	})
}

// Void transitions a voucher to Voided. Voiding is a soft delete: the
// document and its display number survive.
func (s *Service) Void(ctx context.Context, kind Kind, ref string) (*Voucher, error) {
	var voided *Voucher

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		doc, err := s.GetByRef(ctx, kind, ref)
		if err != nil {
			return err
		}

		if err := doc.Void(); err != nil {
			return err
		}

		doc.UpdatedBy = appctx.GetUserID(ctx)
		if err := s.repo.Update(ctx, doc); err != nil {
			return err
		}

		voided = doc
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "voucher voided", "number", voided.Number, "kind", voided.Kind)
	return voided, nil
}

// List retrieves vouchers with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Voucher], error) {
	filter.Normalize()
	return s.repo.List(ctx, filter)
}
