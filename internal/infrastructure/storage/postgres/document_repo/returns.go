package document_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"stockbook/internal/domain"
	"stockbook/internal/domain/documents/returns"
	"stockbook/internal/infrastructure/storage/postgres"
)

const returnsTable = "doc_returns"

// ReturnRepo implements returns.Repository.
type ReturnRepo struct {
	*BaseDocumentRepo[*returns.ReturnRecord]
}

// NewReturnRepo creates a new return record repository.
func NewReturnRepo(txm *postgres.TxManager) *ReturnRepo {
	return &ReturnRepo{
		BaseDocumentRepo: NewBaseDocumentRepo(
			txm,
			returnsTable,
			postgres.ExtractDBColumns[returns.ReturnRecord](),
			func() *returns.ReturnRecord { return &returns.ReturnRecord{} },
		),
	}
}

var _ returns.Repository = (*ReturnRepo)(nil)

// GetByNumber retrieves a return by kind and display number.
func (r *ReturnRepo) GetByNumber(ctx context.Context, kind returns.Kind, number string) (*returns.ReturnRecord, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"kind": kind}).
		Where(squirrel.Eq{"number": number})

	return r.getOne(ctx, q, number)
}

// List retrieves returns with filtering.
func (r *ReturnRepo) List(ctx context.Context, filter returns.ListFilter) (domain.ListResult[*returns.ReturnRecord], error) {
	q := r.baseSelect()

	if !filter.IncludeDeleted {
		q = q.Where(squirrel.Eq{"deletion_mark": false})
	}

	if filter.Kind != "" {
		q = q.Where(squirrel.Eq{"kind": filter.Kind})
	}

	if filter.Status != "" {
		q = q.Where(squirrel.Eq{"status": filter.Status})
	} else if !filter.IncludeVoided {
		q = q.Where(squirrel.NotEq{"status": returns.StatusVoided})
	}

	if filter.DateFrom != nil {
		q = q.Where(squirrel.GtOrEq{"date": *filter.DateFrom})
	}

	if filter.DateTo != nil {
		q = q.Where(squirrel.LtOrEq{"date": *filter.DateTo})
	}

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"number": pattern},
			squirrel.ILike{"description": pattern},
		})
	}

	return r.list(ctx, q, filter.ListFilter)
}
