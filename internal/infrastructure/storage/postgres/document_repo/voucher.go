package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"stockbook/internal/core/id"
	"stockbook/internal/domain"
	"stockbook/internal/domain/documents/transaction"
	"stockbook/internal/infrastructure/storage/postgres"
)

const (
	vouchersTable     = "doc_vouchers"
	voucherLinesTable = "doc_voucher_lines"
)

// VoucherRepo implements transaction.Repository.
// Purchase and sales vouchers share one table, discriminated by kind.
type VoucherRepo struct {
	*BaseDocumentRepo[*transaction.Voucher]
}

// NewVoucherRepo creates a new transaction voucher repository.
func NewVoucherRepo(txm *postgres.TxManager) *VoucherRepo {
	return &VoucherRepo{
		BaseDocumentRepo: NewBaseDocumentRepo(
			txm,
			vouchersTable,
			postgres.ExtractDBColumns[transaction.Voucher](),
			func() *transaction.Voucher { return &transaction.Voucher{} },
		),
	}
}

var _ transaction.Repository = (*VoucherRepo)(nil)

// GetByNumber retrieves a voucher by kind and display number.
func (r *VoucherRepo) GetByNumber(ctx context.Context, kind transaction.Kind, number string) (*transaction.Voucher, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"kind": kind}).
		Where(squirrel.Eq{"number": number})

	return r.getOne(ctx, q, number)
}

// GetLines retrieves line items for a voucher, ordered by line number.
func (r *VoucherRepo) GetLines(ctx context.Context, docID id.ID) ([]transaction.Line, error) {
	q := r.Builder().
		Select(
			"line_id", "line_no", "item_name",
			"quantity", "rate", "unit", "category", "total",
		).
		From(voucherLinesTable).
		Where(squirrel.Eq{"document_id": docID}).
		OrderBy("line_no")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lines []transaction.Line
	if err := pgxscan.Select(ctx, r.querier(ctx), &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}

	return lines, nil
}

// SaveLines saves voucher lines (delete existing + insert new).
func (r *VoucherRepo) SaveLines(ctx context.Context, docID id.ID, lines []transaction.Line) error {
	querier := r.querier(ctx)

	deleteSQL := "DELETE FROM " + voucherLinesTable + " WHERE document_id = $1"
	if _, err := querier.Exec(ctx, deleteSQL, docID); err != nil {
		return fmt.Errorf("delete existing lines: %w", err)
	}

	if len(lines) == 0 {
		return nil
	}

	q := r.Builder().
		Insert(voucherLinesTable).
		Columns(
			"line_id", "document_id", "line_no", "item_name",
			"quantity", "rate", "unit", "category", "total",
		)

	for _, line := range lines {
		q = q.Values(
			line.LineID, docID, line.LineNo, line.ItemName,
			line.Quantity, line.Rate, line.Unit, line.Category, line.Total,
		)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert lines: %w", err)
	}

	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert lines: %w", err)
	}

	return nil
}

// List retrieves vouchers with filtering.
func (r *VoucherRepo) List(ctx context.Context, filter transaction.ListFilter) (domain.ListResult[*transaction.Voucher], error) {
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
		q = q.Where(squirrel.NotEq{"status": transaction.StatusVoided})
	}

	if filter.Counterparty != "" {
		q = q.Where(squirrel.ILike{"counterparty": "%" + filter.Counterparty + "%"})
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
			squirrel.ILike{"counterparty": pattern},
		})
	}

	return r.list(ctx, q, filter.ListFilter)
}
