// Package voucher_repo provides the PostgreSQL repository for discount vouchers.
package voucher_repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/id"
	"stockbook/internal/domain"
	"stockbook/internal/domain/vouchers/discount"
	"stockbook/internal/infrastructure/storage/postgres"
)

const discountVouchersTable = "discount_vouchers"

// DiscountRepo implements discount.Repository.
type DiscountRepo struct {
	txm        *postgres.TxManager
	selectCols []string
}

// NewDiscountRepo creates a new discount voucher repository.
func NewDiscountRepo(txm *postgres.TxManager) *DiscountRepo {
	return &DiscountRepo{
		txm:        txm,
		selectCols: postgres.ExtractDBColumns[discount.DiscountVoucher](),
	}
}

var _ discount.Repository = (*DiscountRepo)(nil)

func (r *DiscountRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *DiscountRepo) querier(ctx context.Context) postgres.Querier {
	return r.txm.GetQuerier(ctx)
}

func (r *DiscountRepo) baseSelect() squirrel.SelectBuilder {
	return r.builder().
		Select(r.selectCols...).
		From(discountVouchersTable)
}

// Create inserts a new discount voucher.
func (r *DiscountRepo) Create(ctx context.Context, voucher *discount.DiscountVoucher) error {
	data := postgres.StructToMap(voucher)
	if len(data) == 0 {
		return fmt.Errorf("no db tags found in entity")
	}

	filteredData := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		if val, ok := data[col]; ok {
			filteredData[col] = val
		}
	}

	q := r.builder().
		Insert(discountVouchersTable).
		SetMap(filteredData)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert %s: %w", discountVouchersTable, err)
	}

	return nil
}

// Update modifies an existing voucher with optimistic locking.
func (r *DiscountRepo) Update(ctx context.Context, voucher *discount.DiscountVoucher) error {
	data := postgres.StructToMap(voucher)

	filteredData := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		if col == "id" || col == "code" || col == "created_at" || col == "created_by" {
			continue // code is immutable after creation
		}
		if col == "version" || col == "updated_at" {
			continue
		}
		if val, ok := data[col]; ok {
			filteredData[col] = val
		}
	}

	q := r.builder().
		Update(discountVouchersTable).
		SetMap(filteredData).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": voucher.ID}).
		Where(squirrel.Eq{"version": voucher.Version})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update %s: %w", discountVouchersTable, err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewConcurrentModification(discountVouchersTable, voucher.ID)
	}

	return nil
}

// GetByID retrieves a voucher by ID.
func (r *DiscountRepo) GetByID(ctx context.Context, voucherID id.ID) (*discount.DiscountVoucher, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"id": voucherID})

	return r.getOne(ctx, q, voucherID.String())
}

// GetByCode retrieves a voucher by its code.
func (r *DiscountRepo) GetByCode(ctx context.Context, code string) (*discount.DiscountVoucher, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"code": code}).
		Where(squirrel.Eq{"deletion_mark": false})

	return r.getOne(ctx, q, code)
}

func (r *DiscountRepo) getOne(ctx context.Context, q squirrel.SelectBuilder, ref string) (*discount.DiscountVoucher, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	voucher := &discount.DiscountVoucher{}
	if err := pgxscan.Get(ctx, r.querier(ctx), voucher, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound(discountVouchersTable, ref)
		}
		return nil, fmt.Errorf("get %s: %w", discountVouchersTable, err)
	}

	return voucher, nil
}

// ExistsByCode checks if a voucher with the given code exists.
func (r *DiscountRepo) ExistsByCode(ctx context.Context, code string) (bool, error) {
	q := r.builder().
		Select("1").
		From(discountVouchersTable).
		Where(squirrel.Eq{"code": code}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}

	var exists int
	err = r.querier(ctx).QueryRow(ctx, sql, args...).Scan(&exists)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("exists by code: %w", err)
	}

	return true, nil
}

// List retrieves vouchers with filtering and pagination.
func (r *DiscountRepo) List(ctx context.Context, filter discount.ListFilter) (domain.ListResult[*discount.DiscountVoucher], error) {
	result := domain.ListResult[*discount.DiscountVoucher]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.baseSelect()

	if !filter.IncludeDeleted {
		q = q.Where(squirrel.Eq{"deletion_mark": false})
	}

	if filter.ActiveOnly {
		q = q.Where(squirrel.Eq{"active": true})
	}

	if filter.Model != "" {
		q = q.Where(squirrel.Eq{"model": filter.Model})
	}

	if filter.Search != "" {
		q = q.Where(squirrel.ILike{"code": "%" + filter.Search + "%"})
	}

	countQ := r.builder().Select("COUNT(*)").FromSelect(q, "sub")
	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return result, fmt.Errorf("build count: %w", err)
	}

	querier := r.querier(ctx)
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count: %w", err)
	}

	q = q.OrderBy("created_at DESC")

	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Select(ctx, querier, &result.Items, sql, args...); err != nil {
		return result, fmt.Errorf("list: %w", err)
	}

	return result, nil
}
