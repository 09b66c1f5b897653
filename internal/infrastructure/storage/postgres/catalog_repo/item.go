package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"stockbook/internal/domain"
	"stockbook/internal/domain/catalogs/item"
	"stockbook/internal/infrastructure/storage/postgres"
)

const itemsTable = "items"

// ItemRepo implements item.Repository.
type ItemRepo struct {
	*BaseCatalogRepo[*item.InventoryItem]
}

// NewItemRepo creates a new inventory item repository.
func NewItemRepo(txm *postgres.TxManager) *ItemRepo {
	return &ItemRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txm,
			itemsTable,
			postgres.ExtractDBColumns[item.InventoryItem](),
			func() *item.InventoryItem { return &item.InventoryItem{} },
		),
	}
}

var _ item.Repository = (*ItemRepo)(nil)

// List retrieves items with filtering and pagination.
func (r *ItemRepo) List(ctx context.Context, filter item.ListFilter) (domain.ListResult[*item.InventoryItem], error) {
	q := r.baseSelect()

	if !filter.IncludeDeleted {
		q = q.Where(squirrel.Eq{"deletion_mark": false})
	}

	if filter.ActiveOnly {
		q = q.Where(squirrel.Eq{"active": true})
	}

	if filter.Category != "" {
		q = q.Where(squirrel.Eq{"category": filter.Category})
	}

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"code": pattern},
		})
	}

	return r.list(ctx, q, filter.ListFilter)
}

// ListActive returns the full active-item snapshot for reporting.
func (r *ItemRepo) ListActive(ctx context.Context) ([]*item.InventoryItem, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"deletion_mark": false}).
		Where(squirrel.Eq{"active": true}).
		OrderBy("name ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []*item.InventoryItem
	if err := pgxscan.Select(ctx, r.querier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list active items: %w", err)
	}

	return items, nil
}
