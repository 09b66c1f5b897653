package item

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/id"
	"stockbook/internal/core/tx"
	"stockbook/internal/domain"
)

// fakeRepo is an in-memory item.Repository for unit tests.
type fakeRepo struct {
	byID map[id.ID]*InventoryItem
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: make(map[id.ID]*InventoryItem)}
}

func (r *fakeRepo) Create(ctx context.Context, it *InventoryItem) error {
	cp := *it
	r.byID[it.ID] = &cp
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, itemID id.ID) (*InventoryItem, error) {
	if it, ok := r.byID[itemID]; ok {
		cp := *it
		return &cp, nil
	}
	return nil, apperror.NewNotFound("items", itemID.String())
}

func (r *fakeRepo) GetByCode(ctx context.Context, code string) (*InventoryItem, error) {
	for _, it := range r.byID {
		if it.Code == code {
			cp := *it
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("items", code)
}

func (r *fakeRepo) Update(ctx context.Context, it *InventoryItem) error {
	if _, ok := r.byID[it.ID]; !ok {
		return apperror.NewNotFound("items", it.ID.String())
	}
	cp := *it
	r.byID[it.ID] = &cp
	return nil
}

func (r *fakeRepo) ExistsByCode(ctx context.Context, code string) (bool, error) {
	for _, it := range r.byID {
		if it.Code == code {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) List(ctx context.Context, filter ListFilter) (domain.ListResult[*InventoryItem], error) {
	result := domain.ListResult[*InventoryItem]{Limit: filter.Limit, Offset: filter.Offset}
	for _, it := range r.byID {
		cp := *it
		result.Items = append(result.Items, &cp)
	}
	result.TotalCount = int64(len(result.Items))
	return result, nil
}

func (r *fakeRepo) ListActive(ctx context.Context) ([]*InventoryItem, error) {
	var items []*InventoryItem
	for _, it := range r.byID {
		if it.Active && !it.DeletionMark {
			cp := *it
			items = append(items, &cp)
		}
	}
	return items, nil
}

func newTestService() (*Service, *fakeRepo) {
	repo := newFakeRepo()
	return NewService(repo, tx.Noop{}), repo
}

func TestServiceCreate_RejectsDuplicateCode(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	first := NewInventoryItem("ITM-1", "Widget")
	require.NoError(t, svc.Create(ctx, first))

	dup := NewInventoryItem("ITM-1", "Other Widget")
	err := svc.Create(ctx, dup)
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeDuplicate, appErr.Code)
}

func TestServiceAdjust_RoundTrip(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	it := NewInventoryItem("ITM-1", "Widget")
	it.Quantity = 10
	it.MinStockLevel = 5
	require.NoError(t, svc.Create(ctx, it))

	result, err := svc.Adjust(ctx, it.ID, OpAdd, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(10), result.OldQuantity)
	assert.Equal(t, int64(15), result.NewQuantity)
	assert.Equal(t, StatusInStock, result.Status)

	// Oversubtraction clamps at zero and reports out of stock.
	result, err = svc.Adjust(ctx, it.ID, OpSubtract, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(0), result.NewQuantity)
	assert.Equal(t, StatusOutOfStock, result.Status)
}

func TestServiceAdjust_SetNegativeLeavesStateUntouched(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	it := NewInventoryItem("ITM-1", "Widget")
	it.Quantity = 10
	require.NoError(t, svc.Create(ctx, it))

	_, err := svc.Adjust(ctx, it.ID, OpSet, -1)
	require.Error(t, err)

	stored, err := repo.GetByID(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), stored.Quantity)
}

func TestServiceAdjust_UnknownItem(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Adjust(context.Background(), id.New(), OpAdd, 1)
	assert.True(t, apperror.IsNotFound(err))
}

func TestServiceUpdate_RejectsNegativeQuantity(t *testing.T) {
	// A direct edit follows the same rule as Adjust with the set operation:
	// negative quantities are rejected, not clamped.
	svc, repo := newTestService()
	ctx := context.Background()

	it := NewInventoryItem("ITM-1", "Widget")
	it.Quantity = 10
	require.NoError(t, svc.Create(ctx, it))

	it.Quantity = -7
	err := svc.Update(ctx, it)
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)

	stored, err := repo.GetByID(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), stored.Quantity)
}

func TestServiceDeactivate(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	it := NewInventoryItem("ITM-1", "Widget")
	require.NoError(t, svc.Create(ctx, it))
	require.NoError(t, svc.Deactivate(ctx, it.ID))

	stored, err := repo.GetByID(ctx, it.ID)
	require.NoError(t, err)
	assert.False(t, stored.Active)
}
