package item

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/types"
)

func TestStockStatus_Classification(t *testing.T) {
	tests := []struct {
		name     string
		quantity int64
		min      int64
		max      int64
		want     StockStatus
	}{
		{"zero stock", 0, 5, 100, StatusOutOfStock},
		{"zero stock with zero thresholds", 0, 0, 0, StatusOutOfStock},
		{"at minimum", 5, 5, 100, StatusLowStock},
		{"below minimum", 3, 5, 100, StatusLowStock},
		{"at maximum", 100, 5, 100, StatusOverstock},
		{"above maximum", 150, 5, 100, StatusOverstock},
		{"normal range", 50, 5, 100, StatusInStock},
		{"no ceiling when max is zero", 1000, 5, 0, StatusInStock},
		{"just above minimum", 6, 5, 100, StatusInStock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it := NewInventoryItem("ITM-1", "Widget")
			it.Quantity = tt.quantity
			it.MinStockLevel = tt.min
			it.MaxStockLevel = tt.max

			assert.Equal(t, tt.want, it.StockStatus())
		})
	}
}

func TestApplyAdjustment_Add(t *testing.T) {
	it := NewInventoryItem("ITM-1", "Widget")
	it.Quantity = 10

	old, updated, err := it.ApplyAdjustment(OpAdd, 5)
	assert.NoError(t, err)
	assert.Equal(t, int64(10), old)
	assert.Equal(t, int64(15), updated)
}

func TestApplyAdjustment_SubtractClampsAtZero(t *testing.T) {
	it := NewInventoryItem("ITM-1", "Widget")
	it.Quantity = 10
	it.MinStockLevel = 5

	// Oversubtraction clamps silently, no error.
	old, updated, err := it.ApplyAdjustment(OpSubtract, 12)
	assert.NoError(t, err)
	assert.Equal(t, int64(10), old)
	assert.Equal(t, int64(0), updated)
	assert.Equal(t, StatusOutOfStock, it.StockStatus())
}

func TestApplyAdjustment_SubtractExact(t *testing.T) {
	it := NewInventoryItem("ITM-1", "Widget")
	it.Quantity = 10

	_, updated, err := it.ApplyAdjustment(OpSubtract, 10)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), updated)
}

func TestApplyAdjustment_SetRejectsNegative(t *testing.T) {
	it := NewInventoryItem("ITM-1", "Widget")
	it.Quantity = 10

	old, updated, err := it.ApplyAdjustment(OpSet, -5)
	assert.Error(t, err)
	assert.True(t, apperror.IsAppError(err))
	assert.Equal(t, int64(10), old)
	assert.Equal(t, int64(10), updated)
	assert.Equal(t, int64(10), it.Quantity)
}

func TestApplyAdjustment_Set(t *testing.T) {
	it := NewInventoryItem("ITM-1", "Widget")
	it.Quantity = 10

	_, updated, err := it.ApplyAdjustment(OpSet, 42)
	assert.NoError(t, err)
	assert.Equal(t, int64(42), updated)
}

func TestApplyAdjustment_UnknownOp(t *testing.T) {
	it := NewInventoryItem("ITM-1", "Widget")

	_, _, err := it.ApplyAdjustment(AdjustOp("multiply"), 2)
	assert.Error(t, err)
}

func TestTotalValue_UsesRate(t *testing.T) {
	it := NewInventoryItem("ITM-1", "Widget")
	it.Quantity = 4
	it.Rate = types.MustMoney("12.50")
	it.CostPrice = types.MustMoney("8.00")

	assert.True(t, it.TotalValue().Equal(types.MustMoney("50")))
	assert.True(t, it.CostValue().Equal(types.MustMoney("32")))
}

func TestProfitMargin(t *testing.T) {
	// (100 - 60) / 100 * 100 = 40.00
	margin := ProfitMargin(types.MustMoney("100"), types.MustMoney("60"))
	assert.True(t, margin.Equal(types.MustMoney("40")))

	// Zero cost yields zero margin, not a division blowup.
	margin = ProfitMargin(types.MustMoney("100"), types.Zero())
	assert.True(t, margin.IsZero())
}

func TestProfitMargin_ZeroPrice(t *testing.T) {
	// Price is the divisor: an unpriced item with a positive cost must
	// yield zero margin, not a division-by-zero panic.
	assert.NotPanics(t, func() {
		margin := ProfitMargin(types.Zero(), types.MustMoney("5"))
		assert.True(t, margin.IsZero())
	})

	assert.NotPanics(t, func() {
		margin := ProfitMargin(types.Zero(), types.Zero())
		assert.True(t, margin.IsZero())
	})
}

func TestValidate(t *testing.T) {
	it := NewInventoryItem("ITM-1", "Widget")
	assert.NoError(t, it.Validate(context.Background()))

	it.Rate = types.MustMoney("-1")
	assert.Error(t, it.Validate(context.Background()))
}
