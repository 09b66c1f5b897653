package reports

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockbook/internal/core/types"
	"stockbook/internal/domain/catalogs/item"
)

func makeItem(code, category string, qty int64, cost, rate string) *item.InventoryItem {
	it := item.NewInventoryItem(code, code)
	it.Category = category
	it.Quantity = qty
	it.CostPrice = types.MustMoney(cost)
	it.Rate = types.MustMoney(rate)
	return it
}

func TestSummarize_Empty(t *testing.T) {
	summary := Summarize(nil)

	assert.Equal(t, 0, summary.TotalItems)
	assert.True(t, summary.TotalValue.IsZero())
	// Zero items must not blow up the average.
	assert.True(t, summary.AverageItemValue.IsZero())
	assert.Empty(t, summary.CategoryBreakdown)
}

func TestSummarize_CostBasisAndCategories(t *testing.T) {
	items := []*item.InventoryItem{
		makeItem("ITM-1", "tools", 10, "5", "8"),     // cost value 50
		makeItem("ITM-2", "tools", 4, "2.50", "4"),   // cost value 10
		makeItem("ITM-3", "fasteners", 100, "0.10", "0.25"), // cost value 10
	}

	summary := Summarize(items)

	assert.Equal(t, 3, summary.TotalItems)
	// Valuation uses cost basis, not the display rate.
	assert.True(t, summary.TotalValue.Equal(types.MustMoney("70")))
	assert.True(t, summary.AverageItemValue.Equal(types.MustMoney("23.33")))

	require.Len(t, summary.CategoryBreakdown, 2)
	tools := summary.CategoryBreakdown["tools"]
	assert.Equal(t, 2, tools.Count)
	assert.True(t, tools.Value.Equal(types.MustMoney("60")))

	fasteners := summary.CategoryBreakdown["fasteners"]
	assert.Equal(t, 1, fasteners.Count)
	assert.True(t, fasteners.Value.Equal(types.MustMoney("10")))
}

func TestSummarize_SkipsInactiveItems(t *testing.T) {
	inactive := makeItem("ITM-1", "tools", 10, "5", "8")
	inactive.Active = false

	summary := Summarize([]*item.InventoryItem{
		inactive,
		makeItem("ITM-2", "tools", 1, "3", "5"),
	})

	assert.Equal(t, 1, summary.TotalItems)
	assert.True(t, summary.TotalValue.Equal(types.MustMoney("3")))
	assert.Equal(t, 1, summary.CategoryBreakdown["tools"].Count)
}

func TestSummarize_StockStatusCounters(t *testing.T) {
	out := makeItem("ITM-1", "tools", 0, "1", "2")

	low := makeItem("ITM-2", "tools", 2, "1", "2")
	low.MinStockLevel = 5

	ok := makeItem("ITM-3", "tools", 50, "1", "2")
	ok.MinStockLevel = 5

	summary := Summarize([]*item.InventoryItem{out, low, ok})

	assert.Equal(t, 1, summary.OutOfStockCount)
	assert.Equal(t, 1, summary.LowStockCount)
	assert.Equal(t, 3, summary.TotalItems)
}
