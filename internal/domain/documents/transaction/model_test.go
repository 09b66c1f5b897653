package transaction

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/types"
)

func TestLineAmount_CallerTotalIsAuthoritative(t *testing.T) {
	line := Line{ItemName: "Widget", Quantity: 3, Rate: types.MustMoney("10")}
	assert.True(t, line.Amount().Equal(types.MustMoney("30")))

	// A supplied total wins even when it disagrees with quantity x rate.
	total := types.MustMoney("25")
	line.Total = &total
	assert.True(t, line.Amount().Equal(types.MustMoney("25")))
}

func TestComputeTotals(t *testing.T) {
	v := NewVoucher(KindPurchase, "Acme Supplies")
	v.AddLine(Line{ItemName: "Widget", Quantity: 2, Rate: types.MustMoney("10.50")})

	precomputed := types.MustMoney("99.99")
	v.AddLine(Line{ItemName: "Gadget", Quantity: 1, Rate: types.MustMoney("5"), Total: &precomputed})

	v.ComputeTotals()

	assert.Equal(t, 2, v.Entries)
	// 2 x 10.50 + 99.99 (caller total overrides 1 x 5)
	assert.True(t, v.Total.Equal(types.MustMoney("120.99")))
}

func TestAddLine_Renumbers(t *testing.T) {
	v := NewVoucher(KindSales, "Retail Party")
	v.AddLine(Line{ItemName: "A", Quantity: 1, Rate: types.MustMoney("1")})
	v.AddLine(Line{ItemName: "B", Quantity: 1, Rate: types.MustMoney("1")})

	require.Len(t, v.Lines, 2)
	assert.Equal(t, 1, v.Lines[0].LineNo)
	assert.Equal(t, 2, v.Lines[1].LineNo)
	assert.NotEqual(t, v.Lines[0].LineID, v.Lines[1].LineID)
}

func TestVoucherValidate(t *testing.T) {
	ctx := context.Background()

	valid := func() *Voucher {
		v := NewVoucher(KindPurchase, "Acme Supplies")
		v.AddLine(Line{ItemName: "Widget", Quantity: 1, Rate: types.MustMoney("10")})
		return v
	}

	assert.NoError(t, valid().Validate(ctx))

	tests := []struct {
		name   string
		mutate func(v *Voucher)
	}{
		{"unknown kind", func(v *Voucher) { v.Kind = Kind("transfer") }},
		{"missing counterparty", func(v *Voucher) { v.Counterparty = "" }},
		{"no lines", func(v *Voucher) { v.Lines = nil }},
		{"unnamed line item", func(v *Voucher) { v.Lines[0].ItemName = "" }},
		{"zero quantity", func(v *Voucher) { v.Lines[0].Quantity = 0 }},
		{"negative quantity", func(v *Voucher) { v.Lines[0].Quantity = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := valid()
			tt.mutate(v)
			assert.Error(t, v.Validate(ctx))
		})
	}
}

func TestVoid_ExactlyOnce(t *testing.T) {
	v := NewVoucher(KindSales, "Retail Party")

	require.NoError(t, v.Void())
	assert.Equal(t, StatusVoided, v.Status)

	err := v.Void()
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInvalidState, appErr.Code)
}

func TestCanModify_VoidedIsFrozen(t *testing.T) {
	v := NewVoucher(KindPurchase, "Acme Supplies")
	assert.NoError(t, v.CanModify())

	require.NoError(t, v.Void())
	assert.Error(t, v.CanModify())
}

func TestNumberingConfig(t *testing.T) {
	assert.Equal(t, "PV", NumberingConfig(KindPurchase).Prefix)
	assert.Equal(t, "SV", NumberingConfig(KindSales).Prefix)
}
