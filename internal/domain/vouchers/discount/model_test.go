package discount

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/types"
)

func newTestVoucher() *DiscountVoucher {
	v := NewDiscountVoucher("SUMMER", ModelPercentage, types.MustMoney("20"))
	v.UsageLimit = 100
	v.ValidFrom = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	v.ValidUntil = time.Date(2025, 8, 31, 23, 59, 59, 0, time.UTC)
	return v
}

func TestGenerateCode_Format(t *testing.T) {
	code := GenerateCode("SUMMER")

	parts := strings.Split(code, "-")
	require.Len(t, parts, 3)
	assert.Equal(t, "SUMMER", parts[0])
	assert.Len(t, parts[1], 6)
	assert.Len(t, parts[2], 4)
}

func TestEvaluate_GuardOrder(t *testing.T) {
	inWindow := time.Date(2025, 7, 15, 12, 0, 0, 0, time.UTC)
	order := types.MustMoney("500")

	tests := []struct {
		name   string
		mutate func(v *DiscountVoucher)
		now    time.Time
		want   Reason
	}{
		{
			name:   "inactive",
			mutate: func(v *DiscountVoucher) { v.Active = false },
			now:    inWindow,
			want:   ReasonInactive,
		},
		{
			// Inactive wins over expired: the guard chain is ordered.
			name:   "inactive and expired reports inactive",
			mutate: func(v *DiscountVoucher) { v.Active = false },
			now:    time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
			want:   ReasonInactive,
		},
		{
			name:   "not yet valid",
			mutate: func(v *DiscountVoucher) {},
			now:    time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
			want:   ReasonNotYetValid,
		},
		{
			name:   "expired",
			mutate: func(v *DiscountVoucher) {},
			now:    time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
			want:   ReasonExpired,
		},
		{
			name:   "limit exceeded",
			mutate: func(v *DiscountVoucher) { v.UsedCount = v.UsageLimit },
			now:    inWindow,
			want:   ReasonLimitExceeded,
		},
		{
			name:   "below minimum",
			mutate: func(v *DiscountVoucher) { v.MinOrderAmount = types.MustMoney("1000") },
			now:    inWindow,
			want:   ReasonBelowMinimum,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newTestVoucher()
			tt.mutate(v)

			result := v.Evaluate(tt.now, order)
			assert.False(t, result.Valid)
			assert.Equal(t, tt.want, result.Reason)
			// A rejected evaluation leaves the order amount untouched.
			assert.True(t, result.FinalAmount.Equal(order))
			assert.True(t, result.Discount.IsZero())
		})
	}
}

func TestEvaluate_PercentageWithCap(t *testing.T) {
	v := newTestVoucher()
	cap := types.MustMoney("50")
	v.MaxDiscountAmount = &cap

	now := time.Date(2025, 7, 15, 12, 0, 0, 0, time.UTC)

	// 20% of 1000 = 200, clamped to the 50 cap.
	result := v.Evaluate(now, types.MustMoney("1000"))
	require.True(t, result.Valid)
	assert.True(t, result.Discount.Equal(types.MustMoney("50")))
	assert.True(t, result.FinalAmount.Equal(types.MustMoney("950")))

	// 20% of 100 = 20, under the cap.
	result = v.Evaluate(now, types.MustMoney("100"))
	require.True(t, result.Valid)
	assert.True(t, result.Discount.Equal(types.MustMoney("20")))
	assert.True(t, result.FinalAmount.Equal(types.MustMoney("80")))
}

func TestEvaluate_FixedExceedsOrder(t *testing.T) {
	v := newTestVoucher()
	v.Model = ModelFixed
	v.Value = types.MustMoney("25")

	now := time.Date(2025, 7, 15, 12, 0, 0, 0, time.UTC)

	// Fixed discounts are never clamped; the final amount floors at zero.
	result := v.Evaluate(now, types.MustMoney("10"))
	require.True(t, result.Valid)
	assert.True(t, result.Discount.Equal(types.MustMoney("25")))
	assert.True(t, result.FinalAmount.IsZero())
}

func TestEvaluate_WindowBoundariesInclusive(t *testing.T) {
	v := newTestVoucher()
	order := types.MustMoney("500")

	result := v.Evaluate(v.ValidFrom, order)
	assert.True(t, result.Valid)

	result = v.Evaluate(v.ValidUntil, order)
	assert.True(t, result.Valid)
}

func TestRegisterRedemption_RejectsAtCap(t *testing.T) {
	v := newTestVoucher()
	v.UsageLimit = 2

	require.NoError(t, v.RegisterRedemption())
	require.NoError(t, v.RegisterRedemption())
	assert.Equal(t, int64(2), v.UsedCount)

	err := v.RegisterRedemption()
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInvalidState, appErr.Code)
	// Rejected, never clamped: the counter stays at the cap.
	assert.Equal(t, int64(2), v.UsedCount)
}

func TestExhausted(t *testing.T) {
	inWindow := time.Date(2025, 7, 15, 12, 0, 0, 0, time.UTC)

	v := newTestVoucher()
	assert.False(t, v.Exhausted(inWindow))

	v.UsedCount = v.UsageLimit
	assert.True(t, v.Exhausted(inWindow))

	v = newTestVoucher()
	assert.True(t, v.Exhausted(time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)))

	// The active flag does not make a voucher exhausted.
	v = newTestVoucher()
	v.Active = false
	assert.False(t, v.Exhausted(inWindow))
}

func TestValidate_Voucher(t *testing.T) {
	ctx := context.Background()

	v := newTestVoucher()
	assert.NoError(t, v.Validate(ctx))

	tests := []struct {
		name   string
		mutate func(v *DiscountVoucher)
	}{
		{"empty code", func(v *DiscountVoucher) { v.Code = "" }},
		{"unknown model", func(v *DiscountVoucher) { v.Model = Model("bogus") }},
		{"zero value", func(v *DiscountVoucher) { v.Value = types.Zero() }},
		{"negative minimum", func(v *DiscountVoucher) { v.MinOrderAmount = types.MustMoney("-1") }},
		{"cap on fixed model", func(v *DiscountVoucher) {
			v.Model = ModelFixed
			cap := types.MustMoney("10")
			v.MaxDiscountAmount = &cap
		}},
		{"zero usage limit", func(v *DiscountVoucher) { v.UsageLimit = 0 }},
		{"missing window", func(v *DiscountVoucher) { v.ValidFrom = time.Time{} }},
		{"inverted window", func(v *DiscountVoucher) { v.ValidUntil = v.ValidFrom.Add(-time.Hour) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newTestVoucher()
			tt.mutate(v)
			assert.Error(t, v.Validate(ctx))
		})
	}
}
