package returns

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockbook/internal/core/apperror"
)

func newTestReturn() *ReturnRecord {
	r := NewReturnRecord(KindPurchase)
	r.Description = "damaged in transit"
	r.Entries = 3
	return r
}

func TestReturnValidate(t *testing.T) {
	ctx := context.Background()

	assert.NoError(t, newTestReturn().Validate(ctx))

	tests := []struct {
		name   string
		mutate func(r *ReturnRecord)
	}{
		{"unknown kind", func(r *ReturnRecord) { r.Kind = Kind("exchange") }},
		{"missing description", func(r *ReturnRecord) { r.Description = "" }},
		{"zero entries", func(r *ReturnRecord) { r.Entries = 0 }},
		{"negative entries", func(r *ReturnRecord) { r.Entries = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestReturn()
			tt.mutate(r)
			assert.Error(t, r.Validate(ctx))
		})
	}
}

func TestReturnVoid_ExactlyOnce(t *testing.T) {
	r := newTestReturn()
	r.Number = "PR 001"

	require.NoError(t, r.Void())
	assert.Equal(t, StatusVoided, r.Status)
	// Voiding never frees the display number.
	assert.Equal(t, "PR 001", r.Number)

	err := r.Void()
	require.Error(t, err)
	assert.True(t, apperror.IsInvalidState(err))
}

func TestReturnCanModify(t *testing.T) {
	r := newTestReturn()
	assert.NoError(t, r.CanModify())

	require.NoError(t, r.Void())
	assert.True(t, apperror.IsInvalidState(r.CanModify()))
}

func TestReturnNumberingConfig(t *testing.T) {
	assert.Equal(t, "PR", NumberingConfig(KindPurchase).Prefix)
	assert.Equal(t, "SR", NumberingConfig(KindSales).Prefix)
}
