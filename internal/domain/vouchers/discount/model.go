// Package discount provides the discount voucher engine: code generation,
// validation, and redemption arithmetic.
package discount

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/entity"
	"stockbook/internal/core/types"
)

// Model is the discount computation model.
type Model string

const (
	ModelPercentage Model = "percentage"
	ModelFixed      Model = "fixed"
)

// Reason identifies why a voucher failed validation.
// Guards are evaluated in a fixed order; the first failing guard wins.
type Reason string

const (
	ReasonNotFound      Reason = "not_found"
	ReasonInactive      Reason = "inactive"
	ReasonNotYetValid   Reason = "not_yet_valid"
	ReasonExpired       Reason = "expired"
	ReasonLimitExceeded Reason = "limit_exceeded"
	ReasonBelowMinimum  Reason = "below_minimum"
)

// DiscountVoucher represents a redeemable discount code.
type DiscountVoucher struct {
	entity.BaseDocument

	// Code is globally unique by construction and re-checked before commit.
	Code string `db:"code" json:"code"`

	Model Model       `db:"model" json:"model"`
	Value types.Money `db:"value" json:"value"`

	// MinOrderAmount is the order floor below which the voucher does not apply.
	MinOrderAmount types.Money `db:"min_order_amount" json:"minOrderAmount"`

	// MaxDiscountAmount caps the computed discount (percentage model only).
	MaxDiscountAmount *types.Money `db:"max_discount_amount" json:"maxDiscountAmount,omitempty"`

	// UsageLimit caps redemptions; UsedCount only ever grows.
	UsageLimit int64 `db:"usage_limit" json:"usageLimit"`
	UsedCount  int64 `db:"used_count" json:"usedCount"`

	// Activity window
	ValidFrom  time.Time `db:"valid_from" json:"validFrom"`
	ValidUntil time.Time `db:"valid_until" json:"validUntil"`

	Active bool `db:"active" json:"active"`
}

// NewDiscountVoucher creates a voucher with a freshly generated code.
func NewDiscountVoucher(prefix string, model Model, value types.Money) *DiscountVoucher {
	return &DiscountVoucher{
		BaseDocument: entity.NewBaseDocument(),
		Code:         GenerateCode(prefix),
		Model:        model,
		Value:        value,
		Active:       true,
	}
}

// GenerateCode builds a voucher code: PREFIX-<6-digit-time-suffix>-<4-hex-random>.
// The timestamp suffix and random tail make collisions effectively impossible;
// the service still re-checks before commit.
func GenerateCode(prefix string) string {
	suffix := time.Now().UnixMilli() % 1_000_000

	buf := make([]byte, 2)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms; fall back to the clock
		buf[0] = byte(time.Now().UnixNano())
		buf[1] = byte(time.Now().UnixNano() >> 8)
	}

	return fmt.Sprintf("%s-%06d-%s", prefix, suffix, hex.EncodeToString(buf))
}

// Validate implements entity.Validatable.
func (v *DiscountVoucher) Validate(ctx context.Context) error {
	if v.Code == "" {
		return apperror.NewValidation("code is required").
			WithDetail("field", "code")
	}

	if v.Model != ModelPercentage && v.Model != ModelFixed {
		return apperror.NewValidation("invalid discount model").
			WithDetail("field", "model").
			WithDetail("value", string(v.Model))
	}

	if !v.Value.IsPositive() {
		return apperror.NewValidation("discount value must be positive").
			WithDetail("field", "value")
	}

	if v.MinOrderAmount.IsNegative() {
		return apperror.NewValidation("minimum order amount cannot be negative").
			WithDetail("field", "minOrderAmount")
	}

	if v.MaxDiscountAmount != nil && v.Model != ModelPercentage {
		return apperror.NewValidation("discount cap applies to percentage vouchers only").
			WithDetail("field", "maxDiscountAmount")
	}

	if v.UsageLimit <= 0 {
		return apperror.NewValidation("usage limit must be positive").
			WithDetail("field", "usageLimit")
	}

	if v.ValidFrom.IsZero() || v.ValidUntil.IsZero() {
		return apperror.NewValidation("activity window is required").
			WithDetail("field", "validFrom/validUntil")
	}

	if v.ValidUntil.Before(v.ValidFrom) {
		return apperror.NewValidation("validUntil must not precede validFrom").
			WithDetail("field", "validUntil")
	}

	return nil
}

// Result is the outcome of evaluating a voucher against an order amount.
type Result struct {
	Code        string      `json:"code"`
	Valid       bool        `json:"valid"`
	Reason      Reason      `json:"reason,omitempty"`
	Discount    types.Money `json:"discount"`
	FinalAmount types.Money `json:"finalAmount"`
}

// Evaluate runs the validation guard chain for an order amount.
// Guard order is fixed and the first failure determines the reason:
// active, window start, window end, usage cap, order minimum.
// A voucher that is both inactive and expired reports inactive.
func (v *DiscountVoucher) Evaluate(now time.Time, orderAmount types.Money) Result {
	reject := func(reason Reason) Result {
		return Result{Code: v.Code, Reason: reason, FinalAmount: orderAmount}
	}

	if !v.Active {
		return reject(ReasonInactive)
	}
	if now.Before(v.ValidFrom) {
		return reject(ReasonNotYetValid)
	}
	if now.After(v.ValidUntil) {
		return reject(ReasonExpired)
	}
	if v.UsedCount >= v.UsageLimit {
		return reject(ReasonLimitExceeded)
	}
	if orderAmount.LessThan(v.MinOrderAmount) {
		return reject(ReasonBelowMinimum)
	}

	discount := v.ComputeDiscount(orderAmount)
	return Result{
		Code:        v.Code,
		Valid:       true,
		Discount:    discount,
		FinalAmount: types.MaxZero(orderAmount.Sub(discount)),
	}
}

// ComputeDiscount returns the discount for an order amount.
// Percentage discounts are clamped by the cap when one is set; fixed
// discounts are never clamped and may exceed the order amount.
func (v *DiscountVoucher) ComputeDiscount(orderAmount types.Money) types.Money {
	if v.Model == ModelFixed {
		return v.Value
	}

	d := types.Percent(orderAmount, v.Value)
	if v.MaxDiscountAmount != nil && d.GreaterThan(*v.MaxDiscountAmount) {
		d = *v.MaxDiscountAmount
	}
	return d
}

// RegisterRedemption increments the usage counter by exactly one.
// It does not re-run the validity chain; only the hard cap invariant
// (usedCount <= usageLimit) is enforced - at the cap the redemption is
// rejected, never clamped. The counter never decrements.
func (v *DiscountVoucher) RegisterRedemption() error {
	if v.UsedCount >= v.UsageLimit {
		return apperror.NewInvalidState("voucher usage limit reached").
			WithDetail("code", v.Code).
			WithDetail("usageLimit", v.UsageLimit)
	}

	v.UsedCount++
	v.Touch()
	return nil
}

// Exhausted reports whether the voucher is permanently unusable,
// independent of the active flag.
func (v *DiscountVoucher) Exhausted(now time.Time) bool {
	return now.After(v.ValidUntil) || v.UsedCount >= v.UsageLimit
}

var _ entity.Validatable = (*DiscountVoucher)(nil)
