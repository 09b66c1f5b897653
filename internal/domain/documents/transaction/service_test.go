package transaction

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/id"
	"stockbook/internal/core/numerator"
	"stockbook/internal/core/tx"
	"stockbook/internal/core/types"
	"stockbook/internal/domain"
)

type fakeRepo struct {
	byID  map[id.ID]*Voucher
	lines map[id.ID][]Line
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		byID:  make(map[id.ID]*Voucher),
		lines: make(map[id.ID][]Line),
	}
}

func (r *fakeRepo) Create(ctx context.Context, doc *Voucher) error {
	cp := *doc
	cp.Lines = nil
	r.byID[doc.ID] = &cp
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, docID id.ID) (*Voucher, error) {
	if doc, ok := r.byID[docID]; ok {
		cp := *doc
		return &cp, nil
	}
	return nil, apperror.NewNotFound("vouchers", docID.String())
}

func (r *fakeRepo) GetByNumber(ctx context.Context, kind Kind, number string) (*Voucher, error) {
	for _, doc := range r.byID {
		if doc.Kind == kind && doc.Number == number {
			cp := *doc
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("vouchers", number)
}

func (r *fakeRepo) Update(ctx context.Context, doc *Voucher) error {
	if _, ok := r.byID[doc.ID]; !ok {
		return apperror.NewNotFound("vouchers", doc.ID.String())
	}
	cp := *doc
	cp.Lines = nil
	r.byID[doc.ID] = &cp
	return nil
}

func (r *fakeRepo) GetLines(ctx context.Context, docID id.ID) ([]Line, error) {
	return append([]Line(nil), r.lines[docID]...), nil
}

func (r *fakeRepo) SaveLines(ctx context.Context, docID id.ID, lines []Line) error {
	r.lines[docID] = append([]Line(nil), lines...)
	return nil
}

func (r *fakeRepo) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Voucher], error) {
	result := domain.ListResult[*Voucher]{Limit: filter.Limit, Offset: filter.Offset}
	for _, doc := range r.byID {
		cp := *doc
		result.Items = append(result.Items, &cp)
	}
	result.TotalCount = int64(len(result.Items))
	return result, nil
}

func sequentialNumerator() *numerator.MockGenerator {
	counters := make(map[string]int64)
	return &numerator.MockGenerator{
		NextFunc: func(ctx context.Context, cfg numerator.Config) (string, error) {
			counters[cfg.Prefix]++
			return cfg.Format(counters[cfg.Prefix]), nil
		},
	}
}

func newTestService() (*Service, *fakeRepo) {
	repo := newFakeRepo()
	return NewService(repo, sequentialNumerator(), tx.Noop{}), repo
}

func newPurchaseVoucher() *Voucher {
	doc := NewVoucher(KindPurchase, "Acme Supplies")
	doc.AddLine(Line{ItemName: "Widget", Quantity: 2, Rate: types.MustMoney("10")})
	return doc
}

func TestServiceCreate_AssignsNumberAndTotals(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	doc := newPurchaseVoucher()
	require.NoError(t, svc.Create(ctx, doc))

	assert.Equal(t, "PV 001", doc.Number)
	assert.True(t, doc.Total.Equal(types.MustMoney("20")))
	assert.Equal(t, 1, doc.Entries)
	assert.Len(t, repo.lines[doc.ID], 1)

	// Numbers are independent per kind.
	sales := NewVoucher(KindSales, "Retail Party")
	sales.AddLine(Line{ItemName: "Gadget", Quantity: 1, Rate: types.MustMoney("5")})
	require.NoError(t, svc.Create(ctx, sales))
	assert.Equal(t, "SV 001", sales.Number)

	second := newPurchaseVoucher()
	require.NoError(t, svc.Create(ctx, second))
	assert.Equal(t, "PV 002", second.Number)
}

func TestServiceCreate_ValidationBeforeNumbering(t *testing.T) {
	repo := newFakeRepo()
	numeratorCalled := false
	gen := &numerator.MockGenerator{
		NextFunc: func(ctx context.Context, cfg numerator.Config) (string, error) {
			numeratorCalled = true
			return cfg.Format(1), nil
		},
	}
	svc := NewService(repo, gen, tx.Noop{})

	doc := NewVoucher(KindPurchase, "") // missing counterparty
	doc.AddLine(Line{ItemName: "Widget", Quantity: 1, Rate: types.MustMoney("1")})

	err := svc.Create(context.Background(), doc)
	require.Error(t, err)
	assert.False(t, numeratorCalled)
	assert.Empty(t, repo.byID)
}

func TestServiceCreate_NumeratorFailureFailsClosed(t *testing.T) {
	repo := newFakeRepo()
	gen := &numerator.MockGenerator{
		NextFunc: func(ctx context.Context, cfg numerator.Config) (string, error) {
			return "", errors.New("connection refused")
		},
	}
	svc := NewService(repo, gen, tx.Noop{})

	err := svc.Create(context.Background(), newPurchaseVoucher())
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeDependencyUnavailable, appErr.Code)
	assert.Empty(t, repo.byID)
}

func TestServiceGetByRef_NumberThenID(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	doc := newPurchaseVoucher()
	require.NoError(t, svc.Create(ctx, doc))

	byNumber, err := svc.GetByRef(ctx, KindPurchase, "PV 001")
	require.NoError(t, err)
	assert.Equal(t, doc.ID, byNumber.ID)
	assert.Len(t, byNumber.Lines, 1)

	byID, err := svc.GetByRef(ctx, KindPurchase, doc.ID.String())
	require.NoError(t, err)
	assert.Equal(t, doc.ID, byID.ID)

	_, err = svc.GetByRef(ctx, KindPurchase, "no-such-ref")
	assert.True(t, apperror.IsNotFound(err))
}

func TestServiceUpdate_TotalFrozenWithoutLineReplacement(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	doc := newPurchaseVoucher()
	require.NoError(t, svc.Create(ctx, doc))
	original := doc.Total

	doc.Counterparty = "Acme Supplies Ltd"
	doc.Lines[0].Rate = types.MustMoney("999")
	require.NoError(t, svc.Update(ctx, doc, false))

	// Header-only edit: the total stays as computed at creation.
	assert.True(t, doc.Total.Equal(original))

	stored, err := svc.GetByID(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Supplies Ltd", stored.Counterparty)
	assert.True(t, stored.Total.Equal(original))
}

func TestServiceUpdate_ReplacingLinesRecomputes(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	doc := newPurchaseVoucher()
	require.NoError(t, svc.Create(ctx, doc))

	doc.Lines = nil
	doc.AddLine(Line{ItemName: "Gadget", Quantity: 3, Rate: types.MustMoney("7")})
	require.NoError(t, svc.Update(ctx, doc, true))

	assert.True(t, doc.Total.Equal(types.MustMoney("21")))
	assert.Equal(t, 1, doc.Entries)
	require.Len(t, repo.lines[doc.ID], 1)
	assert.Equal(t, "Gadget", repo.lines[doc.ID][0].ItemName)
}

func TestServiceVoid(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	doc := newPurchaseVoucher()
	require.NoError(t, svc.Create(ctx, doc))

	voided, err := svc.Void(ctx, KindPurchase, "PV 001")
	require.NoError(t, err)
	assert.Equal(t, StatusVoided, voided.Status)
	// The display number survives the void.
	assert.Equal(t, "PV 001", voided.Number)

	// Second void is rejected.
	_, err = svc.Void(ctx, KindPurchase, "PV 001")
	require.Error(t, err)

	// Voided documents are frozen.
	err = svc.Update(ctx, voided, false)
	assert.Error(t, err)
}
