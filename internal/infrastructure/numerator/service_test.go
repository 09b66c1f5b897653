package numerator

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5"

	corenumerator "stockbook/internal/core/numerator"
)

// Mock objects
type mockRow struct {
	val int64
	err error
}

func (m *mockRow) Scan(dest ...any) error {
	if m.err != nil {
		return m.err
	}
	if len(dest) > 0 {
		if ptr, ok := dest[0].(*int64); ok {
			*ptr = m.val
		}
	}
	return nil
}

type mockQuerier struct {
	mu sync.Mutex

	// sequences simulates the sys_sequences table, keyed by sequence_type.
	sequences map[string]int64

	err error
}

func newMockQuerier() *mockQuerier {
	return &mockQuerier{sequences: make(map[string]int64)}
}

func (m *mockQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return &mockRow{err: m.err}
	}

	key, _ := args[0].(string)

	// Two args means SetNext (exact value), one means Next (increment).
	if len(args) == 2 {
		if val, ok := args[1].(int64); ok {
			m.sequences[key] = val
		}
	} else {
		m.sequences[key]++
	}

	return &mockRow{val: m.sequences[key]}
}

func TestNext_Monotonic(t *testing.T) {
	q := newMockQuerier()
	svc := New(q)
	ctx := context.Background()
	cfg := corenumerator.DefaultConfig("PV")

	num, err := svc.Next(ctx, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "PV 001" {
		t.Errorf("expected PV 001, got %s", num)
	}

	num, err = svc.Next(ctx, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "PV 002" {
		t.Errorf("expected PV 002, got %s", num)
	}
}

func TestNext_IndependentPerPrefix(t *testing.T) {
	q := newMockQuerier()
	svc := New(q)
	ctx := context.Background()

	_, _ = svc.Next(ctx, corenumerator.DefaultConfig("PV"))
	_, _ = svc.Next(ctx, corenumerator.DefaultConfig("PV"))

	num, err := svc.Next(ctx, corenumerator.DefaultConfig("SV"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "SV 001" {
		t.Errorf("expected SV 001, got %s", num)
	}
}

func TestNext_StoreFailureFailsClosed(t *testing.T) {
	q := newMockQuerier()
	q.err = errors.New("connection refused")
	svc := New(q)

	num, err := svc.Next(context.Background(), corenumerator.DefaultConfig("PV"))
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if num != "" {
		t.Errorf("expected empty number on failure, got %s", num)
	}
}

func TestSetNext(t *testing.T) {
	q := newMockQuerier()
	svc := New(q)
	ctx := context.Background()
	cfg := corenumerator.DefaultConfig("PV")

	if err := svc.SetNext(ctx, cfg, 100); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	num, err := svc.Next(ctx, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "PV 101" {
		t.Errorf("expected PV 101, got %s", num)
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"PV 001", 1},
		{"SV 042", 42},
		{"PR 1234", 1234},
		{"garbage", -1},
		{"", -1},
	}

	for _, tt := range tests {
		if got := ParseNumber(tt.in); got != tt.want {
			t.Errorf("ParseNumber(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
