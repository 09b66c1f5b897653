package numerator

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigFormat(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		num  int64
		want string
	}{
		{"default padding", DefaultConfig("PV"), 1, "PV 001"},
		{"padding preserved", DefaultConfig("SV"), 42, "SV 042"},
		{"overflow widens", DefaultConfig("PR"), 1234, "PR 1234"},
		{"zero-value config falls back", Config{Prefix: "SR"}, 7, "SR 007"},
		{"custom separator", Config{Prefix: "INV", PadWidth: 5, Separator: "-"}, 3, "INV-00003"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.Format(tt.num))
		})
	}
}

func TestMemory_MonotonicPerPrefix(t *testing.T) {
	gen := NewMemory()
	ctx := context.Background()

	pv := DefaultConfig("PV")
	sv := DefaultConfig("SV")

	for i, want := range []string{"PV 001", "PV 002", "PV 003"} {
		got, err := gen.Next(ctx, pv)
		require.NoError(t, err, "call %d", i)
		assert.Equal(t, want, got)
	}

	// Each prefix has its own counter.
	got, err := gen.Next(ctx, sv)
	require.NoError(t, err)
	assert.Equal(t, "SV 001", got)
}

func TestMemory_SetNext(t *testing.T) {
	gen := NewMemory()
	ctx := context.Background()
	cfg := DefaultConfig("PV")

	require.NoError(t, gen.SetNext(ctx, cfg, 100))

	got, err := gen.Next(ctx, cfg)
	require.NoError(t, err)
	assert.Equal(t, "PV 101", got)
}

func TestMemory_ConcurrentNextNoDuplicates(t *testing.T) {
	gen := NewMemory()
	cfg := DefaultConfig("PV")

	const n = 100
	results := make(chan string, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			num, err := gen.Next(context.Background(), cfg)
			assert.NoError(t, err)
			results <- num
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[string]bool)
	for num := range results {
		assert.False(t, seen[num], "duplicate number %s", num)
		seen[num] = true
	}
	assert.Len(t, seen, n)
}
