package numerator

import (
	"context"
	"sync"
)

// Memory is a process-local Generator for short-lived and test deployments.
// Counters reset on restart and are not shared across processes; it must
// never be relied on as the sequence of record.
type Memory struct {
	mu       sync.Mutex
	counters map[string]int64
}

// NewMemory creates an in-memory generator.
func NewMemory() *Memory {
	return &Memory{counters: make(map[string]int64)}
}

// Next implements Generator.
func (m *Memory) Next(ctx context.Context, cfg Config) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.counters[cfg.Prefix]++
	return cfg.Format(m.counters[cfg.Prefix]), nil
}

// SetNext implements Generator.
func (m *Memory) SetNext(ctx context.Context, cfg Config, value int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.counters[cfg.Prefix] = value
	return nil
}

// Ensure compile-time interface compliance.
var _ Generator = (*Memory)(nil)
