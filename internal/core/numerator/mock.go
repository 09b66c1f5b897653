// Package numerator provides domain contracts for document auto-numbering.
package numerator

import (
	"context"
)

// MockGenerator is a test implementation of Generator.
// Use in unit tests to avoid database dependencies.
type MockGenerator struct {
	NextFunc    func(ctx context.Context, cfg Config) (string, error)
	SetNextFunc func(ctx context.Context, cfg Config, value int64) error
}

// Next implements Generator.
func (m *MockGenerator) Next(ctx context.Context, cfg Config) (string, error) {
	if m.NextFunc != nil {
		return m.NextFunc(ctx, cfg)
	}
	// Default: return predictable mock number
	return cfg.Format(1), nil
}

// SetNext implements Generator.
func (m *MockGenerator) SetNext(ctx context.Context, cfg Config, value int64) error {
	if m.SetNextFunc != nil {
		return m.SetNextFunc(ctx, cfg, value)
	}
	return nil
}

// Ensure compile-time interface compliance.
var _ Generator = (*MockGenerator)(nil)
