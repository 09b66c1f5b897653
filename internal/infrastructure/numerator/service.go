// Package numerator provides the PostgreSQL implementation of document
// auto-numbering. It implements the core/numerator.Generator interface.
package numerator

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	corenumerator "stockbook/internal/core/numerator"
)

// Querier interface for database operations.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Service allocates display ids from an atomically incremented per-type
// counter row. Count-then-format would race under concurrent allocation;
// UPSERT + RETURNING makes every allocation a single atomic round trip.
type Service struct {
	querier Querier
}

// Ensure compile-time interface compliance.
var _ corenumerator.Generator = (*Service)(nil)

// New creates a new numerator service.
func New(querier Querier) *Service {
	return &Service{querier: querier}
}

// Next generates the next display id for the configured document type.
// If the store is unreachable the allocation fails closed: no ordinal is
// consumed and no id is issued.
func (s *Service) Next(ctx context.Context, cfg corenumerator.Config) (string, error) {
	if s == nil {
		return "", fmt.Errorf("numerator service is not initialized")
	}

	var num int64
	err := s.querier.QueryRow(ctx, `
        INSERT INTO sys_sequences (sequence_type, current_val)
        VALUES ($1, 1)
        ON CONFLICT (sequence_type) DO UPDATE SET current_val = sys_sequences.current_val + 1
        RETURNING current_val
	`, cfg.Prefix).Scan(&num)
	if err != nil {
		return "", fmt.Errorf("next number for %s: %w", cfg.Prefix, err)
	}

	return cfg.Format(num), nil
}

// SetNext sets the next ordinal value (for migration purposes).
func (s *Service) SetNext(ctx context.Context, cfg corenumerator.Config, value int64) error {
	var result int64
	err := s.querier.QueryRow(ctx, `
		INSERT INTO sys_sequences (sequence_type, current_val)
		VALUES ($1, $2)
		ON CONFLICT (sequence_type) DO UPDATE SET current_val = $2
		RETURNING current_val
	`, cfg.Prefix, value).Scan(&result)

	return err
}

// ParseNumber extracts the numeric part from a formatted display id.
// Returns -1 if parsing fails.
func ParseNumber(formatted string) int64 {
	var prefix string
	var num int64
	if _, err := fmt.Sscanf(formatted, "%s %d", &prefix, &num); err == nil {
		return num
	}
	return -1
}
