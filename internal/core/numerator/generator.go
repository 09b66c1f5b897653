// Package numerator provides domain contracts for document auto-numbering.
// Implementations live in the infrastructure layer.
package numerator

import (
	"context"
)

// Generator produces sequential display ids for documents.
// This is the domain contract - implementations live in infrastructure layer.
type Generator interface {
	// Next generates the next display id for the configured document type.
	// Pattern: PREFIX XXX (e.g., "PV 001").
	//
	// Allocation is backed by an atomic per-type counter; sequential calls
	// within one type yield strictly increasing ordinals. If the backing
	// store is unreachable the allocation fails closed and no id is issued.
	Next(ctx context.Context, cfg Config) (string, error)

	// SetNext sets the next ordinal value (for migration purposes).
	SetNext(ctx context.Context, cfg Config, value int64) error
}
