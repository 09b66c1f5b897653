// Package numerator provides domain contracts for document auto-numbering.
package numerator

import "fmt"

// Config holds numbering configuration for one document type.
type Config struct {
	// Prefix identifies the document type (e.g., "PV", "SV", "PR", "SR")
	Prefix string

	// PadWidth is the minimum ordinal width (default 3)
	PadWidth int

	// Separator goes between prefix and ordinal (default " ")
	Separator string
}

// DefaultConfig returns sensible defaults for a document type prefix.
func DefaultConfig(prefix string) Config {
	return Config{
		Prefix:    prefix,
		PadWidth:  3,
		Separator: " ",
	}
}

// Format renders an ordinal as a display id, e.g. Format(1) -> "PV 001".
func (c Config) Format(num int64) string {
	padWidth := c.PadWidth
	if padWidth == 0 {
		padWidth = 3
	}
	sep := c.Separator
	if sep == "" {
		sep = " "
	}
	return fmt.Sprintf("%s%s%0*d", c.Prefix, sep, padWidth, num)
}
