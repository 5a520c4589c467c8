// Package emit is the Emission Interface boundary (§6): it walks a
// resolved Database into a flat, read-only report of what the compiler
// would hand to a back-end text emitter, and formats that report the way
// the CLI's -f/--format surface expects. Package emit never touches the
// filesystem and never renders source text for a target language — that
// back end is explicitly out of scope (§1 Non-goals).
package emit

import (
	"fmt"
	"strings"
)

// Format selects a report rendering.
type Format string

const (
	FormatHuman   Format = "human"
	FormatJSON    Format = "json"
	FormatSummary Format = "summary"
)

// Formatter renders a Report as text.
type Formatter interface {
	Format(*Report) (string, error)
}

// NewFormatter resolves a Formatter by name, defaulting to human-readable
// output when name is empty (§6 CLI flag surface).
func NewFormatter(name string) (Formatter, error) {
	format := Format(strings.ToLower(strings.TrimSpace(name)))
	switch format {
	case "", FormatHuman:
		return humanFormatter{}, nil
	case FormatJSON:
		return jsonFormatter{}, nil
	case FormatSummary:
		return summaryFormatter{}, nil
	default:
		return nil, fmt.Errorf("unsupported report format: %s; use 'human', 'json', or 'summary'", name)
	}
}
