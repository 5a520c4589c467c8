package emit

import (
	"fmt"
	"strings"
)

type summaryFormatter struct{}

// Format renders a Report as a compact one-screen summary, grounded on
// the teacher's schema-diff summary formatter (§6).
func (summaryFormatter) Format(r *Report) (string, error) {
	if r == nil {
		return "No schema loaded.\n", nil
	}

	var sb strings.Builder
	sb.WriteString("Schema Summary\n")
	sb.WriteString("==============\n\n")

	fmt.Fprintf(&sb, "Namespace: %s\n", r.Namespace)
	fmt.Fprintf(&sb, "Version:   %d\n", r.SchemaVersion)
	fmt.Fprintf(&sb, "Types:     %d\n", r.TypeCount)
	fmt.Fprintf(&sb, "Messages:  %d\n", r.MessageCount)

	if len(r.Diagnostics) > 0 {
		fmt.Fprintf(&sb, "\nDiagnostics: %d\n", len(r.Diagnostics))
	}

	return sb.String(), nil
}
