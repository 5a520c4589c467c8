package emit

import (
	"fmt"
	"strings"
)

type humanFormatter struct{}

// Format renders a Report as an indented, human-readable listing,
// grounded on the teacher's schema-diff text formatter (§6).
func (humanFormatter) Format(r *Report) (string, error) {
	if r == nil {
		return "No schema loaded.\n", nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Schema: namespace=%s version=%d id=%d byteOrder=%s\n",
		r.Namespace, r.SchemaVersion, r.SchemaID, r.Endian)
	fmt.Fprintf(&sb, "Types:    %d\n", r.TypeCount)
	fmt.Fprintf(&sb, "Messages: %d\n", r.MessageCount)
	fmt.Fprintf(&sb, "Options tree nodes: %d\n", r.OptionsTreeSize)

	if len(r.Messages) > 0 {
		sb.WriteString("\nMessages:\n")
		for _, m := range r.Messages {
			fmt.Fprintf(&sb, "  - %s (id=%d, blockLength=%d, fields=%d, groups=%d, data=%d)\n",
				m.Name, m.ID, m.BlockLength, m.FieldCount, m.GroupCount, m.DataCount)
		}
	}

	if len(r.Diagnostics) > 0 {
		fmt.Fprintf(&sb, "\nDiagnostics: %d\n", len(r.Diagnostics))
		for _, d := range r.Diagnostics {
			fmt.Fprintf(&sb, "  - %s\n", d)
		}
	}

	return sb.String(), nil
}
