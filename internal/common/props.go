// Property Accessors: typed lookup over an element's attribute dictionary
// with defaults and graceful parse-failure handling, grounded on the
// original source's get.cpp/prop.cpp split between raw XML access and
// typed reads.
package common

import (
	"strconv"
	"strings"

	"sbec/internal/diag"
	"sbec/internal/xmlschema"
)

// PropString returns attr's string value, or def when the attribute is
// absent.
func PropString(n *xmlschema.Node, attr, def string) string {
	if v, ok := n.Attr(attr); ok {
		return v
	}
	return def
}

// PropRequiredString returns attr's string value, or an error identifying
// a MissingRequiredAttribute failure (§7) when absent or empty.
func PropRequiredString(n *xmlschema.Node, attr string) (string, error) {
	v, ok := n.Attr(attr)
	if !ok || strings.TrimSpace(v) == "" {
		return "", &MissingAttributeError{Element: n.Tag(), Attr: attr}
	}
	return v, nil
}

// MissingAttributeError identifies the MissingRequiredAttribute error
// class of §7.
type MissingAttributeError struct {
	Element string
	Attr    string
}

func (e *MissingAttributeError) Error() string {
	return "missing required attribute \"" + e.Attr + "\" on <" + e.Element + ">"
}

// PropUint64 parses a uint64-valued attribute, falling back to def and
// recording a warning when the attribute is present but malformed — a
// malformed non-critical attribute degrades to its default rather than
// aborting the phase (supplemented from the original's prop.cpp fallback
// behavior).
func PropUint64(n *xmlschema.Node, attr string, def uint64, diags *diag.Sink) uint64 {
	v, ok := n.Attr(attr)
	if !ok {
		return def
	}
	parsed, err := strconv.ParseUint(strings.TrimSpace(v), 0, 64)
	if err != nil {
		if diags != nil {
			diags.Warning("attribute %q on <%s> is not a valid unsigned integer (%q); using default %d", attr, n.Tag(), v, def)
		}
		return def
	}
	return parsed
}

// PropInt64 parses an int64-valued attribute, falling back to def with a
// recorded warning on malformed input.
func PropInt64(n *xmlschema.Node, attr string, def int64, diags *diag.Sink) int64 {
	v, ok := n.Attr(attr)
	if !ok {
		return def
	}
	parsed, err := strconv.ParseInt(strings.TrimSpace(v), 0, 64)
	if err != nil {
		if diags != nil {
			diags.Warning("attribute %q on <%s> is not a valid integer (%q); using default %d", attr, n.Tag(), v, def)
		}
		return def
	}
	return parsed
}

// PropBool parses a boolean-valued attribute ("true"/"false"), falling
// back to def on absence or malformed input.
func PropBool(n *xmlschema.Node, attr string, def bool, diags *diag.Sink) bool {
	v, ok := n.Attr(attr)
	if !ok {
		return def
	}
	parsed, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		if diags != nil {
			diags.Warning("attribute %q on <%s> is not a valid boolean (%q); using default %t", attr, n.Tag(), v, def)
		}
		return def
	}
	return parsed
}
