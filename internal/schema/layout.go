package schema

import (
	"fmt"

	"sbec/internal/common"
	"sbec/internal/xmlschema"
)

// computeBlockLayout walks an ordered run of basic fields (the root block
// of a message or group), enforcing that no basic field follows a nested
// group or data member, synthesizing padding to close any gap left by an
// explicit offset, and returning the resulting field slice (with padding
// spliced in) alongside the computed running block length (§4.4 layout
// computation, §8 boundary scenario 1, "group ordering enforcement").
func computeBlockLayout(containerKind, containerName string, fields []*Field, db *Database) ([]*Field, int, error) {
	seenGroupOrData := false
	running := 0
	for _, f := range fields {
		if f.kind != FieldBasic {
			seenGroupOrData = true
			continue
		}
		if seenGroupOrData {
			return nil, 0, &ShapeMismatchError{Detail: fmt.Sprintf("%s %q declares basic field %q after a group or data member; every basic field must precede nested groups and data", containerKind, containerName, f.name)}
		}
		if off, ok := f.Offset(); ok {
			if off < running {
				return nil, 0, &LayoutConflictError{Member: f.name, Expected: running, Declared: off}
			}
			if gap := off - running; gap > 0 {
				pad, err := db.PaddingType(gap)
				if err != nil {
					return nil, 0, err
				}
				fields = insertPadding(fields, f, pad, db)
			}
			running = off
		}
		if l := f.SerializationLength(); l >= 0 {
			running += l
		}
	}
	return fields, running, nil
}

// resolveBlockLength applies an explicit blockLength override, rejecting
// one narrower than the computed layout requires (§7 LayoutConflict).
func resolveBlockLength(owner string, computed int, node *xmlschema.Node) (int, error) {
	explicit, ok := node.Attr("blockLength")
	if !ok {
		return computed, nil
	}
	v, err := common.ParseInt64(explicit)
	if err != nil {
		return 0, err
	}
	if int(v) < computed {
		return 0, &LayoutConflictError{Member: owner + ".blockLength", Expected: computed, Declared: int(v)}
	}
	return int(v), nil
}
