package schema

import (
	"sbec/internal/common"
	"sbec/internal/xmlschema"
)

// groupField is the payload for FieldGroup: a repeating block of member
// fields prefixed on the wire by a dimension composite giving its block
// length and repeat count (§4.3 Group field).
type groupField struct {
	dimensionType *Type
	blockLength   int
	fields        []*Field
}

const defaultDimensionTypeName = "groupSizeEncoding"

// parseGroupField parses a <group> element: resolves its dimensionType
// composite, recursively parses its nested field/group/data children
// (enforcing that every basic field precedes any nested group or data
// member, §4.3 "group ordering enforcement" / §7 ShapeMismatch, §8
// boundary scenario), and computes its root block length.
func parseGroupField(node *xmlschema.Node, message string, baseVersion uint64, db *Database) (*Field, error) {
	name, err := common.PropRequiredString(node, "name")
	if err != nil {
		return nil, err
	}

	dimName := common.PropString(node, "dimensionType", defaultDimensionTypeName)
	dimType, err := db.LookupType(dimName, false)
	if err != nil {
		return nil, &UnknownTypeReferenceError{Name: dimName, On: "dimensionType of group " + name}
	}
	if err := dimType.EnsureParsed(); err != nil {
		return nil, err
	}
	if err := dimType.ValidateDimensionShape(); err != nil {
		return nil, err
	}
	db.GroupListUsed = true

	f := newField(FieldGroup, name, message, db)
	if err := f.parseCommon(node, baseVersion); err != nil {
		return nil, err
	}

	members, err := parseFieldChildren(node, message, f.sinceVersion, db)
	if err != nil {
		return nil, err
	}

	laidOut, running, err := computeBlockLayout("group", name, members, db)
	if err != nil {
		return nil, err
	}
	blockLength, err := resolveBlockLength(name, running, node)
	if err != nil {
		return nil, err
	}

	f.group = &groupField{dimensionType: dimType, blockLength: blockLength, fields: laidOut}
	f.lowerExtraOpts()
	return f, nil
}

func insertPadding(members []*Field, before *Field, pad *Type, db *Database) []*Field {
	padField := newPaddingField(pad, db)
	out := make([]*Field, 0, len(members)+1)
	for _, m := range members {
		if m == before {
			out = append(out, padField)
		}
		out = append(out, m)
	}
	return out
}

// DimensionType is the composite describing a group's blockLength and
// numInGroup wire prefix.
func (f *Field) DimensionType() *Type {
	if f.group == nil {
		return nil
	}
	return f.group.dimensionType
}

// BlockLength is a group's fixed per-entry block size in bytes.
func (f *Field) BlockLength() int {
	if f.group == nil {
		return 0
	}
	return f.group.blockLength
}

// Fields returns a group's nested member fields in declaration order
// (with any synthesized padding fields spliced in).
func (f *Field) Fields() []*Field {
	if f.group == nil {
		return nil
	}
	return f.group.fields
}
