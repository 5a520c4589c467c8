package schema

import (
	"fmt"

	"sbec/internal/common"
	"sbec/internal/xmlschema"
)

// compositeType is the payload for KindComposite: an ordered sequence of
// nested type declarations laid out back to back, with implicit padding
// inserted wherever an explicit offset leaves a gap (§4.2 Composite Type,
// §4.4 layout computation, §8 boundary scenario 1).
type compositeType struct {
	members        []*Type
	shape          CompositeShape
	templateMember *Type // the message-header shape's templateId member, if any
}

var compositeChildTags = []string{"type", "composite", "enum", "set", "ref"}

func childKind(tag string) (TypeKind, bool) {
	switch tag {
	case "type":
		return KindBasic, true
	case "composite":
		return KindComposite, true
	case "enum":
		return KindEnum, true
	case "set":
		return KindSet, true
	case "ref":
		return KindRef, true
	default:
		return 0, false
	}
}

// parseComposite parses a <composite> element's nested member declarations
// in document order, computes each member's layout offset (honoring an
// explicit offset or synthesizing padding to close a gap), and classifies
// the composite's shape for downstream message/group/data validation.
func (t *Type) parseComposite(node *xmlschema.Node) error {
	t.composite = &compositeType{}
	running := 0

	for _, child := range node.Children(compositeChildTags...) {
		kind, ok := childKind(child.Tag())
		if !ok {
			continue
		}
		name := common.PropString(child, "name", "")
		member := newType(kind, name, t.db)
		member.containingCompositeVersion = t.sinceVersion

		if err := member.parseFrom(child); err != nil {
			return err
		}

		memberLen := member.SerializationLength()
		if member.hasOffset {
			if member.offset < running {
				return &LayoutConflictError{Member: member.name, Expected: running, Declared: member.offset}
			}
			if gap := member.offset - running; gap > 0 {
				pad, err := t.db.PaddingType(gap)
				if err != nil {
					return err
				}
				t.composite.members = append(t.composite.members, pad)
			}
			running = member.offset
		}
		t.composite.members = append(t.composite.members, member)
		if memberLen >= 0 {
			running += memberLen
		}
		if member.name == "templateId" {
			t.composite.templateMember = member
		}
	}

	shape, err := t.classifyShape()
	if err != nil {
		return err
	}
	t.composite.shape = shape
	t.lowerExtraOpts()
	t.written = true
	return nil
}

// messageHeaderMembers are the four single-length Basic members a
// message-header shaped composite must declare (§4.2 Composite Type,
// §8 boundary scenario 5).
var messageHeaderMembers = []string{"blockLength", "templateId", "schemaId", "version"}

// classifyShape applies the structural recognizers for the data and
// message-header composite shapes (§4.2 Composite Type); dimension shape
// is assigned contextually by MarkShape when a group field adopts this
// composite as its dimensionType.
func (t *Type) classifyShape() (CompositeShape, error) {
	if t.name == t.db.MessageHeaderTypeName {
		byName := map[string]*Type{}
		for _, m := range t.composite.members {
			byName[m.name] = m
		}
		for _, want := range messageHeaderMembers {
			m, ok := byName[want]
			if !ok {
				return 0, &ShapeMismatchError{Detail: fmt.Sprintf("message-header composite %q is missing required member %q", t.name, want)}
			}
			if m.kind != KindBasic || m.Length() != 1 {
				return 0, &ShapeMismatchError{Detail: fmt.Sprintf("message-header composite %q member %q must be a single-length Basic type", t.name, want)}
			}
		}
		schemaID := int64(t.db.SchemaID)
		byName["schemaId"].defaultNumValue = &schemaID
		byName["schemaId"].failOnInvalid = true
		version := int64(t.db.SchemaVersion)
		byName["version"].defaultNumValue = &version
		return ShapeMessageHeader, nil
	}
	if len(t.composite.members) == 2 {
		first, second := t.composite.members[0], t.composite.members[1]
		if first.kind == KindBasic && second.kind == KindBasic && second.IsVariableLength() {
			return ShapeData, nil
		}
	}
	return ShapeBundle, nil
}

// MarkShape overrides a composite's shape once its usage context (e.g.
// adoption as a group's dimensionType) is known.
func (t *Type) MarkShape(shape CompositeShape) {
	if t.composite != nil {
		t.composite.shape = shape
	}
}

// Shape returns the composite's classified shape.
func (t *Type) Shape() CompositeShape {
	if t.composite == nil {
		return ShapeBundle
	}
	return t.composite.shape
}

// Members returns a composite's ordered nested type declarations,
// including any synthesized padding.
func (t *Type) Members() []*Type {
	if t.composite == nil {
		return nil
	}
	return t.composite.members
}

// TemplateIDMember returns the message-header shape's templateId member,
// or nil if this is not a message-header composite or it declares none.
func (t *Type) TemplateIDMember() *Type {
	if t.composite == nil {
		return nil
	}
	return t.composite.templateMember
}

// DataLengthMember and DataBytesMember return the two members of a
// data-shaped composite (the length prefix and the variable byte run),
// or nil if this is not data-shaped.
func (t *Type) DataLengthMember() *Type {
	if t.composite == nil || t.composite.shape != ShapeData || len(t.composite.members) < 2 {
		return nil
	}
	return t.composite.members[0]
}

func (t *Type) DataBytesMember() *Type {
	if t.composite == nil || t.composite.shape != ShapeData || len(t.composite.members) < 2 {
		return nil
	}
	return t.composite.members[1]
}

func (c *compositeType) serializationLength() int {
	total := 0
	for _, m := range c.members {
		l := m.SerializationLength()
		if l < 0 {
			return -1
		}
		total += l
	}
	return total
}

// ValidateDimensionShape checks that a composite adopted as a group's
// dimensionType carries exactly two members, both Required single-length
// Basic types, named blockLength and numInGroup (§3 invariant 3, §4.2
// Composite Type, dimension shape; §7 ShapeMismatch).
func (t *Type) ValidateDimensionShape() error {
	if t.kind != KindComposite {
		return &ShapeMismatchError{Detail: fmt.Sprintf("%q is not a composite and cannot serve as a dimensionType", t.name)}
	}
	if len(t.composite.members) != 2 {
		return &ShapeMismatchError{Detail: fmt.Sprintf("composite %q used as a dimensionType must declare exactly two members, found %d", t.name, len(t.composite.members))}
	}
	var hasBlockLength, hasNumInGroup bool
	for _, m := range t.composite.members {
		if m.kind != KindBasic || m.Length() != 1 || m.Presence() != PresenceRequired {
			return &ShapeMismatchError{Detail: fmt.Sprintf("composite %q used as a dimensionType: member %q must be a Required single-length Basic type", t.name, m.name)}
		}
		switch m.name {
		case "blockLength":
			hasBlockLength = true
		case "numInGroup":
			hasNumInGroup = true
		}
	}
	if !hasBlockLength || !hasNumInGroup {
		return &ShapeMismatchError{Detail: fmt.Sprintf("composite %q used as a dimensionType must declare blockLength and numInGroup members", t.name)}
	}
	t.MarkShape(ShapeDimension)
	return nil
}
