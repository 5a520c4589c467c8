package schema

import (
	"fmt"
	"strings"

	"sbec/internal/common"
	"sbec/internal/xmlschema"
)

// basicField is the payload for FieldBasic: a scalar or array member whose
// representation is entirely delegated to its referenced Type, save for
// presence/offset/valueRef overrides a <field> element may add (§4.3
// Basic field).
type basicField struct {
	refType      *Type
	presence     Presence
	offset       int
	hasOffset    bool
	valueRefEnum string
	valueRefName string
	valueRefVal  EnumValue
	hasValueRef  bool
}

// parseBasicField parses a <field> element: resolves its type reference
// (or, when type is omitted on a constant field with a valueRef, infers it
// from the referenced enum, §4.3 "infers the type from the reference" /
// §8 boundary scenario 3), applies any presence/offset override, resolves
// a valueRef-based constant to its backing enum value, and enforces the
// presence-interaction rules between a field and its referent (§4.3,
// invariant 8).
func parseBasicField(node *xmlschema.Node, message string, baseVersion uint64, db *Database) (*Field, error) {
	name, err := common.PropRequiredString(node, "name")
	if err != nil {
		return nil, err
	}

	var presence Presence
	var hasPresenceAttr bool
	if p, ok := node.Attr("presence"); ok {
		parsed, perr := ParsePresence(p)
		if perr != nil {
			return nil, perr
		}
		presence = parsed
		hasPresenceAttr = true
	}

	typeName, hasType := node.Attr("type")
	vr, hasValueRefAttr := node.Attr("valueRef")

	var valueRefEnum, valueRefName string
	var valueRefVal EnumValue
	var hasValueRef bool
	var refType *Type

	if hasValueRefAttr {
		enumName, valueName, ok := splitValueRef(vr)
		if !ok {
			return nil, &PresenceViolationError{Detail: fmt.Sprintf("field %q has malformed valueRef %q, expected Enum.Value", name, vr)}
		}
		enumType, err := db.LookupType(enumName, false)
		if err != nil {
			return nil, &UnknownTypeReferenceError{Name: enumName, On: "valueRef of field " + name}
		}
		if err := enumType.EnsureParsed(); err != nil {
			return nil, err
		}
		if enumType.Kind() != KindEnum {
			return nil, &ShapeMismatchError{Detail: fmt.Sprintf("valueRef %q on field %q does not name an enum", vr, name)}
		}
		val, ok := enumType.ValueByName(valueName)
		if !ok {
			return nil, &UnknownTypeReferenceError{Name: valueName, On: "valueRef of field " + name}
		}
		valueRefEnum, valueRefName, valueRefVal, hasValueRef = enumName, valueName, val, true
		if !hasType && hasPresenceAttr && presence == PresenceConstant {
			// type omitted on a constant field with a valueRef: infer the
			// referent from the enum the valueRef points at (§4.3, §8
			// boundary scenario 3).
			refType = enumType
		}
	}

	if hasType {
		rt, err := db.LookupType(typeName, false)
		if err != nil {
			return nil, &UnknownTypeReferenceError{Name: typeName, On: "field " + name}
		}
		if err := rt.EnsureParsed(); err != nil {
			return nil, err
		}
		refType = rt
	}

	if refType == nil {
		return nil, &common.MissingAttributeError{Element: node.Tag(), Attr: "type"}
	}
	if !hasPresenceAttr {
		presence = refType.Presence()
	}

	if err := validateFieldPresence(name, presence, refType); err != nil {
		return nil, err
	}

	f := newField(FieldBasic, name, message, db)
	if err := f.parseCommon(node, baseVersion); err != nil {
		return nil, err
	}

	bf := &basicField{
		refType:      refType,
		presence:     presence,
		valueRefEnum: valueRefEnum,
		valueRefName: valueRefName,
		valueRefVal:  valueRefVal,
		hasValueRef:  hasValueRef,
	}

	if off, ok := node.Attr("offset"); ok {
		v, perr := common.ParseInt64(off)
		if perr != nil {
			return nil, perr
		}
		bf.offset = int(v)
		bf.hasOffset = true
	}

	if presence == PresenceConstant && !hasValueRef && node.Text() == "" {
		return nil, &PresenceViolationError{Detail: fmt.Sprintf("constant field %q has neither literal text nor valueRef", name)}
	}

	f.basic = bf
	f.lowerExtraOpts()
	return f, nil
}

// validateFieldPresence enforces the presence-interaction rules between a
// field and its referenced type (§4.3, invariant 8): a Required field must
// reference a Required type, an Optional field must reference a
// non-Constant Basic or Enum type, and no field may reference a
// variable-length basic type or a data-shaped composite directly — those
// belong behind a <data> element instead.
func validateFieldPresence(name string, presence Presence, refType *Type) error {
	if refType.Kind() == KindComposite && refType.Shape() == ShapeData {
		return &ShapeMismatchError{Detail: fmt.Sprintf("field %q references data-shaped composite %q directly; use a <data> element instead", name, refType.Name())}
	}
	if refType.Kind() == KindBasic && refType.IsVariableLength() {
		return &ShapeMismatchError{Detail: fmt.Sprintf("field %q references variable-length type %q directly; use a <data> element instead", name, refType.Name())}
	}
	switch presence {
	case PresenceRequired:
		if refType.Presence() != PresenceRequired {
			return &PresenceViolationError{Detail: fmt.Sprintf("required field %q references %q, which is not Required", name, refType.Name())}
		}
	case PresenceOptional:
		if refType.Presence() == PresenceConstant {
			return &PresenceViolationError{Detail: fmt.Sprintf("optional field %q references constant type %q", name, refType.Name())}
		}
		if refType.Kind() != KindBasic && refType.Kind() != KindEnum {
			return &ShapeMismatchError{Detail: fmt.Sprintf("optional field %q references %q, which is neither Basic nor Enum", name, refType.Name())}
		}
	}
	return nil
}

func splitValueRef(s string) (enum, value string, ok bool) {
	idx := strings.LastIndex(s, ".")
	if idx <= 0 || idx == len(s)-1 {
		return "", "", false
	}
	return s[:idx], s[idx+1:], true
}

// RefType is the type a basic field's representation delegates to.
func (f *Field) RefType() *Type {
	if f.basic == nil {
		return nil
	}
	return f.basic.refType
}

// Presence is a basic field's effective presence, after any override.
func (f *Field) Presence() Presence {
	if f.basic == nil {
		return PresenceRequired
	}
	return f.basic.presence
}

// Offset returns a basic field's explicit offset override, if declared.
func (f *Field) Offset() (int, bool) {
	if f.basic == nil {
		return 0, false
	}
	return f.basic.offset, f.basic.hasOffset
}

// ValueRef returns the resolved enum value a constant field's valueRef
// points to.
func (f *Field) ValueRef() (EnumValue, bool) {
	if f.basic == nil {
		return EnumValue{}, false
	}
	return f.basic.valueRefVal, f.basic.hasValueRef
}

// SerializationLength returns a basic field's fixed wire width, delegating
// to its referenced type; a constant field occupies no wire bytes. A group
// reports its block length and a data field reports -1.
func (f *Field) SerializationLength() int {
	switch f.kind {
	case FieldBasic:
		if f.basic.presence == PresenceConstant {
			return 0
		}
		return f.basic.refType.SerializationLength()
	case FieldGroup:
		return f.group.blockLength
	default:
		return -1
	}
}
