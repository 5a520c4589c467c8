package schema

import (
	"fmt"

	"sbec/internal/common"
	"sbec/internal/xmlschema"
)

// parseBasic parses a <type> element: a primitive-backed scalar, fixed or
// variable-length array, or constant (§4.2 Simple integer / Simple float
// / Simple array / Constant).
func (t *Type) parseBasic(node *xmlschema.Node) error {
	primName, err := common.PropRequiredString(node, "primitiveType")
	if err != nil {
		return err
	}
	if !common.ValidPrimitive(primName) {
		return &UnknownTypeReferenceError{Name: primName, On: "primitiveType"}
	}
	t.primitiveType = common.Primitive(primName)
	t.hasPrimitiveType = true

	t.length = int(common.PropUint64(node, "length", 1, t.db.Diagnostics))
	t.characterEncoding = common.PropString(node, "characterEncoding", "")
	t.semanticType = common.PropString(node, "semanticType", "")

	if err := t.parseBasicRange(node); err != nil {
		return err
	}

	if t.presence == PresenceConstant {
		text := node.Text()
		if text == "" {
			return &PresenceViolationError{Detail: fmt.Sprintf("constant type %q has no literal text", t.name)}
		}
		t.constantText = text
		t.hasConstantText = true
	}

	t.lowerExtraOpts()
	t.written = true
	return nil
}

// parseBasicRange resolves explicit minValue/maxValue/nullValue attributes
// against the primitive's default table, rejecting a minValue/maxValue
// outside a signed or narrow-unsigned primitive's declared range; nullValue
// is not range-checked, and float/double honor only nullValue (§4.2 Simple
// integer, §8 boundary scenario 2).
func (t *Type) parseBasicRange(node *xmlschema.Node) error {
	if common.IsFloatingPoint(t.primitiveType) {
		if v, ok := node.Attr("nullValue"); ok {
			f, err := parseFloatLiteral(v)
			if err != nil {
				return err
			}
			t.nullValueF = &f
		}
		return nil
	}

	if t.primitiveType == common.PrimitiveUint64 {
		lim := common.LookupUint64Limits()
		minV, maxV, nullV := lim.ValidMin, lim.ValidMax, lim.Null
		if v, ok := node.Attr("minValue"); ok {
			p, err := common.ParseUint64(v)
			if err != nil {
				return err
			}
			minV = p
		}
		if v, ok := node.Attr("maxValue"); ok {
			p, err := common.ParseUint64(v)
			if err != nil {
				return err
			}
			maxV = p
		}
		if v, ok := node.Attr("nullValue"); ok {
			p, err := common.ParseUint64(v)
			if err != nil {
				return err
			}
			nullV = p
		}
		t.minValueU, t.maxValueU, t.nullValueU = &minV, &maxV, &nullV
		return nil
	}

	lim, ok := common.LookupIntegerLimits(t.primitiveType)
	if !ok {
		return fmt.Errorf("no integer limits table entry for primitive %q", t.primitiveType)
	}
	minV, maxV, nullV := lim.ValidMin, lim.ValidMax, lim.Null
	if v, ok := node.Attr("minValue"); ok {
		p, err := common.ParseInt64(v)
		if err != nil {
			return err
		}
		minV = p
	}
	if v, ok := node.Attr("maxValue"); ok {
		p, err := common.ParseInt64(v)
		if err != nil {
			return err
		}
		maxV = p
	}
	if v, ok := node.Attr("nullValue"); ok {
		p, err := common.ParseInt64(v)
		if err != nil {
			return err
		}
		nullV = p
	}
	if minV < lim.DeclaredMin || maxV > lim.DeclaredMax {
		return &PresenceViolationError{Detail: fmt.Sprintf("type %q declares a min/max range outside %s's declared range", t.name, t.primitiveType)}
	}
	t.minValue, t.maxValue, t.nullValue = &minV, &maxV, &nullV
	return nil
}

func parseFloatLiteral(s string) (float64, error) {
	var f float64
	_, err := fmt.Sscanf(s, "%g", &f)
	if err != nil {
		return 0, fmt.Errorf("numeric conversion: %q is not a valid float literal: %w", s, err)
	}
	return f, nil
}

// PrimitiveType returns the underlying primitive for a basic type, or for
// an enum/set's encoding primitive.
func (t *Type) PrimitiveType() common.Primitive {
	switch t.kind {
	case KindBasic:
		return t.primitiveType
	case KindEnum:
		return t.enum.encodingPrimitive
	case KindSet:
		return t.set.encodingPrimitive
	default:
		return ""
	}
}

// Length is the declared array length (1 for a scalar).
func (t *Type) Length() int { return t.length }

// IsVariableLength reports whether this basic type is the variable-length
// data shape's varData member convention: length 0 declares "determined at
// runtime by the paired length member" (§4.2 Simple array).
func (t *Type) IsVariableLength() bool {
	return t.kind == KindBasic && t.length == 0
}

// SerializationLength returns the type's fixed wire width in bytes, or -1
// when the type has no fixed width (variable-length data, or a composite
// containing one) — §4.4 layout computation consults this for every
// member.
func (t *Type) SerializationLength() int {
	switch t.kind {
	case KindBasic:
		if t.length == 0 {
			return -1
		}
		return common.PrimitiveSize(t.primitiveType) * t.length
	case KindEnum:
		return common.PrimitiveSize(t.enum.encodingPrimitive)
	case KindSet:
		return common.PrimitiveSize(t.set.encodingPrimitive)
	case KindComposite:
		return t.composite.serializationLength()
	case KindRef:
		if t.ref.target == nil {
			return -1
		}
		return t.ref.target.SerializationLength()
	default:
		return -1
	}
}

// ConstantText is the literal text of a constant-presence basic type.
func (t *Type) ConstantText() (string, bool) { return t.constantText, t.hasConstantText }
