package schema

import (
	"fmt"

	"sbec/internal/common"
	"sbec/internal/xmlschema"
)

// EnumValue is one declared validValue child of an <enum> (§4.2 Enum Type).
type EnumValue struct {
	Name        string
	Value       int64
	Description string
}

// enumType is the payload for KindEnum: a closed, named, integer-encoded
// set of mutually exclusive constant values.
type enumType struct {
	encodingPrimitive common.Primitive
	values            []EnumValue
	byName            map[string]int
	isMsgIDEnum       bool
	validRanges       []ValueRange
}

// ValueRange is one contiguous run of numeric values coalesced from an
// enum's declared values (§4.2 Enum Type, §8 testable property "the
// enum's declared values form a coalesced list of valid ranges").
type ValueRange struct {
	Low  int64
	High int64
}

const enumNullValueName = "NullValue"

// parseEnum parses an <enum> element and its validValue children,
// rejecting a duplicate value name (§7 DuplicateName) or a duplicate
// numeric value. uint64 is
// rejected as an encoding primitive alongside floating-point, Constant
// presence is rejected outright, an Optional enum must resolve a null
// representation (declared or synthesized), and a char-encoded enum's
// valid values must each be a single character (§4.2, §9).
func (t *Type) parseEnum(node *xmlschema.Node) error {
	if t.presence == PresenceConstant {
		return &PresenceViolationError{Detail: fmt.Sprintf("enum %q cannot declare Constant presence", t.name)}
	}

	encName := common.PropString(node, "encodingType", string(common.PrimitiveUint8))
	var prim common.Primitive
	if common.ValidPrimitive(encName) {
		prim = common.Primitive(encName)
	} else {
		target, err := t.db.LookupType(encName, false)
		if err != nil {
			return &UnknownTypeReferenceError{Name: encName, On: "enum " + t.name + " encodingType"}
		}
		if err := target.EnsureParsed(); err != nil {
			return err
		}
		prim = target.PrimitiveType()
	}
	if common.IsFloatingPoint(prim) {
		return &ShapeMismatchError{Detail: fmt.Sprintf("enum %q cannot be encoded by floating-point primitive %q", t.name, prim)}
	}
	if prim == common.PrimitiveUint64 {
		return &ShapeMismatchError{Detail: fmt.Sprintf("enum %q cannot be encoded by primitive %q", t.name, prim)}
	}

	e := &enumType{encodingPrimitive: prim, byName: map[string]int{}}
	seenValues := map[int64]string{}
	for _, vv := range node.Children("validValue") {
		name, err := common.PropRequiredString(vv, "name")
		if err != nil {
			return err
		}
		if _, dup := e.byName[name]; dup {
			return &DuplicateNameError{Kind: "enum value", Value: name}
		}
		raw := vv.Text()
		var val int64
		if prim == common.PrimitiveChar {
			if len(raw) != 1 {
				return &ShapeMismatchError{Detail: fmt.Sprintf("enum %q valid value %q is not a single character, required by char encoding", t.name, name)}
			}
			val = int64(raw[0])
		} else {
			val, err = common.ParseInt64(raw)
			if err != nil {
				return err
			}
		}
		if existing, dup := seenValues[val]; dup {
			return &DuplicateNameError{Kind: "enum value", Value: fmt.Sprintf("%s and %s share numeric value %d", existing, name, val)}
		}
		seenValues[val] = name
		e.byName[name] = len(e.values)
		e.values = append(e.values, EnumValue{Name: name, Value: val, Description: common.PropString(vv, "description", "")})
	}

	if t.presence == PresenceOptional {
		nullRaw, hasNull := node.Attr("nullValue")
		if _, declared := e.byName[enumNullValueName]; !declared {
			var nullVal int64
			if hasNull {
				if prim == common.PrimitiveChar {
					if len(nullRaw) != 1 {
						return &ShapeMismatchError{Detail: fmt.Sprintf("enum %q nullValue %q is not a single character, required by char encoding", t.name, nullRaw)}
					}
					nullVal = int64(nullRaw[0])
				} else {
					v, perr := common.ParseInt64(nullRaw)
					if perr != nil {
						return perr
					}
					nullVal = v
				}
			} else {
				lim, ok := common.LookupIntegerLimits(prim)
				if !ok {
					return fmt.Errorf("no integer limits table entry for primitive %q", prim)
				}
				nullVal = lim.Null
			}
			if existing, dup := seenValues[nullVal]; dup {
				return &DuplicateNameError{Kind: "enum value", Value: fmt.Sprintf("synthesized %s collides with declared value %s", enumNullValueName, existing)}
			}
			e.byName[enumNullValueName] = len(e.values)
			e.values = append(e.values, EnumValue{Name: enumNullValueName, Value: nullVal, Description: "synthesized null representation"})
		}
	}

	e.validRanges = coalesceValueRanges(e.values)

	t.enum = e
	t.lowerExtraOpts()
	t.written = true
	return nil
}

// coalesceValueRanges sorts an enum's declared numeric values and merges
// adjacent runs into contiguous ranges (§8 testable property: "the enum's
// declared values form a coalesced list of valid ranges").
func coalesceValueRanges(values []EnumValue) []ValueRange {
	if len(values) == 0 {
		return nil
	}
	sorted := make([]int64, len(values))
	for i, v := range values {
		sorted[i] = v.Value
	}
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j-1] > sorted[j]; j-- {
			sorted[j-1], sorted[j] = sorted[j], sorted[j-1]
		}
	}
	var ranges []ValueRange
	cur := ValueRange{Low: sorted[0], High: sorted[0]}
	for _, v := range sorted[1:] {
		if v == cur.High {
			continue
		}
		if v == cur.High+1 {
			cur.High = v
			continue
		}
		ranges = append(ranges, cur)
		cur = ValueRange{Low: v, High: v}
	}
	ranges = append(ranges, cur)
	return ranges
}

// ValidRanges returns the enum's coalesced list of contiguous valid
// numeric ranges.
func (t *Type) ValidRanges() []ValueRange {
	if t.enum == nil {
		return nil
	}
	return t.enum.validRanges
}

// Values returns the enum's declared values in declaration order.
func (t *Type) Values() []EnumValue {
	if t.enum == nil {
		return nil
	}
	return t.enum.values
}

// ValueByName looks up a single declared enum value by name.
func (t *Type) ValueByName(name string) (EnumValue, bool) {
	if t.enum == nil {
		return EnumValue{}, false
	}
	idx, ok := t.enum.byName[name]
	if !ok {
		return EnumValue{}, false
	}
	return t.enum.values[idx], true
}

// MarkAsMsgIDEnum flags an enum as the synthesized MsgId enum and records
// its msgIdDispatch extra-option signature (§4.2 Composite Type,
// message-header shape).
func (t *Type) MarkAsMsgIDEnum() {
	if t.enum != nil {
		t.enum.isMsgIDEnum = true
		t.addExtraOpt("msgIdDispatch", "messageHeader")
	}
}

// IsMsgIDEnum reports whether this enum was synthesized by transmuting the
// message-header composite's templateId member.
func (t *Type) IsMsgIDEnum() bool {
	return t.enum != nil && t.enum.isMsgIDEnum
}
