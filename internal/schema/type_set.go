package schema

import (
	"fmt"

	"sbec/internal/common"
	"sbec/internal/xmlschema"
)

// SetChoice is one declared choice (bit) of a <set> (§4.2 Set Type).
type SetChoice struct {
	Name        string
	BitIndex    uint
	Description string
}

// setType is the payload for KindSet: a fixed-width bitset whose declared
// choices name individual bit positions.
type setType struct {
	encodingPrimitive common.Primitive
	choices           []SetChoice
	byBit             map[uint]string
	reservedMask      uint64
	sequentialPrefix  bool
}

// parseSet parses a <set> element and its choice children, rejecting a
// bit index declared twice (§7 DuplicateBitIndex), a bit index beyond the
// encoding primitive's width, and any presence other than Required (§4.2
// Set Type: "Must be Required"). It also derives the reserved-bits mask
// (the complement of the declared-bit mask within the encoding's full
// width, §8 testable property "reserved-bits mask plus declared bits
// equals the full width mask") and whether the declared bit indices form
// a contiguous run starting at 0.
func (t *Type) parseSet(node *xmlschema.Node) error {
	if t.presence != PresenceRequired {
		return &PresenceViolationError{Detail: fmt.Sprintf("set %q must be Required", t.name)}
	}

	encName := common.PropString(node, "encodingType", string(common.PrimitiveUint8))
	if !common.ValidPrimitive(encName) {
		return &UnknownTypeReferenceError{Name: encName, On: "set " + t.name + " encodingType"}
	}
	prim := common.Primitive(encName)
	if common.IsFloatingPoint(prim) {
		return &ShapeMismatchError{Detail: fmt.Sprintf("set %q cannot be encoded by floating-point primitive %q", t.name, prim)}
	}
	maxBits := uint(common.PrimitiveSize(prim) * 8)

	s := &setType{encodingPrimitive: prim, byBit: map[uint]string{}}
	var declaredMask uint64
	for _, c := range node.Children("choice") {
		name, err := common.PropRequiredString(c, "name")
		if err != nil {
			return err
		}
		raw := c.Text()
		idx64, err := common.ParseInt64(raw)
		if err != nil {
			return err
		}
		if idx64 < 0 || uint(idx64) >= maxBits {
			return &PresenceViolationError{Detail: fmt.Sprintf("set %q choice %q bit index %d out of range for %s", t.name, name, idx64, prim)}
		}
		idx := uint(idx64)
		if existing, dup := s.byBit[idx]; dup {
			return &DuplicateNameError{Kind: "bit index", Value: fmt.Sprintf("%s and %s share bit %d", existing, name, idx)}
		}
		s.byBit[idx] = name
		s.choices = append(s.choices, SetChoice{Name: name, BitIndex: idx, Description: common.PropString(c, "description", "")})
		declaredMask |= 1 << idx
	}

	var fullMask uint64
	if maxBits >= 64 {
		fullMask = ^uint64(0)
	} else {
		fullMask = (uint64(1) << maxBits) - 1
	}
	s.reservedMask = fullMask &^ declaredMask

	s.sequentialPrefix = true
	for i := uint(0); i < uint(len(s.choices)); i++ {
		if _, ok := s.byBit[i]; !ok {
			s.sequentialPrefix = false
			break
		}
	}

	t.set = s
	t.lowerExtraOpts()
	t.written = true
	return nil
}

// Choices returns the set's declared choices in declaration order.
func (t *Type) Choices() []SetChoice {
	if t.set == nil {
		return nil
	}
	return t.set.choices
}

// ReservedBitsMask is the set's encoding-width mask with every declared
// choice bit cleared: reservedMask | declaredMask always equals the full
// width mask.
func (t *Type) ReservedBitsMask() uint64 {
	if t.set == nil {
		return 0
	}
	return t.set.reservedMask
}

// IsSequentialPrefix reports whether the set's declared bit indices form a
// contiguous run starting at 0.
func (t *Type) IsSequentialPrefix() bool {
	if t.set == nil {
		return false
	}
	return t.set.sequentialPrefix
}
