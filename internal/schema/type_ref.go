package schema

import (
	"sbec/internal/common"
	"sbec/internal/xmlschema"
)

// refType is the payload for KindRef: a named pointer to another declared
// type, used as a composite member that reuses an existing declaration
// under a local name (§4.2 Ref Type).
type refType struct {
	targetName string
	target     *Type
}

// parseRef parses a <ref name="..." type="..."/> element, resolving its
// target eagerly — a forward reference to a type declared later in the
// document is resolved via the target's own EnsureParsed (§4.5).
func (t *Type) parseRef(node *xmlschema.Node) error {
	targetName, err := common.PropRequiredString(node, "type")
	if err != nil {
		return err
	}
	target, err := t.db.LookupType(targetName, false)
	if err != nil {
		return &UnknownTypeReferenceError{Name: targetName, On: "ref " + t.name}
	}
	if err := target.EnsureParsed(); err != nil {
		return err
	}
	t.ref = &refType{targetName: targetName, target: target}
	t.lowerExtraOpts()
	t.written = true
	return nil
}

// Target returns the type a ref points to.
func (t *Type) Target() *Type {
	if t.ref == nil {
		return nil
	}
	return t.ref.target
}
