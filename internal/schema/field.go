package schema

import (
	"fmt"

	"sbec/internal/common"
	"sbec/internal/xmlschema"
)

// Field is the single tagged-variant representation of a message member:
// a scalar/array field, a repeating group, or a variable-length data
// block (§3 Field hierarchy). Kind selects which payload is populated,
// mirroring Type's tagged-variant shape.
type Field struct {
	db *Database

	kind    FieldKind
	name    string
	message string

	description   string
	sinceVersion  uint64
	deprecated    uint64
	hasDeprecated bool

	generatedPadding bool

	// commsOptionalWrapped mirrors Type.commsOptionalWrapped: a field
	// declared after its containing message's base version (and after
	// the minimum remote version) is wrapped for optional-mode wire
	// compatibility at lowering time (§9 "optional-mode wrapping").
	commsOptionalWrapped bool

	extraOpts []ExtraOpt

	basic *basicField
	group *groupField
	data  *dataField
}

func newField(kind FieldKind, name, message string, db *Database) *Field {
	return &Field{kind: kind, name: name, message: message, db: db}
}

// Kind reports which payload variant this field carries.
func (f *Field) Kind() FieldKind { return f.kind }

// Name is the field's declared name.
func (f *Field) Name() string { return f.name }

// ReferenceName applies Go-reserved-word renaming at the emission
// boundary, matching Type.ReferenceName (§9 design note).
func (f *Field) ReferenceName() string { return common.RenameIfReserved(f.name) }

// SinceVersion is the version this field was introduced at.
func (f *Field) SinceVersion() uint64 { return f.sinceVersion }

// IsCommsOptionalWrapped reports whether lowering decided this field needs
// optional-mode wrapping (§9).
func (f *Field) IsCommsOptionalWrapped() bool { return f.commsOptionalWrapped }

// IsGeneratedPadding reports whether this field is a synthesized gap
// filler rather than a declared member (§4.4/§8 boundary scenario 1).
func (f *Field) IsGeneratedPadding() bool { return f.generatedPadding }

// ExtraOpts returns the extra-option signatures accumulated while lowering
// this field, mirroring Type.ExtraOpts (§9 "extra-option signatures").
func (f *Field) ExtraOpts() []ExtraOpt { return f.extraOpts }

func (f *Field) addExtraOpt(name, from string) {
	for _, o := range f.extraOpts {
		if o.Name == name && o.From == from {
			return
		}
	}
	f.extraOpts = append(f.extraOpts, ExtraOpt{Name: name, From: from})
}

// lowerExtraOpts is Field's counterpart to Type.lowerExtraOpts, run once a
// field's kind-specific payload is fully populated.
func (f *Field) lowerExtraOpts() {
	if f.commsOptionalWrapped {
		f.addExtraOpt("optionalWrapper", "sinceVersion")
	}
	switch f.kind {
	case FieldBasic:
		if f.basic.presence == PresenceOptional {
			f.addExtraOpt("nullAccessor", "presence")
		}
	case FieldData:
		f.addExtraOpt("boundsCheck", "data")
	}
}

// ExtraIncludes is Field's counterpart to Type.ExtraIncludes, using the
// same signature-to-header mapping.
func (f *Field) ExtraIncludes() []string {
	seen := map[string]bool{}
	var out []string
	for _, o := range f.extraOpts {
		inc := extraOptInclude(o.Name)
		if inc == "" || seen[inc] {
			continue
		}
		seen[inc] = true
		out = append(out, inc)
	}
	return out
}

// DefaultOptMode is Field's counterpart to Type.DefaultOptMode: a group or
// data block is always required, a basic field defers to its effective
// presence, overridden by wrapped-optional when commsOptionalWrapped
// applies.
func (f *Field) DefaultOptMode() string {
	if f.commsOptionalWrapped {
		return "wrapped-optional"
	}
	if f.kind == FieldBasic {
		switch f.basic.presence {
		case PresenceConstant:
			return "constant"
		case PresenceOptional:
			return "optional"
		}
	}
	return "required"
}

// parseCommon runs the shared prologue every field kind goes through
// before dispatching to its kind-specific parse (§4.3: "parse() common
// prologue for fields").
func (f *Field) parseCommon(node *xmlschema.Node, baseVersion uint64) error {
	f.description = common.PropString(node, "description", "")
	f.sinceVersion = common.PropUint64(node, "sinceVersion", 0, f.db.Diagnostics)
	if dep, ok := node.Attr("deprecated"); ok {
		d, err := common.ParseUint64(dep)
		if err != nil {
			return &VersioningError{Detail: err.Error()}
		}
		f.deprecated = d
		f.hasDeprecated = true
		if f.deprecated <= f.sinceVersion {
			return &VersioningError{Detail: fmt.Sprintf("field %q of message %q is deprecated at version %d, at or before its own sinceVersion %d", f.name, f.message, f.deprecated, f.sinceVersion)}
		}
	}
	if f.sinceVersion < baseVersion {
		return &VersioningError{Detail: fmt.Sprintf("field %q declares sinceVersion %d earlier than its message's base version %d", f.name, f.sinceVersion, baseVersion)}
	}
	f.commsOptionalWrapped = f.sinceVersion > baseVersion && f.sinceVersion > f.db.MinRemoteVersion
	return nil
}

// parseFieldChildren parses the ordered <field>/<group>/<data> children of
// a <message> or <group> element, rejecting a field name reused within the
// same container (§7 DuplicateName). A child whose sinceVersion exceeds
// the database's effective version is silently discarded rather than
// parsed (§3 invariant 6, §4.5 step (c), §8 boundary scenario 6).
func parseFieldChildren(node *xmlschema.Node, message string, baseVersion uint64, db *Database) ([]*Field, error) {
	seen := map[string]bool{}
	var out []*Field
	for _, child := range node.Children("field", "group", "data") {
		sinceVersion := common.PropUint64(child, "sinceVersion", 0, db.Diagnostics)
		if !db.IsActive(sinceVersion) {
			continue
		}
		var f *Field
		var err error
		switch child.Tag() {
		case "field":
			f, err = parseBasicField(child, message, baseVersion, db)
		case "group":
			f, err = parseGroupField(child, message, baseVersion, db)
		case "data":
			f, err = parseDataField(child, message, baseVersion, db)
		}
		if err != nil {
			return nil, err
		}
		if seen[f.name] {
			return nil, &DuplicateNameError{Kind: "name", Value: f.name}
		}
		seen[f.name] = true
		out = append(out, f)
	}
	return out, nil
}

// newPaddingField synthesizes a generated field wrapping an implicitly
// inserted padding type, used when the running block offset falls short
// of a member's declared offset (§4.4 layout computation, §8 boundary
// scenario 1).
func newPaddingField(padType *Type, db *Database) *Field {
	f := newField(FieldBasic, padType.name, "", db)
	f.generatedPadding = true
	f.basic = &basicField{refType: padType, presence: PresenceRequired}
	f.addExtraOpt("paddingSkip", "layout")
	return f
}
