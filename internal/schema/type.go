package schema

import (
	"fmt"

	"sbec/internal/common"
	"sbec/internal/xmlschema"
)

// ExtraOpt records one extra-option signature contributed by lowering a
// type (§4.2/§9 "extra-option signatures"): a named capability an emitter
// would need to surface (e.g. a bounds check, a null-value accessor), each
// tied back to the sub-element that required it.
type ExtraOpt struct {
	Name string
	From string
}

// Type is the single tagged-variant representation of every declared,
// builtin, or synthesized schema type (§3 Type hierarchy): Kind selects
// which of the five payload pointers is populated, mirroring the
// capability-set/tagged-variant pattern used in place of a class
// hierarchy (§9 design note).
type Type struct {
	db *Database

	srcNode *xmlschema.Node

	kind        TypeKind
	name        string
	description string
	presence    Presence

	primitiveType    common.Primitive
	hasPrimitiveType bool
	length           int
	offset           int
	hasOffset        bool

	minValue   *int64
	maxValue   *int64
	minValueU  *uint64
	maxValueU  *uint64
	nullValue  *int64
	nullValueU *uint64
	nullValueF *float64

	characterEncoding string
	semanticType      string

	sinceVersion  uint64
	deprecated    uint64
	hasDeprecated bool

	constantText    string
	hasConstantText bool

	// defaultNumValue and failOnInvalid apply to the message-header
	// composite's schemaId/version members: the numeric value to assume
	// when a reader can't validate the on-wire value, and whether an
	// unrecognized value should instead abort decoding (§4.2 Composite
	// Type, message-header shape).
	defaultNumValue *int64
	failOnInvalid   bool

	usedNormal    bool
	usedGroupSize bool
	usedData      bool

	written           bool
	writingInProgress bool

	containingCompositeVersion uint64

	// commsOptionalWrapped is true when this type's sinceVersion puts it
	// strictly after both the containing composite's version and the
	// minimum remote version the compiler was asked to support, enabling
	// optional-mode wrapping at lowering time (§4.2 common prologue, §9
	// "optional-mode wrapping").
	commsOptionalWrapped bool

	extraOpts []ExtraOpt

	composite *compositeType
	enum      *enumType
	set       *setType
	ref       *refType
}

func newType(kind TypeKind, name string, db *Database) *Type {
	return &Type{kind: kind, name: name, db: db, presence: PresenceRequired}
}

// newDeclaredType creates a top-level type node during the record phase,
// retaining its source element so the parse phase (or an earlier forward
// reference) can resolve it on demand (§4.5 record phase).
func newDeclaredType(kind TypeKind, name string, node *xmlschema.Node, db *Database) *Type {
	t := newType(kind, name, db)
	t.srcNode = node
	return t
}

// EnsureParsed resolves this type if it has not already been parsed,
// supporting forward references declared later in the same schema
// document (§4.5: types may reference types declared after them).
func (t *Type) EnsureParsed() error {
	if t.written || t.srcNode == nil {
		return nil
	}
	return t.parseFrom(t.srcNode)
}

// Kind reports which payload variant this type carries.
func (t *Type) Kind() TypeKind { return t.kind }

// Name is the type's declared name.
func (t *Type) Name() string { return t.name }

// ReferenceName is the name to use when another element references this
// type, with Go-reserved-word renaming applied at the boundary (§9 design
// note "Keyword renaming").
func (t *Type) ReferenceName() string { return common.RenameIfReserved(t.name) }

// Presence is the type's required/optional/constant presence.
func (t *Type) Presence() Presence { return t.presence }

// SinceVersion is the version this type was introduced at.
func (t *Type) SinceVersion() uint64 { return t.sinceVersion }

// IsCommsOptionalWrapped reports whether lowering decided this type needs
// optional-mode wrapping for wire compatibility with older readers (§9).
func (t *Type) IsCommsOptionalWrapped() bool { return t.commsOptionalWrapped }

// ExtraOpts returns the extra-option signatures accumulated while lowering
// this type, in the order they were discovered.
func (t *Type) ExtraOpts() []ExtraOpt { return t.extraOpts }

func (t *Type) addExtraOpt(name, from string) {
	for _, o := range t.extraOpts {
		if o.Name == name && o.From == from {
			return
		}
	}
	t.extraOpts = append(t.extraOpts, ExtraOpt{Name: name, From: from})
}

// lowerExtraOpts inspects a type's now-fully-parsed state and records the
// extra-option signatures an emitter would need to surface for it (§9
// Lowering: "compute extra-option signatures ... for emission"). Called
// once per kind's parse function, just before it marks itself written.
func (t *Type) lowerExtraOpts() {
	if t.presence == PresenceOptional {
		t.addExtraOpt("nullAccessor", "presence")
	}
	if t.commsOptionalWrapped {
		t.addExtraOpt("optionalWrapper", "sinceVersion")
	}
	if t.kind == KindBasic && t.IsVariableLength() {
		t.addExtraOpt("boundsCheck", "length")
	}
}

// extraOptInclude maps one extra-option signature to the single header an
// emitter relying on it would need to bring in. Shared between Type and
// Field so both ExtraIncludes implementations agree on the mapping.
func extraOptInclude(name string) string {
	switch name {
	case "nullAccessor":
		return "<optional>"
	case "optionalWrapper":
		return "<variant>"
	case "boundsCheck":
		return "<stdexcept>"
	case "msgIdDispatch":
		return "<unordered_map>"
	default:
		return ""
	}
}

// ExtraIncludes is the deduplicated list of headers implied by this type's
// extra-option signatures (§4.6 Emission Interface: surfaced to a
// downstream emitter alongside ExtraOpts, without producing any text).
func (t *Type) ExtraIncludes() []string {
	seen := map[string]bool{}
	var out []string
	for _, o := range t.extraOpts {
		inc := extraOptInclude(o.Name)
		if inc == "" || seen[inc] {
			continue
		}
		seen[inc] = true
		out = append(out, inc)
	}
	return out
}

// DefaultOptMode reports the optional-mode representation lowering chose
// for this type (§9 "optional-mode wrapping"): constant/required/optional
// presence, with a required or optional type overridden by
// wrapped-optional when commsOptionalWrapped applies; a constant type
// always reports constant.
func (t *Type) DefaultOptMode() string {
	switch {
	case t.presence == PresenceConstant:
		return "constant"
	case t.commsOptionalWrapped:
		return "wrapped-optional"
	case t.presence == PresenceOptional:
		return "optional"
	default:
		return "required"
	}
}

// DefaultNumValue returns the numeric value to assume for this member when
// a reader can't validate it against the schema (message-header shape's
// schemaId/version members).
func (t *Type) DefaultNumValue() (int64, bool) {
	if t.defaultNumValue == nil {
		return 0, false
	}
	return *t.defaultNumValue, true
}

// FailOnInvalid reports whether decoding should abort on an unrecognized
// value for this member, rather than falling back to DefaultNumValue.
func (t *Type) FailOnInvalid() bool { return t.failOnInvalid }

// MarkUsage records which field-kind contexts reference this type, which
// composite/data-shape validation and extra-option synthesis both consult
// (§4.2 Composite Type "Data shape").
func (t *Type) MarkUsage(normal, groupSize, data bool) {
	t.usedNormal = t.usedNormal || normal
	t.usedGroupSize = t.usedGroupSize || groupSize
	t.usedData = t.usedData || data
}

// parseFrom runs the common prologue shared by every type kind (§4.2:
// "parse() common prologue") and then dispatches to the per-kind parse
// logic. It is idempotent and cycle-safe: a type currently being parsed
// that is re-entered raises RecursiveDependencyError, and a type already
// fully parsed returns immediately.
func (t *Type) parseFrom(node *xmlschema.Node) error {
	if t.written {
		return nil
	}
	if t.writingInProgress {
		return &RecursiveDependencyError{Name: t.name}
	}
	t.writingInProgress = true
	defer func() { t.writingInProgress = false }()

	if t.name == "" {
		name, err := common.PropRequiredString(node, "name")
		if err != nil {
			return err
		}
		t.name = name
	}
	t.description = common.PropString(node, "description", "")

	presenceStr := common.PropString(node, "presence", "")
	presence, err := ParsePresence(presenceStr)
	if err != nil {
		return err
	}
	t.presence = presence

	if off, ok := node.Attr("offset"); ok {
		v, perr := common.ParseInt64(off)
		if perr != nil {
			return perr
		}
		t.offset = int(v)
		t.hasOffset = true
	}

	t.sinceVersion = common.PropUint64(node, "sinceVersion", 0, t.db.Diagnostics)
	if dep, ok := node.Attr("deprecated"); ok {
		d, derr := common.ParseUint64(dep)
		if derr != nil {
			return &VersioningError{Detail: derr.Error()}
		}
		t.deprecated = d
		t.hasDeprecated = true
		if t.deprecated <= t.sinceVersion {
			t.db.Diagnostics.Warning("type %q is deprecated at version %d, at or before its own sinceVersion %d", t.name, t.deprecated, t.sinceVersion)
		}
	}

	if v, ok := node.Attr("defaultNumValue"); ok {
		p, perr := common.ParseInt64(v)
		if perr != nil {
			return perr
		}
		t.defaultNumValue = &p
	}
	t.failOnInvalid = common.PropBool(node, "failOnInvalid", false, t.db.Diagnostics)

	if t.sinceVersion < t.containingCompositeVersion {
		return &VersioningError{Detail: fmt.Sprintf("type %q declares sinceVersion %d earlier than its containing composite's version %d", t.name, t.sinceVersion, t.containingCompositeVersion)}
	}
	t.commsOptionalWrapped = t.sinceVersion > t.containingCompositeVersion && t.sinceVersion > t.db.MinRemoteVersion

	switch t.kind {
	case KindBasic:
		return t.parseBasic(node)
	case KindComposite:
		return t.parseComposite(node)
	case KindEnum:
		return t.parseEnum(node)
	case KindSet:
		return t.parseSet(node)
	case KindRef:
		return t.parseRef(node)
	default:
		return fmt.Errorf("unhandled type kind %v", t.kind)
	}
}
