package schema

import (
	"fmt"

	"sbec/internal/common"
	"sbec/internal/xmlschema"
)

// Message is a single declared <message> element: a numbered, versioned
// envelope of fields, repeating groups, and trailing variable-length data
// (§3 Message, §4.3).
type Message struct {
	db *Database

	name        string
	id          uint32
	description string

	sinceVersion  uint64
	deprecated    uint64
	hasDeprecated bool

	blockLength int
	fields      []*Field
}

// Name is the message's declared name.
func (m *Message) Name() string { return m.name }

// ReferenceName applies Go-reserved-word renaming at the emission
// boundary, matching Type.ReferenceName and Field.ReferenceName.
func (m *Message) ReferenceName() string { return common.RenameIfReserved(m.name) }

// ID is the message's numeric identifier, as transmitted in the
// message-header's templateId field.
func (m *Message) ID() uint32 { return m.id }

// SinceVersion is the schema version the message was introduced at.
func (m *Message) SinceVersion() uint64 { return m.sinceVersion }

// BlockLength is the message's fixed root block size in bytes, covering
// every basic field up to (but not including) the first nested group or
// data field.
func (m *Message) BlockLength() int { return m.blockLength }

// Fields returns the message's top-level members in declaration order.
func (m *Message) Fields() []*Field { return m.fields }

// ParseMessage parses a <message> element into a Message, computing its
// layout the same way parseGroupField does for a nested group (§4.4 layout
// computation, §4.3 Message).
func ParseMessage(node *xmlschema.Node, db *Database) (*Message, error) {
	name, err := common.PropRequiredString(node, "name")
	if err != nil {
		return nil, err
	}
	idStr, err := common.PropRequiredString(node, "id")
	if err != nil {
		return nil, err
	}
	id64, err := common.ParseInt64(idStr)
	if err != nil {
		return nil, err
	}
	if id64 < 0 {
		return nil, fmt.Errorf("numeric conversion: message %q id %d must not be negative", name, id64)
	}

	m := &Message{db: db, name: name, id: uint32(id64)}
	m.description = common.PropString(node, "description", "")
	m.sinceVersion = common.PropUint64(node, "sinceVersion", 0, db.Diagnostics)
	if dep, ok := node.Attr("deprecated"); ok {
		d, derr := common.ParseUint64(dep)
		if derr != nil {
			return nil, &VersioningError{Detail: derr.Error()}
		}
		m.deprecated = d
		m.hasDeprecated = true
		if m.deprecated <= m.sinceVersion {
			db.Diagnostics.Warning("message %q is deprecated at version %d, at or before its own sinceVersion %d", name, m.deprecated, m.sinceVersion)
		}
	}

	fields, err := parseFieldChildren(node, name, m.sinceVersion, db)
	if err != nil {
		return nil, err
	}

	laidOut, running, err := computeBlockLayout("message", name, fields, db)
	if err != nil {
		return nil, err
	}
	m.blockLength, err = resolveBlockLength(name, running, node)
	if err != nil {
		return nil, err
	}
	m.fields = laidOut
	return m, nil
}
