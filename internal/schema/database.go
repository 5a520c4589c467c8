// Package schema is the Schema Database, Type Model, Field Model and
// Message Model of the SBE schema compiler (§3-§4.5 of the specification):
// it turns a parsed XML tree into a fully resolved, validated, laid-out,
// and lowered in-memory model of the wire protocol the schema describes.
package schema

import (
	"fmt"
	"sort"

	"sbec/internal/common"
	"sbec/internal/diag"
	"sbec/internal/xmlschema"
)

// Endian is the schema's declared byte order.
type Endian int

const (
	EndianLittle Endian = iota
	EndianBig
)

func (e Endian) String() string {
	if e == EndianBig {
		return "bigEndian"
	}
	return "littleEndian"
}

// Database is the central, single owner of every parsed schema entity:
// declared types, declared messages, lazily-instantiated builtins and
// padding types, the synthesized MsgId enum, and the global settings
// collected from schema metadata and program options (§3 Schema Database).
type Database struct {
	// Global settings.
	RootDir               string
	Namespace             string
	Endian                Endian
	SchemaVersion         uint64
	SchemaID              uint64
	MessageHeaderTypeName string
	MinRemoteVersion      uint64
	CCTag                 string
	OpenFramingHeaderName string
	GroupListUsed         bool
	PaddingUsed           bool

	// EffectiveVersion is min(SchemaVersion, forced version option or +inf).
	EffectiveVersion uint64

	types        map[string]*Type
	typeOrder    []string
	messages     map[string]*Message
	messageOrder []string
	messagesByID map[uint32]*Message

	builtins       map[string]*Type
	paddings       map[string]*Type
	paddingCounter int

	msgIDEnum *Type

	Diagnostics *diag.Sink
}

// NewDatabase returns an empty Database ready for the parse_schema phases.
func NewDatabase() *Database {
	return &Database{
		types:        map[string]*Type{},
		messages:     map[string]*Message{},
		messagesByID: map[uint32]*Message{},
		builtins:     map[string]*Type{},
		paddings:     map[string]*Type{},
		Diagnostics:  diag.NewSink(),
	}
}

// IsActive reports whether an element with the given sinceVersion is
// active under the database's effective schema version (§3 invariant 6,
// glossary "Active").
func (db *Database) IsActive(sinceVersion uint64) bool {
	return sinceVersion <= db.EffectiveVersion
}

// RecordType stores an explicitly declared, active type. It fails on a
// duplicate name (§3 invariant 1 / §7 DuplicateName).
func (db *Database) RecordType(t *Type) error {
	if _, exists := db.types[t.name]; exists {
		return &DuplicateNameError{Kind: "name", Value: t.name}
	}
	db.types[t.name] = t
	db.typeOrder = append(db.typeOrder, t.name)
	return nil
}

// RecordMessage stores an explicitly declared, active message, enforcing
// unique numeric IDs (§3 invariant 9 / §7 DuplicateMessageId).
func (db *Database) RecordMessage(m *Message) error {
	if _, exists := db.messages[m.name]; exists {
		return &DuplicateNameError{Kind: "name", Value: m.name}
	}
	if _, exists := db.messagesByID[m.id]; exists {
		return &DuplicateNameError{Kind: "message id", Value: fmt.Sprintf("%d", m.id)}
	}
	db.messages[m.name] = m
	db.messageOrder = append(db.messageOrder, m.name)
	db.messagesByID[m.id] = m
	return nil
}

// LookupType resolves a declared type, a padding type, or a builtin by
// name, in that order, auto-instantiating a builtin on first reference
// (§3 Lifecycle: "Builtins ... are created on first reference and parsed
// immediately"). It never resolves padding types unless allowPadding is
// set, since padding names are only reachable from synthesized field
// references.
func (db *Database) LookupType(name string, allowPadding bool) (*Type, error) {
	if t, ok := db.types[name]; ok {
		return t, nil
	}
	if allowPadding {
		if t, ok := db.paddings[name]; ok {
			return t, nil
		}
	}
	if common.ValidPrimitive(name) {
		return db.builtin(common.Primitive(name))
	}
	return nil, &UnknownTypeReferenceError{Name: name, On: "type"}
}

// builtin returns the lazily-instantiated Type for a primitive, parsing it
// exactly once on first demand (§3 Schema Database: builtins).
func (db *Database) builtin(p common.Primitive) (*Type, error) {
	if t, ok := db.builtins[string(p)]; ok {
		return t, nil
	}
	node := xmlschema.SynthesizeBuiltin(string(p))
	t := newType(KindBasic, string(p), db)
	if err := t.parseFrom(node); err != nil {
		return nil, fmt.Errorf("instantiating builtin %q: %w", p, err)
	}
	db.builtins[string(p)] = t
	return t, nil
}

// PaddingType returns a padding type of the given gap width in bytes,
// synthesizing and parsing it on first use (§3 Schema Database: paddings,
// §8 boundary scenario 1).
func (db *Database) PaddingType(gapBytes int) (*Type, error) {
	key := fmt.Sprintf("pad%d_", gapBytes)
	if t, ok := db.paddings[key]; ok {
		return t, nil
	}
	idx := db.paddingCounter
	db.paddingCounter++
	node := xmlschema.SynthesizePadding(idx, gapBytes)
	name, _ := node.Attr("name")
	t := newType(KindBasic, name, db)
	if err := t.parseFrom(node); err != nil {
		return nil, fmt.Errorf("instantiating padding of %d bytes: %w", gapBytes, err)
	}
	db.paddings[key] = t
	db.PaddingUsed = true
	return t, nil
}

// Type looks up a previously declared (non-builtin, non-padding) type by
// name, returning nil when absent. It is a read-only, emitter-facing
// accessor (supplemented from the original's get.cpp style getters).
func (db *Database) Type(name string) *Type {
	return db.types[name]
}

// Types returns every declared type in declaration order (§5 ordering).
func (db *Database) Types() []*Type {
	out := make([]*Type, 0, len(db.typeOrder))
	for _, n := range db.typeOrder {
		out = append(out, db.types[n])
	}
	return out
}

// Message looks up a previously declared message by name.
func (db *Database) Message(name string) *Message {
	return db.messages[name]
}

// MessageByID looks up a previously declared message by its numeric ID.
func (db *Database) MessageByID(id uint32) *Message {
	return db.messagesByID[id]
}

// Messages returns every declared message in declaration order.
func (db *Database) Messages() []*Message {
	out := make([]*Message, 0, len(db.messageOrder))
	for _, n := range db.messageOrder {
		out = append(out, db.messages[n])
	}
	return out
}

// MessagesByID returns every declared message in ascending numeric ID
// order (§5 ordering: "ascending numeric order for message-by-id
// storage").
func (db *Database) MessagesByID() []*Message {
	ids := make([]uint32, 0, len(db.messagesByID))
	for id := range db.messagesByID {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]*Message, 0, len(ids))
	for _, id := range ids {
		out = append(out, db.messagesByID[id])
	}
	return out
}

// MsgIDEnum returns the synthesized MsgId enum, or nil if the
// message-header composite has not been validated yet (§3 Lifecycle).
func (db *Database) MsgIDEnum() *Type {
	return db.msgIDEnum
}
