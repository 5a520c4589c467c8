package schema

import (
	"fmt"
	"io"

	"sbec/internal/common"
	"sbec/internal/config"
	"sbec/internal/xmlschema"
)

// ParseSchema runs the full record -> parse -> (msgId synthesis) pipeline
// over a schema document (§2 Pipeline, §4.5 Schema Database assembly): it
// parses the XML, records every top-level type declaration, resolves and
// validates each one (computing layout and synthesizing padding along the
// way), parses every message, and finally transmutes the message-header
// composite's templateId member into the MsgId enum.
func ParseSchema(r io.Reader, opts config.Options) (*Database, error) {
	doc, err := xmlschema.Parse(r)
	if err != nil {
		return nil, err
	}
	root, err := doc.Root()
	if err != nil {
		return nil, err
	}

	db := NewDatabase()
	if err := recordMeta(root, opts, db); err != nil {
		return nil, err
	}
	for _, child := range root.Children() {
		if tag := child.Tag(); tag != "types" && tag != "message" {
			db.Diagnostics.Warning("unrecognized top-level element <%s> ignored", tag)
		}
	}

	if err := recordDeclaredTypes(root, db); err != nil {
		return nil, err
	}
	for _, name := range append([]string(nil), db.typeOrder...) {
		if err := db.types[name].EnsureParsed(); err != nil {
			return nil, fmt.Errorf("resolving type %q: %w", name, err)
		}
	}

	for _, mn := range root.Children("message") {
		sinceVersion := common.PropUint64(mn, "sinceVersion", 0, db.Diagnostics)
		if !db.IsActive(sinceVersion) {
			continue
		}
		m, err := ParseMessage(mn, db)
		if err != nil {
			return nil, fmt.Errorf("parsing message: %w", err)
		}
		if err := db.RecordMessage(m); err != nil {
			return nil, err
		}
	}

	if err := synthesizeMsgIDEnum(db); err != nil {
		return nil, fmt.Errorf("synthesizing MsgId enum: %w", err)
	}

	return db, nil
}

// recordDeclaredTypes walks every <types> section's children (a schema
// may declare more than one, per the original's convention of splitting
// common types across included fragments) and records each as an
// explicitly declared type, deferring its parse (§4.5 record phase, §3
// Lifecycle). A declaration whose sinceVersion exceeds the database's
// effective version is silently discarded rather than recorded (§3
// invariant 6, §4.5 step (c), §8 boundary scenario 6).
func recordDeclaredTypes(root *xmlschema.Node, db *Database) error {
	for _, typesSection := range root.Children("types") {
		for _, decl := range typesSection.Children(compositeChildTags...) {
			kind, ok := childKind(decl.Tag())
			if !ok || kind == KindRef {
				continue
			}
			sinceVersion := common.PropUint64(decl, "sinceVersion", 0, db.Diagnostics)
			if !db.IsActive(sinceVersion) {
				continue
			}
			name, err := common.PropRequiredString(decl, "name")
			if err != nil {
				return err
			}
			t := newDeclaredType(kind, name, decl, db)
			if err := db.RecordType(t); err != nil {
				return err
			}
		}
	}
	return nil
}
