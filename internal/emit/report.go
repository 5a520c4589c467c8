package emit

import "sbec/internal/schema"

// MessageSummary is the emission-facing projection of one resolved
// message: its numeric id, block length, and field/group/data counts,
// without exposing the Field tagged-variant internals.
type MessageSummary struct {
	Name        string `json:"name"`
	ID          uint32 `json:"id"`
	BlockLength int    `json:"blockLength"`
	FieldCount  int    `json:"fieldCount"`
	GroupCount  int    `json:"groupCount"`
	DataCount   int    `json:"dataCount"`
}

// Report is the complete, read-only view of a resolved schema that the
// CLI's compile subcommand prints (§6 Emission Interface); the validate
// subcommand prints only the diagnostics.
type Report struct {
	Namespace     string
	SchemaVersion uint64
	SchemaID      uint64
	Endian        string

	Entities []EntityMetadata
	Messages []MessageSummary

	TypeCount     int
	MessageCount  int
	PaddingUsed   bool
	GroupListUsed bool

	// OptionsTreeSize is the node count of the options tree built from
	// this report's entities (§1 "an options struct tree") — a downstream
	// emitter would walk the tree itself; the report only surfaces its
	// size as evidence it was built.
	OptionsTreeSize int

	Diagnostics []string
}

// BuildReport walks db and renders it into a Report (§6).
func BuildReport(db *schema.Database) *Report {
	views := Walk(db)
	entities := BuildMetadata(views)
	tree := BuildOptionsTree(views)

	r := &Report{
		Namespace:       db.Namespace,
		SchemaVersion:   db.SchemaVersion,
		SchemaID:        db.SchemaID,
		Endian:          db.Endian.String(),
		Entities:        entities,
		TypeCount:       len(db.Types()),
		MessageCount:    len(db.Messages()),
		PaddingUsed:     db.PaddingUsed,
		GroupListUsed:   db.GroupListUsed,
		OptionsTreeSize: tree.Count(),
	}

	for _, m := range db.Messages() {
		fieldCount, groupCount, dataCount := 0, 0, 0
		for _, f := range m.Fields() {
			switch f.Kind() {
			case schema.FieldBasic:
				fieldCount++
			case schema.FieldGroup:
				groupCount++
			case schema.FieldData:
				dataCount++
			}
		}
		r.Messages = append(r.Messages, MessageSummary{
			Name:        m.Name(),
			ID:          m.ID(),
			BlockLength: m.BlockLength(),
			FieldCount:  fieldCount,
			GroupCount:  groupCount,
			DataCount:   dataCount,
		})
	}

	for _, msg := range db.Diagnostics.Messages() {
		r.Diagnostics = append(r.Diagnostics, msg.String())
	}

	return r
}
