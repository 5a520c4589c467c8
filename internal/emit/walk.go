package emit

import "sbec/internal/schema"

// ExtraOptInfo is emit's flattened projection of one schema.ExtraOpt,
// kept as its own type so package emit never has to hand a schema.ExtraOpt
// value across the Emission Interface boundary (§4.6).
type ExtraOptInfo struct {
	Name string
	From string
}

// EntityView is the narrow, read-only surface every walkable schema
// entity (a type, a field, or a message) presents to the reporting layer,
// keeping package emit decoupled from the Type/Field tagged-variant
// internals it has no business reaching into (§4.6 Emission Interface:
// "a flat, read-only report of what the compiler would hand to a back-end
// text emitter").
type EntityView interface {
	EntityKind() string
	EntityName() string
	EntitySinceVersion() uint64
	ReferenceName() string
	ExtraOptInfos() []ExtraOptInfo
	ExtraIncludes() []string
	IsCommsOptionalWrapped() bool
	DefaultOptMode() string
	SerializationLength() int
	Children() []EntityView
}

func extraOptInfos(opts []schema.ExtraOpt) []ExtraOptInfo {
	out := make([]ExtraOptInfo, 0, len(opts))
	for _, o := range opts {
		out = append(out, ExtraOptInfo{Name: o.Name, From: o.From})
	}
	return out
}

type typeView struct{ t *schema.Type }

func (v typeView) EntityKind() string            { return "type:" + v.t.Kind().String() }
func (v typeView) EntityName() string            { return v.t.Name() }
func (v typeView) EntitySinceVersion() uint64    { return v.t.SinceVersion() }
func (v typeView) ReferenceName() string         { return v.t.ReferenceName() }
func (v typeView) ExtraOptInfos() []ExtraOptInfo { return extraOptInfos(v.t.ExtraOpts()) }
func (v typeView) ExtraIncludes() []string       { return v.t.ExtraIncludes() }
func (v typeView) IsCommsOptionalWrapped() bool  { return v.t.IsCommsOptionalWrapped() }
func (v typeView) DefaultOptMode() string        { return v.t.DefaultOptMode() }
func (v typeView) SerializationLength() int      { return v.t.SerializationLength() }

// Children returns a composite's nested member types, wrapped as views; a
// basic/enum/set/ref type has no children.
func (v typeView) Children() []EntityView {
	if v.t.Kind() != schema.KindComposite {
		return nil
	}
	members := v.t.Members()
	out := make([]EntityView, 0, len(members))
	for _, m := range members {
		out = append(out, typeView{m})
	}
	return out
}

type messageView struct{ m *schema.Message }

func (v messageView) EntityKind() string            { return "message" }
func (v messageView) EntityName() string            { return v.m.Name() }
func (v messageView) EntitySinceVersion() uint64    { return v.m.SinceVersion() }
func (v messageView) ReferenceName() string         { return v.m.ReferenceName() }
func (v messageView) ExtraOptInfos() []ExtraOptInfo { return nil }
func (v messageView) ExtraIncludes() []string       { return nil }
func (v messageView) IsCommsOptionalWrapped() bool  { return false }
func (v messageView) DefaultOptMode() string        { return "required" }
func (v messageView) SerializationLength() int      { return v.m.BlockLength() }

func (v messageView) Children() []EntityView {
	fields := v.m.Fields()
	out := make([]EntityView, 0, len(fields))
	for _, f := range fields {
		out = append(out, fieldView{f})
	}
	return out
}

type fieldView struct{ f *schema.Field }

func (v fieldView) EntityKind() string            { return "field:" + v.f.Kind().String() }
func (v fieldView) EntityName() string            { return v.f.Name() }
func (v fieldView) EntitySinceVersion() uint64    { return v.f.SinceVersion() }
func (v fieldView) ReferenceName() string         { return v.f.ReferenceName() }
func (v fieldView) ExtraOptInfos() []ExtraOptInfo { return extraOptInfos(v.f.ExtraOpts()) }
func (v fieldView) ExtraIncludes() []string       { return v.f.ExtraIncludes() }
func (v fieldView) IsCommsOptionalWrapped() bool  { return v.f.IsCommsOptionalWrapped() }
func (v fieldView) DefaultOptMode() string        { return v.f.DefaultOptMode() }
func (v fieldView) SerializationLength() int      { return v.f.SerializationLength() }

// Children returns a group field's nested member fields; a basic or data
// field has no children.
func (v fieldView) Children() []EntityView {
	if v.f.Kind() != schema.FieldGroup {
		return nil
	}
	nested := v.f.Fields()
	out := make([]EntityView, 0, len(nested))
	for _, nf := range nested {
		out = append(out, fieldView{nf})
	}
	return out
}

// Walk returns every declared type followed by every declared message, in
// declaration order, as a uniform slice of EntityView (§5 ordering
// guarantee).
func Walk(db *schema.Database) []EntityView {
	views := make([]EntityView, 0, len(db.Types())+len(db.Messages()))
	for _, t := range db.Types() {
		views = append(views, typeView{t})
	}
	for _, m := range db.Messages() {
		views = append(views, messageView{m})
	}
	return views
}

// EntityMetadata is the flattened, formatter-facing projection of one
// EntityView, built by BuildMetadata.
type EntityMetadata struct {
	Kind         string `json:"kind"`
	Name         string `json:"name"`
	SinceVersion uint64 `json:"sinceVersion"`
}

// BuildMetadata flattens a walked entity list into the plain structs the
// human/json/summary formatters consume.
func BuildMetadata(views []EntityView) []EntityMetadata {
	out := make([]EntityMetadata, 0, len(views))
	for _, v := range views {
		out = append(out, EntityMetadata{
			Kind:         v.EntityKind(),
			Name:         v.EntityName(),
			SinceVersion: v.EntitySinceVersion(),
		})
	}
	return out
}
