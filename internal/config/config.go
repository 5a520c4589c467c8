// Package config resolves the compiler's program options (§4.5 step 4,
// §6 Emission Interface): output directory, namespace override, forced
// schema version, minimum remote version, and the CC/SOFH naming
// overrides, each with the schema-metadata-derived default a flag can
// shadow.
package config

// Options is the fully resolved set of program options that
// schema.ParseSchema and the emission boundary both consult. It is the
// Go-native replacement for the original command line's loose bag of
// global flags (§6).
type Options struct {
	// OutputDir is where generated sources would be written; parse_schema
	// resolves a relative (or empty) value against the working directory
	// and threads it through for the emission boundary, without reading or
	// writing any files (§1 Non-goals: filesystem I/O is out of scope for
	// this module).
	OutputDir string

	// Namespace overrides the schema's package attribute, when non-empty.
	Namespace string

	// HeaderType overrides the schema's headerType attribute, when non-empty.
	HeaderType string

	// ForcedVersion, when HasForcedVersion is set, downshifts the effective schema
	// version below the document's own declared version (§4.5 step 4,
	// §8 boundary scenario "forced-version downshift").
	ForcedVersion    uint64
	HasForcedVersion bool

	// MinRemoteVersion is the oldest wire version the generated code must
	// still read/write; versioned elements newer than this are eligible
	// for optional-mode wrapping (§9).
	MinRemoteVersion uint64

	// CCTag overrides the default "CODEC" conditional-compilation tag
	// some emitters gate optional members behind.
	CCTag string

	// OpenFramingHeaderName overrides the default SOFH type name used
	// when a transport needs a simple open framing header.
	OpenFramingHeaderName string
}

// Default returns the zero-value Options: no overrides, everything falls
// back to the schema document's own metadata.
func Default() Options {
	return Options{}
}

// ResolveNamespace returns the effective namespace: the option override
// when set, otherwise schemaPackage unchanged (the caller passes the
// package name already translated by common.NamespaceFromPackage).
func (o Options) ResolveNamespace(schemaPackage string) string {
	if o.Namespace != "" {
		return o.Namespace
	}
	return schemaPackage
}

// ResolveVersion returns the effective schema version given the document's
// own declared version: min(declared, forced) when a forced version was
// supplied, otherwise the declared version unchanged (§4.5 step 4).
func (o Options) ResolveVersion(declared uint64) uint64 {
	if o.HasForcedVersion && o.ForcedVersion < declared {
		return o.ForcedVersion
	}
	return declared
}

// ResolveCCTag returns the option override when set, otherwise the
// schema's default conditional-compilation tag.
func (o Options) ResolveCCTag(def string) string {
	if o.CCTag != "" {
		return o.CCTag
	}
	return def
}

// ResolveOpenFramingHeaderName returns the option override when set,
// otherwise the default SOFH type name.
func (o Options) ResolveOpenFramingHeaderName(def string) string {
	if o.OpenFramingHeaderName != "" {
		return o.OpenFramingHeaderName
	}
	return def
}
