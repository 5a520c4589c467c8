package common

import "strings"

// reservedWords maps a reserved identifier to its safe, trailing-underscore
// spelling. Kept here, under the emission-facing utilities, rather than
// inside the structural type/field model, so the rename only ever happens
// at the ReferenceName() boundary (§9 design note: "Keyword renaming").
var reservedWords = map[string]string{
	"break": "break_", "case": "case_", "chan": "chan_", "const": "const_",
	"continue": "continue_", "default": "default_", "defer": "defer_",
	"else": "else_", "fallthrough": "fallthrough_", "for": "for_",
	"func": "func_", "go": "go_", "goto": "goto_", "if": "if_",
	"import": "import_", "interface": "interface_", "map": "map_",
	"package": "package_", "range": "range_", "return": "return_",
	"select": "select_", "struct": "struct_", "switch": "switch_",
	"type": "type_", "var": "var_",
}

// RenameIfReserved returns name unchanged unless it collides with a
// reserved identifier, in which case it returns the table's rename.
func RenameIfReserved(name string) string {
	if renamed, ok := reservedWords[name]; ok {
		return renamed
	}
	return name
}

// ScopedName composes a dotted/underscored scope path the way nested
// composites and groups qualify member names, e.g. ScopedName("Outer",
// "inner") -> "Outer_inner".
func ScopedName(scope, name string) string {
	if scope == "" {
		return name
	}
	return scope + "_" + name
}

// NamespaceFromPackage derives a default namespace from a schema's package
// attribute: spaces become underscores (§4.5 step 4).
func NamespaceFromPackage(pkg string) string {
	return strings.ReplaceAll(strings.TrimSpace(pkg), " ", "_")
}
